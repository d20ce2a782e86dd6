package core

import (
	"testing"
	"time"
)

func TestBillStatus(t *testing.T) {
	now := time.Date(2024, time.February, 15, 9, 30, 0, 0, time.UTC)

	tests := []struct {
		name string
		bill Bill
		want BillStatus
	}{
		{
			name: "paid wins regardless of due date",
			bill: Bill{DueDate: NewDate(2023, time.January, 1), IsPaid: true},
			want: StatusPaid,
		},
		{
			name: "due yesterday is overdue",
			bill: Bill{DueDate: NewDate(2024, time.February, 14)},
			want: StatusOverdue,
		},
		{
			name: "due today is due soon",
			bill: Bill{DueDate: NewDate(2024, time.February, 15)},
			want: StatusDueSoon,
		},
		{
			name: "due in six days is due soon",
			bill: Bill{DueDate: NewDate(2024, time.February, 21)},
			want: StatusDueSoon,
		},
		{
			name: "due in eight days is upcoming",
			bill: Bill{DueDate: NewDate(2024, time.February, 23)},
			want: StatusUpcoming,
		},
		{
			name: "unparseable due date is invalid",
			bill: Bill{DueDate: ParseFlexDate("whenever")},
			want: StatusInvalid,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.bill.Status(now); got != tt.want {
				t.Errorf("Status() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestStatusPriorityOrdering(t *testing.T) {
	order := []BillStatus{StatusInvalid, StatusOverdue, StatusDueSoon, StatusUpcoming, StatusPaid}
	for i := 1; i < len(order); i++ {
		if StatusPriority(order[i-1]) >= StatusPriority(order[i]) {
			t.Errorf("priority of %v should be below %v", order[i-1], order[i])
		}
	}
}
