package core

import "time"

// BillStatus is the display status derived from due date and payment flag.
type BillStatus string

const (
	StatusInvalid  BillStatus = "invalid"
	StatusOverdue  BillStatus = "overdue"
	StatusDueSoon  BillStatus = "dueSoon"
	StatusUpcoming BillStatus = "upcoming"
	StatusPaid     BillStatus = "paid"
)

// dueSoonWindow is how far ahead a bill counts as due soon.
const dueSoonWindow = 7 * 24 * time.Hour

// Status derives the bill's state relative to now. A paid bill is always
// Paid regardless of its due date; an unpaid bill with an invalid due date
// reports Invalid.
func (b Bill) Status(now time.Time) BillStatus {
	if b.IsPaid {
		return StatusPaid
	}
	if !b.DueDate.Valid {
		return StatusInvalid
	}
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	due := b.DueDate.Time
	if due.Before(today) {
		return StatusOverdue
	}
	if due.Before(today.Add(dueSoonWindow)) {
		return StatusDueSoon
	}
	return StatusUpcoming
}

// StatusPriority orders statuses for sorting: invalid lowest, then
// overdue < dueSoon < upcoming < paid.
func StatusPriority(s BillStatus) int {
	switch s {
	case StatusOverdue:
		return 1
	case StatusDueSoon:
		return 2
	case StatusUpcoming:
		return 3
	case StatusPaid:
		return 4
	}
	return 0
}
