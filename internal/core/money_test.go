package core

import "testing"

func TestParseDecimalToCents(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    int64
		wantErr bool
	}{
		{"dot separator", "12.34", 1234, false},
		{"comma separator", "12,34", 1234, false},
		{"integer", "12", 1200, false},
		{"single decimal digit", "12.3", 1230, false},
		{"third digit rounds down", "12.344", 1234, false},
		{"third digit rounds up", "12.346", 1235, false},
		{"zero allowed", "0", 0, false},
		{"leading dot", ".50", 50, false},
		{"empty", "", 0, true},
		{"negative rejected", "-5", 0, true},
		{"plus sign rejected", "+5", 0, true},
		{"letters rejected", "12a.00", 0, true},
		{"two dots rejected", "1.2.3", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseDecimalToCents(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseDecimalToCents(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseDecimalToCents(%q) = %d, want %d", tt.input, got, tt.want)
			}
		})
	}
}

func TestMoneyFromFloat(t *testing.T) {
	if m, err := MoneyFromFloat(12.345); err != nil || m.Cents != 1235 {
		t.Errorf("MoneyFromFloat(12.345) = %v, %v; want 1235 cents", m, err)
	}
	if _, err := MoneyFromFloat(-0.01); err == nil {
		t.Error("negative amount should be rejected")
	}
}

func TestMoneyFloat(t *testing.T) {
	m := Money{Cents: 1234}
	if got := m.Float(); got != 12.34 {
		t.Errorf("Float() = %v, want 12.34", got)
	}
}
