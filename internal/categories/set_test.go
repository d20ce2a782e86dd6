package categories

import (
	"errors"
	"testing"
)

func TestSetAdd(t *testing.T) {
	tests := []struct {
		name      string
		initial   []string
		candidate string
		wantErr   error
		wantSet   []string
	}{
		{
			name:      "append new entry",
			initial:   []string{"Food", "Rent"},
			candidate: "Travel",
			wantSet:   []string{"Food", "Rent", "Travel"},
		},
		{
			name:      "exact duplicate rejected",
			initial:   []string{"Food", "Rent"},
			candidate: "Food",
			wantErr:   ErrDuplicateCategory,
			wantSet:   []string{"Food", "Rent"},
		},
		{
			name:      "duplicate after trim rejected",
			initial:   []string{"Food", "Rent"},
			candidate: " Food ",
			wantErr:   ErrDuplicateCategory,
			wantSet:   []string{"Food", "Rent"},
		},
		{
			name:      "case differs is not a duplicate",
			initial:   []string{"Food"},
			candidate: "food",
			wantSet:   []string{"Food", "food"},
		},
		{
			name:      "blank rejected",
			initial:   []string{"Food"},
			candidate: "   ",
			wantErr:   ErrEmptyCategory,
			wantSet:   []string{"Food"},
		},
		{
			name:      "candidate is trimmed before insert",
			initial:   []string{},
			candidate: "  Bills  ",
			wantSet:   []string{"Bills"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := New(tt.initial)
			err := s.Add(tt.candidate)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Add(%q) error = %v, want %v", tt.candidate, err, tt.wantErr)
			}
			if got := s.Names(); !equal(got, tt.wantSet) {
				t.Errorf("set after Add = %v, want %v", got, tt.wantSet)
			}
		})
	}
}

func TestSetRemove(t *testing.T) {
	s := New([]string{"Food", "Rent", "Food"})

	s.Remove("Food")
	if got := s.Names(); !equal(got, []string{"Rent"}) {
		t.Errorf("Remove should drop all exact matches, got %v", got)
	}

	// Removing something absent is a no-op, not an error.
	s.Remove("Missing")
	if got := s.Names(); !equal(got, []string{"Rent"}) {
		t.Errorf("Remove of absent name changed the set: %v", got)
	}
}

func TestResetToDefaultIdempotent(t *testing.T) {
	defaults := DefaultFor(Expense)
	s := New([]string{"Custom A", "Custom B"})

	s.ResetToDefault(defaults)
	first := s.Names()
	s.ResetToDefault(defaults)
	second := s.Names()

	if !equal(first, defaults) {
		t.Errorf("first reset = %v, want %v", first, defaults)
	}
	if !equal(first, second) {
		t.Errorf("reset is not idempotent: %v then %v", first, second)
	}
}

func TestResetDoesNotAliasDefaults(t *testing.T) {
	defaults := DefaultFor(Income)
	s := New(nil)
	s.ResetToDefault(defaults)
	if err := s.Add("Royalties"); err != nil {
		t.Fatalf("Add after reset: %v", err)
	}
	if len(defaults) != len(DefaultFor(Income)) {
		t.Error("mutating the set leaked into the default list")
	}
}

func TestDefaultForReturnsCopy(t *testing.T) {
	a := DefaultFor(Expense)
	a[0] = "tampered"
	if b := DefaultFor(Expense); b[0] == "tampered" {
		t.Error("DefaultFor shares its backing array with callers")
	}
}

func equal(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
