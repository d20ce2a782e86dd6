// Package categories implements the per-user, per-type category list that
// feeds the list views' category filters. The set is ordered, case
// sensitive, and rejects duplicates on add; it never validates names
// against a fixed enum.
package categories

import (
	"errors"
	"strings"
)

var (
	ErrDuplicateCategory = errors.New("category already exists")
	ErrEmptyCategory     = errors.New("category name is empty")
)

// Type selects which of the two independent category lists a set backs.
type Type string

const (
	Expense Type = "expense"
	Income  Type = "income"
)

func (t Type) Valid() bool {
	return t == Expense || t == Income
}

// Set is an ordered collection of category names.
type Set struct {
	entries []string
}

// New copies entries into a fresh set. No de-duplication is applied beyond
// what Add enforces later; callers own the initial contents.
func New(entries []string) *Set {
	s := &Set{entries: make([]string, len(entries))}
	copy(s.entries, entries)
	return s
}

// Add appends the trimmed candidate. The candidate is rejected when empty
// after trimming, or when an exact (case-sensitive) match already exists.
func (s *Set) Add(candidate string) error {
	name := strings.TrimSpace(candidate)
	if name == "" {
		return ErrEmptyCategory
	}
	for _, e := range s.entries {
		if e == name {
			return ErrDuplicateCategory
		}
	}
	s.entries = append(s.entries, name)
	return nil
}

// Remove drops every entry exactly equal to name. Removing a name that is
// not present is a no-op. Records still referencing a removed category keep
// it; orphaned categories are an accepted state.
func (s *Set) Remove(name string) {
	out := s.entries[:0]
	for _, e := range s.entries {
		if e != name {
			out = append(out, e)
		}
	}
	s.entries = out
}

// ResetToDefault replaces the whole set with defaults, order preserved.
// The operation is unconditional; confirmation belongs to the caller.
func (s *Set) ResetToDefault(defaults []string) {
	s.entries = make([]string, len(defaults))
	copy(s.entries, defaults)
}

// Names returns a copy of the entries in order.
func (s *Set) Names() []string {
	out := make([]string, len(s.entries))
	copy(out, s.entries)
	return out
}

// Contains reports an exact match.
func (s *Set) Contains(name string) bool {
	for _, e := range s.entries {
		if e == name {
			return true
		}
	}
	return false
}

func (s *Set) Len() int {
	return len(s.entries)
}
