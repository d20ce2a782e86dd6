package core

import (
	"encoding/json"
	"strings"
	"time"
)

// FlexDate is a calendar date that tolerates malformed input. Records arrive
// from external stores with date strings that may be absent or unparseable;
// a FlexDate never errors on those, it just reports Valid=false. Invalid
// dates sort as epoch 0 and fail any explicit date-range filter.
type FlexDate struct {
	Time  time.Time
	Valid bool
}

var dateLayouts = []string{
	"2006-01-02",
	time.RFC3339,
	"2006-01-02T15:04:05",
}

// ParseFlexDate parses an ISO-8601 date string. An empty or malformed
// string yields an invalid FlexDate, never an error.
func ParseFlexDate(s string) FlexDate {
	s = strings.TrimSpace(s)
	if s == "" {
		return FlexDate{}
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return FlexDate{Time: t, Valid: true}
		}
	}
	return FlexDate{}
}

// NewDate builds a valid FlexDate at midnight UTC.
func NewDate(year int, month time.Month, day int) FlexDate {
	return FlexDate{Time: time.Date(year, month, day, 0, 0, 0, 0, time.UTC), Valid: true}
}

// EpochMillis returns the sort value for this date. Invalid dates compare
// as epoch 0 so comparisons stay total.
func (d FlexDate) EpochMillis() int64 {
	if !d.Valid {
		return 0
	}
	return d.Time.UnixMilli()
}

// In reports whether the date falls inside [start, end). Invalid dates are
// never inside any interval.
func (d FlexDate) In(start, end time.Time) bool {
	if !d.Valid {
		return false
	}
	return !d.Time.Before(start) && d.Time.Before(end)
}

func (d FlexDate) String() string {
	if !d.Valid {
		return ""
	}
	return d.Time.Format("2006-01-02")
}

// MarshalJSON writes the date as "YYYY-MM-DD", or null when invalid.
func (d FlexDate) MarshalJSON() ([]byte, error) {
	if !d.Valid {
		return []byte("null"), nil
	}
	return json.Marshal(d.Time.Format("2006-01-02"))
}

// UnmarshalJSON accepts a date string, null, or garbage. Garbage becomes an
// invalid date rather than an error; the engine degrades it downstream.
func (d *FlexDate) UnmarshalJSON(data []byte) error {
	var s *string
	if err := json.Unmarshal(data, &s); err != nil || s == nil {
		*d = FlexDate{}
		return nil
	}
	*d = ParseFlexDate(*s)
	return nil
}

// MonthBounds returns the [start, end) interval covering the given calendar
// month. End is the first instant of the following month, so membership
// tests with In cover the whole last day.
func MonthBounds(year int, month time.Month) (time.Time, time.Time) {
	start := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	return start, start.AddDate(0, 1, 0)
}
