// Package core holds the domain types shared by every layer: records,
// money amounts in cents, and tolerant date handling.
package core

import (
	"errors"
	"math"
	"strconv"
	"strings"
	"unicode"
)

var (
	ErrInvalidAmount = errors.New("invalid amount")
	ErrNotFound      = errors.New("record not found")
)

// Money is a non-negative amount stored in cents.
type Money struct {
	Cents int64 `json:"cents"`
}

// Float returns the decimal value for display and JSON payloads.
// Calculations stay in cents to avoid floating-point drift.
func (m Money) Float() float64 {
	return float64(m.Cents) / 100.0
}

// MoneyFromFloat converts a decimal amount (as received in JSON bodies)
// to cents with half-up rounding. Negative amounts are rejected.
func MoneyFromFloat(v float64) (Money, error) {
	if v < 0 || math.IsNaN(v) || math.IsInf(v, 0) {
		return Money{}, ErrInvalidAmount
	}
	return Money{Cents: int64(math.Round(v * 100))}, nil
}

// ParseDecimalToCents converts a decimal string to cents with half-up
// rounding on the third decimal place. Both dot (12.34) and comma (12,34)
// separators are accepted. Zero is allowed; signs are not.
func ParseDecimalToCents(s string) (int64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, ErrInvalidAmount
	}
	s = strings.ReplaceAll(s, ",", ".")
	if strings.HasPrefix(s, "+") || strings.HasPrefix(s, "-") {
		return 0, ErrInvalidAmount
	}
	parts := strings.Split(s, ".")
	if len(parts) > 2 {
		return 0, ErrInvalidAmount
	}
	intPart := parts[0]
	fracPart := ""
	if len(parts) == 2 {
		fracPart = parts[1]
	}
	if intPart == "" {
		intPart = "0"
	}
	for _, r := range intPart {
		if !unicode.IsDigit(r) {
			return 0, ErrInvalidAmount
		}
	}
	for _, r := range fracPart {
		if !unicode.IsDigit(r) {
			return 0, ErrInvalidAmount
		}
	}
	iv, err := strconv.ParseInt(intPart, 10, 64)
	if err != nil {
		return 0, ErrInvalidAmount
	}
	const maxSafeInt64 = (1<<63 - 1) / 100
	if iv > maxSafeInt64 {
		return 0, ErrInvalidAmount
	}
	var fracCents int64
	if len(fracPart) > 0 {
		fracCents = int64(fracPart[0]-'0') * 10
		if len(fracPart) > 1 {
			fracCents += int64(fracPart[1] - '0')
			if len(fracPart) > 2 && fracPart[2] >= '5' {
				fracCents++
			}
		}
	}
	return iv*100 + fracCents, nil
}
