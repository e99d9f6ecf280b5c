package models

import (
	"fmt"
	"time"
)

// MonthLayout is the year-month key format, e.g. "2024-01".
const MonthLayout = "2006-01"

// DateLayout is the calendar date format accepted from clients.
const DateLayout = "2006-01-02"

// MonthRange returns the half-open [start, end) interval covered by a month key.
func MonthRange(key string) (time.Time, time.Time, error) {
	start, err := time.Parse(MonthLayout, key)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("invalid month %q: %w", key, err)
	}
	return start, start.AddDate(0, 1, 0), nil
}

// ParseDate parses a YYYY-MM-DD calendar date.
func ParseDate(raw string) (time.Time, error) {
	d, err := time.Parse(DateLayout, raw)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: %w", raw, err)
	}
	return d, nil
}
