package cycle

import (
	"fmt"
	"time"
)

const dayLayout = "2006-01-02"

// ParseDay parses an ISO yyyy-mm-dd string into a midnight UTC date.
func ParseDay(value string) (time.Time, error) {
	day, err := time.Parse(dayLayout, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse day %q: %w", value, err)
	}
	return day, nil
}

// FormatDay renders a date back to its ISO yyyy-mm-dd form.
func FormatDay(day time.Time) string {
	return day.Format(dayLayout)
}

// DateOnly truncates a timestamp to its calendar date.
func DateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

func sameDay(a, b time.Time) bool {
	return a.Format(dayLayout) == b.Format(dayLayout)
}

// utcDate pins a timestamp's calendar date to midnight UTC so date
// arithmetic and comparisons are unaffected by the zones the operands
// arrived in.
func utcDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func daysBetween(from, to time.Time) int {
	return int(utcDate(to).Sub(utcDate(from)).Hours() / 24)
}
