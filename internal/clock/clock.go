// Package clock provides pure helpers for "HH:MM" wall-clock times.
//
// Prayer times arrive as bare time-of-day strings scoped to one calendar
// day. Everything here returns new values; nothing mutates shared state.
package clock

import (
	"fmt"
	"strings"
	"time"
)

// Clock is a wall-clock time of day with minute precision.
type Clock struct {
	Hour   int // 0-23
	Minute int // 0-59
}

// Parse parses a "HH:MM" string. A single-digit hour ("5:17") is
// accepted; anything else malformed is an error, which callers treat as
// "that time is absent" rather than a failure.
func Parse(s string) (Clock, error) {
	s = strings.TrimSpace(s)
	// Some sources append a timezone suffix like "05:17 (BST)".
	if idx := strings.Index(s, " "); idx != -1 {
		s = s[:idx]
	}

	parts := strings.Split(s, ":")
	if len(parts) != 2 {
		return Clock{}, fmt.Errorf("invalid time format: %q", s)
	}

	var hour, min int
	if _, err := fmt.Sscanf(parts[0], "%d", &hour); err != nil {
		return Clock{}, fmt.Errorf("invalid hour in %q: %w", s, err)
	}
	if _, err := fmt.Sscanf(parts[1], "%d", &min); err != nil {
		return Clock{}, fmt.Errorf("invalid minute in %q: %w", s, err)
	}
	if hour < 0 || hour > 23 || min < 0 || min > 59 {
		return Clock{}, fmt.Errorf("time out of range: %q", s)
	}

	return Clock{Hour: hour, Minute: min}, nil
}

// String formats the clock as zero-padded "HH:MM".
func (c Clock) String() string {
	return fmt.Sprintf("%02d:%02d", c.Hour, c.Minute)
}

// Minutes returns minutes since midnight.
func (c Clock) Minutes() int {
	return c.Hour*60 + c.Minute
}

// AddMinutes adds n minutes to a clock time with calendar-correct
// rollover. Only hour:minute is retained; the date component is
// discarded, so "23:50" + 20 = "00:10".
func AddMinutes(c Clock, n int) Clock {
	total := c.Minutes() + n
	total %= 24 * 60
	if total < 0 {
		total += 24 * 60
	}
	return Clock{Hour: total / 60, Minute: total % 60}
}

// AnchorToDate places a clock time on ref's calendar day, in ref's
// location, returning an absolute timestamp.
func AnchorToDate(c Clock, ref time.Time) time.Time {
	return time.Date(ref.Year(), ref.Month(), ref.Day(), c.Hour, c.Minute, 0, 0, ref.Location())
}

// MinutesBetween returns the minute delta from a to b, treating a b that
// is numerically earlier than a as having rolled past midnight.
func MinutesBetween(a, b Clock) int {
	d := b.Minutes() - a.Minutes()
	if d < 0 {
		d += 24 * 60
	}
	return d
}
