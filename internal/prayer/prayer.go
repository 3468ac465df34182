// Package prayer holds the daily prayer cycle: which window the current
// time falls in, what the next event is, and the prohibited-time rules.
package prayer

import (
	"fmt"
	"regexp"
	"time"

	"github.com/prayerwatch/prayerwatch/internal/clock"
)

// Prayer and event names, in chronological order. Isha's successor is
// the following day's Fajr.
const (
	Fajr    = "Fajr"
	Sunrise = "Sunrise"
	Dhuhr   = "Dhuhr"
	Asr     = "Asr"
	Maghrib = "Maghrib"
	Isha    = "Isha"
)

// Order lists the six daily events in chronological order.
var Order = []string{Fajr, Sunrise, Dhuhr, Asr, Maghrib, Isha}

// NotifiableNames are the prayers eligible for Jamaat times and
// notifications. Sunrise is an astronomical marker, not a prayer.
var NotifiableNames = []string{Fajr, Dhuhr, Asr, Maghrib, Isha}

// ShortNames maps full prayer names to single-character abbreviations.
var ShortNames = map[string]string{
	Fajr:    "F",
	Sunrise: "S",
	Dhuhr:   "D",
	Asr:     "A",
	Maghrib: "M",
	Isha:    "I",
}

// TimeSet maps prayer names to "HH:MM" clock-times for one calendar day
// at one location. Regenerated whenever location or calculation
// settings change, never mutated in place.
type TimeSet map[string]string

var hhmmRe = regexp.MustCompile(`^([01]?[0-9]|2[0-3]):[0-5][0-9]$`)

// Validate reports whether all six events are present with well-formed
// HH:MM values.
func Validate(times TimeSet) error {
	if times == nil {
		return fmt.Errorf("no prayer times")
	}
	for _, name := range Order {
		v, ok := times[name]
		if !ok || v == "" {
			return fmt.Errorf("missing time for %s", name)
		}
		if !hhmmRe.MatchString(v) {
			return fmt.Errorf("malformed time for %s: %q", name, v)
		}
	}
	return nil
}

// Window describes where "now" sits in the daily cycle.
type Window struct {
	// Current is the prayer whose window contains now. Never empty for
	// a valid TimeSet: before Fajr it is the previous day's Isha, whose
	// window logically continues until Fajr.
	Current string
	// NextName is the next upcoming event.
	NextName string
	// NextTime is the absolute instant of the next event, strictly
	// after now. When today's events have all passed it is tomorrow's
	// Fajr.
	NextTime time.Time
}

// ResolveWindow determines the current prayer window and next event for
// now. Malformed entries are skipped as if absent. The second return is
// false when times carries no usable data; callers must treat that as
// "no data yet", not an error.
func ResolveWindow(now time.Time, times TimeSet) (Window, bool) {
	if times == nil {
		return Window{}, false
	}

	at := func(name string) (time.Time, bool) {
		c, err := clock.Parse(times[name])
		if err != nil {
			return time.Time{}, false
		}
		return clock.AnchorToDate(c, now), true
	}

	var current string
	for i, name := range Order {
		t, ok := at(name)
		if !ok {
			continue
		}

		if name == Isha {
			// Isha wraps across midnight: its window runs until the
			// next day's Fajr.
			fajr, fok := at(Fajr)
			if fok && (!now.Before(t) || now.Before(fajr)) {
				current = Isha
				break
			}
			continue
		}

		next, ok := at(Order[i+1])
		if !ok {
			continue
		}
		if !now.Before(t) && now.Before(next) {
			current = name
			break
		}
	}

	// First event strictly after now, anchored to today.
	for _, name := range Order {
		t, ok := at(name)
		if !ok {
			continue
		}
		if now.Before(t) {
			if current == "" {
				current = Isha
			}
			return Window{Current: current, NextName: name, NextTime: t}, true
		}
	}

	// Everything today has passed; next is tomorrow's Fajr.
	fajr, ok := at(Fajr)
	if !ok {
		return Window{}, false
	}
	if current == "" {
		current = Isha
	}
	return Window{Current: current, NextName: Fajr, NextTime: fajr.AddDate(0, 0, 1)}, true
}

// FormatRemaining formats a duration as "Xh Ym" or "Ym" if less than an
// hour.
func FormatRemaining(d time.Duration) string {
	if d < 0 {
		return "0m"
	}
	h := int(d.Hours())
	m := int(d.Minutes()) % 60

	if h > 0 {
		return fmt.Sprintf("%dh %dm", h, m)
	}
	return fmt.Sprintf("%dm", m)
}
