// Package jamaat derives congregation start times from prayer times and
// per-prayer minute offsets.
package jamaat

import (
	"fmt"

	"github.com/prayerwatch/prayerwatch/internal/clock"
	"github.com/prayerwatch/prayerwatch/internal/prayer"
)

// Offsets maps a prayer name to the minutes between the prayer time and
// the mosque's congregation start. Constrained to [MinOffset, MaxOffset].
// Saved wholesale on every change; the offsets, not the derived times,
// are the source of truth.
type Offsets map[string]int

// Offset bounds in minutes.
const (
	MinOffset = 0
	MaxOffset = 120
)

// DefaultOffsets returns the offsets used until the user configures
// their own.
func DefaultOffsets() Offsets {
	return Offsets{
		prayer.Fajr:    10,
		prayer.Dhuhr:   15,
		prayer.Asr:     10,
		prayer.Maghrib: 5,
		prayer.Isha:    15,
	}
}

// Clamp forces an offset into the permitted range. Out-of-range user
// input is silently corrected, never rejected.
func Clamp(offset int) int {
	if offset < MinOffset {
		return MinOffset
	}
	if offset > MaxOffset {
		return MaxOffset
	}
	return offset
}

// ComputeTimes derives Jamaat clock-times by adding each prayer's offset
// to its time. A prayer missing from either input is omitted from the
// result; no default is substituted. Adding minutes may roll past an
// hour or day boundary; only hour:minute is retained since Jamaat is
// always same-day display.
func ComputeTimes(times prayer.TimeSet, offsets Offsets) prayer.TimeSet {
	if times == nil || offsets == nil {
		return nil
	}

	out := make(prayer.TimeSet)
	for _, name := range prayer.NotifiableNames {
		raw, ok := times[name]
		if !ok {
			continue
		}
		offset, ok := offsets[name]
		if !ok {
			continue
		}
		c, err := clock.Parse(raw)
		if err != nil {
			continue
		}
		out[name] = clock.AddMinutes(c, offset).String()
	}
	return out
}

// TimeToOffset converts a user-entered Jamaat clock-time back into a
// minute offset from the prayer time. A Jamaat time numerically earlier
// than the prayer time is read as having rolled past midnight. The
// result is clamped into [MinOffset, MaxOffset].
func TimeToOffset(prayerTime, jamaatTime string) (int, error) {
	p, err := clock.Parse(prayerTime)
	if err != nil {
		return 0, fmt.Errorf("invalid prayer time: %w", err)
	}
	j, err := clock.Parse(jamaatTime)
	if err != nil {
		return 0, fmt.Errorf("invalid jamaat time: %w", err)
	}
	return Clamp(clock.MinutesBetween(p, j)), nil
}

// Normalize clamps every offset in the set and drops names outside the
// eligible prayers, returning a fresh map.
func Normalize(offsets Offsets) Offsets {
	out := make(Offsets, len(prayer.NotifiableNames))
	for _, name := range prayer.NotifiableNames {
		if v, ok := offsets[name]; ok {
			out[name] = Clamp(v)
		}
	}
	return out
}
