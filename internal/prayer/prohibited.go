package prayer

import (
	"time"

	"github.com/prayerwatch/prayerwatch/internal/clock"
)

// Durations of the three forbidden windows, anchored on Sunrise, Dhuhr
// and Maghrib.
const (
	sunriseForbidden = 15 * time.Minute
	zawalForbidden   = 30 * time.Minute
	sunsetForbidden  = 15 * time.Minute
)

// Warning texts shown while inside a forbidden window.
const (
	SunriseWarning = "The sun is rising. It is prohibited to pray now. Wait approx. 15 minutes to start Salatul Duha."
	ZawalWarning   = "It is Zawal (solar noon). Prayer is prohibited until the sun passes its peak and Dhuhr begins."
	SunsetWarning  = "The sun is setting. Voluntary prayers are prohibited. However, if you missed today's Asr, you can pray it now."
)

// ProhibitedWindow describes one forbidden interval for display.
type ProhibitedWindow struct {
	Name    string
	Start   time.Time
	End     time.Time
	Warning string
}

// ProhibitedWindows derives today's three forbidden intervals from the
// Sunrise, Dhuhr and Maghrib anchors. Returns nil unless all three
// anchors are present and well formed.
func ProhibitedWindows(now time.Time, times TimeSet) []ProhibitedWindow {
	sunrise, err1 := clock.Parse(times[Sunrise])
	dhuhr, err2 := clock.Parse(times[Dhuhr])
	maghrib, err3 := clock.Parse(times[Maghrib])
	if err1 != nil || err2 != nil || err3 != nil {
		return nil
	}

	sunriseAt := clock.AnchorToDate(sunrise, now)
	dhuhrAt := clock.AnchorToDate(dhuhr, now)
	maghribAt := clock.AnchorToDate(maghrib, now)

	return []ProhibitedWindow{
		{
			Name:    "Sunrise",
			Start:   sunriseAt,
			End:     sunriseAt.Add(sunriseForbidden),
			Warning: SunriseWarning,
		},
		{
			Name:    "Zawal",
			Start:   dhuhrAt.Add(-zawalForbidden),
			End:     dhuhrAt,
			Warning: ZawalWarning,
		},
		{
			Name:    "Sunset",
			Start:   maghribAt.Add(-sunsetForbidden),
			End:     maghribAt,
			Warning: SunsetWarning,
		},
	}
}

// EvaluateProhibited returns the warning for the forbidden window
// containing now, or "" when now is outside all three windows or any
// anchor time is missing. Windows are checked in fixed order Sunrise,
// Zawal, Sunset; a later match overwrites an earlier one. They do not
// overlap for realistic latitudes.
func EvaluateProhibited(now time.Time, times TimeSet) string {
	var warning string
	for _, w := range ProhibitedWindows(now, times) {
		if !now.Before(w.Start) && now.Before(w.End) {
			warning = w.Warning
		}
	}
	return warning
}
