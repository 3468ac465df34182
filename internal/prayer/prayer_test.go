package prayer

import (
	"testing"
	"time"
)

func sampleTimes() TimeSet {
	return TimeSet{
		Fajr:    "05:17",
		Sunrise: "06:48",
		Dhuhr:   "12:13",
		Asr:     "15:02",
		Maghrib: "17:39",
		Isha:    "19:10",
	}
}

// makeTime builds a time.Time on a fixed date in UTC.
func makeTime(t *testing.T, hour, min int) time.Time {
	t.Helper()
	return time.Date(2026, 2, 28, hour, min, 0, 0, time.UTC)
}

// ---------------------------------------------------------------------------
// Validate
// ---------------------------------------------------------------------------

func TestValidate(t *testing.T) {
	if err := Validate(sampleTimes()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	missing := sampleTimes()
	delete(missing, Maghrib)
	if err := Validate(missing); err == nil {
		t.Error("expected error for missing Maghrib, got nil")
	}

	malformed := sampleTimes()
	malformed[Asr] = "25:99"
	if err := Validate(malformed); err == nil {
		t.Error("expected error for malformed Asr, got nil")
	}

	if err := Validate(nil); err == nil {
		t.Error("expected error for nil TimeSet, got nil")
	}
}

// ---------------------------------------------------------------------------
// ResolveWindow
// ---------------------------------------------------------------------------

func TestResolveWindow_RegularWindows(t *testing.T) {
	times := sampleTimes()

	tests := []struct {
		name        string
		now         time.Time
		wantCurrent string
		wantNext    string
	}{
		{"during Fajr", makeTime(t, 5, 30), Fajr, Sunrise},
		{"exactly at Fajr", makeTime(t, 5, 17), Fajr, Sunrise},
		{"during Sunrise window", makeTime(t, 8, 0), Sunrise, Dhuhr},
		{"during Dhuhr", makeTime(t, 13, 0), Dhuhr, Asr},
		{"during Asr", makeTime(t, 16, 30), Asr, Maghrib},
		{"during Maghrib", makeTime(t, 18, 0), Maghrib, Isha},
		{"one minute before Isha", makeTime(t, 19, 9), Maghrib, Isha},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, ok := ResolveWindow(tt.now, times)
			if !ok {
				t.Fatal("ResolveWindow returned not ok")
			}
			if w.Current != tt.wantCurrent {
				t.Errorf("Current = %q, want %q", w.Current, tt.wantCurrent)
			}
			if w.NextName != tt.wantNext {
				t.Errorf("NextName = %q, want %q", w.NextName, tt.wantNext)
			}
			if !w.NextTime.After(tt.now) {
				t.Errorf("NextTime %v not strictly after now %v", w.NextTime, tt.now)
			}
		})
	}
}

func TestResolveWindow_IshaWrapsAcrossMidnight(t *testing.T) {
	times := TimeSet{
		Fajr:    "04:30",
		Sunrise: "06:00",
		Dhuhr:   "12:00",
		Asr:     "15:30",
		Maghrib: "18:30",
		Isha:    "22:00",
	}

	// Late evening after Isha: next is tomorrow's Fajr.
	now := makeTime(t, 23, 30)
	w, ok := ResolveWindow(now, times)
	if !ok {
		t.Fatal("ResolveWindow returned not ok")
	}
	if w.Current != Isha {
		t.Errorf("Current = %q, want Isha", w.Current)
	}
	if w.NextName != Fajr {
		t.Errorf("NextName = %q, want Fajr", w.NextName)
	}
	wantNext := time.Date(2026, 3, 1, 4, 30, 0, 0, time.UTC)
	if !w.NextTime.Equal(wantNext) {
		t.Errorf("NextTime = %v, want %v (next calendar day)", w.NextTime, wantNext)
	}

	// Past midnight, before Fajr: still Isha, Fajr is later the same day.
	now = makeTime(t, 2, 0)
	w, ok = ResolveWindow(now, times)
	if !ok {
		t.Fatal("ResolveWindow returned not ok")
	}
	if w.Current != Isha {
		t.Errorf("Current = %q, want Isha", w.Current)
	}
	if w.NextName != Fajr {
		t.Errorf("NextName = %q, want Fajr", w.NextName)
	}
	wantNext = makeTime(t, 4, 30)
	if !w.NextTime.Equal(wantNext) {
		t.Errorf("NextTime = %v, want %v (same day)", w.NextTime, wantNext)
	}
}

func TestResolveWindow_CurrentNeverEmpty(t *testing.T) {
	times := sampleTimes()
	for hour := 0; hour < 24; hour++ {
		for _, min := range []int{0, 17, 30, 59} {
			now := makeTime(t, hour, min)
			w, ok := ResolveWindow(now, times)
			if !ok {
				t.Fatalf("ResolveWindow(%v) not ok", now)
			}
			if w.Current == "" {
				t.Errorf("ResolveWindow(%v) returned empty Current", now)
			}
			if !w.NextTime.After(now) {
				t.Errorf("ResolveWindow(%v) NextTime %v not after now", now, w.NextTime)
			}
		}
	}
}

func TestResolveWindow_NoData(t *testing.T) {
	if _, ok := ResolveWindow(makeTime(t, 12, 0), nil); ok {
		t.Error("expected not ok for nil times")
	}
	if _, ok := ResolveWindow(makeTime(t, 12, 0), TimeSet{}); ok {
		t.Error("expected not ok for empty times")
	}
}

func TestResolveWindow_MalformedEntrySkipped(t *testing.T) {
	times := sampleTimes()
	times[Asr] = "garbage"

	// Mid-afternoon: Asr is unreadable, so the Dhuhr window extends to
	// Maghrib and the next event is Maghrib.
	now := makeTime(t, 16, 0)
	w, ok := ResolveWindow(now, times)
	if !ok {
		t.Fatal("ResolveWindow returned not ok")
	}
	if w.NextName != Maghrib {
		t.Errorf("NextName = %q, want Maghrib", w.NextName)
	}
}

// ---------------------------------------------------------------------------
// EvaluateProhibited
// ---------------------------------------------------------------------------

func TestEvaluateProhibited(t *testing.T) {
	times := TimeSet{
		Fajr:    "04:45",
		Sunrise: "06:00",
		Dhuhr:   "12:30",
		Asr:     "15:45",
		Maghrib: "18:20",
		Isha:    "19:45",
	}

	tests := []struct {
		name string
		now  time.Time
		want string
	}{
		{"inside sunrise window", makeTime(t, 6, 10), SunriseWarning},
		{"exactly at sunrise", makeTime(t, 6, 0), SunriseWarning},
		{"after sunrise window", makeTime(t, 6, 20), ""},
		{"inside zawal window", makeTime(t, 12, 5), ZawalWarning},
		{"zawal ends when Dhuhr begins", makeTime(t, 12, 30), ""},
		{"inside sunset window", makeTime(t, 18, 10), SunsetWarning},
		{"sunset ends at Maghrib", makeTime(t, 18, 20), ""},
		{"ordinary morning", makeTime(t, 9, 0), ""},
		{"night", makeTime(t, 23, 0), ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := EvaluateProhibited(tt.now, times); got != tt.want {
				t.Errorf("EvaluateProhibited(%v) = %q, want %q", tt.now, got, tt.want)
			}
		})
	}
}

func TestEvaluateProhibited_MissingAnchors(t *testing.T) {
	times := sampleTimes()
	delete(times, Sunrise)

	if got := EvaluateProhibited(makeTime(t, 6, 50), times); got != "" {
		t.Errorf("expected no warning without Sunrise anchor, got %q", got)
	}
}

func TestProhibitedWindows_Disjoint(t *testing.T) {
	// Realistic set: Sunrise+15m < Dhuhr-30m < Maghrib-15m.
	times := sampleTimes()
	windows := ProhibitedWindows(makeTime(t, 0, 0), times)
	if len(windows) != 3 {
		t.Fatalf("expected 3 windows, got %d", len(windows))
	}
	for i := 1; i < len(windows); i++ {
		if windows[i].Start.Before(windows[i-1].End) {
			t.Errorf("window %s starts before %s ends", windows[i].Name, windows[i-1].Name)
		}
	}
}

// ---------------------------------------------------------------------------
// FormatRemaining
// ---------------------------------------------------------------------------

func TestFormatRemaining(t *testing.T) {
	tests := []struct {
		d    time.Duration
		want string
	}{
		{2*time.Hour + 15*time.Minute, "2h 15m"},
		{45 * time.Minute, "45m"},
		{0, "0m"},
		{-5 * time.Minute, "0m"},
	}

	for _, tt := range tests {
		if got := FormatRemaining(tt.d); got != tt.want {
			t.Errorf("FormatRemaining(%v) = %q, want %q", tt.d, got, tt.want)
		}
	}
}
