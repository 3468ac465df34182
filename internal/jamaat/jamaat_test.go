package jamaat

import (
	"testing"

	"github.com/prayerwatch/prayerwatch/internal/prayer"
)

func sampleTimes() prayer.TimeSet {
	return prayer.TimeSet{
		prayer.Fajr:    "05:17",
		prayer.Sunrise: "06:48",
		prayer.Dhuhr:   "12:13",
		prayer.Asr:     "15:02",
		prayer.Maghrib: "17:39",
		prayer.Isha:    "19:10",
	}
}

func TestComputeTimes(t *testing.T) {
	got := ComputeTimes(sampleTimes(), DefaultOffsets())

	want := prayer.TimeSet{
		prayer.Fajr:    "05:27",
		prayer.Dhuhr:   "12:28",
		prayer.Asr:     "15:12",
		prayer.Maghrib: "17:44",
		prayer.Isha:    "19:25",
	}
	if len(got) != len(want) {
		t.Fatalf("got %d entries, want %d", len(got), len(want))
	}
	for name, w := range want {
		if got[name] != w {
			t.Errorf("%s = %q, want %q", name, got[name], w)
		}
	}
	if _, ok := got[prayer.Sunrise]; ok {
		t.Error("Sunrise must not receive a Jamaat time")
	}
}

func TestComputeTimes_HourAndDayRollover(t *testing.T) {
	times := prayer.TimeSet{prayer.Isha: "23:50"}
	offsets := Offsets{prayer.Isha: 20}

	got := ComputeTimes(times, offsets)
	if got[prayer.Isha] != "00:10" {
		t.Errorf("Isha = %q, want 00:10 (rolled past midnight)", got[prayer.Isha])
	}
}

func TestComputeTimes_SkipsMissing(t *testing.T) {
	times := sampleTimes()
	delete(times, prayer.Maghrib)
	offsets := DefaultOffsets()
	delete(offsets, prayer.Asr)

	got := ComputeTimes(times, offsets)
	if _, ok := got[prayer.Maghrib]; ok {
		t.Error("Maghrib has no prayer time; must be omitted, not defaulted")
	}
	if _, ok := got[prayer.Asr]; ok {
		t.Error("Asr has no offset; must be omitted, not defaulted")
	}
	if len(got) != 3 {
		t.Errorf("got %d entries, want 3", len(got))
	}
}

func TestComputeTimes_Idempotent(t *testing.T) {
	a := ComputeTimes(sampleTimes(), DefaultOffsets())
	b := ComputeTimes(sampleTimes(), DefaultOffsets())
	for name, v := range a {
		if b[name] != v {
			t.Errorf("second call differs for %s: %q vs %q", name, v, b[name])
		}
	}
}

func TestComputeTimes_NilInputs(t *testing.T) {
	if got := ComputeTimes(nil, DefaultOffsets()); got != nil {
		t.Errorf("expected nil for nil times, got %v", got)
	}
	if got := ComputeTimes(sampleTimes(), nil); got != nil {
		t.Errorf("expected nil for nil offsets, got %v", got)
	}
}

func TestTimeToOffset(t *testing.T) {
	tests := []struct {
		name       string
		prayerTime string
		jamaatTime string
		want       int
	}{
		{"plain delta", "05:17", "05:32", 15},
		{"zero delta", "12:13", "12:13", 0},
		{"clamped to max", "05:00", "07:30", 120}, // implied 150
		{"rolled past midnight", "23:50", "00:10", 20},
		{"large rollover clamps", "19:00", "18:00", 120}, // reads as +23h
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := TimeToOffset(tt.prayerTime, tt.jamaatTime)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("TimeToOffset(%q, %q) = %d, want %d",
					tt.prayerTime, tt.jamaatTime, got, tt.want)
			}
		})
	}
}

func TestTimeToOffset_Invalid(t *testing.T) {
	if _, err := TimeToOffset("bad", "05:32"); err == nil {
		t.Error("expected error for invalid prayer time")
	}
	if _, err := TimeToOffset("05:17", "bad"); err == nil {
		t.Error("expected error for invalid jamaat time")
	}
}

// Round-trip: offsets survive compute-then-invert, modulo clamping.
func TestOffsetRoundTrip(t *testing.T) {
	for _, offset := range []int{0, 5, 37, 120} {
		times := prayer.TimeSet{prayer.Dhuhr: "12:13"}
		jt := ComputeTimes(times, Offsets{prayer.Dhuhr: offset})

		got, err := TimeToOffset(times[prayer.Dhuhr], jt[prayer.Dhuhr])
		if err != nil {
			t.Fatalf("offset %d: unexpected error: %v", offset, err)
		}
		if got != Clamp(offset) {
			t.Errorf("offset %d round-tripped to %d", offset, got)
		}
	}
}

func TestClamp(t *testing.T) {
	tests := []struct{ in, want int }{
		{-10, 0},
		{0, 0},
		{60, 60},
		{120, 120},
		{150, 120},
	}
	for _, tt := range tests {
		if got := Clamp(tt.in); got != tt.want {
			t.Errorf("Clamp(%d) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestNormalize(t *testing.T) {
	in := Offsets{
		prayer.Fajr:    200,
		prayer.Dhuhr:   -3,
		prayer.Sunrise: 10, // ineligible
		prayer.Isha:    15,
	}
	got := Normalize(in)

	if got[prayer.Fajr] != 120 || got[prayer.Dhuhr] != 0 || got[prayer.Isha] != 15 {
		t.Errorf("unexpected normalized offsets: %v", got)
	}
	if _, ok := got[prayer.Sunrise]; ok {
		t.Error("Sunrise must be dropped")
	}
	if len(got) != 3 {
		t.Errorf("got %d entries, want 3", len(got))
	}
}
