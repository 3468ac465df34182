package clock

import (
	"testing"
	"time"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		wantH   int
		wantM   int
		wantErr bool
	}{
		{"simple HH:MM", "15:02", 15, 2, false},
		{"midnight", "00:00", 0, 0, false},
		{"single-digit hour", "5:17", 5, 17, false},
		{"with timezone suffix", "15:02 (BST)", 15, 2, false},
		{"with surrounding spaces", "  05:17  (EET) ", 5, 17, false},
		{"invalid format", "bad", 0, 0, true},
		{"empty string", "", 0, 0, true},
		{"missing minute", "15:", 0, 0, true},
		{"non-numeric", "ab:cd", 0, 0, true},
		{"hour out of range", "24:00", 0, 0, true},
		{"minute out of range", "12:60", 0, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse(tt.raw)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("Parse(%q) expected error, got nil", tt.raw)
				}
				return
			}
			if err != nil {
				t.Fatalf("Parse(%q) unexpected error: %v", tt.raw, err)
			}
			if got.Hour != tt.wantH || got.Minute != tt.wantM {
				t.Errorf("Parse(%q) = %02d:%02d, want %02d:%02d",
					tt.raw, got.Hour, got.Minute, tt.wantH, tt.wantM)
			}
		})
	}
}

func TestString(t *testing.T) {
	if got := (Clock{Hour: 5, Minute: 7}).String(); got != "05:07" {
		t.Errorf("String() = %q, want %q", got, "05:07")
	}
}

func TestAddMinutes(t *testing.T) {
	tests := []struct {
		name string
		in   Clock
		n    int
		want Clock
	}{
		{"within hour", Clock{12, 13}, 15, Clock{12, 28}},
		{"crosses hour", Clock{12, 50}, 15, Clock{13, 5}},
		{"crosses midnight", Clock{23, 50}, 20, Clock{0, 10}},
		{"zero offset", Clock{5, 17}, 0, Clock{5, 17}},
		{"negative crosses midnight back", Clock{0, 5}, -10, Clock{23, 55}},
		{"full day wraps", Clock{9, 0}, 24 * 60, Clock{9, 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := AddMinutes(tt.in, tt.n); got != tt.want {
				t.Errorf("AddMinutes(%v, %d) = %v, want %v", tt.in, tt.n, got, tt.want)
			}
		})
	}
}

func TestAnchorToDate(t *testing.T) {
	loc, _ := time.LoadLocation("Asia/Dhaka")
	ref := time.Date(2026, 3, 14, 18, 30, 45, 0, loc)

	got := AnchorToDate(Clock{5, 17}, ref)
	want := time.Date(2026, 3, 14, 5, 17, 0, 0, loc)
	if !got.Equal(want) {
		t.Errorf("AnchorToDate = %v, want %v", got, want)
	}
	if got.Location() != loc {
		t.Errorf("AnchorToDate location = %v, want %v", got.Location(), loc)
	}
}

func TestMinutesBetween(t *testing.T) {
	tests := []struct {
		name string
		a, b Clock
		want int
	}{
		{"forward same day", Clock{5, 17}, Clock{5, 32}, 15},
		{"equal", Clock{12, 0}, Clock{12, 0}, 0},
		{"rolls past midnight", Clock{23, 55}, Clock{0, 10}, 15},
		{"large backward reads as next day", Clock{19, 0}, Clock{18, 0}, 23 * 60},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := MinutesBetween(tt.a, tt.b); got != tt.want {
				t.Errorf("MinutesBetween(%v, %v) = %d, want %d", tt.a, tt.b, got, tt.want)
			}
		})
	}
}
