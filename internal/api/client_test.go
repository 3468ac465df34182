package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

// sampleResponse returns a valid Al Adhan API response for testing.
func sampleResponse() Response {
	return Response{
		Code:   200,
		Status: "OK",
		Data: Data{
			Timings: Timings{
				Fajr:    "05:17",
				Sunrise: "06:48",
				Dhuhr:   "12:13",
				Asr:     "15:02",
				Maghrib: "17:39",
				Isha:    "19:10",
			},
			Date: DateInfo{
				Readable: "28 Feb 2026",
				Hijri: HijriDate{
					Day:   "10",
					Month: HijriMonth{Number: 9, En: "Ramaḍān"},
					Year:  "1447",
					Designation: HijriDesignation{
						Abbreviated: "AH",
					},
				},
			},
			Meta: Meta{
				Latitude:  23.8103,
				Longitude: 90.4125,
				Timezone:  "Asia/Dhaka",
				Method:    MethodInfo{ID: 1, Name: "Karachi"},
				School:    "HANAFI",
			},
		},
	}
}

func TestNewClient(t *testing.T) {
	c := NewClient()
	if c == nil {
		t.Fatal("NewClient returned nil")
	}
	if c.BaseURL != defaultBaseURL {
		t.Errorf("BaseURL = %q, want %q", c.BaseURL, defaultBaseURL)
	}
}

func TestFetchByCoordinates_Success(t *testing.T) {
	resp := sampleResponse()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Path contains /timings/ with date format DD-MM-YYYY.
		if !strings.Contains(r.URL.Path, "/timings/28-02-2026") {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		q := r.URL.Query()
		if q.Get("latitude") == "" {
			t.Error("missing latitude param")
		}
		if q.Get("longitude") == "" {
			t.Error("missing longitude param")
		}
		if q.Get("method") != "1" {
			t.Errorf("method = %q, want %q", q.Get("method"), "1")
		}
		if q.Get("school") != "1" {
			t.Errorf("school = %q, want %q", q.Get("school"), "1")
		}
		if q.Get("latitudeAdjustmentMethod") != "3" {
			t.Errorf("latitudeAdjustmentMethod = %q, want %q", q.Get("latitudeAdjustmentMethod"), "3")
		}
		if q.Get("midnightMode") != "0" {
			t.Errorf("midnightMode = %q, want %q", q.Get("midnightMode"), "0")
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(resp)
	}))
	defer server.Close()

	c := NewClient()
	c.BaseURL = server.URL

	date := time.Date(2026, 2, 28, 0, 0, 0, 0, time.UTC)
	p := Params{Method: 1, School: 1, LatitudeAdjustment: 3, MidnightMode: 0}
	got, err := c.FetchByCoordinates(context.Background(), date, 23.8103, 90.4125, p)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Data.Timings.Fajr != "05:17" {
		t.Errorf("Fajr = %q, want %q", got.Data.Timings.Fajr, "05:17")
	}
	if got.Data.Meta.Timezone != "Asia/Dhaka" {
		t.Errorf("Timezone = %q, want %q", got.Data.Meta.Timezone, "Asia/Dhaka")
	}
}

func TestFetchByCoordinates_UnsetParamsOmitted(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		for _, key := range []string{"method", "school", "latitudeAdjustmentMethod", "midnightMode"} {
			if q.Get(key) != "" {
				t.Errorf("%s should not be set, got %q", key, q.Get(key))
			}
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(sampleResponse())
	}))
	defer server.Close()

	c := NewClient()
	c.BaseURL = server.URL

	date := time.Date(2026, 2, 28, 0, 0, 0, 0, time.UTC)
	if _, err := c.FetchByCoordinates(context.Background(), date, 23.8103, 90.4125, DefaultParams()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestFetchByCity_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.Contains(r.URL.Path, "/timingsByCity/28-02-2026") {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		q := r.URL.Query()
		if q.Get("city") != "Dhaka" {
			t.Errorf("city = %q, want %q", q.Get("city"), "Dhaka")
		}
		if q.Get("country") != "Bangladesh" {
			t.Errorf("country = %q, want %q", q.Get("country"), "Bangladesh")
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(sampleResponse())
	}))
	defer server.Close()

	c := NewClient()
	c.BaseURL = server.URL

	date := time.Date(2026, 2, 28, 0, 0, 0, 0, time.UTC)
	if _, err := c.FetchByCity(context.Background(), date, "Dhaka", "Bangladesh", DefaultParams()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestFetch_HTTPError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "internal error", http.StatusInternalServerError)
	}))
	defer server.Close()

	c := NewClient()
	c.BaseURL = server.URL

	date := time.Date(2026, 2, 28, 0, 0, 0, 0, time.UTC)
	_, err := c.FetchByCoordinates(context.Background(), date, 0, 0, DefaultParams())
	if err == nil {
		t.Fatal("expected error for HTTP 500, got nil")
	}
}

func TestFetch_APIErrorCode(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(Response{Code: 400, Status: "Bad Request"})
	}))
	defer server.Close()

	c := NewClient()
	c.BaseURL = server.URL

	date := time.Date(2026, 2, 28, 0, 0, 0, 0, time.UTC)
	_, err := c.FetchByCoordinates(context.Background(), date, 0, 0, DefaultParams())
	if err == nil {
		t.Fatal("expected error for API code 400, got nil")
	}
}

func TestFetch_ContextCanceled(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
		json.NewEncoder(w).Encode(sampleResponse())
	}))
	defer server.Close()

	c := NewClient()
	c.BaseURL = server.URL

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	date := time.Date(2026, 2, 28, 0, 0, 0, 0, time.UTC)
	_, err := c.FetchByCoordinates(ctx, date, 0, 0, DefaultParams())
	if err == nil {
		t.Fatal("expected context deadline error, got nil")
	}
}

func TestTimings_TimeSet(t *testing.T) {
	ts := sampleResponse().Data.Timings.TimeSet()
	if ts["Fajr"] != "05:17" || ts["Isha"] != "19:10" {
		t.Errorf("unexpected TimeSet: %v", ts)
	}
	if len(ts) != 6 {
		t.Errorf("expected 6 entries, got %d", len(ts))
	}
}

func TestHijriDate_Format(t *testing.T) {
	h := sampleResponse().Data.Date.Hijri
	if got := h.Format(); got != "10 Ramaḍān 1447 AH" {
		t.Errorf("Format() = %q", got)
	}

	if got := (HijriDate{}).Format(); got != "" {
		t.Errorf("empty Hijri Format() = %q, want empty", got)
	}
}
