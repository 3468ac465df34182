// Package fetch resolves the user's location and keeps the current
// day's prayer times cached, going to the Al Adhan API on a miss.
package fetch

import (
	"context"
	"fmt"
	"time"

	"github.com/prayerwatch/prayerwatch/internal/api"
	"github.com/prayerwatch/prayerwatch/internal/clock"
	"github.com/prayerwatch/prayerwatch/internal/config"
	"github.com/prayerwatch/prayerwatch/internal/geo"
	"github.com/prayerwatch/prayerwatch/internal/prayer"
	"github.com/prayerwatch/prayerwatch/internal/store"
)

// Location is the effective lookup target after merging configuration
// and auto-detection.
type Location struct {
	Lat, Lon float64
	City     string
	Country  string
	// ByCity selects the city/country API endpoint instead of
	// coordinates.
	ByCity bool
	// Timezone is an optional hint from geo-detection.
	Timezone string
}

// ResolveLocation determines where to compute prayer times for.
// Priority: coordinates > city/country > IP auto-detection.
func ResolveLocation(ctx context.Context, cfg *config.Config) (Location, error) {
	switch {
	case cfg.Latitude != 0 || cfg.Longitude != 0:
		return Location{Lat: cfg.Latitude, Lon: cfg.Longitude}, nil
	case cfg.City != "":
		if cfg.Country == "" {
			return Location{}, fmt.Errorf("country is required when a city is set")
		}
		return Location{City: cfg.City, Country: cfg.Country, ByCity: true}, nil
	default:
		detected, err := geo.DetectLocation(ctx)
		if err != nil {
			return Location{}, fmt.Errorf("no location configured and auto-detection failed: %w", err)
		}
		return Location{
			Lat:      detected.Latitude,
			Lon:      detected.Longitude,
			Timezone: detected.Timezone,
		}, nil
	}
}

// Fetcher loads the day's prayer times, serving from the store's cache
// when a valid entry exists.
type Fetcher struct {
	Store  *store.Store
	Client *api.Client
}

// New creates a Fetcher backed by the default API client.
func New(st *store.Store) *Fetcher {
	return &Fetcher{Store: st, Client: api.NewClient()}
}

// EnsureDayTimes returns today's prayer times for the configured
// location, fetching and caching them if the store has no valid entry.
func (f *Fetcher) EnsureDayTimes(ctx context.Context, cfg *config.Config) (*store.CachedTimes, error) {
	now := time.Now()

	loc, err := ResolveLocation(ctx, cfg)
	if err != nil {
		return nil, err
	}
	p := paramsFrom(cfg)
	fp := fingerprint(loc, p)

	if entry, err := f.Store.CachedPrayerTimes(ctx, now, fp); err == nil && entry != nil {
		return entry, nil
	}

	var resp *api.Response
	if loc.ByCity {
		resp, err = f.Client.FetchByCity(ctx, now, loc.City, loc.Country, p)
	} else {
		resp, err = f.Client.FetchByCoordinates(ctx, now, loc.Lat, loc.Lon, p)
	}
	if err != nil {
		return nil, err
	}

	tz := loc.Timezone
	if tz == "" {
		tz = resp.Data.Meta.Timezone
	}

	entry := store.CachedTimes{
		Date:        now.Format("2006-01-02"),
		Times:       normalize(resp.Data.Timings.TimeSet()),
		HijriDate:   resp.Data.Date.Hijri.Format(),
		Timezone:    tz,
		Fingerprint: fp,
		Timestamp:   now,
	}
	// Cache write is best-effort; the fetched times are still usable.
	_ = f.Store.SetCachedPrayerTimes(ctx, entry)

	return &entry, nil
}

// paramsFrom maps the merged configuration onto API parameters.
func paramsFrom(cfg *config.Config) api.Params {
	p := api.DefaultParams()
	p.Method = cfg.MethodOrDefault(-1)
	p.School = cfg.SchoolOrDefault(-1)
	p.LatitudeAdjustment = cfg.LatitudeAdjustmentOrDefault(-1)
	p.MidnightMode = cfg.MidnightModeOrDefault(-1)
	return p
}

func fingerprint(loc Location, p api.Params) string {
	if loc.ByCity {
		return store.FingerprintCity(loc.City, loc.Country, p.Method, p.School, p.LatitudeAdjustment, p.MidnightMode)
	}
	return store.Fingerprint(loc.Lat, loc.Lon, p.Method, p.School, p.LatitudeAdjustment, p.MidnightMode)
}

// normalize re-renders every event time as plain HH:MM, dropping
// timezone suffixes the API may append. Malformed entries are omitted.
func normalize(times prayer.TimeSet) prayer.TimeSet {
	out := make(prayer.TimeSet, len(times))
	for _, name := range prayer.Order {
		c, err := clock.Parse(times[name])
		if err != nil {
			continue
		}
		out[name] = c.String()
	}
	return out
}
