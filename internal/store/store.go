package store

import (
	"context"
	"crypto/sha256"
	"fmt"
	"time"

	"github.com/prayerwatch/prayerwatch/internal/jamaat"
	"github.com/prayerwatch/prayerwatch/internal/prayer"
)

// Storage keys. One JSON value per key.
const (
	keyNotificationSettings = "notificationSettings"
	keyJamaatOffsets        = "jamaatOffsets"
	keySelectedMosque       = "selectedMosque"
	keyLastScheduledDate    = "lastScheduledDate"
	keyPrayerTimesCache     = "prayerTimesCache"
)

// CacheValidity is how long a cached day of prayer times stays usable.
const CacheValidity = 24 * time.Hour

// NotificationSettings controls whether and how far ahead reminders
// fire.
type NotificationSettings struct {
	Enabled             bool `json:"enabled"`
	JamaatNotification  bool `json:"jamaatNotification"`
	PrayerNotification  bool `json:"prayerNotification"`
	BeforeJamaatMinutes int  `json:"beforeJamaatMinutes"`
	BeforePrayerMinutes int  `json:"beforePrayerMinutes"`
}

// DefaultNotificationSettings returns the settings used until the user
// opts in.
func DefaultNotificationSettings() NotificationSettings {
	return NotificationSettings{
		Enabled:             false,
		JamaatNotification:  true,
		PrayerNotification:  false,
		BeforeJamaatMinutes: 5,
		BeforePrayerMinutes: 10,
	}
}

// Mosque identifies the user's selected mosque for Jamaat reminders.
type Mosque struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Address string `json:"address,omitempty"`
}

// CachedTimes is one day of prayer times plus the context needed to
// judge staleness.
type CachedTimes struct {
	Date        string         `json:"date"` // YYYY-MM-DD
	Times       prayer.TimeSet `json:"times"`
	HijriDate   string         `json:"hijriDate,omitempty"`
	Timezone    string         `json:"timezone,omitempty"`
	Fingerprint string         `json:"fingerprint"`
	Timestamp   time.Time      `json:"timestamp"`
}

// Fingerprint hashes the parameters that affect prayer times, so a
// cached day is invalidated when the location or calculation settings
// change.
func Fingerprint(lat, lon float64, method, school, latAdjust, midnightMode int) string {
	raw := fmt.Sprintf("%.6f|%.6f|%d|%d|%d|%d", lat, lon, method, school, latAdjust, midnightMode)
	h := sha256.Sum256([]byte(raw))
	return fmt.Sprintf("%x", h[:8])
}

// FingerprintCity is the Fingerprint variant for city-based lookups,
// where no coordinates are known until the API responds.
func FingerprintCity(city, country string, method, school, latAdjust, midnightMode int) string {
	raw := fmt.Sprintf("%s|%s|%d|%d|%d|%d", city, country, method, school, latAdjust, midnightMode)
	h := sha256.Sum256([]byte(raw))
	return fmt.Sprintf("%x", h[:8])
}

// NotificationSettings loads the persisted settings overlaid onto the
// defaults. A missing or unreadable record yields the defaults.
func (s *Store) NotificationSettings(ctx context.Context) (NotificationSettings, error) {
	ns := DefaultNotificationSettings()
	if _, err := s.get(ctx, keyNotificationSettings, &ns); err != nil {
		return DefaultNotificationSettings(), err
	}
	return ns, nil
}

// SetNotificationSettings overwrites the persisted settings wholesale.
func (s *Store) SetNotificationSettings(ctx context.Context, ns NotificationSettings) error {
	return s.set(ctx, keyNotificationSettings, ns)
}

// JamaatOffsets loads the persisted offsets, clamped into range. A
// missing record yields the defaults.
func (s *Store) JamaatOffsets(ctx context.Context) (jamaat.Offsets, error) {
	var off jamaat.Offsets
	ok, err := s.get(ctx, keyJamaatOffsets, &off)
	if err != nil {
		return jamaat.DefaultOffsets(), err
	}
	if !ok || len(off) == 0 {
		return jamaat.DefaultOffsets(), nil
	}
	return jamaat.Normalize(off), nil
}

// SetJamaatOffsets overwrites the persisted offsets wholesale, clamping
// each value into range first.
func (s *Store) SetJamaatOffsets(ctx context.Context, off jamaat.Offsets) error {
	return s.set(ctx, keyJamaatOffsets, jamaat.Normalize(off))
}

// SelectedMosque returns the selected mosque, or nil when none is set.
func (s *Store) SelectedMosque(ctx context.Context) (*Mosque, error) {
	var m Mosque
	ok, err := s.get(ctx, keySelectedMosque, &m)
	if err != nil || !ok {
		return nil, err
	}
	return &m, nil
}

// SetSelectedMosque persists the selected mosque.
func (s *Store) SetSelectedMosque(ctx context.Context, m Mosque) error {
	return s.set(ctx, keySelectedMosque, m)
}

// ClearSelectedMosque removes the selection.
func (s *Store) ClearSelectedMosque(ctx context.Context) error {
	return s.remove(ctx, keySelectedMosque)
}

// LastScheduledDate returns the calendar date (YYYY-MM-DD) for which
// alarms were last computed, or "" when never.
func (s *Store) LastScheduledDate(ctx context.Context) (string, error) {
	var date string
	if _, err := s.get(ctx, keyLastScheduledDate, &date); err != nil {
		return "", err
	}
	return date, nil
}

// SetLastScheduledDate records the date for which alarms were computed.
func (s *Store) SetLastScheduledDate(ctx context.Context, date string) error {
	return s.set(ctx, keyLastScheduledDate, date)
}

// CachedPrayerTimes returns the cached day of prayer times if it is
// still valid for now and the given fingerprint. Stale, mismatched or
// unreadable entries are reported as absent.
func (s *Store) CachedPrayerTimes(ctx context.Context, now time.Time, fingerprint string) (*CachedTimes, error) {
	var entry CachedTimes
	ok, err := s.get(ctx, keyPrayerTimesCache, &entry)
	if err != nil || !ok {
		return nil, err
	}
	if entry.Date != now.Format("2006-01-02") {
		return nil, nil
	}
	if now.Sub(entry.Timestamp) >= CacheValidity {
		return nil, nil
	}
	if fingerprint != "" && entry.Fingerprint != fingerprint {
		return nil, nil
	}
	return &entry, nil
}

// SetCachedPrayerTimes stores a day of prayer times, stamping it with
// the write time.
func (s *Store) SetCachedPrayerTimes(ctx context.Context, entry CachedTimes) error {
	if entry.Timestamp.IsZero() {
		entry.Timestamp = time.Now()
	}
	return s.set(ctx, keyPrayerTimesCache, entry)
}

// ClearCachedPrayerTimes drops the cached day, forcing a refetch. Called
// when calculation settings change.
func (s *Store) ClearCachedPrayerTimes(ctx context.Context) error {
	return s.remove(ctx, keyPrayerTimesCache)
}
