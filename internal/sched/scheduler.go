// Package sched computes and fires the day's prayer and Jamaat
// reminders.
package sched

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/prayerwatch/prayerwatch/internal/alarm"
	"github.com/prayerwatch/prayerwatch/internal/clock"
	"github.com/prayerwatch/prayerwatch/internal/jamaat"
	"github.com/prayerwatch/prayerwatch/internal/notify"
	"github.com/prayerwatch/prayerwatch/internal/prayer"
	"github.com/prayerwatch/prayerwatch/internal/store"
)

// Alarm name prefixes. Scheduling a day first clears both prefixes, so
// stale alarms from a previous location or settings never survive.
const (
	PrayerAlarmPrefix = "prayer_"
	JamaatAlarmPrefix = "jamaat_"
)

// Notification titles.
const (
	prayerTitle = "Prayer Time Reminder"
	jamaatTitle = "Jamaat Time Reminder"
)

// markerLayout is the calendar-date format recorded in the scheduling
// marker.
const markerLayout = "2006-01-02"

// Storage is the slice of the store the scheduler reads and writes.
// *store.Store satisfies it.
type Storage interface {
	NotificationSettings(ctx context.Context) (store.NotificationSettings, error)
	JamaatOffsets(ctx context.Context) (jamaat.Offsets, error)
	SelectedMosque(ctx context.Context) (*store.Mosque, error)
	LastScheduledDate(ctx context.Context) (string, error)
	SetLastScheduledDate(ctx context.Context, date string) error
	CachedPrayerTimes(ctx context.Context, now time.Time, fingerprint string) (*store.CachedTimes, error)
}

// Scheduler turns the day's prayer times plus notification settings
// into pending alarms, and composes a notification when one fires.
// Every storage and platform call is individually fault-tolerant: a
// failure is logged and that one step skipped, never propagated.
type Scheduler struct {
	store    Storage
	alarms   alarm.Service
	notifier notify.Notifier
	log      *zap.Logger

	now      func() time.Time
	interval time.Duration
}

// New creates a Scheduler with an hourly wake-up interval.
func New(st Storage, alarms alarm.Service, notifier notify.Notifier, log *zap.Logger) *Scheduler {
	return &Scheduler{
		store:    st,
		alarms:   alarms,
		notifier: notifier,
		log:      log,
		now:      time.Now,
		interval: time.Hour,
	}
}

// SetInterval overrides the wake-up interval used by Run. Non-positive
// values are ignored.
func (s *Scheduler) SetInterval(d time.Duration) {
	if d > 0 {
		s.interval = d
	}
}

// Run performs one scheduling pass immediately, then once per wake-up
// interval until ctx is canceled. Invocations are serialized by this
// loop; the marker read-then-write is not atomic across overlapping
// processes, which is accepted.
func (s *Scheduler) Run(ctx context.Context) {
	s.ScheduleToday(ctx, false)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.log.Info("scheduler stopping")
			return
		case <-ticker.C:
			s.ScheduleToday(ctx, false)
		}
	}
}

// ScheduleToday computes and registers today's reminder alarms. It is
// idempotent within a calendar day: once the scheduling marker records
// today's date, later calls no-op unless force is set (a settings
// change logically supersedes the previous schedule; clearing both
// alarm prefixes before re-adding acts as the cancel-and-replace).
func (s *Scheduler) ScheduleToday(ctx context.Context, force bool) {
	now := s.now()
	today := now.Format(markerLayout)

	settings, err := s.store.NotificationSettings(ctx)
	if err != nil {
		// Safe default: assume notifications disabled.
		s.log.Warn("read notification settings failed", zap.Error(err))
		return
	}
	if !settings.Enabled {
		s.log.Debug("notifications disabled")
		return
	}

	if !force {
		last, err := s.store.LastScheduledDate(ctx)
		if err != nil {
			s.log.Warn("read scheduling marker failed", zap.Error(err))
		} else if last == today {
			s.log.Debug("already scheduled for today", zap.String("date", today))
			return
		}
	}

	cached, err := s.store.CachedPrayerTimes(ctx, now, "")
	if err != nil {
		s.log.Warn("read prayer times failed", zap.Error(err))
		return
	}
	if cached == nil {
		s.log.Info("no prayer times available, skipping scheduling")
		return
	}
	times := cached.Times

	// Old alarms must be gone before new ones are created, or a
	// previous configuration's entries would survive under other keys.
	if err := s.alarms.ClearPrefix(PrayerAlarmPrefix); err != nil {
		s.log.Warn("clear prayer alarms failed", zap.Error(err))
	}
	if err := s.alarms.ClearPrefix(JamaatAlarmPrefix); err != nil {
		s.log.Warn("clear jamaat alarms failed", zap.Error(err))
	}

	if settings.PrayerNotification {
		s.createAlarms(PrayerAlarmPrefix, times, settings.BeforePrayerMinutes, now)
	}

	if settings.JamaatNotification {
		s.scheduleJamaat(ctx, times, settings.BeforeJamaatMinutes, now)
	}

	if err := s.store.SetLastScheduledDate(ctx, today); err != nil {
		s.log.Warn("write scheduling marker failed", zap.Error(err))
	}
	s.log.Info("reminders scheduled", zap.String("date", today))
}

// scheduleJamaat registers jamaat_ alarms when Jamaat times are
// derivable and a mosque is selected.
func (s *Scheduler) scheduleJamaat(ctx context.Context, times prayer.TimeSet, lead int, now time.Time) {
	mosque, err := s.store.SelectedMosque(ctx)
	if err != nil {
		s.log.Warn("read selected mosque failed", zap.Error(err))
		return
	}
	if mosque == nil {
		s.log.Debug("no mosque selected, skipping jamaat reminders")
		return
	}

	offsets, err := s.store.JamaatOffsets(ctx)
	if err != nil {
		s.log.Warn("read jamaat offsets failed", zap.Error(err))
		return
	}

	jamaatTimes := jamaat.ComputeTimes(times, offsets)
	if len(jamaatTimes) == 0 {
		s.log.Debug("no jamaat times derivable")
		return
	}
	s.createAlarms(JamaatAlarmPrefix, jamaatTimes, lead, now)
}

// createAlarms registers one alarm per notifiable prayer at the event
// time minus lead minutes, skipping instants already in the past.
func (s *Scheduler) createAlarms(prefix string, times prayer.TimeSet, lead int, now time.Time) {
	for _, name := range prayer.NotifiableNames {
		raw, ok := times[name]
		if !ok {
			continue
		}
		c, err := clock.Parse(raw)
		if err != nil {
			// Malformed entry is treated as absent.
			continue
		}

		at := clock.AnchorToDate(c, now).Add(-time.Duration(lead) * time.Minute)
		if !at.After(now) {
			continue
		}

		key := prefix + name
		if err := s.alarms.Create(key, at); err != nil {
			s.log.Warn("create alarm failed", zap.String("alarm", key), zap.Error(err))
			continue
		}
		s.log.Debug("alarm scheduled", zap.String("alarm", key), zap.Time("at", at))
	}
}

// HandleAlarm composes and issues the notification for an elapsed
// prayer_ or jamaat_ alarm. Unknown names are ignored.
func (s *Scheduler) HandleAlarm(ctx context.Context, name string) {
	settings, err := s.store.NotificationSettings(ctx)
	if err != nil {
		s.log.Warn("read notification settings failed", zap.Error(err))
		settings = store.DefaultNotificationSettings()
	}

	switch {
	case strings.HasPrefix(name, PrayerAlarmPrefix):
		p := strings.TrimPrefix(name, PrayerAlarmPrefix)
		body := fmt.Sprintf("%s prayer time is in %d minutes", p, settings.BeforePrayerMinutes)
		s.send(name, prayerTitle, body)

	case strings.HasPrefix(name, JamaatAlarmPrefix):
		p := strings.TrimPrefix(name, JamaatAlarmPrefix)
		mosqueName := "selected mosque"
		if mosque, err := s.store.SelectedMosque(ctx); err != nil {
			s.log.Warn("read selected mosque failed", zap.Error(err))
		} else if mosque != nil && mosque.Name != "" {
			mosqueName = mosque.Name
		}
		body := fmt.Sprintf("%s Jamaat starts in %d minutes at %s", p, settings.BeforeJamaatMinutes, mosqueName)
		s.send(name, jamaatTitle, body)

	default:
		s.log.Debug("ignoring unknown alarm", zap.String("alarm", name))
	}
}

func (s *Scheduler) send(alarmName, title, body string) {
	id := fmt.Sprintf("%s_%s", alarmName, uuid.NewString())
	if err := s.notifier.Send(id, title, body); err != nil {
		s.log.Warn("send notification failed", zap.String("alarm", alarmName), zap.Error(err))
		return
	}
	s.log.Info("notification sent", zap.String("alarm", alarmName), zap.String("body", body))
}
