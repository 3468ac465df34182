// Package app wires the daemon: environment, logger, store, alarm
// runtime, notifier, and scheduler.
package app

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/prayerwatch/prayerwatch/internal/alarm"
	"github.com/prayerwatch/prayerwatch/internal/config"
	"github.com/prayerwatch/prayerwatch/internal/fetch"
	"github.com/prayerwatch/prayerwatch/internal/logger"
	"github.com/prayerwatch/prayerwatch/internal/notify"
	"github.com/prayerwatch/prayerwatch/internal/sched"
	"github.com/prayerwatch/prayerwatch/internal/store"
)

// Run starts the reminder daemon and blocks until ctx is canceled or an
// interrupt arrives.
func Run(ctx context.Context) error {
	env, err := config.LoadEnv()
	if err != nil {
		return fmt.Errorf("load environment: %w", err)
	}

	log, err := logger.New(env.LogLevel, false)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer func() { _ = log.Sync() }()

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	dir, err := env.DataDirOrDefault(cfg)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	st, err := store.Open(ctx, filepath.Join(dir, "prayerwatch.db"))
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer st.Close()

	notifier := notify.New()

	// The alarm handler closes over the scheduler, so wire the runtime
	// first and assign the scheduler before any alarm can fire.
	var scheduler *sched.Scheduler
	runtime := alarm.NewRuntime(func(name string) {
		scheduler.HandleAlarm(context.Background(), name)
	})
	defer runtime.Close()

	scheduler = sched.New(st, runtime, notifier, log)
	if d, err := time.ParseDuration(env.ScheduleInterval); err == nil {
		scheduler.SetInterval(d)
	} else {
		log.Warn("invalid schedule interval, using default",
			zap.String("value", env.ScheduleInterval), zap.Error(err))
	}

	fetcher := fetch.New(st)
	refresh := func() {
		if _, err := fetcher.EnsureDayTimes(ctx, cfg); err != nil {
			log.Warn("refresh prayer times failed", zap.Error(err))
		}
	}

	// Populate the cache before the scheduler's first pass, then keep it
	// fresh so the day rollover picks up tomorrow's times.
	refresh()
	go func() {
		ticker := time.NewTicker(time.Hour)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				refresh()
			}
		}
	}()

	log.Info("daemon started", zap.String("data_dir", dir))
	scheduler.Run(ctx)
	log.Info("daemon stopped")
	return nil
}
