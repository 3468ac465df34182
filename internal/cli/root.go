// Package cli defines the prayerwatch command tree.
package cli

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/prayerwatch/prayerwatch/internal/config"
	"github.com/prayerwatch/prayerwatch/internal/store"
)

// Global flags shared across all subcommands.
var (
	FlagCity               string
	FlagCountry            string
	FlagLatitude           float64
	FlagLongitude          float64
	FlagMethod             int
	FlagSchool             int
	FlagLatitudeAdjustment int
	FlagMidnightMode       int
	FlagJSON               bool
	FlagDataDir            string
	FlagTimeFormat         string
)

// loadedConfig holds the config loaded during PersistentPreRunE.
// Available to all subcommand handlers.
var loadedConfig *config.Config

// NewRootCmd creates the root command for the prayerwatch CLI.
// The version parameter is set by the calling binary via ldflags.
func NewRootCmd(version string) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:     "prayerwatch",
		Short:   "Prayer and Jamaat time tracker",
		Long:    "Track daily prayer windows, Jamaat times, prohibited times, and reminders, powered by the Al Adhan API.",
		Version: version,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}
			loadedConfig = cfg
			return nil
		},
		// Default action: show today's schedule.
		RunE:          runToday,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Register global persistent flags.
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&FlagCity, "city", "", "Override city (takes precedence over config)")
	pf.StringVar(&FlagCountry, "country", "", "Override country")
	pf.Float64Var(&FlagLatitude, "latitude", 0, "Override latitude")
	pf.Float64Var(&FlagLongitude, "longitude", 0, "Override longitude")
	pf.IntVar(&FlagMethod, "method", -1, "Override calculation method (0-23)")
	pf.IntVar(&FlagSchool, "school", -1, "Override school (0=Shafi, 1=Hanafi)")
	pf.IntVar(&FlagLatitudeAdjustment, "latitude-adjustment", -1, "Override high-latitude rule (0-3)")
	pf.IntVar(&FlagMidnightMode, "midnight-mode", -1, "Override midnight mode (0=standard, 1=jafari)")
	pf.BoolVar(&FlagJSON, "json", false, "Output as JSON (where supported)")
	pf.StringVar(&FlagDataDir, "data-dir", "", "Data directory (default: ~/.local/share/prayerwatch/)")
	pf.StringVar(&FlagTimeFormat, "time-format", "", "Time format: 12h or 24h (overrides config)")

	// Register subcommands.
	rootCmd.AddCommand(newNextCmd())
	rootCmd.AddCommand(newJamaatCmd())
	rootCmd.AddCommand(newProhibitedCmd())
	rootCmd.AddCommand(newNotifyCmd())
	rootCmd.AddCommand(newDaemonCmd())
	rootCmd.AddCommand(newConfigCmd())
	rootCmd.AddCommand(newMethodsCmd())

	return rootCmd
}

// effectiveConfig returns the merged configuration values,
// applying the priority: CLI flags > config file > defaults.
// It uses cobra's Changed() to detect whether a flag was explicitly set.
func effectiveConfig(cmd *cobra.Command) *config.Config {
	cfg := loadedConfig
	if cfg == nil {
		empty := config.Config{}
		cfg = &empty
	}

	// Apply defaults for unset config values.
	defaults := config.Defaults()

	flags := cmd.Flags()
	root := cmd.Root().PersistentFlags()

	if flagWasSet(flags, root, "city") {
		cfg.City = FlagCity
	}
	if flagWasSet(flags, root, "country") {
		cfg.Country = FlagCountry
	}
	if flagWasSet(flags, root, "latitude") {
		cfg.Latitude = FlagLatitude
	}
	if flagWasSet(flags, root, "longitude") {
		cfg.Longitude = FlagLongitude
	}
	if flagWasSet(flags, root, "method") {
		cfg.Method = &FlagMethod
	} else if cfg.Method == nil {
		cfg.Method = defaults.Method
	}
	if flagWasSet(flags, root, "school") {
		cfg.School = &FlagSchool
	} else if cfg.School == nil {
		cfg.School = defaults.School
	}
	if flagWasSet(flags, root, "latitude-adjustment") {
		cfg.LatitudeAdjustment = &FlagLatitudeAdjustment
	} else if cfg.LatitudeAdjustment == nil {
		cfg.LatitudeAdjustment = defaults.LatitudeAdjustment
	}
	if flagWasSet(flags, root, "midnight-mode") {
		cfg.MidnightMode = &FlagMidnightMode
	} else if cfg.MidnightMode == nil {
		cfg.MidnightMode = defaults.MidnightMode
	}
	if flagWasSet(flags, root, "data-dir") {
		cfg.DataDir = FlagDataDir
	}

	// Time format: CLI flag > config > default ("24h").
	if flagWasSet(flags, root, "time-format") {
		cfg.TimeFormat = FlagTimeFormat
	}
	if cfg.TimeFormat == "" {
		cfg.TimeFormat = defaults.TimeFormat
	}

	return cfg
}

// flagWasSet checks if a flag was explicitly set on either the local or persistent flag set.
func flagWasSet(local, persistent *pflag.FlagSet, name string) bool {
	if f := local.Lookup(name); f != nil && f.Changed {
		return true
	}
	if f := persistent.Lookup(name); f != nil && f.Changed {
		return true
	}
	return false
}

// openStore opens the SQLite store in the effective data directory.
func openStore(cmd *cobra.Command, cfg *config.Config) (*store.Store, error) {
	dir := FlagDataDir
	if dir == "" {
		env, err := config.LoadEnv()
		if err != nil {
			return nil, err
		}
		dir, err = env.DataDirOrDefault(cfg)
		if err != nil {
			return nil, err
		}
	}
	return store.Open(cmd.Context(), filepath.Join(dir, "prayerwatch.db"))
}
