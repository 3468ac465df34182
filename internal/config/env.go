package config

import (
	"os"
	"path/filepath"

	"github.com/kelseyhightower/envconfig"
)

// Env holds daemon runtime settings read from the environment. User
// preferences live in Config; these only control how the background
// process runs.
type Env struct {
	DataDir          string `envconfig:"DATA_DIR"`
	LogLevel         string `envconfig:"LOG_LEVEL" default:"info"` // debug|info|warn|error
	ScheduleInterval string `envconfig:"SCHEDULE_INTERVAL" default:"1h"`
}

// LoadEnv reads PRAYERWATCH_-prefixed environment variables into Env.
func LoadEnv() (Env, error) {
	var env Env
	if err := envconfig.Process("prayerwatch", &env); err != nil {
		return env, err
	}
	return env, nil
}

// DataDirOrDefault resolves the data directory: env value, then config
// value, then ~/.local/share/prayerwatch (respecting $XDG_DATA_HOME).
func (e Env) DataDirOrDefault(cfg *Config) (string, error) {
	if e.DataDir != "" {
		return e.DataDir, nil
	}
	if cfg != nil && cfg.DataDir != "" {
		return cfg.DataDir, nil
	}

	dir := os.Getenv("XDG_DATA_HOME")
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		dir = filepath.Join(home, ".local", "share")
	}
	return filepath.Join(dir, configDirName), nil
}
