package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/pelletier/go-toml/v2"
	"github.com/rhyrak/go-pick/internal/scheduler"
	"github.com/rhyrak/go-pick/pkg/model"
)

type Config struct {
	Data        DataConfig       `toml:"data"`
	Preferences PreferenceConfig `toml:"preferences"`
	Server      ServerConfig     `toml:"server"`
	Log         LogConfig        `toml:"log"`
}

type DataConfig struct {
	SessionsFile string `toml:"sessions_file"`
	Delimiter    string `toml:"delimiter"`
	Database     string `toml:"database"`
	Term         string `toml:"term"`
	Timezone     string `toml:"timezone"`
}

type PreferenceConfig struct {
	NoBefore        bool   `toml:"no_before"`
	BeforeCutoff    string `toml:"before_cutoff"`
	NoAfter         bool   `toml:"no_after"`
	AfterCutoff     string `toml:"after_cutoff"`
	AvoidFriday     bool   `toml:"avoid_friday"`
	AvoidBackToBack bool   `toml:"avoid_back_to_back"`
	MinimizeDays    bool   `toml:"minimize_days"`
}

type ServerConfig struct {
	Addr        string `toml:"addr"`
	IdleTimeout string `toml:"idle_timeout"` // e.g. "30m", "0" keeps sessions forever
}

type LogConfig struct {
	Level string `toml:"level"` // debug, info, warn or error
}

func DefaultConfig() Config {
	return Config{
		Data: DataConfig{
			SessionsFile: "course_offerings.csv",
			Delimiter:    ",",
			Database:     "",
			Term:         "default",
			Timezone:     "UTC",
		},
		Preferences: PreferenceConfig{
			BeforeCutoff: "11:00",
			AfterCutoff:  "17:00",
		},
		Server: ServerConfig{
			Addr:        ":3001",
			IdleTimeout: "30m",
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

func ConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("finding home directory: %w", err)
	}
	return filepath.Join(home, ".config", "gopick"), nil
}

// ConfigPath is the default location of config.toml.
func ConfigPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

// Load reads the config at path, or at ConfigPath when path is empty. A
// missing file yields the defaults. Unknown keys are an error so a
// misspelled preference is never silently ignored.
func Load(path string) (*Config, error) {
	if path == "" {
		p, err := ConfigPath()
		if err != nil {
			return nil, err
		}
		path = p
	}

	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			applyEnvOverrides(&cfg)
			return &cfg, nil
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	dec := toml.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&cfg); err != nil {
		var strict *toml.StrictMissingError
		if errors.As(err, &strict) {
			return nil, fmt.Errorf("parsing config file: %s", strict.String())
		}
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	applyEnvOverrides(&cfg)
	return &cfg, nil
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("GOPICK_SESSIONS_FILE"); v != "" {
		cfg.Data.SessionsFile = v
	}
	if v := os.Getenv("GOPICK_DATABASE"); v != "" {
		cfg.Data.Database = v
	}
	if v := os.Getenv("GOPICK_TERM"); v != "" {
		cfg.Data.Term = v
	}
	if v := os.Getenv("GOPICK_LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
	if v := os.Getenv("GOPICK_ADDR"); v != "" {
		cfg.Server.Addr = v
	}
}

// IdleTimeout is how long the server keeps an unused browsing session.
func (c *Config) IdleTimeout() (time.Duration, error) {
	if c.Server.IdleTimeout == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(c.Server.IdleTimeout)
	if err != nil || d < 0 {
		return 0, fmt.Errorf("invalid server.idle_timeout %q", c.Server.IdleTimeout)
	}
	return d, nil
}

// DelimiterRune returns the first rune of the configured delimiter.
func (c *Config) DelimiterRune() rune {
	for _, r := range c.Data.Delimiter {
		return r
	}
	return ','
}

// DatabasePath returns the configured snapshot database, defaulting to
// gopick.db in the config directory.
func (c *Config) DatabasePath() (string, error) {
	if c.Data.Database != "" {
		return c.Data.Database, nil
	}
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "gopick.db"), nil
}

// ScoringPreferences converts the [preferences] section into validated scoring
// preferences.
func (c *Config) ScoringPreferences() (model.Preferences, error) {
	p := c.Preferences
	var names []string
	if p.NoBefore {
		names = append(names, scheduler.PrefNoBefore)
	}
	if p.NoAfter {
		names = append(names, scheduler.PrefNoAfter)
	}
	if p.AvoidFriday {
		names = append(names, scheduler.PrefAvoidFriday)
	}
	if p.AvoidBackToBack {
		names = append(names, scheduler.PrefAvoidBackToBack)
	}
	if p.MinimizeDays {
		names = append(names, scheduler.PrefMinimizeDays)
	}
	return scheduler.ParsePreferences(names, p.BeforeCutoff, p.AfterCutoff)
}

// Save writes cfg to path, creating the directory.
func Save(cfg *Config, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	out, err := toml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	return os.WriteFile(path, out, 0644)
}
