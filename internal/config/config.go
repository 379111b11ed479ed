package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"

	"github.com/ttu/emergency-supply-tracker-sub006/internal/kit"
)

const (
	EnvConfig           = "PREP_CONFIG"
	EnvStore            = "PREP_STORE"
	EnvDB               = "PREP_DB"
	EnvLogLevel         = "PREP_LOG_LEVEL"
	EnvLogFormat        = "PREP_LOG_FORMAT"
	EnvLanguage         = "PREP_LANG"
	EnvExpiringSoonDays = "PREP_EXPIRING_SOON_DAYS"
)

const (
	BackendSQLite = "sqlite"
	BackendFile   = "file"

	defaultLogLevel     = "warn"
	defaultLogFormat    = "console"
	defaultHistoryLimit = 20
	defaultExpiringDays = 7
)

// Config is the runtime configuration, read from an optional YAML file and
// then overridden from the environment.
type Config struct {
	Store    StoreConfig `yaml:"store"`
	Log      LogConfig   `yaml:"log"`
	Language string      `yaml:"language"`
	Alerts   AlertConfig `yaml:"alerts"`
}

type StoreConfig struct {
	// Backend is sqlite or file.
	Backend string `yaml:"backend"`
	// Path is the database or JSON file. Empty means the backend default.
	Path         string `yaml:"path"`
	HistoryLimit int    `yaml:"history_limit"`
}

type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

type AlertConfig struct {
	ExpiringSoonDays int `yaml:"expiring_soon_days"`
}

func Default() *Config {
	return &Config{
		Store:    StoreConfig{Backend: BackendSQLite, HistoryLimit: defaultHistoryLimit},
		Log:      LogConfig{Level: defaultLogLevel, Format: defaultLogFormat},
		Language: string(kit.DefaultLanguage),
		Alerts:   AlertConfig{ExpiringSoonDays: defaultExpiringDays},
	}
}

// DefaultPath is ~/.config/prep/config.yaml.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("get config dir: %w", err)
	}
	return filepath.Join(dir, "prep", "config.yaml"), nil
}

// Load reads path, or $PREP_CONFIG, or the default location. A missing file
// is only an error when it was asked for explicitly.
func Load(path string) (*Config, error) {
	cfg := Default()

	explicit := true
	if path == "" {
		path = os.Getenv(EnvConfig)
	}
	if path == "" {
		explicit = false
		p, err := DefaultPath()
		if err == nil {
			path = p
		}
	}

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case err == nil:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("parse config %s: %w", path, err)
			}
		case errors.Is(err, os.ErrNotExist) && !explicit:
		default:
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() error {
	if v := strings.TrimSpace(os.Getenv(EnvStore)); v != "" {
		c.Store.Backend = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvDB)); v != "" {
		c.Store.Path = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvLogLevel)); v != "" {
		c.Log.Level = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvLogFormat)); v != "" {
		c.Log.Format = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvLanguage)); v != "" {
		c.Language = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvExpiringSoonDays)); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvExpiringSoonDays, err)
		}
		c.Alerts.ExpiringSoonDays = n
	}
	return nil
}

// Validate normalises values in place and rejects unusable ones.
func (c *Config) Validate() error {
	c.Store.Backend = strings.ToLower(strings.TrimSpace(c.Store.Backend))
	switch c.Store.Backend {
	case "":
		c.Store.Backend = BackendSQLite
	case BackendSQLite, BackendFile:
	default:
		return fmt.Errorf("unknown store backend %q (want %s or %s)", c.Store.Backend, BackendSQLite, BackendFile)
	}
	if c.Store.HistoryLimit < 0 {
		return fmt.Errorf("store.history_limit must be >= 0, got %d", c.Store.HistoryLimit)
	}

	if _, err := zapcore.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("log.level: %w", err)
	}
	c.Log.Format = strings.ToLower(strings.TrimSpace(c.Log.Format))
	if c.Log.Format != "console" && c.Log.Format != "json" {
		return fmt.Errorf("log.format must be console or json, got %q", c.Log.Format)
	}

	lang, err := kit.CanonicalLanguage(c.Language)
	if err != nil {
		return fmt.Errorf("language: %w", err)
	}
	c.Language = string(lang)

	if c.Alerts.ExpiringSoonDays < 1 {
		return fmt.Errorf("alerts.expiring_soon_days must be positive, got %d", c.Alerts.ExpiringSoonDays)
	}
	return nil
}
