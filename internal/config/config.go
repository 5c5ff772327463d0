package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/llehouerou/cadence/internal/sequence"
)

const appName = "cadence"

const (
	defaultUndoDepth = 50
	maxUndoDepth     = 1000
	defaultLogLevel  = "info"
)

type Config struct {
	DefaultFolder string `koanf:"default_folder"`
	LogLevel      string `koanf:"log_level"` // "debug", "info", "warn", "error"

	Playback PlaybackConfig `koanf:"playback"`

	// MPRIS D-Bus interface (linux only)
	MPRIS MPRISConfig `koanf:"mpris"`

	// Desktop notification on track change (linux only)
	Notifications NotificationsConfig `koanf:"notifications"`
}

// PlaybackConfig holds the startup modes of the queue.
type PlaybackConfig struct {
	Repeat    string `koanf:"repeat"`     // "off", "one", "all" (default: "off")
	Shuffle   bool   `koanf:"shuffle"`    // default: false
	UndoDepth int    `koanf:"undo_depth"` // queue undo steps (1-1000, default: 50)
}

// MPRISConfig holds the D-Bus media player settings.
type MPRISConfig struct {
	Enabled *bool `koanf:"enabled"` // default: true
}

// NotificationsConfig holds the desktop notification settings.
type NotificationsConfig struct {
	Enabled bool `koanf:"enabled"` // default: false
}

// Load reads the config files in priority order. Missing files are skipped.
func Load() (*Config, error) {
	return load(getConfigPaths(), false)
}

// LoadFrom reads the given config files, later files overriding earlier ones.
// Every path must exist.
func LoadFrom(paths ...string) (*Config, error) {
	return load(paths, true)
}

func load(paths []string, required bool) (*Config, error) {
	k := koanf.New(".")

	for _, path := range paths {
		if _, err := os.Stat(path); err != nil {
			if !required && errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return nil, fmt.Errorf("config file: %w", err)
		}
		if err := k.Load(file.Provider(path), toml.Parser()); err != nil {
			return nil, err
		}
	}

	cfg := &Config{
		DefaultFolder: "", // empty means use cwd
	}

	if err := k.Unmarshal("", cfg); err != nil {
		return nil, err
	}

	// Expand ~ in default_folder
	if cfg.DefaultFolder != "" {
		cfg.DefaultFolder = expandPath(cfg.DefaultFolder)
	}

	cfg.LogLevel = strings.ToLower(strings.TrimSpace(cfg.LogLevel))

	return cfg, nil
}

func getConfigPaths() []string {
	paths := []string{}

	// 1. $XDG_CONFIG_HOME/cadence/config.toml
	paths = append(paths, filepath.Join(xdg.ConfigHome, appName, "config.toml"))

	// 2. ./config.toml (pwd, highest priority)
	paths = append(paths, "config.toml")

	return paths
}

func expandPath(path string) string {
	if path != "" && path[0] == '~' {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, path[1:])
		}
	}
	return path
}

// GetLogLevel returns the configured log level, or "info".
func (c *Config) GetLogLevel() string {
	if c.LogLevel == "" {
		return defaultLogLevel
	}
	return c.LogLevel
}

// MPRISEnabled returns true unless MPRIS is explicitly disabled.
func (c *Config) MPRISEnabled() bool {
	return c.MPRIS.Enabled == nil || *c.MPRIS.Enabled
}

// GetPlaybackConfig returns the playback configuration with defaults applied.
func (c *Config) GetPlaybackConfig() PlaybackConfig {
	cfg := c.Playback

	// Apply defaults
	cfg.Repeat = cfg.RepeatMode().String()
	if cfg.UndoDepth <= 0 || cfg.UndoDepth > maxUndoDepth {
		cfg.UndoDepth = defaultUndoDepth
	}

	return cfg
}

// RepeatMode returns the parsed repeat mode. Invalid values fall back to off.
func (p PlaybackConfig) RepeatMode() sequence.RepeatMode {
	mode, err := sequence.ParseRepeatMode(p.Repeat)
	if err != nil {
		return sequence.RepeatOff
	}
	return mode
}
