package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"
)

const appDir = "superpong"

// Config is the process configuration read from superpong.toml
type Config struct {
	Logging LoggingConfig `toml:"logging"`
	Paths   PathsConfig   `toml:"paths"`
	Loop    LoopConfig    `toml:"loop"`
	Audio   AudioConfig   `toml:"audio"`
}

type LoggingConfig struct {
	Enabled   bool   `toml:"enabled"`
	Level     string `toml:"level"`  // debug, info, warn, error
	Format    string `toml:"format"` // console or json
	MaxSizeMB int    `toml:"max_size_mb"`
}

type PathsConfig struct {
	Data   string `toml:"data"`   // Session file and logs
	Config string `toml:"config"` // settings.toml
	Stages string `toml:"stages"` // Extra stage scripts, optional
}

type LoopConfig struct {
	TickRate    time.Duration `toml:"tick_rate"`
	FadeCadence time.Duration `toml:"fade_cadence"`
}

type AudioConfig struct {
	Enabled    bool    `toml:"enabled"`
	SampleRate int     `toml:"sample_rate"`
	Volume     float64 `toml:"volume"` // Linear gain 0..1
}

// Load reads path over the defaults, a missing file yields the defaults
func Load(path string) (*Config, error) {
	cfg := defaults()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return cfg, nil
		}
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	if cfg.Loop.TickRate <= 0 {
		return nil, fmt.Errorf("parse config %s: %w: tick_rate %v", path, ErrInvalidSetting, cfg.Loop.TickRate)
	}
	return cfg, nil
}

func defaults() *Config {
	return &Config{
		Logging: LoggingConfig{
			Enabled:   false,
			Level:     "info",
			Format:    "console",
			MaxSizeMB: 10,
		},
		Loop: LoopConfig{
			TickRate:    16 * time.Millisecond,
			FadeCadence: 16 * time.Millisecond,
		},
		Audio: AudioConfig{
			Enabled:    true,
			SampleRate: 44100,
			Volume:     0.5,
		},
	}
}

// ResolveDirs fills empty paths with per-user locations and creates them
func (c *Config) ResolveDirs() error {
	if c.Paths.Config == "" {
		base, err := os.UserConfigDir()
		if err != nil {
			return fmt.Errorf("locate config dir: %w", err)
		}
		c.Paths.Config = filepath.Join(base, appDir)
	}
	if c.Paths.Data == "" {
		base, err := userDataDir()
		if err != nil {
			return fmt.Errorf("locate data dir: %w", err)
		}
		c.Paths.Data = filepath.Join(base, appDir)
	}

	for _, dir := range []string{c.Paths.Config, c.Paths.Data} {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("create %s: %w", dir, err)
		}
	}
	return nil
}

// userDataDir follows XDG on unix, falls back to the config dir elsewhere
func userDataDir() (string, error) {
	if dir := os.Getenv("XDG_DATA_HOME"); dir != "" {
		return dir, nil
	}
	home, err := os.UserHomeDir()
	if err == nil && home != "" {
		return filepath.Join(home, ".local", "share"), nil
	}
	return os.UserConfigDir()
}
