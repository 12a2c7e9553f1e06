package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.toml"))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Loop.TickRate != 16*time.Millisecond {
		t.Errorf("Expected default tick rate, got %v", cfg.Loop.TickRate)
	}
	if cfg.Logging.Enabled {
		t.Error("Expected logging disabled by default")
	}
}

func TestLoadOverlaysFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "superpong.toml")
	data := `
[logging]
enabled = true
level = "debug"

[loop]
tick_rate = "20ms"

[audio]
enabled = false
`
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if !cfg.Logging.Enabled || cfg.Logging.Level != "debug" {
		t.Errorf("Expected debug logging enabled, got %+v", cfg.Logging)
	}
	if cfg.Logging.Format != "console" {
		t.Errorf("Expected untouched default format, got %q", cfg.Logging.Format)
	}
	if cfg.Loop.TickRate != 20*time.Millisecond {
		t.Errorf("Expected 20ms tick, got %v", cfg.Loop.TickRate)
	}
	if cfg.Audio.Enabled {
		t.Error("Expected audio disabled")
	}
}

func TestLoadRejectsGarbage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.toml")
	if err := os.WriteFile(path, []byte("[logging\nenabled = "), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Error("Expected parse error")
	}
}

func TestResolveDirsCreatesPaths(t *testing.T) {
	root := t.TempDir()
	cfg := defaults()
	cfg.Paths.Config = filepath.Join(root, "cfg")
	cfg.Paths.Data = filepath.Join(root, "data")

	if err := cfg.ResolveDirs(); err != nil {
		t.Fatalf("ResolveDirs failed: %v", err)
	}
	for _, dir := range []string{cfg.Paths.Config, cfg.Paths.Data} {
		if info, err := os.Stat(dir); err != nil || !info.IsDir() {
			t.Errorf("Expected directory %s, err=%v", dir, err)
		}
	}
}

func TestSettingsRoundTrip(t *testing.T) {
	dir := t.TempDir()

	s := DefaultSettings()
	s.Difficulty = DifficultyNormal
	s.Fullscreen = FullscreenBorderless
	s.FPSLimit = 144
	s.ParticleHigh = false

	if err := SaveSettings(dir, s); err != nil {
		t.Fatalf("SaveSettings failed: %v", err)
	}
	got, err := LoadSettings(dir)
	if err != nil {
		t.Fatalf("LoadSettings failed: %v", err)
	}
	if got != s {
		t.Errorf("Expected %+v, got %+v", s, got)
	}
}

func TestLoadSettingsMissingAndBroken(t *testing.T) {
	dir := t.TempDir()

	got, err := LoadSettings(dir)
	if err != nil || got != DefaultSettings() {
		t.Errorf("Expected defaults for missing file, got %+v err=%v", got, err)
	}

	if err := os.WriteFile(filepath.Join(dir, SettingsFile), []byte(`difficulty = "nightmare"`), 0644); err != nil {
		t.Fatal(err)
	}
	got, err = LoadSettings(dir)
	if err == nil {
		t.Error("Expected error for unknown difficulty")
	}
	if got != DefaultSettings() {
		t.Errorf("Expected defaults on broken file, got %+v", got)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Settings)
		ok     bool
	}{
		{"defaults", func(*Settings) {}, true},
		{"unlimited fps", func(s *Settings) { s.FPSLimit = 0 }, true},
		{"fps too low", func(s *Settings) { s.FPSLimit = 3 }, false},
		{"fps too high", func(s *Settings) { s.FPSLimit = 5000 }, false},
		{"negative shake", func(s *Settings) { s.ScreenShake = -1 }, false},
		{"zero resolution", func(s *Settings) { s.Resolution.Width = 0 }, false},
		{"bad difficulty", func(s *Settings) { s.Difficulty = 9 }, false},
	}

	for _, tt := range tests {
		s := DefaultSettings()
		tt.mutate(&s)
		err := s.Validate()
		if tt.ok && err != nil {
			t.Errorf("%s: unexpected error %v", tt.name, err)
		}
		if !tt.ok && !errors.Is(err, ErrInvalidSetting) {
			t.Errorf("%s: expected ErrInvalidSetting, got %v", tt.name, err)
		}
	}
}

func TestDerivedValues(t *testing.T) {
	s := DefaultSettings()
	if s.FireInterval() != 5*time.Second {
		t.Errorf("Expected hard fire interval 5s, got %v", s.FireInterval())
	}
	s.Difficulty = DifficultyNormal
	if s.FireInterval() != 7*time.Second {
		t.Errorf("Expected normal fire interval 7s, got %v", s.FireInterval())
	}
	if s.ParticleCap() != ParticleCapHigh {
		t.Errorf("Expected high particle cap, got %d", s.ParticleCap())
	}
	s.FPSLimit = 50
	if s.FrameInterval() != 20*time.Millisecond {
		t.Errorf("Expected 20ms frame interval, got %v", s.FrameInterval())
	}
}
