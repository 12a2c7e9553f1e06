package config

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// ErrInvalidSetting is returned by Validate and the text parsers
var ErrInvalidSetting = errors.New("invalid setting")

// Difficulty selects enemy aggression
type Difficulty uint8

const (
	DifficultyNormal Difficulty = iota
	DifficultyHard
)

func (d Difficulty) String() string {
	switch d {
	case DifficultyNormal:
		return "normal"
	case DifficultyHard:
		return "hard"
	default:
		return fmt.Sprintf("difficulty(%d)", uint8(d))
	}
}

// MarshalText implements encoding.TextMarshaler for TOML
func (d Difficulty) MarshalText() ([]byte, error) {
	if d > DifficultyHard {
		return nil, fmt.Errorf("%w: difficulty %d", ErrInvalidSetting, d)
	}
	return []byte(d.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler for TOML
func (d *Difficulty) UnmarshalText(text []byte) error {
	switch strings.ToLower(string(text)) {
	case "normal":
		*d = DifficultyNormal
	case "hard":
		*d = DifficultyHard
	default:
		return fmt.Errorf("%w: difficulty %q", ErrInvalidSetting, text)
	}
	return nil
}

// Fullscreen is the window presentation mode
type Fullscreen uint8

const (
	FullscreenWindowed Fullscreen = iota
	FullscreenBorderless
	FullscreenExclusive
)

func (f Fullscreen) String() string {
	switch f {
	case FullscreenWindowed:
		return "windowed"
	case FullscreenBorderless:
		return "borderless"
	case FullscreenExclusive:
		return "exclusive"
	default:
		return fmt.Sprintf("fullscreen(%d)", uint8(f))
	}
}

// ParseFullscreen accepts the long names and the single-letter console aliases
func ParseFullscreen(s string) (Fullscreen, error) {
	switch strings.ToLower(s) {
	case "windowed", "w":
		return FullscreenWindowed, nil
	case "borderless", "b":
		return FullscreenBorderless, nil
	case "exclusive", "x":
		return FullscreenExclusive, nil
	}
	return 0, fmt.Errorf("%w: fullscreen %q", ErrInvalidSetting, s)
}

// MarshalText implements encoding.TextMarshaler for TOML
func (f Fullscreen) MarshalText() ([]byte, error) {
	if f > FullscreenExclusive {
		return nil, fmt.Errorf("%w: fullscreen %d", ErrInvalidSetting, f)
	}
	return []byte(f.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler for TOML
func (f *Fullscreen) UnmarshalText(text []byte) error {
	v, err := ParseFullscreen(string(text))
	if err != nil {
		return err
	}
	*f = v
	return nil
}

// Resolution is the logical render size in pixels
type Resolution struct {
	Width  int `toml:"width"`
	Height int `toml:"height"`
}

// Settings are the user-facing options persisted in settings.toml
type Settings struct {
	Difficulty   Difficulty `toml:"difficulty"`
	VSync        bool       `toml:"vsync"`
	FPSLimit     int        `toml:"fps_limit"` // 0 = unlimited
	Fullscreen   Fullscreen `toml:"fullscreen"`
	Resolution   Resolution `toml:"resolution"`
	ParticleHigh bool       `toml:"particle_high"`
	ScreenShake  int        `toml:"screen_shake"` // Percent
}

const (
	MinFPSLimit        = 10
	MaxFPSLimit        = 1000
	MaxScreenShake     = 200
	ParticleCapHigh    = 64
	ParticleCapLow     = 16
	fireIntervalHard   = 5 * time.Second
	fireIntervalNormal = 7 * time.Second
)

// DefaultSettings returns the first-launch options
func DefaultSettings() Settings {
	return Settings{
		Difficulty:   DifficultyHard,
		VSync:        true,
		FPSLimit:     0,
		Fullscreen:   FullscreenExclusive,
		Resolution:   Resolution{Width: 455, Height: 256},
		ParticleHigh: true,
		ScreenShake:  100,
	}
}

// Validate rejects out-of-range values without modifying s
func (s Settings) Validate() error {
	if s.Difficulty > DifficultyHard {
		return fmt.Errorf("%w: difficulty %d", ErrInvalidSetting, s.Difficulty)
	}
	if s.Fullscreen > FullscreenExclusive {
		return fmt.Errorf("%w: fullscreen %d", ErrInvalidSetting, s.Fullscreen)
	}
	if s.FPSLimit != 0 && (s.FPSLimit < MinFPSLimit || s.FPSLimit > MaxFPSLimit) {
		return fmt.Errorf("%w: fps_limit %d outside %d..%d (0 = unlimited)", ErrInvalidSetting, s.FPSLimit, MinFPSLimit, MaxFPSLimit)
	}
	if s.ScreenShake < 0 || s.ScreenShake > MaxScreenShake {
		return fmt.Errorf("%w: screen_shake %d outside 0..%d", ErrInvalidSetting, s.ScreenShake, MaxScreenShake)
	}
	if s.Resolution.Width <= 0 || s.Resolution.Height <= 0 {
		return fmt.Errorf("%w: resolution %dx%d", ErrInvalidSetting, s.Resolution.Width, s.Resolution.Height)
	}
	return nil
}

// FireInterval is the enemy reload time for the difficulty
func (s Settings) FireInterval() time.Duration {
	if s.Difficulty == DifficultyHard {
		return fireIntervalHard
	}
	return fireIntervalNormal
}

// ParticleCap is the live particle budget
func (s Settings) ParticleCap() int {
	if s.ParticleHigh {
		return ParticleCapHigh
	}
	return ParticleCapLow
}

// ShakeScale converts the screen shake percent to a multiplier
func (s Settings) ShakeScale() float64 {
	return float64(s.ScreenShake) / 100
}

// FrameInterval returns the frame cap period, zero when unlimited
func (s Settings) FrameInterval() time.Duration {
	if s.FPSLimit <= 0 {
		return 0
	}
	return time.Second / time.Duration(s.FPSLimit)
}
