package overlay

import (
	"fmt"
	"time"

	"github.com/lixenwraith/superpong/vmath"
)

// Curve selects an opacity profile over a base period T
type Curve uint8

const (
	// Banner ramps in over T, holds for 2T, ramps out over T
	Banner Curve = iota
	// Reveal goes from opaque to clear over T, used for full-screen covers
	Reveal
)

func (c Curve) String() string {
	switch c {
	case Banner:
		return "banner"
	case Reveal:
		return "reveal"
	default:
		return fmt.Sprintf("curve(%d)", uint8(c))
	}
}

// Span returns the total running time of the curve for period T
func (c Curve) Span(T time.Duration) time.Duration {
	if c == Banner {
		return 4 * T
	}
	return T
}

// Opacity samples the curve, done is set once elapsed reaches the span
func Opacity(c Curve, elapsed, T time.Duration) (alpha float64, done bool) {
	if T <= 0 || elapsed >= c.Span(T) {
		return 0, true
	}
	if elapsed < 0 {
		elapsed = 0
	}
	f := float64(elapsed) / float64(T)

	switch c {
	case Banner:
		switch {
		case f < 1:
			return f, false
		case f < 3:
			return 1, false
		default:
			return vmath.Clamp(4-f, 0, 1), false
		}
	default:
		return vmath.Clamp(1-f, 0, 1), false
	}
}
