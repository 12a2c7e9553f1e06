package audio

import (
	"math"
	"math/rand"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
)

// Wave is an oscillator shape
type Wave int

const (
	WaveSine Wave = iota
	WaveSquare
	WaveNoise
)

// tone returns a finite oscillator stream of the given length
func tone(wave Wave, freq float64, d time.Duration, rate beep.SampleRate, rng *rand.Rand) beep.Streamer {
	step := freq / float64(rate)
	phase := 0.0
	osc := beep.StreamerFunc(func(samples [][2]float64) (int, bool) {
		for i := range samples {
			var v float64
			switch wave {
			case WaveSine:
				v = math.Sin(2 * math.Pi * phase)
			case WaveSquare:
				v = 1
				if phase >= 0.5 {
					v = -1
				}
			case WaveNoise:
				v = rng.Float64()*2 - 1
			}
			samples[i][0], samples[i][1] = v, v
			phase += step
			phase -= math.Floor(phase)
		}
		return len(samples), true
	})
	return beep.Take(rate.N(d), osc)
}

// decay fades s linearly to silence over n samples
type decay struct {
	s     beep.Streamer
	pos   int
	total int
}

func newDecay(s beep.Streamer, d time.Duration, rate beep.SampleRate) beep.Streamer {
	return &decay{s: s, total: rate.N(d)}
}

func (e *decay) Stream(samples [][2]float64) (int, bool) {
	n, ok := e.s.Stream(samples)
	for i := 0; i < n; i++ {
		g := 0.0
		if e.pos < e.total {
			g = 1 - float64(e.pos)/float64(e.total)
		}
		samples[i][0] *= g
		samples[i][1] *= g
		e.pos++
	}
	return n, ok
}

func (e *decay) Err() error { return e.s.Err() }

// gain wraps s in a linear volume, zero is silent
func gain(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol)}
}

// render builds the stream for a cue
func render(c Cue, rate beep.SampleRate, rng *rand.Rand) beep.Streamer {
	switch c {
	case CueCritical:
		return beep.Seq(
			tone(WaveSquare, 440, 60*time.Millisecond, rate, rng),
			newDecay(tone(WaveSquare, 880, 120*time.Millisecond, rate, rng), 120*time.Millisecond, rate),
		)
	case CueDamage:
		return tone(WaveSquare, 90, 60*time.Millisecond, rate, rng)
	case CueSquareHit:
		return tone(WaveSquare, 777, 30*time.Millisecond, rate, rng)
	case CueTargetHit:
		return newDecay(tone(WaveSine, 520, 80*time.Millisecond, rate, rng), 80*time.Millisecond, rate)
	case CueTargetDestroy:
		return beep.Mix(
			newDecay(tone(WaveNoise, 0, 250*time.Millisecond, rate, rng), 250*time.Millisecond, rate),
			gain(newDecay(tone(WaveSine, 110, 250*time.Millisecond, rate, rng), 250*time.Millisecond, rate), 0.6),
		)
	default:
		return nil
	}
}
