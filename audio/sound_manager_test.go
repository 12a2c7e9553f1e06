package audio

import (
	"math/rand"
	"testing"
	"time"

	"github.com/gopxl/beep"

	"github.com/lixenwraith/superpong/config"
)

// TestSoundManagerGracefulDegradation verifies cues don't panic when not initialized
func TestSoundManagerGracefulDegradation(t *testing.T) {
	sm := NewSoundManager(config.AudioConfig{}, nil)

	defer func() {
		if r := recover(); r != nil {
			t.Errorf("Sound operations panicked without initialization: %v", r)
		}
	}()

	for c := Cue(0); c < cueCount; c++ {
		sm.Play(c)
	}
	sm.Play(Cue(200))
	sm.Cleanup()
}

// TestSoundManagerInitialization may legitimately fail on hosts without audio devices
func TestSoundManagerInitialization(t *testing.T) {
	sm := NewSoundManager(config.AudioConfig{SampleRate: 44100, Volume: 0.5}, nil)

	if err := sm.Initialize(); err != nil {
		t.Logf("Sound initialization failed (expected in test environment): %v", err)
		return
	}
	if err := sm.Initialize(); err != nil {
		t.Errorf("Second initialization should be a no-op, got %v", err)
	}
	sm.Play(CueSquareHit)
	sm.Cleanup()
	sm.Play(CueDamage)
}

func drain(s beep.Streamer) int {
	buf := make([][2]float64, 512)
	total := 0
	for {
		n, ok := s.Stream(buf)
		total += n
		if !ok {
			return total
		}
	}
}

func TestRenderedCueLengths(t *testing.T) {
	rate := beep.SampleRate(44100)
	rng := rand.New(rand.NewSource(1))

	tests := []struct {
		cue  Cue
		want int
	}{
		{CueDamage, rate.N(60*time.Millisecond)},
		{CueSquareHit, rate.N(30*time.Millisecond)},
		{CueCritical, rate.N(60*time.Millisecond) + rate.N(120*time.Millisecond)},
	}
	for _, tt := range tests {
		s := render(tt.cue, rate, rng)
		if s == nil {
			t.Fatalf("%v: expected a stream", tt.cue)
		}
		if got := drain(s); got != tt.want {
			t.Errorf("%v: expected %d samples, got %d", tt.cue, tt.want, got)
		}
	}

	if render(cueCount, rate, rng) != nil {
		t.Error("Expected nil stream for unknown cue")
	}
}

func TestDecayReachesSilence(t *testing.T) {
	rate := beep.SampleRate(1000)
	s := newDecay(tone(WaveSquare, 100, 100*time.Millisecond, rate, nil), 100*time.Millisecond, rate)

	buf := make([][2]float64, 100)
	n, _ := s.Stream(buf)
	if n != 100 {
		t.Fatalf("Expected 100 samples, got %d", n)
	}
	if buf[0][0] != 1 {
		t.Errorf("Expected full gain at start, got %v", buf[0][0])
	}
	last := buf[99][0]
	if last > 0.02 || last < -0.02 {
		t.Errorf("Expected near silence at end, got %v", last)
	}
}

func TestRecorder(t *testing.T) {
	var r Recorder
	r.Play(CueTargetHit)
	r.Play(CueTargetHit)
	r.Play(CueCritical)

	if r.Count(CueTargetHit) != 2 || r.Count(CueCritical) != 1 {
		t.Errorf("Unexpected counts: %v", r.Played())
	}
	if got := r.Played(); len(got) != 3 || got[2] != CueCritical {
		t.Errorf("Unexpected order: %v", got)
	}
}
