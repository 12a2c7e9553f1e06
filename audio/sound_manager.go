package audio

import (
	"math/rand"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"
	"go.uber.org/zap"

	"github.com/lixenwraith/superpong/config"
)

// SoundManager plays cues through the speaker
// Every method is a safe no-op until Initialize succeeds
type SoundManager struct {
	mu          sync.Mutex
	rate        beep.SampleRate
	volume      float64
	mixer       *beep.Mixer
	rng         *rand.Rand
	log         *zap.Logger
	initialized bool
}

// NewSoundManager creates a new sound manager
func NewSoundManager(cfg config.AudioConfig, log *zap.Logger) *SoundManager {
	rate := cfg.SampleRate
	if rate <= 0 {
		rate = 44100
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &SoundManager{
		rate:   beep.SampleRate(rate),
		volume: cfg.Volume,
		mixer:  &beep.Mixer{},
		rng:    rand.New(rand.NewSource(time.Now().UnixNano())),
		log:    log,
	}
}

// Initialize sets up the audio device
func (sm *SoundManager) Initialize() error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if sm.initialized {
		return nil
	}

	if err := speaker.Init(sm.rate, sm.rate.N(50*time.Millisecond)); err != nil {
		return err
	}

	speaker.Play(gain(sm.mixer, sm.volume))
	sm.initialized = true
	return nil
}

// Play queues a one-shot cue on the mixer
func (sm *SoundManager) Play(c Cue) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized || c >= cueCount {
		return
	}

	// Mixer is read by the speaker goroutine
	s := render(c, sm.rate, sm.rng)
	speaker.Lock()
	sm.mixer.Add(s)
	speaker.Unlock()
	sm.log.Debug("cue", zap.Stringer("cue", c))
}

// Cleanup silences pending cues and marks the manager uninitialized
func (sm *SoundManager) Cleanup() {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized {
		return
	}

	speaker.Lock()
	sm.mixer.Clear()
	speaker.Unlock()
	sm.initialized = false
}
