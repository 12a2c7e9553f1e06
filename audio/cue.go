package audio

import (
	"fmt"
	"sync"
)

// Cue names a one-shot sound effect
type Cue uint8

const (
	CueCritical Cue = iota
	CueDamage
	CueSquareHit
	CueTargetHit
	CueTargetDestroy
	cueCount
)

func (c Cue) String() string {
	switch c {
	case CueCritical:
		return "critical"
	case CueDamage:
		return "damage"
	case CueSquareHit:
		return "square_hit"
	case CueTargetHit:
		return "target_hit"
	case CueTargetDestroy:
		return "target_destroy"
	default:
		return fmt.Sprintf("cue(%d)", uint8(c))
	}
}

// Cues is the sink gameplay code plays effects through
type Cues interface {
	Play(c Cue)
}

// Nop discards every cue
type Nop struct{}

func (Nop) Play(Cue) {}

// Recorder keeps played cues in order, safe for concurrent use
type Recorder struct {
	mu     sync.Mutex
	played []Cue
}

func (r *Recorder) Play(c Cue) {
	r.mu.Lock()
	r.played = append(r.played, c)
	r.mu.Unlock()
}

// Played returns a copy of the cues seen so far
func (r *Recorder) Played() []Cue {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Cue, len(r.played))
	copy(out, r.played)
	return out
}

// Count returns how many times c was played
func (r *Recorder) Count(c Cue) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, p := range r.played {
		if p == c {
			n++
		}
	}
	return n
}
