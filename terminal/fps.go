package terminal

import "time"

// frameCounter reports presented frames within the last second
type frameCounter struct {
	frames []time.Time
}

// Mark records a frame at now and returns the current rate
func (c *frameCounter) Mark(now time.Time) int {
	c.frames = append(c.frames, now)
	cut := 0
	for cut < len(c.frames) && now.Sub(c.frames[cut]) >= time.Second {
		cut++
	}
	c.frames = append(c.frames[:0], c.frames[cut:]...)
	return len(c.frames)
}
