package level

import (
	"errors"
	"fmt"
	"time"

	"github.com/lixenwraith/superpong/engine"
	"github.com/lixenwraith/superpong/entity"
)

// ErrInvalidScript is returned for scripts that fail validation or decoding
var ErrInvalidScript = errors.New("invalid level script")

// Script is the authored definition of a stage
type Script struct {
	Name     string
	SpawnCap int
	Pacing   time.Duration
	Events   []Event
}

// Validate checks the script before it can be started
func (s Script) Validate() error {
	if s.SpawnCap < 1 {
		return fmt.Errorf("%w: %s: spawn cap %d below 1", ErrInvalidScript, s.Name, s.SpawnCap)
	}
	if s.Pacing <= 0 {
		return fmt.Errorf("%w: %s: pacing %v must be positive", ErrInvalidScript, s.Name, s.Pacing)
	}
	for i, ev := range s.Events {
		switch ev.Kind {
		case EventSpawn:
			if !ev.Enemy.Valid() {
				return fmt.Errorf("%w: %s: event %d: unknown enemy %d", ErrInvalidScript, s.Name, i, ev.Enemy)
			}
		case EventWait:
			if ev.Wait <= 0 {
				return fmt.Errorf("%w: %s: event %d: wait %v must be positive", ErrInvalidScript, s.Name, i, ev.Wait)
			}
		case EventAnnounce:
			if ev.Announcement.Text == "" {
				return fmt.Errorf("%w: %s: event %d: empty announcement", ErrInvalidScript, s.Name, i)
			}
		default:
			return fmt.Errorf("%w: %s: event %d: %s cannot be scripted", ErrInvalidScript, s.Name, i, ev.Kind)
		}
	}
	return nil
}

// Start returns a fresh running level, the script is not modified
func (s Script) Start() *Level {
	queue := make([]Event, len(s.Events))
	copy(queue, s.Events)
	return &Level{
		name:     s.Name,
		spawnCap: s.SpawnCap,
		pacing:   s.Pacing,
		queue:    queue,
	}
}

// Spawns counts the enemies the script will spawn
func (s Script) Spawns() int {
	n := 0
	for _, ev := range s.Events {
		if ev.Kind == EventSpawn {
			n++
		}
	}
	return n
}

var titleColor = engine.RGB(0.9, 0.3, 0.1)

// Tutorial is the first stage
func Tutorial() Script {
	return Script{
		Name:     "Tutorial",
		SpawnCap: 2,
		Pacing:   2 * time.Second,
		Events: []Event{
			Announce(titleColor, 70, "Tutorial Stage"),
			Wait(4 * time.Second),
			Announce(titleColor, 60, "Move your mouse up and down to control your paddle."),
			Announce(titleColor, 60, "To move the arrow press the mouse buttons."),
			Announce(titleColor, 60, "By touching the projectiles you send them to where the arrow is pointing."),
			Spawn(entity.EnemyTarget),
			Wait(5 * time.Second),
			Announce(titleColor, 60, "Hit the enemies with their projectiles to damage them."),
			Wait(time.Second),
			Spawn(entity.EnemyTarget),
			Spawn(entity.EnemyTarget),
			Wait(6 * time.Second),
			Announce(titleColor, 60, "You can return an extra hard projectile back by touching it with the side of your paddle."),
			Wait(time.Second),
			Spawn(entity.EnemyTarget),
			Spawn(entity.EnemyTarget),
			Wait(5 * time.Second),
			Spawn(entity.EnemyTarget),
		},
	}
}
