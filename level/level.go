package level

import (
	"fmt"
	"time"

	"github.com/lixenwraith/superpong/engine"
	"github.com/lixenwraith/superpong/entity"
)

// EventKind tags Event
type EventKind uint8

const (
	EventNone EventKind = iota
	EventDone
	EventSpawn
	EventWait
	EventAnnounce
)

func (k EventKind) String() string {
	switch k {
	case EventNone:
		return "none"
	case EventDone:
		return "done"
	case EventSpawn:
		return "spawn"
	case EventWait:
		return "wait"
	case EventAnnounce:
		return "announce"
	default:
		return fmt.Sprintf("event(%d)", uint8(k))
	}
}

// Announcement is a banner shown over the playfield
type Announcement struct {
	Color engine.Color
	Size  float64
	Text  string
}

// Event is one step of a level timeline
// None and Done are produced by Progress and never queued
type Event struct {
	Kind         EventKind
	Enemy        entity.EnemyKind
	Wait         time.Duration
	Announcement Announcement
}

func Spawn(k entity.EnemyKind) Event {
	return Event{Kind: EventSpawn, Enemy: k}
}

// Wait changes the pacing interval for the events after it
func Wait(d time.Duration) Event {
	return Event{Kind: EventWait, Wait: d}
}

func Announce(color engine.Color, size float64, text string) Event {
	return Event{Kind: EventAnnounce, Announcement: Announcement{Color: color, Size: size, Text: text}}
}

func (e Event) String() string {
	switch e.Kind {
	case EventSpawn:
		return "spawn(" + e.Enemy.String() + ")"
	case EventWait:
		return "wait(" + e.Wait.String() + ")"
	case EventAnnounce:
		return fmt.Sprintf("announce(%q)", e.Announcement.Text)
	default:
		return e.Kind.String()
	}
}

// State is the director phase
type State uint8

const (
	// StateIdle has queued events waiting on pacing or the spawn cap
	StateIdle State = iota
	// StateDraining has an exhausted queue and spawned enemies still alive,
	// advancing itself happens inside Progress and is never observable
	StateDraining
	// StateComplete has yielded Done
	StateComplete
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateDraining:
		return "draining"
	case StateComplete:
		return "complete"
	default:
		return fmt.Sprintf("state(%d)", uint8(s))
	}
}

// Level is a running timeline, created from a Script
type Level struct {
	name     string
	spawnCap int
	alive    int
	pacing   time.Duration
	last     time.Time
	started  bool
	queue    []Event
	complete bool
}

// Progress yields at most one event
// The gate opens when fewer than the cap are alive and the pacing interval has passed since the last event,
// the very first call is never held back by pacing
func (l *Level) Progress(now time.Time) Event {
	if l.complete {
		return Event{Kind: EventDone}
	}
	if l.alive >= l.spawnCap {
		return Event{}
	}
	if l.started && now.Sub(l.last) <= l.pacing {
		return Event{}
	}

	// Pacing changes take effect in place and never reach the caller
	for len(l.queue) > 0 && l.queue[0].Kind == EventWait {
		l.pacing = l.queue[0].Wait
		l.queue = l.queue[1:]
	}

	if len(l.queue) == 0 {
		if l.alive == 0 {
			l.complete = true
			return Event{Kind: EventDone}
		}
		return Event{}
	}

	ev := l.queue[0]
	l.queue = l.queue[1:]
	l.last = now
	l.started = true
	if ev.Kind == EventSpawn {
		// Counted before the caller materializes the enemy
		l.alive++
	}
	return ev
}

// Kill accounts for the death of a spawned enemy
func (l *Level) Kill() {
	if l.alive == 0 {
		panic("level: kill with no spawned enemy alive")
	}
	l.alive--
}

func (l *Level) State() State {
	switch {
	case l.complete:
		return StateComplete
	case len(l.queue) == 0:
		return StateDraining
	default:
		return StateIdle
	}
}

func (l *Level) Name() string { return l.name }
func (l *Level) Alive() int { return l.alive }
func (l *Level) SpawnCap() int { return l.spawnCap }
func (l *Level) Pacing() time.Duration { return l.pacing }
func (l *Level) Remaining() int { return len(l.queue) }
