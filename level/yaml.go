package level

import (
	"fmt"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/lixenwraith/superpong/engine"
	"github.com/lixenwraith/superpong/entity"
)

type yamlScript struct {
	Name     string      `yaml:"name"`
	SpawnCap int         `yaml:"spawn_cap"`
	Pacing   string      `yaml:"pacing"`
	Events   []yamlEvent `yaml:"events"`
}

// Exactly one of the fields is set per entry
type yamlEvent struct {
	Announce *yamlAnnounce `yaml:"announce"`
	Wait     string        `yaml:"wait"`
	Spawn    string        `yaml:"spawn"`
	Count    int           `yaml:"count"`
}

type yamlAnnounce struct {
	Text  string    `yaml:"text"`
	Size  float64   `yaml:"size"`
	Color []float64 `yaml:"color"`
}

// LoadYAML decodes and validates a stage file
//
//	name: Outskirts
//	spawn_cap: 3
//	pacing: 1500ms
//	events:
//	  - announce: {text: "Outskirts", size: 70, color: [0.9, 0.3, 0.1]}
//	  - wait: 3s
//	  - spawn: Target
//	    count: 2
func LoadYAML(data []byte) (Script, error) {
	var raw yamlScript
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return Script{}, fmt.Errorf("%w: %v", ErrInvalidScript, err)
	}

	pacing, err := time.ParseDuration(raw.Pacing)
	if err != nil {
		return Script{}, fmt.Errorf("%w: %s: pacing: %v", ErrInvalidScript, raw.Name, err)
	}

	s := Script{Name: raw.Name, SpawnCap: raw.SpawnCap, Pacing: pacing}
	for i, re := range raw.Events {
		events, err := re.decode()
		if err != nil {
			return Script{}, fmt.Errorf("%w: %s: event %d: %v", ErrInvalidScript, raw.Name, i, err)
		}
		s.Events = append(s.Events, events...)
	}

	if err := s.Validate(); err != nil {
		return Script{}, err
	}
	return s, nil
}

func (e yamlEvent) decode() ([]Event, error) {
	set := 0
	if e.Announce != nil {
		set++
	}
	if e.Wait != "" {
		set++
	}
	if e.Spawn != "" {
		set++
	}
	if set != 1 {
		return nil, fmt.Errorf("expected exactly one of announce, wait, spawn")
	}

	switch {
	case e.Announce != nil:
		color, err := colorFrom(e.Announce.Color)
		if err != nil {
			return nil, err
		}
		return []Event{Announce(color, e.Announce.Size, e.Announce.Text)}, nil
	case e.Wait != "":
		d, err := time.ParseDuration(e.Wait)
		if err != nil {
			return nil, err
		}
		return []Event{Wait(d)}, nil
	default:
		return spawnRun(e.Spawn, e.Count)
	}
}

// spawnRun expands a spawn entry with an optional repeat count
func spawnRun(name string, count int) ([]Event, error) {
	kind, err := entity.ParseEnemyKind(name)
	if err != nil {
		return nil, err
	}
	if count == 0 {
		count = 1
	}
	if count < 0 {
		return nil, fmt.Errorf("negative count %d", count)
	}
	events := make([]Event, count)
	for i := range events {
		events[i] = Spawn(kind)
	}
	return events, nil
}

func colorFrom(rgb []float64) (engine.Color, error) {
	switch len(rgb) {
	case 0:
		return engine.ColorWhite, nil
	case 3:
		return engine.RGB(rgb[0], rgb[1], rgb[2]), nil
	default:
		return engine.Color{}, fmt.Errorf("color needs 3 components, got %d", len(rgb))
	}
}
