package session

import (
	"errors"
	"fmt"

	"google.golang.org/protobuf/encoding/protowire"
)

// ErrCorrupt is returned when the save file cannot be decoded
var ErrCorrupt = errors.New("corrupt session file")

// Field numbers of the save file message
const (
	fieldStage protowire.Number = 1
	fieldScore protowire.Number = 2
	fieldKills protowire.Number = 3
)

// State is the progress persisted between runs
type State struct {
	Stage uint32
	Score uint32
	Kills uint32
}

// AddKill records one destroyed enemy worth damage*100 points and returns the points awarded
func (s *State) AddKill(damage float64) uint32 {
	points := uint32(damage * 100)
	s.Score += points
	s.Kills++
	return points
}

// Marshal encodes the state as a protobuf message, zero fields are omitted
func (s State) Marshal() []byte {
	var b []byte
	for _, f := range []struct {
		num protowire.Number
		v   uint32
	}{
		{fieldStage, s.Stage},
		{fieldScore, s.Score},
		{fieldKills, s.Kills},
	} {
		if f.v == 0 {
			continue
		}
		b = protowire.AppendTag(b, f.num, protowire.VarintType)
		b = protowire.AppendVarint(b, uint64(f.v))
	}
	return b
}

// Unmarshal decodes a protobuf message, unknown fields are skipped
func Unmarshal(b []byte) (State, error) {
	var s State
	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return State{}, fmt.Errorf("%w: %v", ErrCorrupt, protowire.ParseError(n))
		}
		b = b[n:]

		var dst *uint32
		switch num {
		case fieldStage:
			dst = &s.Stage
		case fieldScore:
			dst = &s.Score
		case fieldKills:
			dst = &s.Kills
		}

		if dst == nil {
			n = protowire.ConsumeFieldValue(num, typ, b)
			if n < 0 {
				return State{}, fmt.Errorf("%w: field %d: %v", ErrCorrupt, num, protowire.ParseError(n))
			}
			b = b[n:]
			continue
		}

		if typ != protowire.VarintType {
			return State{}, fmt.Errorf("%w: field %d has wire type %d", ErrCorrupt, num, typ)
		}
		v, n := protowire.ConsumeVarint(b)
		if n < 0 {
			return State{}, fmt.Errorf("%w: field %d: %v", ErrCorrupt, num, protowire.ParseError(n))
		}
		if v > uint64(^uint32(0)) {
			return State{}, fmt.Errorf("%w: field %d overflows", ErrCorrupt, num)
		}
		*dst = uint32(v)
		b = b[n:]
	}
	return s, nil
}
