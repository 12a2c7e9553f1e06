package entity

import (
	"errors"
	"fmt"
	"strings"
)

// ErrKindNotImplemented is returned by the factories for roster entries without behavior
var ErrKindNotImplemented = errors.New("entity kind not implemented")

// ErrUnknownKind is returned when a kind name cannot be parsed
var ErrUnknownKind = errors.New("unknown entity kind")

// EnemyKind enumerates the enemy roster
type EnemyKind uint8

const (
	EnemyTarget EnemyKind = iota
	EnemyFairy
	EnemyBird
	EnemyPegasus
	EnemyGriffin
	EnemyBat
	EnemyHarpy
	EnemyDragon
	EnemyVampire
	EnemyLindworm
	EnemyDrone
	EnemyAndroidPegasus
	EnemyAndroidGriffin
	EnemyGimp
	EnemyChimere
	EnemyMetalUnicorn
	EnemySpirit
	EnemyDevil
	EnemyFlesh
	EnemyDeath
	EnemyMoreFlesh
	EnemyBloodGoop
	EnemyChunkyFlesh
	EnemyAbomination
	EnemyFleshBoss
	enemyKindCount
)

var enemyNames = [enemyKindCount]string{
	"Target", "Fairy", "Bird", "Pegasus", "Griffin", "Bat", "Harpy", "Dragon",
	"Vampire", "Lindworm", "Drone", "AndroidPegasus", "AndroidGriffin", "Gimp",
	"Chimere", "MetalUnicorn", "Spirit", "Devil", "Flesh", "Death", "MoreFlesh",
	"BloodGoop", "ChunkyFlesh", "Abomination", "FleshBoss",
}

func (k EnemyKind) String() string {
	if k < enemyKindCount {
		return enemyNames[k]
	}
	return fmt.Sprintf("EnemyKind(%d)", uint8(k))
}

// ParseEnemyKind resolves a roster name, case and separators ignored
func ParseEnemyKind(name string) (EnemyKind, error) {
	norm := strings.NewReplacer("_", "", "-", "", " ", "").Replace(strings.ToLower(name))
	for i, n := range enemyNames {
		if strings.ToLower(n) == norm {
			return EnemyKind(i), nil
		}
	}
	return 0, fmt.Errorf("%w: enemy %q", ErrUnknownKind, name)
}

// Valid reports whether k is on the roster
func (k EnemyKind) Valid() bool {
	return k < enemyKindCount
}

// Implemented reports whether Spawn can build k
func (k EnemyKind) Implemented() bool {
	return k == EnemyTarget
}

// ProjectileKind enumerates projectile shapes
type ProjectileKind uint8

const (
	ProjectileSquare ProjectileKind = iota
)

func (k ProjectileKind) String() string {
	switch k {
	case ProjectileSquare:
		return "Square"
	default:
		return fmt.Sprintf("ProjectileKind(%d)", uint8(k))
	}
}

// ParticleKind enumerates cosmetic particles
type ParticleKind uint8

const (
	ParticleDebris ParticleKind = iota
	ParticlePuff
)

func (k ParticleKind) String() string {
	switch k {
	case ParticleDebris:
		return "Debris"
	case ParticlePuff:
		return "Puff"
	default:
		return fmt.Sprintf("ParticleKind(%d)", uint8(k))
	}
}
