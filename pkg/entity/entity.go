// pkg/entity/entity.go
package entity

import (
	"github.com/opd-ai/go-orbits/pkg/physics"
)

// ID is a unique identifier for a body within one registry
type ID uint64

// Role says what part a body plays in a level
type Role int

const (
	RolePlayer Role = iota
	RolePlanet
	RoleLauncher
	RoleGoal
)

func (r Role) String() string {
	switch r {
	case RolePlayer:
		return "player"
	case RolePlanet:
		return "planet"
	case RoleLauncher:
		return "launcher"
	case RoleGoal:
		return "goal"
	default:
		return "unknown"
	}
}

// Category maps a role onto the provider's collision category
func (r Role) Category() physics.Category {
	switch r {
	case RolePlayer:
		return physics.CategoryPlayer
	case RolePlanet:
		return physics.CategoryPlanet
	case RoleLauncher:
		return physics.CategoryLauncher
	case RoleGoal:
		return physics.CategoryGoal
	default:
		return physics.CategoryNone
	}
}

// Def describes a body before it is registered
type Def struct {
	Role     Role
	Name     string
	Position physics.Vector2D
	Mass     float64
	Radius   float64
	Kind     physics.BodyKind
	Friction float64
	Sensor   bool
}

// Body is a registered body. Position holds where the body was placed; for
// the player ask the registry, which reads the live value from the provider.
type Body struct {
	ID       ID
	Role     Role
	Name     string
	Handle   physics.Handle
	Position physics.Vector2D
	Mass     float64
	Radius   float64
	Kind     physics.BodyKind
	// Detached bodies were removed from the simulation but are still drawn.
	Detached bool
}

// Collider returns the body's collision circle at pos
func (b Body) Collider(pos physics.Vector2D) physics.Circle {
	return physics.Circle{Center: pos, Radius: b.Radius}
}

// Attractor returns the body as a gravity source at pos
func (b Body) Attractor(pos physics.Vector2D) physics.Attractor {
	return physics.Attractor{Position: pos, Mass: b.Mass}
}

// NewPlayer returns the definition of the launched projectile. The player is
// the only body moved by gravity.
func NewPlayer(position physics.Vector2D, mass, radius, friction float64) Def {
	return Def{
		Role:     RolePlayer,
		Name:     "player",
		Position: position,
		Mass:     mass,
		Radius:   radius,
		Kind:     physics.Dynamic,
		Friction: friction,
	}
}

// NewLauncher returns the definition of the slingshot anchor
func NewLauncher(position physics.Vector2D, radius float64) Def {
	return Def{
		Role:     RoleLauncher,
		Name:     "launcher",
		Position: position,
		Mass:     1,
		Radius:   radius,
		Kind:     physics.Static,
	}
}

// NewGoal returns the definition of a level's target region. Goals are
// sensors: the player passes through them.
func NewGoal(position physics.Vector2D, radius float64) Def {
	return Def{
		Role:     RoleGoal,
		Name:     "goal",
		Position: position,
		Mass:     1,
		Radius:   radius,
		Kind:     physics.Static,
		Sensor:   true,
	}
}
