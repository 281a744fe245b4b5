// pkg/physics/gravity.go
package physics

import (
	"errors"
	"fmt"
)

// DefaultMinDistance is the distance below which the inverse-square law is
// clamped when no explicit value is configured.
const DefaultMinDistance = 1.0

// ErrInvalidGravity is returned when a GravityConfig cannot produce finite forces.
var ErrInvalidGravity = errors.New("invalid gravity configuration")

// GravityConfig holds the tunables of the gravity accumulator.
type GravityConfig struct {
	// Constant is G in F = G*m1*m2/d².
	Constant float64
	// MinDistance clamps d so that d² never drops below MinDistance².
	MinDistance float64
}

// Attractor is the part of a body the gravity accumulator needs.
type Attractor struct {
	Position Vector2D
	Mass     float64
}

// GravityAccumulator computes the net attractive force exerted by a set of
// planets on the player. It holds no per-tick state.
type GravityAccumulator struct {
	constant      float64
	minDistanceSq float64
}

// NewGravityAccumulator validates cfg and returns an accumulator.
// A zero MinDistance selects DefaultMinDistance.
func NewGravityAccumulator(cfg GravityConfig) (*GravityAccumulator, error) {
	if !isFinite(cfg.Constant) || cfg.Constant <= 0 {
		return nil, fmt.Errorf("%w: gravitational constant %v must be positive", ErrInvalidGravity, cfg.Constant)
	}
	if !isFinite(cfg.MinDistance) || cfg.MinDistance < 0 {
		return nil, fmt.Errorf("%w: minimum distance %v must not be negative", ErrInvalidGravity, cfg.MinDistance)
	}
	minDistance := cfg.MinDistance
	if minDistance == 0 {
		minDistance = DefaultMinDistance
	}
	return &GravityAccumulator{
		constant:      cfg.Constant,
		minDistanceSq: minDistance * minDistance,
	}, nil
}

// Constant returns G
func (g *GravityAccumulator) Constant() float64 {
	return g.constant
}

// Force returns the sum of the pairwise attractions between player and every
// planet. The result is meant to be applied as a continuous force for one step.
func (g *GravityAccumulator) Force(player Attractor, planets []Attractor) Vector2D {
	var total Vector2D
	for _, planet := range planets {
		total = total.Add(g.PairForce(player, planet))
	}
	return total
}

// PairForce returns the force planet exerts on player.
//
// Bodies without positive mass exert and feel nothing. When the two positions
// coincide there is no direction to pull in, so the contribution is zero; the
// state machine treats that situation as a crash on its own.
func (g *GravityAccumulator) PairForce(player, planet Attractor) Vector2D {
	if !validMass(player.Mass) || !validMass(planet.Mass) {
		return Vector2D{}
	}

	offset := planet.Position.Sub(player.Position)
	distSq := offset.LengthSquared()
	if distSq == 0 {
		return Vector2D{}
	}

	clampedSq := distSq
	if clampedSq < g.minDistanceSq {
		clampedSq = g.minDistanceSq
	}

	magnitude := g.constant * planet.Mass * player.Mass / clampedSq
	return offset.Normalize().Scale(magnitude)
}

func validMass(m float64) bool {
	return isFinite(m) && m > 0
}
