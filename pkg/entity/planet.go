// pkg/entity/planet.go
package entity

import (
	"github.com/opd-ai/go-orbits/pkg/physics"
)

// DefaultPlanetRadius is used when a level leaves a planet's radius out
const DefaultPlanetRadius = 50

// NewPlanet returns the definition of a planet. Planets never move and keep
// their mass for the whole level.
func NewPlanet(name string, position physics.Vector2D, mass, radius float64) Def {
	if radius == 0 {
		radius = DefaultPlanetRadius
	}
	return Def{
		Role:     RolePlanet,
		Name:     name,
		Position: position,
		Mass:     mass,
		Radius:   radius,
		Kind:     physics.Static,
		Friction: 1,
	}
}
