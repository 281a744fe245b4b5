// pkg/entity/registry.go
package entity

import (
	"errors"
	"fmt"
	"math"

	"github.com/opd-ai/go-orbits/pkg/physics"
)

var (
	// ErrInvalidMass is returned for bodies whose mass is not strictly positive
	ErrInvalidMass = errors.New("body mass must be positive and finite")
	// ErrInvalidRadius is returned for bodies whose radius is not strictly positive
	ErrInvalidRadius = errors.New("body radius must be positive and finite")
	// ErrDuplicateRole is returned when a second player, launcher or goal is registered
	ErrDuplicateRole = errors.New("role already registered")
	// ErrNotFound is returned for IDs the registry does not know
	ErrNotFound = errors.New("body not found")
)

// Registry tracks every body of a level together with its provider handle.
// Mass and radius live here because the provider may not report them
// faithfully for static bodies.
type Registry struct {
	provider physics.Provider
	bodies   map[ID]*Body
	order    []ID
	byHandle map[physics.Handle]ID
	nextID   ID

	player   ID
	launcher ID
	goal     ID
}

// NewRegistry creates an empty registry that registers bodies with provider
func NewRegistry(provider physics.Provider) *Registry {
	return &Registry{
		provider: provider,
		bodies:   make(map[ID]*Body),
		byHandle: make(map[physics.Handle]ID),
	}
}

// Provider returns the physics provider the registry feeds
func (r *Registry) Provider() physics.Provider {
	return r.provider
}

// Register validates def, creates its body in the provider and returns the new ID.
func (r *Registry) Register(def Def) (ID, error) {
	if err := validateDef(def); err != nil {
		return 0, err
	}
	if slot := r.singletonSlot(def.Role); slot != nil && *slot != 0 {
		return 0, fmt.Errorf("%w: %s", ErrDuplicateRole, def.Role)
	}

	handle, err := r.provider.AddBody(physics.BodyDef{
		Position: def.Position,
		Mass:     def.Mass,
		Radius:   def.Radius,
		Kind:     def.Kind,
		Category: def.Role.Category(),
		Sensor:   def.Sensor,
		Friction: def.Friction,
	})
	if err != nil {
		return 0, fmt.Errorf("failed to add %s %q to physics: %w", def.Role, def.Name, err)
	}

	r.nextID++
	id := r.nextID
	r.bodies[id] = &Body{
		ID:       id,
		Role:     def.Role,
		Name:     def.Name,
		Handle:   handle,
		Position: def.Position,
		Mass:     def.Mass,
		Radius:   def.Radius,
		Kind:     def.Kind,
	}
	r.order = append(r.order, id)
	r.byHandle[handle] = id
	if slot := r.singletonSlot(def.Role); slot != nil {
		*slot = id
	}
	return id, nil
}

func validateDef(def Def) error {
	if math.IsNaN(def.Mass) || math.IsInf(def.Mass, 0) || def.Mass <= 0 {
		return fmt.Errorf("%s %q: %w (got %v)", def.Role, def.Name, ErrInvalidMass, def.Mass)
	}
	if math.IsNaN(def.Radius) || math.IsInf(def.Radius, 0) || def.Radius <= 0 {
		return fmt.Errorf("%s %q: %w (got %v)", def.Role, def.Name, ErrInvalidRadius, def.Radius)
	}
	return nil
}

func (r *Registry) singletonSlot(role Role) *ID {
	switch role {
	case RolePlayer:
		return &r.player
	case RoleLauncher:
		return &r.launcher
	case RoleGoal:
		return &r.goal
	default:
		return nil
	}
}

// Get returns a copy of the body with the given ID
func (r *Registry) Get(id ID) (Body, bool) {
	b, ok := r.bodies[id]
	if !ok {
		return Body{}, false
	}
	return *b, true
}

// Lookup returns the body that owns a provider handle
func (r *Registry) Lookup(h physics.Handle) (Body, bool) {
	id, ok := r.byHandle[h]
	if !ok {
		return Body{}, false
	}
	return r.Get(id)
}

// Player returns the player body, if registered
func (r *Registry) Player() (Body, bool) {
	return r.Get(r.player)
}

// Launcher returns the launcher body, if registered
func (r *Registry) Launcher() (Body, bool) {
	return r.Get(r.launcher)
}

// Goal returns the goal body, if the level has one
func (r *Registry) Goal() (Body, bool) {
	return r.Get(r.goal)
}

// Planets returns all planets in registration order
func (r *Registry) Planets() []Body {
	var planets []Body
	for _, id := range r.order {
		if b := r.bodies[id]; b.Role == RolePlanet {
			planets = append(planets, *b)
		}
	}
	return planets
}

// Bodies returns every registered body in registration order, detached ones included
func (r *Registry) Bodies() []Body {
	bodies := make([]Body, 0, len(r.order))
	for _, id := range r.order {
		bodies = append(bodies, *r.bodies[id])
	}
	return bodies
}

// Attractors returns the gravity sources of the level. Planets are static, so
// their placement is their position.
func (r *Registry) Attractors() []physics.Attractor {
	var out []physics.Attractor
	for _, id := range r.order {
		if b := r.bodies[id]; b.Role == RolePlanet && !b.Detached {
			out = append(out, b.Attractor(b.Position))
		}
	}
	return out
}

// Position returns the current position of a body. Detached bodies keep the
// position they had when they were removed.
func (r *Registry) Position(id ID) (physics.Vector2D, error) {
	b, ok := r.bodies[id]
	if !ok {
		return physics.Vector2D{}, fmt.Errorf("%w: id %d", ErrNotFound, id)
	}
	if b.Detached || b.Kind == physics.Static {
		return b.Position, nil
	}
	pos, err := r.provider.Position(b.Handle)
	if err != nil {
		return physics.Vector2D{}, fmt.Errorf("failed to read position of %s: %w", b.Role, err)
	}
	return pos, nil
}

// SetPosition moves a body directly, overriding the simulation
func (r *Registry) SetPosition(id ID, pos physics.Vector2D) error {
	b, ok := r.bodies[id]
	if !ok {
		return fmt.Errorf("%w: id %d", ErrNotFound, id)
	}
	if b.Detached {
		b.Position = pos
		return nil
	}
	if err := r.provider.SetPosition(b.Handle, pos); err != nil {
		return fmt.Errorf("failed to move %s: %w", b.Role, err)
	}
	return nil
}

// Remove takes a body out of the simulation. The body stays in the registry,
// marked detached, so it can still be drawn.
func (r *Registry) Remove(id ID) error {
	b, ok := r.bodies[id]
	if !ok {
		return fmt.Errorf("%w: id %d", ErrNotFound, id)
	}
	if b.Detached {
		return nil
	}
	pos, err := r.Position(id)
	if err != nil {
		return err
	}
	if err := r.provider.RemoveBody(b.Handle); err != nil {
		return fmt.Errorf("failed to remove %s from physics: %w", b.Role, err)
	}
	delete(r.byHandle, b.Handle)
	b.Position = pos
	b.Detached = true
	return nil
}
