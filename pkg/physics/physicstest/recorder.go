// Package physicstest provides a physics.Provider double that records every
// call made to it. Bodies only move when a test says so.
package physicstest

import (
	"fmt"

	"github.com/opd-ai/go-orbits/pkg/physics"
)

// Applied is one recorded impulse or force.
type Applied struct {
	Handle physics.Handle
	Vector physics.Vector2D
}

// Body is the recorder's view of a registered body.
type Body struct {
	Def      physics.BodyDef
	Position physics.Vector2D
	Velocity physics.Vector2D
	Friction float64
}

// Recorder implements physics.Provider without integrating anything.
// Impulses and forces are recorded, and impulses also change Velocity by
// impulse/mass so that tests can observe a launch.
type Recorder struct {
	Bodies    map[physics.Handle]*Body
	Impulses  []Applied
	Forces    []Applied
	Removed   []physics.Handle
	Positions []Applied
	Steps     []float64

	// OnStep, when set, runs at the end of every Step. Tests use it to move
	// bodies or raise contacts.
	OnStep func(r *Recorder)

	next    physics.Handle
	contact func(physics.Contact)
}

var _ physics.Provider = (*Recorder)(nil)

// NewRecorder returns an empty recorder.
func NewRecorder() *Recorder {
	return &Recorder{Bodies: make(map[physics.Handle]*Body)}
}

func (r *Recorder) body(h physics.Handle) (*Body, error) {
	b, ok := r.Bodies[h]
	if !ok {
		return nil, fmt.Errorf("recorder: handle %d: %w", h, physics.ErrUnknownBody)
	}
	return b, nil
}

// AddBody implements physics.Provider.
func (r *Recorder) AddBody(def physics.BodyDef) (physics.Handle, error) {
	r.next++
	r.Bodies[r.next] = &Body{Def: def, Position: def.Position, Friction: def.Friction}
	return r.next, nil
}

// RemoveBody implements physics.Provider.
func (r *Recorder) RemoveBody(h physics.Handle) error {
	if _, err := r.body(h); err != nil {
		return err
	}
	delete(r.Bodies, h)
	r.Removed = append(r.Removed, h)
	return nil
}

// Position implements physics.Provider.
func (r *Recorder) Position(h physics.Handle) (physics.Vector2D, error) {
	b, err := r.body(h)
	if err != nil {
		return physics.Vector2D{}, err
	}
	return b.Position, nil
}

// Velocity implements physics.Provider.
func (r *Recorder) Velocity(h physics.Handle) (physics.Vector2D, error) {
	b, err := r.body(h)
	if err != nil {
		return physics.Vector2D{}, err
	}
	return b.Velocity, nil
}

// Mass implements physics.Provider.
func (r *Recorder) Mass(h physics.Handle) (float64, error) {
	b, err := r.body(h)
	if err != nil {
		return 0, err
	}
	return b.Def.Mass, nil
}

// Angle implements physics.Provider. Recorded bodies never rotate.
func (r *Recorder) Angle(h physics.Handle) (float64, error) {
	_, err := r.body(h)
	return 0, err
}

// ApplyImpulse implements physics.Provider.
func (r *Recorder) ApplyImpulse(h physics.Handle, impulse physics.Vector2D) error {
	b, err := r.body(h)
	if err != nil {
		return err
	}
	r.Impulses = append(r.Impulses, Applied{Handle: h, Vector: impulse})
	if b.Def.Mass > 0 {
		b.Velocity = b.Velocity.Add(impulse.Scale(1 / b.Def.Mass))
	}
	return nil
}

// ApplyForce implements physics.Provider.
func (r *Recorder) ApplyForce(h physics.Handle, force physics.Vector2D) error {
	if _, err := r.body(h); err != nil {
		return err
	}
	r.Forces = append(r.Forces, Applied{Handle: h, Vector: force})
	return nil
}

// SetFriction implements physics.Provider.
func (r *Recorder) SetFriction(h physics.Handle, friction float64) error {
	b, err := r.body(h)
	if err != nil {
		return err
	}
	b.Friction = friction
	return nil
}

// SetPosition implements physics.Provider.
func (r *Recorder) SetPosition(h physics.Handle, position physics.Vector2D) error {
	b, err := r.body(h)
	if err != nil {
		return err
	}
	if b.Def.Kind == physics.Static {
		return physics.ErrStaticBody
	}
	b.Position = position
	b.Velocity = physics.Vector2D{}
	r.Positions = append(r.Positions, Applied{Handle: h, Vector: position})
	return nil
}

// SetContactHandler implements physics.Provider.
func (r *Recorder) SetContactHandler(fn func(physics.Contact)) {
	r.contact = fn
}

// Step implements physics.Provider.
func (r *Recorder) Step(dt float64) {
	r.Steps = append(r.Steps, dt)
	if r.OnStep != nil {
		r.OnStep(r)
	}
}

// Touch reports a contact between a and b to the registered handler.
func (r *Recorder) Touch(a, b physics.Handle) {
	if r.contact != nil {
		r.contact(physics.Contact{A: a, B: b})
	}
}

// Move places a body without recording it as a kinematic override.
func (r *Recorder) Move(h physics.Handle, position physics.Vector2D) {
	if b, ok := r.Bodies[h]; ok {
		b.Position = position
	}
}

// ForcesOn returns the recorded forces applied to h, in order.
func (r *Recorder) ForcesOn(h physics.Handle) []physics.Vector2D {
	var out []physics.Vector2D
	for _, f := range r.Forces {
		if f.Handle == h {
			out = append(out, f.Vector)
		}
	}
	return out
}

// Reset clears the recorded calls but keeps the bodies.
func (r *Recorder) Reset() {
	r.Impulses = nil
	r.Forces = nil
	r.Removed = nil
	r.Positions = nil
	r.Steps = nil
}
