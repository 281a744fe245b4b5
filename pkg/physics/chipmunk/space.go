// Package chipmunk implements physics.Provider on top of the Chipmunk2D port
// github.com/jakecoffman/cp.
package chipmunk

import (
	"fmt"

	"github.com/jakecoffman/cp"

	"github.com/opd-ai/go-orbits/pkg/physics"
)

// Config holds the space-wide settings.
type Config struct {
	// Damping is the fraction of velocity a body keeps after one second.
	// 1 means no damping. Zero keeps the cp default, which is also 1;
	// game configs reject zero.
	Damping float64
	// Iterations is the solver iteration count. Zero keeps the cp default.
	Iterations uint
}

type record struct {
	body  *cp.Body
	shape *cp.Shape
	mass  float64
	kind  physics.BodyKind
}

// Space is a physics.Provider backed by a cp.Space. It is not safe for
// concurrent use; the game loop owns it.
type Space struct {
	space   *cp.Space
	bodies  map[physics.Handle]*record
	next    physics.Handle
	onTouch func(physics.Contact)
	pending []physics.Contact
}

var _ physics.Provider = (*Space)(nil)

var contactCategories = []physics.Category{
	physics.CategoryPlayer,
	physics.CategoryPlanet,
	physics.CategoryLauncher,
	physics.CategoryGoal,
}

// NewSpace creates an empty zero-gravity space. Gravity in this game comes
// from planets, never from a uniform field.
func NewSpace(cfg Config) *Space {
	s := &Space{
		space:  cp.NewSpace(),
		bodies: make(map[physics.Handle]*record),
	}
	s.space.SetGravity(cp.Vector{})
	if cfg.Damping > 0 {
		s.space.SetDamping(cfg.Damping)
	}
	if cfg.Iterations > 0 {
		s.space.Iterations = cfg.Iterations
	}

	for i, a := range contactCategories {
		for _, b := range contactCategories[i:] {
			handler := s.space.NewCollisionHandler(cp.CollisionType(a), cp.CollisionType(b))
			handler.BeginFunc = s.begin
		}
	}
	return s
}

// begin runs inside cp's step, so contacts are only queued here and delivered
// once the step has finished.
func (s *Space) begin(arb *cp.Arbiter, _ *cp.Space, _ interface{}) bool {
	a, b := arb.Shapes()
	ha, okA := a.UserData.(physics.Handle)
	hb, okB := b.UserData.(physics.Handle)
	if okA && okB {
		s.pending = append(s.pending, physics.Contact{A: ha, B: hb})
	}
	return true
}

// AddBody implements physics.Provider.
func (s *Space) AddBody(def physics.BodyDef) (physics.Handle, error) {
	if def.Radius <= 0 {
		return 0, fmt.Errorf("chipmunk: body radius %v must be positive", def.Radius)
	}

	var body *cp.Body
	switch def.Kind {
	case physics.Dynamic:
		if def.Mass <= 0 {
			return 0, fmt.Errorf("chipmunk: dynamic body mass %v must be positive", def.Mass)
		}
		body = cp.NewBody(def.Mass, cp.MomentForCircle(def.Mass, 0, def.Radius, cp.Vector{}))
	case physics.Static:
		body = cp.NewStaticBody()
	case physics.Kinematic:
		body = cp.NewKinematicBody()
	default:
		return 0, fmt.Errorf("chipmunk: unsupported body kind %v", def.Kind)
	}

	s.next++
	h := s.next

	s.space.AddBody(body)
	body.SetPosition(toCP(def.Position))
	body.UserData = h

	shape := s.space.AddShape(cp.NewCircle(body, def.Radius, cp.Vector{}))
	shape.SetFriction(def.Friction)
	shape.SetElasticity(0)
	shape.SetSensor(def.Sensor)
	shape.SetCollisionType(cp.CollisionType(def.Category))
	shape.UserData = h

	s.bodies[h] = &record{body: body, shape: shape, mass: def.Mass, kind: def.Kind}
	return h, nil
}

// RemoveBody implements physics.Provider.
func (s *Space) RemoveBody(h physics.Handle) error {
	rec, err := s.lookup(h)
	if err != nil {
		return err
	}
	s.space.RemoveShape(rec.shape)
	s.space.RemoveBody(rec.body)
	delete(s.bodies, h)
	return nil
}

// Position implements physics.Provider.
func (s *Space) Position(h physics.Handle) (physics.Vector2D, error) {
	rec, err := s.lookup(h)
	if err != nil {
		return physics.Vector2D{}, err
	}
	return fromCP(rec.body.Position()), nil
}

// Velocity implements physics.Provider.
func (s *Space) Velocity(h physics.Handle) (physics.Vector2D, error) {
	rec, err := s.lookup(h)
	if err != nil {
		return physics.Vector2D{}, err
	}
	return fromCP(rec.body.Velocity()), nil
}

// Mass implements physics.Provider. Static bodies report the mass they were
// defined with rather than cp's infinite mass.
func (s *Space) Mass(h physics.Handle) (float64, error) {
	rec, err := s.lookup(h)
	if err != nil {
		return 0, err
	}
	return rec.mass, nil
}

// Angle implements physics.Provider.
func (s *Space) Angle(h physics.Handle) (float64, error) {
	rec, err := s.lookup(h)
	if err != nil {
		return 0, err
	}
	return rec.body.Angle(), nil
}

// ApplyImpulse implements physics.Provider.
func (s *Space) ApplyImpulse(h physics.Handle, impulse physics.Vector2D) error {
	rec, err := s.dynamic(h)
	if err != nil {
		return err
	}
	rec.body.ApplyImpulseAtWorldPoint(toCP(impulse), rec.body.Position())
	return nil
}

// ApplyForce implements physics.Provider. cp clears accumulated forces after
// every step, which gives the one-step semantics the interface promises.
func (s *Space) ApplyForce(h physics.Handle, force physics.Vector2D) error {
	rec, err := s.dynamic(h)
	if err != nil {
		return err
	}
	rec.body.ApplyForceAtWorldPoint(toCP(force), rec.body.Position())
	return nil
}

// SetFriction implements physics.Provider.
func (s *Space) SetFriction(h physics.Handle, friction float64) error {
	rec, err := s.lookup(h)
	if err != nil {
		return err
	}
	rec.shape.SetFriction(friction)
	return nil
}

// SetPosition implements physics.Provider.
func (s *Space) SetPosition(h physics.Handle, position physics.Vector2D) error {
	rec, err := s.lookup(h)
	if err != nil {
		return err
	}
	if rec.kind == physics.Static {
		return fmt.Errorf("body %d: %w", h, physics.ErrStaticBody)
	}
	rec.body.SetPosition(toCP(position))
	rec.body.SetVelocityVector(cp.Vector{})
	return nil
}

// SetContactHandler implements physics.Provider.
func (s *Space) SetContactHandler(fn func(physics.Contact)) {
	s.onTouch = fn
}

// Step implements physics.Provider.
func (s *Space) Step(dt float64) {
	if dt <= 0 {
		return
	}
	s.space.Step(dt)

	contacts := s.pending
	s.pending = nil
	if s.onTouch == nil {
		return
	}
	for _, c := range contacts {
		s.onTouch(c)
	}
}

// Len returns the number of bodies currently in the space.
func (s *Space) Len() int {
	return len(s.bodies)
}

func (s *Space) lookup(h physics.Handle) (*record, error) {
	rec, ok := s.bodies[h]
	if !ok {
		return nil, fmt.Errorf("chipmunk: handle %d: %w", h, physics.ErrUnknownBody)
	}
	return rec, nil
}

func (s *Space) dynamic(h physics.Handle) (*record, error) {
	rec, err := s.lookup(h)
	if err != nil {
		return nil, err
	}
	if rec.kind != physics.Dynamic {
		return nil, fmt.Errorf("chipmunk: handle %d is %v, only dynamic bodies accept forces", h, rec.kind)
	}
	return rec, nil
}

func toCP(v physics.Vector2D) cp.Vector {
	return cp.Vector{X: v.X, Y: v.Y}
}

func fromCP(v cp.Vector) physics.Vector2D {
	return physics.Vector2D{X: v.X, Y: v.Y}
}
