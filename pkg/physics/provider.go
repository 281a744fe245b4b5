// pkg/physics/provider.go
package physics

import "errors"

// BodyKind selects how the provider integrates a body.
type BodyKind int

const (
	// Dynamic bodies are moved by forces, impulses and collisions.
	Dynamic BodyKind = iota
	// Static bodies never move.
	Static
	// Kinematic bodies are moved only by explicit position updates.
	Kinematic
)

func (k BodyKind) String() string {
	switch k {
	case Dynamic:
		return "dynamic"
	case Static:
		return "static"
	case Kinematic:
		return "kinematic"
	default:
		return "unknown"
	}
}

// Category tags a body for collision filtering and contact reporting.
type Category uint

const (
	CategoryNone Category = iota
	CategoryPlayer
	CategoryPlanet
	CategoryLauncher
	CategoryGoal
)

// Handle identifies a body inside a provider. Zero is never a valid handle.
type Handle uint64

// ErrUnknownBody is returned for operations on a handle the provider does not know.
var ErrUnknownBody = errors.New("unknown body handle")

// ErrStaticBody is returned when a static body is asked to move.
var ErrStaticBody = errors.New("static body cannot be moved")

// BodyDef describes a body to create.
type BodyDef struct {
	Position Vector2D
	Mass     float64
	Radius   float64
	Kind     BodyKind
	Category Category
	// Sensor shapes report contacts but produce no collision response.
	Sensor   bool
	Friction float64
}

// Contact reports that two bodies started touching during a step.
type Contact struct {
	A, B Handle
}

// Other returns the handle in c that is not h, and whether h took part at all.
func (c Contact) Other(h Handle) (Handle, bool) {
	switch h {
	case c.A:
		return c.B, true
	case c.B:
		return c.A, true
	default:
		return 0, false
	}
}

// Provider is the rigid-body engine the game drives. The game never integrates
// motion itself: it submits impulses and forces and asks the provider to step.
type Provider interface {
	AddBody(def BodyDef) (Handle, error)
	RemoveBody(h Handle) error

	Position(h Handle) (Vector2D, error)
	Velocity(h Handle) (Vector2D, error)
	Mass(h Handle) (float64, error)
	Angle(h Handle) (float64, error)

	// ApplyImpulse changes the body's momentum once, immediately.
	ApplyImpulse(h Handle, impulse Vector2D) error
	// ApplyForce adds a force that is integrated over the next Step only.
	ApplyForce(h Handle, force Vector2D) error
	SetFriction(h Handle, friction float64) error
	// SetPosition teleports the body and clears its velocity. Static bodies
	// are fixed and return ErrStaticBody.
	SetPosition(h Handle, position Vector2D) error

	// SetContactHandler registers fn to be called for every contact that
	// begins during Step. Passing nil removes the handler.
	SetContactHandler(fn func(Contact))

	// Step advances the simulation by dt seconds.
	Step(dt float64)
}
