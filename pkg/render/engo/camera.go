// pkg/render/engo/camera.go
package engo

import (
	"math"

	"github.com/EngoEngine/engo"
	"github.com/EngoEngine/engo/common"

	"github.com/opd-ai/go-orbits/pkg/physics"
)

// Camera maps the y-up world onto engo's y-down screen. The view never
// moves: the whole viewport is always visible at one pixel per unit.
type Camera struct {
	viewport physics.Rect
}

// NewCamera creates a camera showing viewport
func NewCamera(viewport physics.Rect) Camera {
	return Camera{viewport: viewport}
}

// Size returns the screen size in pixels
func (c Camera) Size() (float32, float32) {
	return float32(c.viewport.Width), float32(c.viewport.Height)
}

// WorldToScreen converts world coordinates to screen coordinates
func (c Camera) WorldToScreen(pos physics.Vector2D) engo.Point {
	minP, maxP := c.viewport.Min(), c.viewport.Max()
	return engo.Point{
		X: float32(pos.X - minP.X),
		Y: float32(maxP.Y - pos.Y),
	}
}

// InView reports whether a screen point falls on the play area. Screen y
// grows downward from the top edge, so the check runs before the flip.
func (c Camera) InView(p engo.Point) bool {
	minP := c.viewport.Min()
	return c.viewport.Contains(physics.Vector2D{X: minP.X + float64(p.X), Y: minP.Y + float64(p.Y)})
}

// ScreenToWorld converts screen coordinates to world coordinates
func (c Camera) ScreenToWorld(p engo.Point) physics.Vector2D {
	minP, maxP := c.viewport.Min(), c.viewport.Max()
	return physics.Vector2D{
		X: float64(p.X) + minP.X,
		Y: maxP.Y - float64(p.Y),
	}
}

// Rotation converts a counter-clockwise world angle in radians to an engo
// rotation, which is clockwise in degrees.
func (c Camera) Rotation(angle float64) float32 {
	return float32(-angle * 180 / math.Pi)
}

// CircleSpace returns the space component of the square enclosing a circle
func (c Camera) CircleSpace(center physics.Vector2D, radius float64) common.SpaceComponent {
	p := c.WorldToScreen(center)
	r := float32(radius)
	return common.SpaceComponent{
		Position: engo.Point{X: p.X - r, Y: p.Y - r},
		Width:    2 * r,
		Height:   2 * r,
	}
}

// SegmentSpace returns the space component of a bar of the given thickness
// starting at from and running along v. engo rotates around Position.
func (c Camera) SegmentSpace(from, v physics.Vector2D, thickness float32) common.SpaceComponent {
	return common.SpaceComponent{
		Position: c.WorldToScreen(from),
		Width:    float32(v.Length()),
		Height:   thickness,
		Rotation: c.Rotation(v.Angle()),
	}
}
