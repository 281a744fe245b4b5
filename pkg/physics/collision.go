// pkg/physics/collision.go
package physics

// Circle represents a circular collision shape. Every body in the game is a circle.
type Circle struct {
	Center Vector2D
	Radius float64
}

// Collides checks if two circles are overlapping
func (c Circle) Collides(other Circle) bool {
	return c.Center.Distance(other.Center) < c.Radius+other.Radius
}

// Contains reports whether point lies inside or on the circle. Used as the
// player's hit area for pointer presses.
func (c Circle) Contains(point Vector2D) bool {
	return c.Center.DistanceSquared(point) <= c.Radius*c.Radius
}

// Bounds returns the axis-aligned bounding box of the circle
func (c Circle) Bounds() Rect {
	return Rect{
		Center: c.Center,
		Width:  c.Radius * 2,
		Height: c.Radius * 2,
	}
}

// Rect represents an axis-aligned rectangular area
type Rect struct {
	Center Vector2D
	Width  float64
	Height float64
}

// NewViewport returns the rectangle covering [0,width]x[0,height]
func NewViewport(width, height float64) Rect {
	return Rect{
		Center: Vector2D{X: width / 2, Y: height / 2},
		Width:  width,
		Height: height,
	}
}

// Min returns the bottom-left corner
func (r Rect) Min() Vector2D {
	return Vector2D{X: r.Center.X - r.Width/2, Y: r.Center.Y - r.Height/2}
}

// Max returns the top-right corner
func (r Rect) Max() Vector2D {
	return Vector2D{X: r.Center.X + r.Width/2, Y: r.Center.Y + r.Height/2}
}

// Contains reports whether point lies inside the half-open rectangle
func (r Rect) Contains(point Vector2D) bool {
	minP, maxP := r.Min(), r.Max()
	return point.X >= minP.X && point.X < maxP.X &&
		point.Y >= minP.Y && point.Y < maxP.Y
}

// Encloses reports whether other lies entirely inside r, edges included
func (r Rect) Encloses(other Rect) bool {
	rMin, rMax := r.Min(), r.Max()
	oMin, oMax := other.Min(), other.Max()
	return oMin.X >= rMin.X && oMax.X <= rMax.X &&
		oMin.Y >= rMin.Y && oMax.Y <= rMax.Y
}

// Intersects reports whether the two rectangles overlap
func (r Rect) Intersects(other Rect) bool {
	rMin, rMax := r.Min(), r.Max()
	oMin, oMax := other.Min(), other.Max()
	return !(oMin.X > rMax.X || oMax.X < rMin.X ||
		oMin.Y > rMax.Y || oMax.Y < rMin.Y)
}
