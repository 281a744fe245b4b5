// pkg/physics/vector_test.go
package physics

import (
	"math"
	"testing"
)

func TestVector2D_Arithmetic(t *testing.T) {
	tests := []struct {
		name     string
		got      Vector2D
		expected Vector2D
	}{
		{"add_positive", Vector2D{X: 3, Y: 4}.Add(Vector2D{X: 1, Y: 2}), Vector2D{X: 4, Y: 6}},
		{"add_mixed_signs", Vector2D{X: 5, Y: -3}.Add(Vector2D{X: -2, Y: 7}), Vector2D{X: 3, Y: 4}},
		{"sub_negative_result", Vector2D{X: 2, Y: 3}.Sub(Vector2D{X: 5, Y: 7}), Vector2D{X: -3, Y: -4}},
		{"sub_same", Vector2D{X: 4, Y: 6}.Sub(Vector2D{X: 4, Y: 6}), Vector2D{}},
		{"scale_negative", Vector2D{X: 3, Y: 4}.Scale(-2), Vector2D{X: -6, Y: -8}},
		{"scale_fraction", Vector2D{X: 4, Y: 8}.Scale(0.5), Vector2D{X: 2, Y: 4}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != tt.expected {
				t.Errorf("got %v, expected %v", tt.got, tt.expected)
			}
		})
	}
}

func TestVector2D_Length(t *testing.T) {
	tests := []struct {
		name     string
		vector   Vector2D
		length   float64
		lengthSq float64
	}{
		{"zero_vector", Vector2D{}, 0, 0},
		{"unit_x", Vector2D{X: 1}, 1, 1},
		{"pythagorean_triple", Vector2D{X: 3, Y: 4}, 5, 25},
		{"negative_components", Vector2D{X: -3, Y: -4}, 5, 25},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.vector.Length(); math.Abs(got-tt.length) > 1e-9 {
				t.Errorf("Length() = %v, expected %v", got, tt.length)
			}
			if got := tt.vector.LengthSquared(); math.Abs(got-tt.lengthSq) > 1e-9 {
				t.Errorf("LengthSquared() = %v, expected %v", got, tt.lengthSq)
			}
		})
	}
}

func TestVector2D_Normalize(t *testing.T) {
	t.Run("zero_vector_stays_zero", func(t *testing.T) {
		if got := (Vector2D{}).Normalize(); !got.IsZero() {
			t.Errorf("Normalize() = %v, expected zero vector", got)
		}
	})

	t.Run("diagonal", func(t *testing.T) {
		got := Vector2D{X: -400, Y: -400}.Normalize()
		want := -math.Sqrt2 / 2
		if math.Abs(got.X-want) > 1e-12 || math.Abs(got.Y-want) > 1e-12 {
			t.Errorf("Normalize() = %v, expected (%v, %v)", got, want, want)
		}
		if math.Abs(got.Length()-1) > 1e-12 {
			t.Errorf("normalized length = %v, expected 1", got.Length())
		}
	})
}

func TestVector2D_DistanceAndAngle(t *testing.T) {
	a := Vector2D{X: 800, Y: 450}
	b := Vector2D{X: 850, Y: 450}

	if got := a.Distance(b); got != 50 {
		t.Errorf("Distance() = %v, expected 50", got)
	}
	if got := a.DistanceSquared(b); got != 2500 {
		t.Errorf("DistanceSquared() = %v, expected 2500", got)
	}
	if got := b.Sub(a).Angle(); got != 0 {
		t.Errorf("Angle() = %v, expected 0", got)
	}
	if got := a.Sub(b).Angle(); math.Abs(got-math.Pi) > 1e-12 {
		t.Errorf("Angle() = %v, expected pi", got)
	}
	if got := (Vector2D{X: 1, Y: 2}).Dot(Vector2D{X: 3, Y: 4}); got != 11 {
		t.Errorf("Dot() = %v, expected 11", got)
	}
}

func TestVector2D_IsFinite(t *testing.T) {
	tests := []struct {
		name   string
		vector Vector2D
		want   bool
	}{
		{"finite", Vector2D{X: 1, Y: -1}, true},
		{"nan", Vector2D{X: math.NaN()}, false},
		{"inf", Vector2D{Y: math.Inf(-1)}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.vector.IsFinite(); got != tt.want {
				t.Errorf("IsFinite() = %v, want %v", got, tt.want)
			}
		})
	}
}
