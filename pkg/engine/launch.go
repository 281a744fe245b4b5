// pkg/engine/launch.go
package engine

import (
	"fmt"
	"math"

	"github.com/opd-ai/go-orbits/pkg/physics"
)

// LaunchController turns the slingshot pull into a launch impulse.
type LaunchController struct {
	power float64
}

// NewLaunchController creates a controller scaling the pull by power
func NewLaunchController(power float64) (LaunchController, error) {
	if !(power > 0) || math.IsInf(power, 1) {
		return LaunchController{}, fmt.Errorf("launch power must be positive and finite, got %v", power)
	}
	return LaunchController{power: power}, nil
}

// Power returns the impulse scale
func (c LaunchController) Power() float64 {
	return c.power
}

// Impulse returns the momentum change for a player released at player.
// The player flies back through the launcher.
func (c LaunchController) Impulse(launcher, player physics.Vector2D) physics.Vector2D {
	return launcher.Sub(player).Scale(c.power)
}

// FadeTimer counts down the launcher fade after a launch. The zero value is
// a stopped timer with nothing left to fade.
type FadeTimer struct {
	duration  float64
	remaining float64
}

// Start resets the timer to duration seconds
func (f *FadeTimer) Start(duration float64) {
	if duration < 0 {
		duration = 0
	}
	f.duration = duration
	f.remaining = duration
}

// Advance consumes dt seconds. Remaining time never goes below zero.
func (f *FadeTimer) Advance(dt float64) {
	if dt <= 0 {
		return
	}
	f.remaining -= dt
	if f.remaining < 0 {
		f.remaining = 0
	}
}

// Remaining returns the seconds left
func (f *FadeTimer) Remaining() float64 {
	return f.remaining
}

// Opacity returns the fraction of the fade still to go, in [0,1]
func (f *FadeTimer) Opacity() float64 {
	if f.duration <= 0 {
		return 0
	}
	return f.remaining / f.duration
}

// Done reports whether the fade has finished
func (f *FadeTimer) Done() bool {
	return f.remaining <= 0
}
