// pkg/render/renderer.go
package render

import (
	"context"

	"github.com/opd-ai/go-orbits/pkg/engine"
	"github.com/opd-ai/go-orbits/pkg/logging"
)

// NullRenderer is an engine.Renderer that only logs what it is asked to draw.
// It backs the headless mode.
type NullRenderer struct {
	logger *logging.Logger
	frames uint64
}

// NewNullRenderer creates a new NullRenderer with structured logging.
// A nil logger discards everything.
func NewNullRenderer(logger *logging.Logger) *NullRenderer {
	if logger == nil {
		logger = logging.Discard()
	}
	return &NullRenderer{logger: logger}
}

// Frames returns how many frames were presented
func (d *NullRenderer) Frames() uint64 {
	return d.frames
}

// Clear implements engine.Renderer.
func (d *NullRenderer) Clear() {
	d.logger.Debug(context.Background(), "Clear called")
}

// Present implements engine.Renderer.
func (d *NullRenderer) Present() {
	d.frames++
	d.logger.Debug(context.Background(), "Present called", "frame", d.frames)
}

// RenderPlanet implements engine.Renderer.
func (d *NullRenderer) RenderPlanet(planet engine.BodyState) {
	d.logger.Debug(context.Background(), "RenderPlanet called",
		"planet_id", planet.ID,
		"planet_name", planet.Name,
		"x", planet.Position.X,
		"y", planet.Position.Y,
	)
}

// RenderGoal implements engine.Renderer.
func (d *NullRenderer) RenderGoal(goal engine.BodyState) {
	d.logger.Debug(context.Background(), "RenderGoal called",
		"x", goal.Position.X,
		"y", goal.Position.Y,
		"radius", goal.Radius,
	)
}

// RenderLauncher implements engine.Renderer.
func (d *NullRenderer) RenderLauncher(launcher engine.LauncherState) {
	d.logger.Debug(context.Background(), "RenderLauncher called",
		"angle", launcher.Angle,
		"opacity", launcher.Opacity,
		"detached", launcher.Detached,
	)
}

// RenderPlayer implements engine.Renderer.
func (d *NullRenderer) RenderPlayer(player engine.PlayerView) {
	d.logger.Debug(context.Background(), "RenderPlayer called",
		"state", player.State.String(),
		"x", player.Position.X,
		"y", player.Position.Y,
		"off_screen", player.OffScreen,
	)
}

// NullRendererInstance is a global instance of NullRenderer for convenience.
var NullRendererInstance engine.Renderer = NewNullRenderer(nil)
