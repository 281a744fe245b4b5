// pkg/engine/renderer.go
package engine

// Renderer defines the interface for rendering a game snapshot
type Renderer interface {
	Clear()
	RenderPlanet(planet BodyState)
	RenderGoal(goal BodyState)
	RenderLauncher(launcher LauncherState)
	RenderPlayer(player PlayerView)
	Present()
}

// StatusRenderer is implemented by renderers that show a text status line
// alongside the bodies.
type StatusRenderer interface {
	RenderStatus(state *GameState)
}

// Render draws the current state through r. Planets go first so the
// player is drawn on top.
func (g *Game) Render(r Renderer) {
	RenderState(g.Snapshot(), r)
}

// RenderState draws state through r. A launcher that has fully faded is
// skipped.
func RenderState(state *GameState, r Renderer) {
	r.Clear()
	for _, planet := range state.Planets {
		r.RenderPlanet(planet)
	}
	if state.Goal != nil {
		r.RenderGoal(*state.Goal)
	}
	if state.Launcher.Opacity > 0 {
		r.RenderLauncher(state.Launcher)
	}
	r.RenderPlayer(state.Player)
	if sr, ok := r.(StatusRenderer); ok {
		sr.RenderStatus(state)
	}
	r.Present()
}
