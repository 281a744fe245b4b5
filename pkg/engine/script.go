// pkg/engine/script.go
package engine

import (
	"fmt"

	"github.com/opd-ai/go-orbits/pkg/physics"
)

// QueueLaunch queues the press, pull and release of a launch that drags the
// player by pull from its rest position. The launch happens on the next tick.
func (g *Game) QueueLaunch(pull physics.Vector2D) error {
	g.mu.RLock()
	state := g.player.State()
	rest := g.getPlayerView().Position
	g.mu.RUnlock()

	if state != Waiting {
		return fmt.Errorf("cannot launch while %s", state)
	}
	to := rest.Add(pull)
	g.PointerDown(rest.X, rest.Y)
	g.PointerMove(to.X, to.Y)
	g.PointerUp(to.X, to.Y)
	return nil
}

// Simulate runs fixed ticks until the attempt ends or maxSeconds of game
// time have passed, drawing every tick through r when r is not nil. It
// returns the final status.
func (g *Game) Simulate(maxSeconds float64, r Renderer) GameStatus {
	maxTicks := uint64(maxSeconds/g.TimeStep + 1e-9)
	for i := uint64(0); i < maxTicks; i++ {
		g.Tick()
		if r != nil {
			g.Render(r)
		}
		if s := g.Status(); s == GameStatusCrashed || s == GameStatusFinished {
			return s
		}
	}
	return g.Status()
}
