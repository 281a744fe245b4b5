// pkg/render/terminal_input.go
package render

import (
	"context"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/opd-ai/go-orbits/pkg/engine"
	"github.com/opd-ai/go-orbits/pkg/logging"
)

// TerminalController feeds tcell input to a game and drives its frames.
type TerminalController struct {
	game     *engine.Game
	renderer *TerminalRenderer
	logger   *logging.Logger

	// pressed tracks the primary button; tcell reports button state, not
	// press and release edges.
	pressed bool
}

// NewTerminalController wires game to renderer's screen
func NewTerminalController(game *engine.Game, renderer *TerminalRenderer, logger *logging.Logger) *TerminalController {
	if logger == nil {
		logger = logging.Discard()
	}
	return &TerminalController{game: game, renderer: renderer, logger: logger}
}

// HandleEvent applies one terminal event. It returns false when the user
// asked to quit.
func (c *TerminalController) HandleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		return c.handleKey(ev)
	case *tcell.EventMouse:
		c.handleMouse(ev)
	case *tcell.EventResize:
		c.renderer.screen.Sync()
	}
	return true
}

func (c *TerminalController) handleKey(ev *tcell.EventKey) bool {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC, tcell.KeyCtrlQ:
		return false
	case tcell.KeyRune:
		switch ev.Rune() {
		case 'q':
			return false
		case 'r':
			if err := c.game.Reset(); err != nil {
				c.logger.Error(c.game.Context(), "failed to reset level", err)
			}
			c.pressed = false
		}
	}
	return true
}

func (c *TerminalController) handleMouse(ev *tcell.EventMouse) {
	col, row := ev.Position()
	pos := c.renderer.CellToWorld(col, row)
	down := ev.Buttons()&tcell.Button1 != 0

	switch {
	case down && !c.pressed:
		c.game.PointerDown(pos.X, pos.Y)
	case down:
		c.game.PointerMove(pos.X, pos.Y)
	case c.pressed:
		c.game.PointerUp(pos.X, pos.Y)
	default:
		c.game.PointerMove(pos.X, pos.Y)
	}
	c.pressed = down
}

// Run polls the screen and advances the game at fps frames per second until
// ctx is done or the user quits. The caller owns the screen and calls Fini.
func (c *TerminalController) Run(ctx context.Context, fps int) error {
	if fps <= 0 {
		fps = 60
	}
	screen := c.renderer.screen
	screen.EnableMouse()

	done := make(chan struct{})
	defer close(done)
	events := make(chan tcell.Event, 16)
	go func() {
		defer close(events)
		for {
			ev := screen.PollEvent()
			if ev == nil {
				return
			}
			select {
			case events <- ev:
			case <-done:
				return
			}
		}
	}()

	ticker := time.NewTicker(time.Second / time.Duration(fps))
	defer ticker.Stop()
	last := time.Now()

	c.game.Render(c.renderer)
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-events:
			if !ok || !c.HandleEvent(ev) {
				c.logger.Info(c.game.Context(), "terminal session ended")
				return nil
			}
		case now := <-ticker.C:
			c.game.Update(now.Sub(last).Seconds())
			last = now
			c.game.Render(c.renderer)
		}
	}
}
