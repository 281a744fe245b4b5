// pkg/render/terminal.go
package render

import (
	"fmt"
	"math"

	"github.com/gdamore/tcell/v2"

	"github.com/opd-ai/go-orbits/pkg/engine"
	"github.com/opd-ai/go-orbits/pkg/physics"
)

// Glyphs used by the terminal renderer
const (
	GlyphPlanet   = 'O'
	GlyphGoal     = '+'
	GlyphLauncher = 'X'
	GlyphPlayer   = '@'
	GlyphCrashed  = 'x'
	GlyphFinished = '*'
	GlyphBand     = '.'
)

var (
	stylePlanet   = tcell.StyleDefault.Foreground(tcell.NewRGBColor(100, 150, 255))
	styleGoal     = tcell.StyleDefault.Foreground(tcell.NewRGBColor(50, 255, 50))
	styleLauncher = tcell.StyleDefault.Foreground(tcell.ColorYellow)
	stylePlayer   = tcell.StyleDefault.Foreground(tcell.ColorWhite).Bold(true)
	styleCrashed  = tcell.StyleDefault.Foreground(tcell.NewRGBColor(255, 80, 80))
	styleBand     = tcell.StyleDefault.Foreground(tcell.NewRGBColor(180, 180, 180))
	styleStatus   = tcell.StyleDefault.Foreground(tcell.ColorBlack).Background(tcell.ColorWhite)
)

// TerminalRenderer draws the game as glyphs on a tcell screen. The world is
// y-up and is stretched over every row but the last, which holds the status
// line.
type TerminalRenderer struct {
	screen   tcell.Screen
	viewport physics.Rect
	cols     int
	rows     int
}

// NewTerminalRenderer creates a renderer mapping viewport onto screen
func NewTerminalRenderer(screen tcell.Screen, viewport physics.Rect) *TerminalRenderer {
	r := &TerminalRenderer{screen: screen, viewport: viewport}
	r.resize()
	return r
}

func (r *TerminalRenderer) resize() {
	w, h := r.screen.Size()
	r.cols = max(w, 1)
	r.rows = max(h-1, 1)
}

// WorldToCell maps a world position to a playfield cell. ok is false when
// the position falls outside the playfield.
func (r *TerminalRenderer) WorldToCell(pos physics.Vector2D) (col, row int, ok bool) {
	minP, maxP := r.viewport.Min(), r.viewport.Max()
	col = int(math.Floor((pos.X - minP.X) * float64(r.cols) / r.viewport.Width))
	row = int(math.Floor((maxP.Y - pos.Y) * float64(r.rows) / r.viewport.Height))
	ok = col >= 0 && col < r.cols && row >= 0 && row < r.rows
	return col, row, ok
}

// CellToWorld returns the world position of the center of a cell
func (r *TerminalRenderer) CellToWorld(col, row int) physics.Vector2D {
	minP, maxP := r.viewport.Min(), r.viewport.Max()
	return physics.Vector2D{
		X: minP.X + (float64(col)+0.5)*r.viewport.Width/float64(r.cols),
		Y: maxP.Y - (float64(row)+0.5)*r.viewport.Height/float64(r.rows),
	}
}

// Clear implements engine.Renderer.
func (r *TerminalRenderer) Clear() {
	r.resize()
	r.screen.Clear()
}

// Present implements engine.Renderer.
func (r *TerminalRenderer) Present() {
	r.screen.Show()
}

// RenderPlanet implements engine.Renderer.
func (r *TerminalRenderer) RenderPlanet(planet engine.BodyState) {
	r.disc(planet.Position, planet.Radius, GlyphPlanet, stylePlanet)
	if col, row, ok := r.WorldToCell(planet.Position); ok {
		r.text(col-len(planet.Name)/2, row, planet.Name, stylePlanet.Bold(true))
	}
}

// RenderGoal implements engine.Renderer.
func (r *TerminalRenderer) RenderGoal(goal engine.BodyState) {
	r.disc(goal.Position, goal.Radius, GlyphGoal, styleGoal)
}

// RenderLauncher implements engine.Renderer.
func (r *TerminalRenderer) RenderLauncher(launcher engine.LauncherState) {
	style := styleLauncher
	if launcher.Opacity < 0.5 {
		style = style.Dim(true)
	}
	r.put(launcher.Position, GlyphLauncher, style)
}

// RenderPlayer implements engine.Renderer.
func (r *TerminalRenderer) RenderPlayer(player engine.PlayerView) {
	if player.State == engine.Dragging && !player.DragVector.IsZero() {
		r.line(player.Position, player.Position.Add(player.DragVector), GlyphBand, styleBand)
	}
	switch player.State {
	case engine.Crashed:
		r.put(player.Position, GlyphCrashed, styleCrashed)
	case engine.Finish:
		r.put(player.Position, GlyphFinished, styleGoal)
	default:
		r.put(player.Position, GlyphPlayer, stylePlayer)
	}
}

// RenderStatus implements engine.StatusRenderer.
func (r *TerminalRenderer) RenderStatus(state *engine.GameState) {
	line := fmt.Sprintf(" %s | %s | %s | t=%.1fs", state.Level, state.Status, state.Player.State, state.FlightTime)
	switch {
	case state.CrashReason != "":
		line += " | " + state.CrashReason + " | r: retry"
	case state.Status == engine.GameStatusFinished:
		line += " | goal! | r: replay"
	case state.Player.OffScreen:
		line += " | off screen"
	default:
		line += " | drag @ away from X to launch | q: quit"
	}
	for col := 0; col < r.cols; col++ {
		r.screen.SetContent(col, r.rows, ' ', nil, styleStatus)
	}
	r.text(0, r.rows, line, styleStatus)
}

func (r *TerminalRenderer) put(pos physics.Vector2D, glyph rune, style tcell.Style) {
	if col, row, ok := r.WorldToCell(pos); ok {
		r.screen.SetContent(col, row, glyph, nil, style)
	}
}

// disc fills every cell whose center lies inside the circle. A circle
// smaller than a cell still gets its center cell.
func (r *TerminalRenderer) disc(center physics.Vector2D, radius float64, glyph rune, style tcell.Style) {
	circle := physics.Circle{Center: center, Radius: radius}
	if !r.viewport.Intersects(circle.Bounds()) {
		return
	}
	c0, r0, _ := r.WorldToCell(physics.Vector2D{X: center.X - radius, Y: center.Y + radius})
	c1, r1, _ := r.WorldToCell(physics.Vector2D{X: center.X + radius, Y: center.Y - radius})

	for row := max(r0, 0); row <= min(r1, r.rows-1); row++ {
		for col := max(c0, 0); col <= min(c1, r.cols-1); col++ {
			if circle.Contains(r.CellToWorld(col, row)) {
				r.screen.SetContent(col, row, glyph, nil, style)
			}
		}
	}
	r.put(center, glyph, style)
}

func (r *TerminalRenderer) line(from, to physics.Vector2D, glyph rune, style tcell.Style) {
	c0, r0, _ := r.WorldToCell(from)
	c1, r1, _ := r.WorldToCell(to)
	steps := max(abs(c1-c0), abs(r1-r0))
	for i := 1; i < steps; i++ {
		t := float64(i) / float64(steps)
		r.put(from.Add(to.Sub(from).Scale(t)), glyph, style)
	}
}

func (r *TerminalRenderer) text(col, row int, s string, style tcell.Style) {
	for _, ch := range s {
		if col >= r.cols {
			return
		}
		if col >= 0 {
			r.screen.SetContent(col, row, ch, nil, style)
		}
		col++
	}
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
