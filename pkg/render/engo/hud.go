// pkg/render/engo/hud.go
package engo

import (
	"fmt"
	"image/color"

	"github.com/EngoEngine/ecs"
	"github.com/EngoEngine/engo"
	"github.com/EngoEngine/engo/common"

	"github.com/opd-ai/go-orbits/pkg/engine"
)

const strengthBarHeight = 6

// HUD shows the attempt status in the window title and the pull strength
// as a bar along the bottom edge.
type HUD struct {
	base     string
	setTitle func(string)
	title    string

	width float32
	bar   *sprite
}

// NewHUD creates a HUD for a window titled base. setTitle is usually
// engo.SetTitle. system may be nil, which disables the strength bar.
func NewHUD(base string, setTitle func(string), system spriteSystem, camera Camera) *HUD {
	hud := &HUD{base: base, setTitle: setTitle}
	if system == nil {
		return hud
	}

	width, height := camera.Size()
	hud.width = width
	hud.bar = &sprite{BasicEntity: ecs.NewBasic()}
	hud.bar.Drawable = common.Rectangle{}
	hud.bar.Color = color.RGBA{255, 220, 0, 200}
	hud.bar.Hidden = true
	hud.bar.SpaceComponent = common.SpaceComponent{
		Position: engo.Point{X: 0, Y: height - strengthBarHeight},
		Height:   strengthBarHeight,
	}
	hud.bar.SetZIndex(zPlayer + 1)
	system.Add(&hud.bar.BasicEntity, &hud.bar.RenderComponent, &hud.bar.SpaceComponent)
	return hud
}

// Title returns the last title set
func (hud *HUD) Title() string {
	return hud.title
}

// RenderStatus implements engine.StatusRenderer. The title is only
// pushed to the window when it changes.
func (hud *HUD) RenderStatus(state *engine.GameState) {
	if title := StatusText(hud.base, state); title != hud.title {
		hud.title = title
		if hud.setTitle != nil {
			hud.setTitle(title)
		}
	}

	if hud.bar == nil {
		return
	}
	dragging := state.Player.State == engine.Dragging
	hud.bar.Hidden = !dragging
	if dragging {
		hud.bar.Width = hud.width * float32(min(state.Player.DrawStrength, 1))
	}
}

// StatusText formats the window title for state
func StatusText(base string, state *engine.GameState) string {
	text := fmt.Sprintf("%s - %s", base, state.Level)
	switch state.Status {
	case engine.GameStatusCrashed:
		return fmt.Sprintf("%s - crashed: %s (R to retry)", text, state.CrashReason)
	case engine.GameStatusFinished:
		return fmt.Sprintf("%s - goal reached in %.1fs (R to replay)", text, state.FlightTime)
	case engine.GameStatusActive:
		if state.Player.OffScreen {
			return text + " - off screen"
		}
		return fmt.Sprintf("%s - flying %.0fs", text, state.FlightTime)
	default:
		if state.Player.State == engine.Dragging {
			return fmt.Sprintf("%s - pull %.0f%%", text, 100*state.Player.DrawStrength)
		}
		return text + " - drag the ball away from the launcher"
	}
}
