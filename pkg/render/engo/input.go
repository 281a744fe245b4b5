// pkg/render/engo/input.go
package engo

import (
	"context"

	"github.com/EngoEngine/ecs"
	"github.com/EngoEngine/engo"

	"github.com/opd-ai/go-orbits/pkg/logging"
)

// Button names registered by SetupInputBindings
const (
	ButtonReset = "reset"
	ButtonQuit  = "quit"
)

// GameInput is what the input system drives. *engine.Game implements it.
type GameInput interface {
	PointerDown(x, y float64)
	PointerMove(x, y float64)
	PointerUp(x, y float64)
	Reset() error
}

// InputSystem turns engo mouse and keyboard state into game input
type InputSystem struct {
	game   GameInput
	camera Camera
	logger *logging.Logger

	// engo reports the latest mouse action, which can repeat across
	// frames; only edges are forwarded.
	pressed bool
	last    engo.Point
}

// NewInputSystem creates a new input system
func NewInputSystem(game GameInput, camera Camera, logger *logging.Logger) *InputSystem {
	if logger == nil {
		logger = logging.Discard()
	}
	return &InputSystem{game: game, camera: camera, logger: logger}
}

// Remove satisfies the ecs.System interface
func (is *InputSystem) Remove(basic ecs.BasicEntity) {}

// Update processes input once per frame
func (is *InputSystem) Update(dt float32) {
	is.HandleMouse(engo.Input.Mouse.Action, engo.Point{X: engo.Input.Mouse.X, Y: engo.Input.Mouse.Y})

	if engo.Input.Button(ButtonReset).JustPressed() {
		is.Reset()
	}
	if engo.Input.Button(ButtonQuit).JustPressed() {
		engo.Exit()
	}
}

// HandleMouse forwards one mouse sample given in screen coordinates
func (is *InputSystem) HandleMouse(action engo.Action, at engo.Point) {
	pos := is.camera.ScreenToWorld(at)
	switch {
	case action == engo.Press && !is.pressed && is.camera.InView(at):
		is.pressed = true
		is.game.PointerDown(pos.X, pos.Y)
	case action == engo.Release && is.pressed:
		is.pressed = false
		is.game.PointerUp(pos.X, pos.Y)
	case at != is.last:
		is.game.PointerMove(pos.X, pos.Y)
	}
	is.last = at
}

// Reset restarts the level
func (is *InputSystem) Reset() {
	is.pressed = false
	if err := is.game.Reset(); err != nil {
		is.logger.Error(context.Background(), "failed to reset level", err)
	}
}

// SetupInputBindings sets up the key bindings for the game
func SetupInputBindings() {
	engo.Input.RegisterButton(ButtonReset, engo.KeyR)
	engo.Input.RegisterButton(ButtonQuit, engo.KeyEscape, engo.KeyQ)
}
