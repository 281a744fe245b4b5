// pkg/render/engo/scene.go
package engo

import (
	"context"
	"image/color"

	"github.com/EngoEngine/ecs"
	"github.com/EngoEngine/engo"
	"github.com/EngoEngine/engo/common"

	"github.com/opd-ai/go-orbits/pkg/config"
	"github.com/opd-ai/go-orbits/pkg/engine"
	"github.com/opd-ai/go-orbits/pkg/logging"
)

// GameScene represents the main game scene in Engo
type GameScene struct {
	game   *engine.Game
	title  string
	logger *logging.Logger

	renderer *EngoRenderer
	input    *InputSystem
}

// NewGameScene creates a new game scene
func NewGameScene(game *engine.Game, title string, logger *logging.Logger) *GameScene {
	if logger == nil {
		logger = logging.Discard()
	}
	return &GameScene{game: game, title: title, logger: logger}
}

// Type returns the scene type (required by Engo)
func (scene *GameScene) Type() string {
	return "GameScene"
}

// Preload is called before the scene starts (required by Engo). Textures
// are generated on demand.
func (scene *GameScene) Preload() {}

// Setup is called when the scene starts (required by Engo)
func (scene *GameScene) Setup(u engo.Updater) {
	world, _ := u.(*ecs.World)
	common.SetBackground(color.RGBA{8, 8, 24, 255})
	SetupInputBindings()

	renderSystem := &common.RenderSystem{}
	world.AddSystem(renderSystem)

	camera := NewCamera(scene.game.Snapshot().Viewport)
	hud := NewHUD(scene.title, engo.SetTitle, renderSystem, camera)
	scene.renderer = NewEngoRenderer(renderSystem, NewAssetManager(), camera, hud)
	scene.input = NewInputSystem(scene.game, camera, scene.logger)

	// Input first so that a press lands in the same frame's update.
	world.AddSystem(scene.input)
	world.AddSystem(&GameSystem{game: scene.game, renderer: scene.renderer})
}

// Exit is called when the window closes
func (scene *GameScene) Exit() {
	scene.logger.Info(scene.game.Context(), "window closed")
}

// GameSystem advances the game by the frame time and draws it
type GameSystem struct {
	game     *engine.Game
	renderer engine.Renderer
}

// Remove satisfies the ecs.System interface
func (s *GameSystem) Remove(basic ecs.BasicEntity) {}

// Update runs the fixed-step simulation for dt seconds and draws the result
func (s *GameSystem) Update(dt float32) {
	s.game.Update(float64(dt))
	s.game.Render(s.renderer)
}

// Run opens a window sized to the viewport and plays game until the window
// is closed.
func Run(ctx context.Context, game *engine.Game, viewport config.ViewportConfig, logger *logging.Logger) {
	if logger == nil {
		logger = logging.Discard()
	}
	logger.Info(ctx, "opening window",
		"width", viewport.Width,
		"height", viewport.Height,
		"fullscreen", viewport.Fullscreen,
	)
	opts := engo.RunOptions{
		Title:        viewport.Title,
		Width:        int(viewport.Width),
		Height:       int(viewport.Height),
		Fullscreen:   viewport.Fullscreen,
		VSync:        true,
		NotResizable: true,
	}
	engo.Run(opts, NewGameScene(game, viewport.Title, logger))
}
