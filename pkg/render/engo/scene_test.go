// pkg/render/engo/scene_test.go
package engo

import (
	"testing"

	"github.com/EngoEngine/engo"

	"github.com/opd-ai/go-orbits/pkg/config"
	"github.com/opd-ai/go-orbits/pkg/engine"
	"github.com/opd-ai/go-orbits/pkg/physics/physicstest"
)

type countingRenderer struct {
	frames  int
	players []engine.PlayerView
}

func (c *countingRenderer) Clear()                              {}
func (c *countingRenderer) RenderPlanet(engine.BodyState)       {}
func (c *countingRenderer) RenderGoal(engine.BodyState)         {}
func (c *countingRenderer) RenderLauncher(engine.LauncherState) {}
func (c *countingRenderer) RenderPlayer(p engine.PlayerView)    { c.players = append(c.players, p) }
func (c *countingRenderer) Present()                            { c.frames++ }

func newSceneGame(t *testing.T) *engine.Game {
	t.Helper()
	level, err := config.EmbeddedLevel(config.DefaultLevelName)
	if err != nil {
		t.Fatalf("EmbeddedLevel() error = %v", err)
	}
	game, err := engine.NewGame(config.DefaultConfig(), level, physicstest.NewRecorder())
	if err != nil {
		t.Fatalf("NewGame() error = %v", err)
	}
	return game
}

func TestNewGameScene(t *testing.T) {
	game := newSceneGame(t)
	scene := NewGameScene(game, "Orbits!", nil)

	if scene.game != game || scene.title != "Orbits!" {
		t.Error("scene fields not set")
	}
	if scene.logger == nil {
		t.Error("nil logger not replaced")
	}
	if scene.Type() != "GameScene" {
		t.Errorf("Type() = %q", scene.Type())
	}
}

func TestGameSystem_UpdateStepsAndDraws(t *testing.T) {
	game := newSceneGame(t)
	r := &countingRenderer{}
	system := &GameSystem{game: game, renderer: r}

	system.Update(0.05)
	if game.CurrentTick != 3 {
		t.Errorf("CurrentTick = %d, want 3 ticks of 1/60s", game.CurrentTick)
	}
	if r.frames != 1 {
		t.Errorf("frames = %d, want one per update", r.frames)
	}
}

func TestGameSystem_MouseToLaunch(t *testing.T) {
	game := newSceneGame(t)
	camera := NewCamera(game.Snapshot().Viewport)
	input := NewInputSystem(game, camera, nil)
	system := &GameSystem{game: game, renderer: &countingRenderer{}}

	// The player rests at world (650, 400), screen (650, 400).
	input.HandleMouse(engo.Press, engo.Point{X: 650, Y: 400})
	system.Update(1.0 / 60)
	input.HandleMouse(engo.Move, engo.Point{X: 700, Y: 400})
	input.HandleMouse(engo.Release, engo.Point{X: 700, Y: 400})
	system.Update(1.0 / 60)

	if game.State() != engine.Flying {
		t.Errorf("State() = %v, want flying", game.State())
	}
}
