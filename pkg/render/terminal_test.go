package render

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/opd-ai/go-orbits/pkg/config"
	"github.com/opd-ai/go-orbits/pkg/engine"
	"github.com/opd-ai/go-orbits/pkg/physics"
	"github.com/opd-ai/go-orbits/pkg/physics/physicstest"
)

// newTestScreen returns an 80x41 simulation screen: an 80x40 playfield over
// an 800x800 world, ten world units per column and twenty per row.
func newTestScreen(t *testing.T) tcell.SimulationScreen {
	t.Helper()
	screen := tcell.NewSimulationScreen("UTF-8")
	if err := screen.Init(); err != nil {
		t.Fatalf("screen.Init() error = %v", err)
	}
	screen.SetSize(80, 41)
	t.Cleanup(screen.Fini)
	return screen
}

func cell(screen tcell.SimulationScreen, col, row int) rune {
	ch, _, _, _ := screen.GetContent(col, row)
	return ch
}

func rowText(screen tcell.SimulationScreen, row int) string {
	w, _ := screen.Size()
	var b strings.Builder
	for col := 0; col < w; col++ {
		b.WriteRune(cell(screen, col, row))
	}
	return b.String()
}

func TestTerminalRenderer_WorldToCell(t *testing.T) {
	r := NewTerminalRenderer(newTestScreen(t), physics.NewViewport(800, 800))

	tests := []struct {
		name     string
		pos      physics.Vector2D
		col, row int
		ok       bool
	}{
		{"center", physics.Vector2D{X: 400, Y: 400}, 40, 20, true},
		{"top left", physics.Vector2D{X: 0, Y: 799}, 0, 0, true},
		{"bottom right", physics.Vector2D{X: 799, Y: 1}, 79, 39, true},
		{"y grows upward", physics.Vector2D{X: 0, Y: 100}, 0, 35, true},
		{"left of screen", physics.Vector2D{X: -5, Y: 400}, -1, 20, false},
		{"above screen", physics.Vector2D{X: 400, Y: 820}, 40, -1, false},
		{"below screen", physics.Vector2D{X: 400, Y: 0}, 40, 40, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			col, row, ok := r.WorldToCell(tt.pos)
			if col != tt.col || row != tt.row || ok != tt.ok {
				t.Errorf("WorldToCell(%v) = %d, %d, %v; want %d, %d, %v",
					tt.pos, col, row, ok, tt.col, tt.row, tt.ok)
			}
		})
	}
}

func TestTerminalRenderer_CellToWorld(t *testing.T) {
	r := NewTerminalRenderer(newTestScreen(t), physics.NewViewport(800, 800))

	got := r.CellToWorld(35, 20)
	if got != (physics.Vector2D{X: 355, Y: 390}) {
		t.Errorf("CellToWorld(35, 20) = %v, want (355, 390)", got)
	}
	if col, row, _ := r.WorldToCell(got); col != 35 || row != 20 {
		t.Errorf("round trip = %d, %d", col, row)
	}
}

func TestTerminalRenderer_DrawsGlyphs(t *testing.T) {
	screen := newTestScreen(t)
	r := NewTerminalRenderer(screen, physics.NewViewport(800, 800))

	state := &engine.GameState{
		Level:  "test",
		Status: engine.GameStatusWaiting,
		Planets: []engine.BodyState{
			{Name: "Io", Position: physics.Vector2D{X: 205, Y: 610}, Radius: 30},
		},
		Goal: &engine.BodyState{Position: physics.Vector2D{X: 105, Y: 110}, Radius: 5},
		Launcher: engine.LauncherState{
			BodyState: engine.BodyState{Position: physics.Vector2D{X: 605, Y: 410}},
			Opacity:   1,
		},
		Player: engine.PlayerView{
			BodyState: engine.BodyState{Position: physics.Vector2D{X: 655, Y: 410}, Radius: 16},
			State:     engine.Waiting,
		},
	}
	engine.RenderState(state, r)

	tests := []struct {
		name     string
		col, row int
		want     rune
	}{
		{"planet label", 19, 9, 'I'},
		{"planet body above label", 20, 8, GlyphPlanet},
		{"planet edge", 17, 9, GlyphPlanet},
		{"outside planet", 24, 9, ' '},
		{"tiny goal keeps its center", 10, 34, GlyphGoal},
		{"launcher", 60, 19, GlyphLauncher},
		{"player", 65, 19, GlyphPlayer},
		{"empty space", 40, 30, ' '},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := cell(screen, tt.col, tt.row); got != tt.want {
				t.Errorf("cell(%d, %d) = %q, want %q", tt.col, tt.row, got, tt.want)
			}
		})
	}

	status := rowText(screen, 40)
	if !strings.Contains(status, "test") || !strings.Contains(status, "waiting") {
		t.Errorf("status line = %q", status)
	}
}

func TestTerminalRenderer_PlanetsAtTheEdge(t *testing.T) {
	tests := []struct {
		name   string
		center physics.Vector2D
		want   rune
	}{
		{"partly visible", physics.Vector2D{X: -20, Y: 400}, GlyphPlanet},
		{"fully off screen", physics.Vector2D{X: -200, Y: 400}, ' '},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			screen := newTestScreen(t)
			r := NewTerminalRenderer(screen, physics.NewViewport(800, 800))
			r.Clear()
			r.RenderPlanet(engine.BodyState{Position: tt.center, Radius: 40})
			if got := cell(screen, 0, 20); got != tt.want {
				t.Errorf("cell(0, 20) = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestTerminalRenderer_DragBandAndTerminalGlyphs(t *testing.T) {
	screen := newTestScreen(t)
	r := NewTerminalRenderer(screen, physics.NewViewport(800, 800))

	player := engine.PlayerView{
		BodyState:  engine.BodyState{Position: physics.Vector2D{X: 705, Y: 410}},
		State:      engine.Dragging,
		DragVector: physics.Vector2D{X: -100},
	}
	r.Clear()
	r.RenderPlayer(player)
	for col := 61; col < 70; col++ {
		if got := cell(screen, col, 19); got != GlyphBand {
			t.Errorf("band cell %d = %q, want %q", col, got, GlyphBand)
		}
	}
	if got := cell(screen, 70, 19); got != GlyphPlayer {
		t.Errorf("player cell = %q", got)
	}

	tests := []struct {
		state engine.PlayerState
		want  rune
	}{
		{engine.Crashed, GlyphCrashed},
		{engine.Finish, GlyphFinished},
		{engine.Flying, GlyphPlayer},
	}
	for _, tt := range tests {
		r.Clear()
		r.RenderPlayer(engine.PlayerView{BodyState: player.BodyState, State: tt.state, DragVector: player.DragVector})
		if got := cell(screen, 70, 19); got != tt.want {
			t.Errorf("%v: cell = %q, want %q", tt.state, got, tt.want)
		}
		if got := cell(screen, 65, 19); got != ' ' {
			t.Errorf("%v: band drawn outside dragging", tt.state)
		}
	}
}

func TestTerminalRenderer_StatusLine(t *testing.T) {
	tests := []struct {
		name  string
		state engine.GameState
		want  string
	}{
		{"crash", engine.GameState{Status: engine.GameStatusCrashed, CrashReason: "hit Earth"}, "hit Earth"},
		{"finish", engine.GameState{Status: engine.GameStatusFinished}, "goal!"},
		{"off screen", engine.GameState{Status: engine.GameStatusActive, Player: engine.PlayerView{OffScreen: true}}, "off screen"},
		{"waiting", engine.GameState{Status: engine.GameStatusWaiting}, "to launch"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			screen := newTestScreen(t)
			r := NewTerminalRenderer(screen, physics.NewViewport(800, 800))
			r.Clear()
			r.RenderStatus(&tt.state)
			if status := rowText(screen, 40); !strings.Contains(status, tt.want) {
				t.Errorf("status line = %q, want it to contain %q", status, tt.want)
			}
		})
	}
}

func newTerminalGame(t *testing.T) *engine.Game {
	t.Helper()
	level, err := config.EmbeddedLevel("first-orbit")
	if err != nil {
		t.Fatalf("EmbeddedLevel() error = %v", err)
	}
	factory := func() (physics.Provider, error) { return physicstest.NewRecorder(), nil }
	game, err := engine.NewGame(config.DefaultConfig(), level, nil, engine.WithProviderFactory(factory))
	if err != nil {
		t.Fatalf("NewGame() error = %v", err)
	}
	return game
}

func TestTerminalController_MouseDrivesPointer(t *testing.T) {
	screen := newTestScreen(t)
	r := NewTerminalRenderer(screen, physics.NewViewport(800, 800))
	game := newTerminalGame(t)
	c := NewTerminalController(game, r, nil)

	// The player rests at (650, 400), inside cell (65, 20).
	c.HandleEvent(tcell.NewEventMouse(65, 20, tcell.Button1, tcell.ModNone))
	game.Tick()
	if game.State() != engine.Dragging {
		t.Fatalf("State() after press = %v, want dragging", game.State())
	}

	c.HandleEvent(tcell.NewEventMouse(70, 20, tcell.Button1, tcell.ModNone))
	c.HandleEvent(tcell.NewEventMouse(70, 20, tcell.ButtonNone, tcell.ModNone))
	game.Tick()
	if game.State() != engine.Flying {
		t.Fatalf("State() after release = %v, want flying", game.State())
	}
	if got := game.Snapshot().Player.Position; got != (physics.Vector2D{X: 705, Y: 390}) {
		t.Errorf("released at %v, want (705, 390)", got)
	}
}

func TestTerminalController_PressOutsidePlayer(t *testing.T) {
	r := NewTerminalRenderer(newTestScreen(t), physics.NewViewport(800, 800))
	game := newTerminalGame(t)
	c := NewTerminalController(game, r, nil)

	c.HandleEvent(tcell.NewEventMouse(10, 10, tcell.Button1, tcell.ModNone))
	c.HandleEvent(tcell.NewEventMouse(10, 10, tcell.ButtonNone, tcell.ModNone))
	game.Tick()
	if game.State() != engine.Waiting {
		t.Errorf("State() = %v, want waiting", game.State())
	}
}

func TestTerminalController_Keys(t *testing.T) {
	tests := []struct {
		name        string
		ev          *tcell.EventKey
		keepRunning bool
	}{
		{"q quits", tcell.NewEventKey(tcell.KeyRune, 'q', tcell.ModNone), false},
		{"escape quits", tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone), false},
		{"ctrl-c quits", tcell.NewEventKey(tcell.KeyCtrlC, 0, tcell.ModCtrl), false},
		{"r resets", tcell.NewEventKey(tcell.KeyRune, 'r', tcell.ModNone), true},
		{"other keys ignored", tcell.NewEventKey(tcell.KeyRune, 'z', tcell.ModNone), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewTerminalRenderer(newTestScreen(t), physics.NewViewport(800, 800))
			c := NewTerminalController(newTerminalGame(t), r, nil)
			if got := c.HandleEvent(tt.ev); got != tt.keepRunning {
				t.Errorf("HandleEvent() = %v, want %v", got, tt.keepRunning)
			}
		})
	}
}

func TestTerminalController_ResetRestoresWaiting(t *testing.T) {
	r := NewTerminalRenderer(newTestScreen(t), physics.NewViewport(800, 800))
	game := newTerminalGame(t)
	c := NewTerminalController(game, r, nil)

	c.HandleEvent(tcell.NewEventMouse(65, 20, tcell.Button1, tcell.ModNone))
	c.HandleEvent(tcell.NewEventMouse(70, 20, tcell.ButtonNone, tcell.ModNone))
	game.Tick()
	if game.State() != engine.Flying {
		t.Fatalf("State() = %v, want flying", game.State())
	}

	c.HandleEvent(tcell.NewEventKey(tcell.KeyRune, 'r', tcell.ModNone))
	if game.State() != engine.Waiting {
		t.Errorf("State() after reset = %v, want waiting", game.State())
	}
}

func TestTerminalController_RunStopsOnQuit(t *testing.T) {
	screen := newTestScreen(t)
	r := NewTerminalRenderer(screen, physics.NewViewport(800, 800))
	c := NewTerminalController(newTerminalGame(t), r, nil)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	errCh := make(chan error, 1)
	go func() { errCh <- c.Run(ctx, 120) }()

	time.Sleep(50 * time.Millisecond)
	if err := screen.PostEvent(tcell.NewEventKey(tcell.KeyRune, 'q', tcell.ModNone)); err != nil {
		t.Fatalf("PostEvent() error = %v", err)
	}

	select {
	case err := <-errCh:
		if err != nil {
			t.Errorf("Run() error = %v", err)
		}
	case <-time.After(3 * time.Second):
		t.Fatal("Run() did not stop after q")
	}
	if ctx.Err() != nil {
		t.Error("Run() stopped by the timeout, not by q")
	}
}
