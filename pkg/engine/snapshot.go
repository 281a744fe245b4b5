// pkg/engine/snapshot.go
package engine

import (
	"github.com/opd-ai/go-orbits/pkg/entity"
	"github.com/opd-ai/go-orbits/pkg/physics"
)

// GameState represents a snapshot of the game state
type GameState struct {
	Tick        uint64
	Level       string
	Status      GameStatus
	Viewport    physics.Rect
	Planets     []BodyState
	Goal        *BodyState
	Launcher    LauncherState
	Player      PlayerView
	FlightTime  float64
	CrashReason string
}

// BodyState represents a snapshot of one body
type BodyState struct {
	ID       entity.ID
	Name     string
	Position physics.Vector2D
	Radius   float64
	Mass     float64
}

// LauncherState represents a snapshot of the launcher
type LauncherState struct {
	BodyState
	Angle    float64
	Opacity  float64
	Detached bool
}

// PlayerView represents a snapshot of the player and its state machine
type PlayerView struct {
	BodyState
	Velocity     physics.Vector2D
	State        PlayerState
	DragVector   physics.Vector2D
	DrawStrength float64
	OffScreen    bool
}

// Snapshot returns a copy of the current game state
func (g *Game) Snapshot() *GameState {
	g.mu.RLock()
	defer g.mu.RUnlock()

	return g.createGameStateSnapshot()
}

// createGameStateSnapshot builds the complete game state. Must be called
// with mu held.
func (g *Game) createGameStateSnapshot() *GameState {
	state := &GameState{
		Tick:        g.CurrentTick,
		Level:       g.Level.Name,
		Status:      statusOf(g.player.State()),
		Viewport:    g.player.cfg.Viewport,
		Planets:     g.getPlanetStates(),
		Launcher:    g.getLauncherState(),
		Player:      g.getPlayerView(),
		FlightTime:  g.player.FlightTime(),
		CrashReason: g.player.CrashReason(),
	}
	if goal, ok := g.Registry.Goal(); ok {
		gs := bodyState(goal, goal.Position)
		state.Goal = &gs
	}
	return state
}

func bodyState(b entity.Body, pos physics.Vector2D) BodyState {
	return BodyState{
		ID:       b.ID,
		Name:     b.Name,
		Position: pos,
		Radius:   b.Radius,
		Mass:     b.Mass,
	}
}

// getPlanetStates creates a snapshot of the planets in level order.
func (g *Game) getPlanetStates() []BodyState {
	planets := g.Registry.Planets()
	states := make([]BodyState, 0, len(planets))
	for _, planet := range planets {
		states = append(states, bodyState(planet, planet.Position))
	}
	return states
}

// getLauncherState creates a snapshot of the launcher.
func (g *Game) getLauncherState() LauncherState {
	launcher, ok := g.Registry.Launcher()
	if !ok {
		return LauncherState{}
	}
	return LauncherState{
		BodyState: bodyState(launcher, launcher.Position),
		Angle:     g.player.LauncherAngle(),
		Opacity:   g.player.LauncherOpacity(),
		Detached:  launcher.Detached,
	}
}

// getPlayerView creates a snapshot of the player.
func (g *Game) getPlayerView() PlayerView {
	player, ok := g.Registry.Player()
	if !ok {
		return PlayerView{}
	}
	pos, err := g.Registry.Position(player.ID)
	if err != nil {
		pos = player.Position
	}
	velocity, _ := g.provider.Velocity(player.Handle)
	drag, strength := g.player.DragVector()

	return PlayerView{
		BodyState:    bodyState(player, pos),
		Velocity:     velocity,
		State:        g.player.State(),
		DragVector:   drag,
		DrawStrength: strength,
		OffScreen:    g.player.OffScreen(),
	}
}
