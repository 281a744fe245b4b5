// pkg/engine/player.go
package engine

import (
	"context"
	"fmt"

	"github.com/opd-ai/go-orbits/pkg/config"
	"github.com/opd-ai/go-orbits/pkg/entity"
	"github.com/opd-ai/go-orbits/pkg/event"
	"github.com/opd-ai/go-orbits/pkg/logging"
	"github.com/opd-ai/go-orbits/pkg/physics"
)

// PlayerConfig holds the tunables of the player state machine
type PlayerConfig struct {
	Level               string
	Gravity             physics.GravityConfig
	LaunchPower         float64
	FadeDuration        float64
	DrawStrengthDivisor float64
	OffScreenTimeout    float64
	RestOffset          physics.Vector2D
	Viewport            physics.Rect
}

// NewPlayerConfig derives the player settings from the game config and level
func NewPlayerConfig(cfg *config.GameConfig, level *config.Level) PlayerConfig {
	return PlayerConfig{
		Level: level.Name,
		Gravity: physics.GravityConfig{
			Constant:    cfg.Physics.Gravity,
			MinDistance: cfg.Physics.MinDistance,
		},
		LaunchPower:         cfg.Launch.Power,
		FadeDuration:        cfg.Launch.FadeDuration,
		DrawStrengthDivisor: cfg.Launch.DrawStrengthDivisor,
		OffScreenTimeout:    cfg.Rules.OffScreenTimeout,
		RestOffset:          level.PlayerOffset(),
		Viewport:            physics.NewViewport(cfg.Viewport.Width, cfg.Viewport.Height),
	}
}

// Player is the state machine driving the projectile from rest, through
// the pull and launch, to the end of its flight.
type Player struct {
	registry *entity.Registry
	gravity  *physics.GravityAccumulator
	launch   LaunchController
	cfg      PlayerConfig
	bus      *event.Bus
	logger   *logging.Logger
	ctx      context.Context

	state         playerState
	launcherAngle float64
	flightTime    float64
}

// NewPlayer creates a state machine in Waiting over the bodies in registry.
// A nil bus or logger is replaced by a private bus or a discarding logger.
func NewPlayer(registry *entity.Registry, cfg PlayerConfig, bus *event.Bus, logger *logging.Logger) (*Player, error) {
	if registry == nil {
		return nil, fmt.Errorf("player needs a body registry")
	}
	if !(cfg.DrawStrengthDivisor > 0) {
		return nil, fmt.Errorf("draw strength divisor must be positive, got %v", cfg.DrawStrengthDivisor)
	}
	gravity, err := physics.NewGravityAccumulator(cfg.Gravity)
	if err != nil {
		return nil, err
	}
	launch, err := NewLaunchController(cfg.LaunchPower)
	if err != nil {
		return nil, err
	}
	if bus == nil {
		bus = event.NewEventBus()
	}
	if logger == nil {
		logger = logging.Discard()
	}

	p := &Player{
		registry: registry,
		gravity:  gravity,
		launch:   launch,
		cfg:      cfg,
		bus:      bus,
		logger:   logger,
		ctx:      context.Background(),
		state:    &waitingState{},
	}
	if launcher, ok := registry.Launcher(); ok {
		p.aimLauncher(launcher.Position, launcher.Position.Add(cfg.RestOffset))
	}
	return p, nil
}

// State returns the current state
func (p *Player) State() PlayerState {
	return p.state.Kind()
}

// HandleInput feeds one pointer event to the current state. Events that do
// not apply to the state are ignored.
func (p *Player) HandleInput(ev PointerEvent) {
	if next, reason := p.state.handleInput(p, ev); next != nil {
		p.transition(next, reason)
	}
}

// HandleContact feeds a provider collision to the state machine. Only a
// flying player reacts to contacts.
func (p *Player) HandleContact(c physics.Contact) {
	flying, ok := p.state.(*flyingState)
	if !ok {
		return
	}
	player, ok := p.registry.Player()
	if !ok {
		return
	}
	otherHandle, ok := c.Other(player.Handle)
	if !ok {
		return
	}
	other, ok := p.registry.Lookup(otherHandle)
	if !ok {
		return
	}
	if next, reason := flying.contact(other); next != nil {
		p.transition(next, reason)
	}
}

// Tick runs the current state's per-tick behavior for dt seconds. It must
// run before the provider steps.
func (p *Player) Tick(dt float64) {
	if next, reason := p.state.tick(p, dt); next != nil {
		p.transition(next, reason)
	}
}

// transition is the only place the state changes.
func (p *Player) transition(next playerState, reason string) {
	from := p.state.Kind()
	to := next.Kind()
	p.state = next

	p.logger.Info(p.ctx, "player state changed",
		"from", from.String(),
		"to", to.String(),
		"reason", reason,
	)
	p.bus.Publish(event.NewStateEvent(event.PlayerStateChanged, p, from.String(), to.String(), reason))

	switch to {
	case Crashed:
		p.freeze()
		p.bus.Publish(event.NewLevelEvent(event.PlayerCrashed, p, p.cfg.Level, p.flightTime))
	case Finish:
		p.freeze()
		p.bus.Publish(event.NewLevelEvent(event.LevelFinished, p, p.cfg.Level, p.flightTime))
	}
}

// DragVector returns the current pull and its strength. Both are zero
// outside Dragging.
func (p *Player) DragVector() (physics.Vector2D, float64) {
	if s, ok := p.state.(*draggingState); ok {
		return s.drag, s.strength
	}
	return physics.Vector2D{}, 0
}

// LauncherAngle returns the launcher rotation in radians
func (p *Player) LauncherAngle() float64 {
	return p.launcherAngle
}

// LauncherOpacity returns how visible the launcher is, in [0,1]
func (p *Player) LauncherOpacity() float64 {
	switch s := p.state.(type) {
	case *flyingState:
		return s.fade.Opacity()
	case *crashedState:
		return s.opacity
	case *finishState:
		return s.opacity
	default:
		return 1
	}
}

// OffScreen reports whether the flying player is outside the viewport
func (p *Player) OffScreen() bool {
	if s, ok := p.state.(*flyingState); ok {
		return s.offScreen
	}
	return false
}

// FlightTime returns the seconds spent flying
func (p *Player) FlightTime() float64 {
	return p.flightTime
}

// CrashReason explains a crash; it is empty in every other state
func (p *Player) CrashReason() string {
	if s, ok := p.state.(*crashedState); ok {
		return s.reason
	}
	return ""
}

func (p *Player) playerAt() (entity.Body, physics.Vector2D, bool) {
	player, ok := p.registry.Player()
	if !ok {
		return entity.Body{}, physics.Vector2D{}, false
	}
	pos, err := p.registry.Position(player.ID)
	if err != nil {
		p.logger.Error(p.ctx, "failed to read player position", err)
		return entity.Body{}, physics.Vector2D{}, false
	}
	return player, pos, true
}

func (p *Player) setPlayerPosition(pos physics.Vector2D) {
	player, ok := p.registry.Player()
	if !ok {
		return
	}
	if err := p.registry.SetPosition(player.ID, pos); err != nil {
		p.logger.Error(p.ctx, "failed to move player", err)
	}
}

func (p *Player) aimLauncher(launcher, player physics.Vector2D) {
	if d := player.Sub(launcher); !d.IsZero() {
		p.launcherAngle = d.Angle()
	}
}

// freeze holds the player where it is.
func (p *Player) freeze() {
	if _, pos, ok := p.playerAt(); ok {
		p.setPlayerPosition(pos)
	}
}

func (p *Player) ignore(ev PointerEvent, why string) {
	if ev.Action == PointerMove {
		return
	}
	p.logger.Debug(p.ctx, "pointer event ignored",
		"state", p.State().String(),
		"action", ev.Action.String(),
		"why", why,
	)
}
