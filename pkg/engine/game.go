// pkg/engine/game.go
package engine

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sync"

	"github.com/opd-ai/go-orbits/pkg/config"
	"github.com/opd-ai/go-orbits/pkg/entity"
	"github.com/opd-ai/go-orbits/pkg/event"
	"github.com/opd-ai/go-orbits/pkg/logging"
	"github.com/opd-ai/go-orbits/pkg/physics"
)

// GameStatus summarizes the player state for front-ends
type GameStatus int

const (
	GameStatusWaiting GameStatus = iota
	GameStatusActive
	GameStatusCrashed
	GameStatusFinished
)

func (s GameStatus) String() string {
	switch s {
	case GameStatusWaiting:
		return "waiting"
	case GameStatusActive:
		return "active"
	case GameStatusCrashed:
		return "crashed"
	case GameStatusFinished:
		return "finished"
	default:
		return "unknown"
	}
}

// ErrNoProvider is returned when a game has neither a provider nor a way to make one
var ErrNoProvider = errors.New("no physics provider")

// ProviderFactory creates a fresh, empty physics provider
type ProviderFactory func() (physics.Provider, error)

// Option customizes a Game
type Option func(*Game)

// WithLogger sets the game's logger
func WithLogger(logger *logging.Logger) Option {
	return func(g *Game) {
		g.logger = logger
	}
}

// WithEventBus makes the game publish on bus. Handlers run inside Update
// and must not call back into the Game.
func WithEventBus(bus *event.Bus) Option {
	return func(g *Game) {
		g.EventBus = bus
	}
}

// WithProviderFactory lets the game rebuild its level on Reset and LoadLevel
func WithProviderFactory(factory ProviderFactory) Option {
	return func(g *Game) {
		g.newProvider = factory
	}
}

// WithContext sets the parent context for log lines
func WithContext(ctx context.Context) Option {
	return func(g *Game) {
		g.baseCtx = ctx
	}
}

// Game represents the core game state and logic
type Game struct {
	Config      *config.GameConfig
	Level       *config.Level
	EventBus    *event.Bus
	Registry    *entity.Registry
	TimeStep    float64 // Seconds per game tick
	CurrentTick uint64

	provider    physics.Provider
	newProvider ProviderFactory
	player      *Player
	input       *InputQueue
	contacts    []physics.Contact
	accumulator float64

	logger  *logging.Logger
	baseCtx context.Context
	ctx     context.Context

	// mu guards everything the tick mutates; input has its own lock.
	mu sync.RWMutex
}

// NewGame creates a game playing level. When provider is nil the provider
// factory supplied with WithProviderFactory creates one.
func NewGame(cfg *config.GameConfig, level *config.Level, provider physics.Provider, opts ...Option) (*Game, error) {
	if cfg == nil {
		return nil, fmt.Errorf("game config is required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid game config: %w", err)
	}
	if level == nil {
		return nil, fmt.Errorf("level is required")
	}
	if err := level.Validate(); err != nil {
		return nil, fmt.Errorf("invalid level %q: %w", level.Name, err)
	}

	g := &Game{
		Config:   cfg,
		TimeStep: cfg.Physics.TimeStep,
		input:    NewInputQueue(),
		baseCtx:  context.Background(),
	}
	for _, opt := range opts {
		opt(g)
	}
	if g.EventBus == nil {
		g.EventBus = event.NewEventBus()
	}
	if g.logger == nil {
		g.logger = logging.Discard()
	}

	if provider == nil {
		var err error
		if provider, err = g.freshProvider(); err != nil {
			return nil, err
		}
	}
	if err := g.build(level, provider); err != nil {
		return nil, err
	}
	return g, nil
}

func (g *Game) freshProvider() (physics.Provider, error) {
	if g.newProvider == nil {
		return nil, ErrNoProvider
	}
	provider, err := g.newProvider()
	if err != nil {
		return nil, fmt.Errorf("failed to create physics provider: %w", err)
	}
	if provider == nil {
		return nil, ErrNoProvider
	}
	return provider, nil
}

// build registers the bodies of level with provider and starts a new attempt.
func (g *Game) build(level *config.Level, provider physics.Provider) error {
	registry := entity.NewRegistry(provider)

	defs := make([]entity.Def, 0, len(level.Planets)+3)
	for _, p := range level.Planets {
		defs = append(defs, entity.NewPlanet(p.Name, p.Position(), p.Mass, p.Radius))
	}
	defs = append(defs,
		entity.NewLauncher(level.LauncherPosition(), level.Launcher.Radius),
		entity.NewPlayer(level.PlayerRest(), level.Player.Mass, level.Player.Radius, g.Config.Launch.PlayerFriction),
	)
	if level.Goal != nil {
		defs = append(defs, entity.NewGoal(level.Goal.Position(), level.Goal.Radius))
	}
	for _, def := range defs {
		if _, err := registry.Register(def); err != nil {
			return fmt.Errorf("failed to build level %q: %w", level.Name, err)
		}
	}

	player, err := NewPlayer(registry, NewPlayerConfig(g.Config, level), g.EventBus, g.logger)
	if err != nil {
		return fmt.Errorf("failed to create player: %w", err)
	}

	g.ctx = logging.WithRunID(g.baseCtx, "")
	player.ctx = g.ctx

	g.Level = level
	g.Registry = registry
	g.provider = provider
	g.player = player
	g.contacts = nil
	g.accumulator = 0
	g.CurrentTick = 0
	g.input.Drain()
	provider.SetContactHandler(g.queueContact)

	g.logger.Info(g.ctx, "level loaded",
		"level", level.Name,
		"planets", len(level.Planets),
		"goal", level.Goal != nil,
	)
	g.EventBus.Publish(event.NewLevelEvent(event.LevelLoaded, g, level.Name, 0))
	return nil
}

// queueContact stores a contact reported during a step for the next tick.
func (g *Game) queueContact(c physics.Contact) {
	g.contacts = append(g.contacts, c)
}

// Update feeds frameDelta seconds of wall time into the simulation and runs
// as many fixed ticks as have accumulated. It returns the number of ticks run.
func (g *Game) Update(frameDelta float64) int {
	if math.IsNaN(frameDelta) || frameDelta <= 0 {
		return 0
	}
	if frameDelta > g.Config.Physics.MaxFrameDelta {
		frameDelta = g.Config.Physics.MaxFrameDelta
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	g.accumulator += frameDelta
	ticks := 0
	// the epsilon absorbs rounding when frames match the step exactly
	for g.accumulator+1e-9 >= g.TimeStep {
		g.tick()
		g.accumulator -= g.TimeStep
		ticks++
	}
	return ticks
}

// Tick runs exactly one fixed tick
func (g *Game) Tick() {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.tick()
}

// tick drains input, applies last step's contacts, runs the player and then
// steps the provider. Must be called with mu held.
func (g *Game) tick() {
	for _, ev := range g.input.Drain() {
		g.player.HandleInput(ev)
	}

	contacts := g.contacts
	g.contacts = nil
	for _, c := range contacts {
		g.player.HandleContact(c)
	}

	g.player.Tick(g.TimeStep)
	g.provider.Step(g.TimeStep)
	g.CurrentTick++
}

// PointerDown queues a press at world position (x, y)
func (g *Game) PointerDown(x, y float64) {
	g.input.Push(PointerEvent{Action: PointerPress, Position: physics.Vector2D{X: x, Y: y}})
}

// PointerMove queues a pointer move to world position (x, y)
func (g *Game) PointerMove(x, y float64) {
	g.input.Push(PointerEvent{Action: PointerMove, Position: physics.Vector2D{X: x, Y: y}})
}

// PointerUp queues a release at world position (x, y)
func (g *Game) PointerUp(x, y float64) {
	g.input.Push(PointerEvent{Action: PointerRelease, Position: physics.Vector2D{X: x, Y: y}})
}

// State returns the player's current state
func (g *Game) State() PlayerState {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.player.State()
}

// Status reports the game status derived from the player state
func (g *Game) Status() GameStatus {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return statusOf(g.player.State())
}

func statusOf(s PlayerState) GameStatus {
	switch s {
	case Dropped, Flying:
		return GameStatusActive
	case Crashed:
		return GameStatusCrashed
	case Finish:
		return GameStatusFinished
	default:
		return GameStatusWaiting
	}
}

// Reset replays the current level on a fresh provider
func (g *Game) Reset() error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if err := g.rebuild(g.Level); err != nil {
		return err
	}
	g.EventBus.Publish(event.NewLevelEvent(event.GameReset, g, g.Level.Name, 0))
	return nil
}

// LoadLevel switches to level on a fresh provider
func (g *Game) LoadLevel(level *config.Level) error {
	if level == nil {
		return fmt.Errorf("level is required")
	}
	if err := level.Validate(); err != nil {
		return fmt.Errorf("invalid level %q: %w", level.Name, err)
	}

	g.mu.Lock()
	defer g.mu.Unlock()
	return g.rebuild(level)
}

func (g *Game) rebuild(level *config.Level) error {
	provider, err := g.freshProvider()
	if err != nil {
		return err
	}
	return g.build(level, provider)
}

// Context returns the context carrying the current attempt's run ID
func (g *Game) Context() context.Context {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.ctx
}
