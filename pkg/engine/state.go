// pkg/engine/state.go
package engine

import (
	"github.com/opd-ai/go-orbits/pkg/entity"
	"github.com/opd-ai/go-orbits/pkg/event"
	"github.com/opd-ai/go-orbits/pkg/physics"
)

// PlayerState names the phase the player is in
type PlayerState int

const (
	Waiting PlayerState = iota
	Dragging
	Dropped
	Flying
	Crashed
	Finish
)

func (s PlayerState) String() string {
	switch s {
	case Waiting:
		return "waiting"
	case Dragging:
		return "dragging"
	case Dropped:
		return "dropped"
	case Flying:
		return "flying"
	case Crashed:
		return "crashed"
	case Finish:
		return "finish"
	default:
		return "unknown"
	}
}

// Terminal reports whether the state ends the attempt
func (s PlayerState) Terminal() bool {
	return s == Crashed || s == Finish
}

// playerState is one variant of the player state machine. Both methods
// return the next state, or nil to stay, plus the reason for the change.
type playerState interface {
	Kind() PlayerState
	handleInput(p *Player, ev PointerEvent) (playerState, string)
	tick(p *Player, dt float64) (playerState, string)
}

// waitingState holds the player at rest next to the launcher.
type waitingState struct{}

func (*waitingState) Kind() PlayerState { return Waiting }

func (*waitingState) handleInput(p *Player, ev PointerEvent) (playerState, string) {
	if ev.Action != PointerPress {
		return nil, ""
	}
	body, pos, ok := p.playerAt()
	if !ok || !body.Collider(pos).Contains(ev.Position) {
		p.ignore(ev, "press outside player")
		return nil, ""
	}
	return &draggingState{}, "pointer pressed on player"
}

func (*waitingState) tick(p *Player, dt float64) (playerState, string) {
	launcher, ok := p.registry.Launcher()
	if !ok {
		return nil, ""
	}
	rest := launcher.Position.Add(p.cfg.RestOffset)
	p.setPlayerPosition(rest)
	p.aimLauncher(launcher.Position, rest)
	return nil, ""
}

// draggingState follows the pointer and tracks the pull on the launcher.
type draggingState struct {
	drag     physics.Vector2D
	strength float64
}

func (*draggingState) Kind() PlayerState { return Dragging }

func (s *draggingState) handleInput(p *Player, ev PointerEvent) (playerState, string) {
	switch ev.Action {
	case PointerMove:
		p.setPlayerPosition(ev.Position)
		return nil, ""
	case PointerRelease:
		p.setPlayerPosition(ev.Position)
		return &droppedState{}, "pointer released"
	default:
		p.ignore(ev, "already dragging")
		return nil, ""
	}
}

func (s *draggingState) tick(p *Player, dt float64) (playerState, string) {
	launcher, ok := p.registry.Launcher()
	if !ok {
		return nil, ""
	}
	_, pos, ok := p.playerAt()
	if !ok {
		return nil, ""
	}
	p.aimLauncher(launcher.Position, pos)

	drag := launcher.Position.Sub(pos)
	if drag == s.drag {
		return nil, ""
	}
	s.drag = drag
	s.strength = drag.Length() / p.cfg.DrawStrengthDivisor
	p.bus.Publish(event.NewDragEvent(p, s.drag, s.strength))
	return nil, ""
}

// droppedState performs the launch. It never survives the tick it runs in.
type droppedState struct{}

func (*droppedState) Kind() PlayerState { return Dropped }

func (*droppedState) handleInput(p *Player, ev PointerEvent) (playerState, string) {
	p.ignore(ev, "launch in progress")
	return nil, ""
}

func (*droppedState) tick(p *Player, dt float64) (playerState, string) {
	flying := &flyingState{}
	flying.fade.Start(p.cfg.FadeDuration)

	player, pos, ok := p.playerAt()
	launcher, hasLauncher := p.registry.Launcher()
	if !ok || !hasLauncher {
		return flying, "launched without launcher"
	}

	impulse := p.launch.Impulse(launcher.Position, pos)
	provider := p.registry.Provider()
	if err := provider.ApplyImpulse(player.Handle, impulse); err != nil {
		p.logger.Error(p.ctx, "failed to apply launch impulse", err)
	}
	if err := provider.SetFriction(player.Handle, 0); err != nil {
		p.logger.Error(p.ctx, "failed to clear player friction", err)
	}
	if err := p.registry.Remove(launcher.ID); err != nil {
		p.logger.Error(p.ctx, "failed to remove launcher", err)
	}

	p.logger.Info(p.ctx, "player launched",
		"impulse_x", impulse.X,
		"impulse_y", impulse.Y,
		"strength", launcher.Position.Sub(pos).Length()/p.cfg.DrawStrengthDivisor,
	)
	p.bus.Publish(event.NewLaunchEvent(p, impulse, pos))
	return flying, "launched"
}

// flyingState integrates gravity and watches for the end of the flight.
type flyingState struct {
	fade         FadeTimer
	offScreen    bool
	offScreenFor float64
}

func (*flyingState) Kind() PlayerState { return Flying }

func (*flyingState) handleInput(p *Player, ev PointerEvent) (playerState, string) {
	p.ignore(ev, "player in flight")
	return nil, ""
}

func (s *flyingState) tick(p *Player, dt float64) (playerState, string) {
	s.fade.Advance(dt)
	p.flightTime += dt

	player, pos, ok := p.playerAt()
	if !ok {
		return nil, ""
	}
	collider := player.Collider(pos)

	for _, planet := range p.registry.Planets() {
		if !planet.Detached && collider.Collides(planet.Collider(planet.Position)) {
			return s.crash("hit " + planet.Name)
		}
	}
	if goal, ok := p.registry.Goal(); ok && collider.Collides(goal.Collider(goal.Position)) {
		return &finishState{opacity: s.fade.Opacity()}, "reached goal"
	}

	force := p.gravity.Force(player.Attractor(pos), p.registry.Attractors())
	if err := p.registry.Provider().ApplyForce(player.Handle, force); err != nil {
		p.logger.Error(p.ctx, "failed to apply gravity", err)
	}

	wasOff := s.offScreen
	s.offScreen = !p.cfg.Viewport.Encloses(collider.Bounds())
	if !s.offScreen {
		s.offScreenFor = 0
		return nil, ""
	}
	s.offScreenFor += dt
	if !wasOff {
		p.bus.Publish(&event.BaseEvent{EventType: event.PlayerOffScreen, Source: p})
	}
	if p.cfg.OffScreenTimeout > 0 && s.offScreenFor > p.cfg.OffScreenTimeout {
		return s.crash("left the screen")
	}
	return nil, ""
}

// contact resolves a provider collision between the player and other.
func (s *flyingState) contact(other entity.Body) (playerState, string) {
	switch other.Role {
	case entity.RolePlanet:
		return s.crash("hit " + other.Name)
	case entity.RoleGoal:
		return &finishState{opacity: s.fade.Opacity()}, "reached goal"
	default:
		return nil, ""
	}
}

func (s *flyingState) crash(reason string) (playerState, string) {
	return &crashedState{reason: reason, opacity: s.fade.Opacity()}, reason
}

// crashedState ends the attempt. Only a reset leaves it.
type crashedState struct {
	reason  string
	opacity float64
}

func (*crashedState) Kind() PlayerState { return Crashed }

func (*crashedState) handleInput(p *Player, ev PointerEvent) (playerState, string) {
	return nil, ""
}

func (*crashedState) tick(p *Player, dt float64) (playerState, string) {
	return nil, ""
}

// finishState ends the attempt successfully.
type finishState struct {
	opacity float64
}

func (*finishState) Kind() PlayerState { return Finish }

func (*finishState) handleInput(p *Player, ev PointerEvent) (playerState, string) {
	return nil, ""
}

func (*finishState) tick(p *Player, dt float64) (playerState, string) {
	return nil, ""
}
