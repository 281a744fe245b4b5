// pkg/event/event.go
package event

import (
	"sync"

	"github.com/opd-ai/go-orbits/pkg/physics"
)

// Type represents the type of event
type Type string

// Game event types
const (
	LevelLoaded        Type = "level_loaded"
	PlayerStateChanged Type = "player_state_changed"
	PlayerDragged      Type = "player_dragged"
	PlayerLaunched     Type = "player_launched"
	PlayerCrashed      Type = "player_crashed"
	PlayerOffScreen    Type = "player_off_screen"
	LevelFinished      Type = "level_finished"
	GameReset          Type = "game_reset"
)

// Event is the base interface for all events
type Event interface {
	GetType() Type
	GetSource() interface{}
}

// BaseEvent provides common functionality for all events
type BaseEvent struct {
	EventType Type
	Source    interface{}
}

// GetType returns the event type
func (e *BaseEvent) GetType() Type {
	return e.EventType
}

// GetSource returns the event source
func (e *BaseEvent) GetSource() interface{} {
	return e.Source
}

// Handler is a function that handles events
type Handler func(Event)

// Subscription identifies a registered handler. Cancel removes it from the bus.
type Subscription struct {
	ID     uint64
	Type   Type
	Cancel func()
}

type subscriber struct {
	id      uint64
	handler Handler
}

// Bus manages event subscriptions and dispatching
type Bus struct {
	handlers map[Type][]subscriber
	nextID   uint64
	mu       sync.RWMutex
}

// NewEventBus creates a new event bus
func NewEventBus() *Bus {
	return &Bus{
		handlers: make(map[Type][]subscriber),
		nextID:   1,
	}
}

// Subscribe registers a handler for a specific event type
func (b *Bus) Subscribe(eventType Type, handler Handler) *Subscription {
	b.mu.Lock()
	defer b.mu.Unlock()

	id := b.nextID
	b.nextID++
	b.handlers[eventType] = append(b.handlers[eventType], subscriber{id: id, handler: handler})

	return &Subscription{
		ID:   id,
		Type: eventType,
		Cancel: func() {
			b.unsubscribe(eventType, id)
		},
	}
}

func (b *Bus) unsubscribe(eventType Type, id uint64) {
	b.mu.Lock()
	defer b.mu.Unlock()

	subs := b.handlers[eventType]
	for i, s := range subs {
		if s.id == id {
			// copy so that a Publish iterating the old slice is unaffected
			next := make([]subscriber, 0, len(subs)-1)
			next = append(next, subs[:i]...)
			next = append(next, subs[i+1:]...)
			if len(next) == 0 {
				delete(b.handlers, eventType)
			} else {
				b.handlers[eventType] = next
			}
			return
		}
	}
}

// Publish sends an event to all subscribed handlers. Handlers run on the
// publishing goroutine, in subscription order.
func (b *Bus) Publish(event Event) {
	b.mu.RLock()
	subs := b.handlers[event.GetType()]
	b.mu.RUnlock()

	for _, s := range subs {
		s.handler(event)
	}
}

// Specific event implementations

// StateEvent reports a player state transition. States are carried by name
// so this package does not depend on the engine.
type StateEvent struct {
	BaseEvent
	From   string
	To     string
	Reason string
}

// NewStateEvent creates a new state event
func NewStateEvent(eventType Type, source interface{}, from, to, reason string) *StateEvent {
	return &StateEvent{
		BaseEvent: BaseEvent{
			EventType: eventType,
			Source:    source,
		},
		From:   from,
		To:     to,
		Reason: reason,
	}
}

// LaunchEvent carries the impulse handed to the player on release
type LaunchEvent struct {
	BaseEvent
	Impulse  physics.Vector2D
	Position physics.Vector2D
}

// NewLaunchEvent creates a new launch event
func NewLaunchEvent(source interface{}, impulse, position physics.Vector2D) *LaunchEvent {
	return &LaunchEvent{
		BaseEvent: BaseEvent{
			EventType: PlayerLaunched,
			Source:    source,
		},
		Impulse:  impulse,
		Position: position,
	}
}

// DragEvent reports the pointer offset while the player is held
type DragEvent struct {
	BaseEvent
	Offset   physics.Vector2D
	Strength float64
}

// NewDragEvent creates a new drag event
func NewDragEvent(source interface{}, offset physics.Vector2D, strength float64) *DragEvent {
	return &DragEvent{
		BaseEvent: BaseEvent{
			EventType: PlayerDragged,
			Source:    source,
		},
		Offset:   offset,
		Strength: strength,
	}
}

// LevelEvent reports level lifecycle changes
type LevelEvent struct {
	BaseEvent
	Level      string
	FlightTime float64
}

// NewLevelEvent creates a new level event
func NewLevelEvent(eventType Type, source interface{}, level string, flightTime float64) *LevelEvent {
	return &LevelEvent{
		BaseEvent: BaseEvent{
			EventType: eventType,
			Source:    source,
		},
		Level:      level,
		FlightTime: flightTime,
	}
}
