// pkg/engine/input.go
package engine

import (
	"sync"

	"github.com/opd-ai/go-orbits/pkg/physics"
)

// PointerAction is what the pointer did
type PointerAction int

const (
	PointerPress PointerAction = iota
	PointerMove
	PointerRelease
)

func (a PointerAction) String() string {
	switch a {
	case PointerPress:
		return "press"
	case PointerMove:
		return "move"
	case PointerRelease:
		return "release"
	default:
		return "unknown"
	}
}

// PointerEvent is one pointer action in world coordinates
type PointerEvent struct {
	Action   PointerAction
	Position physics.Vector2D
}

// InputQueue buffers pointer events between frames. Front-ends push from
// any goroutine; the game drains once per tick.
type InputQueue struct {
	mu     sync.Mutex
	events []PointerEvent
}

// NewInputQueue creates an empty queue
func NewInputQueue() *InputQueue {
	return &InputQueue{}
}

// Push queues ev. A move directly following another move replaces it, so
// only the latest pointer position between presses and releases survives.
func (q *InputQueue) Push(ev PointerEvent) {
	q.mu.Lock()
	defer q.mu.Unlock()

	if n := len(q.events); n > 0 && ev.Action == PointerMove && q.events[n-1].Action == PointerMove {
		q.events[n-1] = ev
		return
	}
	q.events = append(q.events, ev)
}

// Drain returns all queued events in order and empties the queue
func (q *InputQueue) Drain() []PointerEvent {
	q.mu.Lock()
	defer q.mu.Unlock()

	events := q.events
	q.events = nil
	return events
}

// Len returns the number of queued events
func (q *InputQueue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.events)
}
