// pkg/progress/tracker.go
package progress

import (
	"context"
	"sync"

	"github.com/opd-ai/go-orbits/pkg/event"
	"github.com/opd-ai/go-orbits/pkg/logging"
)

// Tracker turns game events into level records.
type Tracker struct {
	store  *Store
	logger *logging.Logger

	mu    sync.Mutex
	level string
	subs  []*event.Subscription
}

// NewTracker subscribes a tracker to bus. Call Close to unsubscribe.
func NewTracker(store *Store, bus *event.Bus, logger *logging.Logger) *Tracker {
	if logger == nil {
		logger = logging.Discard()
	}
	t := &Tracker{store: store, logger: logger}
	t.subs = []*event.Subscription{
		bus.Subscribe(event.LevelLoaded, t.onLevelLoaded),
		bus.Subscribe(event.PlayerLaunched, t.onLaunched),
		bus.Subscribe(event.PlayerCrashed, t.onCrashed),
		bus.Subscribe(event.LevelFinished, t.onFinished),
	}
	return t
}

// Close unsubscribes the tracker
func (t *Tracker) Close() {
	for _, sub := range t.subs {
		sub.Cancel()
	}
	t.subs = nil
}

// Level returns the level outcomes are currently attributed to
func (t *Tracker) Level() string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.level
}

func (t *Tracker) onLevelLoaded(e event.Event) {
	le, ok := e.(*event.LevelEvent)
	if !ok {
		return
	}
	t.mu.Lock()
	t.level = le.Level
	t.mu.Unlock()
}

func (t *Tracker) onLaunched(event.Event) {
	t.update("attempt", func(r *LevelRecord) { r.Attempts++ })
}

func (t *Tracker) onCrashed(event.Event) {
	t.update("crash", func(r *LevelRecord) { r.Crashes++ })
}

func (t *Tracker) onFinished(e event.Event) {
	le, ok := e.(*event.LevelEvent)
	if !ok {
		return
	}
	t.update("finish", func(r *LevelRecord) {
		r.Finishes++
		if r.BestFlightTime == 0 || le.FlightTime < r.BestFlightTime {
			r.BestFlightTime = le.FlightTime
		}
	})
}

func (t *Tracker) update(outcome string, fn func(r *LevelRecord)) {
	level := t.Level()
	if level == "" {
		return
	}
	rec, err := t.store.Update(level, fn)
	if err != nil {
		t.logger.Error(context.Background(), "failed to record progress", err,
			"level", level,
			"outcome", outcome,
		)
		return
	}
	t.logger.Debug(context.Background(), "progress recorded",
		"level", level,
		"outcome", outcome,
		"attempts", rec.Attempts,
		"finishes", rec.Finishes,
	)
}
