package progress

import (
	"testing"

	"github.com/opd-ai/go-orbits/pkg/event"
	"github.com/opd-ai/go-orbits/pkg/physics"
)

func TestTracker_RecordsOutcomes(t *testing.T) {
	store := Open(nil, nil)
	bus := event.NewEventBus()
	tracker := NewTracker(store, bus, nil)
	defer tracker.Close()

	launch := func() {
		bus.Publish(event.NewLaunchEvent(nil, physics.Vector2D{X: -1}, physics.Vector2D{}))
	}

	// Outcomes before any level is loaded are not attributed.
	launch()
	if len(store.Levels()) != 0 {
		t.Fatalf("Levels() = %v before a level loaded", store.Levels())
	}

	bus.Publish(event.NewLevelEvent(event.LevelLoaded, nil, "slingshot", 0))
	if tracker.Level() != "slingshot" {
		t.Fatalf("Level() = %q", tracker.Level())
	}

	launch()
	bus.Publish(event.NewLevelEvent(event.PlayerCrashed, nil, "slingshot", 1.5))
	launch()
	bus.Publish(event.NewLevelEvent(event.LevelFinished, nil, "slingshot", 6))
	launch()
	bus.Publish(event.NewLevelEvent(event.LevelFinished, nil, "slingshot", 4))
	launch()
	bus.Publish(event.NewLevelEvent(event.LevelFinished, nil, "slingshot", 5))

	got, err := store.Record("slingshot")
	if err != nil {
		t.Fatalf("Record() error = %v", err)
	}
	want := LevelRecord{Attempts: 4, Crashes: 1, Finishes: 3, BestFlightTime: 4}
	if got != want {
		t.Errorf("Record() = %+v, want %+v", got, want)
	}
}

func TestTracker_Close(t *testing.T) {
	store := Open(nil, nil)
	bus := event.NewEventBus()
	tracker := NewTracker(store, bus, nil)

	bus.Publish(event.NewLevelEvent(event.LevelLoaded, nil, "first-orbit", 0))
	tracker.Close()
	bus.Publish(event.NewLaunchEvent(nil, physics.Vector2D{}, physics.Vector2D{}))
	bus.Publish(event.NewLevelEvent(event.LevelLoaded, nil, "binary", 0))

	if rec, _ := store.Record("first-orbit"); rec.Attempts != 0 {
		t.Errorf("Attempts = %d after Close, want 0", rec.Attempts)
	}
	if tracker.Level() != "first-orbit" {
		t.Errorf("Level() = %q, want the level loaded before Close", tracker.Level())
	}
}
