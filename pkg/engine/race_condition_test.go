// pkg/engine/race_condition_test.go
package engine

import (
	"sync"
	"testing"
	"time"
)

// TestGameRaceCondition drives the game from several goroutines the way the
// terminal front-end does: input arrives on a polling goroutine while the
// main loop updates and renders. Run with -race.
func TestGameRaceCondition(t *testing.T) {
	game, _ := newTestGame(t, testConfig())

	var wg sync.WaitGroup
	done := make(chan struct{})

	// Main loop: fixed-step updates.
	wg.Add(1)
	go func() {
		defer wg.Done()
		for {
			select {
			case <-done:
				return
			default:
				game.Update(0.05)
				time.Sleep(1 * time.Millisecond)
			}
		}
	}()

	// Input goroutine: repeated drag and release gestures.
	wg.Add(1)
	go func() {
		defer wg.Done()
		for i := 0; i < 50; i++ {
			game.PointerDown(850, 450)
			for j := 0; j < 5; j++ {
				game.PointerMove(850+float64(j*5), 450)
			}
			game.PointerUp(870, 450)
			time.Sleep(1 * time.Millisecond)
		}
	}()

	// Renderer goroutine: snapshots and status reads.
	wg.Add(1)
	go func() {
		defer wg.Done()
		r := &recordingRenderer{}
		for i := 0; i < 50; i++ {
			game.Render(r)
			_ = game.Status()
			time.Sleep(1 * time.Millisecond)
		}
	}()

	time.Sleep(100 * time.Millisecond)
	close(done)
	wg.Wait()

	if game.CurrentTick == 0 {
		t.Error("main loop never ticked")
	}
}

// TestGameConcurrentReset resets the level while updates run.
func TestGameConcurrentReset(t *testing.T) {
	game, _ := newTestGame(t, testConfig())

	var wg sync.WaitGroup
	errs := make(chan error, 20)

	wg.Add(2)
	go func() {
		defer wg.Done()
		for i := 0; i < 100; i++ {
			game.Update(0.1)
			_ = game.Snapshot()
		}
	}()
	go func() {
		defer wg.Done()
		for i := 0; i < 20; i++ {
			if err := game.Reset(); err != nil {
				errs <- err
				return
			}
			time.Sleep(10 * time.Microsecond)
		}
	}()

	wg.Wait()
	close(errs)

	for err := range errs {
		t.Errorf("Concurrent reset error: %v", err)
	}
}
