package engo

import (
	"errors"
	"fmt"
	"testing"

	"github.com/EngoEngine/engo"

	"github.com/opd-ai/go-orbits/pkg/physics"
)

type recordingInput struct {
	calls    []string
	resetErr error
	resets   int
}

func (r *recordingInput) PointerDown(x, y float64) { r.record("down", x, y) }
func (r *recordingInput) PointerMove(x, y float64) { r.record("move", x, y) }
func (r *recordingInput) PointerUp(x, y float64)   { r.record("up", x, y) }
func (r *recordingInput) Reset() error {
	r.resets++
	return r.resetErr
}

func (r *recordingInput) record(action string, x, y float64) {
	r.calls = append(r.calls, fmt.Sprintf("%s %v,%v", action, x, y))
}

func TestInputSystem_HandleMouse(t *testing.T) {
	type sample struct {
		action engo.Action
		at     engo.Point
	}
	tests := []struct {
		name    string
		samples []sample
		want    []string
	}{
		{
			name: "press drag release",
			samples: []sample{
				{engo.Press, engo.Point{X: 650, Y: 400}},
				{engo.Move, engo.Point{X: 700, Y: 350}},
				{engo.Release, engo.Point{X: 700, Y: 350}},
			},
			want: []string{"down 650,400", "move 700,450", "up 700,450"},
		},
		{
			name: "repeated press is one edge",
			samples: []sample{
				{engo.Press, engo.Point{X: 10, Y: 10}},
				{engo.Press, engo.Point{X: 10, Y: 10}},
				{engo.Press, engo.Point{X: 20, Y: 10}},
			},
			want: []string{"down 10,790", "move 20,790"},
		},
		{
			name: "press outside the play area",
			samples: []sample{
				{engo.Press, engo.Point{X: 900, Y: 10}},
				{engo.Release, engo.Point{X: 900, Y: 10}},
			},
			want: []string{"move 900,790"},
		},
		{
			name: "release without press",
			samples: []sample{
				{engo.Release, engo.Point{X: 10, Y: 10}},
			},
			want: []string{"move 10,790"},
		},
		{
			name: "still mouse sends nothing",
			samples: []sample{
				{engo.Move, engo.Point{X: 5, Y: 5}},
				{engo.Move, engo.Point{X: 5, Y: 5}},
				{engo.Neutral, engo.Point{X: 5, Y: 5}},
			},
			want: []string{"move 5,795"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			game := &recordingInput{}
			is := NewInputSystem(game, NewCamera(physics.NewViewport(800, 800)), nil)
			for _, s := range tt.samples {
				is.HandleMouse(s.action, s.at)
			}
			if fmt.Sprint(game.calls) != fmt.Sprint(tt.want) {
				t.Errorf("calls = %v, want %v", game.calls, tt.want)
			}
		})
	}
}

func TestInputSystem_Reset(t *testing.T) {
	game := &recordingInput{resetErr: errors.New("no provider")}
	is := NewInputSystem(game, NewCamera(physics.NewViewport(800, 800)), nil)

	is.HandleMouse(engo.Press, engo.Point{X: 1, Y: 1})
	is.Reset()
	if game.resets != 1 {
		t.Errorf("resets = %d, want 1", game.resets)
	}

	// The held button belongs to the old attempt; the next press is new.
	is.HandleMouse(engo.Press, engo.Point{X: 1, Y: 1})
	if n := len(game.calls); n != 2 || game.calls[1] != "down 1,799" {
		t.Errorf("calls = %v", game.calls)
	}
}
