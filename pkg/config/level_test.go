package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/opd-ai/go-orbits/pkg/physics"
)

const testLevel = `
name: test
launcher: {x: 800, y: 450, radius: 20}
player: {offsetX: 50, offsetY: 0, mass: 2, radius: 10}
planets:
  - {name: Earth, x: 200, y: 200, mass: 95000, radius: 50}
goal: {x: 100, y: 700, radius: 30}
`

func TestParseLevel(t *testing.T) {
	level, err := ParseLevel([]byte(testLevel))
	if err != nil {
		t.Fatalf("ParseLevel failed: %v", err)
	}

	if level.Name != "test" {
		t.Errorf("Expected name 'test', got '%s'", level.Name)
	}
	if got := level.PlayerRest(); got != (physics.Vector2D{X: 850, Y: 450}) {
		t.Errorf("PlayerRest() = %v, want (850, 450)", got)
	}
	if len(level.Planets) != 1 || level.Planets[0].Mass != 95000 {
		t.Errorf("Unexpected planets: %+v", level.Planets)
	}
	if level.Goal == nil || level.Goal.Radius != 30 {
		t.Errorf("Unexpected goal: %+v", level.Goal)
	}
}

func TestLevelValidate(t *testing.T) {
	tests := []struct {
		name       string
		mutate     func(l *Level)
		errorField string
	}{
		{"valid", func(l *Level) {}, ""},
		{"no goal", func(l *Level) { l.Goal = nil }, ""},
		{"empty name", func(l *Level) { l.Name = " " }, "Name"},
		{"zero launcher radius", func(l *Level) { l.Launcher.Radius = 0 }, "Launcher.Radius"},
		{"zero player mass", func(l *Level) { l.Player.Mass = 0 }, "Player.Mass"},
		{"negative player radius", func(l *Level) { l.Player.Radius = -3 }, "Player.Radius"},
		{"player inside launcher", func(l *Level) { l.Player.OffsetX = 5 }, "Player.Offset"},
		{"player touching launcher", func(l *Level) { l.Player.OffsetX = 25 }, "Player.Offset"},
		{"player just clear of launcher", func(l *Level) { l.Player.OffsetX = 30 }, ""},
		{"no planets", func(l *Level) { l.Planets = nil }, "Planets"},
		{"negative planet mass", func(l *Level) { l.Planets[0].Mass = -95000 }, "Planets[0].Mass"},
		{"unnamed planet", func(l *Level) { l.Planets[0].Name = "" }, "Planets[0].Name"},
		{"planet on player", func(l *Level) { l.Planets[0].X, l.Planets[0].Y = 850, 460 }, "Planets[0]"},
		{"zero goal radius", func(l *Level) { l.Goal.Radius = 0 }, "Goal.Radius"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			level, err := ParseLevel([]byte(testLevel))
			if err != nil {
				t.Fatalf("ParseLevel failed: %v", err)
			}
			tt.mutate(level)
			err = level.Validate()

			if tt.errorField == "" {
				if err != nil {
					t.Errorf("Expected valid level, got %v", err)
				}
				return
			}

			var validationErr *ValidationError
			if !errors.As(err, &validationErr) {
				t.Fatalf("Expected ValidationError, got %T: %v", err, err)
			}
			if validationErr.Field != tt.errorField {
				t.Errorf("Expected error for field '%s', got '%s'", tt.errorField, validationErr.Field)
			}
		})
	}
}

func TestParseLevel_Invalid(t *testing.T) {
	if _, err := ParseLevel([]byte("name: [broken")); err == nil || !strings.Contains(err.Error(), "failed to parse level") {
		t.Errorf("Expected parse error, got %v", err)
	}

	bad := strings.Replace(testLevel, "mass: 95000", "mass: 0", 1)
	if _, err := ParseLevel([]byte(bad)); err == nil {
		t.Error("Expected validation error for zero planet mass")
	}
}

func TestLoadAndSaveLevel(t *testing.T) {
	level, err := ParseLevel([]byte(testLevel))
	if err != nil {
		t.Fatalf("ParseLevel failed: %v", err)
	}

	levelPath := filepath.Join(t.TempDir(), "level.yaml")
	if err := SaveLevel(level, levelPath); err != nil {
		t.Fatalf("SaveLevel failed: %v", err)
	}

	loaded, err := LoadLevel(levelPath)
	if err != nil {
		t.Fatalf("LoadLevel failed: %v", err)
	}
	if loaded.Name != level.Name || loaded.Planets[0] != level.Planets[0] || *loaded.Goal != *level.Goal {
		t.Errorf("Round trip mismatch: %+v vs %+v", loaded, level)
	}

	if _, err := LoadLevel(filepath.Join(t.TempDir(), "missing.yaml")); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("Expected os.ErrNotExist, got %v", err)
	}
}

func TestEmbeddedLevels(t *testing.T) {
	names := LevelNames()
	if len(names) == 0 {
		t.Fatal("Expected embedded levels")
	}

	found := false
	for _, name := range names {
		if name == DefaultLevelName {
			found = true
		}
		t.Run(name, func(t *testing.T) {
			level, err := EmbeddedLevel(name)
			if err != nil {
				t.Fatalf("EmbeddedLevel(%q) failed: %v", name, err)
			}
			if level.Name != name {
				t.Errorf("Level file %q declares name %q", name, level.Name)
			}

			// Every embedded level must start with the player on screen.
			viewport := physics.NewViewport(800, 800)
			player := physics.Circle{Center: level.PlayerRest(), Radius: level.Player.Radius}
			if !viewport.Encloses(player.Bounds()) {
				t.Errorf("Player rest position %v is off screen", level.PlayerRest())
			}
		})
	}
	if !found {
		t.Errorf("Default level %q is not embedded", DefaultLevelName)
	}

	if _, err := EmbeddedLevel("no-such-level"); !errors.Is(err, ErrUnknownLevel) {
		t.Errorf("Expected ErrUnknownLevel, got %v", err)
	}
}
