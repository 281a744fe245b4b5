// pkg/config/level.go
package config

import (
	"embed"
	"errors"
	"fmt"
	"os"
	"path"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/opd-ai/go-orbits/pkg/physics"
)

// DefaultLevelName is the embedded level played when none is chosen
const DefaultLevelName = "first-orbit"

// ErrUnknownLevel is returned when no embedded level has the requested name
var ErrUnknownLevel = errors.New("unknown level")

//go:embed levels/*.yaml
var levelFS embed.FS

// Level describes the bodies of one playable layout. Coordinates are world
// units with the origin at the bottom-left corner of the viewport.
type Level struct {
	Name        string       `yaml:"name"`
	Description string       `yaml:"description,omitempty"`
	Launcher    LauncherSpec `yaml:"launcher"`
	Player      PlayerSpec   `yaml:"player"`
	Planets     []PlanetSpec `yaml:"planets"`
	Goal        *GoalSpec    `yaml:"goal,omitempty"`
}

// LauncherSpec places the slingshot anchor
type LauncherSpec struct {
	X      float64 `yaml:"x"`
	Y      float64 `yaml:"y"`
	Radius float64 `yaml:"radius"`
}

// PlayerSpec describes the projectile and where it rests relative to the launcher
type PlayerSpec struct {
	OffsetX float64 `yaml:"offsetX"`
	OffsetY float64 `yaml:"offsetY"`
	Mass    float64 `yaml:"mass"`
	Radius  float64 `yaml:"radius"`
}

// PlanetSpec describes one static gravity source
type PlanetSpec struct {
	Name   string  `yaml:"name"`
	X      float64 `yaml:"x"`
	Y      float64 `yaml:"y"`
	Mass   float64 `yaml:"mass"`
	Radius float64 `yaml:"radius"`
}

// GoalSpec is the circular region that finishes the level
type GoalSpec struct {
	X      float64 `yaml:"x"`
	Y      float64 `yaml:"y"`
	Radius float64 `yaml:"radius"`
}

// LauncherPosition returns the launcher center
func (l *Level) LauncherPosition() physics.Vector2D {
	return physics.Vector2D{X: l.Launcher.X, Y: l.Launcher.Y}
}

// PlayerOffset returns the player's rest offset from the launcher
func (l *Level) PlayerOffset() physics.Vector2D {
	return physics.Vector2D{X: l.Player.OffsetX, Y: l.Player.OffsetY}
}

// PlayerRest returns where the player sits before it is grabbed
func (l *Level) PlayerRest() physics.Vector2D {
	return l.LauncherPosition().Add(l.PlayerOffset())
}

// Position returns the planet center
func (p PlanetSpec) Position() physics.Vector2D {
	return physics.Vector2D{X: p.X, Y: p.Y}
}

// Position returns the goal center
func (g GoalSpec) Position() physics.Vector2D {
	return physics.Vector2D{X: g.X, Y: g.Y}
}

// Validate checks the level and returns a *ValidationError for the first
// invalid field.
func (l *Level) Validate() error {
	if strings.TrimSpace(l.Name) == "" {
		return &ValidationError{Field: "Name", Value: l.Name, Message: "must not be empty"}
	}
	if !finite(l.Launcher.X) || !finite(l.Launcher.Y) {
		return &ValidationError{Field: "Launcher", Value: l.LauncherPosition(), Message: "position must be finite"}
	}
	if !positive(l.Launcher.Radius) {
		return &ValidationError{Field: "Launcher.Radius", Value: l.Launcher.Radius, Message: "must be positive"}
	}
	if !positive(l.Player.Mass) {
		return &ValidationError{Field: "Player.Mass", Value: l.Player.Mass, Message: "must be positive"}
	}
	if !positive(l.Player.Radius) {
		return &ValidationError{Field: "Player.Radius", Value: l.Player.Radius, Message: "must be positive"}
	}
	offset := l.PlayerOffset()
	if !offset.IsFinite() || offset.Length() < l.Launcher.Radius+l.Player.Radius {
		return &ValidationError{Field: "Player.Offset", Value: offset, Message: "must place the player outside the launcher"}
	}
	if len(l.Planets) == 0 {
		return &ValidationError{Field: "Planets", Value: 0, Message: "at least one planet is required"}
	}

	rest := l.PlayerRest()
	for i, p := range l.Planets {
		field := fmt.Sprintf("Planets[%d]", i)
		if strings.TrimSpace(p.Name) == "" {
			return &ValidationError{Field: field + ".Name", Value: p.Name, Message: "must not be empty"}
		}
		if !finite(p.X) || !finite(p.Y) {
			return &ValidationError{Field: field, Value: p.Position(), Message: "position must be finite"}
		}
		if !positive(p.Mass) {
			return &ValidationError{Field: field + ".Mass", Value: p.Mass, Message: "must be positive"}
		}
		if !positive(p.Radius) {
			return &ValidationError{Field: field + ".Radius", Value: p.Radius, Message: "must be positive"}
		}
		if p.Position().Distance(rest) < p.Radius+l.Player.Radius {
			return &ValidationError{Field: field, Value: p.Name, Message: "overlaps the player's rest position"}
		}
	}

	if l.Goal != nil {
		if !finite(l.Goal.X) || !finite(l.Goal.Y) {
			return &ValidationError{Field: "Goal", Value: l.Goal.Position(), Message: "position must be finite"}
		}
		if !positive(l.Goal.Radius) {
			return &ValidationError{Field: "Goal.Radius", Value: l.Goal.Radius, Message: "must be positive"}
		}
	}

	return nil
}

// ParseLevel decodes and validates a YAML level
func ParseLevel(data []byte) (*Level, error) {
	var level Level
	if err := yaml.Unmarshal(data, &level); err != nil {
		return nil, fmt.Errorf("failed to parse level: %w", err)
	}
	if err := level.Validate(); err != nil {
		return nil, fmt.Errorf("level %q: %w", level.Name, err)
	}
	return &level, nil
}

// LoadLevel reads a YAML level file
func LoadLevel(path string) (*Level, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open level file: %w", err)
	}
	return ParseLevel(data)
}

// SaveLevel writes level as YAML
func SaveLevel(level *Level, path string) error {
	data, err := yaml.Marshal(level)
	if err != nil {
		return fmt.Errorf("failed to marshal level: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write level file: %w", err)
	}
	return nil
}

// EmbeddedLevel returns one of the levels compiled into the binary
func EmbeddedLevel(name string) (*Level, error) {
	data, err := levelFS.ReadFile(path.Join("levels", name+".yaml"))
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrUnknownLevel, name)
	}
	return ParseLevel(data)
}

// LevelNames lists the embedded levels in alphabetical order
func LevelNames() []string {
	entries, err := levelFS.ReadDir("levels")
	if err != nil {
		return nil
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if name, ok := strings.CutSuffix(e.Name(), ".yaml"); ok {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names
}
