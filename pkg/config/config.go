// pkg/config/config.go
package config

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// ErrUnsupportedFormat is returned for config files whose extension is not
// .json, .toml, .yaml or .yml
var ErrUnsupportedFormat = errors.New("unsupported config format")

// GameConfig contains configuration for an orbits game
type GameConfig struct {
	Viewport ViewportConfig `json:"viewport" toml:"viewport" yaml:"viewport"`
	Physics  PhysicsConfig  `json:"physics" toml:"physics" yaml:"physics"`
	Launch   LaunchConfig   `json:"launch" toml:"launch" yaml:"launch"`
	Rules    GameRules      `json:"rules" toml:"rules" yaml:"rules"`
	Logging  LoggingConfig  `json:"logging" toml:"logging" yaml:"logging"`
}

// ViewportConfig describes the visible play area in world units
type ViewportConfig struct {
	Width      float64 `json:"width" toml:"width" yaml:"width"`
	Height     float64 `json:"height" toml:"height" yaml:"height"`
	Title      string  `json:"title" toml:"title" yaml:"title"`
	Fullscreen bool    `json:"fullscreen" toml:"fullscreen" yaml:"fullscreen"`
}

// PhysicsConfig contains physics-related configuration
type PhysicsConfig struct {
	// Gravity is the gravitational constant G
	Gravity float64 `json:"gravity" toml:"gravity" yaml:"gravity"`
	// MinDistance clamps the pair distance used in the force calculation
	MinDistance float64 `json:"minDistance" toml:"minDistance" yaml:"minDistance"`
	// Damping is the fraction of velocity kept per second; 1 keeps everything
	Damping float64 `json:"damping" toml:"damping" yaml:"damping"`
	// TimeStep is the fixed simulation step in seconds
	TimeStep float64 `json:"timeStep" toml:"timeStep" yaml:"timeStep"`
	// MaxFrameDelta caps how much wall time one frame may feed the simulation
	MaxFrameDelta float64 `json:"maxFrameDelta" toml:"maxFrameDelta" yaml:"maxFrameDelta"`
	Iterations    int     `json:"iterations" toml:"iterations" yaml:"iterations"`
}

// LaunchConfig contains slingshot configuration
type LaunchConfig struct {
	Power               float64 `json:"power" toml:"power" yaml:"power"`
	FadeDuration        float64 `json:"fadeDuration" toml:"fadeDuration" yaml:"fadeDuration"`
	DrawStrengthDivisor float64 `json:"drawStrengthDivisor" toml:"drawStrengthDivisor" yaml:"drawStrengthDivisor"`
	PlayerFriction      float64 `json:"playerFriction" toml:"playerFriction" yaml:"playerFriction"`
}

// GameRules contains game rules configuration
type GameRules struct {
	// OffScreenTimeout is how many seconds the player may stay outside the
	// viewport before it counts as lost. Zero disables the check.
	OffScreenTimeout float64 `json:"offScreenTimeout" toml:"offScreenTimeout" yaml:"offScreenTimeout"`
}

// LoggingConfig selects log verbosity and format
type LoggingConfig struct {
	Level  string `json:"level" toml:"level" yaml:"level"`
	Format string `json:"format" toml:"format" yaml:"format"`
}

type format int

const (
	formatJSON format = iota
	formatTOML
	formatYAML
)

func formatFor(path string) (format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return formatJSON, nil
	case ".toml":
		return formatTOML, nil
	case ".yaml", ".yml":
		return formatYAML, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnsupportedFormat, filepath.Ext(path))
	}
}

// LoadConfig loads a configuration from a file. The format follows the file
// extension. Fields missing from the file keep their default values.
func LoadConfig(path string) (*GameConfig, error) {
	f, err := formatFor(path)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open config file: %w", err)
	}

	config := DefaultConfig()
	switch f {
	case formatJSON:
		err = json.Unmarshal(data, config)
	case formatTOML:
		_, err = toml.Decode(string(data), config)
	case formatYAML:
		err = yaml.Unmarshal(data, config)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return config, nil
}

// SaveConfig saves a configuration to a file in the format named by its extension
func SaveConfig(config *GameConfig, path string) error {
	f, err := formatFor(path)
	if err != nil {
		return err
	}

	var data []byte
	switch f {
	case formatJSON:
		data, err = json.MarshalIndent(config, "", "  ")
	case formatTOML:
		var buf bytes.Buffer
		if config != nil {
			err = toml.NewEncoder(&buf).Encode(config)
		}
		data = buf.Bytes()
	case formatYAML:
		data, err = yaml.Marshal(config)
	}
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// DefaultConfig returns a default game configuration
func DefaultConfig() *GameConfig {
	return &GameConfig{
		Viewport: ViewportConfig{
			Width:  800,
			Height: 800,
			Title:  "Orbits!",
		},
		Physics: PhysicsConfig{
			Gravity:       20,
			MinDistance:   1,
			Damping:       1,
			TimeStep:      1.0 / 60.0,
			MaxFrameDelta: 0.25,
			Iterations:    10,
		},
		Launch: LaunchConfig{
			Power:               250,
			FadeDuration:        2,
			DrawStrengthDivisor: 100,
			PlayerFriction:      0.5,
		},
		Rules: GameRules{
			OffScreenTimeout: 3,
		},
		Logging: LoggingConfig{
			Level:  "INFO",
			Format: "json",
		},
	}
}
