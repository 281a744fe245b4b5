// pkg/config/env_config.go
package config

import (
	"fmt"
	"math"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/opd-ai/go-orbits/pkg/logging"
)

// EnvPrefix is prepended to every environment override
const EnvPrefix = "ORBITS_"

// ValidationError reports the first invalid field of a configuration
type ValidationError struct {
	Field   string
	Value   interface{}
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s (%v): %s", e.Field, e.Value, e.Message)
}

// ApplyEnvironmentOverrides overlays ORBITS_* environment variables onto
// config. Unparseable values are ignored and the current value is kept.
func ApplyEnvironmentOverrides(config *GameConfig) error {
	if config == nil {
		return fmt.Errorf("cannot apply environment overrides to nil config")
	}

	config.Viewport.Width = getEnvAsFloatOrDefault(EnvPrefix+"WIDTH", config.Viewport.Width)
	config.Viewport.Height = getEnvAsFloatOrDefault(EnvPrefix+"HEIGHT", config.Viewport.Height)
	config.Viewport.Title = getEnvOrDefault(EnvPrefix+"TITLE", config.Viewport.Title)
	config.Viewport.Fullscreen = getEnvAsBoolOrDefault(EnvPrefix+"FULLSCREEN", config.Viewport.Fullscreen)

	config.Physics.Gravity = getEnvAsFloatOrDefault(EnvPrefix+"GRAVITY", config.Physics.Gravity)
	config.Physics.MinDistance = getEnvAsFloatOrDefault(EnvPrefix+"MIN_DISTANCE", config.Physics.MinDistance)
	config.Physics.Damping = getEnvAsFloatOrDefault(EnvPrefix+"DAMPING", config.Physics.Damping)
	config.Physics.TimeStep = getEnvAsFloatOrDefault(EnvPrefix+"TIME_STEP", config.Physics.TimeStep)
	config.Physics.Iterations = getEnvAsIntOrDefault(EnvPrefix+"ITERATIONS", config.Physics.Iterations)

	config.Launch.Power = getEnvAsFloatOrDefault(EnvPrefix+"LAUNCH_POWER", config.Launch.Power)
	config.Launch.FadeDuration = getEnvAsFloatOrDefault(EnvPrefix+"FADE_DURATION", config.Launch.FadeDuration)

	timeout := time.Duration(config.Rules.OffScreenTimeout * float64(time.Second))
	config.Rules.OffScreenTimeout = getEnvAsDurationOrDefault(EnvPrefix+"OFFSCREEN_TIMEOUT", timeout).Seconds()

	config.Logging.Level = getEnvOrDefault(logging.LevelEnvVar, config.Logging.Level)
	config.Logging.Format = getEnvOrDefault(EnvPrefix+"LOG_FORMAT", config.Logging.Format)

	return nil
}

// Validate checks every field of config and returns a *ValidationError for
// the first one out of range.
func (c *GameConfig) Validate() error {
	checks := []struct {
		field string
		value float64
		ok    bool
		msg   string
	}{
		{"Viewport.Width", c.Viewport.Width, positive(c.Viewport.Width), "must be positive"},
		{"Viewport.Height", c.Viewport.Height, positive(c.Viewport.Height), "must be positive"},
		{"Physics.Gravity", c.Physics.Gravity, positive(c.Physics.Gravity), "must be positive"},
		{"Physics.MinDistance", c.Physics.MinDistance, finite(c.Physics.MinDistance) && c.Physics.MinDistance >= 0, "must not be negative"},
		{"Physics.Damping", c.Physics.Damping, finite(c.Physics.Damping) && c.Physics.Damping > 0 && c.Physics.Damping <= 1, "must be in (0, 1]"},
		{"Physics.TimeStep", c.Physics.TimeStep, positive(c.Physics.TimeStep) && c.Physics.TimeStep <= 0.1, "must be in (0, 0.1]"},
		{"Physics.MaxFrameDelta", c.Physics.MaxFrameDelta, finite(c.Physics.MaxFrameDelta) && c.Physics.MaxFrameDelta >= c.Physics.TimeStep, "must be at least one time step"},
		{"Physics.Iterations", float64(c.Physics.Iterations), c.Physics.Iterations >= 0, "must not be negative"},
		{"Launch.Power", c.Launch.Power, positive(c.Launch.Power), "must be positive"},
		{"Launch.FadeDuration", c.Launch.FadeDuration, finite(c.Launch.FadeDuration) && c.Launch.FadeDuration >= 0, "must not be negative"},
		{"Launch.DrawStrengthDivisor", c.Launch.DrawStrengthDivisor, positive(c.Launch.DrawStrengthDivisor), "must be positive"},
		{"Launch.PlayerFriction", c.Launch.PlayerFriction, finite(c.Launch.PlayerFriction) && c.Launch.PlayerFriction >= 0, "must not be negative"},
		{"Rules.OffScreenTimeout", c.Rules.OffScreenTimeout, finite(c.Rules.OffScreenTimeout) && c.Rules.OffScreenTimeout >= 0, "must not be negative"},
	}

	for _, check := range checks {
		if !check.ok {
			return &ValidationError{Field: check.field, Value: check.value, Message: check.msg}
		}
	}

	if _, ok := logging.ParseLevel(c.Logging.Level); !ok && c.Logging.Level != "" {
		return &ValidationError{Field: "Logging.Level", Value: c.Logging.Level, Message: "must be DEBUG, INFO, WARN or ERROR"}
	}
	switch strings.ToLower(c.Logging.Format) {
	case "", "json", "text":
	default:
		return &ValidationError{Field: "Logging.Format", Value: c.Logging.Format, Message: "must be json or text"}
	}

	return nil
}

func finite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

func positive(f float64) bool {
	return finite(f) && f > 0
}

func getEnvOrDefault(key, defaultValue string) string {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsIntOrDefault(key string, defaultValue int) int {
	if value, err := strconv.Atoi(os.Getenv(key)); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsBoolOrDefault(key string, defaultValue bool) bool {
	if value, err := strconv.ParseBool(os.Getenv(key)); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsFloatOrDefault(key string, defaultValue float64) float64 {
	if value, err := strconv.ParseFloat(os.Getenv(key), 64); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	if value, err := time.ParseDuration(os.Getenv(key)); err == nil {
		return value
	}
	return defaultValue
}
