// Package config provides YAML-based configuration loading for the runner:
// physics constants, spawn cadence, collision thresholds, scoring rules and
// the narrative backend.
package config

import (
	"errors"
	"fmt"
	"time"
)

// ErrInvalid is returned (wrapped) when a loaded config fails validation.
var ErrInvalid = errors.New("invalid config")

// RunnerConfig contains all tunables of the simulation and its collaborators.
type RunnerConfig struct {
	Run       RunConfig       `yaml:"run"`
	Physics   PhysicsConfig   `yaml:"physics"`
	Spawner   SpawnerConfig   `yaml:"spawner"`
	Collision CollisionConfig `yaml:"collision"`
	Scoring   ScoringConfig   `yaml:"scoring"`
	Clock     ClockConfig     `yaml:"clock"`
	Narrative NarrativeConfig `yaml:"narrative"`
}

// RunConfig defines the values a run starts from.
type RunConfig struct {
	InitialSpeed     float64 `yaml:"initial_speed"`
	InitialWorld     string  `yaml:"initial_world"`
	InitialNarrative string  `yaml:"initial_narrative"`
}

// PhysicsConfig defines the jump integrator constants.
type PhysicsConfig struct {
	Gravity     float64 `yaml:"gravity"`
	JumpImpulse float64 `yaml:"jump_impulse"`
}

// SpawnerConfig defines spawn cadence. The effective interval is
// BaseInterval / speed.
type SpawnerConfig struct {
	BaseInterval time.Duration `yaml:"base_interval"`
}

// CollisionConfig defines the depth window and jump clearances.
type CollisionConfig struct {
	Window          float64 `yaml:"window"`            // half-width of the open depth window around the player
	LowClearHeight  float64 `yaml:"low_clear_height"`  // jumpY must be strictly above this to clear a low obstacle
	HighClearHeight float64 `yaml:"high_clear_height"` // jumpY must be at or above this to clear a high obstacle
}

// ScoringConfig defines score awards and phase progression.
type ScoringConfig struct {
	CoinBonus     int     `yaml:"coin_bonus"`
	LowClearBonus int     `yaml:"low_clear_bonus"`
	SurvivalBonus int     `yaml:"survival_bonus"` // per non-fatal frame
	PhaseEvery    int     `yaml:"phase_every"`    // points per phase
	SpeedStep     float64 `yaml:"speed_step"`     // speed added when a phase result is applied
}

// ClockConfig defines frame delta handling.
type ClockConfig struct {
	MaxDelta time.Duration `yaml:"max_delta"` // 0 disables clamping
}

// NarrativeConfig selects and configures the content generator.
type NarrativeConfig struct {
	Backend           string        `yaml:"backend"`  // "static" or "http"
	Endpoint          string        `yaml:"endpoint"` // base URL for the http backend
	Timeout           time.Duration `yaml:"timeout"`  // per phase request
	Catalog           string        `yaml:"catalog"`  // optional sector catalogue file for the static backend
	ImagePromptSuffix string        `yaml:"image_prompt_suffix"`
}

// Validate checks the invariants the engine relies on.
func (c RunnerConfig) Validate() error {
	var errs []error
	check := func(ok bool, format string, args ...any) {
		if !ok {
			errs = append(errs, fmt.Errorf(format, args...))
		}
	}

	check(c.Run.InitialSpeed > 0, "run.initial_speed must be positive, got %v", c.Run.InitialSpeed)
	check(c.Physics.Gravity > 0, "physics.gravity must be positive, got %v", c.Physics.Gravity)
	check(c.Physics.JumpImpulse > 0, "physics.jump_impulse must be positive, got %v", c.Physics.JumpImpulse)
	check(c.Spawner.BaseInterval > 0, "spawner.base_interval must be positive, got %v", c.Spawner.BaseInterval)
	check(c.Collision.Window > 0, "collision.window must be positive, got %v", c.Collision.Window)
	check(c.Collision.LowClearHeight >= 0, "collision.low_clear_height must not be negative, got %v", c.Collision.LowClearHeight)
	check(c.Collision.HighClearHeight >= c.Collision.LowClearHeight,
		"collision.high_clear_height (%v) must not be below low_clear_height (%v)",
		c.Collision.HighClearHeight, c.Collision.LowClearHeight)
	check(c.Scoring.CoinBonus >= 0, "scoring.coin_bonus must not be negative, got %d", c.Scoring.CoinBonus)
	check(c.Scoring.LowClearBonus >= 0, "scoring.low_clear_bonus must not be negative, got %d", c.Scoring.LowClearBonus)
	check(c.Scoring.SurvivalBonus >= 0, "scoring.survival_bonus must not be negative, got %d", c.Scoring.SurvivalBonus)
	check(c.Scoring.PhaseEvery > 0, "scoring.phase_every must be positive, got %d", c.Scoring.PhaseEvery)
	check(c.Scoring.SpeedStep >= 0, "scoring.speed_step must not be negative, got %v", c.Scoring.SpeedStep)
	check(c.Clock.MaxDelta >= 0, "clock.max_delta must not be negative, got %v", c.Clock.MaxDelta)
	check(c.Narrative.Timeout > 0, "narrative.timeout must be positive, got %v", c.Narrative.Timeout)

	if len(errs) == 0 {
		return nil
	}
	return fmt.Errorf("%w: %w", ErrInvalid, errors.Join(errs...))
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
)

// ParsePreset converts a CLI value to a preset. Empty means "keep config".
func ParsePreset(s string) (DifficultyPreset, error) {
	switch DifficultyPreset(s) {
	case "", DifficultyEasy, DifficultyNormal, DifficultyHard:
		return DifficultyPreset(s), nil
	default:
		return "", fmt.Errorf("config: unknown difficulty %q (want easy, normal or hard)", s)
	}
}

// ApplyPreset adjusts the starting speed and spawn cadence for a preset.
// Normal leaves the config untouched.
func ApplyPreset(cfg *RunnerConfig, preset DifficultyPreset) {
	switch preset {
	case DifficultyEasy:
		cfg.Run.InitialSpeed = 0.5
		cfg.Spawner.BaseInterval = 1500 * time.Millisecond
	case DifficultyHard:
		cfg.Run.InitialSpeed = 0.8
		cfg.Spawner.BaseInterval = 1000 * time.Millisecond
	}
}
