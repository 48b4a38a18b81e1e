package config

import (
	_ "embed"
	"time"
)

//go:embed defaults/runner.yaml
var defaultRunnerYAML []byte

// DefaultRunnerConfig returns the built-in configuration.
// It mirrors defaults/runner.yaml and is used when the embedded file
// cannot be parsed.
func DefaultRunnerConfig() RunnerConfig {
	return RunnerConfig{
		Run: RunConfig{
			InitialSpeed:     0.6,
			InitialWorld:     "Downtown Highway",
			InitialNarrative: "Systems online. Clear the road ahead.",
		},
		Physics: PhysicsConfig{
			Gravity:     0.008,
			JumpImpulse: 0.25,
		},
		Spawner: SpawnerConfig{
			BaseInterval: 1200 * time.Millisecond,
		},
		Collision: CollisionConfig{
			Window:          3,
			LowClearHeight:  0.5,
			HighClearHeight: 1.5,
		},
		Scoring: ScoringConfig{
			CoinBonus:     100,
			LowClearBonus: 50,
			SurvivalBonus: 1,
			PhaseEvery:    1000,
			SpeedStep:     0.05,
		},
		Clock: ClockConfig{
			MaxDelta: 250 * time.Millisecond,
		},
		Narrative: NarrativeConfig{
			Backend:           "static",
			Timeout:           20 * time.Second,
			ImagePromptSuffix: ", urban asphalt road, city highway, realistic street",
		},
	}
}

// DefaultYAML returns the embedded default config file.
func DefaultYAML() []byte {
	return defaultRunnerYAML
}
