package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/streetrunner/internal/config"
	"github.com/vovakirdan/streetrunner/internal/engine"
	"github.com/vovakirdan/streetrunner/internal/narrative"
)

// loadRunnerConfig loads the config file and applies the difficulty preset.
func loadRunnerConfig() (config.RunnerConfig, error) {
	preset, err := config.ParsePreset(flagDifficulty)
	if err != nil {
		return config.RunnerConfig{}, err
	}

	cfg, err := config.Load(flagConfig)
	if err != nil {
		return config.RunnerConfig{}, err
	}
	config.ApplyPreset(&cfg, preset)
	return cfg, nil
}

// newLogger creates a logger writing to w at the --log-level level.
func newLogger(w io.Writer, prefix string) (*log.Logger, error) {
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		return nil, fmt.Errorf("invalid --log-level: %w", err)
	}
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      time.TimeOnly,
		Prefix:          prefix,
		Level:           level,
	}), nil
}

// openLogFile opens path for appending, creating parent directories.
func openLogFile(path string) (*os.File, error) {
	path, err := config.ExpandHome(path)
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("cannot create log directory: %w", err)
	}
	return os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
}

// newGenerator creates the configured narrative backend. A backend that cannot
// be created is logged and the game runs without sector content.
func newGenerator(cfg config.NarrativeConfig, logger *log.Logger) narrative.Generator {
	gen, err := narrative.Create(cfg)
	if err != nil {
		logger.Warn("narrative backend unavailable", "backend", cfg.Backend, "err", err)
		return nil
	}
	return gen
}

// newRandom returns the spawn source for --seed.
func newRandom() engine.RandomSource {
	seed := flagSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return engine.NewSeededSource(seed)
}
