package config

import "os"

// Environment variables consulted after the config file is loaded.
const (
	EnvNarrativeBackend = "STREETRUNNER_NARRATIVE_BACKEND"
	EnvNarrativeURL     = "STREETRUNNER_NARRATIVE_URL"
)

// GetEnv returns the value of the environment variable named by the key,
// or fallback if the variable is not set.
func GetEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

// ApplyEnv overrides narrative settings from the environment.
func ApplyEnv(cfg *RunnerConfig) {
	cfg.Narrative.Backend = GetEnv(EnvNarrativeBackend, cfg.Narrative.Backend)
	cfg.Narrative.Endpoint = GetEnv(EnvNarrativeURL, cfg.Narrative.Endpoint)
}
