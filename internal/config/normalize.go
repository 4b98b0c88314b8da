package config

import (
	"strings"

	"codefitter/internal/spec"
)

// Defaults applied by Normalize when a field is left empty.
const (
	DefaultAPIKeyEnv      = "CODEFITTER_API_KEY"
	DefaultTemperature    = 0.2
	DefaultTimeoutSeconds = 120
)

// Normalize trims string fields and fills defaults for fields left unset.
func Normalize(cfg *spec.Config) {
	cfg.ModelName = strings.TrimSpace(cfg.ModelName)
	cfg.BaseURL = strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	cfg.APIKeyEnv = strings.TrimSpace(cfg.APIKeyEnv)
	if cfg.APIKeyEnv == "" {
		cfg.APIKeyEnv = DefaultAPIKeyEnv
	}
	if cfg.Temperature == nil {
		temperature := DefaultTemperature
		cfg.Temperature = &temperature
	}
	if cfg.TimeoutSeconds == nil {
		timeout := DefaultTimeoutSeconds
		cfg.TimeoutSeconds = &timeout
	}
}
