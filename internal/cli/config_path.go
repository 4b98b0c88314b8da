package cli

import (
	"path/filepath"
	"strings"

	"github.com/pkg/errors"

	"codefitter/internal/config"
	"codefitter/internal/spec"
)

// resolveConfigPath normalizes a config path or finds it from CWD.
func resolveConfigPath(configPath string) (string, error) {
	if strings.TrimSpace(configPath) == "" {
		return config.FindConfigPath("")
	}
	abs, err := filepath.Abs(configPath)
	if err != nil {
		return "", errors.Wrap(err, "resolve config path")
	}
	return abs, nil
}

// loadedConfig is a validated config with its workspace root and credential.
type loadedConfig struct {
	cfg    spec.Config
	path   string
	root   string
	apiKey string
}

// loadConfig finds, loads, and validates the config, then resolves the API key.
// Every failure here is fatal before any dialogue starts.
func loadConfig(configPath string) (loadedConfig, error) {
	path, err := resolveConfigPath(configPath)
	if err != nil {
		return loadedConfig{}, err
	}
	cfg, err := config.Load(path)
	if err != nil {
		return loadedConfig{}, err
	}
	root := config.RootFromConfigPath(path)
	if err := config.LoadDotEnv(root); err != nil {
		return loadedConfig{}, err
	}
	apiKey, err := config.ResolveAPIKey(cfg)
	if err != nil {
		return loadedConfig{}, err
	}
	return loadedConfig{cfg: cfg, path: path, root: root, apiKey: apiKey}, nil
}

// transcriptPath resolves the configured transcript location against the workspace root.
func transcriptPath(cfg spec.Config, root string) string {
	path := strings.TrimSpace(cfg.TranscriptPath)
	if path == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(root, path)
}
