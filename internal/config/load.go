package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"

	"codefitter/internal/spec"
)

// Load reads, parses, normalizes, and validates a config file.
// A relative system_prompt_file is resolved against the workspace root and inlined.
func Load(path string) (spec.Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return spec.Config{}, errors.Wrap(err, "read config")
	}
	cfg, err := spec.ParseConfig(data)
	if err != nil {
		return spec.Config{}, err
	}
	root := RootFromConfigPath(path)
	Normalize(&cfg)
	if err := Validate(&cfg, root); err != nil {
		return spec.Config{}, err
	}
	if strings.TrimSpace(cfg.SystemPromptFile) != "" {
		promptPath := cfg.SystemPromptFile
		if !filepath.IsAbs(promptPath) {
			promptPath = filepath.Join(root, promptPath)
		}
		prompt, err := os.ReadFile(promptPath)
		if err != nil {
			return spec.Config{}, errors.Wrap(err, "read system prompt")
		}
		cfg.SystemPrompt = string(prompt)
	}
	return cfg, nil
}
