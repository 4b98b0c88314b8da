package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"codefitter/internal/spec"
)

// Validate checks a config for correctness and referenced files.
func Validate(cfg *spec.Config, baseDir string) error {
	collector := &issueCollector{}

	if cfg.Version == 0 {
		collector.add("version", "is required")
	} else if cfg.Version != 1 {
		collector.add("version", fmt.Sprintf("unsupported version %d", cfg.Version))
	}

	if cfg.ModelName == "" {
		collector.add("model_name", "is required")
	}
	if cfg.BaseURL == "" {
		collector.add("base_url", "is required")
	} else if parsed, err := url.Parse(cfg.BaseURL); err != nil || parsed.Scheme == "" || parsed.Host == "" {
		collector.add("base_url", fmt.Sprintf("invalid url %q", cfg.BaseURL))
	}
	if t := cfg.Temperature; t != nil && (*t < 0 || *t > 2) {
		collector.add("temperature", "must be between 0 and 2")
	}
	if t := cfg.TimeoutSeconds; t != nil && *t < 0 {
		collector.add("timeout_seconds", "must be >= 0")
	}

	if baseDir == "" {
		baseDir = "."
	}
	validateSystemPrompt(cfg, baseDir, collector.add)

	return collector.result()
}

// validateSystemPrompt ensures exactly one prompt source is usable.
func validateSystemPrompt(cfg *spec.Config, baseDir string, add issueAdder) {
	inline := strings.TrimSpace(cfg.SystemPrompt)
	file := strings.TrimSpace(cfg.SystemPromptFile)
	switch {
	case inline != "" && file != "":
		add("system_prompt_file", "cannot be combined with system_prompt")
	case inline == "" && file == "":
		add("system_prompt", "is required (inline or via system_prompt_file)")
	case file != "":
		path := file
		if !filepath.IsAbs(path) {
			path = filepath.Join(baseDir, path)
		}
		info, err := os.Stat(path)
		if err != nil {
			add("system_prompt_file", fmt.Sprintf("cannot read %q", file))
		} else if info.IsDir() {
			add("system_prompt_file", fmt.Sprintf("%q is a directory", file))
		}
	}
}
