package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"codefitter/internal/spec"
)

// validConfig returns a minimal config used by validation tests.
func validConfig() spec.Config {
	return spec.Config{
		Version:      1,
		ModelName:    "qwen-plus",
		BaseURL:      "https://example.test/v1",
		APIKeyEnv:    "FITTER_TEST_KEY",
		SystemPrompt: "You edit files.",
	}
}

// writeConfigFile writes a config under <root>/.codefitter/config.yml.
func writeConfigFile(t *testing.T, root, payload string) string {
	t.Helper()
	path := ConfigPath(root)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(payload), 0o644))
	return path
}
