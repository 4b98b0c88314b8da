package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"codefitter/internal/config"
)

const testKeyEnv = "CODEFITTER_TEST_KEY"

// writeWorkspace creates a workspace with a config pointing at baseURL and
// returns the config path.
func writeWorkspace(t *testing.T, baseURL, extra string) string {
	t.Helper()
	t.Setenv(config.ConfigEnv, "")
	path := config.ConfigPath(t.TempDir())
	body := "version: 1\n" +
		"model_name: test-model\n" +
		"base_url: " + baseURL + "\n" +
		"api_key_env: " + testKeyEnv + "\n" +
		"system_prompt: You edit files.\n" + extra
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}
