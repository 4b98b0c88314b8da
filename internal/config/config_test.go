package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
)

func TestNormalizeAppliesDefaults(t *testing.T) {
	cfg := validConfig()
	cfg.APIKeyEnv = ""
	cfg.BaseURL = " https://example.test/v1/ "

	Normalize(&cfg)

	require.Equal(t, DefaultAPIKeyEnv, cfg.APIKeyEnv)
	require.Equal(t, "https://example.test/v1", cfg.BaseURL)
	require.Equal(t, DefaultTemperature, *cfg.Temperature)
	require.Equal(t, DefaultTimeoutSeconds, *cfg.TimeoutSeconds)
}

func TestNormalizeKeepsExplicitZero(t *testing.T) {
	root := t.TempDir()
	path := writeConfigFile(t, root, "version: 1\nmodel_name: m\nbase_url: https://example.test/v1\n"+
		"system_prompt: p\ntemperature: 0\ntimeout_seconds: 0\n")

	cfg, err := Load(path)

	require.NoError(t, err)
	require.Equal(t, 0.0, *cfg.Temperature)
	require.Equal(t, 0, *cfg.TimeoutSeconds)
}

func TestValidateAcceptsMinimalConfig(t *testing.T) {
	cfg := validConfig()
	Normalize(&cfg)
	require.NoError(t, Validate(&cfg, t.TempDir()))
}

func TestValidateCollectsAllIssues(t *testing.T) {
	cfg := validConfig()
	cfg.Version = 2
	cfg.ModelName = ""
	cfg.BaseURL = "not a url"
	cfg.SystemPrompt = ""

	err := Validate(&cfg, t.TempDir())
	var validationErr *ValidationError
	require.True(t, errors.As(err, &validationErr))
	fields := map[string]bool{}
	for _, issue := range validationErr.Issues {
		fields[issue.Field] = true
	}
	require.True(t, fields["version"])
	require.True(t, fields["model_name"])
	require.True(t, fields["base_url"])
	require.True(t, fields["system_prompt"])
}

func TestValidateRejectsBothPromptSources(t *testing.T) {
	cfg := validConfig()
	cfg.SystemPromptFile = "prompt.md"

	err := Validate(&cfg, t.TempDir())
	require.Error(t, err)
	require.Contains(t, err.Error(), "system_prompt_file")
}

func TestLoadInlinesSystemPromptFile(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, "prompt.md"), []byte("from file"), 0o644))
	path := writeConfigFile(t, root, `version: 1
model_name: m
base_url: https://example.test/v1
system_prompt_file: prompt.md
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, "from file", cfg.SystemPrompt)
	require.Equal(t, DefaultAPIKeyEnv, cfg.APIKeyEnv)
}

func TestFindConfigPathWalksUp(t *testing.T) {
	t.Setenv(ConfigEnv, "")
	root := t.TempDir()
	path := writeConfigFile(t, root, "version: 1\n")
	nested := filepath.Join(root, "a", "b")
	require.NoError(t, os.MkdirAll(nested, 0o755))

	found, err := FindConfigPath(nested)
	require.NoError(t, err)
	require.Equal(t, path, found)
	require.Equal(t, root, RootFromConfigPath(found))
}

func TestFindConfigPathPrefersNearestInlineConfig(t *testing.T) {
	t.Setenv(ConfigEnv, "")
	root := t.TempDir()
	writeConfigFile(t, root, "version: 1\n")
	project := filepath.Join(root, "project")
	require.NoError(t, os.MkdirAll(filepath.Join(project, "src"), 0o755))
	inline := filepath.Join(project, InlineConfigName)
	require.NoError(t, os.WriteFile(inline, []byte("version: 1\n"), 0o644))

	found, err := FindConfigPath(filepath.Join(project, "src"))
	require.NoError(t, err)
	require.Equal(t, inline, found)
	require.Equal(t, project, RootFromConfigPath(found))
}

func TestFindConfigPathHonoursEnvOverride(t *testing.T) {
	root := t.TempDir()
	writeConfigFile(t, root, "version: 1\n")
	override := filepath.Join(t.TempDir(), "custom.yml")
	require.NoError(t, os.WriteFile(override, []byte("version: 1\n"), 0o644))
	t.Setenv(ConfigEnv, override)

	found, err := FindConfigPath(root)
	require.NoError(t, err)
	require.Equal(t, override, found)

	t.Setenv(ConfigEnv, filepath.Join(root, "absent.yml"))
	_, err = FindConfigPath(root)
	require.Error(t, err)
	require.Contains(t, err.Error(), ConfigEnv)
}

func TestFindConfigPathReportsMissingFile(t *testing.T) {
	t.Setenv(ConfigEnv, "")
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(ConfigDir(root), 0o755))

	_, err := FindConfigPath(root)
	require.Error(t, err)
	require.Contains(t, err.Error(), ConfigFileName)
}

func TestResolveAPIKeyMissing(t *testing.T) {
	t.Setenv("FITTER_TEST_KEY", "")
	_, err := ResolveAPIKey(validConfig())
	require.True(t, errors.Is(err, ErrMissingCredential))
}

func TestResolveAPIKeyFromDotEnv(t *testing.T) {
	root := t.TempDir()
	t.Setenv("FITTER_TEST_KEY", "")
	require.NoError(t, os.Unsetenv("FITTER_TEST_KEY"))
	require.NoError(t, os.WriteFile(filepath.Join(root, ".env"), []byte("FITTER_TEST_KEY=secret\n"), 0o644))

	require.NoError(t, LoadDotEnv(root))
	key, err := ResolveAPIKey(validConfig())
	require.NoError(t, err)
	require.Equal(t, "secret", key)
}

func TestScaffoldWritesLoadableConfig(t *testing.T) {
	root := t.TempDir()
	path := ConfigPath(root)

	require.NoError(t, Scaffold(path))
	_, err := Load(path)
	require.NoError(t, err)

	require.Error(t, Scaffold(path))
}
