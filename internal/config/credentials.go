package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"github.com/subosito/gotenv"

	"codefitter/internal/spec"
)

// ErrMissingCredential reports that the API key environment variable is unset.
var ErrMissingCredential = errors.New("missing API credential")

// LoadDotEnv loads .env files from the workspace root and the working directory.
// Variables already present in the environment are left untouched.
func LoadDotEnv(root string) error {
	candidates := []string{filepath.Join(root, ".env")}
	if wd, err := os.Getwd(); err == nil && wd != root {
		candidates = append(candidates, filepath.Join(wd, ".env"))
	}
	for _, path := range candidates {
		if _, err := os.Stat(path); err != nil {
			continue
		}
		if err := gotenv.Load(path); err != nil {
			return errors.Wrapf(err, "load %s", path)
		}
	}
	return nil
}

// ResolveAPIKey reads the API key from the environment variable named by the config.
func ResolveAPIKey(cfg spec.Config) (string, error) {
	name := cfg.APIKeyEnv
	if name == "" {
		name = DefaultAPIKeyEnv
	}
	key := strings.TrimSpace(os.Getenv(name))
	if key == "" {
		return "", errors.Wrapf(ErrMissingCredential, "environment variable %s is not set", name)
	}
	return key, nil
}
