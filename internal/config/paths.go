package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
)

const (
	ConfigDirName  = ".codefitter"
	ConfigFileName = "config.yml"
	// InlineConfigName is the single-file alternative to .codefitter/config.yml.
	InlineConfigName = ".codefitter.yml"
	// ConfigEnv names a config file and bypasses discovery.
	ConfigEnv = "CODEFITTER_CONFIG"
)

// ConfigDir returns the .codefitter directory under the workspace root.
func ConfigDir(root string) string {
	return filepath.Join(root, ConfigDirName)
}

// ConfigPath returns the path init scaffolds under the workspace root.
func ConfigPath(root string) string {
	return filepath.Join(ConfigDir(root), ConfigFileName)
}

// RootFromConfigPath returns the workspace a config file belongs to: the
// parent of .codefitter/, otherwise the directory holding the file.
func RootFromConfigPath(configPath string) string {
	dir := filepath.Dir(configPath)
	if filepath.Base(dir) == ConfigDirName {
		return filepath.Dir(dir)
	}
	return dir
}

// FindConfigPath locates the config for a run. $CODEFITTER_CONFIG wins when
// set. Otherwise each directory from startDir upward is checked for
// .codefitter/config.yml, then .codefitter.yml; the nearest match is used.
func FindConfigPath(startDir string) (string, error) {
	if fromEnv := strings.TrimSpace(os.Getenv(ConfigEnv)); fromEnv != "" {
		return configFromEnv(fromEnv)
	}
	dir, err := startDirectory(startDir)
	if err != nil {
		return "", err
	}

	for {
		path, err := configInDir(dir)
		if err != nil || path != "" {
			return path, err
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", errors.Errorf("no %s or %s found in %s or parent directories",
				filepath.Join(ConfigDirName, ConfigFileName), InlineConfigName, dir)
		}
		dir = parent
	}
}

func startDirectory(startDir string) (string, error) {
	dir := strings.TrimSpace(startDir)
	if dir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return "", errors.Wrap(err, "get working directory")
		}
		dir = wd
	}
	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", errors.Wrap(err, "resolve start directory")
	}
	return abs, nil
}

func configFromEnv(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", errors.Wrapf(err, "resolve %s", ConfigEnv)
	}
	found, err := isConfigFile(abs)
	if err != nil {
		return "", err
	}
	if !found {
		return "", errors.Errorf("%s points to missing file %q", ConfigEnv, abs)
	}
	return abs, nil
}

// configInDir returns the config file in dir, or "" when dir has none.
// A .codefitter directory without config.yml is an error unless the inline
// file is present.
func configInDir(dir string) (string, error) {
	nested := ConfigPath(dir)
	found, err := isConfigFile(nested)
	if err != nil || found {
		return nested, err
	}
	inline := filepath.Join(dir, InlineConfigName)
	found, err = isConfigFile(inline)
	if err != nil || found {
		return inline, err
	}
	if info, statErr := os.Stat(ConfigDir(dir)); statErr == nil && info.IsDir() {
		return "", errors.Errorf("found %q but %s is missing", ConfigDir(dir), ConfigFileName)
	}
	return "", nil
}

func isConfigFile(path string) (bool, error) {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, errors.Wrapf(err, "stat config path %q", path)
	}
	if info.IsDir() {
		return false, errors.Errorf("config path %q is a directory", path)
	}
	return true, nil
}
