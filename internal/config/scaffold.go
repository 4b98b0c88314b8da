package config

import (
	"os"
	"path/filepath"

	"github.com/pkg/errors"
)

const defaultConfig = `version: 1
model_name: "qwen-plus"
base_url: "https://dashscope.aliyuncs.com/compatible-mode/v1"
api_key_env: "CODEFITTER_API_KEY"
temperature: 0.2
enable_thinking: false
timeout_seconds: 120
exit_after_modify: false
system_prompt: |
  You are a careful programming assistant working on local files.
  Use ReadFile to inspect files, WriteFile to create new files, and ModifyFile
  to change existing files. ModifyFile takes a unified diff ('patch format')
  with @@ -start,count +start,count @@ hunk headers whose line numbers match
  the current file content. Keep diffs minimal and consistent with the file.
`

// Scaffold writes a default config file, refusing to overwrite an existing one.
func Scaffold(configPath string) error {
	if configPath == "" {
		return errors.New("config path is required")
	}
	if info, err := os.Stat(configPath); err == nil {
		if info.IsDir() {
			return errors.Errorf("config path %q is a directory", configPath)
		}
		return errors.Errorf("config file already exists at %q", configPath)
	} else if !os.IsNotExist(err) {
		return errors.Wrap(err, "stat config file")
	}
	if err := os.MkdirAll(filepath.Dir(configPath), 0o755); err != nil {
		return errors.Wrap(err, "create config dir")
	}
	if err := os.WriteFile(configPath, []byte(defaultConfig), 0o644); err != nil {
		return errors.Wrap(err, "write config file")
	}
	return nil
}
