package spec

// Config is the on-disk configuration document for a codefitter workspace.
// Temperature and TimeoutSeconds are pointers so an explicit 0 is kept.
type Config struct {
	Version          int      `yaml:"version"`
	ModelName        string   `yaml:"model_name"`
	BaseURL          string   `yaml:"base_url"`
	APIKeyEnv        string   `yaml:"api_key_env"`
	SystemPrompt     string   `yaml:"system_prompt"`
	SystemPromptFile string   `yaml:"system_prompt_file"`
	Temperature      *float64 `yaml:"temperature"`
	EnableThinking   bool     `yaml:"enable_thinking"`
	TimeoutSeconds   *int     `yaml:"timeout_seconds"`
	ExitAfterModify  bool     `yaml:"exit_after_modify"`
	TranscriptPath   string   `yaml:"transcript_path"`
}
