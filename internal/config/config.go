package config

import (
	"strings"

	"github.com/spf13/viper"
)

type Config struct {
	// ModelName is the language-model identifier sent on every turn.
	ModelName string `mapstructure:"model_name"`

	// UseMockLLM substitutes the offline mock client, useful for dev.
	UseMockLLM bool `mapstructure:"use_mock_llm"`

	// StorageBackend is "file", "memory" or "firestore".
	StorageBackend string `mapstructure:"storage_backend"`

	GCPProject  string `mapstructure:"gcp_project"`
	GCPLocation string `mapstructure:"gcp_location"`

	// HistoryPath and AuditLogPath locate the snapshot and the
	// append-only log for the file backend.
	HistoryPath  string `mapstructure:"history_path"`
	AuditLogPath string `mapstructure:"audit_log_path"`

	// PromptDir optionally overrides the embedded prompt templates.
	PromptDir string `mapstructure:"prompt_dir"`

	// ModelPath is the model-under-correction file the user edits.
	ModelPath string `mapstructure:"model_path"`
}

// Load reads configuration from MODELFIX_* environment variables with
// sensible local defaults.
func Load() (*Config, error) {
	v := viper.New()

	v.SetEnvPrefix("MODELFIX")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("model_name", "gemini-2.5-flash")
	v.SetDefault("use_mock_llm", false)
	v.SetDefault("storage_backend", "file")
	v.SetDefault("gcp_project", "")
	v.SetDefault("gcp_location", "us-central1")
	v.SetDefault("history_path", "log/record.json")
	v.SetDefault("audit_log_path", "log/log.jsonl")
	v.SetDefault("prompt_dir", "")
	v.SetDefault("model_path", "input/input_model.txt")

	// AutomaticEnv alone does not surface env values through
	// Unmarshal; bind each key explicitly.
	for _, key := range []string{
		"model_name", "use_mock_llm", "storage_backend",
		"gcp_project", "gcp_location",
		"history_path", "audit_log_path", "prompt_dir", "model_path",
	} {
		if err := v.BindEnv(key); err != nil {
			return nil, err
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
