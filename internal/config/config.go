package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// EnvLogLevel overrides log.level when set in the environment.
const EnvLogLevel = "SETTLE_LOG_LEVEL"

// Config represents the top-level settle.yaml configuration.
type Config struct {
	Workspace WorkspaceConfig `yaml:"workspace"`
	Output    OutputConfig    `yaml:"output"`
	Policy    PolicyConfig    `yaml:"policy"`
	Log       LogConfig       `yaml:"log"`
	Git       GitConfig       `yaml:"git"`
}

// WorkspaceConfig identifies the workspace.
type WorkspaceConfig struct {
	Name string `yaml:"name"`
}

// OutputConfig controls where batch runs write their reports.
type OutputConfig struct {
	Dir string `yaml:"dir"`
}

// PolicyConfig tunes how transactions are applied.
type PolicyConfig struct {
	// AllowRedispute honors a dispute against an already-disputed
	// transaction, moving its funds a second time. Off by default.
	AllowRedispute bool `yaml:"allow_redispute"`
}

// LogConfig controls logging.
type LogConfig struct {
	Level string `yaml:"level"` // zap level name, e.g. "debug", "info"
}

// GitConfig controls git integration.
type GitConfig struct {
	AutoCommit  bool   `yaml:"auto_commit"`
	AuthorName  string `yaml:"author_name"`
	AuthorEmail string `yaml:"author_email"`
}

// Load reads a settle.yaml file from disk. SETTLE_LOG_LEVEL, when set,
// overrides the file's log level.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if lvl := os.Getenv(EnvLogLevel); lvl != "" {
		cfg.Log.Level = lvl
	}
	return &cfg, nil
}

// Save writes a Config to a YAML file.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

// Default returns a Config with sensible defaults for a new workspace.
func Default(workspaceName string) *Config {
	return &Config{
		Workspace: WorkspaceConfig{
			Name: workspaceName,
		},
		Output: OutputConfig{
			Dir: "out",
		},
		Log: LogConfig{
			Level: "info",
		},
		Git: GitConfig{
			AutoCommit:  true,
			AuthorName:  "Settle",
			AuthorEmail: "runs@settle.dev",
		},
	}
}
