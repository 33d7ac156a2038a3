package app

import (
	"errors"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

type Config struct {
	OllamaHost   string   `yaml:"ollama_host"`
	ChatModel    string   `yaml:"chat_model"`
	ChatModels   []string `yaml:"chat_models"`
	TitleModel   string   `yaml:"title_model"`
	MaxRetries   int      `yaml:"max_retries"`
	SystemPrompt string   `yaml:"system_prompt"`
	DataDir      string   `yaml:"data_dir"`
	LogFile      string   `yaml:"log_file"`
	LogLevel     string   `yaml:"log_level"`
}

func DefaultConfig() Config {
	return Config{
		OllamaHost: "http://localhost:11434",
		ChatModel:  "deepseek-r1:7b",
		ChatModels: []string{
			"deepseek-r1:7b",
			"deepseek-r1:1.5b",
			"deepseek-r1:8b",
			"deepseek-r1:14b",
			"deepseek-r1:32b",
			"deepseek-r1:70b",
		},
		TitleModel:   "qwen2.5:3b",
		MaxRetries:   10,
		SystemPrompt: "You are a helpful AI assistant.",
		DataDir:      DefaultDataDir(),
		LogFile:      filepath.Join(os.TempDir(), "deepchat.log"),
		LogLevel:     "info",
	}
}

// DefaultDataDir prefers the XDG data dir and falls back to ~/.local/share,
// then the system temp dir.
func DefaultDataDir() string {
	if base := strings.TrimSpace(os.Getenv("XDG_DATA_HOME")); base != "" {
		return filepath.Join(base, "deepchat")
	}
	if home, err := os.UserHomeDir(); err == nil && home != "" {
		return filepath.Join(home, ".local", "share", "deepchat")
	}
	return filepath.Join(os.TempDir(), "deepchat")
}

func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return cfg, err
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, err
	}
	if cfg.OllamaHost == "" {
		cfg.OllamaHost = "http://localhost:11434"
	}
	if cfg.ChatModel == "" {
		cfg.ChatModel = "deepseek-r1:7b"
	}
	if len(cfg.ChatModels) == 0 {
		cfg.ChatModels = []string{cfg.ChatModel}
	}
	if cfg.TitleModel == "" {
		cfg.TitleModel = "qwen2.5:3b"
	}
	if cfg.MaxRetries <= 0 {
		cfg.MaxRetries = 10
	}
	if cfg.SystemPrompt == "" {
		cfg.SystemPrompt = "You are a helpful AI assistant."
	}
	if cfg.DataDir == "" {
		cfg.DataDir = DefaultDataDir()
	}
	return cfg, nil
}

func SaveConfig(cfg Config, path string) error {
	if path == "" {
		return errors.New("no path provided for config")
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

func DefaultConfigPath() string {
	base, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(base, "deepchat", "config.yml")
}
