package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// Config holds runtime parameters for an evaluation run.
// Zero values mean "unspecified" and will be replaced by defaults in main.
type Config struct {
	ModelPath    string `json:"model_path" yaml:"model_path" toml:"model_path"`
	DatasetPath  string `json:"dataset_path" yaml:"dataset_path" toml:"dataset_path"`
	Parallel     int    `json:"parallel" yaml:"parallel" toml:"parallel"`
	CtxSize      int    `json:"ctx_size" yaml:"ctx_size" toml:"ctx_size"`
	Threads      int    `json:"threads" yaml:"threads" toml:"threads"`
	Addr         string `json:"addr" yaml:"addr" toml:"addr"`
	LogLevel     string `json:"log_level" yaml:"log_level" toml:"log_level"`
	SystemPrompt string `json:"system_prompt" yaml:"system_prompt" toml:"system_prompt"`
}

// Load reads a configuration file based on its extension.
// Supports: .yaml/.yml, .json, .toml
func Load(path string) (Config, error) {
	var cfg Config
	if path == "" {
		return cfg, fmt.Errorf("empty config path")
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(b, &cfg); err != nil {
			return cfg, err
		}
	case ".json":
		if err := json.Unmarshal(b, &cfg); err != nil {
			return cfg, err
		}
	case ".toml":
		if err := toml.Unmarshal(b, &cfg); err != nil {
			return cfg, err
		}
	default:
		return cfg, fmt.Errorf("unsupported config extension: %s", ext)
	}
	return cfg, nil
}
