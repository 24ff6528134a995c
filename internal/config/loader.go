package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"finplan/internal/registry"
)

// Config holds runtime parameters for the service.
// Zero values mean "unspecified" and are filled from Defaults.
type Config struct {
	Addr          string         `json:"addr" yaml:"addr" toml:"addr"`
	StaticDir     string         `json:"static_dir" yaml:"static_dir" toml:"static_dir"`
	ModelsDir     string         `json:"models_dir" yaml:"models_dir" toml:"models_dir"`
	DataDir       string         `json:"data_dir" yaml:"data_dir" toml:"data_dir"`
	StartupPolicy string         `json:"startup_policy" yaml:"startup_policy" toml:"startup_policy"`
	Artifacts     registry.Names `json:"artifacts" yaml:"artifacts" toml:"artifacts"`
	Training      TrainingConfig `json:"training" yaml:"training" toml:"training"`
	Chat          ChatConfig     `json:"chat" yaml:"chat" toml:"chat"`
	Log           LogConfig      `json:"log" yaml:"log" toml:"log"`
	CORS          CORSConfig     `json:"cors" yaml:"cors" toml:"cors"`
	MaxBodyBytes  int64          `json:"max_body_bytes" yaml:"max_body_bytes" toml:"max_body_bytes"`
}

// TrainingConfig tunes the training orchestrator and the boosted models.
type TrainingConfig struct {
	SampleSize   int     `json:"sample_size" yaml:"sample_size" toml:"sample_size"`
	Seed         int64   `json:"seed" yaml:"seed" toml:"seed"`
	Rounds       int     `json:"rounds" yaml:"rounds" toml:"rounds"`
	LearningRate float64 `json:"learning_rate" yaml:"learning_rate" toml:"learning_rate"`
	MaxDepth     int     `json:"max_depth" yaml:"max_depth" toml:"max_depth"`
	MinLeaf      int     `json:"min_leaf" yaml:"min_leaf" toml:"min_leaf"`
}

// ChatConfig configures the hosted chat API.
type ChatConfig struct {
	APIKey         string `json:"api_key" yaml:"api_key" toml:"api_key"`
	Model          string `json:"model" yaml:"model" toml:"model"`
	BaseURL        string `json:"base_url" yaml:"base_url" toml:"base_url"`
	TimeoutSeconds int    `json:"timeout_seconds" yaml:"timeout_seconds" toml:"timeout_seconds"`
	RatePerMinute  int    `json:"rate_per_minute" yaml:"rate_per_minute" toml:"rate_per_minute"`
}

// LogConfig selects level, format (json or console) and an optional file.
type LogConfig struct {
	Level  string `json:"level" yaml:"level" toml:"level"`
	Format string `json:"format" yaml:"format" toml:"format"`
	File   string `json:"file" yaml:"file" toml:"file"`
}

// CORSConfig mirrors the HTTP layer's CORS options.
type CORSConfig struct {
	Enabled bool     `json:"enabled" yaml:"enabled" toml:"enabled"`
	Origins []string `json:"origins" yaml:"origins" toml:"origins"`
	Methods []string `json:"methods" yaml:"methods" toml:"methods"`
	Headers []string `json:"headers" yaml:"headers" toml:"headers"`
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
