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

// Config holds the model backend and run parameters.
// Zero values mean "unspecified"; pointer fields distinguish an explicit
// zero from an absent value.
type Config struct {
	CompiledModel   string   `json:"compiled_model" yaml:"compiled_model" toml:"compiled_model"`
	TrainedModel    string   `json:"trained_model" yaml:"trained_model" toml:"trained_model"`
	Devices         []string `json:"devices" yaml:"devices" toml:"devices"`
	NumProc         int      `json:"num_proc" yaml:"num_proc" toml:"num_proc"`
	ChunkSize       *int     `json:"chunk_size" yaml:"chunk_size" toml:"chunk_size"`
	ChunkOverlap    *int     `json:"chunk_overlap" yaml:"chunk_overlap" toml:"chunk_overlap"`
	MaxConcurChunks *int     `json:"max_concur_chunks" yaml:"max_concur_chunks" toml:"max_concur_chunks"`

	ReadsDir  string `json:"reads_dir" yaml:"reads_dir" toml:"reads_dir"`
	Recursive bool   `json:"recursive" yaml:"recursive" toml:"recursive"`
	NoScale   bool   `json:"no_scale" yaml:"no_scale" toml:"no_scale"`
	// ModSplit is the canonical state count used to split undivided
	// trained model output; zero keeps it undivided.
	ModSplit int `json:"mod_split" yaml:"mod_split" toml:"mod_split"`

	MetricsAddr string `json:"metrics_addr" yaml:"metrics_addr" toml:"metrics_addr"`
	LogLevel    string `json:"log_level" yaml:"log_level" toml:"log_level"`
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
			return cfg, fmt.Errorf("parse %s: %w", path, err)
		}
	case ".json":
		if err := json.Unmarshal(b, &cfg); err != nil {
			return cfg, fmt.Errorf("parse %s: %w", path, err)
		}
	case ".toml":
		if err := toml.Unmarshal(b, &cfg); err != nil {
			return cfg, fmt.Errorf("parse %s: %w", path, err)
		}
	default:
		return cfg, fmt.Errorf("unsupported config extension: %s", ext)
	}
	return cfg, nil
}
