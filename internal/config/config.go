// Package config loads workspace settings from the .a11yscan directory:
// config.json for tool behavior and rules.yaml for rule tuning.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// WorkspaceDir is the per-project settings directory.
const WorkspaceDir = ".a11yscan"

// LoggingConfig mirrors the logging package's file-backed settings.
type LoggingConfig struct {
	DebugMode  bool     `json:"debug_mode"`
	Categories []string `json:"categories,omitempty"`
	Level      string   `json:"level,omitempty"`
	JSONFormat bool     `json:"json_format,omitempty"`
}

// ExtractionConfig controls the extraction pool.
type ExtractionConfig struct {
	// MaxFileSizeKB skips files larger than this. 0 means no limit.
	MaxFileSizeKB int `json:"max_file_size_kb"`
	// Workers caps extraction concurrency. 0 selects GOMAXPROCS.
	Workers int `json:"workers"`
}

// StoreConfig controls findings persistence.
type StoreConfig struct {
	// Enabled turns on saving runs to the findings database.
	Enabled bool `json:"enabled"`
}

// Config is the root of config.json.
type Config struct {
	Logging    LoggingConfig    `json:"logging"`
	Extraction ExtractionConfig `json:"extraction"`
	Store      StoreConfig      `json:"store"`
}

// Default returns the configuration used when no config.json exists.
func Default() *Config {
	return &Config{
		Extraction: ExtractionConfig{
			MaxFileSizeKB: 2048,
		},
		Store: StoreConfig{
			Enabled: true,
		},
	}
}

// Load reads config.json from the workspace directory under root. A
// missing file yields the defaults; a malformed file is an error.
func Load(root string) (*Config, error) {
	cfg := Default()
	path := filepath.Join(root, WorkspaceDir, "config.json")

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return cfg, nil
}

// Save writes the config back to the workspace directory, creating it if
// needed.
func (c *Config) Save(root string) error {
	dir := filepath.Join(root, WorkspaceDir)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("creating %s: %w", dir, err)
	}
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(dir, "config.json"), data, 0644)
}
