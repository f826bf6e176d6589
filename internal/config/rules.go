package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Rules is the rule tuning file (.a11yscan/rules.yaml).
type Rules struct {
	// Disabled lists rule ids to skip entirely.
	Disabled []string `yaml:"disabled"`
	// MinSeverity drops findings below this level ("error", "warning",
	// "info"). Empty keeps everything.
	MinSeverity string `yaml:"min_severity"`
}

// LoadRules reads rules.yaml from the workspace directory under root. A
// missing file yields the zero value (all rules on).
func LoadRules(root string) (*Rules, error) {
	path := filepath.Join(root, WorkspaceDir, "rules.yaml")

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return &Rules{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	var r Rules
	if err := yaml.Unmarshal(data, &r); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return &r, nil
}
