package platform

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Output formats understood by the CLI.
const (
	OutputTable = "table"
	OutputYAML  = "yaml"
	OutputJSON  = "json"
)

// Config is the content of roster.yaml.
type Config struct {
	// IDPrefix overrides the record id prefix.
	IDPrefix string `yaml:"id_prefix"`
	// Scripts are doublestar patterns, relative to the workspace root.
	Scripts []string `yaml:"scripts"`
	// Output is one of table, yaml or json.
	Output string `yaml:"output"`
}

// DefaultConfig is used when no roster.yaml exists.
func DefaultConfig() Config {
	return Config{
		Scripts: []string{"**/*.roster.yaml", "**/*.roster.json"},
		Output:  OutputTable,
	}
}

// LoadConfig reads roster.yaml from root. A missing file yields DefaultConfig.
func LoadConfig(root string) (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(filepath.Join(root, ConfigFile))
	if errors.Is(err, os.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return cfg, err
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse %s: %w", ConfigFile, err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("%s: %w", ConfigFile, err)
	}
	return cfg, nil
}

// Validate checks the output format.
func (c Config) Validate() error {
	switch c.Output {
	case OutputTable, OutputYAML, OutputJSON:
		return nil
	}
	return fmt.Errorf("unknown output format %q", c.Output)
}

// Options converts the config into session options.
func (c Config) Options() []Option {
	return []Option{WithIDPrefix(c.IDPrefix)}
}
