package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Policy names accepted by the EmptySections and PendingSplit fields.
const (
	EmptySectionsOmit        = "omit"
	EmptySectionsPlaceholder = "placeholder"
	PendingSplitNone         = "none"
	PendingSplitFixme        = "fixme-as-pending"
)

// Config represents the specview configuration
type Config struct {
	NoColor       *bool  `json:"noColor,omitempty" yaml:"noColor,omitempty"`
	Verbose       *bool  `json:"verbose,omitempty" yaml:"verbose,omitempty"`
	EmptySections string `json:"emptySections,omitempty" yaml:"emptySections,omitempty"` // omit | placeholder
	PendingSplit  string `json:"pendingSplit,omitempty" yaml:"pendingSplit,omitempty"`   // none | fixme-as-pending
	MinFileColumn int    `json:"minFileColumn,omitempty" yaml:"minFileColumn,omitempty"`
	Output        string `json:"output,omitempty" yaml:"output,omitempty"` // report destination, "-" for stdout
}

// BoolPtr returns a pointer to a bool value
func BoolPtr(b bool) *bool {
	return &b
}

// getBool returns the value of a bool pointer, or the default if nil
func getBool(b *bool, defaultVal bool) bool {
	if b == nil {
		return defaultVal
	}
	return *b
}

// GetNoColor returns the no color setting, defaulting to false
func (c *Config) GetNoColor() bool {
	return getBool(c.NoColor, false)
}

// GetVerbose returns the verbose setting, defaulting to false
func (c *Config) GetVerbose() bool {
	return getBool(c.Verbose, false)
}

// ConfigFilenames contains the possible config file names
var ConfigFilenames = []string{
	".specview.yaml",
	"specview.yaml",
	".specviewrc",
	".specviewrc.json",
}

// LoadConfig loads configuration from the specified path or searches for
// config files in the current directory
func LoadConfig(path string) (*Config, error) {
	if path != "" {
		return loadConfigFromFile(path)
	}
	return FindAndLoadConfig(".")
}

// FindAndLoadConfig searches for a config file in the given directory
func FindAndLoadConfig(dir string) (*Config, error) {
	for _, filename := range ConfigFilenames {
		configPath := filepath.Join(dir, filename)
		if _, err := os.Stat(configPath); err == nil {
			return loadConfigFromFile(configPath)
		}
	}
	return DefaultConfig(), nil
}

func loadConfigFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	config := DefaultConfig()
	if strings.HasSuffix(path, ".yaml") || strings.HasSuffix(path, ".yml") {
		if err := yaml.Unmarshal(data, config); err != nil {
			return nil, fmt.Errorf("parsing %s: %w", path, err)
		}
	} else {
		if err := json.Unmarshal(data, config); err != nil {
			return nil, fmt.Errorf("parsing %s: %w", path, err)
		}
	}

	if err := config.validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return config, nil
}

func (c *Config) validate() error {
	switch c.EmptySections {
	case "", EmptySectionsOmit, EmptySectionsPlaceholder:
	default:
		return fmt.Errorf("unknown emptySections value %q", c.EmptySections)
	}
	switch c.PendingSplit {
	case "", PendingSplitNone, PendingSplitFixme:
	default:
		return fmt.Errorf("unknown pendingSplit value %q", c.PendingSplit)
	}
	return nil
}

// Merge merges another config into this one, with other taking precedence
func (c *Config) Merge(other *Config) *Config {
	if other == nil {
		return c
	}

	result := *c // Copy

	if other.EmptySections != "" {
		result.EmptySections = other.EmptySections
	}
	if other.PendingSplit != "" {
		result.PendingSplit = other.PendingSplit
	}
	if other.MinFileColumn > 0 {
		result.MinFileColumn = other.MinFileColumn
	}
	if other.Output != "" {
		result.Output = other.Output
	}

	// Boolean flags - only override if explicitly set in other config
	if other.NoColor != nil {
		result.NoColor = other.NoColor
	}
	if other.Verbose != nil {
		result.Verbose = other.Verbose
	}

	return &result
}
