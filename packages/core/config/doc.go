// Package config handles configuration loading and management for specview.
//
// It provides functionality for:
//   - Loading configuration from .specview.yaml or .specviewrc files
//   - Default configuration values
//   - Merging file configuration with command-line overrides
package config
