package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// DefaultPath is where the recorder looks for its configuration file.
const DefaultPath = "/opt/meeting-recorder/config.yaml"

// Config holds the application configuration.
type Config struct {
	// OutputDirectory is where finished recordings are saved.
	OutputDirectory string `yaml:"output_directory"`
}

// Load reads the configuration from DefaultPath.
func Load() (*Config, error) {
	return LoadFromPath(DefaultPath)
}

// LoadFromPath reads and validates the configuration at the given path.
// The output directory is created if it does not exist yet.
func LoadFromPath(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("config file not found at %s: create it with an 'output_directory' field", path)
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if cfg.OutputDirectory == "" {
		return nil, fmt.Errorf("config at %s is missing 'output_directory'", path)
	}

	info, err := os.Stat(cfg.OutputDirectory)
	switch {
	case os.IsNotExist(err):
		if err := os.MkdirAll(cfg.OutputDirectory, 0755); err != nil {
			return nil, fmt.Errorf("failed to create output directory: %w", err)
		}
	case err != nil:
		return nil, fmt.Errorf("failed to stat output directory: %w", err)
	case !info.IsDir():
		return nil, fmt.Errorf("output directory %q exists but is not a directory", cfg.OutputDirectory)
	}

	return &cfg, nil
}

// RecordingPath returns the full path for a recording file.
func (c *Config) RecordingPath(filename string) string {
	return filepath.Join(c.OutputDirectory, filename)
}
