// Package config holds toolchain constants and the per-project gox.yaml
// configuration. The file is optional: every setting has a default, and
// lookup walks up from the source directory the way .gitignore is found.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config represents the top-level gox.yaml configuration.
type Config struct {
	// Memory controls the machine's flat memory region.
	Memory MemoryConfig `yaml:"memory,omitempty"`

	// Trace enables instruction tracing during execution.
	Trace bool `yaml:"trace,omitempty"`

	// Cache controls the compiled-program cache.
	Cache CacheConfig `yaml:"cache,omitempty"`
}

// MemoryConfig sizes the machine memory.
type MemoryConfig struct {
	// InitialCells pre-sizes memory before the program runs. Programs
	// still grow memory past this with the grow operator.
	InitialCells int `yaml:"initial_cells,omitempty"`
}

// CacheConfig controls the on-disk compile cache.
type CacheConfig struct {
	// Enabled turns the cache on. Off by default.
	Enabled bool `yaml:"enabled,omitempty"`

	// Path is the cache database location. Defaults to .gox-cache.db
	// next to the config file, or in the working directory when no
	// config file exists.
	Path string `yaml:"path,omitempty"`
}

// Default returns the configuration used when no gox.yaml exists.
func Default() *Config {
	cfg := &Config{}
	cfg.setDefaults("")
	return cfg
}

// LoadConfig reads and parses a gox.yaml file.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}
	return ParseConfig(data, path)
}

// ParseConfig parses gox.yaml content from bytes.
// The path argument is used for error messages and default resolution.
func ParseConfig(data []byte, path string) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	if err := cfg.validate(path); err != nil {
		return nil, err
	}
	cfg.setDefaults(filepath.Dir(path))
	return &cfg, nil
}

// FindConfig searches for gox.yaml starting from dir and walking up to
// parent directories. Returns an empty path and nil error when no config
// file exists anywhere above dir.
func FindConfig(dir string) (string, error) {
	dir, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("resolving directory: %w", err)
	}

	for {
		candidate := filepath.Join(dir, ConfigFileName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", nil
		}
		dir = parent
	}
}

// Load resolves the effective configuration for a source file: the
// nearest gox.yaml above it, or the defaults when none exists.
func Load(sourcePath string) (*Config, error) {
	configPath, err := FindConfig(filepath.Dir(sourcePath))
	if err != nil {
		return nil, err
	}
	if configPath == "" {
		return Default(), nil
	}
	return LoadConfig(configPath)
}

func (c *Config) validate(path string) error {
	if c.Memory.InitialCells < 0 {
		return fmt.Errorf("%s: memory.initial_cells must not be negative, got %d", path, c.Memory.InitialCells)
	}
	return nil
}

func (c *Config) setDefaults(baseDir string) {
	if c.Cache.Path == "" {
		c.Cache.Path = filepath.Join(baseDir, ".gox-cache.db")
	}
}
