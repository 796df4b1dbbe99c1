package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"syscall"

	"gopkg.in/yaml.v3"

	"github.com/runnerr0/bookmarks/internal/storage"
)

// Default config file path.
const DefaultConfigPath = "~/.config/bookmarks/config.yaml"

// ErrCreateDefault is wrapped by LoadOrCreateAt when no config file exists
// and the default one could not be written.
var ErrCreateDefault = errors.New("create default config")

// Config holds all bookmarks configuration.
type Config struct {
	Home       string            `yaml:"home"`
	TreeStores []TreeStoreConfig `yaml:"tree_stores"`
	Places     PlacesConfig      `yaml:"places"`
	Search     SearchConfig      `yaml:"search"`
	Logging    LoggingConfig     `yaml:"logging"`
}

// TreeStoreConfig is one JSON bookmark file, relative to the home directory.
type TreeStoreConfig struct {
	Browser string `yaml:"browser"`
	Path    string `yaml:"path"`
}

type PlacesConfig struct {
	Browser     string `yaml:"browser"`
	ProfileRoot string `yaml:"profile_root"`
	Database    string `yaml:"database"`
	ScratchDir  string `yaml:"scratch_dir"`
}

type SearchConfig struct {
	FallbackURL  string `yaml:"fallback_url"`
	FallbackName string `yaml:"fallback_name"`
}

type LoggingConfig struct {
	Level      string `yaml:"level"`
	File       string `yaml:"file"`
	MaxSize    int    `yaml:"max_size"` // megabytes
	MaxBackups int    `yaml:"max_backups"`
}

// Load reads a YAML config file at path and merges it with defaults.
// Returns an error if the file cannot be read or contains invalid YAML.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	return cfg, nil
}

// expandPath replaces a leading ~ with the user's home directory.
func expandPath(path string) (string, error) {
	if len(path) > 0 && path[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolving home directory: %w", err)
		}
		return filepath.Join(home, path[1:]), nil
	}
	return path, nil
}

// LoadOrCreate loads the config from the default path. If the file does
// not exist, it creates the directory structure and writes defaults.
func LoadOrCreate() (*Config, error) {
	path, err := expandPath(DefaultConfigPath)
	if err != nil {
		return nil, err
	}
	return LoadOrCreateAt(path)
}

// LoadOrCreateAt loads the config from the given path. If the file does
// not exist, it creates the directory structure and writes defaults.
func LoadOrCreateAt(path string) (*Config, error) {
	if _, err := os.Stat(path); missing(err) {
		cfg := DefaultConfig()

		dir := filepath.Dir(path)
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("%w: creating config directory: %w", ErrCreateDefault, err)
		}

		data, err := yaml.Marshal(cfg)
		if err != nil {
			return nil, fmt.Errorf("%w: marshaling default config: %w", ErrCreateDefault, err)
		}

		if err := os.WriteFile(path, data, 0644); err != nil {
			return nil, fmt.Errorf("%w: writing default config: %w", ErrCreateDefault, err)
		}

		return cfg, nil
	}

	return Load(path)
}

// missing reports whether a stat error means there is no file at the path,
// including when a parent component is a regular file.
func missing(err error) bool {
	return errors.Is(err, fs.ErrNotExist) || errors.Is(err, syscall.ENOTDIR)
}

// HomeDir returns the configured home directory, falling back to the
// current user's. A leading ~ is expanded.
func (c *Config) HomeDir() (string, error) {
	if c.Home != "" {
		return expandPath(c.Home)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolving home directory: %w", err)
	}
	return home, nil
}

// Catalog converts the store settings into a storage.Catalog.
func (c *Config) Catalog() storage.Catalog {
	trees := make([]storage.Location, 0, len(c.TreeStores))
	for _, ts := range c.TreeStores {
		trees = append(trees, storage.Location{Browser: ts.Browser, Path: ts.Path})
	}
	return storage.Catalog{
		Trees:         trees,
		PlacesBrowser: c.Places.Browser,
		ProfileRoot:   c.Places.ProfileRoot,
		Database:      c.Places.Database,
	}
}

// ScratchDir returns the expanded scratch directory, or "" for the
// system temp directory.
func (c *Config) ScratchDir() (string, error) {
	return expandPath(c.Places.ScratchDir)
}
