// Package models defines data structures shared across the preset toolchain.
package models

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// CatalogConfig holds the directory layout of a preset catalog.
// Every value has a working default; a catalog.yaml at the repository
// root overrides them.
type CatalogConfig struct {
	PresetsRoot  string `yaml:"presetsRoot"`
	BundlesRoot  string `yaml:"bundlesRoot"`
	MetaSuffix   string `yaml:"metaSuffix"`
	BundleSuffix string `yaml:"bundleSuffix"`
	IndexPath    string `yaml:"indexPath"`
}

// DefaultCatalogConfig returns the layout used when no catalog.yaml exists.
func DefaultCatalogConfig() CatalogConfig {
	return CatalogConfig{
		PresetsRoot:  "presets",
		BundlesRoot:  "bundles",
		MetaSuffix:   ".meta.json",
		BundleSuffix: ".bundle.json",
		IndexPath:    "presets-index.json",
	}
}

// LoadCatalogConfig reads a catalog.yaml and merges it over the defaults.
// A missing file is not an error; the defaults are returned as-is.
func LoadCatalogConfig(path string) (CatalogConfig, error) {
	config := DefaultCatalogConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return config, nil
		}
		return config, fmt.Errorf("failed to read config: %w", err)
	}

	if err := yaml.Unmarshal(data, &config); err != nil {
		return config, fmt.Errorf("failed to parse config: %w", err)
	}

	// Empty values in the file fall back to the defaults
	defaults := DefaultCatalogConfig()
	if config.PresetsRoot == "" {
		config.PresetsRoot = defaults.PresetsRoot
	}
	if config.BundlesRoot == "" {
		config.BundlesRoot = defaults.BundlesRoot
	}
	if config.MetaSuffix == "" {
		config.MetaSuffix = defaults.MetaSuffix
	}
	if config.BundleSuffix == "" {
		config.BundleSuffix = defaults.BundleSuffix
	}
	if config.IndexPath == "" {
		config.IndexPath = defaults.IndexPath
	}

	return config, nil
}
