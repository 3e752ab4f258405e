// Package config loads startup settings for the alarm clock from a YAML file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/borgmon/puzzle-alarm/pkg/models"
)

// DefaultFilename is looked up in the working directory when no path is given.
const DefaultFilename = "puzzle-alarm.yaml"

var errConfigIsNotSet = errors.New("configuration is not set")

// Load reads settings from path on top of the built-in defaults.
// A missing file at the default location is not an error.
func Load(path string) (*models.Config, error) {
	explicit := path != ""
	if !explicit {
		path = DefaultFilename
	}

	cfg := models.DefaultConfig()

	contents, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		if !explicit && errors.Is(err, fs.ErrNotExist) {
			return cfg, nil
		}
		return nil, fmt.Errorf("read settings: %w", err)
	}

	if err := yaml.Unmarshal(contents, cfg); err != nil {
		return nil, fmt.Errorf("unmarshal settings: %w", err)
	}

	cfg.Normalize()

	return cfg, nil
}

// Save writes cfg to path as YAML
func Save(path string, cfg *models.Config) error {
	if cfg == nil {
		return errConfigIsNotSet
	}
	if path == "" {
		path = DefaultFilename
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshal settings: %w", err)
	}

	if err := os.WriteFile(filepath.Clean(path), data, 0o600); err != nil {
		return fmt.Errorf("write settings: %w", err)
	}

	return nil
}
