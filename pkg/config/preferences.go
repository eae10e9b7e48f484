package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Preferences are the display toggles read by list cells at render time.
type Preferences struct {
	HideTag   bool `yaml:"hide_tag"`
	HideTitle bool `yaml:"hide_title"`
}

// LoadPreferences reads preferences from path. A missing file yields the
// zero value.
func LoadPreferences(path string) (Preferences, error) {
	var p Preferences

	raw, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return p, nil
	}
	if err != nil {
		return p, fmt.Errorf("read preferences: %w", err)
	}

	if err := yaml.Unmarshal(raw, &p); err != nil {
		return p, fmt.Errorf("parse preferences %s: %w", path, err)
	}
	return p, nil
}

func SavePreferences(path string, p Preferences) error {
	raw, err := yaml.Marshal(p)
	if err != nil {
		return fmt.Errorf("encode preferences: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create preferences directory: %w", err)
	}
	if err := os.WriteFile(path, raw, 0644); err != nil {
		return fmt.Errorf("write preferences: %w", err)
	}
	return nil
}
