package models

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// DefaultSettingsPath returns the per-user location of the settings file.
func DefaultSettingsPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("resolve config dir: %w", err)
	}
	return filepath.Join(dir, "dungeon-chat", "settings.yaml"), nil
}

// LoadSettings reads saved settings from path. A missing file is not an
// error: the defaults are returned instead.
func LoadSettings(path string) (GameSettings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultSettings(), nil
		}
		return DefaultSettings(), fmt.Errorf("read settings: %w", err)
	}

	s := DefaultSettings()
	if err := yaml.Unmarshal(data, &s); err != nil {
		return DefaultSettings(), fmt.Errorf("parse settings: %w", err)
	}
	return s.Normalize(), nil
}

// SaveSettings writes the settings to path, creating parent directories as
// needed. Only user preferences are persisted; game state never is.
func SaveSettings(path string, s GameSettings) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create settings dir: %w", err)
	}
	data, err := yaml.Marshal(s.Normalize())
	if err != nil {
		return fmt.Errorf("marshal settings: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write settings: %w", err)
	}
	return nil
}

// ExportTranscript writes the message log to a YAML file. This is a reading
// convenience for the player; nothing is ever loaded back from it.
func ExportTranscript(path string, messages []Message) error {
	data, err := yaml.Marshal(messages)
	if err != nil {
		return fmt.Errorf("marshal transcript: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write transcript: %w", err)
	}
	return nil
}
