package ui

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// UIPreferences stores persisted builder defaults.
type UIPreferences struct {
	LastFrom   string `json:"last_from"`
	LastStyle  string `json:"last_style"`
	LastPreset string `json:"last_preset"`
}

func prefsPath(configDir string) string {
	return filepath.Join(configDir, "ui_prefs.json")
}

func loadUIPreferences(configDir string) UIPreferences {
	if configDir == "" {
		return UIPreferences{}
	}

	data, err := os.ReadFile(prefsPath(configDir))
	if err != nil {
		return UIPreferences{}
	}

	var prefs UIPreferences
	if err := json.Unmarshal(data, &prefs); err != nil {
		return UIPreferences{}
	}
	return prefs
}

func saveUIPreferences(configDir string, prefs UIPreferences) error {
	if configDir == "" {
		return nil
	}

	if err := os.MkdirAll(configDir, 0700); err != nil {
		return fmt.Errorf("failed to create prefs dir: %w", err)
	}

	data, err := json.MarshalIndent(prefs, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal prefs: %w", err)
	}

	if err := os.WriteFile(prefsPath(configDir), data, 0644); err != nil {
		return fmt.Errorf("failed to write prefs: %w", err)
	}
	return nil
}
