package settings

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
)

// File permission constants.
const (
	fileModeDir  os.FileMode = 0755
	fileModeFile os.FileMode = 0644

	settingsFilename = "settings.toml"
)

// Path returns the filesystem path of the settings file. The
// BIRDIE_CONFIG_DIR environment variable overrides the XDG default.
func Path() (string, error) {
	if override := os.Getenv("BIRDIE_CONFIG_DIR"); override != "" {
		return filepath.Join(override, settingsFilename), nil
	}
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("cannot resolve home directory: %w", err)
		}
		configHome = filepath.Join(home, ".config")
	}
	return filepath.Join(configHome, "birdie", settingsFilename), nil
}

// Load reads the settings file, returning normalized defaults when it
// does not exist yet.
func Load() (Settings, error) {
	path, err := Path()
	if err != nil {
		return Default(), err
	}
	return LoadFrom(path)
}

// LoadFrom reads and normalizes settings from an explicit path.
func LoadFrom(path string) (Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Default(), nil
		}
		return Default(), fmt.Errorf("read settings file: %w", err)
	}
	var s Settings
	if err := toml.Unmarshal(data, &s); err != nil {
		return Default(), fmt.Errorf("parse settings file: %w", err)
	}
	s.Normalize()
	return s, nil
}

// Save writes the settings to the default location.
func Save(s Settings) error {
	path, err := Path()
	if err != nil {
		return err
	}
	return SaveTo(path, s)
}

// SaveTo writes the settings as TOML to an explicit path, creating the
// parent directory if needed.
func SaveTo(path string, s Settings) error {
	if err := os.MkdirAll(filepath.Dir(path), fileModeDir); err != nil {
		return fmt.Errorf("create settings directory: %w", err)
	}
	data, err := toml.Marshal(s)
	if err != nil {
		return fmt.Errorf("encode settings: %w", err)
	}
	if err := os.WriteFile(path, data, fileModeFile); err != nil {
		return fmt.Errorf("write settings file: %w", err)
	}
	return nil
}
