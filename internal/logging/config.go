package logging

import (
	"fmt"
	"os"
	"path/filepath"
)

// Config controls logger initialization.
type Config struct {
	// Enabled toggles file logging entirely.
	Enabled bool
	// Level is the minimum level to record: debug, info, warn, error.
	Level string
	// MaxFiles is how many rotated log files to keep.
	MaxFiles int
}

// DefaultConfig returns the standard logging configuration.
func DefaultConfig() Config {
	return Config{Enabled: true, Level: "info", MaxFiles: 5}
}

// LogDir returns the directory where log files are written, creating it
// if needed. Respects XDG_STATE_HOME.
func LogDir() (string, error) {
	stateHome := os.Getenv("XDG_STATE_HOME")
	if stateHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("cannot resolve home directory: %w", err)
		}
		stateHome = filepath.Join(home, ".local", "state")
	}
	dir := filepath.Join(stateHome, "birdie", "logs")
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("cannot create log directory: %w", err)
	}
	return dir, nil
}
