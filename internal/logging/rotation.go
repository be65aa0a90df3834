package logging

import (
	"os"
	"path/filepath"
	"sort"
)

// rotate removes the oldest log files so at most maxFiles-1 remain
// before a new file is created. maxFiles <= 0 disables rotation.
func rotate(logDir string, maxFiles int) error {
	if maxFiles <= 0 {
		return nil
	}
	entries, err := filepath.Glob(filepath.Join(logDir, "birdie_*.log"))
	if err != nil {
		return err
	}
	if len(entries) < maxFiles {
		return nil
	}
	// File names embed the creation timestamp, so lexical order is
	// chronological order.
	sort.Strings(entries)
	for _, stale := range entries[:len(entries)-maxFiles+1] {
		if err := os.Remove(stale); err != nil {
			return err
		}
	}
	return nil
}
