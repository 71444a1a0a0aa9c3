package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// EnsureUserConfig returns the path of the per-data-dir config file,
// seeding it from the shipped default on first run. The seeded copy is
// the one the user edits; later runs never touch it again.
func EnsureUserConfig(dataDir string, defaultPath string) (string, error) {
	userPath := filepath.Join(dataDir, "config.yml")

	switch _, err := os.Stat(userPath); {
	case err == nil:
		return userPath, nil
	case !errors.Is(err, os.ErrNotExist):
		return "", fmt.Errorf("stat %s: %w", userPath, err)
	}

	def, err := os.ReadFile(defaultPath)
	if err != nil {
		return "", fmt.Errorf("read default config %s: %w", defaultPath, err)
	}
	if err := os.WriteFile(userPath, def, 0o644); err != nil {
		return "", fmt.Errorf("seed %s: %w", userPath, err)
	}
	return userPath, nil
}
