package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/mrz1836/spectree/internal/constants"
	"github.com/mrz1836/spectree/internal/errors"
)

// GlobalConfigDir returns the path to the global spectree configuration directory.
// This is typically ~/.spectree on Unix systems.
//
// Returns an error if the home directory cannot be determined.
func GlobalConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", errors.Wrap(err, "failed to get home directory")
	}
	return filepath.Join(home, constants.SpectreeHome), nil
}

// GlobalConfigPath returns the full path to the global configuration file.
// This is typically ~/.spectree/config.yaml on Unix systems.
//
// Returns an error if the home directory cannot be determined.
func GlobalConfigPath() (string, error) {
	dir, err := GlobalConfigDir()
	if err != nil {
		return "", fmt.Errorf("get global config path: %w", err)
	}
	return filepath.Join(dir, constants.GlobalConfigName), nil
}

// ProjectConfigPath returns the relative path to the project configuration file.
// This is always .spectree.yaml at the project root. The run directory
// (.spectree) deliberately holds no config so adapters can wipe it per run.
func ProjectConfigPath() string {
	return constants.ProjectConfigName
}
