package core

import (
	"fmt"
	"os"
	"path/filepath"
)

type Paths struct {
	DataDir     string
	LogFile     string
	GrammarFile string
}

var defaultPaths *Paths

func ensureDefaultPaths() error {
	if defaultPaths != nil {
		return nil
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return fmt.Errorf("failed to resolve home directory: %w", err)
	}

	dataDir := filepath.Join(homeDir, ".tabcomplete")
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return fmt.Errorf("failed to create data directory: %w", err)
	}

	defaultPaths = &Paths{
		DataDir:     dataDir,
		LogFile:     filepath.Join(dataDir, "tabcomplete.log"),
		GrammarFile: filepath.Join(dataDir, "grammar.yaml"),
	}
	return nil
}

func DataDir() (string, error) {
	if err := ensureDefaultPaths(); err != nil {
		return "", err
	}
	return defaultPaths.DataDir, nil
}

func LogFile() (string, error) {
	if err := ensureDefaultPaths(); err != nil {
		return "", err
	}
	return defaultPaths.LogFile, nil
}

// GrammarFile is the grammar used when none is configured explicitly. It
// does not have to exist.
func GrammarFile() (string, error) {
	if err := ensureDefaultPaths(); err != nil {
		return "", err
	}
	return defaultPaths.GrammarFile, nil
}

// ResetPaths clears the cached paths, forcing them to be reinitialized.
// This is primarily used for testing purposes.
func ResetPaths() {
	defaultPaths = nil
}
