package commands

import (
	"os"
	"path/filepath"

	"github.com/rs/zerolog"

	"azaymonitor/internal/logging"
)

// Flags are the global options shared by every command.
type Flags struct {
	LogLevel   string
	LogFile    string
	ConfigPath string
	DataDir    string
}

// DefaultConfigPath returns the default config file path using XDG_CONFIG_HOME.
func DefaultConfigPath() string {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, _ := os.UserHomeDir()
		configHome = filepath.Join(home, ".config")
	}
	return filepath.Join(configHome, "azaymonitor", "config.yaml")
}

// DefaultDataDir returns the default data directory using XDG_DATA_HOME.
func DefaultDataDir() string {
	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, _ := os.UserHomeDir()
		dataHome = filepath.Join(home, ".local", "share")
	}
	return filepath.Join(dataHome, "azaymonitor")
}

// StatePath is the SQLite file holding the persisted reminder slot.
func (f *Flags) StatePath() string { return filepath.Join(f.DataDir, "state.db") }

// Logger opens the configured log. An empty --log-file falls back to
// fallback, and an empty fallback logs to the console.
func (f *Flags) Logger(fallback string) (zerolog.Logger, func(), error) {
	file := f.LogFile
	if file == "" {
		file = fallback
	}
	return logging.New(f.LogLevel, file)
}
