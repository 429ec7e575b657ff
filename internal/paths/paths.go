package paths

import (
	"os"
	"path/filepath"
)

const (
	appDirName = "cmdtree"

	// ConfigEnv overrides the config file location.
	ConfigEnv = "CMDTREE_CONFIG"
)

// AppDataDir returns the application data directory for the log, the
// history database and the console history.
// Uses os.UserConfigDir() which returns:
//   - macOS: ~/Library/Application Support
//   - Linux: $XDG_CONFIG_HOME or ~/.config
//   - Windows: %AppData% (roaming)
func AppDataDir() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "."
	}

	path := filepath.Join(dir, appDirName)

	// Use restrictive permissions for application data
	_ = os.MkdirAll(path, 0700)

	return path
}

// ConfigFilePath returns $CMDTREE_CONFIG when set, otherwise ~/.cmdtreerc.
func ConfigFilePath() (string, error) {
	if p := os.Getenv(ConfigEnv); p != "" {
		return p, nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}

	return filepath.Join(home, ".cmdtreerc"), nil
}

// LogFilePath returns the path to the application log file.
func LogFilePath() string {
	return filepath.Join(AppDataDir(), "cmdtree.log")
}

// DBPath returns the path to the command history database.
func DBPath() string {
	return filepath.Join(AppDataDir(), "history.db")
}

// ReadlineHistoryPath returns the file the line console keeps its
// input history in.
func ReadlineHistoryPath() string {
	return filepath.Join(AppDataDir(), "readline_history")
}
