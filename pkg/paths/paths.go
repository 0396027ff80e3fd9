// Package paths provides centralized path handling for rigup.
// It follows the XDG Base Directory specification and lets each directory
// be overridden through the environment.
package paths

import (
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
)

// Environment variable names
const (
	// EnvConfigDir overrides the XDG config directory for rigup
	EnvConfigDir = "RIGUP_CONFIG_DIR"

	// EnvStateDir overrides the XDG state directory for rigup
	EnvStateDir = "RIGUP_STATE_DIR"

	// EnvHome is the standard home directory variable
	EnvHome = "HOME"
)

// Fixed names inside the rigup directories
const (
	// AppDirName is the directory name for rigup-specific files
	AppDirName = "rigup"

	// LockFileName guards against concurrent provisioning runs
	LockFileName = "rigup.lock"

	// LogFileName is the name of the diagnostic log file
	LogFileName = "rigup.log"
)

// ConfigFileNames are tried in order inside the config directory
var ConfigFileNames = []string{"config.toml", "config.yaml", "config.yml"}

// Paths resolves the locations rigup reads from and writes to
type Paths struct {
	configDir string
	stateDir  string
}

// New resolves the rigup directories from the environment
func New() *Paths {
	p := &Paths{}

	if dir := os.Getenv(EnvConfigDir); dir != "" {
		p.configDir = ExpandHome(dir)
	} else {
		p.configDir = filepath.Join(xdg.ConfigHome, AppDirName)
	}

	if dir := os.Getenv(EnvStateDir); dir != "" {
		p.stateDir = ExpandHome(dir)
	} else {
		p.stateDir = filepath.Join(xdg.StateHome, AppDirName)
	}

	return p
}

// ConfigDir returns the config directory for rigup
func (p *Paths) ConfigDir() string {
	return p.configDir
}

// StateDir returns the state directory for rigup
func (p *Paths) StateDir() string {
	return p.stateDir
}

// LockPath returns the path of the run lock file
func (p *Paths) LockPath() string {
	return filepath.Join(p.stateDir, LockFileName)
}

// LogFilePath returns the path of the diagnostic log
func (p *Paths) LogFilePath() string {
	return filepath.Join(p.stateDir, LogFileName)
}

// ConfigFile returns the first existing user config file, or "" if none
func (p *Paths) ConfigFile() string {
	for _, name := range ConfigFileNames {
		candidate := filepath.Join(p.configDir, name)
		if _, err := os.Stat(candidate); err == nil {
			return candidate
		}
	}
	return ""
}

// ExpandHome expands a leading ~ to the home directory
func ExpandHome(path string) string {
	if path == "" || path[0] != '~' {
		return path
	}

	homeDir := xdg.Home
	if env := os.Getenv(EnvHome); env != "" {
		homeDir = env
	}
	if homeDir == "" {
		return path
	}

	if len(path) == 1 {
		return homeDir
	}

	if path[1] == '/' || path[1] == filepath.Separator {
		return filepath.Join(homeDir, path[2:])
	}

	// ~user is not expanded
	return path
}
