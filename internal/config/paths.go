package config

import (
	"os"
	"os/user"
	"path/filepath"
)

// EnvHome overrides the default base directory.
const EnvHome = "HOMELAB_HOME"

// Paths holds all standard path locations for the homelab CLI
type Paths struct {
	ProjectDir string // Directory holding the Compose files
	BaseDir    string // Base directory for runtime state
}

// NewPaths creates a new Paths instance
// projectDir: directory with docker-compose.yml (empty means unknown)
// baseDir: base directory (empty string uses default)
func NewPaths(projectDir, baseDir string) *Paths {
	if baseDir == "" {
		baseDir = DefaultBaseDir()
	}
	return &Paths{
		ProjectDir: projectDir,
		BaseDir:    baseDir,
	}
}

// DefaultBaseDir returns ${HOMELAB_HOME:-$HOME/.homelab}
func DefaultBaseDir() string {
	if dir := os.Getenv(EnvHome); dir != "" {
		return dir
	}

	home := os.Getenv("HOME")
	if home == "" {
		// Fallback to user.Current if HOME not set
		if currentUser, err := user.Current(); err == nil {
			home = currentUser.HomeDir
		}
	}

	return filepath.Join(home, ".homelab")
}

// StateDir returns the state directory: $BASE_DIR/state
func (p *Paths) StateDir() string {
	return filepath.Join(p.BaseDir, "state")
}

// SettingsDir returns the settings directory: $BASE_DIR/settings
func (p *Paths) SettingsDir() string {
	return filepath.Join(p.BaseDir, "settings")
}

// SettingsFile returns the settings file path: $BASE_DIR/settings/setting.json
func (p *Paths) SettingsFile() string {
	return filepath.Join(p.SettingsDir(), "setting.json")
}

// ConfDir returns the configuration directory: $BASE_DIR/conf
func (p *Paths) ConfDir() string {
	return filepath.Join(p.BaseDir, "conf")
}

// CatalogFile returns the catalog overlay: $BASE_DIR/conf/catalog.yaml
func (p *Paths) CatalogFile() string {
	return filepath.Join(p.ConfDir(), "catalog.yaml")
}

// LogsDir returns $BASE_DIR/logs
func (p *Paths) LogsDir() string {
	return filepath.Join(p.BaseDir, "logs")
}

// LogFile returns the operations log: $BASE_DIR/logs/homelab.log
func (p *Paths) LogFile() string {
	return filepath.Join(p.LogsDir(), "homelab.log")
}

// ServicePaths holds paths for a background process managed by the CLI
type ServicePaths struct {
	StateDir string
	LogsDir  string
	PidsDir  string
}

// ServiceStateDir returns paths for a specific managed process (e.g. "dashboard")
func (p *Paths) ServiceStateDir(service string) *ServicePaths {
	baseStateDir := filepath.Join(p.StateDir(), service)
	return &ServicePaths{
		StateDir: baseStateDir,
		LogsDir:  filepath.Join(baseStateDir, "logs"),
		PidsDir:  filepath.Join(baseStateDir, "pids"),
	}
}

// DashboardPaths returns the dashboard's PID and log locations
func (p *Paths) DashboardPaths() *ServicePaths {
	return p.ServiceStateDir("dashboard")
}
