package cli

import (
	"os"
	"path/filepath"
)

// Paths locates the per-app directories under the home directory.
type Paths struct {
	// AppName is the application name
	AppName string

	// HomeDir is the user's home directory
	HomeDir string
}

// NewPaths creates a new Paths instance for the given app
func NewPaths(appName string) (*Paths, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, err
	}
	return &Paths{AppName: appName, HomeDir: home}, nil
}

// AppDir returns ~/.google-clients/<app>.
func (p *Paths) AppDir() string {
	return filepath.Join(p.HomeDir, DefaultBaseDir, p.AppName)
}

// ConfigFile returns ~/.google-clients/<app>/config.yaml.
func (p *Paths) ConfigFile() string {
	return filepath.Join(p.AppDir(), DefaultConfigFile)
}

// HistoryDir returns the generation history database directory.
func (p *Paths) HistoryDir() string {
	return filepath.Join(p.AppDir(), "data", "history")
}

// EnsureHistoryDir creates HistoryDir if it doesn't exist.
func (p *Paths) EnsureHistoryDir() error {
	return os.MkdirAll(p.HistoryDir(), 0755)
}
