// Package vault resolves where shot keeps its data and configuration.
//
// Data (archive, draft, database, log) lives under $XDG_DATA_HOME/shot and
// the config file under $XDG_CONFIG_HOME/shot. Without the XDG variables the
// usual per-platform fallbacks apply.
package vault

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

const (
	appName        = "shot"
	configFileName = "config.yaml"
)

// File names inside the vault root.
const (
	archiveDirName = "archive"
	draftFileName  = "draft.yaml"
	dbFileName     = "shot.db"
	logFileName    = "shot.log"
)

// Vault holds the resolved locations for one shot installation.
type Vault struct {
	RootPath    string
	ArchivePath string
	ConfigPath  string
}

func New() (*Vault, error) {
	root, err := baseDir("XDG_DATA_HOME", appName, ".local", "share")
	if err != nil {
		return nil, fmt.Errorf("failed to determine vault root: %w", err)
	}
	confDir, err := baseDir("XDG_CONFIG_HOME", appName+"-config", ".config")
	if err != nil {
		return nil, fmt.Errorf("failed to determine config path: %w", err)
	}
	return NewAt(root, filepath.Join(confDir, configFileName)), nil
}

// NewAt builds a Vault from explicit locations; tests use it to stay in a
// temp dir.
func NewAt(rootPath, configPath string) *Vault {
	return &Vault{
		RootPath:    rootPath,
		ArchivePath: filepath.Join(rootPath, archiveDirName),
		ConfigPath:  configPath,
	}
}

// baseDir picks the shot directory for one XDG category. xdgVar wins when
// set, then %APPDATA%/<appDataName>, then ~/<homeRel...>/shot.
func baseDir(xdgVar, appDataName string, homeRel ...string) (string, error) {
	if dir := os.Getenv(xdgVar); dir != "" {
		return filepath.Join(dir, appName), nil
	}
	if dir := os.Getenv("APPDATA"); dir != "" {
		return filepath.Join(dir, appDataName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	parts := append([]string{home}, homeRel...)
	return filepath.Join(append(parts, appName)...), nil
}

// Initialize creates the root and archive directories. Running it on an
// existing vault is a no-op.
func (v *Vault) Initialize() error {
	if err := os.MkdirAll(v.ArchivePath, 0o755); err != nil {
		return fmt.Errorf("failed to create vault at %s: %w", v.RootPath, err)
	}
	return nil
}

// Exists reports whether the root is an existing directory.
func (v *Vault) Exists() bool {
	info, err := os.Stat(v.RootPath)
	return err == nil && info.IsDir()
}

// HasConfig reports whether a config file has been written. A missing file
// means defaults are in effect.
func (v *Vault) HasConfig() bool {
	_, err := os.Stat(v.ConfigPath)
	return !errors.Is(err, os.ErrNotExist)
}

func (v *Vault) DraftPath() string    { return filepath.Join(v.RootPath, draftFileName) }
func (v *Vault) DatabasePath() string { return filepath.Join(v.RootPath, dbFileName) }
func (v *Vault) LogPath() string      { return filepath.Join(v.RootPath, logFileName) }
