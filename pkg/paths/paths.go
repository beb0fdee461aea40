// Package paths provides centralized path handling for rulesync.
// It implements XDG Base Directory specification compliance and
// provides a consistent API for all path operations in the codebase.
package paths

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
	"github.com/arthur-debert/rulesync/pkg/errors"
)

// Environment variable names
const (
	// EnvRulesFile overrides the location of the canonical rules document
	EnvRulesFile = "RULESYNC_RULES"

	// EnvConfigDir overrides the XDG config directory for rulesync
	EnvConfigDir = "RULESYNC_CONFIG_DIR"

	// EnvDataDir overrides the XDG data directory for rulesync
	EnvDataDir = "RULESYNC_DATA_DIR"
)

// Default directories and files
const (
	// DefaultRulesFile is the default name of the canonical rules document
	DefaultRulesFile = "agentic_rules.md"

	// AppDirName is the directory name for rulesync-specific files
	AppDirName = "rulesync"

	// ConfigFileName is the name of the configuration file
	ConfigFileName = "rulesync.toml"

	// LogFileName is the name of the log file
	LogFileName = "rulesync.log"
)

// Paths provides centralized path management for rulesync
type Paths interface {
	// RulesFile returns the absolute path of the canonical rules document
	RulesFile() string

	// ProjectRoot returns the directory of the rules document. Relative
	// destinations resolve against it.
	ProjectRoot() string

	// ConfigDir returns the XDG config directory for rulesync
	ConfigDir() string

	// DataDir returns the XDG data directory for rulesync
	DataDir() string

	// StateDir returns the XDG state directory for rulesync
	StateDir() string

	// LogFilePath returns the path of the log file
	LogFilePath() string

	// ResolveDest resolves a target destination: ~ expands to the user's
	// home, relative paths resolve against the project root.
	ResolveDest(dest string) string
}

type paths struct {
	rulesFile string
	xdgConfig string
	xdgData   string
	xdgState  string
}

// New creates a new Paths instance anchored at the given rules document.
// If rulesFile is empty, it is resolved from RULESYNC_RULES or falls back
// to agentic_rules.md in the current directory.
func New(rulesFile string) (Paths, error) {
	if rulesFile == "" {
		rulesFile = os.Getenv(EnvRulesFile)
	}
	if rulesFile == "" {
		rulesFile = DefaultRulesFile
	}

	absRules, err := filepath.Abs(ExpandHome(rulesFile))
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrInvalidInput,
			"failed to get absolute path for rules file %s", rulesFile)
	}

	p := &paths{rulesFile: absRules}
	p.setupXDGDirs()
	return p, nil
}

// setupXDGDirs initializes XDG directories, respecting environment overrides
func (p *paths) setupXDGDirs() {
	if configDir := os.Getenv(EnvConfigDir); configDir != "" {
		p.xdgConfig = ExpandHome(configDir)
	} else {
		p.xdgConfig = filepath.Join(xdg.ConfigHome, AppDirName)
	}

	if dataDir := os.Getenv(EnvDataDir); dataDir != "" {
		p.xdgData = ExpandHome(dataDir)
	} else {
		p.xdgData = filepath.Join(xdg.DataHome, AppDirName)
	}

	// XDG doesn't provide StateHome, so we check manually
	if stateDir := os.Getenv("XDG_STATE_HOME"); stateDir != "" {
		p.xdgState = filepath.Join(stateDir, AppDirName)
	} else {
		homeDir, _ := os.UserHomeDir()
		p.xdgState = filepath.Join(homeDir, ".local", "state", AppDirName)
	}
}

func (p *paths) RulesFile() string {
	return p.rulesFile
}

func (p *paths) ProjectRoot() string {
	return filepath.Dir(p.rulesFile)
}

func (p *paths) ConfigDir() string {
	return p.xdgConfig
}

func (p *paths) DataDir() string {
	return p.xdgData
}

func (p *paths) StateDir() string {
	return p.xdgState
}

func (p *paths) LogFilePath() string {
	return filepath.Join(p.xdgState, LogFileName)
}

func (p *paths) ResolveDest(dest string) string {
	dest = ExpandHome(dest)
	if filepath.IsAbs(dest) {
		return filepath.Clean(dest)
	}
	return filepath.Join(p.ProjectRoot(), dest)
}

// ConfigFileCandidates returns the config file locations in lookup order:
// dotted and plain names in the current directory, then the XDG config dir.
// YAML twins are accepted alongside the TOML names.
func ConfigFileCandidates() []string {
	candidates := []string{
		".rulesync.toml",
		"rulesync.toml",
		".rulesync.yaml",
		"rulesync.yaml",
	}

	configDir := os.Getenv(EnvConfigDir)
	if configDir == "" {
		configDir = filepath.Join(xdg.ConfigHome, AppDirName)
	}
	candidates = append(candidates,
		filepath.Join(configDir, "rulesync.toml"),
		filepath.Join(configDir, "rulesync.yaml"),
	)

	return candidates
}

// GetHomeDirectory returns the user's home directory
func GetHomeDirectory() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", errors.Wrap(err, errors.ErrNotFound, "failed to get home directory")
	}
	return home, nil
}

// ExpandHome expands a leading ~ to the user's home directory
func ExpandHome(path string) string {
	if path == "~" {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return home
	}
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(home, path[2:])
	}
	return path
}
