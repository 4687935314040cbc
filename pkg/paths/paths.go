// Package paths provides centralized path handling for local-cli.
// It computes the platform-specific locations owned by the Local host
// app (data dir, addons dir, activation flags, connection info) and the
// CLI's own XDG directories. Values are cheap to recompute and are never
// cached across calls, so environment overrides always take effect.
package paths

import (
	"os"
	"path/filepath"
	"runtime"

	"github.com/adrg/xdg"
	"github.com/jpollock/local-addon-cli/pkg/errors"
)

// Environment variable names
const (
	// EnvDataDir overrides the host app data directory
	EnvDataDir = "LOCAL_CLI_DATA_DIR"

	// EnvConfigDir overrides the XDG config directory for local-cli
	EnvConfigDir = "LOCAL_CLI_CONFIG_DIR"

	// EnvHome is the standard home directory variable
	EnvHome = "HOME"
)

// File and directory names inside the host app's data directory.
// These are fixed by the host app itself and are not user-configurable.
const (
	// AppDirName is the host app's data directory name
	AppDirName = "Local"

	// AddonsDirName is the subdirectory holding installed addons
	AddonsDirName = "addons"

	// ActivationFlagsFileName maps addon package id -> enabled flag
	ActivationFlagsFileName = "enabled-addons.json"

	// ConnectionInfoFileName is written by the host app once its
	// GraphQL server is listening
	ConnectionInfoFileName = "connection-info.json"

	// CLIDirName is the directory name for local-cli's own files
	CLIDirName = "local-cli"
)

// PlatformPaths holds every filesystem location the bootstrap subsystem
// touches. Immutable once computed.
type PlatformPaths struct {
	// DataDir is the host app's data directory
	DataDir string

	// AddonsDir is where addons are installed (real dirs or symlinks)
	AddonsDir string

	// ActivationFlagsFile is the enabled-addons.json path
	ActivationFlagsFile string

	// ConnectionInfoFile is the connection-info.json path
	ConnectionInfoFile string

	// AppExecutablePath is the fixed install location of the host app
	AppExecutablePath string

	// AppProcessName is the process name used for lookup and termination
	AppProcessName string
}

// New computes PlatformPaths for the current OS and user.
func New() (PlatformPaths, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		if home = os.Getenv(EnvHome); home == "" {
			return PlatformPaths{}, errors.Wrap(err, errors.ErrFileAccess, "failed to determine home directory")
		}
	}
	return NewForOS(runtime.GOOS, home)
}

// NewForOS computes PlatformPaths for the given OS family and home
// directory. Only darwin, windows and linux are supported; any other
// family is fatal and not retried.
func NewForOS(goos, home string) (PlatformPaths, error) {
	var dataDir, execPath, procName string

	switch goos {
	case "darwin":
		dataDir = filepath.Join(home, "Library", "Application Support", AppDirName)
		execPath = "/Applications/Local.app/Contents/MacOS/Local"
		procName = "Local"
	case "windows":
		appData := os.Getenv("APPDATA")
		if appData == "" {
			appData = filepath.Join(home, "AppData", "Roaming")
		}
		programFiles := os.Getenv("ProgramFiles")
		if programFiles == "" {
			programFiles = `C:\Program Files`
		}
		dataDir = filepath.Join(appData, AppDirName)
		execPath = filepath.Join(programFiles, AppDirName, "Local.exe")
		procName = "Local.exe"
	case "linux":
		dataDir = filepath.Join(home, ".config", AppDirName)
		execPath = "/opt/Local/local"
		procName = "local"
	default:
		return PlatformPaths{}, errors.Newf(errors.ErrUnsupportedPlatform,
			"unsupported platform %q (supported: darwin, windows, linux)", goos)
	}

	if override := os.Getenv(EnvDataDir); override != "" {
		dataDir = expandHome(override, home)
	}

	return PlatformPaths{
		DataDir:             dataDir,
		AddonsDir:           filepath.Join(dataDir, AddonsDirName),
		ActivationFlagsFile: filepath.Join(dataDir, ActivationFlagsFileName),
		ConnectionInfoFile:  filepath.Join(dataDir, ConnectionInfoFileName),
		AppExecutablePath:   execPath,
		AppProcessName:      procName,
	}, nil
}

// ConfigDir returns the CLI's own config directory, respecting
// LOCAL_CLI_CONFIG_DIR.
func ConfigDir() string {
	if dir := os.Getenv(EnvConfigDir); dir != "" {
		return ExpandHome(dir)
	}
	return filepath.Join(xdg.ConfigHome, CLIDirName)
}

// StateDir returns the CLI's own state directory (log files).
func StateDir() string {
	return filepath.Join(xdg.StateHome, CLIDirName)
}

// ExpandHome expands a leading ~ to the user's home directory.
func ExpandHome(path string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		if home = os.Getenv(EnvHome); home == "" {
			return path
		}
	}
	return expandHome(path, home)
}

func expandHome(path, home string) string {
	if path == "" || path[0] != '~' {
		return path
	}
	if len(path) == 1 {
		return home
	}
	if path[1] == '/' || path[1] == filepath.Separator {
		return filepath.Join(home, path[2:])
	}
	// ~something (not the user's home)
	return path
}
