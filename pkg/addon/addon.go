// Package addon manages the CLI companion addon inside the host app:
// probing its install/activation state, installing it from a packaged
// release (with a development-symlink fallback), and flipping the
// activation flag the host app consults at startup.
package addon

import (
	"os"
	"path/filepath"

	"github.com/jpollock/local-addon-cli/pkg/filesystem"
	"github.com/jpollock/local-addon-cli/pkg/paths"
)

const (
	// PackageID is the addon's package identifier, used as the key in
	// the activation flags file.
	PackageID = "@jpollock/local-addon-cli"

	// DirName is the addon's directory name under the addons dir.
	DirName = "local-addon-cli"

	// ArchiveExt identifies the packaged release asset.
	ArchiveExt = ".tgz"
)

// State describes the addon as found on disk right now. It is derived,
// never stored: existence of the addon directory (or symlink) means
// installed, and the flags file key being exactly true means activated.
type State struct {
	Installed bool
	Activated bool
}

// Probe computes addon state from the filesystem.
type Probe struct {
	fs    filesystem.FS
	paths paths.PlatformPaths
}

// NewProbe creates a state probe over the given platform paths.
func NewProbe(fs filesystem.FS, pp paths.PlatformPaths) *Probe {
	return &Probe{fs: fs, paths: pp}
}

// InstallDir returns the addon's install location.
func (p *Probe) InstallDir() string {
	return filepath.Join(p.paths.AddonsDir, DirName)
}

// State recomputes the addon state fresh from disk.
func (p *Probe) State() State {
	return State{
		Installed: p.IsInstalled(),
		Activated: p.IsActivated(),
	}
}

// IsInstalled reports whether the addon directory exists, as either a
// real directory (packaged install) or a symlink (development install).
func (p *Probe) IsInstalled() bool {
	info, err := p.fs.Lstat(p.InstallDir())
	if err != nil {
		return false
	}
	return info.IsDir() || info.Mode()&os.ModeSymlink != 0
}

// IsActivated reports whether the activation flags file marks the addon
// enabled. Missing, unreadable or malformed files all read as false.
func (p *Probe) IsActivated() bool {
	flags, err := readFlags(p.fs, p.paths.ActivationFlagsFile)
	if err != nil {
		return false
	}
	return flags[PackageID]
}
