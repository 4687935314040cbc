package hostapp

import (
	"github.com/jpollock/local-addon-cli/pkg/filesystem"
	"github.com/jpollock/local-addon-cli/pkg/logging"
	"github.com/jpollock/local-addon-cli/pkg/paths"
)

// Probe answers "is the host app installed" from filesystem state.
type Probe struct {
	fs     filesystem.FS
	paths  paths.PlatformPaths
	goos   string
	runner commandRunner
}

// NewProbe creates an installation probe for the given platform paths.
func NewProbe(fs filesystem.FS, pp paths.PlatformPaths, goos string) *Probe {
	return &Probe{fs: fs, paths: pp, goos: goos, runner: execRunner{}}
}

// IsAppInstalled reports whether the host app executable can be found.
// On linux the process name is looked up on PATH first, since distro
// packages install outside the fixed location. Never returns an error:
// any lookup or filesystem failure reads as "not installed".
func (p *Probe) IsAppInstalled() bool {
	log := logging.GetLogger("hostapp.probe")

	if p.goos == "linux" {
		if path, err := p.runner.LookPath(p.paths.AppProcessName); err == nil {
			log.Debug().Str("path", path).Msg("host app found on PATH")
			return true
		}
	}

	info, err := p.fs.Stat(p.paths.AppExecutablePath)
	if err != nil {
		log.Debug().Str("path", p.paths.AppExecutablePath).Msg("host app executable not found")
		return false
	}
	return !info.IsDir()
}
