// Package bootstrap sequences the checks that turn "user typed a
// command" into "a valid, authenticated HTTP endpoint is available":
// installation probes, addon install/activation, process control and
// readiness polling. All steps run sequentially on a single control
// flow; no collaborator calls back into the orchestrator.
package bootstrap

import (
	"time"

	"github.com/google/uuid"

	"github.com/jpollock/local-addon-cli/pkg/addon"
	"github.com/jpollock/local-addon-cli/pkg/config"
	"github.com/jpollock/local-addon-cli/pkg/connection"
	"github.com/jpollock/local-addon-cli/pkg/errors"
	"github.com/jpollock/local-addon-cli/pkg/filesystem"
	"github.com/jpollock/local-addon-cli/pkg/hostapp"
	"github.com/jpollock/local-addon-cli/pkg/logging"
	"github.com/jpollock/local-addon-cli/pkg/paths"
	"github.com/jpollock/local-addon-cli/pkg/readiness"
)

// DownloadURL is where users get the host app when it is missing.
const DownloadURL = "https://localwp.com/releases"

// AppProbe answers whether the host app is installed.
type AppProbe interface {
	IsAppInstalled() bool
}

// AddonEnsurer converges the addon to installed-and-activated.
type AddonEnsurer interface {
	Ensure(addon.StatusFunc) (needsRestart bool, err error)
}

// ProcessController controls the host app process, best-effort.
type ProcessController interface {
	IsRunning() bool
	Start()
	Restart()
}

// ReadinessWaiter polls the API server until ready or timeout.
type ReadinessWaiter interface {
	WaitForReady(timeout, interval time.Duration) bool
}

// Options tunes a single bootstrap run.
type Options struct {
	// SkipAddon bypasses the addon ensure step entirely.
	SkipAddon bool

	// OnStatus receives each action line as it is appended.
	OnStatus addon.StatusFunc
}

// Result describes one orchestration run. It is constructed once and
// never mutated after return.
type Result struct {
	Success        bool             `json:"success"`
	ConnectionInfo *connection.Info `json:"connectionInfo,omitempty"`
	Error          string           `json:"error,omitempty"`
	Actions        []string         `json:"actions"`

	// Err carries the typed error behind Error for callers that branch
	// on error codes.
	Err error `json:"-"`
}

// Orchestrator owns the bootstrap state machine. It holds explicit
// collaborator instances rather than package-level state, so tests can
// substitute fakes for any of them.
type Orchestrator struct {
	probe     AppProbe
	installer AddonEnsurer
	process   ProcessController
	ready     ReadinessWaiter
	fs        filesystem.FS
	paths     paths.PlatformPaths
	cfg       config.Config
}

// New wires an orchestrator with production collaborators for the
// current platform.
func New(fs filesystem.FS, pp paths.PlatformPaths, goos string, cfg config.Config) *Orchestrator {
	return NewWithComponents(
		hostapp.NewProbe(fs, pp, goos),
		addon.NewInstaller(fs, pp, cfg.ReleasesURL),
		hostapp.NewController(pp, goos, cfg.RestartSettle),
		readiness.New(fs, pp, cfg.RequestTimeout),
		fs, pp, cfg,
	)
}

// NewWithComponents wires an orchestrator with explicit collaborators.
func NewWithComponents(probe AppProbe, installer AddonEnsurer, process ProcessController,
	ready ReadinessWaiter, fs filesystem.FS, pp paths.PlatformPaths, cfg config.Config) *Orchestrator {
	return &Orchestrator{
		probe:     probe,
		installer: installer,
		process:   process,
		ready:     ready,
		fs:        fs,
		paths:     pp,
		cfg:       cfg,
	}
}

// Bootstrap runs the end-to-end procedure:
//
//	CheckInstalled -> EnsureAddon -> CheckRunning -> (StartOrRestart)?
//	-> WaitForReady -> ReadConnectionInfo -> Done | Failed
//
// Every transition appends a line to the action log, so a failed run
// still reports what was attempted. Nothing is retried here beyond the
// polling internal to WaitForReady.
func (o *Orchestrator) Bootstrap(opts Options) *Result {
	log := logging.GetLogger("bootstrap").With().Str("run", uuid.NewString()).Logger()
	result := &Result{}

	note := func(line string) {
		result.Actions = append(result.Actions, line)
		if opts.OnStatus != nil {
			opts.OnStatus(line)
		}
		log.Info().Msg(line)
	}
	fail := func(err error) *Result {
		result.Err = err
		result.Error = err.Error()
		log.Error().Err(err).Msg("bootstrap failed")
		return result
	}

	note("Checking host app installation…")
	if !o.probe.IsAppInstalled() {
		return fail(errors.Newf(errors.ErrAppNotInstalled,
			"the host app is not installed; download it from %s", DownloadURL))
	}

	needsRestart := false
	if opts.SkipAddon {
		note("Skipping addon check…")
	} else {
		note("Ensuring CLI addon is installed and enabled…")
		restart, err := o.installer.Ensure(opts.OnStatus)
		if err != nil {
			return fail(err)
		}
		needsRestart = restart
	}

	note("Checking whether host app is running…")
	running := o.process.IsRunning()

	// Restarting a not-yet-running app is wasted work, but skipping the
	// restart after an activation change on a running app would leave
	// the addon unloaded. Preserve that asymmetry.
	switch {
	case needsRestart && running:
		note("Restarting host app to load the addon…")
		o.process.Restart()
	case !running:
		note("Starting host app…")
		o.process.Start()
	}

	note("Waiting for API server…")
	if !o.ready.WaitForReady(o.cfg.ReadinessTimeout, o.cfg.PollInterval) {
		return fail(errors.Newf(errors.ErrReadinessTimeout,
			"timed out after %s waiting for the API server; check that the host app is running",
			o.cfg.ReadinessTimeout))
	}

	note("Reading connection info…")
	info, err := connection.Read(o.fs, o.paths.ConnectionInfoFile)
	if err != nil {
		// A successful probe immediately followed by an unreadable file
		// is a genuine inconsistency; surface it, don't retry.
		return fail(errors.Wrap(err, errors.ErrConnectionInfo,
			"API server answered but connection info is unreadable"))
	}

	note("Connected to " + info.URL)
	result.Success = true
	result.ConnectionInfo = &info
	return result
}
