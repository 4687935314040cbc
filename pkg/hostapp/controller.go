package hostapp

import (
	"strings"
	"time"

	"github.com/benbjohnson/clock"

	"github.com/jpollock/local-addon-cli/pkg/logging"
	"github.com/jpollock/local-addon-cli/pkg/paths"
)

// Controller starts, stops and restarts the host app process using
// platform-appropriate mechanisms.
type Controller struct {
	paths  paths.PlatformPaths
	goos   string
	runner commandRunner
	clock  clock.Clock

	// settle is the delay between stop and start during Restart, giving
	// the host app time to release its port and flag files.
	settle time.Duration
}

// NewController creates a process controller for the given platform.
func NewController(pp paths.PlatformPaths, goos string, settle time.Duration) *Controller {
	return &Controller{
		paths:  pp,
		goos:   goos,
		runner: execRunner{},
		clock:  clock.New(),
		settle: settle,
	}
}

// IsRunning reports whether the host app process is currently running.
// Lookup errors read as false.
func (c *Controller) IsRunning() bool {
	log := logging.GetLogger("hostapp.controller")

	switch c.goos {
	case "darwin", "linux":
		// pgrep exits 1 when nothing matches
		err := c.runner.Run("pgrep", "-x", c.paths.AppProcessName)
		return err == nil
	case "windows":
		out, err := c.runner.Output("tasklist", "/FI", "IMAGENAME eq "+c.paths.AppProcessName, "/NH")
		if err != nil {
			log.Debug().Err(err).Msg("tasklist lookup failed")
			return false
		}
		return strings.Contains(string(out), c.paths.AppProcessName)
	}
	return false
}

// Start launches the host app in the background without blocking on its
// startup. Launch failures are logged and swallowed: an "already
// running" error must not derail the orchestrator, and the readiness
// probe afterward is the source of truth either way.
func (c *Controller) Start() {
	log := logging.GetLogger("hostapp.controller")

	var err error
	switch c.goos {
	case "darwin":
		// -g keeps the app from stealing focus
		err = c.runner.Run("open", "-g", "-a", paths.AppDirName)
	case "windows":
		err = c.runner.Run("cmd", "/c", "start", "/min", "", c.paths.AppExecutablePath)
	case "linux":
		// mirror the install probe: a PATH install wins over the fixed
		// package path
		executable := c.paths.AppExecutablePath
		if resolved, lookErr := c.runner.LookPath(c.paths.AppProcessName); lookErr == nil {
			executable = resolved
		}
		err = c.runner.StartDetached(executable)
	}

	if err != nil {
		log.Debug().Err(err).Msg("host app launch reported an error (ignored)")
	}
}

// Stop terminates the host app process. Failures are swallowed; the app
// may already be stopped.
func (c *Controller) Stop() {
	log := logging.GetLogger("hostapp.controller")

	var err error
	switch c.goos {
	case "darwin", "linux":
		err = c.runner.Run("pkill", "-x", c.paths.AppProcessName)
	case "windows":
		err = c.runner.Run("taskkill", "/F", "/IM", c.paths.AppProcessName)
	}

	if err != nil {
		log.Debug().Err(err).Msg("host app stop reported an error (ignored)")
	}
}

// Restart stops the host app, waits a fixed settle delay, then starts
// it again. Used when an addon activation requires the app to reload
// its extension set.
func (c *Controller) Restart() {
	c.Stop()
	c.clock.Sleep(c.settle)
	c.Start()
}
