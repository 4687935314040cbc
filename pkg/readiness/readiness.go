// Package readiness polls the host app's API server until it answers
// an authenticated health request. This is the bootstrap subsystem's
// only source of truth for "the app is actually up": process control is
// best-effort and the connection-info file may be stale.
package readiness

import (
	"bytes"
	"net/http"
	"time"

	"github.com/benbjohnson/clock"

	"github.com/jpollock/local-addon-cli/pkg/connection"
	"github.com/jpollock/local-addon-cli/pkg/filesystem"
	"github.com/jpollock/local-addon-cli/pkg/logging"
	"github.com/jpollock/local-addon-cli/pkg/paths"
)

// healthBody is a minimal introspection query; any 2xx response counts
// as ready regardless of the body.
const healthBody = `{"query":"{ __typename }"}`

// Probe waits for the host app's API server to become reachable.
type Probe struct {
	fs     filesystem.FS
	paths  paths.PlatformPaths
	clock  clock.Clock
	client *http.Client
}

// New creates a readiness probe. requestTimeout bounds each individual
// health request and must stay well below the poll interval budget so a
// hung endpoint cannot eat the whole loop.
func New(fs filesystem.FS, pp paths.PlatformPaths, requestTimeout time.Duration) *Probe {
	return &Probe{
		fs:     fs,
		paths:  pp,
		clock:  clock.New(),
		client: &http.Client{Timeout: requestTimeout},
	}
}

// WithClock substitutes the clock, for tests.
func (p *Probe) WithClock(c clock.Clock) *Probe {
	p.clock = c
	return p
}

// WaitForReady polls until a health probe succeeds or timeout elapses.
// It returns true as soon as one attempt succeeds; it never waits out
// the rest of the budget. All failures (missing file, malformed JSON,
// refused connection, request timeout, non-2xx status) just mean "try
// again after the interval".
func (p *Probe) WaitForReady(timeout, interval time.Duration) bool {
	log := logging.GetLogger("readiness")
	deadline := p.clock.Now().Add(timeout)
	attempt := 0

	for {
		attempt++
		if p.CheckOnce() {
			log.Debug().Int("attempt", attempt).Msg("API server is ready")
			return true
		}
		if !p.clock.Now().Before(deadline) {
			log.Debug().Int("attempts", attempt).Dur("timeout", timeout).Msg("readiness budget exhausted")
			return false
		}
		p.clock.Sleep(interval)
	}
}

// CheckOnce performs a single authenticated health request against the
// endpoint described by the connection-info file. Returns false on any
// failure.
func (p *Probe) CheckOnce() bool {
	info, err := connection.Read(p.fs, p.paths.ConnectionInfoFile)
	if err != nil {
		return false
	}

	req, err := http.NewRequest(http.MethodPost, info.URL, bytes.NewBufferString(healthBody))
	if err != nil {
		return false
	}
	req.Header.Set("Content-Type", "application/json")
	if info.AuthToken != "" {
		req.Header.Set("Authorization", "Bearer "+info.AuthToken)
	}

	resp, err := p.client.Do(req)
	if err != nil {
		return false
	}
	defer func() { _ = resp.Body.Close() }()

	return resp.StatusCode >= 200 && resp.StatusCode < 300
}
