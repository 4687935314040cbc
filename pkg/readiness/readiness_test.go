package readiness

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"strconv"
	"sync/atomic"
	"testing"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jpollock/local-addon-cli/pkg/filesystem"
	"github.com/jpollock/local-addon-cli/pkg/paths"
)

func testPaths(dataDir string) paths.PlatformPaths {
	return paths.PlatformPaths{
		DataDir:            dataDir,
		ConnectionInfoFile: filepath.Join(dataDir, paths.ConnectionInfoFileName),
	}
}

// writeConnInfo points the connection-info file at an httptest server.
func writeConnInfo(t *testing.T, fs filesystem.FS, pp paths.PlatformPaths, serverURL, token string) {
	t.Helper()

	parsed, err := url.Parse(serverURL)
	require.NoError(t, err)
	port, err := strconv.Atoi(parsed.Port())
	require.NoError(t, err)

	data, err := json.Marshal(map[string]interface{}{
		"port":      port,
		"url":       serverURL,
		"authToken": token,
	})
	require.NoError(t, err)
	require.NoError(t, fs.WriteFile(pp.ConnectionInfoFile, data, 0644))
}

// drive advances the mock clock until WaitForReady returns.
func drive(t *testing.T, mock *clock.Mock, interval time.Duration, wait func() bool) bool {
	t.Helper()

	done := make(chan bool, 1)
	go func() { done <- wait() }()

	deadline := time.Now().Add(10 * time.Second)
	for {
		select {
		case ready := <-done:
			return ready
		default:
			if time.Now().After(deadline) {
				t.Fatal("WaitForReady did not return")
			}
			mock.Add(interval)
			time.Sleep(time.Millisecond)
		}
	}
}

func TestWaitForReadyTimesOutWithoutConnectionInfo(t *testing.T) {
	fs := filesystem.NewMemory()
	pp := testPaths("/data/Local")
	mock := clock.NewMock()
	probe := New(fs, pp, 100*time.Millisecond).WithClock(mock)

	start := mock.Now()
	ready := drive(t, mock, 500*time.Millisecond, func() bool {
		return probe.WaitForReady(30*time.Second, 500*time.Millisecond)
	})

	assert.False(t, ready)
	// bounded by timeout plus a poll interval or two of slack
	assert.LessOrEqual(t, mock.Now().Sub(start), 35*time.Second)
}

func TestWaitForReadyReturnsPromptlyOnSuccess(t *testing.T) {
	var requests atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if requests.Add(1) < 3 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	t.Cleanup(server.Close)

	fs := filesystem.NewMemory()
	pp := testPaths("/data/Local")
	writeConnInfo(t, fs, pp, server.URL, "")

	mock := clock.NewMock()
	probe := New(fs, pp, time.Second).WithClock(mock)

	start := mock.Now()
	ready := drive(t, mock, 500*time.Millisecond, func() bool {
		return probe.WaitForReady(30*time.Second, 500*time.Millisecond)
	})

	assert.True(t, ready)
	// success on the 3rd poll must not wait out the 30s budget
	assert.Less(t, mock.Now().Sub(start), 10*time.Second)
	assert.GreaterOrEqual(t, requests.Load(), int32(3))
}

func TestCheckOnceSendsBearerToken(t *testing.T) {
	var gotAuth atomic.Value
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth.Store(r.Header.Get("Authorization"))
		w.WriteHeader(http.StatusOK)
	}))
	t.Cleanup(server.Close)

	fs := filesystem.NewMemory()
	pp := testPaths("/data/Local")
	writeConnInfo(t, fs, pp, server.URL, "secret-token")

	probe := New(fs, pp, time.Second)
	assert.True(t, probe.CheckOnce())
	assert.Equal(t, "Bearer secret-token", gotAuth.Load())
}

func TestCheckOnceOmitsAuthHeaderWithoutToken(t *testing.T) {
	var gotAuth atomic.Value
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth.Store(r.Header.Get("Authorization"))
		w.WriteHeader(http.StatusOK)
	}))
	t.Cleanup(server.Close)

	fs := filesystem.NewMemory()
	pp := testPaths("/data/Local")
	writeConnInfo(t, fs, pp, server.URL, "")

	probe := New(fs, pp, time.Second)
	assert.True(t, probe.CheckOnce())
	assert.Equal(t, "", gotAuth.Load())
}

func TestCheckOnceFailures(t *testing.T) {
	t.Run("missing connection info", func(t *testing.T) {
		probe := New(filesystem.NewMemory(), testPaths("/data/Local"), time.Second)
		assert.False(t, probe.CheckOnce())
	})

	t.Run("server error status", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		}))
		t.Cleanup(server.Close)

		fs := filesystem.NewMemory()
		pp := testPaths("/data/Local")
		writeConnInfo(t, fs, pp, server.URL, "")

		probe := New(fs, pp, time.Second)
		assert.False(t, probe.CheckOnce())
	})

	t.Run("connection refused", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
		serverURL := server.URL
		server.Close()

		fs := filesystem.NewMemory()
		pp := testPaths("/data/Local")
		writeConnInfo(t, fs, pp, serverURL, "")

		probe := New(fs, pp, time.Second)
		assert.False(t, probe.CheckOnce())
	})
}
