// Package config loads local-cli settings: compiled defaults merged
// with an optional config.toml in the CLI's config directory.
package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/pelletier/go-toml/v2"

	"github.com/jpollock/local-addon-cli/pkg/errors"
	"github.com/jpollock/local-addon-cli/pkg/paths"
)

// ConfigFileName is the settings file looked up in paths.ConfigDir().
const ConfigFileName = "config.toml"

// Default tuning values. The readiness budget is sized so roughly 60
// poll attempts fit even under repeated short per-request timeouts.
const (
	DefaultReadinessTimeout = 30 * time.Second
	DefaultPollInterval     = 500 * time.Millisecond
	DefaultRequestTimeout   = 2 * time.Second
	DefaultRestartSettle    = 2 * time.Second

	// DefaultReleasesURL is the addon's release index endpoint.
	DefaultReleasesURL = "https://api.github.com/repos/jpollock/local-addon-cli/releases/latest"
)

// Config holds the tunable settings for the bootstrap subsystem.
type Config struct {
	// ReadinessTimeout bounds the whole WaitForReady loop.
	ReadinessTimeout time.Duration `toml:"readiness_timeout"`

	// PollInterval is the sleep between readiness attempts.
	PollInterval time.Duration `toml:"poll_interval"`

	// RequestTimeout bounds each individual health request. Kept well
	// below PollInterval's order of magnitude relative to the budget.
	RequestTimeout time.Duration `toml:"request_timeout"`

	// RestartSettle is the delay between stop and start on restart.
	RestartSettle time.Duration `toml:"restart_settle"`

	// ReleasesURL is the addon release index endpoint.
	ReleasesURL string `toml:"releases_url"`
}

// Default returns the compiled-in configuration.
func Default() Config {
	return Config{
		ReadinessTimeout: DefaultReadinessTimeout,
		PollInterval:     DefaultPollInterval,
		RequestTimeout:   DefaultRequestTimeout,
		RestartSettle:    DefaultRestartSettle,
		ReleasesURL:      DefaultReleasesURL,
	}
}

// Load returns the defaults merged with config.toml if present. A
// missing file is not an error; a malformed one is.
func Load() (Config, error) {
	return loadFrom(filepath.Join(paths.ConfigDir(), ConfigFileName))
}

func loadFrom(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, errors.Wrapf(err, errors.ErrConfigLoad, "failed to read config file %s", path)
	}

	var file fileConfig
	if err := toml.Unmarshal(data, &file); err != nil {
		return cfg, errors.Wrapf(err, errors.ErrConfigParse, "failed to parse config file %s", path)
	}

	file.apply(&cfg)
	return cfg, nil
}

// fileConfig mirrors Config with pointer fields so absent keys keep
// their defaults. Durations are written as strings ("30s", "500ms").
type fileConfig struct {
	ReadinessTimeout *duration `toml:"readiness_timeout"`
	PollInterval     *duration `toml:"poll_interval"`
	RequestTimeout   *duration `toml:"request_timeout"`
	RestartSettle    *duration `toml:"restart_settle"`
	ReleasesURL      *string   `toml:"releases_url"`
}

func (f *fileConfig) apply(cfg *Config) {
	if f.ReadinessTimeout != nil {
		cfg.ReadinessTimeout = time.Duration(*f.ReadinessTimeout)
	}
	if f.PollInterval != nil {
		cfg.PollInterval = time.Duration(*f.PollInterval)
	}
	if f.RequestTimeout != nil {
		cfg.RequestTimeout = time.Duration(*f.RequestTimeout)
	}
	if f.RestartSettle != nil {
		cfg.RestartSettle = time.Duration(*f.RestartSettle)
	}
	if f.ReleasesURL != nil && *f.ReleasesURL != "" {
		cfg.ReleasesURL = *f.ReleasesURL
	}
}

// duration unmarshals TOML strings through time.ParseDuration.
type duration time.Duration

func (d *duration) UnmarshalText(text []byte) error {
	parsed, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	*d = duration(parsed)
	return nil
}
