// Package connection reads the connection-info file the host app writes
// once its GraphQL server is listening. The file is ephemeral and
// untrusted until parsed; staleness is only detectable by a failed
// health probe, never by file inspection alone.
package connection

import (
	"encoding/json"
	"fmt"

	"github.com/jpollock/local-addon-cli/pkg/errors"
	"github.com/jpollock/local-addon-cli/pkg/filesystem"
)

// Info holds the ephemeral credentials for the host app's API server.
// Only Port is mandatory in the file; URL and SubscriptionURL are
// synthesized from it when absent, and a missing AuthToken means "no
// auth configured", not an error.
type Info struct {
	URL             string `json:"url"`
	SubscriptionURL string `json:"subscriptionUrl"`
	Port            int    `json:"port"`
	AuthToken       string `json:"authToken"`
}

// Read parses the connection-info file at path. It fails with
// ErrConnectionInfo when the file is missing, is not JSON, or carries
// no usable port.
func Read(fs filesystem.FS, path string) (Info, error) {
	data, err := fs.ReadFile(path)
	if err != nil {
		return Info{}, errors.Wrapf(err, errors.ErrConnectionInfo, "failed to read connection info from %s", path)
	}

	var info Info
	if err := json.Unmarshal(data, &info); err != nil {
		return Info{}, errors.Wrapf(err, errors.ErrConnectionInfo, "connection info at %s is not valid JSON", path)
	}

	if info.Port <= 0 {
		return Info{}, errors.Newf(errors.ErrConnectionInfo, "connection info at %s has no port", path)
	}

	if info.URL == "" {
		info.URL = fmt.Sprintf("http://127.0.0.1:%d/graphql", info.Port)
	}
	if info.SubscriptionURL == "" {
		info.SubscriptionURL = fmt.Sprintf("ws://127.0.0.1:%d/graphql", info.Port)
	}

	return info, nil
}
