package addon

import (
	"encoding/json"

	"github.com/jpollock/local-addon-cli/pkg/errors"
	"github.com/jpollock/local-addon-cli/pkg/filesystem"
)

// readFlags parses the activation flags file: a flat JSON mapping from
// addon package id to enabled flag.
func readFlags(fs filesystem.FS, path string) (map[string]bool, error) {
	data, err := fs.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var flags map[string]bool
	if err := json.Unmarshal(data, &flags); err != nil {
		return nil, err
	}
	return flags, nil
}

// writeFlags writes the activation flags file back, indented the way
// the host app writes it.
func writeFlags(fs filesystem.FS, path string, flags map[string]bool) error {
	data, err := json.MarshalIndent(flags, "", "  ")
	if err != nil {
		return errors.Wrap(err, errors.ErrInternal, "failed to encode activation flags")
	}
	if err := fs.WriteFile(path, data, 0644); err != nil {
		return errors.Wrapf(err, errors.ErrFileWrite, "failed to write activation flags to %s", path)
	}
	return nil
}
