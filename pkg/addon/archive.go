package addon

import (
	"archive/tar"
	"io"
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/gzip"

	"github.com/jpollock/local-addon-cli/pkg/errors"
	"github.com/jpollock/local-addon-cli/pkg/filesystem"
)

// npmRoot is the top-level directory npm-packed tarballs wrap their
// contents in; it is stripped during extraction.
const npmRoot = "package"

// extractArchive unpacks a gzipped tarball into destDir. Entries that
// would escape destDir are rejected outright.
func extractArchive(fsys filesystem.FS, r io.Reader, destDir string) error {
	gz, err := gzip.NewReader(r)
	if err != nil {
		return errors.Wrap(err, errors.ErrArchiveExtract, "archive is not valid gzip")
	}
	defer func() { _ = gz.Close() }()

	if err := fsys.MkdirAll(destDir, 0755); err != nil {
		return errors.Wrapf(err, errors.ErrDirCreate, "failed to create %s", destDir)
	}

	tr := tar.NewReader(gz)
	for {
		hdr, err := tr.Next()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return errors.Wrap(err, errors.ErrArchiveExtract, "archive is not a valid tar stream")
		}

		name := stripRoot(hdr.Name)
		if name == "" {
			continue
		}

		target, err := securePath(destDir, name)
		if err != nil {
			return err
		}

		switch hdr.Typeflag {
		case tar.TypeDir:
			if err := fsys.MkdirAll(target, 0755); err != nil {
				return errors.Wrapf(err, errors.ErrDirCreate, "failed to create %s", target)
			}
		case tar.TypeReg:
			if err := fsys.MkdirAll(filepath.Dir(target), 0755); err != nil {
				return errors.Wrapf(err, errors.ErrDirCreate, "failed to create %s", filepath.Dir(target))
			}
			data, err := io.ReadAll(tr)
			if err != nil {
				return errors.Wrapf(err, errors.ErrArchiveExtract, "failed to read archive entry %s", hdr.Name)
			}
			mode := fs.FileMode(hdr.Mode) & fs.ModePerm
			if mode == 0 {
				mode = 0644
			}
			if err := fsys.WriteFile(target, data, mode); err != nil {
				return errors.Wrapf(err, errors.ErrFileWrite, "failed to write %s", target)
			}
		default:
			// symlinks, devices and the like have no business in a
			// packaged addon release
			continue
		}
	}
}

// stripRoot removes the npm "package/" wrapper from an entry name.
func stripRoot(name string) string {
	name = strings.TrimPrefix(name, "./")
	if name == npmRoot {
		return ""
	}
	return strings.TrimPrefix(name, npmRoot+"/")
}

// securePath joins name onto destDir and rejects traversal outside it.
func securePath(destDir, name string) (string, error) {
	target := filepath.Join(destDir, filepath.FromSlash(name))
	rel, err := filepath.Rel(destDir, target)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", errors.Newf(errors.ErrArchiveExtract, "archive entry %q escapes the install directory", name)
	}
	return target, nil
}
