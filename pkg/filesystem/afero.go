package filesystem

import (
	"io/fs"
	"path/filepath"
	"time"

	"github.com/spf13/afero"
)

// aferoFS implements FS using afero. Backends without native symlink
// support (MemMapFs) get an emulation that round-trips through Lstat
// and Readlink, so symlink-dependent probes behave the same on the
// memory filesystem as on a real one.
type aferoFS struct {
	fs    afero.Fs
	links map[string]string
}

// NewAferoFS creates a new afero filesystem implementation
func NewAferoFS(fs afero.Fs) FS {
	return &aferoFS{fs: fs, links: make(map[string]string)}
}

// NewMemory creates an in-memory filesystem, used by tests.
func NewMemory() FS {
	return NewAferoFS(afero.NewMemMapFs())
}

// linkInfo is the FileInfo reported for emulated symlinks.
type linkInfo struct {
	name string
}

func (l linkInfo) Name() string       { return filepath.Base(l.name) }
func (l linkInfo) Size() int64        { return 0 }
func (l linkInfo) Mode() fs.FileMode  { return 0777 | fs.ModeSymlink }
func (l linkInfo) ModTime() time.Time { return time.Time{} }
func (l linkInfo) IsDir() bool        { return false }
func (l linkInfo) Sys() interface{}   { return nil }

func (a *aferoFS) Stat(name string) (fs.FileInfo, error) {
	return a.fs.Stat(name)
}

func (a *aferoFS) Lstat(name string) (fs.FileInfo, error) {
	if lstater, ok := a.fs.(afero.Lstater); ok {
		info, _, err := lstater.LstatIfPossible(name)
		return info, err
	}
	if _, ok := a.links[name]; ok {
		return linkInfo{name: name}, nil
	}
	return a.fs.Stat(name)
}

func (a *aferoFS) ReadFile(name string) ([]byte, error) {
	info, err := a.fs.Stat(name)
	if err != nil {
		return nil, err
	}
	if info.IsDir() {
		return nil, &fs.PathError{Op: "read", Path: name, Err: fs.ErrInvalid}
	}
	return afero.ReadFile(a.fs, name)
}

func (a *aferoFS) WriteFile(name string, data []byte, perm fs.FileMode) error {
	return afero.WriteFile(a.fs, name, data, perm)
}

func (a *aferoFS) MkdirAll(path string, perm fs.FileMode) error {
	return a.fs.MkdirAll(path, perm)
}

func (a *aferoFS) Symlink(oldname, newname string) error {
	if linker, ok := a.fs.(afero.Linker); ok {
		return linker.SymlinkIfPossible(oldname, newname)
	}
	// Afero's MemMapFs doesn't support Symlink, so we simulate it with
	// a marker file plus a link table consulted by Lstat and Readlink.
	if err := afero.WriteFile(a.fs, newname, []byte(oldname), 0777); err != nil {
		return err
	}
	a.links[newname] = oldname
	return nil
}

func (a *aferoFS) Readlink(name string) (string, error) {
	if reader, ok := a.fs.(afero.LinkReader); ok {
		return reader.ReadlinkIfPossible(name)
	}
	if target, ok := a.links[name]; ok {
		return target, nil
	}
	// Fallback for filesystems that don't support symlinks
	content, err := afero.ReadFile(a.fs, name)
	if err != nil {
		return "", err
	}
	return string(content), nil
}

func (a *aferoFS) Remove(name string) error {
	delete(a.links, name)
	return a.fs.Remove(name)
}

func (a *aferoFS) RemoveAll(path string) error {
	delete(a.links, path)
	return a.fs.RemoveAll(path)
}

func (a *aferoFS) Rename(oldpath, newpath string) error {
	if target, ok := a.links[oldpath]; ok {
		delete(a.links, oldpath)
		a.links[newpath] = target
	}
	return a.fs.Rename(oldpath, newpath)
}
