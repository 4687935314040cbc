package filesystem

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemorySymlinkRoundTrip(t *testing.T) {
	fs := NewMemory()
	require.NoError(t, fs.MkdirAll("/src/addon", 0755))

	require.NoError(t, fs.Symlink("/src/addon", "/dst/link"))

	info, err := fs.Lstat("/dst/link")
	require.NoError(t, err)
	assert.NotZero(t, info.Mode()&os.ModeSymlink, "Lstat should report the emulated link as a symlink")

	target, err := fs.Readlink("/dst/link")
	require.NoError(t, err)
	assert.Equal(t, "/src/addon", target)
}

func TestMemorySymlinkRemove(t *testing.T) {
	fs := NewMemory()
	require.NoError(t, fs.Symlink("/src/addon", "/dst/link"))
	require.NoError(t, fs.Remove("/dst/link"))

	_, err := fs.Lstat("/dst/link")
	assert.Error(t, err)
}

func TestMemorySymlinkRename(t *testing.T) {
	fs := NewMemory()
	require.NoError(t, fs.Symlink("/src/addon", "/dst/old"))
	require.NoError(t, fs.Rename("/dst/old", "/dst/new"))

	target, err := fs.Readlink("/dst/new")
	require.NoError(t, err)
	assert.Equal(t, "/src/addon", target)

	_, err = fs.Lstat("/dst/old")
	assert.Error(t, err)
}
