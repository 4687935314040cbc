package paths

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jpollock/local-addon-cli/pkg/errors"
)

func TestNewForOS(t *testing.T) {
	home := "/home/tester"

	tests := []struct {
		name     string
		goos     string
		validate func(t *testing.T, pp PlatformPaths)
		wantErr  bool
	}{
		{
			name: "darwin",
			goos: "darwin",
			validate: func(t *testing.T, pp PlatformPaths) {
				assert.Equal(t, filepath.Join(home, "Library", "Application Support", "Local"), pp.DataDir)
				assert.Equal(t, "Local", pp.AppProcessName)
				assert.Contains(t, pp.AppExecutablePath, "Local.app")
			},
		},
		{
			name: "windows",
			goos: "windows",
			validate: func(t *testing.T, pp PlatformPaths) {
				assert.Equal(t, "Local.exe", pp.AppProcessName)
				assert.Contains(t, pp.AppExecutablePath, "Local.exe")
			},
		},
		{
			name: "linux",
			goos: "linux",
			validate: func(t *testing.T, pp PlatformPaths) {
				assert.Equal(t, filepath.Join(home, ".config", "Local"), pp.DataDir)
				assert.Equal(t, "local", pp.AppProcessName)
			},
		},
		{
			name:    "unsupported platform",
			goos:    "plan9",
			wantErr: true,
		},
		{
			name:    "empty platform",
			goos:    "",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(EnvDataDir, "")

			pp, err := NewForOS(tt.goos, home)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.IsErrorCode(err, errors.ErrUnsupportedPlatform))
				return
			}

			require.NoError(t, err)
			tt.validate(t, pp)

			// every field populated and derived paths rooted in DataDir
			assert.NotEmpty(t, pp.DataDir)
			assert.NotEmpty(t, pp.AddonsDir)
			assert.NotEmpty(t, pp.ActivationFlagsFile)
			assert.NotEmpty(t, pp.ConnectionInfoFile)
			assert.NotEmpty(t, pp.AppExecutablePath)
			assert.NotEmpty(t, pp.AppProcessName)
			assert.Equal(t, filepath.Join(pp.DataDir, AddonsDirName), pp.AddonsDir)
			assert.Equal(t, filepath.Join(pp.DataDir, ActivationFlagsFileName), pp.ActivationFlagsFile)
			assert.Equal(t, filepath.Join(pp.DataDir, ConnectionInfoFileName), pp.ConnectionInfoFile)
		})
	}
}

func TestNewForOSDistinctFields(t *testing.T) {
	for _, goos := range []string{"darwin", "windows", "linux"} {
		t.Run(goos, func(t *testing.T) {
			t.Setenv(EnvDataDir, "")

			pp, err := NewForOS(goos, "/home/tester")
			require.NoError(t, err)

			seen := map[string]string{}
			for field, value := range map[string]string{
				"DataDir":             pp.DataDir,
				"AddonsDir":           pp.AddonsDir,
				"ActivationFlagsFile": pp.ActivationFlagsFile,
				"ConnectionInfoFile":  pp.ConnectionInfoFile,
				"AppExecutablePath":   pp.AppExecutablePath,
			} {
				if prev, dup := seen[value]; dup {
					t.Errorf("%s and %s share path %q", field, prev, value)
				}
				seen[value] = field
			}
		})
	}
}

func TestNewForOSDataDirOverride(t *testing.T) {
	t.Setenv(EnvDataDir, "/custom/local-data")

	pp, err := NewForOS("linux", "/home/tester")
	require.NoError(t, err)

	assert.Equal(t, "/custom/local-data", pp.DataDir)
	assert.Equal(t, filepath.Join("/custom/local-data", AddonsDirName), pp.AddonsDir)
}

func TestExpandHome(t *testing.T) {
	tests := []struct {
		name string
		path string
		want string
	}{
		{"bare tilde", "~", "/home/tester"},
		{"tilde slash", "~/data", filepath.Join("/home/tester", "data")},
		{"tilde user", "~other/data", "~other/data"},
		{"absolute", "/abs/path", "/abs/path"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, expandHome(tt.path, "/home/tester"))
		})
	}
}
