package addon

import (
	"bytes"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/jpollock/local-addon-cli/pkg/errors"
	"github.com/jpollock/local-addon-cli/pkg/filesystem"
	"github.com/jpollock/local-addon-cli/pkg/logging"
	"github.com/jpollock/local-addon-cli/pkg/paths"
)

// httpTimeout bounds the release lookup and the archive download; a
// dead endpoint must not stall installation past this window.
const httpTimeout = 30 * time.Second

// StatusFunc receives human-readable progress lines during install.
type StatusFunc func(string)

// Installer gets the addon onto disk and activated. Installation
// prefers the latest packaged release; when the release index is
// unreachable or empty it falls back to symlinking a local development
// checkout found next to the CLI's own install location.
type Installer struct {
	fs          filesystem.FS
	paths       paths.PlatformPaths
	probe       *Probe
	client      *http.Client
	releasesURL string

	// executable locates the running CLI binary; overridable in tests.
	executable func() (string, error)

	// tempDir is where release archives land before extraction.
	tempDir string
}

// NewInstaller creates an installer over the given platform paths.
func NewInstaller(fs filesystem.FS, pp paths.PlatformPaths, releasesURL string) *Installer {
	return &Installer{
		fs:          fs,
		paths:       pp,
		probe:       NewProbe(fs, pp),
		client:      &http.Client{Timeout: httpTimeout},
		releasesURL: releasesURL,
		executable:  os.Executable,
		tempDir:     os.TempDir(),
	}
}

// Ensure converges the addon to installed-and-activated. It is
// idempotent: already-converged state is a no-op fast path. The
// returned needsRestart is true whenever this call installed the addon
// or changed the activation flag, meaning an already-running host app
// holds a stale extension set.
func (i *Installer) Ensure(onStatus StatusFunc) (needsRestart bool, err error) {
	if onStatus == nil {
		onStatus = func(string) {}
	}
	log := logging.GetLogger("addon.installer")

	state := i.probe.State()
	log.Debug().Bool("installed", state.Installed).Bool("activated", state.Activated).Msg("addon state")

	if state.Installed && state.Activated {
		return false, nil
	}

	installed := false
	if !state.Installed {
		if err := i.Install(onStatus); err != nil {
			return false, err
		}
		installed = true
	}

	changed, err := i.Activate()
	if err != nil {
		return false, err
	}
	// A stale activation flag can predate the install; the freshly
	// installed code is unloaded either way.
	return installed || changed, nil
}

// Install fetches and unpacks the latest packaged release, or falls
// back to a development symlink. Exhausting both paths is fatal.
func (i *Installer) Install(onStatus StatusFunc) error {
	if onStatus == nil {
		onStatus = func(string) {}
	}
	log := logging.GetLogger("addon.installer")

	data, desc, err := i.fetchRelease(onStatus)
	if err == nil {
		if err := i.extractRelease(data, onStatus); err != nil {
			return err
		}
		log.Info().Str("tag", desc.Tag).Msg("addon installed from release")
		return nil
	}

	// Lookup and download failures both mean no packaged release is
	// reachable; a development checkout next to the CLI binary serves
	// instead. Extraction failures above stay fatal.
	log.Debug().Err(err).Msg("release unavailable, trying development fallback")
	onStatus("No packaged release reachable, looking for a development copy…")

	devPath, ok := i.findDevCopy()
	if !ok {
		return errors.New(errors.ErrAddonInstall,
			"could not install the addon: no packaged release is reachable and no development copy was found "+
				"(see 'local-cli docs install' for manual installation)")
	}

	onStatus(fmt.Sprintf("Linking development copy at %s…", devPath))
	if err := i.linkDevCopy(devPath); err != nil {
		return err
	}
	log.Info().Str("path", devPath).Msg("addon linked from development copy")
	return nil
}

// fetchRelease resolves the latest release and downloads its archive.
func (i *Installer) fetchRelease(onStatus StatusFunc) ([]byte, ReleaseDescriptor, error) {
	onStatus("Looking up latest addon release…")
	desc, err := fetchLatestRelease(i.client, i.releasesURL)
	if err != nil {
		return nil, ReleaseDescriptor{}, err
	}

	onStatus(fmt.Sprintf("Downloading %s…", assetFileName(desc)))
	var buf bytes.Buffer
	if err := downloadAsset(i.client, desc.DownloadURL, &buf); err != nil {
		return nil, ReleaseDescriptor{}, err
	}
	return buf.Bytes(), desc, nil
}

// extractRelease unpacks the downloaded archive into the addon
// directory via a temporary file. Failures here are fatal.
func (i *Installer) extractRelease(archive []byte, onStatus StatusFunc) error {
	tempPath := filepath.Join(i.tempDir, uuid.NewString()+ArchiveExt)
	if err := i.fs.WriteFile(tempPath, archive, 0644); err != nil {
		return errors.Wrapf(err, errors.ErrFileWrite, "failed to write %s", tempPath)
	}
	defer func() { _ = i.fs.Remove(tempPath) }()

	data, err := i.fs.ReadFile(tempPath)
	if err != nil {
		return errors.Wrapf(err, errors.ErrFileAccess, "failed to reopen %s", tempPath)
	}

	onStatus("Extracting addon…")
	if err := extractArchive(i.fs, bytes.NewReader(data), i.probe.InstallDir()); err != nil {
		return errors.Wrap(err, errors.ErrAddonInstall, "failed to extract addon archive")
	}
	return nil
}

// findDevCopy looks for a local checkout of the addon adjacent to the
// CLI's own install location.
func (i *Installer) findDevCopy() (string, bool) {
	exe, err := i.executable()
	if err != nil {
		return "", false
	}

	exeDir := filepath.Dir(exe)
	candidates := []string{
		filepath.Join(exeDir, DirName),
		filepath.Join(filepath.Dir(exeDir), DirName),
	}
	for _, candidate := range candidates {
		if info, err := i.fs.Stat(candidate); err == nil && info.IsDir() {
			return candidate, true
		}
	}
	return "", false
}

// linkDevCopy symlinks the addon directory at the development checkout.
func (i *Installer) linkDevCopy(devPath string) error {
	if err := i.fs.MkdirAll(i.paths.AddonsDir, 0755); err != nil {
		return errors.Wrapf(err, errors.ErrDirCreate, "failed to create %s", i.paths.AddonsDir)
	}

	link := i.probe.InstallDir()
	// stale leftovers from a previous install
	_ = i.fs.Remove(link)

	if err := i.fs.Symlink(devPath, link); err != nil {
		return errors.Wrapf(err, errors.ErrSymlinkCreate, "failed to link %s -> %s", link, devPath)
	}
	return nil
}

// Activate marks the addon enabled in the activation flags file. A
// missing or corrupt file starts from an empty mapping. Returns true
// when the flag actually changed, i.e. a running host app needs a
// restart to pick it up; a second call in a row returns false.
func (i *Installer) Activate() (bool, error) {
	flags, err := readFlags(i.fs, i.paths.ActivationFlagsFile)
	if err != nil {
		flags = make(map[string]bool)
	}

	if flags[PackageID] {
		return false, nil
	}

	flags[PackageID] = true
	if err := i.fs.MkdirAll(i.paths.DataDir, 0755); err != nil {
		return false, errors.Wrapf(err, errors.ErrDirCreate, "failed to create %s", i.paths.DataDir)
	}
	if err := writeFlags(i.fs, i.paths.ActivationFlagsFile, flags); err != nil {
		return false, err
	}
	return true, nil
}
