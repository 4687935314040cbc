package addon

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/jpollock/local-addon-cli/pkg/errors"
)

// ReleaseDescriptor identifies the latest packaged addon release. It
// exists only transiently during installation.
type ReleaseDescriptor struct {
	Tag         string
	DownloadURL string
}

// releaseIndex mirrors the releases endpoint response.
type releaseIndex struct {
	TagName string `json:"tag_name"`
	Assets  []struct {
		Name               string `json:"name"`
		BrowserDownloadURL string `json:"browser_download_url"`
	} `json:"assets"`
}

// fetchLatestRelease queries the release index and picks the asset
// whose name ends in the packaged-archive extension.
func fetchLatestRelease(client *http.Client, url string) (ReleaseDescriptor, error) {
	resp, err := client.Get(url)
	if err != nil {
		return ReleaseDescriptor{}, errors.Wrapf(err, errors.ErrReleaseLookup, "failed to query release index at %s", url)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return ReleaseDescriptor{}, errors.Newf(errors.ErrReleaseLookup,
			"release index at %s returned %s", url, resp.Status)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return ReleaseDescriptor{}, errors.Wrap(err, errors.ErrReleaseLookup, "failed to read release index response")
	}

	var index releaseIndex
	if err := json.Unmarshal(body, &index); err != nil {
		return ReleaseDescriptor{}, errors.Wrap(err, errors.ErrReleaseLookup, "release index response is not valid JSON")
	}

	for _, asset := range index.Assets {
		if strings.HasSuffix(asset.Name, ArchiveExt) {
			return ReleaseDescriptor{Tag: index.TagName, DownloadURL: asset.BrowserDownloadURL}, nil
		}
	}

	return ReleaseDescriptor{}, errors.Newf(errors.ErrReleaseLookup,
		"release %s has no %s asset", index.TagName, ArchiveExt)
}

// downloadAsset streams the release archive to w.
func downloadAsset(client *http.Client, url string, w io.Writer) error {
	resp, err := client.Get(url)
	if err != nil {
		return errors.Wrapf(err, errors.ErrReleaseDownload, "failed to download %s", url)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return errors.Newf(errors.ErrReleaseDownload, "download of %s returned %s", url, resp.Status)
	}

	if _, err := io.Copy(w, resp.Body); err != nil {
		return errors.Wrapf(err, errors.ErrReleaseDownload, "failed while downloading %s", url)
	}
	return nil
}

// assetFileName derives a stable-ish local name for logging purposes.
func assetFileName(desc ReleaseDescriptor) string {
	return fmt.Sprintf("%s-%s%s", DirName, strings.TrimPrefix(desc.Tag, "v"), ArchiveExt)
}
