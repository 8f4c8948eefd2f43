package registry

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/arko-martian/peacore/manifest"
	"github.com/arko-martian/peacore/pkgerr"
)

// HTTPAdapter talks to an npm-compatible registry over HTTP. It does no
// retry or backoff: transport failures and non-OK statuses surface as
// pkgerr Network errors, a 404 as PackageNotFound and an undecodable
// body as JsonParse, for the caller to decide whether to retry.
type HTTPAdapter struct {
	BaseURL string
	Client  *http.Client
}

// NewHTTPAdapter returns an adapter against baseURL with a default
// 30-second client timeout.
func NewHTTPAdapter(baseURL string) *HTTPAdapter {
	return &HTTPAdapter{
		BaseURL: strings.TrimRight(baseURL, "/"),
		Client:  &http.Client{Timeout: 30 * time.Second},
	}
}

type npmPackument struct {
	Name     string                    `json:"name"`
	DistTags map[string]string         `json:"dist-tags"`
	Versions map[string]npmVersionBody `json:"versions"`
	Time     map[string]string         `json:"time"`
}

type npmVersionBody struct {
	Version              string            `json:"version"`
	Dependencies         map[string]string `json:"dependencies"`
	DevDependencies      map[string]string `json:"devDependencies"`
	PeerDependencies     map[string]string `json:"peerDependencies"`
	OptionalDependencies map[string]string `json:"optionalDependencies"`
	Dist                 struct {
		Tarball      string `json:"tarball"`
		Shasum       string `json:"shasum"`
		Integrity    string `json:"integrity"`
		UnpackedSize int64  `json:"unpackedSize"`
		FileCount    int    `json:"fileCount"`
	} `json:"dist"`
}

func (a *HTTPAdapter) FetchMetadata(ctx context.Context, name string) (*manifest.RegistryMetadata, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, a.BaseURL+"/"+name, nil)
	if err != nil {
		return nil, pkgerr.NetworkErr(err, "build metadata request for "+name)
	}

	resp, err := a.Client.Do(req)
	if err != nil {
		return nil, pkgerr.NetworkErr(err, "fetch metadata for "+name)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, pkgerr.PackageNotFoundErr(name)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, pkgerr.New(pkgerr.Network, "registry returned "+resp.Status+" for "+name)
	}

	var body npmPackument
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, pkgerr.Wrap(pkgerr.JsonParse, err, "decode registry response for "+name)
	}

	md := &manifest.RegistryMetadata{
		Name:     body.Name,
		DistTags: body.DistTags,
		Time:     body.Time,
		Versions: make(map[string]manifest.RegistryVersion, len(body.Versions)),
	}
	for v, b := range body.Versions {
		md.Versions[v] = manifest.RegistryVersion{
			Version:              b.Version,
			Dependencies:         b.Dependencies,
			DevDependencies:      b.DevDependencies,
			PeerDependencies:     b.PeerDependencies,
			OptionalDependencies: b.OptionalDependencies,
			Dist: manifest.DistInfo{
				Tarball:      b.Dist.Tarball,
				Shasum:       b.Dist.Shasum,
				Integrity:    b.Dist.Integrity,
				UnpackedSize: b.Dist.UnpackedSize,
				FileCount:    b.Dist.FileCount,
			},
		}
	}
	return md, nil
}

func (a *HTTPAdapter) FetchTarball(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, pkgerr.NetworkErr(err, "build tarball request for "+url)
	}

	resp, err := a.Client.Do(req)
	if err != nil {
		return nil, pkgerr.NetworkErr(err, "fetch tarball "+url)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, pkgerr.New(pkgerr.Network, "registry returned "+resp.Status+" for tarball "+url)
	}

	b, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, pkgerr.NetworkErr(err, "read tarball body "+url)
	}
	return b, nil
}
