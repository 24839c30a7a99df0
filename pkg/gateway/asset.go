package gateway

import (
	"context"
	"io"
	"net/http"
	"path"
	"strings"
)

// assetMarker selects the swagger asset short-circuit.
const assetMarker = "swagger/"

var assetContentTypes = map[string]string{
	".css": "text/css",
	".js":  "application/javascript",
	".png": "image/png",
	".svg": "image/svg+xml",
}

// isAsset reports whether the forwarded path is a swagger asset.
func isAsset(p string) bool {
	return strings.Contains(p, assetMarker)
}

// assetContentType guesses the content type from the file extension.
// It returns "" for unknown extensions.
func assetContentType(p string) string {
	return assetContentTypes[strings.ToLower(path.Ext(p))]
}

// asset is a successfully fetched swagger asset.
type asset struct {
	contentType string
	body        []byte
}

// fetchAsset fetches a swagger asset directly with the incoming method and
// no body. Any transport failure or non-2xx status is a *DirectFetchError.
func (f *Forwarder) fetchAsset(ctx context.Context, method, target, forwardedPath string, header http.Header) (*asset, error) {
	req, err := http.NewRequestWithContext(ctx, method, target, nil)
	if err != nil {
		return nil, &DirectFetchError{URL: target, Cause: err}
	}
	req.Header = header
	req.Header.Del("Content-Type")

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, &DirectFetchError{URL: target, Cause: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil, &DirectFetchError{URL: target, StatusCode: resp.StatusCode}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &DirectFetchError{URL: target, StatusCode: resp.StatusCode, Cause: err}
	}

	contentType := assetContentType(forwardedPath)
	if upstream := resp.Header.Get("Content-Type"); upstream != "" {
		contentType = upstream
	}

	return &asset{contentType: contentType, body: body}, nil
}
