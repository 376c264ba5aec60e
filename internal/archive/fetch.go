package archive

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
)

// errBadHTTPStatus is returned when the artifact server answers with a non-200 code.
var errBadHTTPStatus = errors.New("unexpected http status")

// Fetcher downloads release artifacts over HTTP.
type Fetcher struct {
	client *http.Client
}

// NewFetcher creates a fetcher; a nil client means http.DefaultClient.
func NewFetcher(client *http.Client) *Fetcher {
	if client == nil {
		client = http.DefaultClient
	}

	return &Fetcher{client: client}
}

// Download fetches the URL into a uniquely named temporary file and returns
// its path. The caller is responsible for removing the file.
func (f *Fetcher) Download(ctx context.Context, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, http.NoBody)
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}

	response, err := f.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("download %s: %w", url, err)
	}

	defer func() {
		_ = response.Body.Close()
	}()

	if response.StatusCode != http.StatusOK {
		return "", fmt.Errorf("%s, %s: %w", url, response.Status, errBadHTTPStatus)
	}

	tmpFile, err := os.CreateTemp("", "wasi-sdk-*.tar.gz")
	if err != nil {
		return "", fmt.Errorf("create temp file: %w", err)
	}

	// The temp file is removed again if the body copy fails midway.
	removeNeeded := true

	defer func() {
		_ = tmpFile.Close()

		if removeNeeded {
			_ = os.Remove(tmpFile.Name())
		}
	}()

	if _, err = io.Copy(tmpFile, response.Body); err != nil {
		return "", fmt.Errorf("write temp file: %w", err)
	}

	if err = tmpFile.Close(); err != nil {
		return "", fmt.Errorf("close temp file: %w", err)
	}

	removeNeeded = false

	return tmpFile.Name(), nil
}
