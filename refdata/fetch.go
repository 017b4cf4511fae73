package refdata

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"time"
)

const (
	// DefaultFetchTimeout bounds a whole download.
	DefaultFetchTimeout = 10 * time.Second

	// maxDocumentSize caps how much of a response body is read.
	maxDocumentSize = 16 << 20
)

// Fetcher downloads reference data into the local cache. It is a bootstrap
// step run on request; the server never fetches while answering queries.
type Fetcher struct {
	httpClient *http.Client
}

// NewFetcher creates a Fetcher whose requests time out after timeout.
func NewFetcher(timeout time.Duration) *Fetcher {
	if timeout <= 0 {
		timeout = DefaultFetchTimeout
	}
	return &Fetcher{httpClient: &http.Client{Timeout: timeout}}
}

// NewFetcherWithClient creates a Fetcher using a custom HTTP client (for testing).
func NewFetcherWithClient(client *http.Client) *Fetcher {
	return &Fetcher{httpClient: client}
}

// Fetch downloads the document at url, checks that it parses, and atomically
// replaces dest with it. On any failure dest is left untouched.
func (f *Fetcher) Fetch(ctx context.Context, url, dest string) (*Store, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/yaml, application/json, text/plain")

	resp, err := f.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch reference data: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("reference data server returned status %d", resp.StatusCode)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxDocumentSize+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read reference data: %w", err)
	}
	if len(data) > maxDocumentSize {
		return nil, fmt.Errorf("reference data exceeds %d bytes", maxDocumentSize)
	}

	store, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("downloaded reference data rejected: %w", err)
	}

	if err := writeFileAtomic(dest, data); err != nil {
		return nil, err
	}
	return store, nil
}

func writeFileAtomic(dest string, data []byte) error {
	dir := filepath.Dir(dest)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create cache directory %s: %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, ".knowledge-*.yaml")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("failed to write reference data: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to write reference data: %w", err)
	}
	if err := os.Rename(tmpName, dest); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to replace %s: %w", dest, err)
	}
	return nil
}
