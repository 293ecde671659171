// Package fetch retrieves release files over HTTP into the workspace.
//
// Every fetch is a single attempt: a bad version or platform combination
// must surface immediately as a 404 rather than being retried, so the
// fetcher never loops. The transport status is carried on the error for
// the caller to distinguish "not found" from a network failure.
package fetch

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
	// DefaultTimeout is the HTTP request timeout for a single fetch.
	DefaultTimeout = 5 * time.Minute
	// DefaultUserAgent is the User-Agent header sent with requests.
	DefaultUserAgent = "getassay/1.0"
)

// ProgressFunc is called with the completed and total byte counts while
// a fetch is streaming. Total is -1 when the server did not send a
// Content-Length.
type ProgressFunc func(downloaded, total int64)

// DownloadFailedError reports a fetch that did not complete. Status is
// the HTTP status code, or 0 for a transport-level failure.
type DownloadFailedError struct {
	URL    string
	Status int
	Err    error
}

func (e *DownloadFailedError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("download %s: status %d", e.URL, e.Status)
	}
	return fmt.Sprintf("download %s: %v", e.URL, e.Err)
}

func (e *DownloadFailedError) Unwrap() error {
	return e.Err
}

// NotFound returns true if the server answered 404, which for release
// downloads means the version/platform combination has no artifact.
func (e *DownloadFailedError) NotFound() bool {
	return e.Status == http.StatusNotFound
}

// Fetcher performs single-attempt HTTP downloads.
type Fetcher struct {
	client    *http.Client
	userAgent string
	progress  ProgressFunc
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithHTTPClient overrides the HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(f *Fetcher) {
		if client != nil {
			f.client = client
		}
	}
}

// WithProgress installs a progress callback.
func WithProgress(fn ProgressFunc) Option {
	return func(f *Fetcher) {
		f.progress = fn
	}
}

// New creates a new fetcher.
func New(opts ...Option) *Fetcher {
	f := &Fetcher{
		client: &http.Client{
			Timeout: DefaultTimeout,
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				if len(via) >= 10 {
					return fmt.Errorf("too many redirects")
				}
				return nil
			},
		},
		userAgent: DefaultUserAgent,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Fetch downloads url to destPath, fully or not at all. The file is
// staged next to destPath and renamed into place only after the body has
// been read completely.
func (f *Fetcher) Fetch(ctx context.Context, url, destPath string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return &DownloadFailedError{URL: url, Err: err}
	}
	req.Header.Set("User-Agent", f.userAgent)

	resp, err := f.client.Do(req)
	if err != nil {
		return &DownloadFailedError{URL: url, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return &DownloadFailedError{URL: url, Status: resp.StatusCode}
	}

	if err := os.MkdirAll(filepath.Dir(destPath), 0o755); err != nil {
		return &DownloadFailedError{URL: url, Err: fmt.Errorf("create dest dir: %w", err)}
	}

	tmpPath := destPath + ".tmp"
	tmpFile, err := os.Create(tmpPath)
	if err != nil {
		return &DownloadFailedError{URL: url, Err: fmt.Errorf("create temp file: %w", err)}
	}

	cleanupNeeded := true
	defer func() {
		tmpFile.Close()
		if cleanupNeeded {
			os.Remove(tmpPath)
		}
	}()

	var w io.Writer = tmpFile
	if f.progress != nil {
		w = io.MultiWriter(tmpFile, &progressWriter{total: resp.ContentLength, fn: f.progress})
	}

	if _, err := io.Copy(w, resp.Body); err != nil {
		return &DownloadFailedError{URL: url, Err: fmt.Errorf("copy response body: %w", err)}
	}

	if err := tmpFile.Close(); err != nil {
		return &DownloadFailedError{URL: url, Err: fmt.Errorf("close temp file: %w", err)}
	}

	if err := os.Rename(tmpPath, destPath); err != nil {
		return &DownloadFailedError{URL: url, Err: fmt.Errorf("rename temp file: %w", err)}
	}

	cleanupNeeded = false
	return nil
}

// FetchBytes downloads url and returns the body in memory. Used for the
// small companion files (checksum, signature).
func (f *Fetcher) FetchBytes(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, &DownloadFailedError{URL: url, Err: err}
	}
	req.Header.Set("User-Agent", f.userAgent)

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, &DownloadFailedError{URL: url, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &DownloadFailedError{URL: url, Status: resp.StatusCode}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &DownloadFailedError{URL: url, Err: fmt.Errorf("read response body: %w", err)}
	}
	return body, nil
}

type progressWriter struct {
	total      int64
	downloaded int64
	fn         ProgressFunc
}

func (p *progressWriter) Write(b []byte) (int, error) {
	p.downloaded += int64(len(b))
	p.fn(p.downloaded, p.total)
	return len(b), nil
}
