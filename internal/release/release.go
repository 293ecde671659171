// Package release resolves which assay release version to install.
//
// An explicit version from configuration is used verbatim; the sentinel
// "latest" is resolved through the release host's API. Tag existence is
// deliberately not validated here: a bad explicit tag surfaces later as a
// download failure, which carries the HTTP status the user needs.
package release

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

const (
	// Latest is the sentinel version meaning "most recent published release".
	Latest = "latest"
	// DefaultAPIBase is the release metadata endpoint base.
	DefaultAPIBase = "https://api.github.com"
	// DefaultTimeout bounds the metadata request.
	DefaultTimeout = 30 * time.Second
)

// Release models the slice of release metadata we care about.
type Release struct {
	TagName string `json:"tag_name"`
}

// VersionResolutionFailedError reports that the latest-release query
// could not produce a tag.
type VersionResolutionFailedError struct {
	Repo   string
	Reason string
	Err    error
}

func (e *VersionResolutionFailedError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("resolve latest release for %s: %s: %v", e.Repo, e.Reason, e.Err)
	}
	return fmt.Sprintf("resolve latest release for %s: %s", e.Repo, e.Reason)
}

func (e *VersionResolutionFailedError) Unwrap() error {
	return e.Err
}

// Resolver resolves release versions against a release-hosting API.
type Resolver struct {
	client    *http.Client
	apiBase   string
	userAgent string
}

// ResolverOption configures a Resolver.
type ResolverOption func(*Resolver)

// WithAPIBase overrides the metadata endpoint base (used in tests).
func WithAPIBase(base string) ResolverOption {
	return func(r *Resolver) {
		if base != "" {
			r.apiBase = base
		}
	}
}

// WithHTTPClient overrides the HTTP client.
func WithHTTPClient(client *http.Client) ResolverOption {
	return func(r *Resolver) {
		if client != nil {
			r.client = client
		}
	}
}

// WithUserAgent overrides the User-Agent header.
func WithUserAgent(ua string) ResolverOption {
	return func(r *Resolver) {
		if ua != "" {
			r.userAgent = ua
		}
	}
}

// NewResolver creates a new version resolver.
func NewResolver(opts ...ResolverOption) *Resolver {
	r := &Resolver{
		client:  &http.Client{Timeout: DefaultTimeout},
		apiBase: DefaultAPIBase,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Resolve returns the release tag to install for repo (an "owner/name"
// slug). If requested is non-empty and not the Latest sentinel it is
// returned verbatim with no network call.
func (r *Resolver) Resolve(ctx context.Context, repo, requested string) (string, error) {
	if requested != "" && requested != Latest {
		return requested, nil
	}

	url := fmt.Sprintf("%s/repos/%s/releases/latest", r.apiBase, repo)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", &VersionResolutionFailedError{Repo: repo, Reason: "create request", Err: err}
	}
	req.Header.Set("Accept", "application/vnd.github+json")
	if r.userAgent != "" {
		req.Header.Set("User-Agent", r.userAgent)
	}

	resp, err := r.client.Do(req)
	if err != nil {
		return "", &VersionResolutionFailedError{Repo: repo, Reason: "query release metadata", Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", &VersionResolutionFailedError{
			Repo:   repo,
			Reason: fmt.Sprintf("release metadata query returned status %d", resp.StatusCode),
		}
	}

	var rel Release
	if err := json.NewDecoder(resp.Body).Decode(&rel); err != nil {
		return "", &VersionResolutionFailedError{Repo: repo, Reason: "decode release metadata", Err: err}
	}

	if rel.TagName == "" {
		return "", &VersionResolutionFailedError{Repo: repo, Reason: "release metadata has no tag"}
	}

	return rel.TagName, nil
}
