package release

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestResolveExplicitVersionSkipsNetwork(t *testing.T) {
	// Resolver pointed at a dead endpoint: any network call would fail.
	resolver := NewResolver(WithAPIBase("http://127.0.0.1:0"))

	got, err := resolver.Resolve(context.Background(), "Rul1an/assay", "v1.3.0")
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if got != "v1.3.0" {
		t.Errorf("got %q, want v1.3.0", got)
	}
}

func TestResolveLatest(t *testing.T) {
	tests := []struct {
		name       string
		statusCode int
		body       string
		want       string
		wantErr    bool
	}{
		{
			name:       "tag_present",
			statusCode: http.StatusOK,
			body:       `{"tag_name":"v1.3.0","name":"assay v1.3.0"}`,
			want:       "v1.3.0",
		},
		{
			name:       "no_tag_field",
			statusCode: http.StatusOK,
			body:       `{"name":"assay"}`,
			wantErr:    true,
		},
		{
			name:       "empty_tag",
			statusCode: http.StatusOK,
			body:       `{"tag_name":""}`,
			wantErr:    true,
		},
		{
			name:       "not_json",
			statusCode: http.StatusOK,
			body:       "<html>rate limited</html>",
			wantErr:    true,
		},
		{
			name:       "404_not_found",
			statusCode: http.StatusNotFound,
			body:       `{"message":"Not Found"}`,
			wantErr:    true,
		},
		{
			name:       "500_server_error",
			statusCode: http.StatusInternalServerError,
			body:       "server error",
			wantErr:    true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if r.URL.Path != "/repos/Rul1an/assay/releases/latest" {
					t.Errorf("unexpected path: %s", r.URL.Path)
				}
				w.WriteHeader(tt.statusCode)
				if _, err := w.Write([]byte(tt.body)); err != nil {
					t.Errorf("failed to write response: %v", err)
				}
			}))
			defer server.Close()

			resolver := NewResolver(WithAPIBase(server.URL), WithUserAgent("getassay-test"))
			got, err := resolver.Resolve(context.Background(), "Rul1an/assay", Latest)

			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error but got none")
				}
				var resErr *VersionResolutionFailedError
				if !errors.As(err, &resErr) {
					t.Errorf("error type mismatch: got %T (%v)", err, err)
				}
				return
			}

			if err != nil {
				t.Fatalf("Resolve failed: %v", err)
			}
			if got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestResolveEmptyRequestedMeansLatest(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, err := w.Write([]byte(`{"tag_name":"v2.0.0"}`)); err != nil {
			t.Errorf("failed to write response: %v", err)
		}
	}))
	defer server.Close()

	resolver := NewResolver(WithAPIBase(server.URL))
	got, err := resolver.Resolve(context.Background(), "Rul1an/assay", "")
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if got != "v2.0.0" {
		t.Errorf("got %q, want v2.0.0", got)
	}
}

func TestResolveTransportError(t *testing.T) {
	// Server closed before the request: transport-level failure.
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close()

	resolver := NewResolver(WithAPIBase(server.URL))
	_, err := resolver.Resolve(context.Background(), "Rul1an/assay", Latest)
	if err == nil {
		t.Fatal("expected error but got none")
	}
	var resErr *VersionResolutionFailedError
	if !errors.As(err, &resErr) {
		t.Errorf("error type mismatch: got %T (%v)", err, err)
	}
}
