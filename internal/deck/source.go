package deck

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"
)

// Source opens a deck by identifier (a file path or a URL).
type Source interface {
	Open(ctx context.Context, id string) (io.ReadCloser, error)
}

// FileSource reads decks from the local filesystem.
type FileSource struct{}

func (FileSource) Open(_ context.Context, path string) (io.ReadCloser, error) {
	return os.Open(path)
}

// HTTPSource fetches decks over HTTP(S).
type HTTPSource struct {
	Client *http.Client
}

// NewHTTPSource creates an HTTPSource with a bounded request timeout.
func NewHTTPSource() *HTTPSource {
	return &HTTPSource{Client: &http.Client{Timeout: 15 * time.Second}}
}

func (s *HTTPSource) Open(ctx context.Context, url string) (io.ReadCloser, error) {
	client := s.Client
	if client == nil {
		client = http.DefaultClient
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", url, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		resp.Body.Close()
		return nil, fmt.Errorf("fetch %s: unexpected status %s", url, resp.Status)
	}
	return resp.Body, nil
}

// AutoSource sends http:// and https:// identifiers to HTTP and everything
// else to the filesystem.
type AutoSource struct {
	Files FileSource
	HTTP  *HTTPSource
}

// NewAutoSource creates the default Source used by the CLI.
func NewAutoSource() *AutoSource {
	return &AutoSource{HTTP: NewHTTPSource()}
}

func (s *AutoSource) Open(ctx context.Context, id string) (io.ReadCloser, error) {
	if IsURL(id) {
		h := s.HTTP
		if h == nil {
			h = NewHTTPSource()
		}
		return h.Open(ctx, id)
	}
	return s.Files.Open(ctx, id)
}

// IsURL reports whether id names an HTTP(S) resource.
func IsURL(id string) bool {
	lower := strings.ToLower(id)
	return strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://")
}
