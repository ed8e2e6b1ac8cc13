// Package fetch retrieves content by identifier from a remote service.
package fetch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
)

// ErrNotFound is returned when the remote does not have the content.
var ErrNotFound = errors.New("fetch: not found")

// Fetcher retrieves the byte payload for a content identifier.
type Fetcher interface {
	Fetch(ctx context.Context, id string) ([]byte, error)
}

// HTTP fetches content from an aggregator-style HTTP endpoint via
// GET {endpoint}/v1/blobs/{id}.
type HTTP struct {
	endpoint string
	client   *http.Client
	headers  http.Header
}

// Option configures an HTTP fetcher.
type Option func(*HTTP)

// WithClient sets the HTTP client used for requests.
func WithClient(client *http.Client) Option {
	return func(f *HTTP) {
		f.client = client
	}
}

// WithHeader sets a single header on each request.
func WithHeader(key, value string) Option {
	return func(f *HTTP) {
		if f.headers == nil {
			f.headers = make(http.Header)
		}
		f.headers.Set(key, value)
	}
}

// NewHTTP creates a fetcher against the given endpoint base URL.
func NewHTTP(endpoint string, opts ...Option) (*HTTP, error) {
	if endpoint == "" {
		return nil, errors.New("fetch: endpoint is empty")
	}
	if _, err := url.Parse(endpoint); err != nil {
		return nil, fmt.Errorf("fetch: invalid endpoint %q: %w", endpoint, err)
	}
	f := &HTTP{
		endpoint: strings.TrimRight(endpoint, "/"),
		client:   http.DefaultClient,
	}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		opt(f)
	}
	if f.client == nil {
		f.client = http.DefaultClient
	}
	return f, nil
}

// Endpoint returns the configured base URL.
func (f *HTTP) Endpoint() string {
	return f.endpoint
}

// Fetch retrieves the payload for id.
func (f *HTTP) Fetch(ctx context.Context, id string) ([]byte, error) {
	target := f.endpoint + "/v1/blobs/" + url.PathEscape(id)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, err
	}
	for key, values := range f.headers {
		for _, value := range values {
			req.Header.Add(key, value)
		}
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() {
		_, _ = io.Copy(io.Discard, resp.Body)
		_ = resp.Body.Close()
	}()

	switch resp.StatusCode {
	case http.StatusOK:
		// ok
	case http.StatusNotFound:
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	default:
		return nil, fmt.Errorf("fetch %s: unexpected status %s", id, resp.Status)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: read body: %w", id, err)
	}
	return data, nil
}
