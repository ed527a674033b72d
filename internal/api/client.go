// Package api is the thin HTTP client for the remote inventory provider.
// It turns an endpoint path into a decoded JSON result or a uniform fetch
// error; caching and fallback live one layer up, in the inventory catalog.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"
)

// ErrFetchFailed matches any failure to obtain a result from the remote
// API, whether transport-level or a non-2xx status.
var ErrFetchFailed = errors.New("remote fetch failed")

// FetchError carries the endpoint path and underlying cause of a failed
// fetch. It matches ErrFetchFailed under errors.Is.
type FetchError struct {
	Path   string
	Status int // zero when the request never got a response
	Err    error
}

func (e *FetchError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("fetch %s: unexpected status %d", e.Path, e.Status)
	}
	return fmt.Sprintf("fetch %s: %v", e.Path, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }

func (e *FetchError) Is(target error) bool { return target == ErrFetchFailed }

// Client issues GET requests against a fixed base URL. No retries and no
// caching at this layer.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// New creates a client for the given base URL. The timeout bounds each
// request end to end; zero means no client-side timeout.
func New(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// Get issues a GET against baseURL+path and decodes the JSON body into out.
// Any transport failure, non-2xx status, or undecodable body yields a
// *FetchError.
func (c *Client) Get(ctx context.Context, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return &FetchError{Path: path, Err: err}
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &FetchError{Path: path, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return &FetchError{Path: path, Status: resp.StatusCode}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &FetchError{Path: path, Err: fmt.Errorf("decode response: %w", err)}
	}
	return nil
}
