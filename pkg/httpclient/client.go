// Package httpclient wraps http.Client with the header profiles the
// scraped sites require and a typed error for failed fetches.
package httpclient

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"
)

// ClientType selects the header profile for outgoing requests.
type ClientType string

const (
	// BrowserClient sends browser-like headers. The current-affairs
	// sites return 406 to Go's default User-Agent.
	BrowserClient ClientType = "browser"

	// PlainClient sends curl-like headers, for endpoints that block
	// browser User-Agents instead.
	PlainClient ClientType = "plain"
)

// FetchError reports a failed page fetch: a transport error or a
// non-2xx status. Retrying is the caller's decision.
type FetchError struct {
	URL        string
	StatusCode int
	Err        error
}

func (e *FetchError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("fetch %s: %v", e.URL, e.Err)
	}
	return fmt.Sprintf("fetch %s: status %d", e.URL, e.StatusCode)
}

func (e *FetchError) Unwrap() error { return e.Err }

// HTTPClient wraps an http.Client with a header profile.
type HTTPClient struct {
	client     *http.Client
	clientType ClientType
}

// NewClient creates an HTTP client with the specified profile.
func NewClient(clientType ClientType) *HTTPClient {
	client := &http.Client{
		Timeout: 30 * time.Second,
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			if len(via) >= 10 {
				return http.ErrUseLastResponse
			}
			return nil
		},
	}
	return &HTTPClient{client: client, clientType: clientType}
}

// Fetch retrieves a page and returns its body. Transport failures and
// non-2xx statuses come back as a *FetchError.
func (c *HTTPClient) Fetch(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, &FetchError{URL: url, Err: err}
	}
	c.setHeaders(req)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, &FetchError{URL: url, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &FetchError{URL: url, StatusCode: resp.StatusCode}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &FetchError{URL: url, Err: err}
	}
	return body, nil
}

func (c *HTTPClient) setHeaders(req *http.Request) {
	switch c.clientType {
	case BrowserClient:
		req.Header.Set("User-Agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36")
		req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
		req.Header.Set("Accept-Language", "en-US,en;q=0.9")
	case PlainClient:
		req.Header.Set("User-Agent", "curl/8.7.1")
	}
}
