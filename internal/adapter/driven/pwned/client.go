// Package pwned implements the BreachClient port against the Pwned Passwords
// range API (https://haveibeenpwned.com/API/v3#PwnedPasswords).
package pwned

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/ericfisherdev/passcheck/internal/domain/port/driven"
)

// DefaultBaseURL is the public Pwned Passwords API.
const DefaultBaseURL = "https://api.pwnedpasswords.com"

// maxBodyBytes bounds the range response; real responses are well under 1MB.
const maxBodyBytes = 4 << 20

// Compile-time interface satisfaction check.
var _ driven.BreachClient = (*Client)(nil)

// Client queries GET {baseURL}/range/{prefix}.
type Client struct {
	http    *http.Client
	baseURL string
}

// NewClient creates a Client whose requests are bounded by timeout.
func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		http:    &http.Client{Timeout: timeout},
		baseURL: strings.TrimRight(baseURL, "/"),
	}
}

// NewClientWithHTTPClient creates a Client with a custom http.Client.
// This constructor is intended for testing, allowing injection of an httptest server.
func NewClientWithHTTPClient(httpClient *http.Client, baseURL string) *Client {
	return &Client{
		http:    httpClient,
		baseURL: strings.TrimRight(baseURL, "/"),
	}
}

// Range fetches the suffix list for a 5-character SHA-1 prefix.
// A non-200 answer is reported as driven.ErrUnexpectedStatus.
func (c *Client) Range(ctx context.Context, prefix string) (string, error) {
	endpoint := c.baseURL + "/range/" + url.PathEscape(prefix)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return "", fmt.Errorf("build range request: %w", err)
	}
	req.Header.Set("User-Agent", "passcheck")

	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("range request for %s: %w", prefix, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("%w: %d", driven.ErrUnexpectedStatus, resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return "", fmt.Errorf("read range response for %s: %w", prefix, err)
	}

	return string(body), nil
}
