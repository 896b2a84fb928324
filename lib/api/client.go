// Copyright 2026 The Casedesk Authors
// SPDX-License-Identifier: Apache-2.0

package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/casedesk/casedesk/lib/netutil"
)

// DefaultTimeout bounds every REST call. Individual calls can shorten
// it further through their context.
const DefaultTimeout = 15 * time.Second

// Config holds configuration for creating a Client.
type Config struct {
	// BaseURL is the server root (e.g. "https://desk.example.com").
	// Request paths are appended to it.
	BaseURL string

	// HTTPClient is used for all requests. If nil, a client with
	// DefaultTimeout is used.
	HTTPClient *http.Client

	// Logger is used for structured logging. If nil, slog.Default()
	// is used.
	Logger *slog.Logger
}

// Client calls the casedesk REST API. The zero value is not usable;
// construct with New. Client is safe for concurrent use.
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
	logger     *slog.Logger
}

// New creates an unauthenticated Client. Use Login or Register to
// obtain a token, then WithToken for authenticated calls.
func New(config Config) (*Client, error) {
	if config.BaseURL == "" {
		return nil, fmt.Errorf("api: BaseURL is required")
	}

	// Validate the URL structure. The string form (trailing slash
	// stripped) is stored and request URLs built by concatenation.
	parsed, err := url.Parse(config.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("api: invalid BaseURL %q: %w", config.BaseURL, err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return nil, fmt.Errorf("api: BaseURL %q must be http or https", config.BaseURL)
	}

	httpClient := config.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: DefaultTimeout}
	}

	logger := config.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Client{
		baseURL:    strings.TrimRight(config.BaseURL, "/"),
		httpClient: httpClient,
		logger:     logger,
	}, nil
}

// WithToken returns a copy of the client that attaches the given
// bearer token to every request. The receiver is unchanged.
func (c *Client) WithToken(token string) *Client {
	authenticated := *c
	authenticated.token = token
	return &authenticated
}

// BaseURL returns the server root the client was created with.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// WebSocketURL returns the push channel endpoint derived from the
// base URL: the scheme flipped to ws/wss with "/ws" appended.
func (c *Client) WebSocketURL() string {
	switch {
	case strings.HasPrefix(c.baseURL, "https://"):
		return "wss://" + strings.TrimPrefix(c.baseURL, "https://") + "/ws"
	default:
		return "ws://" + strings.TrimPrefix(c.baseURL, "http://") + "/ws"
	}
}

// CloseIdleConnections closes idle HTTP connections in the underlying
// transport's pool. Call after a network disruption to force fresh
// TCP connections instead of reusing a poisoned pooled connection.
func (c *Client) CloseIdleConnections() {
	c.httpClient.CloseIdleConnections()
}

// doRequest performs an HTTP request and returns the response body.
// On 2xx, returns the body. On 4xx/5xx, returns a *StatusError.
// query may be omitted for endpoints without query parameters.
func (c *Client) doRequest(ctx context.Context, method, path string, requestBody any, query ...url.Values) ([]byte, error) {
	requestURL := c.baseURL + path
	if len(query) > 0 && query[0] != nil {
		requestURL += "?" + query[0].Encode()
	}

	var bodyReader io.Reader
	if requestBody != nil {
		encoded, err := json.Marshal(requestBody)
		if err != nil {
			return nil, fmt.Errorf("api: encoding request body: %w", err)
		}
		bodyReader = bytes.NewReader(encoded)
	}

	request, err := http.NewRequestWithContext(ctx, method, requestURL, bodyReader)
	if err != nil {
		return nil, fmt.Errorf("api: creating request: %w", err)
	}

	if requestBody != nil {
		request.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		request.Header.Set("Authorization", "Bearer "+c.token)
	}

	// Intermediaries must never serve a cached response for live
	// case and notification state.
	request.Header.Set("Cache-Control", "no-cache, no-store, must-revalidate")
	request.Header.Set("Pragma", "no-cache")
	request.Header.Set("Expires", "0")

	response, err := c.httpClient.Do(request)
	if err != nil {
		return nil, fmt.Errorf("api: %s %s: %w", method, path, err)
	}
	defer response.Body.Close()

	responseBody, err := netutil.ReadResponse(response.Body)
	if err != nil {
		return nil, fmt.Errorf("api: reading response from %s %s: %w", method, path, err)
	}

	if response.StatusCode >= 200 && response.StatusCode < 300 {
		return responseBody, nil
	}

	return responseBody, newStatusError(response.StatusCode, method, path, responseBody)
}

// getJSON performs a GET and decodes the response into out.
func (c *Client) getJSON(ctx context.Context, path string, out any, query ...url.Values) error {
	body, err := c.doRequest(ctx, http.MethodGet, path, nil, query...)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("api: parsing response from %s: %w", path, err)
	}
	return nil
}
