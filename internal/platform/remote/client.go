// Copyright (c) 2026 Citely. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package remote provides the managed HTTP client for the citation service.

Every higher-level operation (creating sources, generating citations, health
checks) goes through [Client.Do], which owns the base URL, the JSON content
negotiation headers, per-call timeouts, and error normalization.

Core Responsibilities:

  - Prefix: Joins a fixed base URL with the endpoint path and query.
  - Negotiation: Sends and accepts application/json on every call.
  - Bounded: Every call carries a deadline; health checks use a short one.
  - Normalized: Failures come back as [*Error] values, never panics.

Callers decide fallback policy. This package only reports what went wrong.
*/
package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/taibuivan/citely/internal/platform/constants"
)

// Opinionated default timeouts for remote calls.
const (
	// DefaultTimeout bounds create/get/generate calls.
	DefaultTimeout = 10 * time.Second

	// HealthTimeout bounds the liveness check so a dead service is noticed quickly.
	HealthTimeout = 5 * time.Second

	// drainLimit caps how much of a discarded body is read to allow connection reuse.
	drainLimit = 64 << 10
)

// Client wraps an [http.Client] bound to one citation service base URL.
type Client struct {
	baseURL    string
	httpClient *http.Client
	timeout    time.Duration
	logger     *slog.Logger
}

// Option customizes a [Client].
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		if httpClient != nil {
			c.httpClient = httpClient
		}
	}
}

// WithTimeout sets the default per-call timeout used when a [Request] has none.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		if timeout > 0 {
			c.timeout = timeout
		}
	}
}

// WithLogger sets the logger used for debug-level call tracing.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// NewClient returns a client rooted at baseURL. A trailing slash is ignored.
func NewClient(baseURL string, opts ...Option) *Client {
	client := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{},
		timeout:    DefaultTimeout,
		logger:     slog.Default(),
	}
	for _, opt := range opts {
		opt(client)
	}
	return client
}

// BaseURL returns the normalized base URL.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Request describes a single call to the citation service.
type Request struct {
	Method string
	Path   string

	// Body is marshalled as JSON when non-nil.
	Body any

	// Query is appended to the URL when non-empty.
	Query url.Values

	// Timeout overrides the client default when positive.
	Timeout time.Duration
}

/*
Do issues the request and decodes a 2xx JSON response into out.

Parameters:
  - ctx: parent context; its cancellation also aborts the call
  - req: method, path, optional body/query/timeout
  - out: pointer to decode into, or nil to ignore the body

Returns:
  - error: nil on success, otherwise a [*Error] describing the failure kind
*/
func (c *Client) Do(ctx context.Context, req Request, out any) error {
	timeout := req.Timeout
	if timeout <= 0 {
		timeout = c.timeout
	}

	callCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	fail := func(kind Kind, status int, cause error) error {
		return &Error{Kind: kind, Method: req.Method, Path: req.Path, StatusCode: status, Cause: cause}
	}

	// 1. Serialize the body, if any
	var body io.Reader
	if req.Body != nil {
		payload, err := json.Marshal(req.Body)
		if err != nil {
			return fail(KindEncode, 0, err)
		}
		body = bytes.NewReader(payload)
	}

	// 2. Build the request with the default negotiation headers
	httpReq, err := http.NewRequestWithContext(callCtx, req.Method, c.url(req.Path, req.Query), body)
	if err != nil {
		return fail(KindNetwork, 0, err)
	}
	httpReq.Header.Set(constants.HeaderContentType, constants.MIMEApplicationJSON)
	httpReq.Header.Set(constants.HeaderAccept, constants.MIMEApplicationJSON)

	// 3. Execute
	started := time.Now()
	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return fail(KindNetwork, 0, err)
	}
	defer resp.Body.Close()

	c.logger.DebugContext(ctx, "remote_call_finished",
		slog.String("method", req.Method),
		slog.String("path", req.Path),
		slog.Int("status", resp.StatusCode),
		slog.Int64("latency_ms", time.Since(started).Milliseconds()),
	)

	// 4. Non-2xx answers are failures; the body is drained and discarded
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, drainLimit))
		return fail(KindStatus, resp.StatusCode, nil)
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, drainLimit))
		return nil
	}

	// 5. Decode the success body
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
			return fail(KindNetwork, resp.StatusCode, err)
		}
		return fail(KindDecode, resp.StatusCode, err)
	}

	return nil
}

// Ping issues a GET to path with the given timeout and ignores the body.
func (c *Client) Ping(ctx context.Context, path string, timeout time.Duration) error {
	return c.Do(ctx, Request{Method: http.MethodGet, Path: path, Timeout: timeout}, nil)
}

func (c *Client) url(path string, query url.Values) string {
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	target := c.baseURL + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}
	return target
}
