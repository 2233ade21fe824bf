package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/dmitrijs2005/onboard/internal/logging"
)

// Transport sends one JSON request. body may be nil.
type Transport interface {
	Do(ctx context.Context, method, path string, body any, headers map[string]string) (*Response, error)
}

// Response is a completed exchange. A 2xx body is always valid JSON; other
// statuses may carry anything, e.g. an HTML error page from a proxy.
type Response struct {
	StatusCode int
	Body       []byte
}

// OK reports a 2xx status.
func (r *Response) OK() bool {
	return r.StatusCode >= 200 && r.StatusCode < 300
}

// Decode unmarshals the body into v.
func (r *Response) Decode(v any) error {
	if err := json.Unmarshal(r.Body, v); err != nil {
		return fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	return nil
}

// TokenSource returns the bearer credential to attach, or "" for none.
type TokenSource func() string

type HTTPClient struct {
	baseURL *url.URL
	http    *http.Client
	token   TokenSource
	log     logging.Logger
}

type Option func(*HTTPClient)

// WithHTTPClient replaces the underlying *http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *HTTPClient) { c.http = hc }
}

// WithTokenSource attaches "Authorization: Bearer <token>" when ts returns
// a non-empty token.
func WithTokenSource(ts TokenSource) Option {
	return func(c *HTTPClient) { c.token = ts }
}

func WithLogger(l logging.Logger) Option {
	return func(c *HTTPClient) { c.log = l }
}

// NewHTTPClient builds a client for baseURL (e.g. "https://host/api").
// timeout <= 0 means no client-side timeout.
func NewHTTPClient(baseURL string, timeout time.Duration, opts ...Option) (*HTTPClient, error) {
	u, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("parse base url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("parse base url: unsupported scheme %q", u.Scheme)
	}

	c := &HTTPClient{
		baseURL: u,
		http:    &http.Client{Timeout: timeout},
		log:     logging.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

func (c *HTTPClient) endpoint(path string) string {
	return c.baseURL.String() + "/" + strings.TrimLeft(path, "/")
}

func (c *HTTPClient) Do(ctx context.Context, method, path string, body any, headers map[string]string) (*Response, error) {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("marshal request body: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.endpoint(path), reader)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if c.token != nil {
		if token := c.token(); token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %s %s: %v", ErrUnavailable, method, path, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: read body: %v", ErrUnavailable, err)
	}

	c.log.Debug(ctx, "http request", "method", method, "path", path,
		"status", resp.StatusCode, "elapsed", time.Since(start))

	out := &Response{StatusCode: resp.StatusCode, Body: data}
	if out.OK() && !json.Valid(data) {
		return nil, fmt.Errorf("%w: %s %s: status %d", ErrMalformedResponse, method, path, resp.StatusCode)
	}
	return out, nil
}
