package transport

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"
)

// DefaultTimeout is the per-call timeout enforced when Config.Timeout is
// zero.
const DefaultTimeout = 10 * time.Second

// Config configures an HTTPTransport's timeout and connection pooling.
type Config struct {
	Timeout             time.Duration
	MaxIdleConns        int
	MaxIdleConnsPerHost int
	IdleConnTimeout     time.Duration
}

// HTTPTransport is the production Transport, backed by a pooled
// *http.Client. It is the only place in the module that imports net/http
// for outbound calls.
type HTTPTransport struct {
	client  *http.Client
	timeout time.Duration
}

// New creates an HTTPTransport with connection pooling, applying
// documented defaults for any zero-valued Config field.
func New(cfg Config) *HTTPTransport {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	maxIdleConns := cfg.MaxIdleConns
	if maxIdleConns <= 0 {
		maxIdleConns = 100
	}

	maxIdleConnsPerHost := cfg.MaxIdleConnsPerHost
	if maxIdleConnsPerHost <= 0 {
		maxIdleConnsPerHost = 10
	}

	idleConnTimeout := cfg.IdleConnTimeout
	if idleConnTimeout <= 0 {
		idleConnTimeout = 90 * time.Second
	}

	rt := &http.Transport{
		MaxIdleConns:        maxIdleConns,
		MaxIdleConnsPerHost: maxIdleConnsPerHost,
		IdleConnTimeout:     idleConnTimeout,
		ForceAttemptHTTP2:   true,
	}

	return &HTTPTransport{
		client:  &http.Client{Transport: rt, Timeout: timeout},
		timeout: timeout,
	}
}

// Do issues the request, honoring both ctx cancellation and the
// transport's own per-call timeout, whichever elapses first.
func (t *HTTPTransport) Do(ctx context.Context, url string, opts Options) (*Response, error) {
	ctx, cancel := context.WithTimeout(ctx, t.timeout)
	defer cancel()

	method := opts.Method
	if method == "" {
		method = http.MethodGet
	}

	req, err := http.NewRequestWithContext(ctx, method, url, nil)
	if err != nil {
		return nil, fmt.Errorf("transport: build request: %w", err)
	}

	for k, v := range opts.Headers {
		req.Header.Set(k, v)
	}

	resp, err := t.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("transport: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("transport: read body: %w", err)
	}

	return &Response{Status: resp.StatusCode, Body: body}, nil
}
