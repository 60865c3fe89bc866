package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptrace"
	"time"

	"paymediator/pkg/platform/sentinel"
)

const maxReplyBytes = 1 << 20

// HTTPLoader hosts handlers behind plain HTTP endpoints. Loading is a GET of
// the handler URL that must succeed with a 2xx status; each call is a JSON
// POST of {"interface","method","params"} to the same URL answered with
// {"result": ...} or {"error": {"message": ...}}.
type HTTPLoader struct {
	client *http.Client
}

type HTTPLoaderOption func(*HTTPLoader)

func WithHTTPClient(client *http.Client) HTTPLoaderOption {
	return func(l *HTTPLoader) {
		if client != nil {
			l.client = client
		}
	}
}

func NewHTTPLoader(opts ...HTTPLoaderOption) *HTTPLoader {
	l := &HTTPLoader{client: &http.Client{Timeout: 0}}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

func (l *HTTPLoader) Load(ctx context.Context, opts Options) (Context, error) {
	if opts.HandlerURL == "" {
		return nil, errors.New("handler url is required")
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, opts.HandlerURL, nil)
	if err != nil {
		return nil, fmt.Errorf("build load request: %w", err)
	}
	copyHeaders(req.Header, opts.Headers)
	resp, err := l.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w: %w", opts.HandlerURL, sentinel.ErrUnavailable, err)
	}
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxReplyBytes))
	_ = resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("load %s: status %d: %w", opts.HandlerURL, resp.StatusCode, sentinel.ErrUnavailable)
	}
	return &httpContext{
		client:   l.client,
		url:      opts.HandlerURL,
		headers:  opts.Headers.Clone(),
		lifetime: NewLifetime(),
	}, nil
}

type httpContext struct {
	client   *http.Client
	url      string
	headers  http.Header
	lifetime *Lifetime
}

func (c *httpContext) BindRemote(_ context.Context, iface string, functions []FunctionSpec) (Proxy, error) {
	return Bind(c.lifetime, c, iface, functions)
}

func (c *httpContext) Close() error {
	c.lifetime.Close()
	return nil
}

type callEnvelope struct {
	Interface string `json:"interface"`
	Method    string `json:"method"`
	Params    any    `json:"params"`
}

type replyEnvelope struct {
	Result json.RawMessage `json:"result"`
	Error  *struct {
		Message string `json:"message"`
	} `json:"error"`
}

// RemoteError is an error reported by the handler itself.
type RemoteError struct {
	Message string
}

func (e *RemoteError) Error() string {
	return "remote error: " + e.Message
}

func (c *httpContext) Send(ctx context.Context, iface, function string, args any, sent func()) (json.RawMessage, error) {
	body, err := json.Marshal(callEnvelope{Interface: iface, Method: function, Params: args})
	if err != nil {
		return nil, fmt.Errorf("encode call: %w", err)
	}
	trace := &httptrace.ClientTrace{
		WroteRequest: func(httptrace.WroteRequestInfo) { sent() },
	}
	req, err := http.NewRequestWithContext(httptrace.WithClientTrace(ctx, trace), http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build call request: %w", err)
	}
	copyHeaders(req.Header, c.headers)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", sentinel.ErrUnavailable, err)
	}
	defer resp.Body.Close()
	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxReplyBytes))
	if err != nil {
		return nil, fmt.Errorf("read reply: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("status %d: %w", resp.StatusCode, sentinel.ErrUnavailable)
	}
	var reply replyEnvelope
	if err := json.Unmarshal(raw, &reply); err != nil {
		return nil, fmt.Errorf("decode reply: %w", err)
	}
	if reply.Error != nil {
		return nil, &RemoteError{Message: reply.Error.Message}
	}
	return reply.Result, nil
}

func copyHeaders(dst, src http.Header) {
	for k, vs := range src {
		for _, v := range vs {
			dst.Add(k, v)
		}
	}
}

// DefaultLoadTimeout bounds Load when the caller's context has no deadline.
const DefaultLoadTimeout = 30 * time.Second

// WithLoadTimeout wraps a loader so loading gives up after timeout.
func WithLoadTimeout(loader Loader, timeout time.Duration) Loader {
	if timeout <= 0 {
		return loader
	}
	return timeoutLoader{loader: loader, timeout: timeout}
}

type timeoutLoader struct {
	loader  Loader
	timeout time.Duration
}

func (l timeoutLoader) Load(ctx context.Context, opts Options) (Context, error) {
	ctx, cancel := context.WithTimeoutCause(ctx, l.timeout, sentinel.ErrTimeout)
	defer cancel()
	rc, err := l.loader.Load(ctx, opts)
	if err != nil && ctx.Err() != nil {
		return nil, fmt.Errorf("%w: %w", context.Cause(ctx), err)
	}
	return rc, err
}
