// Package remote loads payment handlers into isolated execution contexts
// and calls into them through timeout-bound proxies.
package remote

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"time"
)

// FunctionSpec declares one remotely callable function. A zero Timeout
// waits indefinitely.
type FunctionSpec struct {
	Name    string
	Timeout time.Duration
}

// Options describe the context to open. Hosts may adjust them before the
// handler is loaded.
type Options struct {
	HandlerURL string
	Headers    http.Header
}

// Loader opens execution contexts.
type Loader interface {
	Load(ctx context.Context, opts Options) (Context, error)
}

// Context is a loaded handler. Close is idempotent and cancels every call
// still in flight.
type Context interface {
	BindRemote(ctx context.Context, iface string, functions []FunctionSpec) (Proxy, error)
	Close() error
}

// Proxy invokes bound functions. Go returns once the call has been handed
// to the transport, so a call started after Go returns is always delivered
// after it.
type Proxy interface {
	Go(ctx context.Context, function string, args any) *Call
}

// Call is an outstanding remote invocation.
type Call struct {
	Function string

	done   chan struct{}
	once   sync.Once
	result json.RawMessage
	err    error
}

func NewCall(function string) *Call {
	return &Call{Function: function, done: make(chan struct{})}
}

// Complete settles the call. Later calls are ignored.
func (c *Call) Complete(result json.RawMessage, err error) {
	c.once.Do(func() {
		c.result = result
		c.err = err
		close(c.done)
	})
}

func (c *Call) Done() <-chan struct{} {
	return c.done
}

// Wait blocks until the call settles or ctx ends. Ending ctx abandons the
// wait; it does not cancel the call.
func (c *Call) Wait(ctx context.Context) (json.RawMessage, error) {
	select {
	case <-c.done:
		return c.result, c.err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}
