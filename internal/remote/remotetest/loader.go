// Package remotetest provides an in-process Loader whose handler behavior is
// scripted by the test.
package remotetest

import (
	"context"
	"encoding/json"
	"sync"

	"paymediator/internal/remote"
)

// Invocation is one call delivered to the scripted handler.
type Invocation struct {
	Interface string
	Method    string
	Params    json.RawMessage
}

// HandlerFunc answers one invocation. The result is JSON encoded.
type HandlerFunc func(ctx context.Context, inv Invocation) (any, error)

// Loader is a scriptable remote.Loader. Zero fields mean success.
type Loader struct {
	// LoadGate, when set, blocks Load until it is closed or ctx ends.
	LoadGate chan struct{}
	// Loading, when set, receives the options as soon as Load is entered.
	Loading chan remote.Options
	LoadErr error
	BindErr error
	Handler HandlerFunc

	mu       sync.Mutex
	calls    []Invocation
	opened   int
	closed   int
	lastOpts remote.Options
}

func (l *Loader) Load(ctx context.Context, opts remote.Options) (remote.Context, error) {
	l.mu.Lock()
	l.lastOpts = opts
	l.mu.Unlock()
	if l.Loading != nil {
		l.Loading <- opts
	}
	if l.LoadGate != nil {
		select {
		case <-l.LoadGate:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	if l.LoadErr != nil {
		return nil, l.LoadErr
	}
	l.mu.Lock()
	l.opened++
	l.mu.Unlock()
	return &fakeContext{loader: l, lifetime: remote.NewLifetime()}, nil
}

// Calls returns the invocations in delivery order.
func (l *Loader) Calls() []Invocation {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]Invocation(nil), l.calls...)
}

// Methods returns the invoked method names in delivery order.
func (l *Loader) Methods() []string {
	calls := l.Calls()
	out := make([]string, len(calls))
	for i, c := range calls {
		out[i] = c.Method
	}
	return out
}

// Opened and Closed count successfully loaded and closed contexts.
func (l *Loader) Opened() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.opened
}

func (l *Loader) Closed() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.closed
}

// LastOptions returns the options of the most recent Load.
func (l *Loader) LastOptions() remote.Options {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.lastOpts
}

type fakeContext struct {
	loader   *Loader
	lifetime *remote.Lifetime
	once     sync.Once
}

func (c *fakeContext) BindRemote(_ context.Context, iface string, functions []remote.FunctionSpec) (remote.Proxy, error) {
	if c.loader.BindErr != nil {
		return nil, c.loader.BindErr
	}
	return remote.Bind(c.lifetime, c, iface, functions)
}

func (c *fakeContext) Close() error {
	c.once.Do(func() {
		c.lifetime.Close()
		c.loader.mu.Lock()
		c.loader.closed++
		c.loader.mu.Unlock()
	})
	return nil
}

func (c *fakeContext) Send(ctx context.Context, iface, function string, args any, sent func()) (json.RawMessage, error) {
	params, err := json.Marshal(args)
	if err != nil {
		return nil, err
	}
	inv := Invocation{Interface: iface, Method: function, Params: params}
	c.loader.mu.Lock()
	c.loader.calls = append(c.loader.calls, inv)
	c.loader.mu.Unlock()
	sent()

	if c.loader.Handler == nil {
		return json.RawMessage("null"), nil
	}
	type outcome struct {
		result any
		err    error
	}
	done := make(chan outcome, 1)
	go func() {
		result, err := c.loader.Handler(ctx, inv)
		done <- outcome{result, err}
	}()
	select {
	case o := <-done:
		if o.err != nil {
			return nil, o.err
		}
		return json.Marshal(o.result)
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}
