package remote

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"paymediator/pkg/platform/sentinel"
)

// ErrUnknownFunction is returned for calls to functions that were not bound.
var ErrUnknownFunction = errors.New("function not bound")

// Transport delivers one call. It must invoke sent once the request has been
// written (or as soon as it knows it never will be).
type Transport interface {
	Send(ctx context.Context, iface, function string, args any, sent func()) (json.RawMessage, error)
}

// Lifetime ties calls to an execution context: closing it cancels every
// call in flight. The zero value is not usable; use NewLifetime.
type Lifetime struct {
	ctx    context.Context
	cancel context.CancelCauseFunc
	once   sync.Once
}

func NewLifetime() *Lifetime {
	ctx, cancel := context.WithCancelCause(context.Background())
	return &Lifetime{ctx: ctx, cancel: cancel}
}

func (l *Lifetime) Close() {
	l.once.Do(func() { l.cancel(sentinel.ErrClosed) })
}

func (l *Lifetime) Closed() bool {
	return l.ctx.Err() != nil
}

// Bind builds a Proxy enforcing each function's timeout over transport.
func Bind(lifetime *Lifetime, transport Transport, iface string, functions []FunctionSpec) (Proxy, error) {
	if iface == "" {
		return nil, errors.New("interface name is required")
	}
	specs := make(map[string]FunctionSpec, len(functions))
	for _, fn := range functions {
		if fn.Name == "" {
			return nil, errors.New("function name is required")
		}
		if fn.Timeout < 0 {
			return nil, fmt.Errorf("function %q: negative timeout", fn.Name)
		}
		specs[fn.Name] = fn
	}
	if lifetime.Closed() {
		return nil, sentinel.ErrClosed
	}
	return &boundProxy{lifetime: lifetime, transport: transport, iface: iface, specs: specs}, nil
}

type boundProxy struct {
	lifetime  *Lifetime
	transport Transport
	iface     string
	specs     map[string]FunctionSpec
}

func (p *boundProxy) Go(ctx context.Context, function string, args any) *Call {
	call := NewCall(function)
	spec, ok := p.specs[function]
	if !ok {
		call.Complete(nil, fmt.Errorf("%s.%s: %w", p.iface, function, ErrUnknownFunction))
		return call
	}

	callCtx, cancel := context.WithCancelCause(ctx)
	stop := context.AfterFunc(p.lifetime.ctx, func() { cancel(sentinel.ErrClosed) })
	if spec.Timeout > 0 {
		var cancelTimeout context.CancelFunc
		callCtx, cancelTimeout = context.WithTimeoutCause(callCtx, spec.Timeout, sentinel.ErrTimeout)
		prev := cancel
		cancel = func(cause error) {
			cancelTimeout()
			prev(cause)
		}
	}

	sent := make(chan struct{})
	var sentOnce sync.Once
	markSent := func() { sentOnce.Do(func() { close(sent) }) }

	go func() {
		defer stop()
		defer cancel(nil)
		result, err := p.transport.Send(callCtx, p.iface, function, args, markSent)
		markSent()
		if err != nil {
			if cause := context.Cause(callCtx); cause != nil && callCtx.Err() != nil {
				err = cause
			}
			call.Complete(nil, fmt.Errorf("%s.%s: %w", p.iface, function, err))
			return
		}
		call.Complete(result, nil)
	}()

	<-sent
	return call
}
