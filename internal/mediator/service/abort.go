package service

import (
	"context"
	"sync"
	"sync/atomic"
)

// pendingAbort is a single-assignment future for one abort attempt.
//
// Whoever wins claim() is responsible for settling it: Abort when the
// handler is already engaged, the engagement path once the handler loads
// (or fails to), or Abort itself when no handler was ever engaged. Clearing
// the request settles it unconditionally so no waiter is stranded.
type pendingAbort struct {
	done    chan struct{}
	once    sync.Once
	claimed atomic.Bool
	err     error
}

func newPendingAbort() *pendingAbort {
	return &pendingAbort{done: make(chan struct{})}
}

func (p *pendingAbort) claim() bool {
	return p.claimed.CompareAndSwap(false, true)
}

// settle resolves the future when err is nil and rejects it otherwise.
func (p *pendingAbort) settle(err error) {
	p.once.Do(func() {
		p.err = err
		close(p.done)
	})
}

func (p *pendingAbort) settled() bool {
	select {
	case <-p.done:
		return true
	default:
		return false
	}
}

// failed reports whether the future was rejected.
func (p *pendingAbort) failed() bool {
	return p.settled() && p.err != nil
}

func (p *pendingAbort) wait(ctx context.Context) error {
	select {
	case <-p.done:
		return p.err
	case <-ctx.Done():
		return ctx.Err()
	}
}
