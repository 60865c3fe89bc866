package audit

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"time"
)

// Publisher captures structured audit events. In sync mode Emit writes through
// to the store; with an async buffer Emit enqueues and a Worker drains the
// queue, dropping events (with a warning) when the buffer is full.
type Publisher struct {
	store  Store
	logger *slog.Logger

	inbox  chan Event
	cancel context.CancelFunc
	wg     sync.WaitGroup
	once   sync.Once
}

type PublisherOption func(*Publisher)

// WithAsyncBuffer switches the publisher to async mode with the given queue size.
func WithAsyncBuffer(size int) PublisherOption {
	return func(p *Publisher) {
		if size > 0 {
			p.inbox = make(chan Event, size)
		}
	}
}

func WithPublisherLogger(logger *slog.Logger) PublisherOption {
	return func(p *Publisher) {
		p.logger = logger
	}
}

func NewPublisher(store Store, opts ...PublisherOption) *Publisher {
	p := &Publisher{
		store:  store,
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(p)
	}
	if p.inbox != nil {
		ctx, cancel := context.WithCancel(context.Background())
		p.cancel = cancel
		worker := NewWorker(store, p.inbox, p.logger)
		p.wg.Add(1)
		go func() {
			defer p.wg.Done()
			worker.Run(ctx)
		}()
	}
	return p
}

func (p *Publisher) Emit(ctx context.Context, base Event) error {
	if base.Timestamp.IsZero() {
		base.Timestamp = time.Now()
	}
	if base.Category == "" {
		base.Category = AuditEvent(base.Action).Category()
	}
	if p.inbox == nil {
		return p.store.Append(ctx, base)
	}
	select {
	case p.inbox <- base:
	default:
		p.logger.WarnContext(ctx, "audit buffer full, dropping event", "action", base.Action, "origin", base.Origin)
	}
	return nil
}

// Close stops the async worker after draining queued events. Safe to call
// more than once and in sync mode.
func (p *Publisher) Close() {
	p.once.Do(func() {
		if p.cancel == nil {
			return
		}
		p.cancel()
		p.wg.Wait()
	})
}
