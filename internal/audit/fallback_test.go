package audit

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"paymediator/pkg/platform/circuit"
)

type flakyStore struct {
	mu     sync.Mutex
	err    error
	events []Event
}

func (s *flakyStore) Append(_ context.Context, e Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return s.err
	}
	s.events = append(s.events, e)
	return nil
}

func TestFallbackStore(t *testing.T) {
	ctx := context.Background()
	primary := &flakyStore{err: errors.New("broker down")}
	fallback := NewMemoryStore()
	store := NewFallbackStore(primary, fallback, circuit.New("test", circuit.WithFailureThreshold(2), circuit.WithSuccessThreshold(1)), nil)

	event := func(action AuditEvent) Event {
		return Event{Origin: "https://shop.example", Action: string(action)}
	}

	err := store.Append(ctx, event(EventPaymentRequestShown))
	require.Error(t, err, "below threshold the primary error surfaces")

	require.NoError(t, store.Append(ctx, event(EventPaymentAborted)))
	got, err := fallback.ListByOrigin(ctx, "https://shop.example")
	require.NoError(t, err)
	assert.Len(t, got, 1)

	primary.mu.Lock()
	primary.err = nil
	primary.mu.Unlock()
	require.NoError(t, store.Append(ctx, event(EventPaymentAborted)))
	assert.Len(t, primary.events, 1)

	got, err = fallback.ListByOrigin(ctx, "https://shop.example")
	require.NoError(t, err)
	assert.Len(t, got, 1, "closed circuit writes to the primary only")
}
