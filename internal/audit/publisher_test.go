package audit

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPublisher_SyncMode(t *testing.T) {
	store := NewMemoryStore()
	pub := NewPublisher(store)
	defer pub.Close()

	err := pub.Emit(context.Background(), Event{
		Origin: "https://shop.example",
		Action: string(EventHandlerRegistered),
	})
	require.NoError(t, err)

	events, err := store.ListByOrigin(context.Background(), "https://shop.example")
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, CategoryCompliance, events[0].Category)
	assert.False(t, events[0].Timestamp.IsZero())
}

func TestPublisher_AsyncModeDrainsOnClose(t *testing.T) {
	store := NewMemoryStore()
	pub := NewPublisher(store, WithAsyncBuffer(10))

	for i := 0; i < 5; i++ {
		require.NoError(t, pub.Emit(context.Background(), Event{
			Origin: "https://shop.example",
			Action: string(EventPaymentRequestShown),
		}))
	}
	pub.Close()
	pub.Close()

	events, err := store.ListByOrigin(context.Background(), "https://shop.example")
	require.NoError(t, err)
	assert.Len(t, events, 5)
	assert.Equal(t, CategoryOperations, events[0].Category)
}

type failingStore struct{ calls int }

func (f *failingStore) Append(context.Context, Event) error {
	f.calls++
	return errors.New("sink down")
}

func TestPublisher_SyncModeSurfacesStoreErrors(t *testing.T) {
	pub := NewPublisher(&failingStore{})
	err := pub.Emit(context.Background(), Event{Action: string(EventPaymentAborted)})
	assert.Error(t, err)
}

func TestPublisher_AsyncModeSwallowsStoreErrors(t *testing.T) {
	store := &failingStore{}
	pub := NewPublisher(store, WithAsyncBuffer(1))
	require.NoError(t, pub.Emit(context.Background(), Event{Action: string(EventPaymentAborted)}))
	pub.Close()
	assert.Equal(t, 1, store.calls)
}

func TestAuditEventCategory(t *testing.T) {
	assert.Equal(t, CategorySecurity, EventPermissionDenied.Category())
	assert.Equal(t, CategoryCompliance, EventInstrumentSet.Category())
	assert.Equal(t, CategoryOperations, AuditEvent("unknown").Category())
}
