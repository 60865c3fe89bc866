package store

import (
	"context"

	"paymediator/internal/storage"
	"paymediator/pkg/domain"
)

// OriginIndexNamespace is the process-wide namespace listing every origin
// that ever registered a handler.
const OriginIndexNamespace = "paymentHandlerOrigins"

// OriginIndex maps relying origins to the namespace holding their
// registrations. One index is built per process and shared by every
// registry; entries are never removed, an origin whose registry became
// empty simply contributes nothing to enumeration.
type OriginIndex struct {
	ns storage.Namespace
}

func NewOriginIndex(backend storage.Backend) *OriginIndex {
	return &OriginIndex{ns: backend.Namespace(OriginIndexNamespace)}
}

// Add records origin. Adding an origin twice is harmless.
func (i *OriginIndex) Add(ctx context.Context, origin domain.Origin, namespace string) error {
	return i.ns.Set(ctx, origin.String(), []byte(namespace))
}

// Each visits every indexed origin with the namespace of its registry.
func (i *OriginIndex) Each(ctx context.Context, fn func(origin, namespace string) error) error {
	return i.ns.Iterate(ctx, func(key string, value []byte) error {
		return fn(key, string(value))
	})
}
