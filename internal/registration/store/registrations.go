package store

import (
	"context"

	"paymediator/internal/registration/models"
	"paymediator/internal/storage"
	"paymediator/pkg/domain"
)

const registryPrefix = "paymentHandlerRegistrations_"

// RegistryNamespace names the registry namespace of origin.
func RegistryNamespace(origin domain.Origin) string {
	return registryPrefix + origin.String()
}

// RegistrationStore persists registrations keyed by normalized handler URL.
type RegistrationStore struct {
	backend storage.Backend
}

func NewRegistrationStore(backend storage.Backend) *RegistrationStore {
	return &RegistrationStore{backend: backend}
}

// Find returns sentinel.ErrNotFound when url is not registered.
func (s *RegistrationStore) Find(ctx context.Context, namespace, url string) (*models.Registration, error) {
	return storage.GetJSON[models.Registration](ctx, s.backend.Namespace(namespace), url)
}

func (s *RegistrationStore) Save(ctx context.Context, namespace string, reg models.Registration) error {
	return storage.SetJSON(ctx, s.backend.Namespace(namespace), reg.URL, reg)
}

func (s *RegistrationStore) Remove(ctx context.Context, namespace, url string) error {
	return s.backend.Namespace(namespace).Remove(ctx, url)
}

// URLs lists registered handler URLs in storage iteration order.
func (s *RegistrationStore) URLs(ctx context.Context, namespace string) ([]string, error) {
	return s.backend.Namespace(namespace).Keys(ctx)
}

// Atomically runs fn in one storage transaction where the backend offers
// them.
func (s *RegistrationStore) Atomically(ctx context.Context, fn func(ctx context.Context) error) error {
	return storage.RunInTx(ctx, s.backend, fn)
}
