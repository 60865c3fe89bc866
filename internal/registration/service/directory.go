package service

import (
	"context"

	"paymediator/internal/registration/store"
	dErrors "paymediator/pkg/domain-errors"
)

// Directory enumerates registrations across every relying origin.
type Directory struct {
	index         *store.OriginIndex
	registrations *store.RegistrationStore
}

func NewDirectory(index *store.OriginIndex, registrations *store.RegistrationStore) *Directory {
	return &Directory{index: index, registrations: registrations}
}

// AllRegistrations returns every registered handler URL: origins in index
// order, then each registry in storage order. This is a full scan of the
// index; registration volume is small and the path is not latency critical.
func (d *Directory) AllRegistrations(ctx context.Context) ([]string, error) {
	var urls []string
	err := d.index.Each(ctx, func(_, namespace string) error {
		got, err := d.registrations.URLs(ctx, namespace)
		if err != nil {
			return err
		}
		urls = append(urls, got...)
		return nil
	})
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to enumerate registrations")
	}
	return urls, nil
}
