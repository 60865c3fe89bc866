package service

import (
	"context"

	"paymediator/internal/permission/models"
	"paymediator/pkg/domain"
)

// Requester asks whoever represents the user (a prompt UI, an operator
// policy) whether origin may hold the described permission.
type Requester func(ctx context.Context, origin domain.Origin, desc models.Descriptor) (models.State, error)

// DenyAll is the explicit fallback Requester: every request is denied.
func DenyAll(context.Context, domain.Origin, models.Descriptor) (models.State, error) {
	return models.StateDenied, nil
}

// AllowOrigins grants every permission to the listed origins and denies the
// rest. Unparseable entries are ignored.
func AllowOrigins(origins ...string) Requester {
	allowed := make(map[domain.Origin]bool, len(origins))
	for _, o := range origins {
		if parsed, err := domain.ParseOrigin(o); err == nil {
			allowed[parsed] = true
		}
	}
	return func(_ context.Context, origin domain.Origin, _ models.Descriptor) (models.State, error) {
		if allowed[origin] {
			return models.StateGranted, nil
		}
		return models.StateDenied, nil
	}
}
