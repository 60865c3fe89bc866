package audit

import (
	"context"
	"io"
	"log/slog"

	"paymediator/pkg/platform/circuit"
)

// FallbackStore appends to primary and, once the circuit opens after
// repeated primary failures, to fallback as well so events are not lost
// during a broker outage. Primary is tried on every append.
type FallbackStore struct {
	primary  Store
	fallback Store
	breaker  *circuit.Breaker
	logger   *slog.Logger
}

func NewFallbackStore(primary, fallback Store, breaker *circuit.Breaker, logger *slog.Logger) *FallbackStore {
	if breaker == nil {
		breaker = circuit.New("audit")
	}
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &FallbackStore{primary: primary, fallback: fallback, breaker: breaker, logger: logger}
}

func (s *FallbackStore) Append(ctx context.Context, event Event) error {
	err := s.primary.Append(ctx, event)
	if err == nil {
		usePrimary, change := s.breaker.RecordSuccess()
		if change.Closed {
			s.logger.InfoContext(ctx, "audit sink recovered", "breaker", s.breaker.Name())
		}
		if usePrimary {
			return nil
		}
		return s.fallback.Append(ctx, event)
	}

	useFallback, change := s.breaker.RecordFailure()
	if change.Opened {
		s.logger.WarnContext(ctx, "audit sink failing, using fallback",
			"breaker", s.breaker.Name(),
			"error", err,
		)
	}
	if !useFallback {
		return err
	}
	return s.fallback.Append(ctx, event)
}
