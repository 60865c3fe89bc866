package service

import (
	"context"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/suite"

	"paymediator/internal/audit"
	instrumentmodels "paymediator/internal/instrument/models"
	instrument "paymediator/internal/instrument/service"
	permissionmodels "paymediator/internal/permission/models"
	permission "paymediator/internal/permission/service"
	"paymediator/internal/registration/metrics"
	"paymediator/internal/registration/store"
	"paymediator/internal/storage"
	"paymediator/pkg/domain"
	dErrors "paymediator/pkg/domain-errors"
)

type RegistrySuite struct {
	suite.Suite
	ctx         context.Context
	backend     *storage.MemoryBackend
	permissions *permission.Manager
	index       *store.OriginIndex
	regs        *store.RegistrationStore
	repo        *instrument.Repository
	audits      *audit.MemoryStore
	metrics     *metrics.Metrics
}

func TestRegistrySuite(t *testing.T) {
	suite.Run(t, new(RegistrySuite))
}

func (s *RegistrySuite) SetupTest() {
	s.ctx = context.Background()
	s.backend = storage.NewMemoryBackend()
	s.permissions = permission.New(s.backend,
		permission.WithRequester(permission.AllowOrigins("https://pay.example", "https://other.example")))
	s.index = store.NewOriginIndex(s.backend)
	s.regs = store.NewRegistrationStore(s.backend)
	s.repo = instrument.NewRepository(s.backend)
	s.audits = audit.NewMemoryStore()
	s.metrics = metrics.New(prometheus.NewRegistry())
}

// registry returns a registry for origin after granting (or not) the
// paymenthandler permission through the manager.
func (s *RegistrySuite) registry(origin string, grant bool) *Registry {
	o := domain.MustParseOrigin(origin)
	if grant {
		status, err := s.permissions.Request(s.ctx, o, permissionmodels.Descriptor{Name: permissionmodels.PaymentHandler})
		s.Require().NoError(err)
		s.Require().True(status.IsGranted())
	}
	r, err := New(o, s.index, s.regs, s.repo, s.permissions,
		WithAuditPublisher(audit.NewPublisher(s.audits)),
		WithMetrics(s.metrics),
	)
	s.Require().NoError(err)
	return r
}

func (s *RegistrySuite) TestRegister() {
	r := s.registry("https://pay.example", true)

	s.Run("normalizes to origin and path", func() {
		reg, err := r.Register(s.ctx, "https://pay.example/h?session=1#top")
		s.Require().NoError(err)
		s.Equal("https://pay.example/h", reg.URL)
		s.Equal("https://pay.example", reg.Origin)
	})

	s.Run("is idempotent", func() {
		first, err := r.Register(s.ctx, "/h")
		s.Require().NoError(err)
		second, err := r.Register(s.ctx, "https://pay.example/h")
		s.Require().NoError(err)
		s.Equal(first.URL, second.URL)
		s.Equal(first.RegisteredAt, second.RegisteredAt)

		all, err := NewDirectory(s.index, s.regs).AllRegistrations(s.ctx)
		s.Require().NoError(err)
		s.Equal([]string{"https://pay.example/h"}, all)
		s.Equal(1.0, testutil.ToFloat64(s.metrics.HandlersRegistered))
	})

	s.Run("rejects foreign origins", func() {
		_, err := r.Register(s.ctx, "https://evil.example/h")
		s.True(dErrors.HasCode(err, dErrors.CodeOriginMismatch))
	})
}

func (s *RegistrySuite) TestRegisterWithoutPermission() {
	r := s.registry("https://pay.example", false)
	_, err := r.Register(s.ctx, "/h")
	s.True(dErrors.HasCode(err, dErrors.CodePermissionDenied))

	has, err := r.HasRegistration(s.ctx, "/h")
	s.Require().NoError(err)
	s.False(has)
}

func (s *RegistrySuite) TestUnregisterCascades() {
	r := s.registry("https://pay.example", true)
	_, err := r.Register(s.ctx, "/h")
	s.Require().NoError(err)

	instruments, err := instrument.New(r.Origin(), s.repo, s.permissions)
	s.Require().NoError(err)
	for _, key := range []string{"a", "b", "c"} {
		s.Require().NoError(instruments.Set(s.ctx, "/h", key, &instrumentmodels.Record{
			Name:         key,
			Capabilities: map[string]any{},
		}))
	}

	removed, err := r.Unregister(s.ctx, "/h")
	s.Require().NoError(err)
	s.True(removed)

	keys, err := instruments.Keys(s.ctx, "/h")
	s.Require().NoError(err)
	s.Empty(keys)
	got, err := instruments.Get(s.ctx, "/h", "a")
	s.Require().NoError(err)
	s.Nil(got)

	s.Run("re-registering starts empty", func() {
		_, err := r.Register(s.ctx, "/h")
		s.Require().NoError(err)
		keys, err := instruments.Keys(s.ctx, "/h")
		s.Require().NoError(err)
		s.Empty(keys)
	})

	s.Run("absent handler", func() {
		removed, err := r.Unregister(s.ctx, "/missing")
		s.Require().NoError(err)
		s.False(removed)
	})

	events, err := s.audits.ListByOrigin(s.ctx, "https://pay.example")
	s.Require().NoError(err)
	var actions []string
	for _, e := range events {
		actions = append(actions, e.Action)
	}
	s.Contains(actions, string(audit.EventHandlerUnregistered))
}

func (s *RegistrySuite) TestAllRegistrationsSpansOrigins() {
	pay := s.registry("https://pay.example", true)
	other := s.registry("https://other.example", true)

	_, err := pay.Register(s.ctx, "/a")
	s.Require().NoError(err)
	_, err = other.Register(s.ctx, "/x")
	s.Require().NoError(err)
	_, err = pay.Register(s.ctx, "/b")
	s.Require().NoError(err)

	all, err := NewDirectory(s.index, s.regs).AllRegistrations(s.ctx)
	s.Require().NoError(err)
	s.Equal([]string{
		"https://pay.example/a",
		"https://pay.example/b",
		"https://other.example/x",
	}, all)

	s.Run("registries only see their own origin", func() {
		has, err := pay.HasRegistration(s.ctx, "https://other.example/x")
		s.True(dErrors.HasCode(err, dErrors.CodeOriginMismatch))
		s.False(has)
	})
}
