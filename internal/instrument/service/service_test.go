package service

import (
	"context"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/suite"

	"paymediator/internal/audit"
	"paymediator/internal/instrument/metrics"
	"paymediator/internal/instrument/models"
	permission "paymediator/internal/permission/models"
	"paymediator/internal/storage"
	"paymediator/pkg/domain"
	dErrors "paymediator/pkg/domain-errors"
)

type stubPermissions struct {
	granted map[domain.Origin]bool
}

func (p *stubPermissions) Require(_ context.Context, origin domain.Origin, name permission.Name) error {
	if !p.granted[origin] {
		return dErrors.Newf(dErrors.CodePermissionDenied, "permission %q denied", name)
	}
	return nil
}

type InstrumentServiceSuite struct {
	suite.Suite
	ctx         context.Context
	repo        *Repository
	permissions *stubPermissions
	audits      *audit.MemoryStore
	metrics     *metrics.Metrics
	service     *Service
}

func TestInstrumentServiceSuite(t *testing.T) {
	suite.Run(t, new(InstrumentServiceSuite))
}

const handlerURL = "https://pay.example/h"

func wallet() *models.Record {
	return &models.Record{
		Name:           "Wallet",
		Icons:          []models.ImageObject{{Src: "/icon.png", Sizes: "32x32", Type: "image/png", FetchedImage: "data:image/png;base64,AAAA"}},
		EnabledMethods: []string{"basic-card"},
		Capabilities:   map[string]any{"supportedNetworks": []any{"visa"}},
	}
}

func (s *InstrumentServiceSuite) SetupTest() {
	s.ctx = context.Background()
	s.repo = NewRepository(storage.NewMemoryBackend())
	origin := domain.MustParseOrigin("https://pay.example")
	s.permissions = &stubPermissions{granted: map[domain.Origin]bool{origin: true}}
	s.audits = audit.NewMemoryStore()
	s.metrics = metrics.New(prometheus.NewRegistry())

	svc, err := New(origin, s.repo, s.permissions,
		WithAuditPublisher(audit.NewPublisher(s.audits)),
		WithMetrics(s.metrics),
	)
	s.Require().NoError(err)
	s.service = svc
}

func (s *InstrumentServiceSuite) TestSetThenGet() {
	s.Require().NoError(s.service.Set(s.ctx, handlerURL, "wallet1", wallet()))

	got, err := s.service.Get(s.ctx, handlerURL, "wallet1")
	s.Require().NoError(err)
	s.Require().NotNil(got)
	s.Equal("Wallet", got.Name)
	s.Equal([]string{"basic-card"}, got.EnabledMethods)
	s.Equal(map[string]any{"supportedNetworks": []any{"visa"}}, got.Capabilities)
	s.Empty(got.Icons[0].FetchedImage, "fetched images never leave the store")

	stored, err := s.repo.Get(s.ctx, handlerURL, "wallet1")
	s.Require().NoError(err)
	s.NotEmpty(stored.Icons[0].FetchedImage)

	s.Equal(1.0, testutil.ToFloat64(s.metrics.InstrumentWrites.WithLabelValues("set")))
	events, err := s.audits.ListByOrigin(s.ctx, "https://pay.example")
	s.Require().NoError(err)
	s.Require().Len(events, 1)
	s.Equal(string(audit.EventInstrumentSet), events[0].Action)
}

func (s *InstrumentServiceSuite) TestRelativeURLsNormalize() {
	s.Require().NoError(s.service.Set(s.ctx, "/h?x=1#frag", "wallet1", wallet()))
	has, err := s.service.Has(s.ctx, handlerURL, "wallet1")
	s.Require().NoError(err)
	s.True(has)
}

func (s *InstrumentServiceSuite) TestGetMissing() {
	got, err := s.service.Get(s.ctx, handlerURL, "nope")
	s.NoError(err)
	s.Nil(got)
}

func (s *InstrumentServiceSuite) TestSetRejectsInvalidRecord() {
	rec := wallet()
	rec.Capabilities = nil
	err := s.service.Set(s.ctx, handlerURL, "wallet1", rec)
	s.True(dErrors.HasCode(err, dErrors.CodeInvalidArgument))

	keys, err := s.service.Keys(s.ctx, handlerURL)
	s.Require().NoError(err)
	s.Empty(keys, "rejected records are not written")
}

func (s *InstrumentServiceSuite) TestGuards() {
	s.Run("foreign origin", func() {
		_, err := s.service.Get(s.ctx, "https://evil.example/h", "wallet1")
		s.True(dErrors.HasCode(err, dErrors.CodeOriginMismatch))
	})
	s.Run("empty key", func() {
		err := s.service.Set(s.ctx, handlerURL, " ", wallet())
		s.True(dErrors.HasCode(err, dErrors.CodeInvalidArgument))
	})
	s.Run("permission denied", func() {
		s.permissions.granted = map[domain.Origin]bool{}
		_, err := s.service.Keys(s.ctx, handlerURL)
		s.True(dErrors.HasCode(err, dErrors.CodePermissionDenied))
	})
}

func (s *InstrumentServiceSuite) TestDeleteAndClear() {
	s.Require().NoError(s.service.Set(s.ctx, handlerURL, "a", wallet()))
	s.Require().NoError(s.service.Set(s.ctx, handlerURL, "b", wallet()))

	removed, err := s.service.Delete(s.ctx, handlerURL, "a")
	s.Require().NoError(err)
	s.True(removed)

	removed, err = s.service.Delete(s.ctx, handlerURL, "a")
	s.Require().NoError(err)
	s.False(removed)

	keys, err := s.service.Keys(s.ctx, handlerURL)
	s.Require().NoError(err)
	s.Equal([]string{"b"}, keys)

	s.Require().NoError(s.service.Clear(s.ctx, handlerURL))
	keys, err = s.service.Keys(s.ctx, handlerURL)
	s.Require().NoError(err)
	s.Empty(keys)
}

func (s *InstrumentServiceSuite) TestRepositoryDestroyAndMatch() {
	s.Require().NoError(s.service.Set(s.ctx, handlerURL, "card", wallet()))
	other := wallet()
	other.EnabledMethods = []string{"https://bank.example/pay"}
	s.Require().NoError(s.service.Set(s.ctx, handlerURL, "bank", other))

	matches, err := s.repo.Match(s.ctx, handlerURL, func(r *models.Record) bool {
		return r.SupportsMethod("basic-card")
	})
	s.Require().NoError(err)
	s.Require().Len(matches, 1)
	s.Equal(handlerURL, matches[0].PaymentHandler)
	s.Equal("card", matches[0].PaymentInstrumentKey)
	s.Empty(matches[0].PaymentInstrument.Icons[0].FetchedImage)

	s.Require().NoError(s.repo.Destroy(s.ctx, handlerURL))
	s.Require().NoError(s.repo.Destroy(s.ctx, handlerURL), "destroying an empty store is a no-op")

	keys, err := s.service.Keys(s.ctx, handlerURL)
	s.Require().NoError(err)
	s.Empty(keys)
}
