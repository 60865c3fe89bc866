package app

import (
	"context"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/suite"

	instrumentmodels "paymediator/internal/instrument/models"
	"paymediator/internal/mediator/models"
	permissionmodels "paymediator/internal/permission/models"
	permission "paymediator/internal/permission/service"
	"paymediator/internal/remote/remotetest"
	"paymediator/internal/storage"
	"paymediator/pkg/domain"
	dErrors "paymediator/pkg/domain-errors"
)

var (
	payOrigin  = domain.MustParseOrigin("https://pay.example")
	shopOrigin = domain.MustParseOrigin("https://shop.example")
)

type ServicesSuite struct {
	suite.Suite
	ctx      context.Context
	loader   *remotetest.Loader
	services *Services
}

func TestServicesSuite(t *testing.T) {
	suite.Run(t, new(ServicesSuite))
}

func (s *ServicesSuite) SetupTest() {
	s.ctx = context.Background()
	s.loader = &remotetest.Loader{
		Handler: func(_ context.Context, inv remotetest.Invocation) (any, error) {
			if inv.Method == "abortPayment" {
				return true, nil
			}
			return map[string]any{"methodName": "basic-card", "details": map[string]any{"token": "t-1"}}, nil
		},
	}
	s.services = NewServices(storage.NewMemoryBackend(), s.loader,
		WithHooks(Hooks{RequestPermission: permission.AllowOrigins(payOrigin.String())}),
		WithMetricsRegisterer(prometheus.NewRegistry()),
	)

	_, err := s.services.Permissions().Request(s.ctx, payOrigin, permissionmodels.Descriptor{Name: permissionmodels.PaymentHandler})
	s.Require().NoError(err)
	registry, err := s.services.Registry(payOrigin)
	s.Require().NoError(err)
	_, err = registry.Register(s.ctx, "/h")
	s.Require().NoError(err)
	instruments, err := s.services.Instruments(payOrigin)
	s.Require().NoError(err)
	s.Require().NoError(instruments.Set(s.ctx, "/h", "wallet1", &instrumentmodels.Record{
		Name:           "Wallet",
		EnabledMethods: []string{"basic-card"},
		Capabilities:   map[string]any{},
	}))
}

func request() models.PaymentRequest {
	return models.PaymentRequest{
		MethodData: []models.PaymentMethodData{{SupportedMethods: []string{"basic-card"}}},
		Details: models.PaymentDetails{
			Total: models.PaymentItem{Label: "Total", Amount: models.PaymentCurrencyAmount{Currency: "USD", Value: "5.00"}},
		},
	}
}

type showResult struct {
	resp *models.PaymentResponse
	err  error
}

func (s *ServicesSuite) startShow(p PaymentService) <-chan showResult {
	done := make(chan showResult, 1)
	go func() {
		resp, err := p.Show(s.ctx, request())
		done <- showResult{resp, err}
	}()
	s.Require().Eventually(func() bool {
		_, ok := p.Current()
		return ok
	}, time.Second, 5*time.Millisecond)
	return done
}

func (s *ServicesSuite) await(done <-chan showResult) showResult {
	select {
	case r := <-done:
		return r
	case <-time.After(2 * time.Second):
		s.FailNow("show did not settle")
		return showResult{}
	}
}

func (s *ServicesSuite) TestSelectSettlesParkedShow() {
	payments, err := s.services.Payments(shopOrigin)
	s.Require().NoError(err)
	done := s.startShow(payments)

	resp, err := payments.SelectPaymentInstrument(s.ctx, models.Selection{
		PaymentHandler:       "https://pay.example/h",
		PaymentInstrumentKey: "wallet1",
	})
	s.Require().NoError(err)
	s.Equal("basic-card", resp.MethodName)

	shown := s.await(done)
	s.Require().NoError(shown.err)
	s.Equal(resp, shown.resp)
	_, active := payments.Current()
	s.False(active)
}

func (s *ServicesSuite) TestAbortRejectsParkedShow() {
	payments, err := s.services.Payments(shopOrigin)
	s.Require().NoError(err)
	done := s.startShow(payments)

	s.Require().NoError(payments.Abort(s.ctx))
	shown := s.await(done)
	s.True(dErrors.HasCode(shown.err, dErrors.CodeAborted))
}

func (s *ServicesSuite) TestCustomShowHook() {
	services := NewServices(storage.NewMemoryBackend(), s.loader, WithHooks(Hooks{
		Show: func(_ context.Context, state models.RequestState) (*models.PaymentResponse, error) {
			return &models.PaymentResponse{RequestID: state.PaymentRequest.Details.ID, MethodName: "custom"}, nil
		},
	}), WithMetricsRegisterer(prometheus.NewRegistry()))
	payments, err := services.Payments(shopOrigin)
	s.Require().NoError(err)

	resp, err := payments.Show(s.ctx, request())
	s.Require().NoError(err)
	s.Equal("custom", resp.MethodName)
	s.NotEmpty(resp.RequestID)
}

func (s *ServicesSuite) TestServicesAreCachedPerOrigin() {
	a, err := s.services.Registry(payOrigin)
	s.Require().NoError(err)
	b, err := s.services.Registry(payOrigin)
	s.Require().NoError(err)
	s.Same(a, b)

	p1, err := s.services.Payments(shopOrigin)
	s.Require().NoError(err)
	p2, err := s.services.Payments(payOrigin)
	s.Require().NoError(err)
	s.NotSame(p1, p2)
}

func (s *ServicesSuite) TestPermissionsDenyByDefault() {
	services := NewServices(storage.NewMemoryBackend(), s.loader, WithMetricsRegisterer(prometheus.NewRegistry()))
	registry, err := services.Registry(payOrigin)
	s.Require().NoError(err)

	_, err = registry.Register(s.ctx, "/h")
	s.True(dErrors.HasCode(err, dErrors.CodePermissionDenied))
}

func (s *ServicesSuite) TestDirectorySeesRegistrations() {
	urls, err := s.services.Directory().AllRegistrations(s.ctx)
	s.Require().NoError(err)
	s.Equal([]string{"https://pay.example/h"}, urls)
}
