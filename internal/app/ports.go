package app

import (
	"context"

	instrumentmodels "paymediator/internal/instrument/models"
	"paymediator/internal/mediator/models"
	permissionmodels "paymediator/internal/permission/models"
	registrationmodels "paymediator/internal/registration/models"
	"paymediator/pkg/domain"
)

//go:generate mockgen -source=ports.go -destination=mocks/ports-mocks.go -package=mocks

// PermissionService is the permission gate as seen by transports.
type PermissionService interface {
	Query(ctx context.Context, origin domain.Origin, desc permissionmodels.Descriptor) (permissionmodels.Status, error)
	Request(ctx context.Context, origin domain.Origin, desc permissionmodels.Descriptor) (permissionmodels.Status, error)
}

// RegistryService is one relying origin's handler registry.
type RegistryService interface {
	Register(ctx context.Context, handlerURL string) (*registrationmodels.Registration, error)
	Unregister(ctx context.Context, handlerURL string) (bool, error)
	GetRegistration(ctx context.Context, handlerURL string) (*registrationmodels.Registration, error)
}

// InstrumentService is one relying origin's view of handler instruments.
type InstrumentService interface {
	Get(ctx context.Context, handlerURL, key string) (*instrumentmodels.Record, error)
	Set(ctx context.Context, handlerURL, key string, rec *instrumentmodels.Record) error
	Delete(ctx context.Context, handlerURL, key string) (bool, error)
	Keys(ctx context.Context, handlerURL string) ([]string, error)
	Clear(ctx context.Context, handlerURL string) error
}

// PaymentService drives one relying origin's payment requests.
type PaymentService interface {
	Show(ctx context.Context, req models.PaymentRequest) (*models.PaymentResponse, error)
	SelectPaymentInstrument(ctx context.Context, sel models.Selection) (*models.PaymentResponse, error)
	Abort(ctx context.Context) error
	CanMakePayment(ctx context.Context, req *models.PaymentRequest) (bool, error)
	MatchPaymentInstruments(ctx context.Context, req *models.PaymentRequest) ([]instrumentmodels.Match, error)
	ShippingAddressChange(ctx context.Context, addr models.ShippingAddress) (models.RequestState, error)
	ShippingOptionChange(ctx context.Context, optionID string) (models.RequestState, error)
	Current() (models.RequestState, bool)
}

// Resolver hands out the services bound to a relying origin.
type Resolver interface {
	Registry(origin domain.Origin) (RegistryService, error)
	Instruments(origin domain.Origin) (InstrumentService, error)
	Payments(origin domain.Origin) (PaymentService, error)
}
