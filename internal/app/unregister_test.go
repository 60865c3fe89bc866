package app

import (
	"context"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	instrumentmodels "paymediator/internal/instrument/models"
	permissionmodels "paymediator/internal/permission/models"
	permission "paymediator/internal/permission/service"
	"paymediator/internal/remote/remotetest"
	"paymediator/internal/storage"
	"paymediator/pkg/testutil"
)

func TestUnregisterCascades(t *testing.T) {
	ctx := context.Background()
	services := NewServices(storage.NewMemoryBackend(), &remotetest.Loader{},
		WithHooks(Hooks{RequestPermission: permission.AllowOrigins(payOrigin.String())}),
		WithMetricsRegisterer(prometheus.NewRegistry()),
	)
	_, err := services.Permissions().Request(ctx, payOrigin, permissionmodels.Descriptor{Name: permissionmodels.PaymentHandler})
	require.NoError(t, err)
	registry, err := services.Registry(payOrigin)
	require.NoError(t, err)
	instruments, err := services.Instruments(payOrigin)
	require.NoError(t, err)
	payments, err := services.Payments(shopOrigin)
	require.NoError(t, err)
	req := request()

	testutil.Given(t, "a registered handler with an instrument", func(t *testing.T) {
		_, err := registry.Register(ctx, "/h")
		require.NoError(t, err)
		require.NoError(t, instruments.Set(ctx, "/h", "card", &instrumentmodels.Record{
			Name:           "Card",
			EnabledMethods: []string{"basic-card"},
			Capabilities:   map[string]any{},
		}))

		can, err := payments.CanMakePayment(ctx, &req)
		require.NoError(t, err)
		require.True(t, can)

		testutil.When(t, "the handler is unregistered", func(t *testing.T) {
			removed, err := registry.Unregister(ctx, "/h")
			require.NoError(t, err)
			require.True(t, removed)

			testutil.Then(t, "its instruments are gone and it no longer matches", func(t *testing.T) {
				keys, err := instruments.Keys(ctx, "/h")
				require.NoError(t, err)
				assert.Empty(t, keys)

				can, err := payments.CanMakePayment(ctx, &req)
				require.NoError(t, err)
				assert.False(t, can)
			})
		})
	})
}
