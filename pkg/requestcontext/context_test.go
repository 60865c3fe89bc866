package requestcontext

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"paymediator/pkg/domain"
)

func TestTopLevelOrigin(t *testing.T) {
	relying := domain.MustParseOrigin("https://shop.example")

	t.Run("falls back to relying origin without ancestors", func(t *testing.T) {
		assert.Equal(t, relying, TopLevelOrigin(context.Background(), relying))
	})

	t.Run("uses outermost ancestor", func(t *testing.T) {
		ctx := WithAncestorOrigins(context.Background(), []string{"https://frame.example", "https://portal.example"})
		assert.Equal(t, domain.Origin("https://portal.example"), TopLevelOrigin(ctx, relying))
	})

	t.Run("skips unparseable entries", func(t *testing.T) {
		ctx := WithAncestorOrigins(context.Background(), []string{"https://frame.example", "null"})
		assert.Equal(t, domain.Origin("https://frame.example"), TopLevelOrigin(ctx, relying))
	})
}

func TestNow(t *testing.T) {
	fixed := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	assert.Equal(t, fixed, Now(WithTime(context.Background(), fixed)))
	assert.WithinDuration(t, time.Now(), Now(context.Background()), time.Second)
}

func TestValues(t *testing.T) {
	ctx := WithRequestID(context.Background(), "req-1")
	ctx = WithRelyingOrigin(ctx, "https://shop.example")
	assert.Equal(t, "req-1", RequestID(ctx))
	assert.Equal(t, domain.Origin("https://shop.example"), RelyingOrigin(ctx))
	assert.Empty(t, RequestID(context.Background()))
}
