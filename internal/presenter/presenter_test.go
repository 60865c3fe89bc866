package presenter

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"paymediator/internal/mediator/models"
	"paymediator/pkg/domain"
	dErrors "paymediator/pkg/domain-errors"
)

type result struct {
	resp *models.PaymentResponse
	err  error
}

func show(ctx context.Context, p *Presenter, state models.RequestState) <-chan result {
	out := make(chan result, 1)
	go func() {
		resp, err := p.Show(ctx, state)
		out <- result{resp, err}
	}()
	return out
}

func newState() models.RequestState {
	return models.RequestState{ID: domain.NewRequestID()}
}

func waitParked(t *testing.T, p *Presenter) {
	t.Helper()
	require.Eventually(t, func() bool {
		_, ok := p.Current()
		return ok
	}, time.Second, 5*time.Millisecond)
}

func TestPresenter(t *testing.T) {
	ctx := context.Background()

	t.Run("resolve", func(t *testing.T) {
		p := New()
		done := show(ctx, p, newState())
		waitParked(t, p)

		require.NoError(t, p.Resolve(&models.PaymentResponse{MethodName: "basic-card"}))
		r := <-done
		require.NoError(t, r.err)
		assert.Equal(t, "basic-card", r.resp.MethodName)
		_, ok := p.Current()
		assert.False(t, ok)
	})

	t.Run("abort", func(t *testing.T) {
		p := New()
		state := newState()
		done := show(ctx, p, state)
		waitParked(t, p)

		require.NoError(t, p.Abort(ctx, state))
		assert.True(t, dErrors.HasCode((<-done).err, dErrors.CodeAborted))
		assert.NoError(t, p.Abort(ctx, models.RequestState{}), "nothing left to abort")
	})

	t.Run("nothing parked", func(t *testing.T) {
		p := New()
		assert.True(t, dErrors.HasCode(p.Resolve(nil), dErrors.CodeNoActiveRequest))
	})

	t.Run("context ends", func(t *testing.T) {
		p := New()
		cctx, cancel := context.WithCancel(ctx)
		done := show(cctx, p, newState())
		waitParked(t, p)
		cancel()
		assert.True(t, dErrors.HasCode((<-done).err, dErrors.CodeAborted))
	})

	t.Run("resolved before show parks", func(t *testing.T) {
		p := New()
		state := newState()
		require.NoError(t, p.ResolveRequest(state.ID, &models.PaymentResponse{MethodName: "basic-card"}))

		resp, err := p.Show(ctx, state)
		require.NoError(t, err)
		assert.Equal(t, "basic-card", resp.MethodName)
		_, ok := p.Current()
		assert.False(t, ok)
	})

	t.Run("aborted before show parks", func(t *testing.T) {
		p := New()
		state := newState()
		require.NoError(t, p.Abort(ctx, state))

		_, err := p.Show(ctx, state)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeAborted))
	})

	t.Run("held outcome of another request is dropped", func(t *testing.T) {
		p := New()
		require.NoError(t, p.ResolveRequest(domain.NewRequestID(), &models.PaymentResponse{MethodName: "stale"}))

		cctx, cancel := context.WithCancel(ctx)
		done := show(cctx, p, newState())
		waitParked(t, p)
		cancel()
		assert.True(t, dErrors.HasCode((<-done).err, dErrors.CodeAborted))
	})

	t.Run("resolve for a replaced request", func(t *testing.T) {
		p := New()
		current := newState()
		done := show(ctx, p, current)
		waitParked(t, p)

		err := p.ResolveRequest(domain.NewRequestID(), &models.PaymentResponse{MethodName: "stale"})
		assert.True(t, dErrors.HasCode(err, dErrors.CodeNoActiveRequest))

		require.NoError(t, p.ResolveRequest(current.ID, &models.PaymentResponse{MethodName: "basic-card"}))
		r := <-done
		require.NoError(t, r.err)
		assert.Equal(t, "basic-card", r.resp.MethodName)
	})
}
