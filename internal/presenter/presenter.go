// Package presenter is the headless stand-in for the payment UI in a server
// deployment: Show parks the request until a client settles it over the API.
package presenter

import (
	"context"
	"sync"

	"paymediator/internal/mediator/models"
	mediator "paymediator/internal/mediator/service"
	"paymediator/pkg/domain"
	dErrors "paymediator/pkg/domain-errors"
)

type outcome struct {
	resp *models.PaymentResponse
	err  error
}

type parked struct {
	state  models.RequestState
	result chan outcome
}

// earlyOutcome is an outcome that arrived before Show parked its request.
type earlyOutcome struct {
	id domain.RequestID
	o  outcome
}

// Presenter holds at most one parked request, mirroring the mediator.
type Presenter struct {
	mu      sync.Mutex
	pending *parked
	early   *earlyOutcome
}

func New() *Presenter {
	return &Presenter{}
}

// UI adapts the presenter to the mediator's callbacks.
func (p *Presenter) UI() mediator.UI {
	return mediator.UI{Show: p.Show, Abort: p.Abort}
}

// Show parks state until Resolve, Reject, Abort or the end of ctx. An
// outcome already delivered for state.ID is returned without parking.
func (p *Presenter) Show(ctx context.Context, state models.RequestState) (*models.PaymentResponse, error) {
	entry := &parked{state: state, result: make(chan outcome, 1)}
	p.mu.Lock()
	if p.pending != nil {
		p.mu.Unlock()
		return nil, dErrors.New(dErrors.CodeAlreadyInProgress, "a payment request is already being shown")
	}
	if e := p.early; e != nil {
		p.early = nil
		if e.id == state.ID {
			p.mu.Unlock()
			return e.o.resp, e.o.err
		}
	}
	p.pending = entry
	p.mu.Unlock()

	defer func() {
		p.mu.Lock()
		if p.pending == entry {
			p.pending = nil
		}
		p.mu.Unlock()
	}()

	select {
	case o := <-entry.result:
		return o.resp, o.err
	case <-ctx.Done():
		return nil, dErrors.Wrap(ctx.Err(), dErrors.CodeAborted, "payment request abandoned")
	}
}

// Resolve completes the parked request with resp.
func (p *Presenter) Resolve(resp *models.PaymentResponse) error {
	return p.settle(outcome{resp: resp})
}

// Reject fails the parked request with err.
func (p *Presenter) Reject(err error) error {
	if err == nil {
		err = dErrors.New(dErrors.CodeAborted, "payment request rejected")
	}
	return p.settle(outcome{err: err})
}

// ResolveRequest completes request id with resp. When Show has not parked
// id yet the response is held for it.
func (p *Presenter) ResolveRequest(id domain.RequestID, resp *models.PaymentResponse) error {
	return p.settleRequest(id, outcome{resp: resp})
}

// Abort acknowledges an abort the handler agreed to.
func (p *Presenter) Abort(_ context.Context, state models.RequestState) error {
	err := p.settleRequest(state.ID, outcome{err: dErrors.New(dErrors.CodeAborted, "PaymentRequest aborted.")})
	if dErrors.HasCode(err, dErrors.CodeNoActiveRequest) {
		return nil
	}
	return err
}

// Current returns the parked request.
func (p *Presenter) Current() (models.RequestState, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.pending == nil {
		return models.RequestState{}, false
	}
	return p.pending.state, true
}

func (p *Presenter) settle(o outcome) error {
	p.mu.Lock()
	entry := p.pending
	p.pending = nil
	p.mu.Unlock()
	if entry == nil {
		return dErrors.New(dErrors.CodeNoActiveRequest, "no payment request is being shown")
	}
	entry.result <- o
	return nil
}

func (p *Presenter) settleRequest(id domain.RequestID, o outcome) error {
	p.mu.Lock()
	entry := p.pending
	switch {
	case entry == nil:
		p.early = &earlyOutcome{id: id, o: o}
		p.mu.Unlock()
		return nil
	case entry.state.ID != id:
		p.mu.Unlock()
		return dErrors.New(dErrors.CodeNoActiveRequest, "payment request is no longer being shown")
	}
	p.pending = nil
	p.mu.Unlock()
	entry.result <- o
	return nil
}
