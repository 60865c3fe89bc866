package service

import (
	"bytes"
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"paymediator/internal/audit"
	"paymediator/internal/mediator/models"
	"paymediator/internal/remote"
	"paymediator/pkg/domain"
	dErrors "paymediator/pkg/domain-errors"
	"paymediator/pkg/requestcontext"
)

// Show starts a payment request and blocks until the UI settles it. The
// request state is always cleared before Show returns.
func (s *Service) Show(ctx context.Context, req models.PaymentRequest) (resp *models.PaymentResponse, err error) {
	ctx, span := s.tracer.Start(ctx, "mediator.Show", trace.WithAttributes(
		attribute.String("payment.origin", s.origin.String()),
	))
	defer func() { endSpan(span, err) }()

	if err := req.Validate(); err != nil {
		return nil, err
	}
	if req.Details.ID == "" {
		req.Details.ID = domain.NewRequestID().String()
	}

	st := &requestState{view: models.RequestState{
		ID:                   domain.NewRequestID(),
		TopLevelOrigin:       requestcontext.TopLevelOrigin(ctx, s.origin),
		PaymentRequestOrigin: s.origin,
		PaymentRequest:       req,
		CreatedAt:            requestcontext.Now(ctx),
	}}
	s.mu.Lock()
	if s.state != nil {
		s.mu.Unlock()
		return nil, dErrors.New(dErrors.CodeAlreadyInProgress, "a payment request is already in progress")
	}
	s.state = st
	s.mu.Unlock()
	defer s.clear(st)

	span.SetAttributes(attribute.String("payment.request_id", req.Details.ID))
	if s.metrics != nil {
		s.metrics.RequestStarted()
	}
	s.logger.InfoContext(ctx, "payment request shown",
		"origin", s.origin,
		"payment_request_id", req.Details.ID,
		"top_level_origin", st.view.TopLevelOrigin,
	)
	s.emit(ctx, audit.EventPaymentRequestShown, req.Details.ID, "")

	resp, err = s.ui.Show(ctx, st.view)
	if err == nil && resp == nil {
		err = dErrors.New(dErrors.CodeInvalidResponse, "payment request completed without a response")
	}
	if err != nil {
		s.settled(ctx, "failed", req.Details.ID, err)
		return nil, err
	}
	s.settled(ctx, "completed", req.Details.ID, nil)
	return resp, nil
}

func (s *Service) settled(ctx context.Context, outcome, requestID string, err error) {
	if s.metrics != nil {
		s.metrics.RequestSettled(outcome)
	}
	if err != nil {
		s.logger.InfoContext(ctx, "payment request failed",
			"origin", s.origin,
			"payment_request_id", requestID,
			"error", err,
		)
		s.emit(ctx, audit.EventPaymentRequestFailed, requestID, string(dErrors.CodeOf(err)))
		return
	}
	s.logger.InfoContext(ctx, "payment request completed",
		"origin", s.origin,
		"payment_request_id", requestID,
	)
	s.emit(ctx, audit.EventPaymentRequestCompleted, requestID, "")
}

// clear drops st if it is still current, tears down any live session and
// releases abort waiters.
func (s *Service) clear(st *requestState) {
	s.mu.Lock()
	if s.state == st {
		s.state = nil
	}
	sess := st.session
	pa := st.pendingAbort
	s.mu.Unlock()

	if sess != nil {
		s.closeSession(sess)
	}
	if pa != nil {
		pa.claim()
		pa.settle(nil)
	}
}

// Abort asks the handler, if one is engaged, to abort and then acknowledges
// through the UI. Concurrent calls share one abort attempt.
func (s *Service) Abort(ctx context.Context) (err error) {
	ctx, span := s.tracer.Start(ctx, "mediator.Abort")
	defer func() { endSpan(span, err) }()

	s.mu.Lock()
	st := s.state
	if st == nil {
		s.mu.Unlock()
		return noActiveRequest()
	}
	pa := st.pendingAbort
	if pa == nil || pa.failed() {
		pa = newPendingAbort()
		st.pendingAbort = pa
	}
	sess := st.session
	var proxy remote.Proxy
	send := false
	resolveNow := false
	switch {
	case sess.engaged():
		if pa.claim() {
			send, proxy = true, sess.proxy
		}
	case sess.loading():
		// The engagement path settles the abort once loading finishes.
	default:
		resolveNow = pa.claim()
	}
	view := st.snapshot()
	s.mu.Unlock()

	if send {
		pa.settle(s.sendAbort(ctx, proxy, view))
	}
	if resolveNow {
		pa.settle(nil)
	}

	if err := pa.wait(ctx); err != nil {
		if s.metrics != nil {
			s.metrics.IncrementAbort("rejected")
		}
		s.logger.WarnContext(ctx, "payment abort failed",
			"origin", s.origin,
			"payment_request_id", view.PaymentRequest.Details.ID,
			"error", err,
		)
		return err
	}
	if s.metrics != nil {
		s.metrics.IncrementAbort("resolved")
	}
	s.emit(ctx, audit.EventPaymentAborted, view.PaymentRequest.Details.ID, "")
	return s.ui.Abort(ctx, view)
}

// sendAbort calls the handler's abortPayment. The handler may answer false
// to refuse.
func (s *Service) sendAbort(ctx context.Context, proxy remote.Proxy, view models.RequestState) error {
	raw, err := proxy.Go(ctx, fnAbortPayment, models.AbortPaymentEvent{
		PaymentRequestID:     view.PaymentRequest.Details.ID,
		PaymentRequestOrigin: view.PaymentRequestOrigin.String(),
	}).Wait(ctx)
	if err != nil {
		return dErrors.Wrap(err, dErrors.CodeRemoteCallFailure, "payment handler abort failed")
	}
	if bytes.Equal(bytes.TrimSpace(raw), []byte("false")) {
		return dErrors.New(dErrors.CodeRemoteCallFailure, "payment handler refused to abort")
	}
	return nil
}

// SelectPaymentInstrument engages the selected handler and returns its
// response. Failures leave the request in place so another instrument can
// be tried.
func (s *Service) SelectPaymentInstrument(ctx context.Context, sel models.Selection) (*models.PaymentResponse, error) {
	_, resp, err := s.SelectForRequest(ctx, sel)
	return resp, err
}

// SelectForRequest is SelectPaymentInstrument that also reports which
// request the selection was made for.
func (s *Service) SelectForRequest(ctx context.Context, sel models.Selection) (id domain.RequestID, resp *models.PaymentResponse, err error) {
	ctx, span := s.tracer.Start(ctx, "mediator.SelectPaymentInstrument", trace.WithAttributes(
		attribute.String("payment.handler", sel.PaymentHandler),
	))
	defer func() { endSpan(span, err) }()

	if err := sel.Validate(); err != nil {
		return id, nil, err
	}
	rec, err := s.instruments.Get(ctx, sel.PaymentHandler, sel.PaymentInstrumentKey)
	if err != nil {
		return id, nil, err
	}
	if rec == nil {
		return id, nil, dErrors.Newf(dErrors.CodeInvalidArgument,
			"no payment instrument %q for handler %q", sel.PaymentInstrumentKey, sel.PaymentHandler)
	}

	s.mu.Lock()
	st := s.state
	if st == nil {
		s.mu.Unlock()
		return id, nil, noActiveRequest()
	}
	if st.session != nil && !st.session.closed {
		s.mu.Unlock()
		return id, nil, dErrors.New(dErrors.CodeAlreadyInProgress, "a payment handler is already engaged")
	}
	sess := &handlerSession{handlerURL: sel.PaymentHandler}
	st.session = sess
	id = st.view.ID
	s.mu.Unlock()

	if s.metrics != nil {
		defer s.metrics.ObserveSelection(time.Now())
	}
	resp, err = s.handlePaymentRequest(ctx, st, sess, sel.PaymentInstrumentKey)
	return id, resp, err
}

// handlePaymentRequest loads the handler, sends requestPayment and, if an
// abort was queued meanwhile, abortPayment right after it. requestPayment
// always goes first: whether a handler can honor an abort before it has
// seen the request is up to the handler.
func (s *Service) handlePaymentRequest(ctx context.Context, st *requestState, sess *handlerSession, instrumentKey string) (*models.PaymentResponse, error) {
	view := st.view
	proxy, err := s.load(ctx, sess)
	if err != nil {
		s.mu.Lock()
		sess.closed = true
		pa := st.pendingAbort
		s.mu.Unlock()
		if pa != nil && pa.claim() {
			pa.settle(nil)
		}
		if s.metrics != nil {
			s.metrics.IncrementLoadFailure()
		}
		s.logger.WarnContext(ctx, "payment handler failed to load",
			"origin", s.origin,
			"handler_url", sess.handlerURL,
			"error", err,
		)
		return nil, dErrors.Wrap(err, dErrors.CodeHandlerLoadFailure, "failed to load payment handler")
	}
	defer s.closeSession(sess)

	call := proxy.Go(ctx, fnRequestPayment, models.PaymentRequestEvent{
		TopLevelOrigin:       view.TopLevelOrigin.String(),
		PaymentRequestOrigin: view.PaymentRequestOrigin.String(),
		PaymentRequestID:     view.PaymentRequest.Details.ID,
		MethodData:           view.PaymentRequest.MethodData,
		Total:                view.PaymentRequest.Details.Total,
		Modifiers:            view.PaymentRequest.Details.Modifiers,
		InstrumentKey:        instrumentKey,
	})
	s.emit(ctx, audit.EventPaymentHandlerEngaged, sess.handlerURL, "")

	s.mu.Lock()
	sess.proxy = proxy
	sess.ready = true
	pa := st.pendingAbort
	sendAbort := pa != nil && pa.claim()
	s.mu.Unlock()
	if sendAbort {
		pa.settle(s.sendAbort(ctx, proxy, view))
	}

	raw, err := call.Wait(ctx)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeRemoteCallFailure, "payment handler request failed")
	}
	return toPaymentResponse(view.PaymentRequest.Details.ID, raw)
}

// load opens the execution context and binds the handler interface. On
// failure nothing is left open.
func (s *Service) load(ctx context.Context, sess *handlerSession) (remote.Proxy, error) {
	opts := remote.Options{HandlerURL: sess.handlerURL}
	if s.customizeWindow != nil {
		if err := s.customizeWindow(ctx, &opts); err != nil {
			return nil, err
		}
	}
	rc, err := s.loader.Load(ctx, opts)
	if err != nil {
		return nil, err
	}
	proxy, err := rc.BindRemote(ctx, handlerInterface, []remote.FunctionSpec{
		{Name: fnRequestPayment, Timeout: 0},
		{Name: fnAbortPayment, Timeout: s.abortTimeout},
	})
	if err != nil {
		_ = rc.Close()
		return nil, err
	}

	s.mu.Lock()
	sess.context = rc
	closed := sess.closed
	s.mu.Unlock()
	if closed {
		// The request was cleared while loading.
		_ = rc.Close()
		return nil, dErrors.New(dErrors.CodeAborted, "payment request ended while the handler was loading")
	}
	return proxy, nil
}

func (s *Service) closeSession(sess *handlerSession) {
	s.mu.Lock()
	sess.closed = true
	rc := sess.context
	s.mu.Unlock()
	if rc != nil {
		_ = rc.Close()
	}
}

func endSpan(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, string(dErrors.CodeOf(err)))
	}
	span.End()
}
