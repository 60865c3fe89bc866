package service

import (
	"paymediator/internal/mediator/models"
	"paymediator/internal/remote"
)

// requestState is the single in-flight request. Every field except view's
// immutable parts is guarded by Service.mu.
type requestState struct {
	view         models.RequestState
	session      *handlerSession
	pendingAbort *pendingAbort
}

// handlerSession is one attempt to engage a handler. proxy is set, and ready
// flips, once the execution context has loaded and bound.
type handlerSession struct {
	handlerURL string
	context    remote.Context
	proxy      remote.Proxy
	ready      bool
	closed     bool
}

// engaged reports whether the session can still receive calls.
func (s *handlerSession) engaged() bool {
	return s != nil && s.ready && !s.closed
}

// loading reports whether the session is still opening its context.
func (s *handlerSession) loading() bool {
	return s != nil && !s.ready && !s.closed
}

func (st *requestState) snapshot() models.RequestState {
	v := st.view
	if st.session != nil && !st.session.closed {
		v.HandlerURL = st.session.handlerURL
	}
	v.Aborting = st.pendingAbort != nil && !st.pendingAbort.settled()
	return v
}
