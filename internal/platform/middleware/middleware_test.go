package middleware

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"paymediator/internal/platform/metrics"
	"paymediator/pkg/domain"
	"paymediator/pkg/requestcontext"
)

func TestRequestID(t *testing.T) {
	var seen string
	h := RequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = GetRequestID(r.Context())
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(RequestIDHeader, "req-123")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, "req-123", seen)
	assert.Equal(t, "req-123", rec.Header().Get(RequestIDHeader))

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.NotEmpty(t, seen)
	assert.NotEqual(t, "req-123", seen)
}

func TestRelyingOrigin(t *testing.T) {
	var origin domain.Origin
	h := RelyingOrigin(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		origin = GetRelyingOrigin(r)
	}))

	tests := []struct {
		name   string
		header string
		status int
		want   domain.Origin
	}{
		{name: "missing", header: "", status: http.StatusBadRequest},
		{name: "not an origin", header: "https://shop.example/path", status: http.StatusBadRequest},
		{name: "canonicalized", header: "HTTPS://Shop.Example:443", status: http.StatusOK, want: "https://shop.example"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			origin = ""
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.header != "" {
				req.Header.Set("Origin", tt.header)
			}
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)
			assert.Equal(t, tt.status, rec.Code)
			assert.Equal(t, tt.want, origin)
		})
	}
}

func TestAncestorOrigins(t *testing.T) {
	var top domain.Origin
	h := AncestorOrigins(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		top = requestcontext.TopLevelOrigin(r.Context(), "https://shop.example")
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(AncestorOriginsHeader, "https://frame.example, https://top.example")
	h.ServeHTTP(httptest.NewRecorder(), req)
	assert.Equal(t, domain.Origin("https://top.example"), top)

	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, domain.Origin("https://shop.example"), top)
}

func TestRecoveryAndLogger(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	m := metrics.New(prometheus.NewRegistry())

	r := chi.NewRouter()
	r.Use(Recovery(logger))
	r.Use(Logger(logger, m))
	r.Get("/boom", func(http.ResponseWriter, *http.Request) { panic("boom") })

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/boom", nil))
	require.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"error":"internal","error_description":"internal server error"}`, rec.Body.String())
	assert.Equal(t, 0, testutil.CollectAndCount(m.RequestDuration), "the panicking request never reached the logger's epilogue")
}
