package httpserver

import (
	"net/http"
	"time"

	"paymediator/internal/platform/config"
)

// New builds an HTTP server from the server configuration. There is no
// write timeout: Show long-polls until the user finishes paying.
func New(cfg config.Server, handler http.Handler) *http.Server {
	readHeader := cfg.ReadHeaderTimeout
	if readHeader <= 0 {
		readHeader = 5 * time.Second
	}
	return &http.Server{
		Addr:              cfg.Addr,
		Handler:           handler,
		ReadHeaderTimeout: readHeader,
		IdleTimeout:       2 * time.Minute,
	}
}
