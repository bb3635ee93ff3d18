package api

import (
	"context"
	"io"
	"net/http"
	"time"

	"go.uber.org/multierr"
)

// NewServer returns the HTTP server cmd/api listens with.
func NewServer(addr string, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
}

// Shutdown drains in-flight requests, then closes every resource. All
// failures are returned together.
func Shutdown(ctx context.Context, srv *http.Server, closers ...io.Closer) error {
	var err error
	if srv != nil {
		err = srv.Shutdown(ctx)
	}
	for _, c := range closers {
		if c == nil {
			continue
		}
		err = multierr.Append(err, c.Close())
	}
	return err
}
