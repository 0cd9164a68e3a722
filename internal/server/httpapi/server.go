// Package httpapi exposes the auth service over HTTP/JSON. Routes under
// /api/auth are public; routes under /api/protected require a valid bearer
// token.
package httpapi

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/vkarpenko/credo/internal/logging"
	"github.com/vkarpenko/credo/internal/server/services"
)

type HTTPServer struct {
	address   string
	logger    logging.Logger
	auth      *services.AuthService
	avatars   *services.AvatarService
	jwtSecret []byte
}

func NewHTTPServer(addr string, l logging.Logger, as *services.AuthService, avs *services.AvatarService, secretKey string) *HTTPServer {
	return &HTTPServer{
		address:   addr,
		logger:    l.With("module", "http_server"),
		auth:      as,
		avatars:   avs,
		jwtSecret: []byte(secretKey),
	}
}

// Run serves until ctx is cancelled, then drains in-flight requests.
func (s *HTTPServer) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.address,
		Handler:           s.newRouter(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping HTTP server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			s.logger.Error(ctx, "shutdown error", "error", err)
		}
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", s.address)

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
