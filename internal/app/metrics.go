package app

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"github.com/dshills/asyncui/internal/metrics"
)

// metricsServer serves the Prometheus collectors over HTTP.
type metricsServer struct {
	srv    *http.Server
	ln     net.Listener
	done   chan struct{}
	logger zerolog.Logger
}

// startMetrics listens on addr and serves /metrics and /healthz in the
// background.
func startMetrics(addr string, logger zerolog.Logger) (*metricsServer, error) {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, err
	}

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Get("/metrics", metrics.Handler().ServeHTTP)
	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = w.Write([]byte("ok\n"))
	})

	m := &metricsServer{
		srv: &http.Server{
			Handler:           r,
			ReadHeaderTimeout: 5 * time.Second,
		},
		ln:     ln,
		done:   make(chan struct{}),
		logger: logger,
	}
	go func() {
		defer close(m.done)
		if err := m.srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			m.logger.Error().Err(err).Msg("metrics server failed")
		}
	}()
	logger.Info().Str("addr", m.Addr()).Msg("serving metrics")
	return m, nil
}

// Addr returns the listening address.
func (m *metricsServer) Addr() string {
	return m.ln.Addr().String()
}

// Shutdown stops the server and waits for it to exit.
func (m *metricsServer) Shutdown(ctx context.Context) error {
	err := m.srv.Shutdown(ctx)
	select {
	case <-m.done:
	case <-ctx.Done():
	}
	return err
}
