package workers

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const metricsShutdownTimeout = 5 * time.Second

type metricsServer struct {
	server *http.Server
}

func NewMetricsServer(addr string) (*metricsServer, error) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())

	return &metricsServer{
		server: &http.Server{Addr: addr, Handler: mux},
	}, nil
}

func (m *metricsServer) Name() string { return "metrics_server" }

func (m *metricsServer) Start(ctx context.Context) error {
	slog.Info("Starting worker", "name", m.Name(), "addr", m.server.Addr)
	defer slog.Info("Worker stopped", "name", m.Name())

	errCh := make(chan error, 1)
	go func() {
		if err := m.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), metricsShutdownTimeout)
		defer cancel()
		return m.server.Shutdown(shutdownCtx)
	}
}
