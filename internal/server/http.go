package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/zeusync/tickbrain/internal/core/observability/log"
)

const shutdownTimeout = 5 * time.Second

// HTTPServer exposes the monitor: /ws streams snapshots and /snapshot
// returns the latest one.
type HTTPServer struct {
	server  *http.Server
	monitor *Monitor
	logger  log.Log
}

func NewHTTPServer(addr string, monitor *Monitor, logger log.Log) *HTTPServer {
	if logger == nil {
		logger = log.NewNop()
	}
	s := &HTTPServer{monitor: monitor, logger: logger.Named("http")}
	s.server = &http.Server{
		Addr:              addr,
		Handler:           s,
		ReadHeaderTimeout: 5 * time.Second,
	}
	return s
}

func (s *HTTPServer) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	switch r.URL.Path {
	case "/ws":
		s.monitor.handleWebSocket(w, r)
	case "/snapshot":
		s.handleSnapshot(w, r)
	default:
		http.NotFound(w, r)
	}
}

func (s *HTTPServer) handleSnapshot(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	b := s.monitor.Latest()
	if b == nil {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write(b)
}

// Run serves until ctx is cancelled and then shuts down gracefully.
func (s *HTTPServer) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.server.Addr)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrListenerFailed, err)
	}
	s.logger.Info("monitor listening", log.String("addr", ln.Addr().String()))

	errCh := make(chan error, 1)
	go func() { errCh <- s.server.Serve(ln) }()

	select {
	case err = <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	s.monitor.closeAll()
	if err = s.server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("monitor shutdown: %w", err)
	}
	return nil
}
