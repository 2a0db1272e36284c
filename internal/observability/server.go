package observability

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

// Health is the body served on /healthz.
type Health struct {
	State               string     `json:"state"`
	Healthy             bool       `json:"healthy"`
	LastUpdate          *time.Time `json:"lastUpdate,omitempty"`
	LastError           string     `json:"lastError,omitempty"`
	ConsecutiveFailures int        `json:"consecutiveFailures"`
}

// HealthFunc reports the current kiosk health.
type HealthFunc func() Health

// NewRouter returns the routes served on the metrics listener.
func NewRouter(health HealthFunc) http.Handler {
	r := mux.NewRouter()
	r.Handle("/metrics", MetricsHandler()).Methods(http.MethodGet)
	r.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		h := health()
		w.Header().Set("Content-Type", "application/json")
		if !h.Healthy {
			w.WriteHeader(http.StatusServiceUnavailable)
		}
		_ = json.NewEncoder(w).Encode(h)
	}).Methods(http.MethodGet)
	return r
}

// Server is the optional metrics/health listener.
type Server struct {
	srv    *http.Server
	logger *zap.Logger
}

// NewServer prepares a listener on addr. It does not start serving.
func NewServer(addr string, health HealthFunc, logger *zap.Logger) *Server {
	return &Server{
		srv: &http.Server{
			Addr:              addr,
			Handler:           NewRouter(health),
			ReadHeaderTimeout: 5 * time.Second,
		},
		logger: logger,
	}
}

// Start serves in the background. Listener failures are logged, never fatal
// to the kiosk.
func (s *Server) Start() {
	go func() {
		s.logger.Info("metrics listener starting", zap.String("addr", s.srv.Addr))
		if err := s.srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.Error("metrics listener failed", zap.Error(err))
		}
	}()
}

// Shutdown stops the listener, waiting at most until ctx expires.
func (s *Server) Shutdown(ctx context.Context) error {
	if err := s.srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("shutdown metrics listener: %w", err)
	}
	return nil
}
