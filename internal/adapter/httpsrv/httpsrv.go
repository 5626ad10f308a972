package httpsrv

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"
)

type Server struct {
	srv    *http.Server
	router *http.ServeMux
}

type ServerOptions struct {
	MetricsHandler http.Handler
	MetricsPath    string
	// Devices enables the /devices endpoints when set.
	Devices DeviceController
	// Health makes /health report the poll loop state when set.
	Health HealthReporter
	Logger *slog.Logger
}

func NewServer(addr string, opts ServerOptions) *Server {
	router := http.NewServeMux()

	srv := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	if opts.MetricsPath == "" {
		opts.MetricsPath = "/metrics"
	}

	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}

	router.Handle("GET /health", healthHandler(opts.Health))

	if opts.MetricsHandler != nil {
		router.Handle(opts.MetricsPath, opts.MetricsHandler)
	}

	if opts.Devices != nil {
		h := &devicesHandler{logger: opts.Logger, devices: opts.Devices}

		router.HandleFunc("GET /devices", h.list)
		router.HandleFunc("POST /devices", h.add)
		router.HandleFunc("DELETE /devices/{host}", h.remove)
	}

	return &Server{
		srv:    srv,
		router: router,
	}
}

func (s *Server) ListenAddr() string {
	return s.srv.Addr
}

func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) Start() error {
	err := s.srv.ListenAndServe()

	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}

	return err
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.srv.Shutdown(ctx)
}
