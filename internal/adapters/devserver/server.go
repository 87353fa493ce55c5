// Package devserver serves the built site with live reload.
package devserver

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.trai.ch/sitepipe/internal/adapters/livereload"
	"go.trai.ch/sitepipe/internal/core/domain"
	"go.trai.ch/sitepipe/internal/core/ports"
	"go.trai.ch/zerr"
)

// MetricsPath exposes the task and live-reload metrics.
const MetricsPath = "/__sitepipe/metrics"

const shutdownTimeout = 5 * time.Second

// Server serves the output directory, the live-reload endpoints and metrics.
type Server struct {
	Addr   string
	router *chi.Mux
	server *http.Server
	logger ports.Logger
}

// NewServer creates a Server for dir on addr.
func NewServer(addr, dir string, hub *livereload.Hub, gatherer prometheus.Gatherer, logger ports.Logger) *Server {
	s := &Server{
		Addr:   addr,
		router: chi.NewRouter(),
		logger: logger,
	}

	s.setupRoutes(dir, hub, gatherer)

	// No write timeout: live-reload streams stay open.
	s.server = &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       120 * time.Second,
	}
	s.server.RegisterOnShutdown(hub.Shutdown)

	return s
}

func (s *Server) setupRoutes(dir string, hub *livereload.Hub, gatherer prometheus.Gatherer) {
	s.router.Use(middleware.Recoverer)
	s.router.Use(s.requestLogger)

	s.router.Get(livereload.EventsPath, hub.ServeHTTP)
	s.router.Get(livereload.ScriptPath, livereload.ScriptHandler)
	s.router.Handle(MetricsPath, promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{EnableOpenMetrics: true}))

	s.router.Group(func(r chi.Router) {
		r.Use(middleware.NoCache)
		r.Use(livereload.InjectScript)
		r.Handle("/*", http.FileServer(http.Dir(dir)))
	})
}

// requestLogger logs every request at debug level once it completes.
func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		s.logger.Debug(r.Method + " " + r.URL.Path + " " + http.StatusText(ww.Status()) + " " + time.Since(start).Round(time.Microsecond).String())
	})
}

// Handler returns the router, for tests and embedding.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Listen binds the server address.
func (s *Server) Listen() (net.Listener, error) {
	ln, err := net.Listen("tcp", s.Addr)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrServerFailed.Error()), "addr", s.Addr)
	}
	return ln, nil
}

// Serve serves on ln until ctx is cancelled, then shuts down gracefully.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	s.logger.Info("Serving files at http://" + ln.Addr().String())

	errCh := make(chan error, 1)
	go func() {
		errCh <- s.server.Serve(ln)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return zerr.Wrap(err, domain.ErrServerFailed.Error())
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
	defer cancel()

	if err := s.server.Shutdown(shutdownCtx); err != nil {
		return zerr.Wrap(err, "failed to shut down development server")
	}
	return nil
}

// Start listens on the server address and serves until ctx is cancelled.
func (s *Server) Start(ctx context.Context) error {
	ln, err := s.Listen()
	if err != nil {
		return err
	}
	return s.Serve(ctx, ln)
}
