package inspector

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/vango-dev/viewslot/internal/errors"
)

// Options configures a Server.
type Options struct {
	// Addr is the listen address.
	Addr string

	// Document renders the current document.
	Document func() string

	// Gatherer provides /metrics. Nil uses the default registry.
	Gatherer prometheus.Gatherer

	// Hub streams snapshots. Nil creates one.
	Hub *Hub

	Logger *slog.Logger
}

// Server is the inspector HTTP server.
type Server struct {
	opts       Options
	hub        *Hub
	logger     *slog.Logger
	httpServer *http.Server
}

// NewServer creates an inspector server.
func NewServer(opts Options) *Server {
	if opts.Hub == nil {
		opts.Hub = NewHub()
	}
	if opts.Gatherer == nil {
		opts.Gatherer = prometheus.DefaultGatherer
	}
	if opts.Document == nil {
		opts.Document = func() string { return "" }
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Server{opts: opts, hub: opts.Hub, logger: logger.With("component", "inspector")}
}

// Hub returns the server's websocket hub.
func (s *Server) Hub() *Hub { return s.hub }

// Handler returns the inspector router.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)

	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Write([]byte(page))
	})
	r.Get("/document", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Write([]byte(s.opts.Document()))
	})
	r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(s.opts.Gatherer, promhttp.HandlerOpts{}))
	r.Get("/ws", s.hub.HandleWebSocket)

	return r
}

// Start serves until ctx is done or the listener fails.
func (s *Server) Start(ctx context.Context) error {
	s.httpServer = &http.Server{
		Addr:    s.opts.Addr,
		Handler: s.Handler(),
	}
	s.logger.Info("inspector listening", "addr", "http://"+s.opts.Addr)

	errCh := make(chan error, 1)
	go func() {
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
			return
		}
		errCh <- nil
	}()

	select {
	case <-ctx.Done():
		return s.Stop()
	case err := <-errCh:
		s.Stop()
		if err != nil {
			return errors.New("E141").WithDetail("listen on " + s.opts.Addr).Wrap(err)
		}
		return nil
	}
}

// Stop closes websocket clients and shuts the HTTP server down.
func (s *Server) Stop() error {
	s.hub.Close()
	if s.httpServer == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := s.httpServer.Shutdown(ctx); err != nil {
		return errors.New("E141").WithDetail("shutdown").Wrap(err)
	}
	return nil
}
