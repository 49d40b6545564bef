// Package server exposes the Fibonacci service over HTTP.
package server

import (
	"context"
	"errors"
	"net"
	"net/http"
	"os"
	"time"

	"github.com/agbru/bigfib/internal/config"
	apperrors "github.com/agbru/bigfib/internal/errors"
	"github.com/agbru/bigfib/internal/fibonacci"
	"github.com/agbru/bigfib/internal/logging"
	"github.com/agbru/bigfib/internal/service"
)

// Server is the HTTP front end of the service. It owns the http.Server and
// shuts it down gracefully when the context passed to Start is canceled.
type Server struct {
	calc           fibonacci.Calculator
	service        service.Service
	cfg            config.AppConfig
	httpServer     *http.Server
	logger         logging.Logger
	rateLimiter    *RateLimiter
	securityConfig SecurityConfig
	metrics        *Metrics
	timeouts       Timeouts
	// progress feeds the progress gauge of the default service; nil when a
	// service was injected.
	progress *fibonacci.MetricsObserver
}

// NewServer creates a Server for calc configured from cfg.
//
// Parameters:
//   - calc: The calculator used when no service is injected.
//   - cfg: The application configuration (port, max-n, workers).
//   - opts: Functional options such as WithLogger or WithService.
//
// Returns:
//   - *Server: The initialized server, not yet listening.
func NewServer(calc fibonacci.Calculator, cfg config.AppConfig, opts ...Option) *Server {
	security := DefaultSecurityConfig()
	security.MaxNValue = cfg.MaxN

	s := &Server{
		calc:           calc,
		cfg:            cfg,
		logger:         logging.NewLogger(os.Stdout, "server"),
		securityConfig: security,
		metrics:        NewMetrics(),
		timeouts:       DefaultServerTimeouts(),
	}
	for _, opt := range opts {
		opt(s)
	}

	if s.service == nil {
		s.progress = fibonacci.NewMetricsObserver()
		subject := fibonacci.NewProgressSubject()
		subject.Register(s.progress)
		s.service = service.NewCalculatorService(s.calc,
			service.WithMaxN(s.securityConfig.MaxNValue),
			service.WithWorkers(cfg.Workers),
			service.WithProgressReporter(subject.AsProgressReporter(0)))
	}
	if s.rateLimiter == nil {
		s.rateLimiter = NewRateLimiter(DefaultRateLimiterConfig())
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/fib", s.wrapWithMiddleware(s.handleFib))
	mux.HandleFunc("/sequence", s.wrapWithMiddleware(s.handleSequence))
	mux.HandleFunc("/batch", s.wrapWithMiddleware(s.handleBatch))
	mux.HandleFunc("/health", s.wrapWithMiddleware(s.handleHealth))
	mux.HandleFunc("/metrics", s.wrapWithMiddleware(s.handleMetrics))

	s.httpServer = &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      mux,
		ReadTimeout:  s.timeouts.ReadTimeout,
		WriteTimeout: s.timeouts.WriteTimeout,
		IdleTimeout:  s.timeouts.IdleTimeout,
	}
	return s
}

// Handler returns the root handler, for tests and embedding.
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

// wrapWithMiddleware applies Security -> RateLimit -> Logging -> Metrics.
func (s *Server) wrapWithMiddleware(handler http.HandlerFunc) http.HandlerFunc {
	wrapped := s.metricsMiddleware(handler)
	wrapped = s.loggingMiddleware(wrapped)
	wrapped = RateLimitMiddleware(s.rateLimiter, wrapped)
	return SecurityMiddleware(s.securityConfig, wrapped)
}

// Start listens on the configured port and blocks until ctx is canceled or
// the listener fails.
//
// Returns:
//   - error: A ServerError if listening or shutdown fails, nil after a
//     graceful shutdown.
func (s *Server) Start(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.httpServer.Addr)
	if err != nil {
		s.rateLimiter.Stop()
		return apperrors.NewServerError("server failed to start", err)
	}
	return s.Serve(ctx, ln)
}

// Serve is Start on an existing listener. On return the rate limiter is
// stopped and the progress gauge no longer reports this server's
// calculations.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	defer s.rateLimiter.Stop()
	if s.progress != nil {
		defer s.progress.ResetMetrics()
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("starting server",
			logging.String("addr", ln.Addr().String()),
			logging.Uint64("max_n", s.securityConfig.MaxNValue))
		if err := s.httpServer.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case <-ctx.Done():
		s.logger.Info("shutdown requested, draining connections")
	case err, ok := <-errCh:
		if ok {
			return apperrors.NewServerError("server failed", err)
		}
		return nil
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.timeouts.ShutdownTimeout)
	defer cancel()
	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		return apperrors.NewServerError("failed to gracefully shutdown server", err)
	}

	s.logger.Info("server stopped gracefully")
	return nil
}

// Timeouts holds the HTTP server timeouts.
type Timeouts struct {
	// RequestTimeout bounds a single computation.
	RequestTimeout time.Duration
	// ShutdownTimeout bounds the graceful shutdown.
	ShutdownTimeout time.Duration
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	IdleTimeout     time.Duration
}

// DefaultServerTimeouts returns the production timeouts.
func DefaultServerTimeouts() Timeouts {
	return Timeouts{
		RequestTimeout:  time.Minute,
		ShutdownTimeout: 30 * time.Second,
		ReadTimeout:     10 * time.Second,
		WriteTimeout:    2 * time.Minute,
		IdleTimeout:     2 * time.Minute,
	}
}
