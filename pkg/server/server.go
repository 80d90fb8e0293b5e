// Package server exposes runs over HTTP and serves captured screenshots.
package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/arnavsurve/stepshot/pkg/core"
	"github.com/arnavsurve/stepshot/pkg/types"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const maxRequestBytes = 1 << 20

// Runner performs one run. An error means there is no report to return.
type Runner interface {
	Run(ctx context.Context, url string, steps []core.UseCase) (*core.RunReport, error)
}

type Config struct {
	Addr string
	// PublicDir is served at "/" so screenshot references resolve.
	PublicDir string
}

type Server struct {
	cfg        Config
	runner     Runner
	logger     types.Logger
	httpServer *http.Server
}

func New(cfg Config, runner Runner, logger types.Logger) *Server {
	if logger == nil {
		logger = types.NopLogger()
	}
	return &Server{
		cfg:    cfg,
		runner: runner,
		logger: logger,
	}
}

// Handler builds the router.
func (s *Server) Handler() http.Handler {
	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(s.logRequests)
	router.Use(middleware.Recoverer)

	router.Post("/api/run_test", s.handleRunTest)
	router.Get("/healthz", s.handleHealthz)
	router.Method(http.MethodGet, "/metrics", promhttp.Handler())

	if s.cfg.PublicDir != "" {
		router.Handle("/*", http.FileServer(http.Dir(s.cfg.PublicDir)))
	}
	return router
}

// ListenAndServe serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	s.httpServer = &http.Server{
		Addr:              s.cfg.Addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       2 * time.Minute,
		MaxHeaderBytes:    1 << 20,
	}

	serverErr := make(chan error, 1)
	go func() {
		s.logger.Info().Str("addr", s.cfg.Addr).Str("public_dir", s.cfg.PublicDir).Msg("Serving HTTP")
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	select {
	case err := <-serverErr:
		return err
	case <-ctx.Done():
	}

	s.logger.Info().Msg("Shutting down HTTP server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	return s.httpServer.Shutdown(shutdownCtx)
}

func (s *Server) handleRunTest(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBytes)

	req, err := core.DecodeRunRequest(r.Body)
	if err != nil {
		s.logger.Warn().Err(err).Str("request_id", middleware.GetReqID(r.Context())).Msg("Rejected run request")
		respondError(w, http.StatusBadRequest, err)
		return
	}

	report, err := s.runner.Run(r.Context(), req.URL, req.Usecases)
	if err != nil {
		s.logger.Error().Err(err).Str("request_id", middleware.GetReqID(r.Context())).Msg("Run failed")
		respondError(w, http.StatusInternalServerError, err)
		return
	}

	respondJSON(w, http.StatusOK, types.NewRunResponse(report))
}

func (s *Server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{"status": "ok", "time": time.Now().UTC().Format(time.RFC3339)})
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		s.logger.Debug().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", ww.Status()).
			Str("request_id", middleware.GetReqID(r.Context())).
			Dur("elapsed", time.Since(start)).
			Msg("Handled request")
	})
}
