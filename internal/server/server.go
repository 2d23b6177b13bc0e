package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gorilla/mux"
	"github.com/rs/cors"
	"github.com/username/chinese-calendar/internal/calendar"
	"github.com/username/chinese-calendar/internal/config"
	"go.uber.org/zap"
)

// Route paths
const (
	RouteHealth      = "/health"
	RouteDay         = "/api/v1/days/{date}"
	RouteMonth       = "/api/v1/months/{year:[0-9]{4}}/{month:[0-9]{1,2}}"
	RouteHolidays    = "/api/v1/holidays"
	RouteWorkdays    = "/api/v1/workdays"
	RouteFindWorkday = "/api/v1/workdays/find"
)

// Server exposes a Calendar over HTTP
type Server struct {
	cal        calendar.Calendar
	cfg        config.ServerConfig
	logger     *zap.Logger
	httpServer *http.Server
	ctx        context.Context
	cancel     context.CancelFunc
}

// NewServer creates a new HTTP API server
func NewServer(cal calendar.Calendar, cfg config.ServerConfig, logger *zap.Logger) *Server {
	ctx, cancel := context.WithCancel(context.Background())

	s := &Server{
		cal:    cal,
		cfg:    cfg,
		logger: logger,
		ctx:    ctx,
		cancel: cancel,
	}

	s.httpServer = &http.Server{
		Addr:        cfg.Listen,
		Handler:     s.Handler(),
		ReadTimeout: cfg.GetReadTimeout(),
	}

	return s
}

// Handler returns the router wrapped with CORS handling
func (s *Server) Handler() http.Handler {
	router := mux.NewRouter()
	router.HandleFunc(RouteHealth, s.handleHealth).Methods(http.MethodGet)
	router.HandleFunc(RouteFindWorkday, s.handleFindWorkday).Methods(http.MethodGet)
	router.HandleFunc(RouteDay, s.handleDay).Methods(http.MethodGet)
	router.HandleFunc(RouteMonth, s.handleMonth).Methods(http.MethodGet)
	router.HandleFunc(RouteHolidays, s.handleHolidays).Methods(http.MethodGet)
	router.HandleFunc(RouteWorkdays, s.handleWorkdays).Methods(http.MethodGet)
	router.Use(s.logRequests)

	origins := s.cfg.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}

	c := cors.New(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{http.MethodGet, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type"},
	})

	return c.Handler(router)
}

// Start serves until SIGINT/SIGTERM or Stop, then shuts down gracefully
func (s *Server) Start() error {
	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("HTTP API listening", zap.String("addr", s.httpServer.Addr))
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	// Setup signal handling
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigChan)

	select {
	case err := <-errCh:
		return fmt.Errorf("server failed: %w", err)

	case sig := <-sigChan:
		s.logger.Info("Received signal, shutting down",
			zap.String("signal", sig.String()))

	case <-s.ctx.Done():
		s.logger.Info("Server stop requested")
	}

	return s.shutdown()
}

// Stop asks a running Start to shut down
func (s *Server) Stop() {
	s.cancel()
}

func (s *Server) shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), s.cfg.GetShutdownTimeout())
	defer cancel()

	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}

	s.logger.Info("HTTP API stopped")
	return nil
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.logger.Debug("Request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.String("query", r.URL.RawQuery))
		next.ServeHTTP(w, r)
	})
}
