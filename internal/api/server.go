// Package api exposes the back office over HTTP.
package api

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"

	"github.com/AhmadRaid/Premium-Umbrella-BackEnd/config"
	"github.com/AhmadRaid/Premium-Umbrella-BackEnd/internal/i18n"
	"github.com/AhmadRaid/Premium-Umbrella-BackEnd/internal/metrics"
	"github.com/AhmadRaid/Premium-Umbrella-BackEnd/internal/services"
	"github.com/AhmadRaid/Premium-Umbrella-BackEnd/internal/tracing"
)

// Server represents the HTTP server
type Server struct {
	config     config.Config
	router     *gin.Engine
	httpServer *http.Server
	handler    *Handler
	metrics    *metrics.Metrics
	tracer     *tracing.Tracer
}

// NewServer creates a new HTTP server
func NewServer(cfg config.Config, svc *services.Services, tr i18n.Translator, collector *metrics.Metrics, tracer *tracing.Tracer) *Server {
	server := &Server{
		config:  cfg,
		handler: NewHandler(svc, tr),
		metrics: collector,
		tracer:  tracer,
	}

	server.router = server.setupRouter()
	server.httpServer = &http.Server{
		Addr:         cfg.Server.Address,
		Handler:      server.router,
		ReadTimeout:  cfg.Server.Timeout,
		WriteTimeout: cfg.Server.Timeout,
	}

	return server
}

// setupRouter configures the HTTP router
func (s *Server) setupRouter() *gin.Engine {
	if s.config.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(RequestID(), Logger(), Recover(s.handler.tr), CORS(s.config.Server.CorsOrigins))
	if app := s.tracer.App(); app != nil {
		router.Use(Tracing(app))
	}
	router.Use(Metrics(s.metrics), Language(s.handler.tr))

	metricsHandler := NewMetricsHandler(s.metrics, s.config.Server.MetricsEnabled)
	metricsHandler.RegisterRoutes(router)

	s.handler.RegisterRoutes(router.Group("/api/v1"))

	router.NoRoute(func(c *gin.Context) {
		WriteError(c, s.handler.tr, ErrNotFound)
	})

	return router
}

// Handler exposes the router, mainly for tests
func (s *Server) Handler() http.Handler {
	return s.router
}

// Start starts the HTTP server
func (s *Server) Start() error {
	log.Info().Str("address", s.config.Server.Address).Msg("Starting HTTP server")

	if err := s.httpServer.ListenAndServe(); err != nil {
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return errors.Wrap(err, "HTTP server error")
	}

	return nil
}

// Shutdown gracefully stops the HTTP server
func (s *Server) Shutdown(ctx context.Context) error {
	log.Info().Msg("Shutting down HTTP server")

	shutdownCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		return errors.Wrap(err, "HTTP server shutdown error")
	}

	log.Info().Msg("HTTP server shut down successfully")
	return nil
}
