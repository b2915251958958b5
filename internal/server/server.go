// Package server wires the gin router, middleware, and handlers.
package server

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/dtnitsch/link-preview-api/internal/config"
	"github.com/dtnitsch/link-preview-api/internal/metrics"
	"github.com/dtnitsch/link-preview-api/pkg/caching"
	"github.com/dtnitsch/link-preview-api/pkg/favicon"
	"github.com/dtnitsch/link-preview-api/pkg/fetcher"
	"github.com/dtnitsch/link-preview-api/pkg/metadata"
	"github.com/dtnitsch/link-preview-api/pkg/summarize"
)

// Server bundles the handler dependencies.
type Server struct {
	cfg          *config.Config
	log          *logrus.Logger
	assembler    *metadata.Assembler
	favicons     *favicon.Resolver
	fetcher      *fetcher.Fetcher
	summarizer   *summarize.Summarizer
	metaCache    *caching.Cache
	faviconCache *caching.Cache
}

// Deps are the collaborators the server needs; all are required.
type Deps struct {
	Config       *config.Config
	Logger       *logrus.Logger
	Assembler    *metadata.Assembler
	Favicons     *favicon.Resolver
	Fetcher      *fetcher.Fetcher
	Summarizer   *summarize.Summarizer
	MetaCache    *caching.Cache
	FaviconCache *caching.Cache
}

func New(d Deps) *Server {
	return &Server{
		cfg:          d.Config,
		log:          d.Logger,
		assembler:    d.Assembler,
		favicons:     d.Favicons,
		fetcher:      d.Fetcher,
		summarizer:   d.Summarizer,
		metaCache:    d.MetaCache,
		faviconCache: d.FaviconCache,
	}
}

// Router builds the gin engine with common middleware and all routes.
func (s *Server) Router() *gin.Engine {
	if s.cfg.GinMode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(RequestIDMiddleware())
	router.Use(LoggingMiddleware(s.log))
	router.Use(RecoveryMiddleware(s.log))
	router.Use(CORSMiddleware())
	router.Use(metrics.Middleware())

	router.GET("/health", s.handleHealth)
	router.GET("/metrics", metrics.Handler())

	api := router.Group("/api")
	api.Use(RateLimitMiddleware(s.cfg.RateLimitRPS, s.cfg.RateLimitBurst))
	{
		api.POST("/metadata", s.handleMetadata)
		api.GET("/favicon/*url", s.handleFavicon)
		api.POST("/cache/clear", s.handleCacheClear)
		api.POST("/ai-summarize", s.handleSummarize)
		api.GET("/health/services", s.handleServicesHealth)
	}

	return router
}

// Start runs the HTTP server until SIGINT/SIGTERM, then drains gracefully.
func Start(cfg *config.Config, router *gin.Engine, logger *logrus.Logger) error {
	srv := &http.Server{
		Addr:        ":" + cfg.Port,
		Handler:     router,
		ReadTimeout: 30 * time.Second,
		// Write timeout stays generous: the summarize stream holds the
		// response open while the LLM produces tokens.
		WriteTimeout: 5 * time.Minute,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		logger.WithField("port", cfg.Port).Info("Starting HTTP server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.WithError(err).Fatal("Failed to start server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}
	logger.Info("Server stopped")
	return nil
}
