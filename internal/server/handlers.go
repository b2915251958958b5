package server

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/dtnitsch/link-preview-api/internal/metrics"
	"github.com/dtnitsch/link-preview-api/models"
	"github.com/dtnitsch/link-preview-api/pkg/urlx"
)

// handleMetadata serves POST /api/metadata: validate, consult the cache,
// extract, cache, respond. Extraction failure still answers with a renderable
// fallback record attached to the error body.
func (s *Server) handleMetadata(c *gin.Context) {
	var req models.URLRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.URL == "" {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "missing url"})
		return
	}
	if !urlx.IsValid(req.URL) {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid url"})
		return
	}

	key := urlx.Normalize(req.URL)
	if cached, _, ok := s.metaCache.Get(key); ok {
		metrics.CacheEvents.WithLabelValues("metadata", "hit").Inc()
		record := cached.(*models.MetadataRecord).Clone()
		record.Cached = true
		c.JSON(http.StatusOK, record)
		return
	}
	metrics.CacheEvents.WithLabelValues("metadata", "miss").Inc()

	result, err := s.metaCache.Do(key, func() (any, error) {
		record, err := s.assembler.Extract(c.Request.Context(), req.URL)
		if err != nil {
			return nil, err
		}
		s.metaCache.Set(key, record, s.cfg.MetadataTTL)
		return record, nil
	})
	if err != nil {
		metrics.ExtractionFallbacks.Inc()
		s.log.WithField("url", req.URL).WithError(err).Warn("metadata extraction failed")
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:    "failed to extract metadata",
			Fallback: s.assembler.Fallback(req.URL),
		})
		return
	}
	c.JSON(http.StatusOK, result.(*models.MetadataRecord))
}

// handleFavicon serves GET /api/favicon/*url with the URL percent-encoded in
// the path. A "not found" result is cached as a negative entry with its own
// TTL so known-absent favicons are not re-probed on every request.
func (s *Server) handleFavicon(c *gin.Context) {
	raw, err := url.QueryUnescape(strings.TrimPrefix(c.Param("url"), "/"))
	if err != nil || raw == "" || !urlx.IsValid(raw) {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid url"})
		return
	}

	key := urlx.Normalize(raw)
	if cached, negative, ok := s.faviconCache.Get(key); ok {
		if negative {
			metrics.CacheEvents.WithLabelValues("favicon", "negative_hit").Inc()
			c.JSON(http.StatusNotFound, models.ErrorResponse{Error: "no favicon found"})
			return
		}
		metrics.CacheEvents.WithLabelValues("favicon", "hit").Inc()
		c.JSON(http.StatusOK, models.FaviconResponse{FaviconURL: cached.(string)})
		return
	}
	metrics.CacheEvents.WithLabelValues("favicon", "miss").Inc()

	// Best effort: a page that cannot be fetched still gets its well-known
	// paths probed.
	doc, fetchErr := s.fetcher.GetDocument(c.Request.Context(), urlx.WithScheme(raw))
	if fetchErr != nil {
		doc = nil
	}

	found, err := s.favicons.Resolve(c.Request.Context(), raw, doc)
	if err != nil {
		s.faviconCache.SetNegative(key, s.cfg.FaviconTTL)
		c.JSON(http.StatusNotFound, models.ErrorResponse{Error: "no favicon found"})
		return
	}
	s.faviconCache.Set(key, found, s.cfg.FaviconTTL)
	c.JSON(http.StatusOK, models.FaviconResponse{FaviconURL: found})
}

// handleCacheClear serves POST /api/cache/clear.
func (s *Server) handleCacheClear(c *gin.Context) {
	s.metaCache.Clear()
	s.faviconCache.Clear()
	c.JSON(http.StatusOK, models.MessageResponse{Message: "caches cleared"})
}

// handleSummarize serves POST /api/ai-summarize as a server-push event
// stream: one data event per content delta, a terminal [DONE] event, or a
// single error event when either upstream hop fails before completion.
func (s *Server) handleSummarize(c *gin.Context) {
	var req models.URLRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.URL == "" {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "missing url"})
		return
	}
	if !urlx.IsValid(req.URL) {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid url"})
		return
	}

	c.Writer.Header().Set("Content-Type", "text/event-stream")
	c.Writer.Header().Set("Cache-Control", "no-cache")
	c.Writer.Header().Set("Connection", "keep-alive")
	c.Writer.Header().Set("X-Accel-Buffering", "no")
	c.Writer.WriteHeader(http.StatusOK)
	c.Writer.Flush()

	// The stream is bound to the request context: a client disconnect
	// cancels the upstream calls instead of draining them into nowhere.
	ctx, cancel := context.WithCancel(c.Request.Context())
	defer cancel()

	err := s.summarizer.Stream(ctx, req.URL, func(delta string) error {
		return writeEvent(c, models.SummaryChunk{Content: delta})
	})
	if err != nil {
		s.log.WithField("url", req.URL).WithError(err).Warn("summary relay failed")
		_ = writeEvent(c, models.SummaryChunk{Error: err.Error()})
		return
	}
	fmt.Fprint(c.Writer, "data: [DONE]\n\n")
	c.Writer.Flush()
}

func writeEvent(c *gin.Context, chunk models.SummaryChunk) error {
	payload, err := json.Marshal(chunk)
	if err != nil {
		return err
	}
	if _, err := fmt.Fprintf(c.Writer, "data: %s\n\n", payload); err != nil {
		return err
	}
	c.Writer.Flush()
	return nil
}

// handleServicesHealth reports liveness of the summarization collaborators.
func (s *Server) handleServicesHealth(c *gin.Context) {
	c.JSON(http.StatusOK, models.ServicesHealthResponse{
		TranscriptService: s.summarizer.TranscriptHealthy(c.Request.Context()),
		OpenAIConfigured:  s.summarizer.Configured(),
	})
}

// handleHealth reports service status and cache statistics.
func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, models.HealthResponse{
		Status:           "healthy",
		CacheSize:        s.metaCache.Len(),
		FaviconCacheSize: s.faviconCache.Len(),
	})
}
