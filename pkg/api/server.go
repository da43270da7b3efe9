// Package api exposes the service's HTTP surface: health, alert ingress,
// runbook sync trigger, and webhook registration.
package api

import (
	"context"
	"net"
	"net/http"
	"time"

	echo "github.com/labstack/echo/v5"
	"github.com/labstack/echo/v5/middleware"

	"github.com/sreops/runbook-synthesizer/pkg/cloudadapter"
	"github.com/sreops/runbook-synthesizer/pkg/config"
	"github.com/sreops/runbook-synthesizer/pkg/dispatch"
	"github.com/sreops/runbook-synthesizer/pkg/ingestion"
	"github.com/sreops/runbook-synthesizer/pkg/orchestrator"
	"github.com/sreops/runbook-synthesizer/pkg/vectorstore"
	"github.com/sreops/runbook-synthesizer/pkg/version"
)

// maxAlertBodyBytes bounds POST /api/v1/alerts bodies well above any
// realistic alert payload, rejecting oversized bodies before deserialization.
const maxAlertBodyBytes = 1 * 1024 * 1024

// Server is the HTTP API server.
type Server struct {
	echo       *echo.Echo
	httpServer *http.Server

	cfg        *config.Config
	pipeline   *orchestrator.Pipeline
	dispatcher *dispatch.Dispatcher
	ingestor   *ingestion.Service
	bucket     string

	vectorStore vectorstore.Repository
	llmProvider cloudadapter.LlmProvider
	storage     cloudadapter.StorageAdapter
}

// NewServer creates a new API server with Echo v5, wiring every route.
func NewServer(cfg *config.Config, pipeline *orchestrator.Pipeline, dispatcher *dispatch.Dispatcher, ingestor *ingestion.Service, store vectorstore.Repository, llm cloudadapter.LlmProvider, storage cloudadapter.StorageAdapter) *Server {
	e := echo.New()

	s := &Server{
		echo:        e,
		cfg:         cfg,
		pipeline:    pipeline,
		dispatcher:  dispatcher,
		ingestor:    ingestor,
		bucket:      cfg.Runbooks.Bucket,
		vectorStore: store,
		llmProvider: llm,
		storage:     storage,
	}

	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	s.echo.Use(middleware.BodyLimit(maxAlertBodyBytes))

	v1 := s.echo.Group("/api/v1")
	v1.GET("/health", s.healthHandler)
	v1.POST("/alerts", s.submitAlertHandler)
	v1.POST("/runbooks/sync", s.runbookSyncHandler)
	v1.GET("/webhooks", s.listWebhooksHandler)
	v1.POST("/webhooks", s.createWebhookHandler)
}

// Start starts the HTTP server on the given address (blocking).
func (s *Server) Start(addr string) error {
	s.httpServer = &http.Server{Addr: addr, Handler: s.echo}
	return s.httpServer.ListenAndServe()
}

// StartWithListener starts the HTTP server on a pre-created listener. Used
// by main, which opens the listener itself.
func (s *Server) StartWithListener(ln net.Listener) error {
	s.httpServer = &http.Server{Handler: s.echo}
	return s.httpServer.Serve(ln)
}

// Shutdown gracefully shuts down the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.httpServer == nil {
		return nil
	}
	return s.httpServer.Shutdown(ctx)
}

func (s *Server) healthHandler(c *echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	checks := map[string]string{
		"vectorStore":   pingVectorStore(ctx, s.vectorStore),
		"llmProvider":   pingLLMProvider(ctx, s.llmProvider),
		"cloudAdapters": pingStorage(ctx, s.storage, s.bucket),
	}

	status := "UP"
	for _, v := range checks {
		if v != "ok" {
			status = "DEGRADED"
			break
		}
	}

	return c.JSON(http.StatusOK, &HealthResponse{
		Status:    status,
		Version:   version.Full(),
		Timestamp: time.Now().UTC(),
		Checks:    checks,
	})
}
