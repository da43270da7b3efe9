package api

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/google/uuid"
	echo "github.com/labstack/echo/v5"
)

// runbookSyncHandler handles POST /api/v1/runbooks/sync: triggers a
// background re-ingestion of the runbook corpus and returns immediately.
func (s *Server) runbookSyncHandler(c *echo.Context) error {
	var req RunbookSyncRequest
	if err := c.Bind(&req); err != nil {
		return writeError(c, "", err)
	}

	bucket := s.bucket
	if req.BucketName != "" {
		bucket = req.BucketName
	}
	requestID := uuid.NewString()

	go func() {
		ctx := context.Background()
		total, docErrors, err := s.ingestor.IngestAll(ctx, bucket)
		if err != nil {
			slog.Error("runbook sync failed", "request_id", requestID, "error", err)
			return
		}
		slog.Info("runbook sync completed", "request_id", requestID, "chunks", total, "doc_errors", len(docErrors))
	}()

	return c.JSON(http.StatusAccepted, &RunbookSyncResponse{
		Status:             "STARTED",
		RequestID:          requestID,
		DocumentsProcessed: 0,
	})
}
