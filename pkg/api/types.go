package api

import (
	"time"

	"github.com/sreops/runbook-synthesizer/pkg/domain"
)

// AlertRequest is the HTTP-facing payload for POST /api/v1/alerts.
type AlertRequest struct {
	Title         string            `json:"title" validate:"required"`
	Message       string            `json:"message"`
	Severity      string            `json:"severity" validate:"required"`
	SourceService string            `json:"sourceService"`
	Dimensions    map[string]string `json:"dimensions"`
	Labels        map[string]string `json:"labels"`
}

// ErrorResponse is the body returned on every non-2xx response.
type ErrorResponse struct {
	CorrelationID string         `json:"correlationId"`
	ErrorCode     string         `json:"errorCode"`
	Message       string         `json:"message"`
	Timestamp     time.Time      `json:"timestamp"`
	Details       map[string]any `json:"details,omitempty"`
}

// HealthResponse is the body returned by GET /api/v1/health.
type HealthResponse struct {
	Status    string            `json:"status"`
	Version   string            `json:"version"`
	Timestamp time.Time         `json:"timestamp"`
	Checks    map[string]string `json:"checks,omitempty"`
}

// RunbookSyncRequest is the body accepted by POST /api/v1/runbooks/sync.
type RunbookSyncRequest struct {
	BucketName   string `json:"bucketName,omitempty"`
	Prefix       string `json:"prefix,omitempty"`
	ForceRefresh bool   `json:"forceRefresh,omitempty"`
}

// RunbookSyncResponse is the body returned by POST /api/v1/runbooks/sync.
type RunbookSyncResponse struct {
	Status             string   `json:"status"`
	RequestID          string   `json:"requestId"`
	DocumentsProcessed int      `json:"documentsProcessed"`
	Errors             []string `json:"errors,omitempty"`
}

// WebhookRequest is the body accepted by POST /api/v1/webhooks.
type WebhookRequest struct {
	Name    string            `json:"name" validate:"required"`
	Type    string            `json:"type" validate:"required,oneof=slack pagerduty generic file"`
	URL     string            `json:"url,omitempty"`
	Enabled bool              `json:"enabled"`
	Headers map[string]string `json:"headers,omitempty"`
	Filter  []domain.Severity `json:"filter,omitempty"`
}
