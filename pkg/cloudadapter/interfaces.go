// Package cloudadapter defines the capability interfaces every cloud backend
// implements plus the factory that selects a concrete implementation family
// from a single config key. Every operation is
// suspension-point-shaped (context-first, returns an error channel-free
// result or a not-found value, never throws for control flow), matching
// pkg/mcp/client_factory.go's small-interface-plus-factory idiom.
package cloudadapter

import (
	"context"
	"time"

	"github.com/sreops/runbook-synthesizer/pkg/domain"
)

// ProviderType discriminates the adapter family a config key selects.
type ProviderType string

const (
	ProviderOCI   ProviderType = "oci"
	ProviderAWS   ProviderType = "aws"
	ProviderLocal ProviderType = "local"
)

// IsValid reports whether p is a recognized cloud provider.
func (p ProviderType) IsValid() bool {
	switch p {
	case ProviderOCI, ProviderAWS, ProviderLocal:
		return true
	default:
		return false
	}
}

// StorageAdapter lists and fetches runbook documents from object storage.
// Not-found is a value (empty string / empty list), never an error;
// transport, auth, and throttling failures are errors.
type StorageAdapter interface {
	ProviderType() ProviderType
	// ListRunbooks returns the ordered list of object keys under container
	// that end in ".md".
	ListRunbooks(ctx context.Context, container string) ([]string, error)
	// GetRunbookContent returns the object body, or ("", false, nil) when the
	// key does not exist.
	GetRunbookContent(ctx context.Context, container, key string) (content string, found bool, err error)
}

// ComputeMetadataAdapter resolves a compute resource's metadata.
type ComputeMetadataAdapter interface {
	ProviderType() ProviderType
	// GetInstance returns nil (not an error) when resourceID cannot be resolved.
	GetInstance(ctx context.Context, resourceID string) (*domain.ResourceMetadata, error)
}

// MetricsSourceAdapter fetches recent metrics for a resource.
type MetricsSourceAdapter interface {
	ProviderType() ProviderType
	FetchMetrics(ctx context.Context, resourceID string, lookback time.Duration) ([]domain.MetricSnapshot, error)
}

// LogSourceAdapter fetches recent logs for a resource. query is an optional
// free-text filter; empty means no filtering.
type LogSourceAdapter interface {
	ProviderType() ProviderType
	FetchLogs(ctx context.Context, resourceID string, lookback time.Duration, query string) ([]domain.LogEntry, error)
}

// AlertSourceAdapter normalizes a provider-specific alert payload into the
// canonical Alert. AlertSourceRegistry.Normalize picks the first whose
// CanHandle returns true. The HTTP alert ingress does not consult the
// registry; it accepts only the canonical AlertRequest shape.
type AlertSourceAdapter interface {
	SourceService() string
	CanHandle(rawPayload []byte) bool
	ParseAlert(rawPayload []byte) (*domain.Alert, error)
}

// GenerateConfig bounds an LlmProvider.GenerateText call.
type GenerateConfig struct {
	Temperature float64 // [0, 1]
	MaxTokens   int     // > 0
}

// LlmProvider is the pluggable LLM backend: text generation for the
// checklist generator plus embedding generation for ingestion and
// retrieval. Selected independently via llm.provider.
type LlmProvider interface {
	ProviderID() string
	GenerateText(ctx context.Context, prompt string, cfg GenerateConfig) (string, error)
	GenerateEmbedding(ctx context.Context, text string) ([]float32, error)
	GenerateEmbeddings(ctx context.Context, texts []string) ([][]float32, error)
}
