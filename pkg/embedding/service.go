// Package embedding provides the narrow facade over cloudadapter.LlmProvider
// that ingestion and retrieval use to turn text into vectors.
package embedding

import (
	"context"
	"fmt"
	"strings"

	"github.com/sreops/runbook-synthesizer/pkg/cloudadapter"
	"github.com/sreops/runbook-synthesizer/pkg/domain"
)

// Service exposes Embed/EmbedBatch/EmbedContext over a configured LlmProvider.
type Service struct {
	provider cloudadapter.LlmProvider
}

// NewService wraps the configured LLM provider.
func NewService(provider cloudadapter.LlmProvider) *Service {
	return &Service{provider: provider}
}

// Embed produces the embedding for a single text.
func (s *Service) Embed(ctx context.Context, text string) ([]float32, error) {
	vec, err := s.provider.GenerateEmbedding(ctx, text)
	if err != nil {
		return nil, fmt.Errorf("embedding: embed: %w", err)
	}
	return vec, nil
}

// EmbedBatch produces embeddings for many texts in one provider call.
func (s *Service) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	vecs, err := s.provider.GenerateEmbeddings(ctx, texts)
	if err != nil {
		return nil, fmt.Errorf("embedding: embed batch: %w", err)
	}
	return vecs, nil
}

// EmbedContext formats a deterministic query string from the enriched
// context (alert title + message + resource display name + shape) and
// embeds it. The format is a pure function of ctx — no clocks, no randomness.
func (s *Service) EmbedContext(ctx context.Context, ec *domain.EnrichedContext) ([]float32, error) {
	return s.Embed(ctx, QueryString(ec))
}

// QueryString is the pure formatting function EmbedContext embeds, exposed
// separately so callers (and tests) can assert on it without a provider.
func QueryString(ec *domain.EnrichedContext) string {
	var b strings.Builder
	b.WriteString(ec.Alert.Title)
	if ec.Alert.Message != "" {
		b.WriteString(" ")
		b.WriteString(ec.Alert.Message)
	}
	if ec.Resource != nil {
		if ec.Resource.DisplayName != "" {
			b.WriteString(" ")
			b.WriteString(ec.Resource.DisplayName)
		}
		if ec.Resource.Shape != "" {
			b.WriteString(" ")
			b.WriteString(ec.Resource.Shape)
		}
	}
	return b.String()
}
