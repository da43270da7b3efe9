// Package orchestrator drives the end-to-end alert-to-checklist pipeline:
// enrich, retrieve, generate, in that order, wrapping each stage's error
// with the stage name so callers can tell which collaborator failed.
package orchestrator

import (
	"context"
	"fmt"

	"github.com/sreops/runbook-synthesizer/pkg/apperror"
	"github.com/sreops/runbook-synthesizer/pkg/checklist"
	"github.com/sreops/runbook-synthesizer/pkg/domain"
	"github.com/sreops/runbook-synthesizer/pkg/enrichment"
	"github.com/sreops/runbook-synthesizer/pkg/retriever"
)

// DefaultTopK is the number of runbook chunks handed to the checklist
// generator when the caller does not override it.
const DefaultTopK = 5

// Enricher is the subset of enrichment.Service the orchestrator needs.
type Enricher interface {
	Enrich(ctx context.Context, alert *domain.Alert) *domain.EnrichedContext
}

// Retriever is the subset of retriever.Retriever the orchestrator needs.
type Retriever interface {
	Retrieve(ctx context.Context, ec *domain.EnrichedContext, topK int) ([]domain.RetrievedChunk, error)
}

// Generator is the subset of checklist.Generator the orchestrator needs.
type Generator interface {
	Generate(ctx context.Context, ec *domain.EnrichedContext, chunks []domain.RetrievedChunk) (*domain.DynamicChecklist, error)
}

var (
	_ Enricher  = (*enrichment.Service)(nil)
	_ Retriever = (*retriever.Retriever)(nil)
	_ Generator = (*checklist.Generator)(nil)
)

// Pipeline wires the three stage collaborators. NewPipeline panics on any
// nil dependency; these are process-lifetime wiring errors, not runtime
// conditions a caller should have to check for.
type Pipeline struct {
	enricher  Enricher
	retriever Retriever
	generator Generator
	topK      int
}

// NewPipeline builds a Pipeline with DefaultTopK. Use WithTopK to override.
func NewPipeline(enricher Enricher, retriever Retriever, generator Generator) *Pipeline {
	if enricher == nil {
		panic("orchestrator: NewPipeline: enricher must not be nil")
	}
	if retriever == nil {
		panic("orchestrator: NewPipeline: retriever must not be nil")
	}
	if generator == nil {
		panic("orchestrator: NewPipeline: generator must not be nil")
	}
	return &Pipeline{enricher: enricher, retriever: retriever, generator: generator, topK: DefaultTopK}
}

// WithTopK overrides the number of chunks retrieved per run.
func (p *Pipeline) WithTopK(topK int) *Pipeline {
	p.topK = topK
	return p
}

// Run executes enrich -> retrieve -> generate for alert and returns the
// resulting checklist. A nil alert is rejected up front as a validation
// error; enrichment itself never fails, but retrieval and generation errors
// are wrapped with the stage they occurred in.
func (p *Pipeline) Run(ctx context.Context, alert *domain.Alert) (*domain.DynamicChecklist, error) {
	if alert == nil {
		return nil, apperror.NewValidation("alert", "alert must not be nil")
	}

	ec := p.enricher.Enrich(ctx, alert)

	chunks, err := p.retriever.Retrieve(ctx, ec, p.topK)
	if err != nil {
		return nil, fmt.Errorf("orchestrator: retrieve stage: %w", err)
	}

	result, err := p.generator.Generate(ctx, ec, chunks)
	if err != nil {
		return nil, fmt.Errorf("orchestrator: generate stage: %w", err)
	}
	return result, nil
}
