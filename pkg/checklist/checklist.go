// Package checklist turns an EnrichedContext plus retrieved runbook chunks
// into a DynamicChecklist: build a labeled prompt, ask the configured
// LlmProvider for text, and parse its response under one of two accepted
// dialects, synthesizing a single safe fallback step rather than failing
// outright when neither dialect parses.
package checklist

import (
	"context"
	"fmt"
	"time"

	"github.com/sreops/runbook-synthesizer/pkg/cloudadapter"
	"github.com/sreops/runbook-synthesizer/pkg/domain"
)

const (
	defaultTemperature = 0.7
	defaultMaxTokens   = 1000
)

// Generator wires an LlmProvider to the prompt/parse pipeline.
type Generator struct {
	llm cloudadapter.LlmProvider
	cfg cloudadapter.GenerateConfig
}

// New builds a Generator with the default generation parameters.
func New(llm cloudadapter.LlmProvider) *Generator {
	return &Generator{
		llm: llm,
		cfg: cloudadapter.GenerateConfig{Temperature: defaultTemperature, MaxTokens: defaultMaxTokens},
	}
}

// Generate produces a DynamicChecklist for ec, grounded in chunks. It
// returns an error only when the LLM call itself fails; a malformed or
// unparseable response still yields a checklist (the single-step fallback).
func (g *Generator) Generate(ctx context.Context, ec *domain.EnrichedContext, chunks []domain.RetrievedChunk) (*domain.DynamicChecklist, error) {
	if ec == nil || ec.Alert == nil {
		return nil, fmt.Errorf("checklist: enriched context with a non-nil alert is required")
	}

	prompt := buildPrompt(ec, chunks)
	raw, err := g.llm.GenerateText(ctx, prompt, g.cfg)
	if err != nil {
		return nil, fmt.Errorf("checklist: generate text: %w", err)
	}

	summary, steps, ok := parseResponse(raw)
	if !ok {
		summary = "Automated checklist generation could not parse a structured response."
		steps = fallbackStep()
	}
	if summary == "" {
		summary = fmt.Sprintf("Troubleshooting checklist for %s", ec.Alert.Title)
	}

	return &domain.DynamicChecklist{
		AlertID:        ec.Alert.ID,
		Summary:        summary,
		Steps:          steps,
		SourceRunbooks: sourceRunbooks(chunks),
		GeneratedAt:    time.Now().UTC(),
		LLMProviderID:  g.llm.ProviderID(),
	}, nil
}

// sourceRunbooks dedups chunk.RunbookPath in order of first appearance.
func sourceRunbooks(chunks []domain.RetrievedChunk) []string {
	seen := make(map[string]bool, len(chunks))
	out := make([]string, 0, len(chunks))
	for _, c := range chunks {
		path := c.Chunk.RunbookPath
		if path == "" || seen[path] {
			continue
		}
		seen[path] = true
		out = append(out, path)
	}
	return out
}
