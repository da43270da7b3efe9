// Package retriever embeds the enriched context into a query, over-fetches
// candidates from the vector store, applies metadata boosts, and returns the
// top-K by final score.
package retriever

import (
	"context"
	"fmt"
	"path"
	"sort"
	"strings"

	"github.com/sreops/runbook-synthesizer/pkg/domain"
	"github.com/sreops/runbook-synthesizer/pkg/embedding"
	"github.com/sreops/runbook-synthesizer/pkg/vectorstore"
)

const (
	overFetchFactor = 2
	tagBoostPerMatch = 0.1
	tagBoostCap      = 0.3
	shapeBoostValue  = 0.2
)

// Retriever wires the embedding facade and the vector store.
type Retriever struct {
	embedder *embedding.Service
	store    vectorstore.Repository
}

// New builds a Retriever.
func New(embedder *embedding.Service, store vectorstore.Repository) *Retriever {
	return &Retriever{embedder: embedder, store: store}
}

// Retrieve returns up to topK RetrievedChunk, ranked by FinalScore
// descending, stable on ties.
func (r *Retriever) Retrieve(ctx context.Context, ec *domain.EnrichedContext, topK int) ([]domain.RetrievedChunk, error) {
	queryEmbedding, err := r.embedder.EmbedContext(ctx, ec)
	if err != nil {
		return nil, fmt.Errorf("retriever: embed context: %w", err)
	}

	candidates, err := r.store.Search(ctx, queryEmbedding, topK*overFetchFactor)
	if err != nil {
		return nil, fmt.Errorf("retriever: search: %w", err)
	}

	retrieved := make([]domain.RetrievedChunk, 0, len(candidates))
	for _, c := range candidates {
		boost := metadataBoost(c.Chunk, ec)
		retrieved = append(retrieved, domain.RetrievedChunk{
			Chunk:           c.Chunk,
			SimilarityScore: c.SimilarityScore,
			MetadataBoost:   boost,
			FinalScore:      c.SimilarityScore + boost,
		})
	}

	sort.SliceStable(retrieved, func(i, j int) bool {
		return retrieved[i].FinalScore > retrieved[j].FinalScore
	})

	if topK >= 0 && len(retrieved) > topK {
		retrieved = retrieved[:topK]
	}
	return retrieved, nil
}

// metadataBoost computes tagBoost + shapeBoost.
func metadataBoost(chunk domain.RunbookChunk, ec *domain.EnrichedContext) float64 {
	return tagBoost(chunk, ec) + shapeBoost(chunk, ec)
}

func tagBoost(chunk domain.RunbookChunk, ec *domain.EnrichedContext) float64 {
	matches := 0
	titleLower := strings.ToLower(ec.Alert.Title)
	for _, tag := range chunk.Tags {
		if _, ok := ec.Alert.Dimensions[tag]; ok {
			matches++
			continue
		}
		if _, ok := ec.Alert.Labels[tag]; ok {
			matches++
			continue
		}
		if tag != "" && strings.Contains(titleLower, strings.ToLower(tag)) {
			matches++
		}
	}
	boost := float64(matches) * tagBoostPerMatch
	if boost > tagBoostCap {
		boost = tagBoostCap
	}
	return boost
}

func shapeBoost(chunk domain.RunbookChunk, ec *domain.EnrichedContext) float64 {
	if ec.Resource == nil || ec.Resource.Shape == "" || len(chunk.ApplicableShapes) == 0 {
		return 0
	}
	for _, pattern := range chunk.ApplicableShapes {
		if shapeMatches(pattern, ec.Resource.Shape) {
			return shapeBoostValue
		}
	}
	return 0
}

// shapeMatches: '*' and 'all' match any shape; otherwise a case-insensitive
// glob anchored to the whole string, via path.Match ('*', '?', and also
// '[...]' character classes and '\\' escapes).
func shapeMatches(pattern, shape string) bool {
	p := strings.ToLower(pattern)
	if p == "*" || p == "all" {
		return true
	}
	matched, err := path.Match(p, strings.ToLower(shape))
	if err != nil {
		return false
	}
	return matched
}
