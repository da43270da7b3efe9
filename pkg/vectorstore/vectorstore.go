// Package vectorstore provides durable chunk storage, cosine-similarity
// search, and deletion by runbook path. Two implementations are provided,
// identical from the caller's perspective: an in-memory store and a
// Postgres-backed store.
package vectorstore

import (
	"context"
	"math"

	"github.com/sreops/runbook-synthesizer/pkg/domain"
)

// Repository is the vector-store persistence contract.
type Repository interface {
	// Store durably inserts a single chunk.
	Store(ctx context.Context, chunk domain.RunbookChunk) error
	// StoreBatch durably inserts chunks; the batch is atomic with respect to
	// visibility — a concurrent Search never observes a partial batch.
	StoreBatch(ctx context.Context, chunks []domain.RunbookChunk) error
	// Search returns up to topK chunks ranked by cosine similarity
	// descending, stable on ties (insertion order).
	Search(ctx context.Context, queryEmbedding []float32, topK int) ([]domain.ScoredChunk, error)
	// Delete removes every chunk whose RunbookPath equals runbookPath.
	Delete(ctx context.Context, runbookPath string) error
}

// CosineSimilarity computes ⟨a,b⟩ / (‖a‖·‖b‖). A zero norm on either side
// yields 0, never NaN.
func CosineSimilarity(a, b []float32) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}
	var dot, normA, normB float64
	for i := range a {
		fa, fb := float64(a[i]), float64(b[i])
		dot += fa * fb
		normA += fa * fa
		normB += fb * fb
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}
