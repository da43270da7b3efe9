package vectorstore

import (
	"context"
	"sort"
	"sync"

	"github.com/sreops/runbook-synthesizer/pkg/domain"
)

// MemoryStore is a concurrent, in-process Repository: a map from chunk id to
// chunk guarded by a single RWMutex. Search takes the read lock for its
// entire linear scan so a concurrent StoreBatch cannot be observed partially.
type MemoryStore struct {
	mu    sync.RWMutex
	byID  map[string]domain.RunbookChunk
	order []string // insertion order, for stable tie-breaking
	dim   int       // embedding dimension of the first stored chunk; 0 = unset
}

// NewMemoryStore creates an empty in-memory vector store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{byID: make(map[string]domain.RunbookChunk)}
}

func (s *MemoryStore) Store(ctx context.Context, chunk domain.RunbookChunk) error {
	return s.StoreBatch(ctx, []domain.RunbookChunk{chunk})
}

func (s *MemoryStore) StoreBatch(ctx context.Context, chunks []domain.RunbookChunk) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, c := range chunks {
		if s.dim == 0 && len(c.Embedding) > 0 {
			s.dim = len(c.Embedding)
		}
		if _, exists := s.byID[c.ID]; !exists {
			s.order = append(s.order, c.ID)
		}
		s.byID[c.ID] = c
	}
	return nil
}

func (s *MemoryStore) Search(ctx context.Context, queryEmbedding []float32, topK int) ([]domain.ScoredChunk, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	scored := make([]domain.ScoredChunk, 0, len(s.order))
	for _, id := range s.order {
		chunk, ok := s.byID[id]
		if !ok {
			continue
		}
		sim := CosineSimilarity(queryEmbedding, chunk.Embedding)
		scored = append(scored, domain.ScoredChunk{Chunk: chunk, SimilarityScore: sim})
	}

	// Stable sort preserves insertion order (s.order) on ties, so repeated
	// searches over an unchanged store return chunks in a deterministic order.
	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].SimilarityScore > scored[j].SimilarityScore
	})

	if topK >= 0 && len(scored) > topK {
		scored = scored[:topK]
	}
	return scored, nil
}

func (s *MemoryStore) Delete(ctx context.Context, runbookPath string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	remaining := s.order[:0]
	for _, id := range s.order {
		c, ok := s.byID[id]
		if !ok {
			continue
		}
		if c.RunbookPath == runbookPath {
			delete(s.byID, id)
			continue
		}
		remaining = append(remaining, id)
	}
	s.order = remaining
	return nil
}
