package vectorstore_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sreops/runbook-synthesizer/pkg/domain"
	"github.com/sreops/runbook-synthesizer/pkg/vectorstore"
)

func TestMemoryStore_SearchOrdersBySimilarity(t *testing.T) {
	store := vectorstore.NewMemoryStore()
	ctx := context.Background()

	require.NoError(t, store.StoreBatch(ctx, []domain.RunbookChunk{
		domain.NewRunbookChunk("c1", "runbooks/a.md", "A", "...", nil, nil, []float32{1, 0}),
		domain.NewRunbookChunk("c2", "runbooks/b.md", "B", "...", nil, nil, []float32{0, 1}),
	}))

	results, err := store.Search(ctx, []float32{1, 0}, 10)
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, "c1", results[0].Chunk.ID)
	assert.Equal(t, "c2", results[1].Chunk.ID)
}

func TestMemoryStore_SearchRespectsTopK(t *testing.T) {
	store := vectorstore.NewMemoryStore()
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		require.NoError(t, store.Store(ctx, domain.NewRunbookChunk(
			string(rune('a'+i)), "runbooks/x.md", "X", "...", nil, nil, []float32{1, 0},
		)))
	}

	results, err := store.Search(ctx, []float32{1, 0}, 2)
	require.NoError(t, err)
	assert.Len(t, results, 2)
}

func TestMemoryStore_DeleteRemovesOnlyMatchingRunbookPath(t *testing.T) {
	store := vectorstore.NewMemoryStore()
	ctx := context.Background()

	require.NoError(t, store.StoreBatch(ctx, []domain.RunbookChunk{
		domain.NewRunbookChunk("c1", "runbooks/a.md", "A", "...", nil, nil, []float32{1, 0}),
		domain.NewRunbookChunk("c2", "runbooks/a.md", "A2", "...", nil, nil, []float32{1, 1}),
		domain.NewRunbookChunk("c3", "runbooks/b.md", "B", "...", nil, nil, []float32{0, 1}),
	}))

	require.NoError(t, store.Delete(ctx, "runbooks/a.md"))

	results, err := store.Search(ctx, []float32{1, 0}, 10)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "c3", results[0].Chunk.ID)
}

func TestMemoryStore_StoreBatch_OverwritesByID(t *testing.T) {
	store := vectorstore.NewMemoryStore()
	ctx := context.Background()

	require.NoError(t, store.Store(ctx, domain.NewRunbookChunk("c1", "runbooks/a.md", "A", "original", nil, nil, []float32{1, 0})))
	require.NoError(t, store.Store(ctx, domain.NewRunbookChunk("c1", "runbooks/a.md", "A", "revised", nil, nil, []float32{1, 0})))

	results, err := store.Search(ctx, []float32{1, 0}, 10)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "revised", results[0].Chunk.Content)
}

func TestCosineSimilarity_MismatchedLengthReturnsZero(t *testing.T) {
	assert.Equal(t, 0.0, vectorstore.CosineSimilarity([]float32{1, 0}, []float32{1, 0, 0}))
}

func TestCosineSimilarity_OrthogonalVectorsAreZero(t *testing.T) {
	assert.InDelta(t, 0.0, vectorstore.CosineSimilarity([]float32{1, 0}, []float32{0, 1}), 1e-9)
}
