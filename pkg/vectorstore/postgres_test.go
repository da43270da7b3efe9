package vectorstore_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sreops/runbook-synthesizer/pkg/domain"
	"github.com/sreops/runbook-synthesizer/test/util"
)

func TestPostgresStore_StoreAndSearch(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping testcontainers-backed test in short mode")
	}

	store := util.SetupTestStore(t)
	ctx := context.Background()

	chunks := []domain.RunbookChunk{
		domain.NewRunbookChunk("c1", "runbooks/disk.md", "Disk full", "df -h, then clear logs", []string{"disk"}, nil, []float32{1, 0, 0}),
		domain.NewRunbookChunk("c2", "runbooks/cpu.md", "CPU high", "top, then scale out", []string{"cpu"}, nil, []float32{0, 1, 0}),
	}
	require.NoError(t, store.StoreBatch(ctx, chunks))

	results, err := store.Search(ctx, []float32{1, 0, 0}, 1)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "c1", results[0].Chunk.ID)
	assert.InDelta(t, 1.0, results[0].SimilarityScore, 1e-6)
}

func TestPostgresStore_StoreBatch_UpsertsOnConflict(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping testcontainers-backed test in short mode")
	}

	store := util.SetupTestStore(t)
	ctx := context.Background()

	chunk := domain.NewRunbookChunk("c1", "runbooks/disk.md", "Disk full", "original content", []string{"disk"}, nil, []float32{1, 0, 0})
	require.NoError(t, store.Store(ctx, chunk))

	updated := domain.NewRunbookChunk("c1", "runbooks/disk.md", "Disk full", "revised content", []string{"disk"}, nil, []float32{1, 0, 0})
	require.NoError(t, store.Store(ctx, updated))

	results, err := store.Search(ctx, []float32{1, 0, 0}, 10)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "revised content", results[0].Chunk.Content)
}

func TestPostgresStore_Delete_RemovesByRunbookPath(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping testcontainers-backed test in short mode")
	}

	store := util.SetupTestStore(t)
	ctx := context.Background()

	chunks := []domain.RunbookChunk{
		domain.NewRunbookChunk("c1", "runbooks/disk.md", "Disk full", "...", nil, nil, []float32{1, 0, 0}),
		domain.NewRunbookChunk("c2", "runbooks/cpu.md", "CPU high", "...", nil, nil, []float32{0, 1, 0}),
	}
	require.NoError(t, store.StoreBatch(ctx, chunks))

	require.NoError(t, store.Delete(ctx, "runbooks/disk.md"))

	results, err := store.Search(ctx, []float32{1, 0, 0}, 10)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "c2", results[0].Chunk.ID)
}
