// Package ingestion re-chunks, batch-embeds, and replaces the vector-store
// chunks for every runbook in storage.
package ingestion

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/google/uuid"
	"github.com/sreops/runbook-synthesizer/pkg/chunker"
	"github.com/sreops/runbook-synthesizer/pkg/cloudadapter"
	"github.com/sreops/runbook-synthesizer/pkg/domain"
	"github.com/sreops/runbook-synthesizer/pkg/embedding"
	"github.com/sreops/runbook-synthesizer/pkg/vectorstore"
)

// DocError is one runbook's ingestion failure; ingestion surfaces these
// without aborting the whole run.
type DocError struct {
	RunbookPath string
	Err         error
}

func (e DocError) Error() string {
	return fmt.Sprintf("runbook %q: %v", e.RunbookPath, e.Err)
}

// Service drives the per-runbook ingestion pipeline: delete, fetch, chunk,
// batch-embed, storeBatch.
type Service struct {
	storage   cloudadapter.StorageAdapter
	store     vectorstore.Repository
	embedder  *embedding.Service
	chunker   *chunker.Chunker
}

// NewService wires the four collaborators ingestion needs.
func NewService(storage cloudadapter.StorageAdapter, store vectorstore.Repository, embedder *embedding.Service, chnk *chunker.Chunker) *Service {
	return &Service{storage: storage, store: store, embedder: embedder, chunker: chnk}
}

// IngestAll lists every runbook under container and re-indexes each one.
// Distinct runbooks are processed concurrently; a failure on one document is
// recorded in the returned DocError slice and does not prevent the others
// from completing.
func (s *Service) IngestAll(ctx context.Context, container string) (totalChunks int, docErrors []DocError, err error) {
	keys, err := s.storage.ListRunbooks(ctx, container)
	if err != nil {
		return 0, nil, fmt.Errorf("ingestion: list runbooks: %w", err)
	}

	var (
		mu    sync.Mutex
		wg    sync.WaitGroup
		total int
		errs  []DocError
	)

	for _, key := range keys {
		wg.Add(1)
		go func(key string) {
			defer wg.Done()
			n, ingestErr := s.ingestOne(ctx, container, key)
			mu.Lock()
			defer mu.Unlock()
			if ingestErr != nil {
				errs = append(errs, DocError{RunbookPath: key, Err: ingestErr})
				slog.Warn("ingestion: runbook failed, continuing", "runbook_path", key, "error", ingestErr)
				return
			}
			total += n
		}(key)
	}
	wg.Wait()

	return total, errs, nil
}

// ingestOne implements the per-runbook sequence: delete precedes fetch,
// fetch precedes chunk, chunk precedes batch-embed, batch-embed precedes
// storeBatch.
func (s *Service) ingestOne(ctx context.Context, container, key string) (int, error) {
	if err := s.store.Delete(ctx, key); err != nil {
		return 0, fmt.Errorf("delete existing chunks: %w", err)
	}

	content, found, err := s.storage.GetRunbookContent(ctx, container, key)
	if err != nil {
		return 0, fmt.Errorf("fetch content: %w", err)
	}
	if !found {
		return 0, nil
	}

	parsed := s.chunker.Chunk(content)
	if len(parsed) == 0 {
		return 0, nil
	}

	texts := make([]string, len(parsed))
	for i, p := range parsed {
		texts[i] = p.Content
	}
	embeddings, err := s.embedder.EmbedBatch(ctx, texts)
	if err != nil {
		return 0, fmt.Errorf("batch embed: %w", err)
	}
	if len(embeddings) != len(parsed) {
		return 0, fmt.Errorf("embedding count %d does not match chunk count %d", len(embeddings), len(parsed))
	}

	chunks := make([]domain.RunbookChunk, len(parsed))
	for i, p := range parsed {
		chunks[i] = domain.NewRunbookChunk(uuid.NewString(), key, p.SectionTitle, p.Content, p.Tags, p.ApplicableShapes, embeddings[i])
	}

	if err := s.store.StoreBatch(ctx, chunks); err != nil {
		return 0, fmt.Errorf("store batch: %w", err)
	}
	return len(chunks), nil
}
