package api

import (
	"context"

	"github.com/sreops/runbook-synthesizer/pkg/cloudadapter"
	"github.com/sreops/runbook-synthesizer/pkg/vectorstore"
)

// pingVectorStore issues a cheap zero-vector search to confirm the store
// answers within the health check's deadline.
func pingVectorStore(ctx context.Context, store vectorstore.Repository) string {
	if store == nil {
		return "not configured"
	}
	if _, err := store.Search(ctx, []float32{0}, 1); err != nil {
		return err.Error()
	}
	return "ok"
}

// pingLLMProvider confirms the configured LLM provider answers an embedding
// call within the health check's deadline.
func pingLLMProvider(ctx context.Context, llm cloudadapter.LlmProvider) string {
	if llm == nil {
		return "not configured"
	}
	if _, err := llm.GenerateEmbedding(ctx, "health check"); err != nil {
		return err.Error()
	}
	return "ok"
}

// pingStorage confirms the configured cloud storage adapter can list the
// runbook bucket within the health check's deadline.
func pingStorage(ctx context.Context, storage cloudadapter.StorageAdapter, bucket string) string {
	if storage == nil {
		return "not configured"
	}
	if _, err := storage.ListRunbooks(ctx, bucket); err != nil {
		return err.Error()
	}
	return "ok"
}
