// Package llmprovider implements cloudadapter.LlmProvider backends selected
// by llm.provider: a stub for local development/tests, and an HTTP backend
// targeting an Ollama-compatible /api/generate + /api/embeddings server.
package llmprovider

import (
	"fmt"

	"github.com/sreops/runbook-synthesizer/pkg/cloudadapter"
)

// Provider discriminates llm.provider, independent of cloud.provider and
// vectorStore.provider.
type Provider string

const (
	ProviderStub  Provider = "stub"
	ProviderHTTP  Provider = "http"
	ProviderOllama Provider = "ollama"
)

// Config carries the parameters needed to build any Provider's LlmProvider.
type Config struct {
	Provider        Provider
	BaseURL         string // required for ProviderHTTP/ProviderOllama
	Model           string
	EmbeddingModel  string
	EmbeddingDims   int // used only by the stub, to size its deterministic vectors
}

// New builds the LlmProvider for cfg.Provider, failing fast on an unknown
// provider.
func New(cfg Config) (cloudadapter.LlmProvider, error) {
	switch cfg.Provider {
	case ProviderStub, "":
		dims := cfg.EmbeddingDims
		if dims <= 0 {
			dims = DefaultStubEmbeddingDims
		}
		return NewStubProvider(dims), nil
	case ProviderHTTP, ProviderOllama:
		if cfg.BaseURL == "" {
			return nil, fmt.Errorf("llmprovider: provider %q requires a baseURL", cfg.Provider)
		}
		return NewHTTPProvider(cfg.BaseURL, cfg.Model, cfg.EmbeddingModel), nil
	default:
		return nil, fmt.Errorf("llmprovider: unknown llm.provider %q", cfg.Provider)
	}
}
