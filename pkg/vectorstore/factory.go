package vectorstore

import (
	"context"
	"fmt"
)

// Provider discriminates vectorStore.provider, independent of cloud.provider
// and llm.provider.
type Provider string

const (
	ProviderLocal Provider = "local"
	ProviderOCI   Provider = "oci"
	ProviderAWS   Provider = "aws"
)

// Config carries the parameters needed to build any Provider's Repository.
type Config struct {
	Provider Provider
	// PostgresDSN backs the "oci"/"aws" families here, standing in for
	// whichever managed vector-database product a real deployment targets.
	PostgresDSN string
}

// New builds the Repository for cfg.Provider, failing fast on an unknown
// provider.
func New(ctx context.Context, cfg Config) (Repository, error) {
	switch cfg.Provider {
	case ProviderLocal, "":
		return NewMemoryStore(), nil
	case ProviderOCI, ProviderAWS:
		if cfg.PostgresDSN == "" {
			return nil, fmt.Errorf("vectorstore: provider %q requires a postgres DSN", cfg.Provider)
		}
		return NewPostgresStore(ctx, cfg.PostgresDSN)
	default:
		return nil, fmt.Errorf("vectorstore: unknown vectorStore.provider %q", cfg.Provider)
	}
}
