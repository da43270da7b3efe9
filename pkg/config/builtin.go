package config

import "sync"

// BuiltinConfig holds the built-in defaults merged under any operator-supplied
// config.yaml. Every field here can be overridden; none is required for the
// service to start against local, in-memory backends.
type BuiltinConfig struct {
	Cloud       CloudConfig
	VectorStore VectorStoreConfig
	LLM         LLMConfig
	Runbooks    RunbooksConfig
	Server      ServerConfig
	Retrieval   RetrievalConfig
}

var (
	builtinConfig     *BuiltinConfig
	builtinConfigOnce sync.Once
)

// GetBuiltinConfig returns the singleton built-in configuration (thread-safe,
// lazy-initialized).
func GetBuiltinConfig() *BuiltinConfig {
	builtinConfigOnce.Do(initBuiltinConfig)
	return builtinConfig
}

func initBuiltinConfig() {
	builtinConfig = &BuiltinConfig{
		Cloud: CloudConfig{
			Provider:         "local",
			LocalRunbookDir:  "./runbooks",
			RequestTimeoutMS: 10_000,
		},
		VectorStore: VectorStoreConfig{
			Provider: "local",
		},
		LLM: LLMConfig{
			Provider:      "stub",
			EmbeddingDims: 32,
		},
		Runbooks: RunbooksConfig{
			Bucket:          "./runbooks",
			IngestOnStartup: true,
		},
		Server: ServerConfig{
			Host: "0.0.0.0",
			Port: 8080,
		},
		Retrieval: RetrievalConfig{
			TopK:            5,
			OverFetchFactor: 2,
		},
	}
}
