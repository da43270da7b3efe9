// Package config loads and validates the service's configuration: a
// built-in default merged with an operator-supplied config.yaml, following
// the same load-then-merge-then-validate shape as every other package in
// this lineage that owns a YAML surface.
package config

import (
	"github.com/sreops/runbook-synthesizer/pkg/domain"
)

// Config is the fully resolved, validated configuration returned by
// Initialize and threaded through the rest of the service.
type Config struct {
	configDir string

	Cloud       *CloudConfig
	VectorStore *VectorStoreConfig
	LLM         *LLMConfig
	Runbooks    *RunbooksConfig
	Webhooks    []domain.WebhookConfig
	Server      *ServerConfig
	Retrieval   *RetrievalConfig
}

// ConfigDir returns the directory Initialize loaded config.yaml from.
func (c *Config) ConfigDir() string {
	return c.configDir
}

// CloudConfig selects and parameterizes the cloud.provider adapter family.
type CloudConfig struct {
	Provider         string `yaml:"provider"`
	BaseURL          string `yaml:"base_url,omitempty"`
	LocalRunbookDir  string `yaml:"local_runbook_dir,omitempty"`
	RequestTimeoutMS int    `yaml:"request_timeout_ms,omitempty"`
}

// VectorStoreConfig selects and parameterizes the vectorStore.provider backend.
type VectorStoreConfig struct {
	Provider       string `yaml:"provider"`
	PostgresDSNEnv string `yaml:"postgres_dsn_env,omitempty"` // resolved via os.Getenv, never stored merged
}

// LLMConfig selects and parameterizes the llm.provider backend.
type LLMConfig struct {
	Provider       string `yaml:"provider"`
	BaseURL        string `yaml:"base_url,omitempty"`
	Model          string `yaml:"model,omitempty"`
	EmbeddingModel string `yaml:"embedding_model,omitempty"`
	EmbeddingDims  int    `yaml:"embedding_dims,omitempty"`
}

// RunbooksConfig controls where the runbook corpus lives and whether it is
// ingested automatically at boot.
type RunbooksConfig struct {
	Bucket          string `yaml:"bucket"`
	IngestOnStartup bool   `yaml:"ingest_on_startup"`
}

// ServerConfig controls the HTTP listener.
type ServerConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

// RetrievalConfig controls the chunk-retrieval stage's tunables. TopK is
// passed to the pipeline; OverFetchFactor is validated but not read by the
// retriever, which over-fetches by a fixed factor of 2.
type RetrievalConfig struct {
	TopK            int `yaml:"top_k,omitempty"`
	OverFetchFactor int `yaml:"over_fetch_factor,omitempty"`
}

// SlackTokenEnv is the environment variable a "slack" webhook's bot token is
// read from at dispatch-adapter construction time; it is never merged into
// the YAML-derived Config, matching the *_env pattern used for every other
// credential in this service.
const SlackTokenEnv = "SLACK_BOT_TOKEN"
