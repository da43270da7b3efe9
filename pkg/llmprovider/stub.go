package llmprovider

import (
	"context"
	"crypto/sha256"
	"encoding/binary"

	"github.com/sreops/runbook-synthesizer/pkg/cloudadapter"
)

// DefaultStubEmbeddingDims is the vector length StubProvider emits when the
// caller does not specify one.
const DefaultStubEmbeddingDims = 32

// StubProvider is a deterministic, network-free LlmProvider: embeddings are
// derived from a text hash (so identical inputs always produce identical
// vectors, letting similarity tests be deterministic without a live model),
// and text generation echoes a canned Markdown checklist. Intended for local
// development and tests, not production traffic.
type StubProvider struct {
	dims int
}

// NewStubProvider builds a StubProvider emitting vectors of length dims.
func NewStubProvider(dims int) *StubProvider {
	return &StubProvider{dims: dims}
}

func (s *StubProvider) ProviderID() string { return "stub" }

func (s *StubProvider) GenerateText(_ context.Context, prompt string, _ cloudadapter.GenerateConfig) (string, error) {
	return stubChecklistMarkdown, nil
}

func (s *StubProvider) GenerateEmbedding(_ context.Context, text string) ([]float32, error) {
	return hashEmbedding(text, s.dims), nil
}

func (s *StubProvider) GenerateEmbeddings(_ context.Context, texts []string) ([][]float32, error) {
	out := make([][]float32, len(texts))
	for i, t := range texts {
		out[i] = hashEmbedding(t, s.dims)
	}
	return out, nil
}

const stubChecklistMarkdown = `Step 1: Check the resource's current health status in the cloud console.
Step 2: Review recent metrics for the affected resource over the last hour.
Step 3: Search recent logs for error-level entries correlated with the alert time.
Step 4: If a known runbook excerpt was provided, follow its specific remediation; otherwise escalate per standard on-call procedure.`

// hashEmbedding derives a deterministic unit-ish vector from text by hashing
// it with SHA-256 and spreading the digest bytes across dims via repeated
// reads, so dims can exceed the 32-byte digest length.
func hashEmbedding(text string, dims int) []float32 {
	sum := sha256.Sum256([]byte(text))
	out := make([]float32, dims)
	for i := 0; i < dims; i++ {
		b := sum[i%len(sum):]
		if len(b) < 4 {
			b = append(append([]byte{}, b...), sum[:4-len(b)]...)
		}
		v := binary.BigEndian.Uint32(b[:4])
		out[i] = float32(v%2000)/1000.0 - 1.0 // spread into roughly [-1, 1]
	}
	return out
}
