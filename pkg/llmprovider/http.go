package llmprovider

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/sreops/runbook-synthesizer/pkg/cloudadapter"
)

const defaultHTTPTimeout = 60 * time.Second

// HTTPProvider calls an Ollama-compatible HTTP API: POST /api/generate for
// text, POST /api/embeddings for vectors. No streaming: each call blocks
// for the full response body.
type HTTPProvider struct {
	baseURL        string
	model          string
	embeddingModel string
	client         *http.Client
}

// NewHTTPProvider builds an HTTPProvider. embeddingModel defaults to model
// when empty, matching Ollama deployments that serve one model for both.
func NewHTTPProvider(baseURL, model, embeddingModel string) *HTTPProvider {
	if embeddingModel == "" {
		embeddingModel = model
	}
	return &HTTPProvider{
		baseURL:        baseURL,
		model:          model,
		embeddingModel: embeddingModel,
		client:         &http.Client{Timeout: defaultHTTPTimeout},
	}
}

func (p *HTTPProvider) ProviderID() string { return "http:" + p.model }

type generateRequest struct {
	Model   string                 `json:"model"`
	Prompt  string                 `json:"prompt"`
	Stream  bool                   `json:"stream"`
	Options map[string]any         `json:"options,omitempty"`
}

type generateResponse struct {
	Response string `json:"response"`
}

func (p *HTTPProvider) GenerateText(ctx context.Context, prompt string, cfg cloudadapter.GenerateConfig) (string, error) {
	reqBody := generateRequest{
		Model:  p.model,
		Prompt: prompt,
		Stream: false,
		Options: map[string]any{
			"temperature": cfg.Temperature,
			"num_predict": cfg.MaxTokens,
		},
	}

	var resp generateResponse
	if err := p.postJSON(ctx, "/api/generate", reqBody, &resp); err != nil {
		return "", fmt.Errorf("llmprovider/http: generate: %w", err)
	}
	return resp.Response, nil
}

type embeddingRequest struct {
	Model  string `json:"model"`
	Prompt string `json:"prompt"`
}

type embeddingResponse struct {
	Embedding []float32 `json:"embedding"`
}

func (p *HTTPProvider) GenerateEmbedding(ctx context.Context, text string) ([]float32, error) {
	reqBody := embeddingRequest{Model: p.embeddingModel, Prompt: text}
	var resp embeddingResponse
	if err := p.postJSON(ctx, "/api/embeddings", reqBody, &resp); err != nil {
		return nil, fmt.Errorf("llmprovider/http: embed: %w", err)
	}
	return resp.Embedding, nil
}

// GenerateEmbeddings calls GenerateEmbedding once per text: the Ollama
// embeddings endpoint has no native batch form.
func (p *HTTPProvider) GenerateEmbeddings(ctx context.Context, texts []string) ([][]float32, error) {
	out := make([][]float32, len(texts))
	for i, t := range texts {
		emb, err := p.GenerateEmbedding(ctx, t)
		if err != nil {
			return nil, fmt.Errorf("llmprovider/http: embed batch item %d: %w", i, err)
		}
		out[i] = emb
	}
	return out, nil
}

func (p *HTTPProvider) postJSON(ctx context.Context, path string, body, out any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.client.Do(req)
	if err != nil {
		return fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return fmt.Errorf("unexpected status %d from %s", resp.StatusCode, path)
	}
	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
	}
	return nil
}
