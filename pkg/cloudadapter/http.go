package cloudadapter

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/sreops/runbook-synthesizer/pkg/domain"
)

// buildHTTPBundle wires the "aws"/"oci" provider families against a JSON
// gateway addressed by cfg.BaseURL. A deployment that needs real AWS/OCI SDK
// calls registers its own builder via Factory.RegisterBuilder instead of
// using this one.
func buildHTTPBundle(provider ProviderType, cfg Config) (Bundle, error) {
	if cfg.BaseURL == "" {
		return Bundle{}, fmt.Errorf("cloudadapter: %s provider requires baseURL", provider)
	}
	timeout := time.Duration(cfg.RequestTimeoutMS) * time.Millisecond
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	client := &http.Client{Timeout: timeout}
	return Bundle{
		Storage:  &httpStorageAdapter{provider: provider, baseURL: cfg.BaseURL, client: client},
		Metadata: &httpMetadataAdapter{provider: provider, baseURL: cfg.BaseURL, client: client},
		Metrics:  &httpMetricsAdapter{provider: provider, baseURL: cfg.BaseURL, client: client},
		Logs:     &httpLogsAdapter{provider: provider, baseURL: cfg.BaseURL, client: client},
	}, nil
}

func doJSON(ctx context.Context, client *http.Client, method, rawURL string, out any) (found bool, err error) {
	req, err := http.NewRequestWithContext(ctx, method, rawURL, nil)
	if err != nil {
		return false, fmt.Errorf("build request: %w", err)
	}
	resp, err := client.Do(req)
	if err != nil {
		return false, fmt.Errorf("upstream unavailable: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return false, nil
	}
	if resp.StatusCode >= 400 {
		return false, fmt.Errorf("upstream returned status %d", resp.StatusCode)
	}
	if out == nil {
		return true, nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return false, fmt.Errorf("decode response: %w", err)
	}
	return true, nil
}

type httpStorageAdapter struct {
	provider ProviderType
	baseURL  string
	client   *http.Client
}

func (a *httpStorageAdapter) ProviderType() ProviderType { return a.provider }

func (a *httpStorageAdapter) ListRunbooks(ctx context.Context, container string) ([]string, error) {
	u := fmt.Sprintf("%s/buckets/%s/objects?suffix=.md", a.baseURL, url.PathEscape(container))
	var keys []string
	if _, err := doJSON(ctx, a.client, http.MethodGet, u, &keys); err != nil {
		return nil, fmt.Errorf("cloudadapter/%s: list runbooks: %w", a.provider, err)
	}
	return keys, nil
}

func (a *httpStorageAdapter) GetRunbookContent(ctx context.Context, container, key string) (string, bool, error) {
	u := fmt.Sprintf("%s/buckets/%s/objects/%s", a.baseURL, url.PathEscape(container), url.PathEscape(key))
	var body struct {
		Content string `json:"content"`
	}
	found, err := doJSON(ctx, a.client, http.MethodGet, u, &body)
	if err != nil {
		return "", false, fmt.Errorf("cloudadapter/%s: get runbook %q: %w", a.provider, key, err)
	}
	if !found {
		return "", false, nil
	}
	return body.Content, true, nil
}

type httpMetadataAdapter struct {
	provider ProviderType
	baseURL  string
	client   *http.Client
}

func (a *httpMetadataAdapter) ProviderType() ProviderType { return a.provider }

func (a *httpMetadataAdapter) GetInstance(ctx context.Context, resourceID string) (*domain.ResourceMetadata, error) {
	u := fmt.Sprintf("%s/instances/%s", a.baseURL, url.PathEscape(resourceID))
	var meta domain.ResourceMetadata
	found, err := doJSON(ctx, a.client, http.MethodGet, u, &meta)
	if err != nil {
		return nil, fmt.Errorf("cloudadapter/%s: get instance %q: %w", a.provider, resourceID, err)
	}
	if !found {
		return nil, nil
	}
	return &meta, nil
}

type httpMetricsAdapter struct {
	provider ProviderType
	baseURL  string
	client   *http.Client
}

func (a *httpMetricsAdapter) ProviderType() ProviderType { return a.provider }

func (a *httpMetricsAdapter) FetchMetrics(ctx context.Context, resourceID string, lookback time.Duration) ([]domain.MetricSnapshot, error) {
	u := fmt.Sprintf("%s/metrics/%s?lookback=%s", a.baseURL, url.PathEscape(resourceID), lookback)
	var metrics []domain.MetricSnapshot
	found, err := doJSON(ctx, a.client, http.MethodGet, u, &metrics)
	if err != nil {
		return nil, fmt.Errorf("cloudadapter/%s: fetch metrics for %q: %w", a.provider, resourceID, err)
	}
	if !found {
		return nil, nil
	}
	return metrics, nil
}

type httpLogsAdapter struct {
	provider ProviderType
	baseURL  string
	client   *http.Client
}

func (a *httpLogsAdapter) ProviderType() ProviderType { return a.provider }

func (a *httpLogsAdapter) FetchLogs(ctx context.Context, resourceID string, lookback time.Duration, query string) ([]domain.LogEntry, error) {
	u := fmt.Sprintf("%s/logs/%s?lookback=%s&query=%s", a.baseURL, url.PathEscape(resourceID), lookback, url.QueryEscape(query))
	var logs []domain.LogEntry
	found, err := doJSON(ctx, a.client, http.MethodGet, u, &logs)
	if err != nil {
		return nil, fmt.Errorf("cloudadapter/%s: fetch logs for %q: %w", a.provider, resourceID, err)
	}
	if !found {
		return nil, nil
	}
	return logs, nil
}
