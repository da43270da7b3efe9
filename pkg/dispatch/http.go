package dispatch

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/sreops/runbook-synthesizer/pkg/domain"
)

// HTTPDestination POSTs the checklist as JSON to a generic webhook URL.
type HTTPDestination struct {
	name    string
	url     string
	headers map[string]string
	client  *http.Client
}

// NewHTTPDestination builds an HTTPDestination from a generic WebhookConfig.
func NewHTTPDestination(cfg domain.WebhookConfig) *HTTPDestination {
	return &HTTPDestination{
		name:    cfg.Name,
		url:     cfg.URL,
		headers: cfg.Headers,
		client:  &http.Client{Timeout: PerDestinationTimeout},
	}
}

func (h *HTTPDestination) Name() string { return h.name }

type webhookPayload struct {
	AlertID        string                 `json:"alertId"`
	AlertTitle     string                 `json:"alertTitle"`
	Severity       domain.Severity        `json:"severity"`
	Summary        string                 `json:"summary"`
	Steps          []domain.ChecklistStep `json:"steps"`
	SourceRunbooks []string               `json:"sourceRunbooks"`
	GeneratedAt    time.Time              `json:"generatedAt"`
}

func (h *HTTPDestination) Send(ctx context.Context, checklist *domain.DynamicChecklist, alert *domain.Alert) domain.WebhookResult {
	body, err := json.Marshal(webhookPayload{
		AlertID:        checklist.AlertID,
		AlertTitle:     alert.Title,
		Severity:       alert.Severity,
		Summary:        checklist.Summary,
		Steps:          checklist.Steps,
		SourceRunbooks: checklist.SourceRunbooks,
		GeneratedAt:    checklist.GeneratedAt,
	})
	if err != nil {
		return domain.WebhookResult{DestinationName: h.name, Status: domain.WebhookStatusFailure, Error: fmt.Sprintf("marshal payload: %v", err)}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, h.url, bytes.NewReader(body))
	if err != nil {
		return domain.WebhookResult{DestinationName: h.name, Status: domain.WebhookStatusFailure, Error: fmt.Sprintf("build request: %v", err)}
	}
	req.Header.Set("Content-Type", "application/json")
	for k, v := range h.headers {
		req.Header.Set(k, v)
	}

	resp, err := h.client.Do(req)
	if err != nil {
		return domain.WebhookResult{DestinationName: h.name, Status: domain.WebhookStatusFailure, Error: err.Error()}
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return domain.WebhookResult{
			DestinationName: h.name,
			Status:          domain.WebhookStatusFailure,
			HTTPCode:        resp.StatusCode,
			Error:           fmt.Sprintf("webhook responded with status %d", resp.StatusCode),
		}
	}
	return domain.WebhookResult{DestinationName: h.name, Status: domain.WebhookStatusSuccess, HTTPCode: resp.StatusCode}
}
