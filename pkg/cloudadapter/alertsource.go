package cloudadapter

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sreops/runbook-synthesizer/pkg/domain"
)

// GenericAlertSource accepts the canonical AlertRequest shape verbatim. It
// is the fallback AlertSourceRegistry.Normalize uses when no provider-specific
// adapter's CanHandle matches. The HTTP alert handler does not go through the
// registry; it binds the canonical AlertRequest directly.
type GenericAlertSource struct{}

func (GenericAlertSource) SourceService() string { return "generic" }

func (GenericAlertSource) CanHandle(rawPayload []byte) bool {
	var probe struct {
		Title    string `json:"title"`
		Severity string `json:"severity"`
	}
	if err := json.Unmarshal(rawPayload, &probe); err != nil {
		return false
	}
	return probe.Title != ""
}

// canonicalRequest mirrors the api.AlertRequest wire shape, using the same
// JSON field names; ParseAlert decodes into it.
type canonicalRequest struct {
	Title         string            `json:"title"`
	Message       string            `json:"message"`
	Severity      string            `json:"severity"`
	SourceService string            `json:"sourceService"`
	Dimensions    map[string]string `json:"dimensions"`
	Labels        map[string]string `json:"labels"`
	Timestamp     *time.Time        `json:"timestamp"`
	RawPayload    json.RawMessage   `json:"rawPayload"`
}

func (GenericAlertSource) ParseAlert(rawPayload []byte) (*domain.Alert, error) {
	var req canonicalRequest
	if err := json.Unmarshal(rawPayload, &req); err != nil {
		return nil, fmt.Errorf("cloudadapter: parse canonical alert: %w", err)
	}
	ts := time.Now().UTC()
	if req.Timestamp != nil {
		ts = *req.Timestamp
	}
	raw := rawPayload
	if len(req.RawPayload) > 0 {
		raw = req.RawPayload
	}
	sourceService := req.SourceService
	if sourceService == "" {
		sourceService = "generic"
	}
	return domain.NewAlert(
		uuid.NewString(),
		req.Title,
		req.Message,
		domain.Severity(req.Severity),
		sourceService,
		req.Dimensions,
		req.Labels,
		ts,
		raw,
	), nil
}

// AlertSourceRegistry holds the configured AlertSourceAdapters and picks the first match.
type AlertSourceRegistry struct {
	adapters []AlertSourceAdapter
}

// NewAlertSourceRegistry builds a registry with the given provider-specific
// normalizers tried, in order, before the generic fallback.
func NewAlertSourceRegistry(providerSpecific ...AlertSourceAdapter) *AlertSourceRegistry {
	adapters := make([]AlertSourceAdapter, 0, len(providerSpecific)+1)
	adapters = append(adapters, providerSpecific...)
	adapters = append(adapters, GenericAlertSource{})
	return &AlertSourceRegistry{adapters: adapters}
}

// Normalize picks the first adapter whose CanHandle matches and parses with it.
func (r *AlertSourceRegistry) Normalize(rawPayload []byte) (*domain.Alert, error) {
	for _, a := range r.adapters {
		if a.CanHandle(rawPayload) {
			return a.ParseAlert(rawPayload)
		}
	}
	// GenericAlertSource is always present and always the last resort; if
	// nothing matched the payload lacks even a title.
	return nil, fmt.Errorf("cloudadapter: no alert source adapter could handle payload")
}
