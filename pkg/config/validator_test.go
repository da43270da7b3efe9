package config_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/sreops/runbook-synthesizer/pkg/config"
	"github.com/sreops/runbook-synthesizer/pkg/domain"
)

func validConfig() *config.Config {
	builtin := config.GetBuiltinConfig()
	return &config.Config{
		Cloud:       &builtin.Cloud,
		VectorStore: &builtin.VectorStore,
		LLM:         &builtin.LLM,
		Runbooks:    &builtin.Runbooks,
		Server:      &builtin.Server,
		Retrieval:   &builtin.Retrieval,
	}
}

func TestValidator_ValidateAll_AcceptsBuiltinDefaults(t *testing.T) {
	err := config.NewValidator(validConfig()).ValidateAll()
	assert.NoError(t, err)
}

func TestValidator_ValidateAll_RejectsUnknownCloudProvider(t *testing.T) {
	cfg := validConfig()
	cfg.Cloud.Provider = "gcp"
	err := config.NewValidator(cfg).ValidateAll()
	assert.Error(t, err)
}

func TestValidator_ValidateAll_RejectsMissingRunbooksBucket(t *testing.T) {
	cfg := validConfig()
	cfg.Runbooks.Bucket = ""
	err := config.NewValidator(cfg).ValidateAll()
	assert.Error(t, err)
}

func TestValidator_ValidateAll_RejectsPortOutOfRange(t *testing.T) {
	cfg := validConfig()
	cfg.Server.Port = 70000
	err := config.NewValidator(cfg).ValidateAll()
	assert.Error(t, err)
}

func TestValidator_ValidateAll_RejectsNonPositiveTopK(t *testing.T) {
	cfg := validConfig()
	cfg.Retrieval.TopK = 0
	err := config.NewValidator(cfg).ValidateAll()
	assert.Error(t, err)
}

func TestValidator_ValidateAll_RejectsDuplicateWebhookNames(t *testing.T) {
	cfg := validConfig()
	cfg.Webhooks = []domain.WebhookConfig{
		{Name: "ops", Type: "generic", URL: "http://example.com/a", Enabled: true},
		{Name: "ops", Type: "generic", URL: "http://example.com/b", Enabled: true},
	}
	err := config.NewValidator(cfg).ValidateAll()
	assert.Error(t, err)
}

func TestValidator_ValidateAll_RejectsSlackWebhookWithoutURL(t *testing.T) {
	cfg := validConfig()
	cfg.Webhooks = []domain.WebhookConfig{
		{Name: "slack-ops", Type: "slack", Enabled: true},
	}
	err := config.NewValidator(cfg).ValidateAll()
	assert.Error(t, err)
}

func TestValidator_ValidateAll_RejectsUnknownSeverityInFilter(t *testing.T) {
	cfg := validConfig()
	cfg.Webhooks = []domain.WebhookConfig{
		{Name: "ops", Type: "generic", URL: "http://example.com", Enabled: true, Filter: []domain.Severity{"bogus"}},
	}
	err := config.NewValidator(cfg).ValidateAll()
	assert.Error(t, err)
}

func TestValidator_ValidateAll_AcceptsValidWebhook(t *testing.T) {
	cfg := validConfig()
	cfg.Webhooks = []domain.WebhookConfig{
		{Name: "ops", Type: "generic", URL: "http://example.com", Enabled: true, Filter: []domain.Severity{domain.SeverityCritical}},
	}
	err := config.NewValidator(cfg).ValidateAll()
	assert.NoError(t, err)
}
