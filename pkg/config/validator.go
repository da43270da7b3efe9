package config

import (
	"fmt"

	"github.com/sreops/runbook-synthesizer/pkg/domain"
)

// Validator validates a merged Config comprehensively, with clear,
// component-scoped error messages.
type Validator struct {
	cfg *Config
}

// NewValidator creates a validator for the given configuration.
func NewValidator(cfg *Config) *Validator {
	return &Validator{cfg: cfg}
}

// ValidateAll performs comprehensive validation, fail-fast.
func (v *Validator) ValidateAll() error {
	if err := v.validateCloud(); err != nil {
		return fmt.Errorf("cloud validation failed: %w", err)
	}
	if err := v.validateVectorStore(); err != nil {
		return fmt.Errorf("vectorStore validation failed: %w", err)
	}
	if err := v.validateLLM(); err != nil {
		return fmt.Errorf("llm validation failed: %w", err)
	}
	if err := v.validateRunbooks(); err != nil {
		return fmt.Errorf("runbooks validation failed: %w", err)
	}
	if err := v.validateWebhooks(); err != nil {
		return fmt.Errorf("webhooks validation failed: %w", err)
	}
	if err := v.validateServer(); err != nil {
		return fmt.Errorf("server validation failed: %w", err)
	}
	if err := v.validateRetrieval(); err != nil {
		return fmt.Errorf("retrieval validation failed: %w", err)
	}
	return nil
}

func (v *Validator) validateCloud() error {
	c := v.cfg.Cloud
	switch c.Provider {
	case "local":
		if c.LocalRunbookDir == "" {
			return NewValidationError("cloud", c.Provider, "local_runbook_dir", ErrMissingRequiredField)
		}
	case "aws", "oci":
		if c.BaseURL == "" {
			return NewValidationError("cloud", c.Provider, "base_url", ErrMissingRequiredField)
		}
	default:
		return NewValidationError("cloud", c.Provider, "provider", fmt.Errorf("unknown cloud provider %q", c.Provider))
	}
	return nil
}

func (v *Validator) validateVectorStore() error {
	c := v.cfg.VectorStore
	switch c.Provider {
	case "local":
	case "aws", "oci":
		if c.PostgresDSNEnv == "" {
			return NewValidationError("vectorStore", c.Provider, "postgres_dsn_env", ErrMissingRequiredField)
		}
	default:
		return NewValidationError("vectorStore", c.Provider, "provider", fmt.Errorf("unknown vectorStore provider %q", c.Provider))
	}
	return nil
}

func (v *Validator) validateLLM() error {
	c := v.cfg.LLM
	switch c.Provider {
	case "stub":
	case "http", "ollama":
		if c.BaseURL == "" {
			return NewValidationError("llm", c.Provider, "base_url", ErrMissingRequiredField)
		}
	default:
		return NewValidationError("llm", c.Provider, "provider", fmt.Errorf("unknown llm provider %q", c.Provider))
	}
	return nil
}

func (v *Validator) validateRunbooks() error {
	if v.cfg.Runbooks.Bucket == "" {
		return NewValidationError("runbooks", "runbooks", "bucket", ErrMissingRequiredField)
	}
	return nil
}

func (v *Validator) validateWebhooks() error {
	seen := make(map[string]bool, len(v.cfg.Webhooks))
	for _, w := range v.cfg.Webhooks {
		if w.Name == "" {
			return NewValidationError("webhook", "", "name", ErrMissingRequiredField)
		}
		if seen[w.Name] {
			return NewValidationError("webhook", w.Name, "name", fmt.Errorf("duplicate webhook name %q", w.Name))
		}
		seen[w.Name] = true

		if err := validateWebhookType(w); err != nil {
			return NewValidationError("webhook", w.Name, "type", err)
		}
		for _, sev := range w.Filter {
			if !validSeverity(sev) {
				return NewValidationError("webhook", w.Name, "filter", fmt.Errorf("unknown severity %q", sev))
			}
		}
	}
	return nil
}

func validateWebhookType(w domain.WebhookConfig) error {
	switch w.Type {
	case "slack":
		if w.URL == "" {
			return fmt.Errorf("slack webhook requires url to carry the target channel ID")
		}
	case "pagerduty", "generic":
		if w.URL == "" {
			return ErrMissingRequiredField
		}
	case "file":
		if w.URL == "" {
			return fmt.Errorf("file webhook requires url to carry the target directory")
		}
	default:
		return fmt.Errorf("unknown webhook type %q", w.Type)
	}
	return nil
}

func validSeverity(sev domain.Severity) bool {
	switch sev {
	case domain.SeverityCritical, domain.SeverityWarning, domain.SeverityInfo:
		return true
	default:
		return false
	}
}

func (v *Validator) validateServer() error {
	s := v.cfg.Server
	if s.Port <= 0 || s.Port > 65535 {
		return NewValidationError("server", "server", "port", fmt.Errorf("port %d out of range", s.Port))
	}
	return nil
}

func (v *Validator) validateRetrieval() error {
	r := v.cfg.Retrieval
	if r.TopK <= 0 {
		return NewValidationError("retrieval", "retrieval", "top_k", fmt.Errorf("top_k must be positive, got %d", r.TopK))
	}
	if r.OverFetchFactor <= 0 {
		return NewValidationError("retrieval", "retrieval", "over_fetch_factor", fmt.Errorf("over_fetch_factor must be positive, got %d", r.OverFetchFactor))
	}
	return nil
}

// validateConfig performs comprehensive validation on loaded configuration.
func validateConfig(cfg *Config) error {
	return NewValidator(cfg).ValidateAll()
}
