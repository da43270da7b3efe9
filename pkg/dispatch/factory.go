package dispatch

import (
	"fmt"

	"github.com/sreops/runbook-synthesizer/pkg/domain"
)

// NewDestination builds the concrete Destination for cfg.Type. slackToken is
// only consulted for "slack" destinations; pass the empty string when none
// is configured.
func NewDestination(cfg domain.WebhookConfig, slackToken string) (Destination, error) {
	switch cfg.Type {
	case "slack":
		if slackToken == "" {
			return nil, fmt.Errorf("dispatch: slack destination %q requires a bot token", cfg.Name)
		}
		return NewSlackDestination(cfg, slackToken), nil
	case "generic", "pagerduty":
		return NewHTTPDestination(cfg), nil
	case "file":
		return NewFileDestination(cfg), nil
	default:
		return nil, fmt.Errorf("dispatch: unknown webhook type %q", cfg.Type)
	}
}
