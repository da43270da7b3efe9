package dispatch

import (
	"context"
	"fmt"

	goslack "github.com/slack-go/slack"
	"github.com/sreops/runbook-synthesizer/pkg/domain"
)

var severityEmoji = map[domain.Severity]string{
	domain.SeverityCritical: ":rotating_light:",
	domain.SeverityWarning:  ":warning:",
	domain.SeverityInfo:     ":information_source:",
}

// SlackDestination posts a checklist's summary and steps as Block Kit
// message to a configured channel.
type SlackDestination struct {
	name      string
	channelID string
	api       *goslack.Client
}

// NewSlackDestination builds a SlackDestination. token is the bot token;
// cfg.URL carries the target channel ID.
func NewSlackDestination(cfg domain.WebhookConfig, token string) *SlackDestination {
	return &SlackDestination{
		name:      cfg.Name,
		channelID: cfg.URL,
		api:       goslack.New(token),
	}
}

func (s *SlackDestination) Name() string { return s.name }

func (s *SlackDestination) Send(ctx context.Context, checklist *domain.DynamicChecklist, alert *domain.Alert) domain.WebhookResult {
	blocks := buildChecklistBlocks(checklist, alert)
	_, _, err := s.api.PostMessageContext(ctx, s.channelID, goslack.MsgOptionBlocks(blocks...))
	if err != nil {
		return domain.WebhookResult{DestinationName: s.name, Status: domain.WebhookStatusFailure, Error: fmt.Sprintf("chat.postMessage failed: %v", err)}
	}
	return domain.WebhookResult{DestinationName: s.name, Status: domain.WebhookStatusSuccess}
}

func buildChecklistBlocks(checklist *domain.DynamicChecklist, alert *domain.Alert) []goslack.Block {
	emoji := severityEmoji[alert.Severity]
	if emoji == "" {
		emoji = ":question:"
	}

	header := fmt.Sprintf("%s *%s*\n%s", emoji, alert.Title, checklist.Summary)
	blocks := []goslack.Block{
		goslack.NewSectionBlock(goslack.NewTextBlockObject(goslack.MarkdownType, header, false, false), nil, nil),
	}

	for _, step := range checklist.Steps {
		text := fmt.Sprintf("*%d. [%s]* %s", step.Order, step.Priority, step.Instruction)
		if step.Rationale != "" {
			text += fmt.Sprintf("\n_%s_", step.Rationale)
		}
		blocks = append(blocks, goslack.NewSectionBlock(goslack.NewTextBlockObject(goslack.MarkdownType, text, false, false), nil, nil))
	}

	return blocks
}
