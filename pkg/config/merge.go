package config

import "github.com/sreops/runbook-synthesizer/pkg/domain"

// mergeWebhooks merges built-in and user-defined webhook destinations.
// User-defined destinations override a built-in one of the same name; any
// user destination without a same-named built-in counterpart is appended.
func mergeWebhooks(builtin, user []domain.WebhookConfig) []domain.WebhookConfig {
	byName := make(map[string]domain.WebhookConfig, len(builtin)+len(user))
	order := make([]string, 0, len(builtin)+len(user))

	for _, w := range builtin {
		byName[w.Name] = w
		order = append(order, w.Name)
	}
	for _, w := range user {
		if _, exists := byName[w.Name]; !exists {
			order = append(order, w.Name)
		}
		byName[w.Name] = w
	}

	result := make([]domain.WebhookConfig, 0, len(order))
	for _, name := range order {
		result = append(result, byName[name])
	}
	return result
}
