package checklist

import (
	"encoding/json"
	"regexp"
	"strings"

	"github.com/sreops/runbook-synthesizer/pkg/domain"
)

// jsonChecklist is the strict JSON response dialect.
type jsonChecklist struct {
	Summary string     `json:"summary"`
	Steps   []jsonStep `json:"steps"`
}

type jsonStep struct {
	Order       int      `json:"order"`
	Instruction string   `json:"instruction"`
	Rationale   string   `json:"rationale"`
	Priority    string   `json:"priority"`
	Commands    []string `json:"commands"`
}

// markdownStepPattern matches "Step N:", "- ", "* ", or "N." at line start.
var markdownStepPattern = regexp.MustCompile(`^\s*(?:Step\s+\d+:\s*|[-*]\s+|\d+\.\s+)(.+)$`)

// parseResponse attempts the JSON dialect first, falling back to Markdown.
// ok is false only when neither dialect produced a single step.
func parseResponse(raw string) (summary string, steps []domain.ChecklistStep, ok bool) {
	if s, steps, parsed := parseJSON(raw); parsed {
		return s, steps, true
	}
	if steps, parsed := parseMarkdown(raw); parsed {
		return deriveSummaryFromText(raw), steps, true
	}
	return "", nil, false
}

func parseJSON(raw string) (string, []domain.ChecklistStep, bool) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" || trimmed[0] != '{' {
		return "", nil, false
	}
	var jc jsonChecklist
	if err := json.Unmarshal([]byte(trimmed), &jc); err != nil {
		return "", nil, false
	}
	if len(jc.Steps) == 0 {
		return "", nil, false
	}
	steps := make([]domain.ChecklistStep, 0, len(jc.Steps))
	for i, js := range jc.Steps {
		order := js.Order
		if order <= 0 {
			order = i + 1
		}
		steps = append(steps, domain.ChecklistStep{
			Order:       order,
			Instruction: js.Instruction,
			Rationale:   js.Rationale,
			Priority:    normalizePriority(js.Priority, js.Instruction),
			Commands:    append([]string(nil), js.Commands...),
		})
	}
	return jc.Summary, steps, true
}

func parseMarkdown(raw string) ([]domain.ChecklistStep, bool) {
	lines := strings.Split(raw, "\n")
	var steps []domain.ChecklistStep
	order := 0
	for _, line := range lines {
		m := markdownStepPattern.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		instruction := strings.TrimSpace(m[1])
		if instruction == "" {
			continue
		}
		order++
		steps = append(steps, domain.ChecklistStep{
			Order:       order,
			Instruction: instruction,
			Priority:    normalizePriority("", instruction),
		})
	}
	if len(steps) == 0 {
		return nil, false
	}
	return steps, true
}

// normalizePriority defaults to MEDIUM. When declared is empty or
// unrecognized, an instruction mentioning "urgent" or "critical" is promoted
// to HIGH.
func normalizePriority(declared, instruction string) domain.Priority {
	switch strings.ToUpper(strings.TrimSpace(declared)) {
	case string(domain.PriorityHigh):
		return domain.PriorityHigh
	case string(domain.PriorityMedium):
		return domain.PriorityMedium
	case string(domain.PriorityLow):
		return domain.PriorityLow
	}
	lower := strings.ToLower(instruction)
	if strings.Contains(lower, "urgent") || strings.Contains(lower, "critical") {
		return domain.PriorityHigh
	}
	return domain.PriorityMedium
}

// deriveSummaryFromText is the non-JSON summary fallback: the first
// non-empty line, truncated to 200 characters with an ellipsis.
func deriveSummaryFromText(raw string) string {
	for _, line := range strings.Split(raw, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}
		if len(trimmed) > 200 {
			return trimmed[:200] + "..."
		}
		return trimmed
	}
	return ""
}

// fallbackStep synthesizes a single-step checklist when neither dialect can
// be parsed, so a malformed model response never surfaces as a hard error.
func fallbackStep() []domain.ChecklistStep {
	return []domain.ChecklistStep{{
		Order:       1,
		Instruction: "Structured output could not be recovered from the model response; review the raw LLM output manually and proceed with standard troubleshooting.",
		Priority:    domain.PriorityMedium,
	}}
}
