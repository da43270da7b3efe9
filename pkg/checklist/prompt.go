package checklist

import (
	"fmt"
	"strings"

	"github.com/sreops/runbook-synthesizer/pkg/domain"
)

const systemInstruction = `You are an SRE assistant. Given an infrastructure alert and relevant runbook excerpts, produce a prioritized, actionable troubleshooting checklist. Safety priorities: never suggest destructive commands (rm -rf, DROP TABLE, force-delete) without an explicit rationale and a safer alternative first. Output either a numbered/bulleted Markdown list of steps, or a single JSON object: {"summary": string, "steps": [{"order": int, "instruction": string, "rationale": string, "priority": "HIGH"|"MEDIUM"|"LOW", "commands": [string]}]}.`

const noChunksSentinel = "No runbook excerpts were found for this alert. Fall back on general SRE best practices for this class of issue."

// buildPrompt assembles three labeled sections: a fixed system instruction,
// a context block, and a chunks block.
func buildPrompt(ec *domain.EnrichedContext, chunks []domain.RetrievedChunk) string {
	var b strings.Builder

	b.WriteString("# System Instruction\n")
	b.WriteString(systemInstruction)
	b.WriteString("\n\n# Context\n")

	displayName := "N/A"
	shape := "N/A"
	if ec.Resource != nil {
		if ec.Resource.DisplayName != "" {
			displayName = ec.Resource.DisplayName
		}
		if ec.Resource.Shape != "" {
			shape = ec.Resource.Shape
		}
	}
	fmt.Fprintf(&b, "Alert title: %s\n", ec.Alert.Title)
	fmt.Fprintf(&b, "Severity: %s\n", ec.Alert.Severity)
	fmt.Fprintf(&b, "Message: %s\n", ec.Alert.Message)
	fmt.Fprintf(&b, "Resource display name: %s\n", displayName)
	fmt.Fprintf(&b, "Resource shape: %s\n", shape)

	b.WriteString("\n# Runbook Excerpts\n")
	if len(chunks) == 0 {
		b.WriteString(noChunksSentinel)
		b.WriteString("\n")
	} else {
		for _, c := range chunks {
			fmt.Fprintf(&b, "## %s — %s\n%s\n\n", c.Chunk.RunbookPath, c.Chunk.SectionTitle, c.Chunk.Content)
		}
	}

	return b.String()
}
