package domain

import "time"

// Priority is a ChecklistStep's urgency level.
type Priority string

const (
	PriorityHigh   Priority = "HIGH"
	PriorityMedium Priority = "MEDIUM"
	PriorityLow    Priority = "LOW"
)

// ChecklistStep is one actionable instruction in a DynamicChecklist.
type ChecklistStep struct {
	Order         int `json:"order"` // 1-based
	Instruction   string `json:"instruction"`
	Rationale     string `json:"rationale,omitempty"`
	CurrentValue  string `json:"currentValue,omitempty"`
	ExpectedValue string `json:"expectedValue,omitempty"`
	Priority      Priority `json:"priority"`
	Commands      []string `json:"commands,omitempty"`
}

// DynamicChecklist is the final artifact returned to the HTTP caller and
// fanned out to webhook destinations.
type DynamicChecklist struct {
	AlertID        string          `json:"alertId"`
	Summary        string          `json:"summary"`
	Steps          []ChecklistStep `json:"steps"`
	SourceRunbooks []string        `json:"sourceRunbooks"` // distinct origin paths, order of first appearance
	GeneratedAt    time.Time       `json:"generatedAt"`
	LLMProviderID  string          `json:"llmProviderId"`
}
