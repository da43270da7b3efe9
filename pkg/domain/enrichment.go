package domain

import "time"

// ResourceMetadata describes an alert's target compute resource. Nil when the
// resource cannot be resolved by the configured ComputeMetadataAdapter.
type ResourceMetadata struct {
	ResourceID            string
	DisplayName           string
	CompartmentOrAccount  string
	Shape                 string
	Zone                  string
	FreeformTags          map[string]string
	DefinedTags           map[string]string
}

// MetricSnapshot is a single metric data point returned by a MetricsSourceAdapter.
type MetricSnapshot struct {
	Name      string
	Namespace string
	Value     float64 // negative allowed
	Unit      string
	Timestamp time.Time
}

// LogEntry is a single log line returned by a LogSourceAdapter.
type LogEntry struct {
	ID        string
	Timestamp time.Time
	Level     string
	Message   string
	Metadata  map[string]string
}

// EnrichedContext assembles an Alert with everything enrichment could
// gather about its target resource. All slice/map fields are immutable
// after construction.
type EnrichedContext struct {
	Alert            *Alert
	Resource         *ResourceMetadata // nullable
	RecentMetrics    []MetricSnapshot
	RecentLogs       []LogEntry
	CustomProperties map[string]string
}

// NewEnrichedContext defensively copies the collection fields.
func NewEnrichedContext(alert *Alert, resource *ResourceMetadata, metrics []MetricSnapshot, logs []LogEntry, custom map[string]string) *EnrichedContext {
	m := make([]MetricSnapshot, len(metrics))
	copy(m, metrics)
	l := make([]LogEntry, len(logs))
	copy(l, logs)
	return &EnrichedContext{
		Alert:            alert,
		Resource:         resource,
		RecentMetrics:    m,
		RecentLogs:       l,
		CustomProperties: copyStringMap(custom),
	}
}
