// Package enrichment gathers compute metadata, recent metrics, and recent
// logs for an alert concurrently into an EnrichedContext that is always
// produced, possibly partial: enrichment is best-effort and never aborts.
// Concurrency follows a pattern of per-call context deadlines plus goroutine
// fan-out with no shared lock.
package enrichment

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/sreops/runbook-synthesizer/pkg/cloudadapter"
	"github.com/sreops/runbook-synthesizer/pkg/domain"
)

const (
	// DefaultLookback is the window metrics/logs adapters are asked to cover.
	DefaultLookback = time.Hour
	// DefaultAdapterTimeout is each adapter's independent deadline.
	DefaultAdapterTimeout = 10 * time.Second
)

// Service wires the three enrichment adapters.
type Service struct {
	metadata       cloudadapter.ComputeMetadataAdapter
	metrics        cloudadapter.MetricsSourceAdapter
	logs           cloudadapter.LogSourceAdapter
	lookback       time.Duration
	adapterTimeout time.Duration
}

// Option customizes a Service's timing parameters.
type Option func(*Service)

// WithLookback overrides DefaultLookback.
func WithLookback(d time.Duration) Option { return func(s *Service) { s.lookback = d } }

// WithAdapterTimeout overrides DefaultAdapterTimeout.
func WithAdapterTimeout(d time.Duration) Option { return func(s *Service) { s.adapterTimeout = d } }

// NewService wires the three adapters with the spec-mandated defaults,
// overridable via options.
func NewService(metadata cloudadapter.ComputeMetadataAdapter, metrics cloudadapter.MetricsSourceAdapter, logs cloudadapter.LogSourceAdapter, opts ...Option) *Service {
	s := &Service{
		metadata:       metadata,
		metrics:        metrics,
		logs:           logs,
		lookback:       DefaultLookback,
		adapterTimeout: DefaultAdapterTimeout,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Enrich always produces an EnrichedContext; it never returns an error —
// enrichment is a soft floor, not a hard dependency. The alert is carried
// through verbatim.
func (s *Service) Enrich(ctx context.Context, alert *domain.Alert) *domain.EnrichedContext {
	resourceID, ok := alert.ResourceID()
	if !ok {
		return domain.NewEnrichedContext(alert, nil, nil, nil, nil)
	}

	var (
		wg       sync.WaitGroup
		resource *domain.ResourceMetadata
		metrics  []domain.MetricSnapshot
		logs     []domain.LogEntry
	)

	wg.Add(3)
	go func() {
		defer wg.Done()
		resource = s.fetchMetadata(ctx, resourceID)
	}()
	go func() {
		defer wg.Done()
		metrics = s.fetchMetrics(ctx, resourceID)
	}()
	go func() {
		defer wg.Done()
		logs = s.fetchLogs(ctx, resourceID)
	}()
	wg.Wait()

	return domain.NewEnrichedContext(alert, resource, metrics, logs, nil)
}

func (s *Service) fetchMetadata(ctx context.Context, resourceID string) *domain.ResourceMetadata {
	if s.metadata == nil {
		return nil
	}
	cctx, cancel := context.WithTimeout(ctx, s.adapterTimeout)
	defer cancel()
	res, err := s.metadata.GetInstance(cctx, resourceID)
	if err != nil {
		s.logDegraded("compute metadata", resourceID, err)
		return nil
	}
	return res
}

func (s *Service) fetchMetrics(ctx context.Context, resourceID string) []domain.MetricSnapshot {
	if s.metrics == nil {
		return nil
	}
	cctx, cancel := context.WithTimeout(ctx, s.adapterTimeout)
	defer cancel()
	res, err := s.metrics.FetchMetrics(cctx, resourceID, s.lookback)
	if err != nil {
		s.logDegraded("metrics", resourceID, err)
		return nil
	}
	return res
}

func (s *Service) fetchLogs(ctx context.Context, resourceID string) []domain.LogEntry {
	if s.logs == nil {
		return nil
	}
	cctx, cancel := context.WithTimeout(ctx, s.adapterTimeout)
	defer cancel()
	res, err := s.logs.FetchLogs(cctx, resourceID, s.lookback, "")
	if err != nil {
		s.logDegraded("logs", resourceID, err)
		return nil
	}
	return res
}

// logDegraded logs at DEBUG for an expected timeout and WARN for any other
// transport error: timeouts are expected degradation, not anomalies worth
// paging on.
func (s *Service) logDegraded(adapter, resourceID string, err error) {
	level := slog.LevelWarn
	if errors.Is(err, context.DeadlineExceeded) {
		level = slog.LevelDebug
	}
	slog.Log(context.Background(), level, "enrichment: adapter call degraded to empty result",
		"adapter", adapter, "resource_id", resourceID, "error", err)
}
