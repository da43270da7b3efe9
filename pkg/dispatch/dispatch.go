// Package dispatch fans a generated DynamicChecklist out to every enabled,
// severity-matching destination concurrently, tolerating per-destination
// failures and timeouts without aborting the others.
package dispatch

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/sreops/runbook-synthesizer/pkg/domain"
)

// PerDestinationTimeout bounds a single Destination.Send call.
const PerDestinationTimeout = 10 * time.Second

// ErrDuplicateName is returned by Register when a destination of the given
// name is already registered.
var ErrDuplicateName = errors.New("dispatch: destination name already registered")

// Destination is one configured delivery target.
type Destination interface {
	Name() string
	Send(ctx context.Context, checklist *domain.DynamicChecklist, alert *domain.Alert) domain.WebhookResult
}

// Dispatcher fans checklists out to a registered set of destinations. The
// set can grow at runtime via Register, guarded by mu since dispatch and
// registration may run concurrently.
type Dispatcher struct {
	mu           sync.RWMutex
	destinations []Destination
	configs      []domain.WebhookConfig
	timeout      time.Duration
}

// New pairs each WebhookConfig with its matching Destination by name. A
// config with no matching destination is silently skipped: it has nothing
// wired to deliver through.
func New(configs []domain.WebhookConfig, destinations []Destination) *Dispatcher {
	byName := make(map[string]Destination, len(destinations))
	for _, d := range destinations {
		byName[d.Name()] = d
	}
	matched := make([]Destination, 0, len(configs))
	kept := make([]domain.WebhookConfig, 0, len(configs))
	for _, cfg := range configs {
		if d, ok := byName[cfg.Name]; ok {
			matched = append(matched, d)
			kept = append(kept, cfg)
		}
	}
	return &Dispatcher{destinations: matched, configs: kept, timeout: PerDestinationTimeout}
}

// Dispatch sends checklist to every enabled destination whose filter accepts
// alert's severity, concurrently. Each destination gets its own timeout;
// a slow or failing destination never blocks or sinks the others. Results
// are returned in the same order destinations were registered in.
func (d *Dispatcher) Dispatch(ctx context.Context, checklist *domain.DynamicChecklist, alert *domain.Alert) []domain.WebhookResult {
	d.mu.RLock()
	configs := append([]domain.WebhookConfig(nil), d.configs...)
	destinations := append([]Destination(nil), d.destinations...)
	d.mu.RUnlock()

	var (
		wg      sync.WaitGroup
		slots   = make([]domain.WebhookResult, len(destinations))
		sent    = make([]bool, len(destinations))
		results = make([]domain.WebhookResult, 0, len(destinations))
	)

	for i, cfg := range configs {
		if !cfg.Accepts(alert.Severity) {
			continue
		}
		sent[i] = true
		wg.Add(1)
		go func(i int, dest Destination) {
			defer wg.Done()
			cctx, cancel := context.WithTimeout(ctx, d.timeout)
			defer cancel()
			slots[i] = dest.Send(cctx, checklist, alert)
		}(i, destinations[i])
	}
	wg.Wait()
	for i, ok := range sent {
		if ok {
			results = append(results, slots[i])
		}
	}
	return results
}

// Register adds a new destination at runtime, returning ErrDuplicateName if
// cfg.Name already names a registered destination.
func (d *Dispatcher) Register(cfg domain.WebhookConfig, dest Destination) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	for _, existing := range d.configs {
		if existing.Name == cfg.Name {
			return ErrDuplicateName
		}
	}
	d.configs = append(d.configs, cfg)
	d.destinations = append(d.destinations, dest)
	return nil
}

// List returns the configs of every currently registered destination.
func (d *Dispatcher) List() []domain.WebhookConfig {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return append([]domain.WebhookConfig(nil), d.configs...)
}
