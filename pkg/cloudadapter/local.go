package cloudadapter

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/sreops/runbook-synthesizer/pkg/domain"
)

// buildLocalBundle wires the "local" provider family: a filesystem directory
// stands in for the runbook bucket, and metadata/metrics/logs return empty
// (not-found/no-data) results — this is the family local tests and
// single-node deployments run against.
func buildLocalBundle(cfg Config) (Bundle, error) {
	dir := cfg.LocalRunbookDir
	if dir == "" {
		dir = "./runbooks"
	}
	return Bundle{
		Storage:  &localStorageAdapter{dir: dir},
		Metadata: &localMetadataAdapter{},
		Metrics:  &localMetricsAdapter{},
		Logs:     &localLogsAdapter{},
	}, nil
}

// localStorageAdapter serves runbook ".md" files from a local directory tree.
type localStorageAdapter struct {
	dir string
}

func (a *localStorageAdapter) ProviderType() ProviderType { return ProviderLocal }

func (a *localStorageAdapter) ListRunbooks(ctx context.Context, container string) ([]string, error) {
	root := filepath.Join(a.dir, container)
	var keys []string
	err := filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			if os.IsNotExist(err) {
				return nil
			}
			return err
		}
		if d.IsDir() {
			return nil
		}
		if strings.HasSuffix(d.Name(), ".md") {
			rel, relErr := filepath.Rel(root, path)
			if relErr != nil {
				rel = d.Name()
			}
			keys = append(keys, filepath.ToSlash(rel))
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("cloudadapter/local: list runbooks in %q: %w", container, err)
	}
	sort.Strings(keys)
	return keys, nil
}

func (a *localStorageAdapter) GetRunbookContent(ctx context.Context, container, key string) (string, bool, error) {
	path := filepath.Join(a.dir, container, filepath.FromSlash(key))
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("cloudadapter/local: read runbook %q: %w", key, err)
	}
	return string(data), true, nil
}

// localMetadataAdapter always reports the resource unresolved; a real
// single-node deployment has no compute-metadata service to ask.
type localMetadataAdapter struct{}

func (a *localMetadataAdapter) ProviderType() ProviderType { return ProviderLocal }

func (a *localMetadataAdapter) GetInstance(ctx context.Context, resourceID string) (*domain.ResourceMetadata, error) {
	slog.Debug("cloudadapter/local: no compute-metadata backend configured", "resource_id", resourceID)
	return nil, nil
}

type localMetricsAdapter struct{}

func (a *localMetricsAdapter) ProviderType() ProviderType { return ProviderLocal }

func (a *localMetricsAdapter) FetchMetrics(ctx context.Context, resourceID string, lookback time.Duration) ([]domain.MetricSnapshot, error) {
	return nil, nil
}

type localLogsAdapter struct{}

func (a *localLogsAdapter) ProviderType() ProviderType { return ProviderLocal }

func (a *localLogsAdapter) FetchLogs(ctx context.Context, resourceID string, lookback time.Duration, query string) ([]domain.LogEntry, error) {
	return nil, nil
}
