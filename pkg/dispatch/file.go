package dispatch

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/sreops/runbook-synthesizer/pkg/domain"
)

// FileDestination appends each checklist as a JSON file under a directory,
// for deployments with no external webhook receiver. Writes are atomic:
// write-to-temp-file-then-rename, so a reader never observes a partial file.
type FileDestination struct {
	name string
	dir  string
}

// NewFileDestination builds a FileDestination from a "file" WebhookConfig
// whose URL field is interpreted as a target directory.
func NewFileDestination(cfg domain.WebhookConfig) *FileDestination {
	return &FileDestination{name: cfg.Name, dir: cfg.URL}
}

func (f *FileDestination) Name() string { return f.name }

func (f *FileDestination) Send(_ context.Context, checklist *domain.DynamicChecklist, _ *domain.Alert) domain.WebhookResult {
	if err := os.MkdirAll(f.dir, 0o755); err != nil {
		return domain.WebhookResult{DestinationName: f.name, Status: domain.WebhookStatusFailure, Error: fmt.Sprintf("create output dir: %v", err)}
	}

	body, err := json.MarshalIndent(checklist, "", "  ")
	if err != nil {
		return domain.WebhookResult{DestinationName: f.name, Status: domain.WebhookStatusFailure, Error: fmt.Sprintf("marshal checklist: %v", err)}
	}

	finalPath := filepath.Join(f.dir, fmt.Sprintf("checklist-%s-%d.json", checklist.AlertID, checklist.GeneratedAt.UnixNano()))
	tmpPath := filepath.Join(f.dir, fmt.Sprintf(".%s.tmp", uuid.NewString()))

	if err := os.WriteFile(tmpPath, body, 0o644); err != nil {
		return domain.WebhookResult{DestinationName: f.name, Status: domain.WebhookStatusFailure, Error: fmt.Sprintf("write temp file: %v", err)}
	}
	if err := os.Rename(tmpPath, finalPath); err != nil {
		_ = os.Remove(tmpPath)
		return domain.WebhookResult{DestinationName: f.name, Status: domain.WebhookStatusFailure, Error: fmt.Sprintf("rename into place: %v", err)}
	}

	return domain.WebhookResult{DestinationName: f.name, Status: domain.WebhookStatusSuccess}
}
