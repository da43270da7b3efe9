package dispatch_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sreops/runbook-synthesizer/pkg/dispatch"
	"github.com/sreops/runbook-synthesizer/pkg/domain"
)

func TestFileDestination_Send_WritesMonotonicallyUniqueFiles(t *testing.T) {
	dir := t.TempDir()
	cfg := domain.WebhookConfig{Name: "file", Type: "file", URL: dir, Enabled: true}
	dest := dispatch.NewFileDestination(cfg)

	checklist := testChecklist()
	first := dest.Send(t.Context(), checklist, testAlert(domain.SeverityCritical))
	require.Equal(t, domain.WebhookStatusSuccess, first.Status)

	checklist.GeneratedAt = checklist.GeneratedAt.Add(time.Nanosecond)
	second := dest.Send(t.Context(), checklist, testAlert(domain.SeverityCritical))
	require.Equal(t, domain.WebhookStatusSuccess, second.Status)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 2)
}

func TestFileDestination_Send_NeverLeavesTempFileBehind(t *testing.T) {
	dir := t.TempDir()
	cfg := domain.WebhookConfig{Name: "file", Type: "file", URL: dir, Enabled: true}
	dest := dispatch.NewFileDestination(cfg)

	dest.Send(t.Context(), testChecklist(), testAlert(domain.SeverityCritical))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	for _, e := range entries {
		assert.NotContains(t, e.Name(), ".tmp")
		assert.True(t, filepath.Ext(e.Name()) == ".json")
	}
}
