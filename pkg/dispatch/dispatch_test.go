package dispatch_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sreops/runbook-synthesizer/pkg/dispatch"
	"github.com/sreops/runbook-synthesizer/pkg/domain"
)

func testChecklist() *domain.DynamicChecklist {
	return &domain.DynamicChecklist{
		AlertID:     "alert-1",
		Summary:     "disk full",
		GeneratedAt: time.Now().UTC(),
	}
}

func testAlert(sev domain.Severity) *domain.Alert {
	return domain.NewAlert("alert-1", "Disk full", "msg", sev, "svc", nil, nil, time.Now().UTC(), nil)
}

func TestDispatcher_Dispatch_SkipsDisabledAndMismatchedSeverity(t *testing.T) {
	cfgs := []domain.WebhookConfig{
		{Name: "disabled", Type: "file", URL: t.TempDir(), Enabled: false},
		{Name: "wrong-severity", Type: "file", URL: t.TempDir(), Enabled: true, Filter: []domain.Severity{domain.SeverityInfo}},
		{Name: "matching", Type: "file", URL: t.TempDir(), Enabled: true, Filter: []domain.Severity{domain.SeverityCritical}},
	}
	dests := make([]dispatch.Destination, len(cfgs))
	for i, c := range cfgs {
		dests[i] = dispatch.NewFileDestination(c)
	}
	d := dispatch.New(cfgs, dests)

	results := d.Dispatch(context.Background(), testChecklist(), testAlert(domain.SeverityCritical))

	require.Len(t, results, 1)
	assert.Equal(t, "matching", results[0].DestinationName)
	assert.Equal(t, domain.WebhookStatusSuccess, results[0].Status)
}

func TestDispatcher_Register_RejectsDuplicateName(t *testing.T) {
	d := dispatch.New(nil, nil)
	cfg := domain.WebhookConfig{Name: "ops", Type: "file", URL: t.TempDir(), Enabled: true}
	dest := dispatch.NewFileDestination(cfg)

	require.NoError(t, d.Register(cfg, dest))
	err := d.Register(cfg, dest)
	assert.ErrorIs(t, err, dispatch.ErrDuplicateName)
}

func TestDispatcher_Register_MakesDestinationImmediatelyDispatchable(t *testing.T) {
	d := dispatch.New(nil, nil)
	cfg := domain.WebhookConfig{Name: "ops", Type: "file", URL: t.TempDir(), Enabled: true}
	require.NoError(t, d.Register(cfg, dispatch.NewFileDestination(cfg)))

	results := d.Dispatch(context.Background(), testChecklist(), testAlert(domain.SeverityCritical))
	require.Len(t, results, 1)
	assert.Equal(t, "ops", results[0].DestinationName)
}

func TestDispatcher_List_ReturnsDefensiveCopy(t *testing.T) {
	d := dispatch.New(nil, nil)
	cfg := domain.WebhookConfig{Name: "ops", Type: "file", URL: t.TempDir(), Enabled: true}
	require.NoError(t, d.Register(cfg, dispatch.NewFileDestination(cfg)))

	list := d.List()
	list[0].Name = "mutated"

	assert.Equal(t, "ops", d.List()[0].Name)
}

func TestNewDestination_UnknownTypeErrors(t *testing.T) {
	_, err := dispatch.NewDestination(domain.WebhookConfig{Name: "x", Type: "carrier-pigeon"}, "")
	assert.Error(t, err)
}

func TestNewDestination_SlackWithoutTokenErrors(t *testing.T) {
	_, err := dispatch.NewDestination(domain.WebhookConfig{Name: "x", Type: "slack", URL: "C0123"}, "")
	assert.Error(t, err)
}

func TestNewDestination_SlackWithTokenSucceeds(t *testing.T) {
	dest, err := dispatch.NewDestination(domain.WebhookConfig{Name: "x", Type: "slack", URL: "C0123"}, "xoxb-fake")
	require.NoError(t, err)
	assert.Equal(t, "x", dest.Name())
}
