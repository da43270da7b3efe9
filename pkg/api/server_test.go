package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sreops/runbook-synthesizer/pkg/checklist"
	"github.com/sreops/runbook-synthesizer/pkg/chunker"
	"github.com/sreops/runbook-synthesizer/pkg/cloudadapter"
	"github.com/sreops/runbook-synthesizer/pkg/config"
	"github.com/sreops/runbook-synthesizer/pkg/dispatch"
	"github.com/sreops/runbook-synthesizer/pkg/domain"
	"github.com/sreops/runbook-synthesizer/pkg/embedding"
	"github.com/sreops/runbook-synthesizer/pkg/enrichment"
	"github.com/sreops/runbook-synthesizer/pkg/ingestion"
	"github.com/sreops/runbook-synthesizer/pkg/llmprovider"
	"github.com/sreops/runbook-synthesizer/pkg/orchestrator"
	"github.com/sreops/runbook-synthesizer/pkg/retriever"
	"github.com/sreops/runbook-synthesizer/pkg/vectorstore"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()

	bundle, err := cloudadapter.NewFactory().Create(cloudadapter.ProviderLocal, cloudadapter.Config{LocalRunbookDir: t.TempDir()})
	require.NoError(t, err)

	llm := llmprovider.NewStubProvider(llmprovider.DefaultStubEmbeddingDims)
	store := vectorstore.NewMemoryStore()
	embedder := embedding.NewService(llm)
	chnk := chunker.New(chunker.DefaultBounds())
	ingestor := ingestion.NewService(bundle.Storage, store, embedder, chnk)

	enricher := enrichment.NewService(bundle.Metadata, bundle.Metrics, bundle.Logs)
	retrieve := retriever.New(embedder, store)
	generator := checklist.New(llm)
	pipeline := orchestrator.NewPipeline(enricher, retrieve, generator)

	dispatcher := dispatch.New(nil, nil)

	cfg := &config.Config{Runbooks: &config.RunbooksConfig{Bucket: "runbooks"}}

	return NewServer(cfg, pipeline, dispatcher, ingestor, store, llm, bundle.Storage)
}

func TestHealthHandler_ReportsUp(t *testing.T) {
	s := newTestServer(t)

	rec := httptest.NewRecorder()
	s.echo.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/health", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "UP", body["status"])
	assert.NotEmpty(t, body["version"])
}

func TestSubmitAlertHandler_ReturnsGeneratedChecklist(t *testing.T) {
	s := newTestServer(t)

	payload := `{"title":"Disk full","message":"disk at 95%","severity":"CRITICAL","sourceService":"payments"}`
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/alerts", bytes.NewBufferString(payload))
	req.Header.Set("Content-Type", "application/json")

	s.echo.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var checklist domain.DynamicChecklist
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &checklist))
	assert.NotEmpty(t, checklist.Steps)
}

func TestSubmitAlertHandler_RejectsUnknownSeverity(t *testing.T) {
	s := newTestServer(t)

	payload := `{"title":"Disk full","severity":"EXTREME"}`
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/alerts", bytes.NewBufferString(payload))
	req.Header.Set("Content-Type", "application/json")

	s.echo.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCreateWebhookHandler_RejectsDuplicateName(t *testing.T) {
	s := newTestServer(t)

	body := `{"name":"ops","type":"generic","url":"http://example.com","enabled":true}`

	rec1 := httptest.NewRecorder()
	req1 := httptest.NewRequest(http.MethodPost, "/api/v1/webhooks", bytes.NewBufferString(body))
	req1.Header.Set("Content-Type", "application/json")
	s.echo.ServeHTTP(rec1, req1)
	require.Equal(t, http.StatusCreated, rec1.Code)

	rec2 := httptest.NewRecorder()
	req2 := httptest.NewRequest(http.MethodPost, "/api/v1/webhooks", bytes.NewBufferString(body))
	req2.Header.Set("Content-Type", "application/json")
	s.echo.ServeHTTP(rec2, req2)
	assert.Equal(t, http.StatusConflict, rec2.Code)
}

func TestListWebhooksHandler_ReflectsRegisteredWebhooks(t *testing.T) {
	s := newTestServer(t)

	body := `{"name":"ops","type":"generic","url":"http://example.com","enabled":true}`
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/webhooks", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	s.echo.ServeHTTP(rec, req)
	require.Equal(t, http.StatusCreated, rec.Code)

	listRec := httptest.NewRecorder()
	s.echo.ServeHTTP(listRec, httptest.NewRequest(http.MethodGet, "/api/v1/webhooks", nil))

	require.Equal(t, http.StatusOK, listRec.Code)
	var webhooks []domain.WebhookConfig
	require.NoError(t, json.Unmarshal(listRec.Body.Bytes(), &webhooks))
	require.Len(t, webhooks, 1)
	assert.Equal(t, "ops", webhooks[0].Name)
}

func TestRunbookSyncHandler_AcceptsImmediately(t *testing.T) {
	s := newTestServer(t)

	rec := httptest.NewRecorder()
	s.echo.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/v1/runbooks/sync", nil))

	assert.Equal(t, http.StatusAccepted, rec.Code)
}
