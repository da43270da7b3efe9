// Command synthesizer starts the runbook-synthesizer HTTP service: it loads
// configuration, wires the cloud/vector-store/LLM adapters, optionally
// ingests the runbook corpus, and serves the alert-to-checklist API.
package main

import (
	"context"
	"flag"
	"log"
	"log/slog"
	"net"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/sreops/runbook-synthesizer/pkg/api"
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
	"github.com/sreops/runbook-synthesizer/pkg/version"
)

func getEnv(key, defaultValue string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultValue
}

func main() {
	configDir := flag.String("config-dir", getEnv("CONFIG_DIR", "./deploy/config"), "Path to configuration directory")
	flag.Parse()

	log.Printf("starting %s", version.Full())

	envPath := filepath.Join(*configDir, ".env")
	if err := godotenv.Load(envPath); err != nil {
		log.Printf("Warning: could not load %s: %v", envPath, err)
		log.Printf("Continuing with existing environment variables...")
	} else {
		log.Printf("Loaded environment from %s", envPath)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Initialize(ctx, *configDir)
	if err != nil {
		log.Fatalf("Failed to initialize configuration: %v", err)
	}

	bundle, err := buildCloudBundle(cfg.Cloud)
	if err != nil {
		log.Fatalf("Failed to build cloud adapters: %v", err)
	}

	llmProvider, err := buildLLMProvider(cfg.LLM)
	if err != nil {
		log.Fatalf("Failed to build LLM provider: %v", err)
	}

	store, err := buildVectorStore(ctx, cfg.VectorStore)
	if err != nil {
		log.Fatalf("Failed to build vector store: %v", err)
	}

	embedder := embedding.NewService(llmProvider)
	chnk := chunker.New(chunker.DefaultBounds())
	ingestor := ingestion.NewService(bundle.Storage, store, embedder, chnk)

	if cfg.Runbooks.IngestOnStartup {
		total, docErrors, err := ingestor.IngestAll(ctx, cfg.Runbooks.Bucket)
		if err != nil {
			log.Fatalf("Startup runbook ingestion failed: %v", err)
		}
		slog.Info("startup ingestion complete", "chunks", total, "doc_errors", len(docErrors))
	}

	enricher := enrichment.NewService(bundle.Metadata, bundle.Metrics, bundle.Logs)
	retrieve := retriever.New(embedder, store)
	generator := checklist.New(llmProvider)
	pipeline := orchestrator.NewPipeline(enricher, retrieve, generator).WithTopK(cfg.Retrieval.TopK)

	dispatcher, err := buildDispatcher(cfg.Webhooks)
	if err != nil {
		log.Fatalf("Failed to build dispatch destinations: %v", err)
	}

	server := api.NewServer(cfg, pipeline, dispatcher, ingestor, store, llmProvider, bundle.Storage)

	addr := cfg.Server.Host + ":" + itoa(cfg.Server.Port)
	log.Printf("HTTP server listening on %s", addr)

	errCh := make(chan error, 1)
	go func() {
		ln, err := newListener(addr)
		if err != nil {
			errCh <- err
			return
		}
		errCh <- server.StartWithListener(ln)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			log.Fatalf("Server failed: %v", err)
		}
	case <-ctx.Done():
		log.Println("Shutdown signal received, draining in-flight requests...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			log.Printf("Graceful shutdown error: %v", err)
		}
	}
}

func buildCloudBundle(cfg *config.CloudConfig) (cloudadapter.Bundle, error) {
	factory := cloudadapter.NewFactory()
	return factory.Create(cloudadapter.ProviderType(cfg.Provider), cloudadapter.Config{
		BaseURL:          cfg.BaseURL,
		LocalRunbookDir:  cfg.LocalRunbookDir,
		RequestTimeoutMS: cfg.RequestTimeoutMS,
	})
}

func buildLLMProvider(cfg *config.LLMConfig) (cloudadapter.LlmProvider, error) {
	return llmprovider.New(llmprovider.Config{
		Provider:       llmprovider.Provider(cfg.Provider),
		BaseURL:        cfg.BaseURL,
		Model:          cfg.Model,
		EmbeddingModel: cfg.EmbeddingModel,
		EmbeddingDims:  cfg.EmbeddingDims,
	})
}

func buildVectorStore(ctx context.Context, cfg *config.VectorStoreConfig) (vectorstore.Repository, error) {
	var dsn string
	if cfg.PostgresDSNEnv != "" {
		dsn = os.Getenv(cfg.PostgresDSNEnv)
	}
	return vectorstore.New(ctx, vectorstore.Config{
		Provider:    vectorstore.Provider(cfg.Provider),
		PostgresDSN: dsn,
	})
}

// buildDispatcher resolves a Destination for every configured webhook and
// wires them into a Dispatcher. A webhook whose destination cannot be built
// (e.g. a "slack" entry with no bot token in the environment) is logged and
// skipped rather than failing the whole startup.
func buildDispatcher(webhooks []domain.WebhookConfig) (*dispatch.Dispatcher, error) {
	slackToken := os.Getenv(config.SlackTokenEnv)

	var configs []domain.WebhookConfig
	var destinations []dispatch.Destination
	for _, w := range webhooks {
		dest, err := dispatch.NewDestination(w, slackToken)
		if err != nil {
			slog.Warn("skipping webhook destination", "name", w.Name, "error", err)
			continue
		}
		configs = append(configs, w)
		destinations = append(destinations, dest)
	}
	return dispatch.New(configs, destinations), nil
}

func itoa(n int) string {
	return strconv.Itoa(n)
}

func newListener(addr string) (net.Listener, error) {
	return net.Listen("tcp", addr)
}
