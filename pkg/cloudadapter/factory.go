package cloudadapter

import (
	"fmt"
)

// Bundle is the set of adapters a Factory produces for one cloud.provider.
type Bundle struct {
	Storage  StorageAdapter
	Metadata ComputeMetadataAdapter
	Metrics  MetricsSourceAdapter
	Logs     LogSourceAdapter
}

// Factory resolves the active provider from a single config key and
// instantiates the matching adapter set. Unknown providers fail fast,
// matching pkg/mcp/client_factory.go's CreateClient/CreateToolExecutor shape.
type Factory struct {
	builders map[ProviderType]func(Config) (Bundle, error)
}

// Config carries the connection parameters every builder may need. Concrete
// cloud-SDK authentication is left to deployment; Config carries no
// credential fields.
type Config struct {
	// BaseURL is consulted by HTTP-backed builders (aws/oci) as the root of a
	// metadata/metrics/logs gateway; concrete SDK wiring is a collaborator
	// contract left to deployment, not this package.
	BaseURL string
	// LocalRunbookDir is consulted by the local builder as the filesystem
	// directory standing in for object storage.
	LocalRunbookDir string
	// RequestTimeoutMS bounds each adapter call's own HTTP client, independent
	// of whatever deadline the caller's context carries.
	RequestTimeoutMS int
}

// NewFactory builds a Factory with the three built-in provider families
// registered. Call RegisterBuilder before Create to add more.
func NewFactory() *Factory {
	f := &Factory{builders: make(map[ProviderType]func(Config) (Bundle, error))}
	f.RegisterBuilder(ProviderLocal, buildLocalBundle)
	f.RegisterBuilder(ProviderAWS, func(c Config) (Bundle, error) { return buildHTTPBundle(ProviderAWS, c) })
	f.RegisterBuilder(ProviderOCI, func(c Config) (Bundle, error) { return buildHTTPBundle(ProviderOCI, c) })
	return f
}

// RegisterBuilder lets callers (tests, or a deployment with a real SDK)
// override or extend a provider family.
func (f *Factory) RegisterBuilder(p ProviderType, builder func(Config) (Bundle, error)) {
	f.builders[p] = builder
}

// Create resolves cloud.provider to a concrete Bundle.
func (f *Factory) Create(provider ProviderType, cfg Config) (Bundle, error) {
	if !provider.IsValid() {
		return Bundle{}, fmt.Errorf("cloudadapter: unknown cloud.provider %q", provider)
	}
	builder, ok := f.builders[provider]
	if !ok {
		return Bundle{}, fmt.Errorf("cloudadapter: no builder registered for provider %q", provider)
	}
	return builder(cfg)
}
