package config

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"dario.cat/mergo"
	"gopkg.in/yaml.v3"

	"github.com/sreops/runbook-synthesizer/pkg/domain"
)

// YAMLConfig represents the complete config.yaml file structure.
type YAMLConfig struct {
	Cloud       *CloudConfig           `yaml:"cloud"`
	VectorStore *VectorStoreConfig     `yaml:"vectorStore"`
	LLM         *LLMConfig             `yaml:"llm"`
	Runbooks    *RunbooksConfig        `yaml:"runbooks"`
	Webhooks    []domain.WebhookConfig `yaml:"webhooks"`
	Server      *ServerConfig          `yaml:"server"`
	Retrieval   *RetrievalConfig       `yaml:"retrieval"`
}

// Initialize loads, merges, validates, and returns ready-to-use configuration.
// This is the primary entry point for configuration loading.
//
// Steps performed:
//  1. Load config.yaml from configDir (env vars expanded into the YAML text first)
//  2. Merge built-in defaults with the user-supplied document (user overrides built-in)
//  3. Validate the merged result
//  4. Return Config ready for use
func Initialize(ctx context.Context, configDir string) (*Config, error) {
	log := slog.With("config_dir", configDir)
	log.InfoContext(ctx, "initializing configuration")

	cfg, err := load(configDir)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	if err := validateConfig(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	log.InfoContext(ctx, "configuration initialized successfully",
		"cloud_provider", cfg.Cloud.Provider,
		"vector_store_provider", cfg.VectorStore.Provider,
		"llm_provider", cfg.LLM.Provider,
		"webhooks", len(cfg.Webhooks))

	return cfg, nil
}

func load(configDir string) (*Config, error) {
	loader := &configLoader{configDir: configDir}

	user, err := loader.loadUserYAML()
	if err != nil {
		return nil, NewLoadError("config.yaml", err)
	}

	builtin := GetBuiltinConfig()

	cloud := builtin.Cloud
	if user.Cloud != nil {
		if err := mergo.Merge(&cloud, user.Cloud, mergo.WithOverride); err != nil {
			return nil, fmt.Errorf("merge cloud config: %w", err)
		}
	}

	vectorStore := builtin.VectorStore
	if user.VectorStore != nil {
		if err := mergo.Merge(&vectorStore, user.VectorStore, mergo.WithOverride); err != nil {
			return nil, fmt.Errorf("merge vectorStore config: %w", err)
		}
	}

	llm := builtin.LLM
	if user.LLM != nil {
		if err := mergo.Merge(&llm, user.LLM, mergo.WithOverride); err != nil {
			return nil, fmt.Errorf("merge llm config: %w", err)
		}
	}

	runbooks := builtin.Runbooks
	if user.Runbooks != nil {
		if err := mergo.Merge(&runbooks, user.Runbooks, mergo.WithOverride); err != nil {
			return nil, fmt.Errorf("merge runbooks config: %w", err)
		}
	}

	server := builtin.Server
	if user.Server != nil {
		if err := mergo.Merge(&server, user.Server, mergo.WithOverride); err != nil {
			return nil, fmt.Errorf("merge server config: %w", err)
		}
	}

	retrieval := builtin.Retrieval
	if user.Retrieval != nil {
		if err := mergo.Merge(&retrieval, user.Retrieval, mergo.WithOverride); err != nil {
			return nil, fmt.Errorf("merge retrieval config: %w", err)
		}
	}

	webhooks := mergeWebhooks(nil, user.Webhooks)

	return &Config{
		configDir:   configDir,
		Cloud:       &cloud,
		VectorStore: &vectorStore,
		LLM:         &llm,
		Runbooks:    &runbooks,
		Webhooks:    webhooks,
		Server:      &server,
		Retrieval:   &retrieval,
	}, nil
}

type configLoader struct {
	configDir string
}

func (l *configLoader) loadYAML(filename string, target any) error {
	path := filepath.Join(l.configDir, filename)

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("%w: %s", ErrConfigNotFound, path)
		}
		return err
	}

	// Expand ${VAR}/$VAR references before parsing, so a field written as a
	// reference takes its value from the environment. A literal value in the
	// file is kept as written; the environment does not override it.
	data = ExpandEnv(data)

	if err := yaml.Unmarshal(data, target); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidYAML, err)
	}
	return nil
}

func (l *configLoader) loadUserYAML() (*YAMLConfig, error) {
	var cfg YAMLConfig
	if err := l.loadYAML("config.yaml", &cfg); err != nil {
		if errors.Is(err, ErrConfigNotFound) {
			// No user config.yaml is a valid deployment: built-in defaults
			// plus environment variables can carry the whole configuration.
			return &YAMLConfig{}, nil
		}
		return nil, err
	}
	return &cfg, nil
}
