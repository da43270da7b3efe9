package config_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/sreops/runbook-synthesizer/pkg/config"
)

func TestGetBuiltinConfig_ReturnsStableSingleton(t *testing.T) {
	first := config.GetBuiltinConfig()
	second := config.GetBuiltinConfig()
	assert.Same(t, first, second)
}

func TestGetBuiltinConfig_DefaultsAreSelfConsistent(t *testing.T) {
	builtin := config.GetBuiltinConfig()

	assert.Equal(t, "local", builtin.Cloud.Provider)
	assert.NotEmpty(t, builtin.Cloud.LocalRunbookDir)
	assert.Equal(t, "local", builtin.VectorStore.Provider)
	assert.Equal(t, "stub", builtin.LLM.Provider)
	assert.True(t, builtin.Runbooks.IngestOnStartup)
	assert.Equal(t, 8080, builtin.Server.Port)
	assert.Positive(t, builtin.Retrieval.TopK)
}
