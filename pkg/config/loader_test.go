package config_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sreops/runbook-synthesizer/pkg/config"
)

func TestInitialize_NoConfigYAML_FallsBackToBuiltinDefaults(t *testing.T) {
	dir := t.TempDir()

	cfg, err := config.Initialize(context.Background(), dir)
	require.NoError(t, err)

	assert.Equal(t, "local", cfg.Cloud.Provider)
	assert.Equal(t, "stub", cfg.LLM.Provider)
	assert.Equal(t, 8080, cfg.Server.Port)
}

func TestInitialize_UserConfigOverridesBuiltinFields(t *testing.T) {
	dir := t.TempDir()
	writeConfigYAML(t, dir, `
server:
  host: "127.0.0.1"
  port: 9090
llm:
  provider: stub
`)

	cfg, err := config.Initialize(context.Background(), dir)
	require.NoError(t, err)

	assert.Equal(t, "127.0.0.1", cfg.Server.Host)
	assert.Equal(t, 9090, cfg.Server.Port)
	// Fields the user document omits still come from the built-in default.
	assert.Equal(t, "local", cfg.Cloud.Provider)
}

func TestInitialize_UserConfigExpandsEnvVars(t *testing.T) {
	t.Setenv("RUNBOOK_BUCKET", "s3://custom-bucket")
	dir := t.TempDir()
	writeConfigYAML(t, dir, `
runbooks:
  bucket: "${RUNBOOK_BUCKET}"
`)

	cfg, err := config.Initialize(context.Background(), dir)
	require.NoError(t, err)

	assert.Equal(t, "s3://custom-bucket", cfg.Runbooks.Bucket)
}

func TestInitialize_InvalidYAML_ReturnsError(t *testing.T) {
	dir := t.TempDir()
	writeConfigYAML(t, dir, "server: [this is not valid")

	_, err := config.Initialize(context.Background(), dir)
	assert.Error(t, err)
}

func TestInitialize_FailingValidationRejectsConfig(t *testing.T) {
	dir := t.TempDir()
	writeConfigYAML(t, dir, `
server:
  port: 99999
`)

	_, err := config.Initialize(context.Background(), dir)
	assert.Error(t, err)
}

func writeConfigYAML(t *testing.T, dir, content string) {
	t.Helper()
	err := os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(content), 0o644)
	require.NoError(t, err)
}
