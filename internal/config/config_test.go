package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaults(t *testing.T) {
	cfg := Default()

	assert.Equal(t, 120, cfg.Analysis.MaxLineLength)
	assert.Equal(t, 500, cfg.Analysis.MaxFileLength)
	assert.Equal(t, 10, cfg.Analysis.ComplexityThreshold)
	assert.Equal(t, 50, cfg.Analysis.MaxFunctionLength)
	assert.Equal(t, 5, cfg.Analysis.MaxParameters)

	assert.True(t, cfg.Security.Enabled)
	assert.True(t, cfg.Security.CheckSecrets)

	assert.False(t, cfg.AI.Enabled)
	assert.Equal(t, "ollama", cfg.AI.Provider)
	assert.Equal(t, 2000, cfg.AI.MaxContentChars)
	assert.Equal(t, 60, cfg.AI.TimeoutSeconds)
	assert.True(t, cfg.AI.RedactSecrets)

	assert.Equal(t, "text", cfg.Format)
	assert.Equal(t, "none", cfg.FailOn)
	assert.Greater(t, cfg.Workers, 0)
	assert.Contains(t, cfg.Extensions, ".py")
	assert.Contains(t, cfg.Extensions, ".go")
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "reviewd.yaml")
	content := `extensions: [".py"]
exclude: ["tests/*"]
workers: 2
analysis:
  complexity_threshold: 15
security:
  check_secrets: false
ai:
  enabled: true
  model: codellama
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, []string{".py"}, cfg.Extensions)
	assert.Equal(t, []string{"tests/*"}, cfg.Exclude)
	assert.Equal(t, 2, cfg.Workers)
	assert.Equal(t, 15, cfg.Analysis.ComplexityThreshold)
	// Unset keys keep their defaults.
	assert.Equal(t, 120, cfg.Analysis.MaxLineLength)
	assert.False(t, cfg.Security.CheckSecrets)
	assert.True(t, cfg.Security.Enabled)
	assert.True(t, cfg.AI.Enabled)
	assert.Equal(t, "codellama", cfg.AI.Model)
}

func TestLoadMissingExplicitFile(t *testing.T) {
	_, err := Load("/nonexistent/reviewd.yaml")
	assert.Error(t, err)
}

func TestLoadEnvOverride(t *testing.T) {
	t.Setenv("REVIEWD_AI_ENABLED", "true")
	t.Setenv("REVIEWD_FAIL_ON", "high")

	dir := t.TempDir()
	path := filepath.Join(dir, "reviewd.yaml")
	require.NoError(t, os.WriteFile(path, []byte("format: json\n"), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.True(t, cfg.AI.Enabled)
	assert.Equal(t, "high", cfg.FailOn)
	assert.Equal(t, "json", cfg.Format)
}

func TestSupportsExtension(t *testing.T) {
	cfg := Default()
	assert.True(t, cfg.SupportsExtension(".py"))
	assert.True(t, cfg.SupportsExtension(".PY"))
	assert.False(t, cfg.SupportsExtension(".md"))
	assert.False(t, cfg.SupportsExtension(""))
}
