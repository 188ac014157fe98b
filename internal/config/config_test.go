package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, "vectorstore/db_index", cfg.Index.Path)
	assert.Equal(t, "hash", cfg.Embedder.Type)
	assert.Equal(t, "GROQ_API_KEY", cfg.LLM.APIKeyEnv)
	assert.Equal(t, "llama-3.1-8b-instant", cfg.LLM.Model)
	assert.Equal(t, 3, cfg.UI.TopK)
	assert.Equal(t, 0.5, cfg.UI.Temperature)
	assert.Equal(t, 512, cfg.UI.MaxTokens)
	assert.False(t, cfg.UI.ExpandSources)
}

func TestLoadOverridesAndDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	data := `
index:
  path: /data/idx
llm:
  model: llama-3.3-70b-versatile
ui:
  top_k: 5
  temperature: 0
  expand_sources: true
embedder:
  type: openai
  openai:
    model: text-embedding-3-large
`
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "/data/idx", cfg.Index.Path)
	assert.Equal(t, "llama-3.3-70b-versatile", cfg.LLM.Model)
	// unset llm fields fall back
	assert.Equal(t, "https://api.groq.com/openai/v1", cfg.LLM.BaseURL)
	assert.Equal(t, 60, cfg.LLM.TimeoutSecs)
	assert.Equal(t, 5, cfg.UI.TopK)
	// explicit zero temperature is respected
	assert.Equal(t, 0.0, cfg.UI.Temperature)
	assert.True(t, cfg.UI.ExpandSources)
	assert.Equal(t, 512, cfg.UI.MaxTokens)
	require.NotNil(t, cfg.Embedder.OpenAI)
	assert.Equal(t, "text-embedding-3-large", cfg.Embedder.OpenAI.Model)
	assert.Equal(t, "OPENAI_API_KEY", cfg.Embedder.OpenAI.APIKeyEnv)
}

func TestLoadRejectsMalformedYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("ui: [not a mapping"), 0o644))
	_, err := Load(path)
	assert.Error(t, err)
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")
	cfg := defaultConfig()
	cfg.UI.TopK = 7
	require.NoError(t, Save(path, cfg))

	got, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 7, got.UI.TopK)
	assert.Equal(t, cfg.LLM.Model, got.LLM.Model)
}
