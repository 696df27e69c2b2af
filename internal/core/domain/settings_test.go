package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAIProvider_IsValid(t *testing.T) {
	tests := []struct {
		name     string
		provider AIProvider
		expected bool
	}{
		{"ollama is valid", AIProviderOllama, true},
		{"openai is valid", AIProviderOpenAI, true},
		{"anthropic is valid", AIProviderAnthropic, true},
		{"empty is invalid", AIProvider(""), false},
		{"unknown is invalid", AIProvider("cohere"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.provider.IsValid())
		})
	}
}

func TestAIProvider_RequiresAPIKey(t *testing.T) {
	assert.False(t, AIProviderOllama.RequiresAPIKey())
	assert.True(t, AIProviderOpenAI.RequiresAPIKey())
	assert.True(t, AIProviderAnthropic.RequiresAPIKey())
}

func TestAIProvider_Description(t *testing.T) {
	assert.Equal(t, "Ollama (local)", AIProviderOllama.Description())
	assert.Equal(t, "Unknown", AIProvider("other").Description())
}

func TestLLMSettings_IsConfigured(t *testing.T) {
	t.Run("ollama without key", func(t *testing.T) {
		s := LLMSettings{Provider: AIProviderOllama}
		assert.True(t, s.IsConfigured())
	})

	t.Run("openai without key", func(t *testing.T) {
		s := LLMSettings{Provider: AIProviderOpenAI}
		assert.False(t, s.IsConfigured())
	})

	t.Run("invalid provider", func(t *testing.T) {
		s := LLMSettings{Provider: "nope", APIKey: "k"}
		assert.False(t, s.IsConfigured())
	})
}

func TestEmbeddingSettings_IsConfigured(t *testing.T) {
	assert.True(t, EmbeddingSettings{Provider: AIProviderOllama}.IsConfigured())
	assert.False(t, EmbeddingSettings{Provider: AIProviderOpenAI}.IsConfigured())
	assert.True(t, EmbeddingSettings{Provider: AIProviderOpenAI, APIKey: "k"}.IsConfigured())
}

func TestDefaultAppSettings(t *testing.T) {
	s := DefaultAppSettings()

	assert.Equal(t, []string{"DATA", "Scaling"}, s.Documents.Prefixes)
	assert.Equal(t, 512, s.Chunking.MaxChunkSize)
	assert.Equal(t, 50, s.Chunking.Overlap)
	assert.Equal(t, 5, s.Retrieval.TopK)
	assert.Equal(t, "grant_documents", s.Retrieval.Collection)
	assert.Equal(t, StorageSQLite, s.Storage.Backend)
	assert.Equal(t, AIProviderOllama, s.LLM.Provider)
	assert.Equal(t, "llama3.1:8b", s.LLM.Model)
	assert.Equal(t, 300*time.Second, s.LLM.Timeout)
	assert.Equal(t, "http://localhost:11434", s.LLM.BaseURL)
	assert.Equal(t, 20, s.Discovery.MaxResults)
	assert.Equal(t, 2*time.Second, s.Discovery.ScrapingDelay)
	assert.Len(t, s.Discovery.FocusKeywords, 12)
	assert.Equal(t, "Cambio Labs", s.Organization.Name)
}

func TestStorageBackend_IsValid(t *testing.T) {
	assert.True(t, StorageSQLite.IsValid())
	assert.True(t, StorageMemory.IsValid())
	assert.False(t, StorageBackend("chroma").IsValid())
}

func TestPipelineConfigFor(t *testing.T) {
	cfg := PipelineConfigFor(ChunkingSettings{MaxChunkSize: 300, Overlap: 10})

	require.Equal(t, []string{"chunker"}, cfg.Processors)
	chunker := cfg.GetProcessorConfig("chunker")
	require.NotNil(t, chunker)
	assert.Equal(t, 300, chunker["chunk_size"])
	assert.Equal(t, 10, chunker["overlap"])
	assert.Nil(t, cfg.GetProcessorConfig("stemmer"))
}

func TestPipelineConfig_GetProcessorConfig_NilMap(t *testing.T) {
	cfg := PipelineConfig{}
	assert.Nil(t, cfg.GetProcessorConfig("chunker"))
}
