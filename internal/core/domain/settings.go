package domain

import "time"

const unknownDescription = "Unknown"

// AIProvider identifies an AI service provider for embeddings or LLM.
type AIProvider string

// Available AI providers.
const (
	// AIProviderOllama is local Ollama instance.
	AIProviderOllama AIProvider = "ollama"

	// AIProviderOpenAI is OpenAI cloud API.
	AIProviderOpenAI AIProvider = "openai"

	// AIProviderAnthropic is Anthropic cloud API.
	AIProviderAnthropic AIProvider = "anthropic"
)

// IsValid returns true if the AI provider is recognised.
func (p AIProvider) IsValid() bool {
	switch p {
	case AIProviderOllama, AIProviderOpenAI, AIProviderAnthropic:
		return true
	default:
		return false
	}
}

// RequiresAPIKey returns true if this provider needs an API key.
func (p AIProvider) RequiresAPIKey() bool {
	return p == AIProviderOpenAI || p == AIProviderAnthropic
}

// IsLocal returns true if this provider runs locally.
func (p AIProvider) IsLocal() bool {
	return p == AIProviderOllama
}

// String returns the string representation.
func (p AIProvider) String() string {
	return string(p)
}

// Description returns a human-readable description of the provider.
func (p AIProvider) Description() string {
	switch p {
	case AIProviderOllama:
		return "Ollama (local)"
	case AIProviderOpenAI:
		return "OpenAI (cloud)"
	case AIProviderAnthropic:
		return "Anthropic (cloud)"
	default:
		return unknownDescription
	}
}

// StorageBackend selects where chunk vectors, voice phrases and drafts live.
type StorageBackend string

// Available storage backends.
const (
	// StorageSQLite persists to a single SQLite database file.
	StorageSQLite StorageBackend = "sqlite"

	// StorageMemory keeps everything in process memory.
	StorageMemory StorageBackend = "memory"
)

// IsValid returns true if the storage backend is recognised.
func (b StorageBackend) IsValid() bool {
	return b == StorageSQLite || b == StorageMemory
}

// DocumentSettings configures the historical document source.
type DocumentSettings struct {
	// Dir is the directory holding historical grant text files.
	Dir string

	// Prefixes whitelists file names; only matching documents are ingested.
	Prefixes []string
}

// ChunkingSettings configures the chunker.
type ChunkingSettings struct {
	// MaxChunkSize is the character threshold above which a section is split.
	MaxChunkSize int

	// Overlap is accepted for compatibility but not applied by the chunker.
	Overlap int
}

// RetrievalSettings configures the retrieval index.
type RetrievalSettings struct {
	// TopK is the default number of search results.
	TopK int

	// Collection is the index identity.
	Collection string
}

// StorageSettings configures persistence.
type StorageSettings struct {
	// Backend selects sqlite or memory.
	Backend StorageBackend

	// Path is the SQLite database file. Empty selects the default data directory.
	Path string
}

// EmbeddingSettings holds embedding provider configuration.
type EmbeddingSettings struct {
	// Provider is the embedding service provider.
	Provider AIProvider

	// Model is the embedding model name.
	Model string

	// BaseURL is the API endpoint (for Ollama).
	BaseURL string

	// APIKey is the API key (for OpenAI).
	APIKey string

	// CacheSize is the number of embeddings kept in the LRU cache. Zero disables it.
	CacheSize int
}

// IsConfigured returns true if the embedding provider is set up.
func (e EmbeddingSettings) IsConfigured() bool {
	if !e.Provider.IsValid() {
		return false
	}
	if e.Provider.RequiresAPIKey() && e.APIKey == "" {
		return false
	}
	return true
}

// LLMSettings holds LLM provider configuration.
type LLMSettings struct {
	// Provider is the LLM service provider.
	Provider AIProvider

	// Model is the LLM model name.
	Model string

	// BaseURL is the API endpoint (for Ollama).
	BaseURL string

	// APIKey is the API key (for OpenAI/Anthropic).
	APIKey string

	// Timeout bounds every generation call.
	Timeout time.Duration
}

// IsConfigured returns true if the LLM provider is set up.
func (l LLMSettings) IsConfigured() bool {
	if !l.Provider.IsValid() {
		return false
	}
	if l.Provider.RequiresAPIKey() && l.APIKey == "" {
		return false
	}
	return true
}

// DiscoverySettings configures opportunity discovery.
type DiscoverySettings struct {
	// MaxResults caps the number of records returned.
	MaxResults int

	// ScrapingDelay is the minimum spacing between remote fetches.
	ScrapingDelay time.Duration

	// FocusKeywords drive the relevance filter.
	FocusKeywords []string

	// SearchKeywords are used when the caller supplies none.
	SearchKeywords []string

	// GrantsGovURL enables the grants.gov listing source when set.
	GrantsGovURL string

	// OpportunitiesFile is an optional YAML file of opportunity records.
	OpportunitiesFile string
}

// AppSettings holds all application settings.
type AppSettings struct {
	Documents    DocumentSettings
	Chunking     ChunkingSettings
	Retrieval    RetrievalSettings
	Storage      StorageSettings
	Embedding    EmbeddingSettings
	LLM          LLMSettings
	Organization OrganizationProfile
	Discovery    DiscoverySettings
}

// Default setting values.
const (
	DefaultMaxChunkSize  = 512
	DefaultChunkOverlap  = 50
	DefaultTopK          = 5
	DefaultLLMTimeout    = 300 * time.Second
	DefaultMaxResults    = 20
	DefaultScrapingDelay = 2 * time.Second
	DefaultCacheSize     = 1024
	DefaultOllamaURL     = "http://localhost:11434"

	DefaultLLMModel       = "llama3.1:8b"
	DefaultEmbeddingModel = "nomic-embed-text"
)

// DefaultAppSettings returns settings with sensible defaults.
// Generation and embeddings default to a local Ollama instance.
func DefaultAppSettings() AppSettings {
	return AppSettings{
		Documents: DocumentSettings{
			Dir:      "./grant_docs",
			Prefixes: []string{"DATA", "Scaling"},
		},
		Chunking: ChunkingSettings{
			MaxChunkSize: DefaultMaxChunkSize,
			Overlap:      DefaultChunkOverlap,
		},
		Retrieval: RetrievalSettings{
			TopK:       DefaultTopK,
			Collection: DefaultCollection,
		},
		Storage: StorageSettings{
			Backend: StorageSQLite,
		},
		Embedding: EmbeddingSettings{
			Provider:  AIProviderOllama,
			Model:     DefaultEmbeddingModels()[AIProviderOllama],
			BaseURL:   DefaultOllamaURL,
			CacheSize: DefaultCacheSize,
		},
		LLM: LLMSettings{
			Provider: AIProviderOllama,
			Model:    DefaultLLMModel,
			BaseURL:  DefaultOllamaURL,
			Timeout:  DefaultLLMTimeout,
		},
		Organization: DefaultOrganizationProfile(),
		Discovery: DiscoverySettings{
			MaxResults:     DefaultMaxResults,
			ScrapingDelay:  DefaultScrapingDelay,
			FocusKeywords:  DefaultFocusKeywords(),
			SearchKeywords: []string{"education", "technology", "AI", "workforce", "nonprofit"},
		},
	}
}

// DefaultFocusKeywords returns the vocabulary the relevance filter scores against.
func DefaultFocusKeywords() []string {
	return []string{
		"education", "technology", "workforce", "AI", "innovation",
		"BIPOC", "underrepresented", "nonprofit", "social impact",
		"youth", "adult learning", "digital skills",
	}
}

// AllEmbeddingProviders returns providers that support embeddings.
func AllEmbeddingProviders() []AIProvider {
	return []AIProvider{
		AIProviderOllama,
		AIProviderOpenAI,
	}
}

// AllLLMProviders returns providers that support LLM operations.
func AllLLMProviders() []AIProvider {
	return []AIProvider{
		AIProviderOllama,
		AIProviderOpenAI,
		AIProviderAnthropic,
	}
}

// DefaultEmbeddingModels returns default models for each embedding provider.
func DefaultEmbeddingModels() map[AIProvider]string {
	return map[AIProvider]string{
		AIProviderOllama: DefaultEmbeddingModel,
		AIProviderOpenAI: "text-embedding-3-small",
	}
}

// DefaultLLMModels returns default models for each LLM provider.
func DefaultLLMModels() map[AIProvider]string {
	return map[AIProvider]string{
		AIProviderOllama:    DefaultLLMModel,
		AIProviderOpenAI:    "gpt-4o-mini",
		AIProviderAnthropic: "claude-3-5-sonnet-latest",
	}
}

// EmbeddingDimensions returns the vector dimensions for known models.
func EmbeddingDimensions() map[string]int {
	return map[string]int{
		// Ollama models
		"nomic-embed-text":  768,
		"mxbai-embed-large": 1024,
		"all-minilm":        384,
		"bge-small-en":      384,
		// OpenAI models
		"text-embedding-3-small": 1536,
		"text-embedding-3-large": 3072,
		"text-embedding-ada-002": 1536,
	}
}

// PipelineConfig holds post-processor pipeline configuration.
// Uses generic map-based config for extensibility - new processors can be added
// without modifying this struct.
type PipelineConfig struct {
	// Processors is the ordered list of processor names to run.
	Processors []string

	// ProcessorConfigs holds per-processor configuration as generic maps.
	// Key is processor name, value is processor-specific config.
	ProcessorConfigs map[string]map[string]any
}

// GetProcessorConfig returns config for a specific processor, or nil if not set.
func (c *PipelineConfig) GetProcessorConfig(name string) map[string]any {
	if c.ProcessorConfigs == nil {
		return nil
	}
	return c.ProcessorConfigs[name]
}

// PipelineConfigFor returns the chunking pipeline for the given settings.
func PipelineConfigFor(c ChunkingSettings) PipelineConfig {
	return PipelineConfig{
		Processors: []string{"chunker"},
		ProcessorConfigs: map[string]map[string]any{
			"chunker": {
				"chunk_size": c.MaxChunkSize,
				"overlap":    c.Overlap,
			},
		},
	}
}

// DefaultPipelineConfig returns the default pipeline configuration.
func DefaultPipelineConfig() PipelineConfig {
	return PipelineConfigFor(DefaultAppSettings().Chunking)
}
