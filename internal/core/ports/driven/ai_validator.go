package driven

import "github.com/custodia-labs/grantcraft-cli/internal/core/domain"

// AIConfigValidator probes a provider with candidate settings so bad
// settings are rejected before they are saved. Settings without a
// provider are accepted.
type AIConfigValidator interface {
	ValidateEmbedding(settings *domain.EmbeddingSettings) error
	ValidateLLM(settings *domain.LLMSettings) error
}
