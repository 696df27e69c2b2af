package ai

import (
	"github.com/custodia-labs/grantcraft-cli/internal/core/domain"
	"github.com/custodia-labs/grantcraft-cli/internal/core/ports/driven"
)

// Ensure ConfigValidator implements the interface.
var _ driven.AIConfigValidator = ConfigValidator{}

// ConfigValidator lets the settings service probe a provider before saving
// its settings. Settings without a provider pass, since there is nothing to
// reach.
type ConfigValidator struct{}

// NewConfigValidator returns a ConfigValidator.
func NewConfigValidator() ConfigValidator {
	return ConfigValidator{}
}

func (ConfigValidator) ValidateEmbedding(settings *domain.EmbeddingSettings) error {
	return ValidateEmbeddingConfig(settings)
}

func (ConfigValidator) ValidateLLM(settings *domain.LLMSettings) error {
	return ValidateLLMConfig(settings)
}
