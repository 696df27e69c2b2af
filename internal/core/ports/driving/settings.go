package driving

import "github.com/custodia-labs/grantcraft-cli/internal/core/domain"

// SettingsService reads and writes the settings behind `grantcraft config`.
type SettingsService interface {
	// Get returns the stored settings with defaults filled in.
	Get() (*domain.AppSettings, error)
	Save(settings *domain.AppSettings) error

	// Set parses value according to the key's kind and stores it.
	// Unknown keys fail with domain.ErrInvalidInput.
	Set(key, value string) error

	// SetLLMProvider and SetEmbeddingProvider probe the provider before
	// storing anything.
	SetLLMProvider(provider domain.AIProvider, model, apiKey string) error
	SetEmbeddingProvider(provider domain.AIProvider, model, apiKey string) error

	GetDefaults() domain.AppSettings

	// ValidateEmbeddingConfig and ValidateLLMConfig probe the providers the
	// stored settings name.
	ValidateEmbeddingConfig() error
	ValidateLLMConfig() error
}
