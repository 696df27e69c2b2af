package driven

import "context"

// LLMService drafts and refines section text.
type LLMService interface {
	// Chat blocks until the whole reply is available. Callers bound it with a
	// context deadline; implementations do not retry.
	Chat(ctx context.Context, messages []ChatMessage, opts ChatOptions) (string, error)

	ModelName() string

	// Ping fails when the provider cannot serve the configured model.
	Ping(ctx context.Context) error

	Close() error
}

// Chat roles.
const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// ChatMessage is one turn of a conversation.
type ChatMessage struct {
	Role    string
	Content string
}

// ChatOptions are per-call generation parameters. Zero values leave the
// provider's defaults in place.
type ChatOptions struct {
	MaxTokens   int
	Temperature float64
}
