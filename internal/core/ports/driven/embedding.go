package driven

import "context"

// EmbeddingService turns chunk text and search queries into vectors.
// VectorStore keeps the vectors; this port only computes them.
type EmbeddingService interface {
	Embed(ctx context.Context, text string) ([]float32, error)

	// EmbedBatch returns one vector per text, in the same order.
	EmbedBatch(ctx context.Context, texts []string) ([][]float32, error)

	// Dimensions is zero when the model's vector size is not known up front.
	Dimensions() int

	ModelName() string

	// Ping fails when the provider cannot serve the configured model.
	Ping(ctx context.Context) error

	Close() error
}
