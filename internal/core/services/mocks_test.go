package services

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/custodia-labs/grantcraft-cli/internal/core/domain"
	"github.com/custodia-labs/grantcraft-cli/internal/core/ports/driven"
)

// embedVocabulary gives each fake embedding dimension a word to count.
var embedVocabulary = []string{"mission", "youth", "budget", "outcomes", "journey", "technology", "organizational"}

// fakeEmbedder embeds text as word counts over embedVocabulary.
type fakeEmbedder struct {
	mu      sync.Mutex
	calls   int
	err     error
	batches [][]string
}

var _ driven.EmbeddingService = (*fakeEmbedder)(nil)

func (f *fakeEmbedder) vector(text string) []float32 {
	v := make([]float32, len(embedVocabulary))
	lower := strings.ToLower(text)
	for i, w := range embedVocabulary {
		v[i] = float32(strings.Count(lower, w))
	}
	// Keep every vector non-zero so cosine is defined.
	v = append(v, 0.01)
	return v
}

func (f *fakeEmbedder) Embed(_ context.Context, text string) ([]float32, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.vector(text), nil
}

func (f *fakeEmbedder) EmbedBatch(_ context.Context, texts []string) ([][]float32, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	f.batches = append(f.batches, texts)
	if f.err != nil {
		return nil, f.err
	}
	out := make([][]float32, len(texts))
	for i, t := range texts {
		out[i] = f.vector(t)
	}
	return out, nil
}

func (f *fakeEmbedder) Dimensions() int            { return len(embedVocabulary) + 1 }
func (f *fakeEmbedder) ModelName() string          { return "fake-embed" }
func (f *fakeEmbedder) Ping(context.Context) error { return nil }
func (f *fakeEmbedder) Close() error               { return nil }

// mockLLM answers chat calls with a function of the messages.
type mockLLM struct {
	mu       sync.Mutex
	respond  func(messages []driven.ChatMessage) (string, error)
	requests [][]driven.ChatMessage
	deadline []bool
}

var _ driven.LLMService = (*mockLLM)(nil)

func (m *mockLLM) Chat(ctx context.Context, messages []driven.ChatMessage, _ driven.ChatOptions) (string, error) {
	m.mu.Lock()
	m.requests = append(m.requests, messages)
	_, hasDeadline := ctx.Deadline()
	m.deadline = append(m.deadline, hasDeadline)
	m.mu.Unlock()
	if m.respond == nil {
		return "Generated text", nil
	}
	return m.respond(messages)
}

func (m *mockLLM) ModelName() string          { return "mock-llm" }
func (m *mockLLM) Ping(context.Context) error { return nil }
func (m *mockLLM) Close() error               { return nil }

func (m *mockLLM) calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.requests)
}

// failingVectorStore returns err from every operation.
type failingVectorStore struct {
	err error
}

var _ driven.VectorStore = (*failingVectorStore)(nil)

func (f *failingVectorStore) Upsert(context.Context, []driven.VectorRecord) error { return f.err }
func (f *failingVectorStore) Search(context.Context, []float32, int) ([]driven.VectorHit, error) {
	return nil, f.err
}
func (f *failingVectorStore) Reset(context.Context) error        { return f.err }
func (f *failingVectorStore) Count(context.Context) (int, error) { return 0, f.err }
func (f *failingVectorStore) Collection() string                 { return "failing" }
func (f *failingVectorStore) Close() error                       { return nil }

var errBackend = errors.New("backend down")

func testChunk(doc, section, suffix, text string) domain.Chunk {
	return domain.Chunk{
		Text: text,
		Metadata: domain.ChunkMetadata{
			Source:  doc,
			Format:  domain.FormatGeneral,
			Section: section,
			ChunkID: doc + "_" + section + "_" + suffix,
		},
	}
}
