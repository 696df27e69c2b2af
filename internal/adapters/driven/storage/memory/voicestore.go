package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/custodia-labs/grantcraft-cli/internal/core/domain"
	"github.com/custodia-labs/grantcraft-cli/internal/core/ports/driven"
)

// Ensure VoiceStore implements the interface.
var _ driven.VoiceStore = (*VoiceStore)(nil)

// VoiceStore is an in-memory implementation of driven.VoiceStore.
type VoiceStore struct {
	mu     sync.RWMutex
	voices map[string]domain.VoiceSignature
}

// NewVoiceStore creates an empty voice store.
func NewVoiceStore() *VoiceStore {
	return &VoiceStore{voices: make(map[string]domain.VoiceSignature)}
}

// SaveVoice replaces the stored signature for a document.
func (s *VoiceStore) SaveVoice(_ context.Context, docID string, sig domain.VoiceSignature) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.voices[docID] = domain.VoiceSignature{}.Merge(sig)
	return nil
}

// Voice returns the merged signature across all documents, in document ID order.
func (s *VoiceStore) Voice(_ context.Context) (domain.VoiceSignature, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ids := make([]string, 0, len(s.voices))
	for id := range s.voices {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	merged := domain.VoiceSignature{}.Merge(domain.VoiceSignature{})
	for _, id := range ids {
		merged = merged.Merge(s.voices[id])
	}
	return merged, nil
}

// ClearVoice removes all stored signatures.
func (s *VoiceStore) ClearVoice(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.voices = make(map[string]domain.VoiceSignature)
	return nil
}
