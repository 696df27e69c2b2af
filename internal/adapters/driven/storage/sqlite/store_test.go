package sqlite

import (
	"context"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/grantcraft-cli/internal/core/domain"
	"github.com/custodia-labs/grantcraft-cli/internal/core/ports/driven"
)

// setupTestStore creates a temporary SQLite store for testing.
func setupTestStore(t *testing.T) *Store {
	t.Helper()

	store, err := NewStore(filepath.Join(t.TempDir(), "data", "test.db"))
	require.NoError(t, err)
	require.NotNil(t, store)

	t.Cleanup(func() {
		assert.NoError(t, store.Close())
	})
	return store
}

func record(id, text string, vec ...float32) driven.VectorRecord {
	return driven.VectorRecord{
		Chunk: domain.Chunk{
			Text: text,
			Metadata: domain.ChunkMetadata{
				Source:  "DATA AWS Application",
				Format:  domain.FormatStructured,
				Section: "project_overview",
				ChunkID: id,
			},
		},
		Embedding: vec,
	}
}

func TestNewStore(t *testing.T) {
	t.Run("creates parent directories", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "a", "b", "grantcraft.db")
		store, err := NewStore(path)
		require.NoError(t, err)
		defer store.Close()

		assert.Equal(t, path, store.Path())
		assert.FileExists(t, path)
	})

	t.Run("reopening keeps data and skips applied migrations", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "grantcraft.db")
		ctx := context.Background()

		store, err := NewStore(path)
		require.NoError(t, err)
		require.NoError(t, store.VectorStore("").Upsert(ctx, []driven.VectorRecord{record("a", "alpha", 1, 0)}))
		require.NoError(t, store.Close())

		reopened, err := NewStore(path)
		require.NoError(t, err)
		defer reopened.Close()

		count, err := reopened.VectorStore("").Count(ctx)
		require.NoError(t, err)
		assert.Equal(t, 1, count)

		var version int
		require.NoError(t, reopened.db.QueryRow("SELECT MAX(version) FROM schema_migrations").Scan(&version))
		assert.Equal(t, 1, version)
	})

	t.Run("default path", func(t *testing.T) {
		path, err := DefaultPath()
		require.NoError(t, err)
		assert.Equal(t, "grantcraft.db", filepath.Base(path))
		assert.Equal(t, "data", filepath.Base(filepath.Dir(path)))
	})
}

func TestVectorStore_UpsertAndSearch(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()
	vectors := store.VectorStore("")

	assert.Equal(t, domain.DefaultCollection, vectors.Collection())

	err := vectors.Upsert(ctx, []driven.VectorRecord{
		record("doc_a", "budget", 1, 0, 0),
		record("doc_b", "outcomes", 0, 1, 0),
		record("doc_c", "mixed", 0.7, 0.7, 0),
	})
	require.NoError(t, err)

	hits, err := vectors.Search(ctx, []float32{1, 0, 0}, 2)
	require.NoError(t, err)
	require.Len(t, hits, 2)
	assert.Equal(t, "doc_a", hits[0].Chunk.ID())
	assert.Equal(t, "budget", hits[0].Chunk.Text)
	assert.Equal(t, domain.FormatStructured, hits[0].Chunk.Metadata.Format)
	assert.Equal(t, "project_overview", hits[0].Chunk.Metadata.Section)
	assert.InDelta(t, 1.0, hits[0].Similarity, 1e-6)
	assert.Equal(t, "doc_c", hits[1].Chunk.ID())
}

func TestVectorStore_UpsertReplaces(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()
	vectors := store.VectorStore("")

	require.NoError(t, vectors.Upsert(ctx, []driven.VectorRecord{record("a", "old", 1, 0)}))
	require.NoError(t, vectors.Upsert(ctx, []driven.VectorRecord{record("a", "new", 0, 1)}))

	count, err := vectors.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	hits, err := vectors.Search(ctx, []float32{0, 1}, 5)
	require.NoError(t, err)
	require.Len(t, hits, 1)
	assert.Equal(t, "new", hits[0].Chunk.Text)
}

func TestVectorStore_DimensionMismatch(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()
	vectors := store.VectorStore("")

	require.NoError(t, vectors.Upsert(ctx, []driven.VectorRecord{record("a", "x", 1, 0)}))

	err := vectors.Upsert(ctx, []driven.VectorRecord{record("b", "y", 1, 0, 0)})
	assert.ErrorIs(t, err, domain.ErrDimensionMismatch)

	_, err = vectors.Search(ctx, []float32{1, 0, 0}, 1)
	assert.ErrorIs(t, err, domain.ErrDimensionMismatch)

	t.Run("mixed batch is rejected whole", func(t *testing.T) {
		err := vectors.Upsert(ctx, []driven.VectorRecord{record("c", "z", 0, 1), record("d", "w", 1)})
		assert.ErrorIs(t, err, domain.ErrDimensionMismatch)

		count, err := vectors.Count(ctx)
		require.NoError(t, err)
		assert.Equal(t, 1, count)
	})
}

func TestVectorStore_EmptySearch(t *testing.T) {
	store := setupTestStore(t)

	hits, err := store.VectorStore("").Search(context.Background(), []float32{1, 2, 3}, 5)
	require.NoError(t, err)
	assert.NotNil(t, hits)
	assert.Empty(t, hits)
}

func TestVectorStore_ResetAndCollections(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()
	grants := store.VectorStore("grants")
	other := store.VectorStore("other")

	require.NoError(t, grants.Upsert(ctx, []driven.VectorRecord{record("a", "x", 1, 0)}))
	require.NoError(t, other.Upsert(ctx, []driven.VectorRecord{record("a", "x", 1, 0, 0)}))

	require.NoError(t, grants.Reset(ctx))

	count, err := grants.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, count)

	count, err = other.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	// Reset clears the dimension lock.
	require.NoError(t, grants.Upsert(ctx, []driven.VectorRecord{record("b", "y", 1, 0, 0, 0)}))
	assert.Equal(t, "grants", grants.Collection())
	assert.NoError(t, grants.Close())
}

func TestVectorStore_ConcurrentAccess(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()
	vectors := store.VectorStore("")

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			id := string(rune('a' + i))
			assert.NoError(t, vectors.Upsert(ctx, []driven.VectorRecord{record(id, id, float32(i), 1)}))
			_, err := vectors.Search(ctx, []float32{1, 1}, 3)
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	count, err := vectors.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 8, count)
}

func TestVoiceStore(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()
	voices := store.VoiceStore()

	empty, err := voices.Voice(ctx)
	require.NoError(t, err)
	assert.NotNil(t, empty.MissionPhrases)
	assert.Equal(t, 0, empty.Len())

	require.NoError(t, voices.SaveVoice(ctx, "b_doc", domain.VoiceSignature{
		ImpactMetrics: []string{"500 learners", "12 schools"},
	}))
	require.NoError(t, voices.SaveVoice(ctx, "a_doc", domain.VoiceSignature{
		MissionPhrases: []string{"Cambio Labs empowers"},
		ImpactMetrics:  []string{"80% completion"},
		ValuesLanguage: []string{"inclusive", "equitable"},
	}))

	merged, err := voices.Voice(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"Cambio Labs empowers"}, merged.MissionPhrases)
	assert.Equal(t, []string{"80% completion", "500 learners", "12 schools"}, merged.ImpactMetrics)
	assert.Equal(t, []string{"inclusive", "equitable"}, merged.ValuesLanguage)
	assert.Empty(t, merged.ProgramNames)

	t.Run("save replaces a document", func(t *testing.T) {
		require.NoError(t, voices.SaveVoice(ctx, "b_doc", domain.VoiceSignature{
			ProgramNames: []string{"Journey"},
		}))
		merged, err := voices.Voice(ctx)
		require.NoError(t, err)
		assert.Equal(t, []string{"80% completion"}, merged.ImpactMetrics)
		assert.Equal(t, []string{"Journey"}, merged.ProgramNames)
	})

	t.Run("clear", func(t *testing.T) {
		require.NoError(t, voices.ClearVoice(ctx))
		merged, err := voices.Voice(ctx)
		require.NoError(t, err)
		assert.Equal(t, 0, merged.Len())
	})
}

func TestDraftStore(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()
	drafts := store.DraftStore()

	created := time.Date(2026, 3, 1, 9, 30, 0, 0, time.UTC)
	older := &domain.Draft{
		ID:          "draft-1",
		Opportunity: domain.OpportunityRecord{Title: "AI for Education Innovation Grant", Organization: "NSF"},
		Sections: []domain.GeneratedSection{
			{Type: domain.SectionProjectOverview, Text: "Overview."},
			{Type: domain.SectionSustainabilityPlan, Text: "Error generating sustainability plan", Failed: true},
		},
		CreatedAt: created,
		UpdatedAt: created,
	}
	newer := &domain.Draft{
		ID:          "draft-2",
		Opportunity: domain.OpportunityRecord{Title: "Workforce Development Technology Grant"},
		CreatedAt:   created.Add(time.Hour),
		UpdatedAt:   created.Add(time.Hour),
	}

	require.NoError(t, drafts.SaveDraft(ctx, older))
	require.NoError(t, drafts.SaveDraft(ctx, newer))

	got, err := drafts.GetDraft(ctx, "draft-1")
	require.NoError(t, err)
	assert.Equal(t, "AI for Education Innovation Grant", got.Opportunity.Title)
	assert.Equal(t, older.Sections, got.Sections)
	assert.True(t, got.CreatedAt.Equal(created))

	list, err := drafts.ListDrafts(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "draft-2", list[0].ID)
	assert.NotNil(t, list[0].Sections)

	t.Run("update", func(t *testing.T) {
		older.Sections[1] = domain.GeneratedSection{Type: domain.SectionSustainabilityPlan, Text: "Sustainability."}
		older.UpdatedAt = created.Add(2 * time.Hour)
		require.NoError(t, drafts.SaveDraft(ctx, older))

		got, err := drafts.GetDraft(ctx, "draft-1")
		require.NoError(t, err)
		assert.Equal(t, 0, got.FailedCount())
		assert.True(t, got.UpdatedAt.Equal(older.UpdatedAt))
	})

	t.Run("missing", func(t *testing.T) {
		_, err := drafts.GetDraft(ctx, "nope")
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("invalid", func(t *testing.T) {
		assert.ErrorIs(t, drafts.SaveDraft(ctx, nil), domain.ErrInvalidInput)
		assert.ErrorIs(t, drafts.SaveDraft(ctx, &domain.Draft{}), domain.ErrInvalidInput)
	})

	t.Run("delete", func(t *testing.T) {
		require.NoError(t, drafts.DeleteDraft(ctx, "draft-1"))
		require.NoError(t, drafts.DeleteDraft(ctx, "draft-1"))
		_, err := drafts.GetDraft(ctx, "draft-1")
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})
}

func TestFloat32Conversion(t *testing.T) {
	in := []float32{0, 1.5, -2.25, 3.4e38}
	assert.Equal(t, in, bytesToFloat32Slice(float32SliceToBytes(in)))
	assert.Nil(t, bytesToFloat32Slice(nil))
	assert.Empty(t, float32SliceToBytes(nil))
}
