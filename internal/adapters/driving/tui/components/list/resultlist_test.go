package list

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/custodia-labs/grantcraft-cli/internal/core/domain"
)

func score(f float64) *float64 { return &f }

func sampleResults() []domain.SearchResult {
	return []domain.SearchResult{
		{
			Text:     "Journey helps BIPOC youth build ventures.",
			Metadata: domain.ChunkMetadata{Source: "DATA AWS Application", Format: domain.FormatStructured, Section: "q1", ChunkID: "q1_0"},
			Score:    score(0.912),
		},
		{
			Text:     "Outcomes include 200 students served.",
			Metadata: domain.ChunkMetadata{Source: "Scaling Impact", Section: "Outcomes", ChunkID: "Outcomes_0"},
		},
	}
}

func TestResultList_Empty(t *testing.T) {
	r := NewResultList(nil)
	assert.Equal(t, 0, r.Count())
	assert.Nil(t, r.SelectedResult())
	assert.Contains(t, r.View(), "No results")
}

func TestResultList_View(t *testing.T) {
	r := NewResultList(nil)
	r.SetDimensions(100, 20)
	r.SetResults(sampleResults())

	view := r.View()
	assert.Contains(t, view, "Results (2)")
	assert.Contains(t, view, "DATA AWS Application")
	assert.Contains(t, view, "0.912")
	assert.Contains(t, view, "AWS Grant · q1")
	assert.Contains(t, view, "Journey helps BIPOC youth")
	assert.Contains(t, view, "Scaling Impact")
	assert.Contains(t, view, "  -", "missing score renders as a dash")
}

func TestResultList_Selection(t *testing.T) {
	r := NewResultList(nil)
	r.SetResults(sampleResults())

	r.MoveDown()
	assert.Equal(t, 1, r.Selected())
	assert.Equal(t, "Scaling Impact", r.SelectedResult().Metadata.Source)

	r.MoveDown()
	assert.Equal(t, 1, r.Selected())

	r.MoveUp()
	assert.Equal(t, 0, r.Selected())

	r.SetResults(sampleResults()[:1])
	assert.Equal(t, 0, r.Selected())
}

func TestClip(t *testing.T) {
	tests := []struct {
		name string
		in   string
		n    int
		want string
	}{
		{"short", "hello", 10, "hello"},
		{"collapses whitespace", "a\n\n  b", 10, "a b"},
		{"cut", "abcdefghij", 6, "abc..."},
		{"runes", "ééééé", 4, "é..."},
		{"tiny", "abcdef", 2, "ab"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Clip(tt.in, tt.n))
		})
	}
}
