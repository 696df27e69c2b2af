// Package vectormath ranks stored chunk vectors by cosine similarity.
// It is shared by the in-memory and SQLite vector stores.
package vectormath

import (
	"fmt"
	"math"
	"sort"

	"github.com/custodia-labs/grantcraft-cli/internal/core/domain"
	"github.com/custodia-labs/grantcraft-cli/internal/core/ports/driven"
)

// Cosine returns the cosine similarity of a and b.
// Zero vectors have similarity 0.
func Cosine(a, b []float32) float64 {
	var dot, na, nb float64
	for i := range a {
		x, y := float64(a[i]), float64(b[i])
		dot += x * y
		na += x * x
		nb += y * y
	}
	if na == 0 || nb == 0 {
		return 0
	}
	return dot / (math.Sqrt(na) * math.Sqrt(nb))
}

// CheckDimensions returns domain.ErrDimensionMismatch when got differs from want.
// A want of zero accepts any dimension.
func CheckDimensions(want, got int) error {
	if want != 0 && want != got {
		return fmt.Errorf("%w: got %d want %d", domain.ErrDimensionMismatch, got, want)
	}
	return nil
}

// Rank scores every record against query and returns the best k hits,
// highest similarity first. Ties are broken by chunk ID so results are stable.
func Rank(records []driven.VectorRecord, query []float32, k int) []driven.VectorHit {
	hits := make([]driven.VectorHit, 0, len(records))
	for _, rec := range records {
		if len(rec.Embedding) != len(query) {
			continue
		}
		hits = append(hits, driven.VectorHit{
			Chunk:      rec.Chunk,
			Similarity: Cosine(rec.Embedding, query),
		})
	}

	sort.Slice(hits, func(i, j int) bool {
		if hits[i].Similarity == hits[j].Similarity {
			return hits[i].Chunk.ID() < hits[j].Chunk.ID()
		}
		return hits[i].Similarity > hits[j].Similarity
	})

	if k >= 0 && len(hits) > k {
		hits = hits[:k]
	}
	return hits
}
