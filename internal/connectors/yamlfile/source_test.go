package yamlfile

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/grantcraft-cli/internal/core/domain"
)

const mappingYAML = `
opportunities:
  - title: Community AI Literacy Fund
    organization: Example Foundation
    deadline: 2026-01-31
    amount: $100,000
    focus_areas: [AI, Education]
    description: Supports AI literacy for youth.
    requirements:
      - Serve BIPOC youth
      - Report outcomes quarterly
    relevance_score: 99
  - organization: Missing Title Org
`

const listYAML = `
- title: Digital Skills Pathways
  organization: City Workforce Board
  source: city
`

func writeYAML(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "opportunities.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
	return path
}

func TestSource_Search(t *testing.T) {
	t.Run("mapping document", func(t *testing.T) {
		src := New(writeYAML(t, mappingYAML))
		assert.Equal(t, "opportunities.yaml", src.Name())

		records, err := src.Search(context.Background(), []string{"ai"})
		require.NoError(t, err)
		require.Len(t, records, 1)

		rec := records[0]
		assert.Equal(t, "Community AI Literacy Fund", rec.Title)
		assert.Equal(t, "2026-01-31", rec.Deadline)
		assert.Equal(t, "$100,000", rec.Amount)
		assert.Equal(t, []string{"AI", "Education"}, rec.FocusAreas)
		assert.Equal(t, []string{"Serve BIPOC youth", "Report outcomes quarterly"}, rec.Requirements)
		assert.Equal(t, "opportunities.yaml", rec.Source)
		assert.Nil(t, rec.RelevanceScore)
	})

	t.Run("list document keeps explicit source", func(t *testing.T) {
		records, err := New(writeYAML(t, listYAML)).Search(context.Background(), nil)
		require.NoError(t, err)
		require.Len(t, records, 1)
		assert.Equal(t, "Digital Skills Pathways", records[0].Title)
		assert.Equal(t, "city", records[0].Source)
		assert.Empty(t, records[0].Amount)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := New(filepath.Join(t.TempDir(), "nope.yaml")).Search(context.Background(), nil)
		assert.ErrorIs(t, err, domain.ErrSourceUnavailable)
	})
}

func TestParse(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    int
		wantErr bool
	}{
		{name: "empty", input: "", want: 0},
		{name: "empty list", input: "[]", want: 0},
		{name: "scalar", input: "hello", wantErr: true},
		{name: "unknown key", input: "grants: []", wantErr: true},
		{name: "malformed", input: "- title: [unclosed", wantErr: true},
		{name: "list", input: listYAML, want: 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			records, err := Parse([]byte(tt.input))
			if tt.wantErr {
				assert.ErrorIs(t, err, domain.ErrInvalidInput)
				return
			}
			require.NoError(t, err)
			assert.NotNil(t, records)
			assert.Len(t, records, tt.want)
		})
	}
}
