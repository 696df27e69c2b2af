package drafts

import (
	"context"
	"errors"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/grantcraft-cli/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/grantcraft-cli/internal/core/domain"
)

type mockDraftService struct {
	drafts  []domain.Draft
	listErr error
	deleted []string
}

func (m *mockDraftService) Save(_ context.Context, _ *domain.Draft) error { return nil }

func (m *mockDraftService) Get(_ context.Context, _ string) (*domain.Draft, error) {
	return nil, domain.ErrNotFound
}

func (m *mockDraftService) List(_ context.Context) ([]domain.Draft, error) {
	return m.drafts, m.listErr
}

func (m *mockDraftService) Delete(_ context.Context, id string) error {
	m.deleted = append(m.deleted, id)
	kept := m.drafts[:0]
	for _, d := range m.drafts {
		if d.ID != id {
			kept = append(kept, d)
		}
	}
	m.drafts = kept
	return nil
}

func sampleDrafts() []domain.Draft {
	at := time.Date(2026, 10, 1, 9, 30, 0, 0, time.Local)
	return []domain.Draft{
		{
			ID:          "a",
			Opportunity: domain.OpportunityRecord{Title: "Youth Fund", Organization: "Foundation"},
			Sections: []domain.GeneratedSection{
				{Type: domain.SectionType("project_overview"), Text: "Journey helps youth."},
				{Type: domain.SectionType("budget"), Failed: true},
			},
			CreatedAt: at,
			UpdatedAt: at,
		},
		{ID: "b", Opportunity: domain.OpportunityRecord{Title: "Arts Grant"}, UpdatedAt: at},
	}
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func load(t *testing.T, v *View) *View {
	t.Helper()
	cmd := v.Init()
	require.NotNil(t, cmd)
	v, _ = v.Update(cmd())
	return v
}

func TestView_Load(t *testing.T) {
	v := NewView(nil, nil, &mockDraftService{drafts: sampleDrafts()})
	v.SetDimensions(120, 30)
	v = load(t, v)

	require.Len(t, v.Drafts(), 2)
	view := v.View()
	assert.Contains(t, view, "Drafts (2)")
	assert.Contains(t, view, "Youth Fund")
	assert.Contains(t, view, "2026-10-01 09:30")
	assert.Contains(t, view, "2 sections, 1 failed")
	assert.Contains(t, view, "Arts Grant")
}

func TestView_Empty(t *testing.T) {
	v := load(t, NewView(nil, nil, &mockDraftService{}))
	assert.Nil(t, v.Selected())
	assert.Contains(t, v.View(), "No saved drafts")

	v, _ = v.Update(runes("d"))
	assert.False(t, v.Confirming())
}

func TestView_Open(t *testing.T) {
	v := load(t, NewView(nil, nil, &mockDraftService{drafts: sampleDrafts()}))

	v, _ = v.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.True(t, v.Reading())
	assert.Equal(t, "Youth Fund", v.Reader().Title())
	assert.Contains(t, v.Reader().Content(), "Journey helps youth.")

	v, _ = v.Update(tea.KeyMsg{Type: tea.KeyEsc})
	assert.False(t, v.Reading())
}

func TestView_Delete(t *testing.T) {
	service := &mockDraftService{drafts: sampleDrafts()}
	v := load(t, NewView(nil, nil, service))
	v, _ = v.Update(runes("j"))

	v, cmd := v.Update(runes("d"))
	assert.Nil(t, cmd)
	require.True(t, v.Confirming())
	assert.Contains(t, v.View(), `Delete draft for "Arts Grant"?`)

	v, cmd = v.Update(runes("y"))
	require.NotNil(t, cmd)
	deleted := cmd().(messages.DraftDeleted)
	assert.Equal(t, "b", deleted.ID)
	assert.Equal(t, []string{"b"}, service.deleted)

	v, cmd = v.Update(deleted)
	require.NotNil(t, cmd, "a deletion reloads the list")
	v, _ = v.Update(cmd())
	require.Len(t, v.Drafts(), 1)
	assert.Equal(t, "a", v.Selected().ID)
}

func TestView_DeleteCancelled(t *testing.T) {
	service := &mockDraftService{drafts: sampleDrafts()}
	v := load(t, NewView(nil, nil, service))

	v, _ = v.Update(runes("d"))
	v, cmd := v.Update(runes("n"))
	assert.Nil(t, cmd)
	assert.False(t, v.Confirming())
	assert.Empty(t, service.deleted)
}

func TestView_Errors(t *testing.T) {
	boom := errors.New("database is locked")
	v := load(t, NewView(nil, nil, &mockDraftService{listErr: boom}))
	assert.ErrorIs(t, v.Err(), boom)
	assert.Contains(t, v.View(), "database is locked")

	v = load(t, NewView(nil, nil, nil))
	assert.ErrorIs(t, v.Err(), ErrNoDraftService)
}

func TestView_EscReturnsToMenu(t *testing.T) {
	v := NewView(nil, nil, &mockDraftService{})
	_, cmd := v.Update(tea.KeyMsg{Type: tea.KeyEsc})
	require.NotNil(t, cmd)
	assert.Equal(t, messages.ViewChanged{View: messages.ViewMenu}, cmd())
}
