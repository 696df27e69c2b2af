// Package messages defines the Bubbletea messages exchanged between TUI views.
package messages

import (
	"github.com/custodia-labs/grantcraft-cli/internal/core/domain"
)

// ViewType identifies which view is active.
type ViewType int

const (
	// ViewMenu is the main navigation menu.
	ViewMenu ViewType = iota
	// ViewSearch searches the indexed example proposals.
	ViewSearch
	// ViewOpportunities discovers funding opportunities.
	ViewOpportunities
	// ViewDrafts lists saved drafts.
	ViewDrafts
	// ViewHelp lists the keybindings.
	ViewHelp
)

// String returns the view name.
func (v ViewType) String() string {
	switch v {
	case ViewMenu:
		return "menu"
	case ViewSearch:
		return "search"
	case ViewOpportunities:
		return "opportunities"
	case ViewDrafts:
		return "drafts"
	case ViewHelp:
		return "help"
	default:
		return "unknown"
	}
}

// ViewChanged is sent when navigating between views.
type ViewChanged struct {
	View ViewType
}

// SearchCompleted carries retrieval results back to the search view.
type SearchCompleted struct {
	Query   string
	Results []domain.SearchResult
	Err     error
}

// OpportunitiesLoaded carries discovered opportunities, highest relevance first.
type OpportunitiesLoaded struct {
	Keywords      []string
	Opportunities []domain.OpportunityRecord
	Err           error
}

// DraftGenerated is sent when a draft for an opportunity has been written.
// Saved reports whether the draft was persisted.
type DraftGenerated struct {
	Draft *domain.Draft
	Saved bool
	Err   error
}

// DraftsLoaded carries the saved drafts, newest first.
type DraftsLoaded struct {
	Drafts []domain.Draft
	Err    error
}

// DraftDeleted signals a draft was removed.
type DraftDeleted struct {
	ID  string
	Err error
}

// ErrorOccurred signals that an error happened.
type ErrorOccurred struct {
	Err error
}
