package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/grantcraft-cli/internal/core/domain"
)

const (
	// URIScheme is the custom URI scheme for grantcraft resources.
	uriScheme = "grantcraft://"
)

// registerResources registers all resource handlers with the MCP server.
func (s *Server) registerResources() {
	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "index",
		Name:        "index",
		Description: "State of the retrieval index of past applications",
		MIMEType:    "application/json",
	}, s.handleIndexResource)

	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "drafts",
		Name:        "drafts",
		Description: "Saved application drafts",
		MIMEType:    "application/json",
	}, s.handleDraftsResource)

	// Template for a single draft.
	s.server.AddResourceTemplate(&mcp.ResourceTemplate{
		URITemplate: uriScheme + "drafts/{draftId}",
		Name:        "draft",
		Description: "A saved draft rendered as markdown",
		MIMEType:    "text/markdown",
	}, s.handleDraftResource)
}

// handleIndexResource returns the collection name and chunk count.
func (s *Server) handleIndexResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	stats, err := s.ports.Retrieval.Stats(ctx)
	if err != nil {
		return nil, fmt.Errorf("reading index stats: %w", err)
	}
	return jsonResource(req.Params.URI, stats)
}

// handleDraftsResource returns a summary of every saved draft.
func (s *Server) handleDraftsResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	if s.ports.Drafts == nil {
		return &mcp.ReadResourceResult{
			Contents: []*mcp.ResourceContents{{
				URI:      req.Params.URI,
				MIMEType: "application/json",
				Text:     "[]",
			}},
		}, nil
	}

	drafts, err := s.ports.Drafts.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing drafts: %w", err)
	}

	type draftInfo struct {
		ID          string `json:"id"`
		Opportunity string `json:"opportunity"`
		Sections    int    `json:"sections"`
		Failed      int    `json:"failed"`
		URI         string `json:"uri"`
	}

	infos := make([]draftInfo, len(drafts))
	for i := range drafts {
		infos[i] = draftInfo{
			ID:          drafts[i].ID,
			Opportunity: drafts[i].Opportunity.Title,
			Sections:    len(drafts[i].Sections),
			Failed:      drafts[i].FailedCount(),
			URI:         uriScheme + "drafts/" + drafts[i].ID,
		}
	}
	return jsonResource(req.Params.URI, infos)
}

// handleDraftResource returns one draft as markdown.
func (s *Server) handleDraftResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	if s.ports.Drafts == nil {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	// Extract draftId from URI: grantcraft://drafts/{draftId}
	id := extractDraftID(req.Params.URI)
	if id == "" {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	draft, err := s.ports.Drafts.Get(ctx, id)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}
	if err != nil {
		return nil, fmt.Errorf("getting draft: %w", err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      req.Params.URI,
			MIMEType: "text/markdown",
			Text:     draft.Markdown(),
		}},
	}, nil
}

func jsonResource(uri string, v any) (*mcp.ReadResourceResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling resource: %w", err)
	}
	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}

// extractDraftID extracts the draft ID from a URI like grantcraft://drafts/{draftId}.
func extractDraftID(uri string) string {
	const prefix = uriScheme + "drafts/"

	if !strings.HasPrefix(uri, prefix) {
		return ""
	}

	id := strings.TrimPrefix(uri, prefix)
	if strings.Contains(id, "/") {
		return ""
	}
	return id
}
