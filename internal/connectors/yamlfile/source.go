// Package yamlfile reads opportunity records from a YAML file.
//
// The file holds either a list of records or a mapping with an
// "opportunities" key:
//
//	opportunities:
//	  - title: AI for Education Innovation Grant
//	    organization: National Science Foundation
//	    focus_areas: [Educational Technology, AI in Education]
package yamlfile

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/custodia-labs/grantcraft-cli/internal/core/domain"
	"github.com/custodia-labs/grantcraft-cli/internal/core/ports/driven"
)

// Ensure Source implements the interface.
var _ driven.OpportunitySource = (*Source)(nil)

// Source loads opportunities from one YAML file on every search.
type Source struct {
	path string
}

// New creates a source for the file at path.
func New(path string) *Source {
	return &Source{path: path}
}

// Name returns the file's base name.
func (s *Source) Name() string {
	return filepath.Base(s.path)
}

// Search returns every record in the file. Keywords are ignored; relevance
// filtering happens in the discovery service.
func (s *Source) Search(ctx context.Context, _ []string) ([]domain.OpportunityRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrSourceUnavailable, err)
	}

	records, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", s.path, err)
	}

	for i := range records {
		if records[i].Source == "" {
			records[i].Source = s.Name()
		}
		// Scores in the file are recomputed by the relevance filter.
		records[i].RelevanceScore = nil
	}
	return records, nil
}

type document struct {
	Opportunities []domain.OpportunityRecord `yaml:"opportunities"`
}

// Parse decodes a YAML list of records or an {opportunities: [...]} mapping.
// Records without a title are dropped.
func Parse(data []byte) ([]domain.OpportunityRecord, error) {
	var (
		records []domain.OpportunityRecord
		node    yaml.Node
	)
	if err := yaml.Unmarshal(data, &node); err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrInvalidInput, err)
	}

	if len(node.Content) > 0 {
		switch node.Content[0].Kind {
		case yaml.SequenceNode:
			if err := node.Content[0].Decode(&records); err != nil {
				return nil, fmt.Errorf("%w: %w", domain.ErrInvalidInput, err)
			}
		case yaml.MappingNode:
			var doc document
			dec := yaml.NewDecoder(bytes.NewReader(data))
			dec.KnownFields(true)
			if err := dec.Decode(&doc); err != nil {
				return nil, fmt.Errorf("%w: %w", domain.ErrInvalidInput, err)
			}
			records = doc.Opportunities
		default:
			return nil, fmt.Errorf("%w: expected a list or an opportunities mapping", domain.ErrInvalidInput)
		}
	}

	out := make([]domain.OpportunityRecord, 0, len(records))
	for _, rec := range records {
		if strings.TrimSpace(rec.Title) == "" {
			continue
		}
		out = append(out, rec)
	}
	return out, nil
}
