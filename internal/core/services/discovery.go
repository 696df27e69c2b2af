package services

import (
	"context"
	"sort"
	"strings"

	"github.com/custodia-labs/grantcraft-cli/internal/core/domain"
	"github.com/custodia-labs/grantcraft-cli/internal/core/ports/driven"
	"github.com/custodia-labs/grantcraft-cli/internal/core/ports/driving"
	"github.com/custodia-labs/grantcraft-cli/internal/logger"
)

// Ensure DiscoveryService implements the interface.
var _ driving.DiscoveryService = (*DiscoveryService)(nil)

// RelevanceThreshold is the minimum number of focus keywords a record must mention.
const RelevanceThreshold = 2

// DiscoveryService gathers opportunities from every source and keeps the
// ones relevant to the organisation's focus.
type DiscoveryService struct {
	sources    []driven.OpportunitySource
	settings   domain.DiscoverySettings
	maxResults int
}

// NewDiscoveryService creates a discovery service over the given sources.
func NewDiscoveryService(settings domain.DiscoverySettings, sources ...driven.OpportunitySource) *DiscoveryService {
	maxResults := settings.MaxResults
	if maxResults <= 0 {
		maxResults = domain.DefaultMaxResults
	}
	if len(settings.FocusKeywords) == 0 {
		settings.FocusKeywords = domain.DefaultFocusKeywords()
	}
	return &DiscoveryService{
		sources:    sources,
		settings:   settings,
		maxResults: maxResults,
	}
}

// Discover queries every source with keywords (or the configured search
// keywords when none are given) and returns the relevant records, best first.
// A failing source is logged and skipped.
func (s *DiscoveryService) Discover(ctx context.Context, keywords []string) ([]domain.OpportunityRecord, error) {
	logger.Section("Discovery")
	if len(keywords) == 0 {
		keywords = s.settings.SearchKeywords
	}
	logger.Debug("Keywords: %v", keywords)

	var all []domain.OpportunityRecord
	for _, source := range s.sources {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		records, err := source.Search(ctx, keywords)
		if err != nil {
			logger.Warn("Discovery source %s failed: %v", source.Name(), err)
			continue
		}
		logger.Debug("%s returned %d records", source.Name(), len(records))
		all = append(all, records...)
	}

	relevant := FilterRelevant(all, s.settings.FocusKeywords)
	if len(relevant) > s.maxResults {
		relevant = relevant[:s.maxResults]
	}
	logger.Info("Found %d relevant opportunities from %d candidates", len(relevant), len(all))
	return relevant, nil
}

// FilterRelevant scores each record by the number of focus keywords found in
// its title, description and focus areas, keeps those reaching
// RelevanceThreshold and sorts them by descending score. Ties keep input order.
func FilterRelevant(records []domain.OpportunityRecord, focus []string) []domain.OpportunityRecord {
	relevant := []domain.OpportunityRecord{}
	for _, record := range records {
		score := RelevanceScore(record, focus)
		if score < RelevanceThreshold {
			continue
		}
		record.RelevanceScore = &score
		relevant = append(relevant, record)
	}
	sort.SliceStable(relevant, func(i, j int) bool {
		return relevant[i].Score() > relevant[j].Score()
	})
	return relevant
}

// RelevanceScore counts the focus keywords present in a record, case-insensitively.
func RelevanceScore(record domain.OpportunityRecord, focus []string) int {
	haystack := strings.ToLower(strings.Join([]string{
		record.Title,
		record.Description,
		strings.Join(record.FocusAreas, " "),
	}, " "))

	score := 0
	for _, keyword := range focus {
		if keyword != "" && strings.Contains(haystack, strings.ToLower(keyword)) {
			score++
		}
	}
	return score
}
