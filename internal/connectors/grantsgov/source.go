// Package grantsgov scrapes opportunity listings from a grants.gov style
// search page. Requests are paced with a token bucket and responses are
// cached per query.
package grantsgov

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	gocache "github.com/patrickmn/go-cache"
	"golang.org/x/time/rate"

	"github.com/custodia-labs/grantcraft-cli/internal/core/domain"
	"github.com/custodia-labs/grantcraft-cli/internal/core/ports/driven"
	"github.com/custodia-labs/grantcraft-cli/internal/logger"
)

const (
	// Name identifies records produced by this source.
	Name = "Grants.gov"

	// DefaultURL is the public search page.
	DefaultURL = "https://www.grants.gov/web/grants/search-grants.html"

	// DefaultCacheTTL is how long a query's results are reused.
	DefaultCacheTTL = 15 * time.Minute

	// DefaultTimeout bounds a single page fetch.
	DefaultTimeout = 30 * time.Second

	userAgent   = "grantcraft/1.0 (+https://github.com/custodia-labs/grantcraft-cli)"
	maxBodySize = 4 << 20
)

// Ensure Source implements the interface.
var _ driven.OpportunitySource = (*Source)(nil)

// Config holds configuration for the grants.gov source.
type Config struct {
	// URL is the search page (default: DefaultURL).
	URL string

	// Delay is the minimum spacing between requests. Zero disables pacing.
	Delay time.Duration

	// MaxResults caps parsed listings per page. Zero means no cap.
	MaxResults int

	// CacheTTL is how long results are cached (default: 15m).
	CacheTTL time.Duration

	// Client overrides the HTTP client.
	Client *http.Client
}

// Source fetches and parses listing pages.
type Source struct {
	url        string
	maxResults int
	client     *http.Client
	limiter    *rate.Limiter
	cache      *gocache.Cache
}

// New creates a grants.gov source.
func New(cfg Config) *Source {
	if cfg.URL == "" {
		cfg.URL = DefaultURL
	}
	if cfg.CacheTTL <= 0 {
		cfg.CacheTTL = DefaultCacheTTL
	}
	if cfg.Client == nil {
		cfg.Client = &http.Client{Timeout: DefaultTimeout}
	}

	limit := rate.Inf
	if cfg.Delay > 0 {
		limit = rate.Every(cfg.Delay)
	}

	return &Source{
		url:        cfg.URL,
		maxResults: cfg.MaxResults,
		client:     cfg.Client,
		limiter:    rate.NewLimiter(limit, 1),
		cache:      gocache.New(cfg.CacheTTL, 2*cfg.CacheTTL),
	}
}

// Name returns "Grants.gov".
func (s *Source) Name() string {
	return Name
}

// Search fetches the listing page for keywords and parses its opportunities.
func (s *Source) Search(ctx context.Context, keywords []string) ([]domain.OpportunityRecord, error) {
	target, err := s.searchURL(keywords)
	if err != nil {
		return nil, err
	}

	if cached, ok := s.cache.Get(target); ok {
		logger.Debug("grants.gov: cache hit for %s", target)
		return cloneRecords(cached.([]domain.OpportunityRecord)), nil
	}

	if err := s.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	body, err := s.fetch(ctx, target)
	if err != nil {
		return nil, err
	}

	records, err := Parse(bytes.NewReader(body), s.maxResults)
	if err != nil {
		return nil, fmt.Errorf("grants.gov: parsing listing: %w", err)
	}

	s.cache.SetDefault(target, cloneRecords(records))
	return records, nil
}

func (s *Source) searchURL(keywords []string) (string, error) {
	u, err := url.Parse(s.url)
	if err != nil {
		return "", fmt.Errorf("%w: grants.gov url: %w", domain.ErrInvalidInput, err)
	}
	q := u.Query()
	q.Set("keywords", strings.Join(keywords, " "))
	q.Set("oppStatuses", "forecasted|posted")
	q.Set("sortBy", "relevancy")
	u.RawQuery = q.Encode()
	return u.String(), nil
}

func (s *Source) fetch(ctx context.Context, target string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("grants.gov: failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: grants.gov: %w", domain.ErrSourceUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: grants.gov returned status %d", domain.ErrSourceUnavailable, resp.StatusCode)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return nil, fmt.Errorf("%w: grants.gov: reading body: %w", domain.ErrSourceUnavailable, err)
	}
	return data, nil
}

func cloneRecords(records []domain.OpportunityRecord) []domain.OpportunityRecord {
	out := make([]domain.OpportunityRecord, len(records))
	copy(out, records)
	return out
}
