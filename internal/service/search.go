package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"rentals/internal/config"
	"rentals/internal/filter"
	"rentals/internal/model"
	"rentals/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// ErrNilRequest is returned when Search is called without a request
var ErrNilRequest = errors.New("search request is nil")

const (
	searchLogTimeout = 5 * time.Second
	fallbackPageSize = 20
)

// SearchService handles search business logic
type SearchService struct {
	source    repository.ListingSource
	searchLog repository.SearchLogger
	annotator *Annotator
	pageSize  config.SearchConfig
	logger    zerolog.Logger
	pending   sync.WaitGroup

	mu       sync.Mutex
	inflight map[string]chan struct{} // search id -> closed once its log write returns
}

// NewSearchService creates a new search service. searchLog may be nil.
func NewSearchService(
	source repository.ListingSource,
	searchLog repository.SearchLogger,
	annotator *Annotator,
	pageSize config.SearchConfig,
	logger zerolog.Logger,
) *SearchService {
	if annotator == nil {
		annotator = NewAnnotator()
	}
	return &SearchService{
		source:    source,
		searchLog: searchLog,
		annotator: annotator,
		pageSize:  pageSize,
		logger:    logger.With().Str("component", "search").Logger(),
		inflight:  make(map[string]chan struct{}),
	}
}

// Search filters the catalog with the request criteria and returns one page
func (s *SearchService) Search(ctx context.Context, req *model.SearchRequest) (*model.SearchResponse, error) {
	if req == nil {
		return nil, ErrNilRequest
	}
	startTime := time.Now()

	listings, err := s.source.ListListings(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load listings: %w", err)
	}
	// A newer request may have superseded this one while the catalog loaded
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	matches, err := filter.FilterProperties(listings, &req.Criteria)
	if err != nil {
		return nil, err
	}

	page, pageSize := s.normalizePage(req.Page, req.PageSize)
	total := len(matches)
	start, end := pageBounds(page, pageSize, total)
	totalPages := total / pageSize
	if total%pageSize != 0 {
		totalPages++
	}

	results := s.annotator.Annotate(matches[start:end], &req.Criteria)
	took := time.Since(startTime).Milliseconds()
	searchID := uuid.NewString()

	s.logger.Debug().
		Str("search_id", searchID).
		Strs("active", filter.Active(&req.Criteria)).
		Int("catalog", len(listings)).
		Int("total", total).
		Int64("took_ms", took).
		Msg("search completed")

	listingIDs := make([]string, len(results))
	for i, r := range results {
		listingIDs[i] = r.ID
	}
	s.logSearch(repository.SearchLogEntry{
		SearchID:       searchID,
		Criteria:       req.Criteria,
		ResultCount:    total,
		ListingIDs:     listingIDs,
		ResponseTimeMs: took,
	})

	return &model.SearchResponse{
		SearchID:   searchID,
		Results:    results,
		Total:      total,
		Page:       page,
		PageSize:   pageSize,
		TotalPages: totalPages,
		HasMore:    end < total,
		Took:       took,
	}, nil
}

// GetListing retrieves a single listing by ID
func (s *SearchService) GetListing(ctx context.Context, id string) (*model.Listing, error) {
	return s.source.GetListing(ctx, id)
}

// FilterOptions collects the values the filter controls should offer: the
// fixed vocabularies plus anything else present in the catalog
func (s *SearchService) FilterOptions(ctx context.Context) (*model.FilterOptions, error) {
	listings, err := s.source.ListListings(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load listings: %w", err)
	}

	opts := &model.FilterOptions{
		PropertyTypes:     mergeVocabulary(model.PropertyTypes, listings, func(l model.Listing) []string { return []string{l.PropertyType} }),
		GenderPreferences: mergeVocabulary(model.GenderPreferences, listings, func(l model.Listing) []string { return []string{l.GenderPreference} }),
		BedroomBuckets:    append([]string(nil), model.BedroomBuckets[1:]...),
		Amenities:         mergeVocabulary(nil, listings, func(l model.Listing) []string { return l.Amenities }),
		Count:             len(listings),
	}
	for i, l := range listings {
		if i == 0 || l.Price < opts.PriceMin {
			opts.PriceMin = l.Price
		}
		if i == 0 || l.Price > opts.PriceMax {
			opts.PriceMax = l.Price
		}
	}
	return opts, nil
}

// LogFeedback logs user feedback/action. Feedback that arrives while the
// search itself is still being logged waits for that write first.
func (s *SearchService) LogFeedback(ctx context.Context, searchID, listingID, action string) error {
	if s.searchLog == nil {
		return nil
	}
	s.mu.Lock()
	done, ok := s.inflight[searchID]
	s.mu.Unlock()
	if ok {
		select {
		case <-done:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	return s.searchLog.LogFeedback(ctx, searchID, listingID, action)
}

// Wait blocks until in-flight search log writes finish
func (s *SearchService) Wait() {
	s.pending.Wait()
}

func (s *SearchService) normalizePage(page, pageSize int) (int, int) {
	if page < 1 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = s.pageSize.DefaultPageSize
	}
	if s.pageSize.MaxPageSize > 0 && pageSize > s.pageSize.MaxPageSize {
		pageSize = s.pageSize.MaxPageSize
	}
	if pageSize <= 0 {
		pageSize = fallbackPageSize
	}
	return page, pageSize
}

// pageBounds returns the slice bounds of a page within total results.
// Client-supplied page and pageSize are never multiplied or added past total.
func pageBounds(page, pageSize, total int) (int, int) {
	if page-1 > total/pageSize {
		return total, total
	}
	start := (page - 1) * pageSize
	if start > total {
		start = total
	}
	if pageSize > total-start {
		return start, total
	}
	return start, start + pageSize
}

// logSearch records the search without holding up the response
func (s *SearchService) logSearch(entry repository.SearchLogEntry) {
	if s.searchLog == nil {
		return
	}
	done := make(chan struct{})
	s.mu.Lock()
	s.inflight[entry.SearchID] = done
	s.mu.Unlock()

	s.pending.Add(1)
	go func() {
		defer s.pending.Done()
		defer func() {
			s.mu.Lock()
			delete(s.inflight, entry.SearchID)
			s.mu.Unlock()
			close(done)
		}()
		ctx, cancel := context.WithTimeout(context.Background(), searchLogTimeout)
		defer cancel()
		if err := s.searchLog.LogSearch(ctx, entry); err != nil {
			s.logger.Warn().Err(err).Str("search_id", entry.SearchID).Msg("failed to log search")
		}
	}()
}

// mergeVocabulary returns base followed by any extra non-empty values found
// in the listings, extras sorted
func mergeVocabulary(base []string, listings []model.Listing, values func(model.Listing) []string) []string {
	seen := make(map[string]struct{}, len(base))
	out := append([]string{}, base...)
	for _, v := range base {
		seen[v] = struct{}{}
	}
	var extra []string
	for _, l := range listings {
		for _, v := range values(l) {
			if v == "" {
				continue
			}
			if _, ok := seen[v]; ok {
				continue
			}
			seen[v] = struct{}{}
			extra = append(extra, v)
		}
	}
	sort.Strings(extra)
	return append(out, extra...)
}
