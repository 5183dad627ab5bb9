package repository

import (
	"context"

	"github.com/rs/zerolog"
)

// EventLogger writes search and feedback events to a structured log stream.
// It is used when listings come from a catalog file and there is no database
// to hold the search log.
type EventLogger struct {
	logger zerolog.Logger
}

// NewEventLogger creates an event logger on top of the given logger
func NewEventLogger(logger zerolog.Logger) *EventLogger {
	return &EventLogger{logger: logger.With().Str("component", "search_log").Logger()}
}

// LogSearch logs a search query
func (l *EventLogger) LogSearch(_ context.Context, entry SearchLogEntry) error {
	l.logger.Info().
		Str("search_id", entry.SearchID).
		Str("search_text", entry.Criteria.SearchText).
		Str("property_type", entry.Criteria.PropertyType).
		Str("gender_preference", entry.Criteria.GenderPreference).
		Str("bedrooms", entry.Criteria.Bedrooms).
		Float64("price_min", entry.Criteria.PriceRange.Min).
		Float64("price_max", entry.Criteria.PriceRange.Max).
		Strs("amenities", entry.Criteria.Amenities).
		Int("result_count", entry.ResultCount).
		Strs("listing_ids", entry.ListingIDs).
		Int64("response_time_ms", entry.ResponseTimeMs).
		Msg("search")
	return nil
}

// LogFeedback logs user feedback/action
func (l *EventLogger) LogFeedback(_ context.Context, searchID, listingID, action string) error {
	l.logger.Info().
		Str("search_id", searchID).
		Str("listing_id", listingID).
		Str("action", action).
		Msg("feedback")
	return nil
}
