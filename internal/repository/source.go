package repository

import (
	"context"
	"errors"

	"rentals/internal/model"
)

var (
	// ErrNotFound is returned when a listing id is unknown
	ErrNotFound = errors.New("listing not found")
	// ErrInvalidCatalog wraps every catalog validation failure
	ErrInvalidCatalog = errors.New("invalid listing catalog")
)

// ListingSource supplies the materialized listing collection
type ListingSource interface {
	ListListings(ctx context.Context) ([]model.Listing, error)
	GetListing(ctx context.Context, id string) (*model.Listing, error)
}

// SearchLogger records searches and the actions users take on their results
type SearchLogger interface {
	LogSearch(ctx context.Context, entry SearchLogEntry) error
	LogFeedback(ctx context.Context, searchID, listingID, action string) error
}

// SearchLogEntry is one executed search
type SearchLogEntry struct {
	SearchID       string
	Criteria       model.FilterCriteria
	ResultCount    int
	ListingIDs     []string
	ResponseTimeMs int64
}

var (
	_ ListingSource = (*CatalogRepository)(nil)
	_ ListingSource = (*PostgresRepository)(nil)
	_ SearchLogger  = (*PostgresRepository)(nil)
	_ SearchLogger  = (*EventLogger)(nil)
)
