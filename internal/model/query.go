package model

// SearchRequest represents a search query request
type SearchRequest struct {
	Criteria FilterCriteria `json:"criteria"`
	Page     int            `json:"page"`
	PageSize int            `json:"page_size"`
}

// NewSearchRequest returns a request whose criteria are all inactive, ready
// to have a client payload decoded over it
func NewSearchRequest() *SearchRequest {
	return &SearchRequest{Criteria: *NewFilterCriteria()}
}

// SearchResponse represents a search result response
type SearchResponse struct {
	SearchID   string                `json:"search_id"`
	Results    []ListingSearchResult `json:"results"`
	Total      int                   `json:"total"`
	Page       int                   `json:"page"`
	PageSize   int                   `json:"page_size"`
	TotalPages int                   `json:"total_pages"`
	HasMore    bool                  `json:"has_more"`
	Took       int64                 `json:"took_ms"` // Response time in milliseconds
}

// FilterOptions lists the values the filter controls can offer
type FilterOptions struct {
	PropertyTypes     []string `json:"property_types"`
	GenderPreferences []string `json:"gender_preferences"`
	BedroomBuckets    []string `json:"bedroom_buckets"`
	Amenities         []string `json:"amenities"`
	PriceMin          float64  `json:"price_min"`
	PriceMax          float64  `json:"price_max"`
	Count             int      `json:"count"`
}

// FeedbackRequest represents user feedback/action
type FeedbackRequest struct {
	SearchID  string `json:"search_id" binding:"required,uuid"`
	ListingID string `json:"listing_id" binding:"required"`
	Action    string `json:"action" binding:"required"` // click, contact, view_details
}

// FeedbackResponse represents feedback response
type FeedbackResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}
