package handler

import (
	"context"
	"errors"
	"net/http"

	"rentals/internal/model"
	"rentals/internal/repository"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// Searcher is the search behaviour the HTTP layer depends on
type Searcher interface {
	Search(ctx context.Context, req *model.SearchRequest) (*model.SearchResponse, error)
	GetListing(ctx context.Context, id string) (*model.Listing, error)
	FilterOptions(ctx context.Context) (*model.FilterOptions, error)
	LogFeedback(ctx context.Context, searchID, listingID, action string) error
}

// SearchHandler handles search-related HTTP requests
type SearchHandler struct {
	searchService Searcher
}

// NewSearchHandler creates a new search handler
func NewSearchHandler(searchService Searcher) *SearchHandler {
	return &SearchHandler{searchService: searchService}
}

// listingQuery mirrors the search controls as URL query parameters
type listingQuery struct {
	Query     string   `form:"q"`
	Type      string   `form:"type"`
	Gender    string   `form:"gender"`
	Bedrooms  string   `form:"bedrooms" binding:"omitempty,oneof=1 2 3 4 5+"`
	MinPrice  *float64 `form:"min_price" binding:"omitempty,min=0"`
	MaxPrice  *float64 `form:"max_price" binding:"omitempty,min=0"`
	Amenities []string `form:"amenity"`
	Page      int      `form:"page"`
	PageSize  int      `form:"page_size"`
}

func (q *listingQuery) toRequest() *model.SearchRequest {
	req := model.NewSearchRequest()
	req.Criteria.SearchText = q.Query
	req.Criteria.PropertyType = q.Type
	req.Criteria.GenderPreference = q.Gender
	req.Criteria.Bedrooms = q.Bedrooms
	if q.MinPrice != nil {
		req.Criteria.PriceRange.Min = *q.MinPrice
	}
	if q.MaxPrice != nil {
		req.Criteria.PriceRange.Max = *q.MaxPrice
	}
	req.Criteria.Amenities = q.Amenities
	req.Page = q.Page
	req.PageSize = q.PageSize
	return req
}

// Search handles POST /api/v1/search
func (h *SearchHandler) Search(c *gin.Context) {
	req := model.NewSearchRequest()
	if err := c.ShouldBindJSON(req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}
	h.respondSearch(c, req)
}

// ListListings handles GET /api/v1/listings
func (h *SearchHandler) ListListings(c *gin.Context) {
	var q listingQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query: " + err.Error()})
		return
	}
	h.respondSearch(c, q.toRequest())
}

func (h *SearchHandler) respondSearch(c *gin.Context, req *model.SearchRequest) {
	response, err := h.searchService.Search(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			// Client went away; nobody is left to read a response
			c.Abort()
			return
		}
		zerolog.Ctx(c.Request.Context()).Error().Err(err).Msg("search failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Search failed: " + err.Error()})
		return
	}
	c.JSON(http.StatusOK, response)
}

// GetListing handles GET /api/v1/listings/:id
func (h *SearchHandler) GetListing(c *gin.Context) {
	listing, err := h.searchService.GetListing(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Listing not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get listing: " + err.Error()})
		return
	}
	c.JSON(http.StatusOK, listing)
}

// FilterOptions handles GET /api/v1/filters
func (h *SearchHandler) FilterOptions(c *gin.Context) {
	opts, err := h.searchService.FilterOptions(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load filter options: " + err.Error()})
		return
	}
	c.JSON(http.StatusOK, opts)
}
