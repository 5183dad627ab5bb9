package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"rentals/internal/config"
	"rentals/internal/model"
	"rentals/internal/repository"
	"rentals/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type feedbackLog struct {
	actions []string
	err     error
}

func (f *feedbackLog) LogSearch(context.Context, repository.SearchLogEntry) error { return nil }

func (f *feedbackLog) LogFeedback(_ context.Context, searchID, listingID, action string) error {
	f.actions = append(f.actions, listingID+":"+action)
	return f.err
}

func newTestRouter(t *testing.T, log repository.SearchLogger) (*gin.Engine, *service.SearchService) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	repo, err := repository.NewCatalogRepository([]model.Listing{
		{ID: "kh-1", Title: "PG near campus", Location: "Kharar", Price: 6500, PropertyType: "PG", GenderPreference: "Male", Bedrooms: 1, Amenities: model.JSONArray{"WiFi", "Food"}},
		{ID: "mo-1", Title: "2BHK", Location: "Mohali", Price: 18000, PropertyType: "Apartment", GenderPreference: "Family", Bedrooms: 2, Amenities: model.JSONArray{"WiFi", "AC"}},
		{ID: "zk-1", Title: "Kothi", Location: "Zirakpur", Price: 42000, PropertyType: "Independent House", GenderPreference: "Family", Bedrooms: 5, Amenities: model.JSONArray{"Parking"}},
	})
	require.NoError(t, err)

	svc := service.NewSearchService(repo, log, service.NewAnnotator(),
		config.SearchConfig{DefaultPageSize: 10, MaxPageSize: 50}, zerolog.Nop())
	t.Cleanup(svc.Wait)

	server := config.ServerConfig{AllowedOrigins: []string{"*"}}
	return NewRouter(svc, server, BuildInfo{Version: "test"}, zerolog.Nop()), svc
}

func doRequest(r http.Handler, method, target, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeSearch(t *testing.T, w *httptest.ResponseRecorder) model.SearchResponse {
	t.Helper()
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var resp model.SearchResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func ids(resp model.SearchResponse) []string {
	out := make([]string, 0, len(resp.Results))
	for _, r := range resp.Results {
		out = append(out, r.ID)
	}
	return out
}

func TestSearch_POST(t *testing.T) {
	r, _ := newTestRouter(t, nil)

	tests := []struct {
		name string
		body string
		want []string
	}{
		{name: "empty criteria returns everything", body: `{}`, want: []string{"kh-1", "mo-1", "zk-1"}},
		{name: "partial price range keeps default max", body: `{"criteria": {"price_range": {"min": 10000}}}`, want: []string{"mo-1", "zk-1"}},
		{name: "text and amenities", body: `{"criteria": {"search_text": "MOHALI", "amenities": ["AC"]}}`, want: []string{"mo-1"}},
		{name: "five plus", body: `{"criteria": {"bedrooms": "5+"}}`, want: []string{"zk-1"}},
		{name: "inverted range", body: `{"criteria": {"price_range": {"min": 30000, "max": 10000}}}`, want: []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := decodeSearch(t, doRequest(r, http.MethodPost, "/api/v1/search", tt.body))
			assert.Equal(t, tt.want, ids(resp))
			assert.NotEmpty(t, resp.SearchID)
		})
	}
}

func TestSearch_POST_BadRequest(t *testing.T) {
	r, _ := newTestRouter(t, nil)

	w := doRequest(r, http.MethodPost, "/api/v1/search", `{"criteria": {"bedrooms": "6"}}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doRequest(r, http.MethodPost, "/api/v1/search", `{"criteria":`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestListListings_GET(t *testing.T) {
	r, _ := newTestRouter(t, nil)

	resp := decodeSearch(t, doRequest(r, http.MethodGet, "/api/v1/listings?gender=Family&amenity=WiFi&amenity=AC", ""))
	assert.Equal(t, []string{"mo-1"}, ids(resp))

	resp = decodeSearch(t, doRequest(r, http.MethodGet, "/api/v1/listings?min_price=6500&max_price=18000", ""))
	assert.Equal(t, []string{"kh-1", "mo-1"}, ids(resp))

	resp = decodeSearch(t, doRequest(r, http.MethodGet, "/api/v1/listings?q=khar&type=PG&bedrooms=1", ""))
	assert.Equal(t, []string{"kh-1"}, ids(resp))

	resp = decodeSearch(t, doRequest(r, http.MethodGet, "/api/v1/listings?page=2&page_size=2", ""))
	assert.Equal(t, []string{"zk-1"}, ids(resp))
	assert.Equal(t, 3, resp.Total)
	assert.Equal(t, 2, resp.TotalPages)

	w := doRequest(r, http.MethodGet, "/api/v1/listings?bedrooms=lots", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doRequest(r, http.MethodGet, "/api/v1/listings?min_price=-5", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetListing(t *testing.T) {
	r, _ := newTestRouter(t, nil)

	w := doRequest(r, http.MethodGet, "/api/v1/listings/mo-1", "")
	require.Equal(t, http.StatusOK, w.Code)
	var l model.Listing
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &l))
	assert.Equal(t, "Mohali", l.Location)

	w = doRequest(r, http.MethodGet, "/api/v1/listings/none", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestFilterOptions(t *testing.T) {
	r, _ := newTestRouter(t, nil)

	w := doRequest(r, http.MethodGet, "/api/v1/filters", "")
	require.Equal(t, http.StatusOK, w.Code)
	var opts model.FilterOptions
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &opts))
	assert.Equal(t, []string{"AC", "Food", "Parking", "WiFi"}, opts.Amenities)
	assert.Equal(t, 6500.0, opts.PriceMin)
	assert.Equal(t, 42000.0, opts.PriceMax)
	assert.Equal(t, 3, opts.Count)
}

func TestFeedback(t *testing.T) {
	log := &feedbackLog{}
	r, _ := newTestRouter(t, log)
	searchID := uuid.NewString()

	w := doRequest(r, http.MethodPost, "/api/v1/feedback",
		`{"search_id": "`+searchID+`", "listing_id": "mo-1", "action": "contact"}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, []string{"mo-1:contact"}, log.actions)

	w = doRequest(r, http.MethodPost, "/api/v1/feedback",
		`{"search_id": "`+searchID+`", "listing_id": "mo-1", "action": "share"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doRequest(r, http.MethodPost, "/api/v1/feedback",
		`{"search_id": "not-a-uuid", "listing_id": "mo-1", "action": "click"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	log.err = repository.ErrNotFound
	w = doRequest(r, http.MethodPost, "/api/v1/feedback",
		`{"search_id": "`+searchID+`", "listing_id": "mo-1", "action": "click"}`)
	assert.Equal(t, http.StatusNotFound, w.Code)

	log.err = errors.New("db down")
	w = doRequest(r, http.MethodPost, "/api/v1/feedback",
		`{"search_id": "`+searchID+`", "listing_id": "mo-1", "action": "click"}`)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestHealthAndHeaders(t *testing.T) {
	r, _ := newTestRouter(t, nil)

	w := doRequest(r, http.MethodGet, "/health", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"status":"healthy"`)
	assert.NotEmpty(t, w.Header().Get("Content-Security-Policy"))
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))

	req := httptest.NewRequest(http.MethodGet, "/version", nil)
	req.Header.Set("Origin", "https://rent.example.com")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
}
