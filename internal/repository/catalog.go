package repository

import (
	"context"
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"sync"

	"rentals/internal/model"

	"github.com/santhosh-tekuri/jsonschema/v5"
	"gopkg.in/yaml.v3"
)

//go:embed schemas/catalog.json
var catalogSchemaJSON string

const catalogSchemaURL = "catalog.json"

var (
	catalogSchemaOnce sync.Once
	catalogSchema     *jsonschema.Schema
	catalogSchemaErr  error
)

func compiledCatalogSchema() (*jsonschema.Schema, error) {
	catalogSchemaOnce.Do(func() {
		compiler := jsonschema.NewCompiler()
		compiler.AssertFormat = true
		if err := compiler.AddResource(catalogSchemaURL, strings.NewReader(catalogSchemaJSON)); err != nil {
			catalogSchemaErr = fmt.Errorf("failed to add catalog schema: %w", err)
			return
		}
		catalogSchema, catalogSchemaErr = compiler.Compile(catalogSchemaURL)
	})
	return catalogSchema, catalogSchemaErr
}

// CatalogRepository serves listings from an in-memory catalog
type CatalogRepository struct {
	listings []model.Listing
	byID     map[string]int
}

// NewCatalogRepository creates a catalog over a copy of the given listings
func NewCatalogRepository(listings []model.Listing) (*CatalogRepository, error) {
	repo := &CatalogRepository{
		listings: make([]model.Listing, 0, len(listings)),
		byID:     make(map[string]int, len(listings)),
	}
	for _, l := range listings {
		if l.ID == "" {
			return nil, fmt.Errorf("%w: listing %q has no id", ErrInvalidCatalog, l.Title)
		}
		if _, dup := repo.byID[l.ID]; dup {
			return nil, fmt.Errorf("%w: duplicate listing id %q", ErrInvalidCatalog, l.ID)
		}
		repo.byID[l.ID] = len(repo.listings)
		repo.listings = append(repo.listings, copyListing(l))
	}
	return repo, nil
}

// LoadCatalogFile reads a YAML or JSON catalog file
func LoadCatalogFile(path string) (*CatalogRepository, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog %s: %w", path, err)
	}
	listings, err := ParseCatalog(data)
	if err != nil {
		return nil, fmt.Errorf("catalog %s: %w", path, err)
	}
	return NewCatalogRepository(listings)
}

// ParseCatalog decodes and validates a catalog document. The document is
// either an object with a "listings" array or a bare array of listings;
// YAML and JSON are both accepted.
func ParseCatalog(data []byte) ([]model.Listing, error) {
	var raw interface{}
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidCatalog, err)
	}
	if list, ok := raw.([]interface{}); ok {
		raw = map[string]interface{}{"listings": list}
	}

	// Round-trip through JSON so the validator sees plain JSON values
	doc, err := json.Marshal(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidCatalog, err)
	}
	var generic interface{}
	if err := json.Unmarshal(doc, &generic); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidCatalog, err)
	}

	schema, err := compiledCatalogSchema()
	if err != nil {
		return nil, err
	}
	if err := schema.Validate(generic); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidCatalog, err)
	}

	var catalog struct {
		Listings []model.Listing `json:"listings"`
	}
	if err := json.Unmarshal(doc, &catalog); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidCatalog, err)
	}
	return catalog.Listings, nil
}

// ListListings returns a copy of every listing in catalog order
func (r *CatalogRepository) ListListings(ctx context.Context) ([]model.Listing, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	out := make([]model.Listing, len(r.listings))
	for i, l := range r.listings {
		out[i] = copyListing(l)
	}
	return out, nil
}

// GetListing returns a single listing by id
func (r *CatalogRepository) GetListing(ctx context.Context, id string) (*model.Listing, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	idx, ok := r.byID[id]
	if !ok {
		return nil, ErrNotFound
	}
	l := copyListing(r.listings[idx])
	return &l, nil
}

// Len returns the number of listings in the catalog
func (r *CatalogRepository) Len() int {
	return len(r.listings)
}

func copyListing(l model.Listing) model.Listing {
	if l.Amenities != nil {
		l.Amenities = append(model.JSONArray(nil), l.Amenities...)
	}
	if l.Images != nil {
		l.Images = append(model.JSONArray(nil), l.Images...)
	}
	return l
}
