package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// Listing represents a rental property listing
type Listing struct {
	ID               string    `json:"id" db:"id"`
	Title            string    `json:"title" db:"title"`
	Location         string    `json:"location" db:"location"`
	Price            float64   `json:"price" db:"price"` // monthly rent
	PropertyType     string    `json:"property_type,omitempty" db:"property_type"`
	GenderPreference string    `json:"gender_preference,omitempty" db:"gender_preference"`
	Bedrooms         int       `json:"bedrooms" db:"bedrooms"`
	Amenities        JSONArray `json:"amenities,omitempty" db:"amenities"`

	// Payload below is carried through to clients but never inspected by the filter.
	Description string    `json:"description,omitempty" db:"description"`
	Images      JSONArray `json:"images,omitempty" db:"images"`
	OwnerName   string    `json:"owner_name,omitempty" db:"owner_name"`
	OwnerPhone  string    `json:"owner_phone,omitempty" db:"owner_phone"`
	Verified    bool      `json:"verified" db:"verified"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" db:"updated_at"`
}

// HasAmenity reports whether the listing offers the given amenity tag
func (l *Listing) HasAmenity(tag string) bool {
	for _, a := range l.Amenities {
		if a == tag {
			return true
		}
	}
	return false
}

// ListingSearchResult represents a search result with additional metadata
type ListingSearchResult struct {
	Listing
	MatchedReasons []string `json:"matched_reasons"`
}

// JSONArray represents a JSON array field
type JSONArray []string

// Value implements driver.Valuer interface
func (j JSONArray) Value() (driver.Value, error) {
	if j == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(j)
}

// Scan implements sql.Scanner interface
func (j *JSONArray) Scan(value interface{}) error {
	switch v := value.(type) {
	case nil:
		*j = nil
		return nil
	case []byte:
		return json.Unmarshal(v, j)
	case string:
		return json.Unmarshal([]byte(v), j)
	default:
		return fmt.Errorf("unsupported JSONArray source type %T", value)
	}
}
