package model

import "math"

// Property types offered in the listing forms
const (
	PropertyTypeApartment        = "Apartment"
	PropertyTypeSingleRoom       = "Single Room"
	PropertyTypeSharedRoom       = "Shared Room"
	PropertyTypePG               = "PG"
	PropertyTypeIndependentHouse = "Independent House"
)

// Gender preferences a landlord can set on a listing
const (
	GenderMale         = "Male"
	GenderFemale       = "Female"
	GenderFamily       = "Family"
	GenderNoPreference = "No Preference"
)

// BedroomsFivePlus is the open-ended bedroom bucket
const BedroomsFivePlus = "5+"

// BedroomBuckets is the fixed bedroom vocabulary, "" meaning any
var BedroomBuckets = []string{"", "1", "2", "3", "4", BedroomsFivePlus}

// PropertyTypes lists the known property types in display order
var PropertyTypes = []string{
	PropertyTypeApartment,
	PropertyTypeSingleRoom,
	PropertyTypeSharedRoom,
	PropertyTypePG,
	PropertyTypeIndependentHouse,
}

// GenderPreferences lists the known gender preferences in display order
var GenderPreferences = []string{
	GenderMale,
	GenderFemale,
	GenderFamily,
	GenderNoPreference,
}

// PriceRange is an inclusive monthly rent range
type PriceRange struct {
	Min float64 `json:"min" form:"min_price"`
	Max float64 `json:"max" form:"max_price"`
}

// DefaultPriceRange returns the widest allowed range
func DefaultPriceRange() PriceRange {
	return PriceRange{Min: 0, Max: math.MaxFloat64}
}

// IsDefault reports whether the range places no restriction on price
func (p PriceRange) IsDefault() bool {
	return p.Min <= 0 && p.Max == math.MaxFloat64
}

// FilterCriteria is the active query built from the filter controls.
// Every field has an inactive value: "" for strings, an empty amenity list,
// and DefaultPriceRange for the price.
type FilterCriteria struct {
	SearchText       string     `json:"search_text"`
	PropertyType     string     `json:"property_type"`
	GenderPreference string     `json:"gender_preference"`
	Bedrooms         string     `json:"bedrooms" binding:"omitempty,oneof=1 2 3 4 5+"`
	PriceRange       PriceRange `json:"price_range"`
	Amenities        []string   `json:"amenities"`
}

// NewFilterCriteria returns criteria with every filter inactive
func NewFilterCriteria() *FilterCriteria {
	return &FilterCriteria{PriceRange: DefaultPriceRange()}
}
