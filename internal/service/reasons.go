package service

import (
	"rentals/internal/filter"
	"rentals/internal/model"
)

// Match reason constants
const (
	ReasonLocationMatch     = "Location match"
	ReasonTitleMatch        = "Title match"
	ReasonPropertyTypeMatch = "Property type match"
	ReasonGenderMatch       = "Gender preference match"
	ReasonBedroomsMatch     = "Bedrooms match"
	ReasonPriceMatch        = "Price within budget"
	ReasonAmenitiesMatch    = "All amenities available"
	ReasonVerifiedOwner     = "Verified owner"
	ReasonGeneralMatch      = "General match"
)

var textFieldReasons = map[string]string{
	filter.FieldLocation: ReasonLocationMatch,
	filter.FieldTitle:    ReasonTitleMatch,
}

var criterionReasons = map[string]string{
	filter.CriterionPropertyType: ReasonPropertyTypeMatch,
	filter.CriterionGender:       ReasonGenderMatch,
	filter.CriterionBedrooms:     ReasonBedroomsMatch,
	filter.CriterionPrice:        ReasonPriceMatch,
	filter.CriterionAmenities:    ReasonAmenitiesMatch,
}

// Annotator explains why listings appear in a result set. It never reorders
// results; the filter's order is the display order.
type Annotator struct{}

// NewAnnotator creates a new annotator
func NewAnnotator() *Annotator {
	return &Annotator{}
}

// Annotate wraps filtered listings with human-readable match reasons
func (a *Annotator) Annotate(listings []model.Listing, criteria *model.FilterCriteria) []model.ListingSearchResult {
	active := filter.Active(criteria)
	var text string
	if criteria != nil {
		text = criteria.SearchText
	}
	results := make([]model.ListingSearchResult, 0, len(listings))
	for _, l := range listings {
		results = append(results, model.ListingSearchResult{
			Listing:        l,
			MatchedReasons: a.reasons(&l, text, active),
		})
	}
	return results
}

func (a *Annotator) reasons(l *model.Listing, text string, active []string) []string {
	reasons := make([]string, 0, len(active)+2)
	for _, name := range active {
		if name == filter.CriterionText {
			for _, field := range filter.MatchedTextFields(l, text) {
				reasons = append(reasons, textFieldReasons[field])
			}
			continue
		}
		if reason, ok := criterionReasons[name]; ok {
			reasons = append(reasons, reason)
		}
	}
	if l.Verified {
		reasons = append(reasons, ReasonVerifiedOwner)
	}
	if len(reasons) == 0 {
		reasons = append(reasons, ReasonGeneralMatch)
	}
	return reasons
}
