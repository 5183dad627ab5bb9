// Package filter narrows a listing collection by the criteria chosen in the
// search controls. It is a pure function of its inputs: no I/O, no state,
// and input records are never modified.
package filter

import (
	"errors"
	"strconv"
	"strings"

	"rentals/internal/model"

	"golang.org/x/text/cases"
)

// ErrNilCriteria is returned when FilterProperties is called without criteria
var ErrNilCriteria = errors.New("filter: criteria is nil")

// Criterion names, as reported by Active
const (
	CriterionText         = "text"
	CriterionPropertyType = "property_type"
	CriterionGender       = "gender_preference"
	CriterionBedrooms     = "bedrooms"
	CriterionPrice        = "price"
	CriterionAmenities    = "amenities"
)

// predicate tests one listing against one active criterion
type predicate func(l *model.Listing) bool

// FilterProperties returns the listings that satisfy every active criterion,
// in input order. The result is always a new slice.
func FilterProperties(records []model.Listing, criteria *model.FilterCriteria) ([]model.Listing, error) {
	if criteria == nil {
		return nil, ErrNilCriteria
	}

	preds := compile(criteria)
	out := make([]model.Listing, 0, len(records))
	for i := range records {
		if matchAll(&records[i], preds) {
			out = append(out, records[i])
		}
	}
	return out, nil
}

// Matches reports whether a single listing satisfies the criteria
func Matches(l *model.Listing, criteria *model.FilterCriteria) bool {
	if l == nil || criteria == nil {
		return false
	}
	return matchAll(l, compile(criteria))
}

// Active returns the names of the criteria that will restrict results
func Active(criteria *model.FilterCriteria) []string {
	if criteria == nil {
		return nil
	}
	var names []string
	if strings.TrimSpace(criteria.SearchText) != "" {
		names = append(names, CriterionText)
	}
	if criteria.PropertyType != "" {
		names = append(names, CriterionPropertyType)
	}
	if criteria.GenderPreference != "" {
		names = append(names, CriterionGender)
	}
	if criteria.Bedrooms != "" {
		names = append(names, CriterionBedrooms)
	}
	if !criteria.PriceRange.IsDefault() {
		names = append(names, CriterionPrice)
	}
	if len(criteria.Amenities) > 0 {
		names = append(names, CriterionAmenities)
	}
	return names
}

func matchAll(l *model.Listing, preds []predicate) bool {
	for _, p := range preds {
		if !p(l) {
			return false
		}
	}
	return true
}

// compile builds the predicate list for the active criteria. Price is always
// evaluated since its inactive value is simply the widest range.
func compile(c *model.FilterCriteria) []predicate {
	preds := make([]predicate, 0, 6)
	if text := strings.TrimSpace(c.SearchText); text != "" {
		preds = append(preds, textPredicate(text))
	}
	if c.PropertyType != "" {
		preds = append(preds, propertyTypePredicate(c.PropertyType))
	}
	if c.GenderPreference != "" {
		preds = append(preds, genderPredicate(c.GenderPreference))
	}
	if c.Bedrooms != "" {
		preds = append(preds, bedroomsPredicate(c.Bedrooms))
	}
	preds = append(preds, pricePredicate(c.PriceRange))
	if len(c.Amenities) > 0 {
		preds = append(preds, amenitiesPredicate(c.Amenities))
	}
	return preds
}

// Listing fields searched by the text criterion
const (
	FieldLocation = "location"
	FieldTitle    = "title"
)

// MatchedTextFields returns the fields of l whose case-folded value contains
// text, location first. Blank text matches no field.
func MatchedTextFields(l *model.Listing, text string) []string {
	text = strings.TrimSpace(text)
	if l == nil || text == "" {
		return nil
	}
	folder := cases.Fold()
	needle := folder.String(text)
	var fields []string
	if containsFolded(folder, l.Location, needle) {
		fields = append(fields, FieldLocation)
	}
	if containsFolded(folder, l.Title, needle) {
		fields = append(fields, FieldTitle)
	}
	return fields
}

// textPredicate matches a case-folded substring of location or title.
// A Caser keeps state, so each predicate owns its own.
func textPredicate(text string) predicate {
	folder := cases.Fold()
	needle := folder.String(text)
	return func(l *model.Listing) bool {
		return containsFolded(folder, l.Location, needle) || containsFolded(folder, l.Title, needle)
	}
}

func containsFolded(folder cases.Caser, value, needle string) bool {
	return value != "" && strings.Contains(folder.String(value), needle)
}

func propertyTypePredicate(want string) predicate {
	return func(l *model.Listing) bool {
		return l.PropertyType == want
	}
}

func genderPredicate(want string) predicate {
	return func(l *model.Listing) bool {
		return l.GenderPreference == want
	}
}

// bedroomsPredicate handles the "5+" bucket as a lower bound; any other bucket
// is an exact count. A bucket that is not a number matches nothing.
func bedroomsPredicate(bucket string) predicate {
	if bucket == model.BedroomsFivePlus {
		return func(l *model.Listing) bool {
			return l.Bedrooms >= 5
		}
	}
	n, err := strconv.Atoi(bucket)
	if err != nil {
		return func(*model.Listing) bool { return false }
	}
	return func(l *model.Listing) bool {
		return l.Bedrooms == n
	}
}

// pricePredicate is inclusive on both ends; an inverted range matches nothing
func pricePredicate(r model.PriceRange) predicate {
	return func(l *model.Listing) bool {
		return l.Price >= r.Min && l.Price <= r.Max
	}
}

// amenitiesPredicate requires every wanted tag to be present on the listing
func amenitiesPredicate(wanted []string) predicate {
	required := make([]string, len(wanted))
	copy(required, wanted)
	return func(l *model.Listing) bool {
		for _, tag := range required {
			if !l.HasAmenity(tag) {
				return false
			}
		}
		return true
	}
}
