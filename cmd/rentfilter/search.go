package main

import (
	"encoding/json"
	"fmt"

	"rentals/internal/filter"
	"rentals/internal/model"
	"rentals/internal/repository"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

const defaultCatalog = "data/listings.yaml"

func newSearchCmd() *cobra.Command {
	var (
		catalogPath string
		criteria    = model.NewFilterCriteria()
	)

	cmd := &cobra.Command{
		Use:   "search",
		Short: "Print the catalog listings matching the given filters as JSON",
		Example: `  rentfilter search -q kharar --type PG --amenity WiFi
  rentfilter search --bedrooms 5+ --min-price 20000`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !validBucket(criteria.Bedrooms) {
				return fmt.Errorf("invalid --bedrooms %q (want one of 1, 2, 3, 4, 5+)", criteria.Bedrooms)
			}

			repo, err := repository.LoadCatalogFile(catalogPath)
			if err != nil {
				return err
			}
			listings, err := repo.ListListings(cmd.Context())
			if err != nil {
				return err
			}

			matches, err := filter.FilterProperties(listings, criteria)
			if err != nil {
				return err
			}
			log.Debug().
				Strs("active", filter.Active(criteria)).
				Int("catalog", len(listings)).
				Int("matches", len(matches)).
				Msg("filtered catalog")

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(matches)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&catalogPath, "catalog", defaultCatalog, "catalog file (YAML or JSON)")
	flags.StringVarP(&criteria.SearchText, "query", "q", "", "text matched against location and title")
	flags.StringVar(&criteria.PropertyType, "type", "", "property type, e.g. Apartment, PG")
	flags.StringVar(&criteria.GenderPreference, "gender", "", "gender preference, e.g. Male, Family")
	flags.StringVar(&criteria.Bedrooms, "bedrooms", "", "bedroom bucket: 1, 2, 3, 4 or 5+")
	flags.Float64Var(&criteria.PriceRange.Min, "min-price", criteria.PriceRange.Min, "minimum monthly rent (inclusive)")
	flags.Float64Var(&criteria.PriceRange.Max, "max-price", criteria.PriceRange.Max, "maximum monthly rent (inclusive)")
	flags.StringArrayVar(&criteria.Amenities, "amenity", nil, "required amenity, repeatable")
	return cmd
}

func validBucket(bucket string) bool {
	for _, b := range model.BedroomBuckets {
		if b == bucket {
			return true
		}
	}
	return false
}
