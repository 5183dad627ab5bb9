package main

import (
	"fmt"

	"rentals/internal/config"
	"rentals/internal/model"
	"rentals/internal/repository"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

func newValidateCmd() *cobra.Command {
	var catalogPath string

	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Check a catalog file against the listing schema",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			repo, err := repository.LoadCatalogFile(catalogPath)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s: %d listings OK\n", catalogPath, repo.Len())
			return nil
		},
	}
	cmd.Flags().StringVar(&catalogPath, "catalog", defaultCatalog, "catalog file (YAML or JSON)")
	return cmd
}

func newImportCmd() *cobra.Command {
	var catalogPath string

	cmd := &cobra.Command{
		Use:   "import",
		Short: "Upsert a catalog file into PostgreSQL",
		Long:  "Upsert a catalog file into PostgreSQL. The connection is configured with the same environment variables as the server (DATABASE_URL or PG_*).",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			listings, err := loadListings(cmd, catalogPath)
			if err != nil {
				return err
			}

			cfg, err := config.Load()
			if err != nil {
				return err
			}
			repo, err := repository.NewPostgresRepository(cfg.GetPostgreSQLDSN(), cfg.PostgreSQL.MaxConnections, cfg.PostgreSQL.MaxIdleConnections)
			if err != nil {
				return err
			}
			defer repo.Close()

			if err := repo.EnsureSchema(cmd.Context()); err != nil {
				return err
			}
			n, err := repo.UpsertListings(cmd.Context(), listings)
			if err != nil {
				return err
			}
			log.Info().Int("listings", n).Str("catalog", catalogPath).Msg("catalog imported")
			fmt.Fprintf(cmd.OutOrStdout(), "imported %d listings\n", n)
			return nil
		},
	}
	cmd.Flags().StringVar(&catalogPath, "catalog", defaultCatalog, "catalog file (YAML or JSON)")
	return cmd
}

func loadListings(cmd *cobra.Command, path string) ([]model.Listing, error) {
	repo, err := repository.LoadCatalogFile(path)
	if err != nil {
		return nil, err
	}
	return repo.ListListings(cmd.Context())
}
