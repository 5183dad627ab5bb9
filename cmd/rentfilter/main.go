// Command rentfilter filters a listing catalog from the command line and
// manages the catalog stored in PostgreSQL.
package main

import (
	"os"

	"rentals/internal/config"
	"rentals/internal/logging"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

var version = "dev"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var logLevel string

	root := &cobra.Command{
		Use:          "rentfilter",
		Short:        "Search and manage rental listing catalogs",
		Version:      version,
		SilenceUsage: true,
	}
	root.PersistentPreRun = func(cmd *cobra.Command, args []string) {
		logging.InitWithWriter(config.LoggingConfig{Level: logLevel, Format: "console"}, "rentfilter", version, cmd.ErrOrStderr())
	}
	root.PersistentFlags().StringVar(&logLevel, "log-level", zerolog.WarnLevel.String(), "log level (debug, info, warn, error)")

	root.AddCommand(newSearchCmd(), newValidateCmd(), newImportCmd())
	return root
}
