package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"rentals/internal/config"
	"rentals/internal/handler"
	"rentals/internal/logging"
	"rentals/internal/repository"
	"rentals/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	logger := logging.Init(cfg.Logging, "rental-listing-search", Version)
	logger.Info().
		Str("build_time", BuildTime).
		Str("git_commit", GitCommit).
		Msg("starting rental listing search")

	gin.SetMode(cfg.Server.GinMode)

	source, searchLog, closeSource, err := openSource(cfg, logger)
	if err != nil {
		logger.Fatal().Err(err).Str("source", cfg.Catalog.Source).Msg("failed to open listing source")
	}
	defer closeSource()

	searchService := service.NewSearchService(source, searchLog, service.NewAnnotator(), cfg.Search, logger)
	router := handler.NewRouter(searchService, cfg.Server, handler.BuildInfo{
		Version:   Version,
		BuildTime: BuildTime,
		GitCommit: GitCommit,
	}, logger)

	// This function is implemented in static.go
	setupStaticFiles(router, logger)

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info().Str("addr", addr).Msg("server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal().Err(err).Msg("failed to start server")
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info().Msg("shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Server.ShutdownTimeout)*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error().Err(err).Msg("server shutdown did not complete")
	}
	searchService.Wait()
	logger.Info().Msg("server stopped")
}

// openSource builds the configured listing source and the matching search log
func openSource(cfg *config.Config, logger zerolog.Logger) (repository.ListingSource, repository.SearchLogger, func(), error) {
	switch cfg.Catalog.Source {
	case config.SourcePostgres:
		repo, err := repository.NewPostgresRepository(
			cfg.GetPostgreSQLDSN(),
			cfg.PostgreSQL.MaxConnections,
			cfg.PostgreSQL.MaxIdleConnections,
		)
		if err != nil {
			return nil, nil, nil, err
		}
		if err := repo.EnsureSchema(context.Background()); err != nil {
			repo.Close()
			return nil, nil, nil, err
		}
		logger.Info().Msg("connected to PostgreSQL")
		return repo, repo, func() { repo.Close() }, nil
	default:
		repo, err := repository.LoadCatalogFile(cfg.Catalog.Path)
		if err != nil {
			return nil, nil, nil, err
		}
		logger.Info().Str("path", cfg.Catalog.Path).Int("listings", repo.Len()).Msg("loaded listing catalog")
		return repo, repository.NewEventLogger(logger), func() {}, nil
	}
}
