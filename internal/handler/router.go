package handler

import (
	"net/http"

	"rentals/internal/config"
	"rentals/internal/middleware"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// BuildInfo is reported by the health and version endpoints
type BuildInfo struct {
	Version   string
	BuildTime string
	GitCommit string
}

// NewRouter wires middleware and API routes onto a new gin engine
func NewRouter(searchService Searcher, server config.ServerConfig, build BuildInfo, logger zerolog.Logger) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogger(logger))
	router.Use(middleware.SecurityHeaders())

	corsConfig := cors.DefaultConfig()
	if len(server.AllowedOrigins) == 0 || (len(server.AllowedOrigins) == 1 && server.AllowedOrigins[0] == "*") {
		corsConfig.AllowAllOrigins = true
	} else {
		corsConfig.AllowOrigins = server.AllowedOrigins
	}
	if len(server.AllowedMethods) > 0 {
		corsConfig.AllowMethods = server.AllowedMethods
	}
	if len(server.AllowedHeaders) > 0 {
		corsConfig.AllowHeaders = server.AllowedHeaders
	}
	corsConfig.ExposeHeaders = []string{middleware.RequestIDHeader}
	router.Use(cors.New(corsConfig))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":     "healthy",
			"service":    "rental-listing-search",
			"version":    build.Version,
			"build_time": build.BuildTime,
			"git_commit": build.GitCommit,
		})
	})

	router.GET("/version", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"version":    build.Version,
			"build_time": build.BuildTime,
			"git_commit": build.GitCommit,
		})
	})

	searchHandler := NewSearchHandler(searchService)
	feedbackHandler := NewFeedbackHandler(searchService)

	apiV1 := router.Group("/api/v1")
	{
		apiV1.POST("/search", searchHandler.Search)
		apiV1.GET("/listings", searchHandler.ListListings)
		apiV1.GET("/listings/:id", searchHandler.GetListing)
		apiV1.GET("/filters", searchHandler.FilterOptions)
		apiV1.POST("/feedback", feedbackHandler.Submit)
	}

	return router
}
