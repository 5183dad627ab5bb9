package main

import (
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// setupStaticFiles serves the catalog UI build from STATIC_DIR when present
func setupStaticFiles(router *gin.Engine, logger zerolog.Logger) {
	dir := os.Getenv("STATIC_DIR")
	if dir == "" {
		dir = "./web/dist"
	}

	if info, err := os.Stat(dir); err != nil || !info.IsDir() {
		logger.Info().Str("dir", dir).Msg("no frontend build found, serving API only")
		router.NoRoute(func(c *gin.Context) {
			if strings.HasPrefix(c.Request.URL.Path, "/api") {
				c.JSON(http.StatusNotFound, gin.H{"error": "API endpoint not found"})
				return
			}
			c.JSON(http.StatusOK, gin.H{
				"message": "Frontend is running separately",
				"hint":    "Build the UI into " + dir + " or set STATIC_DIR",
			})
		})
		return
	}

	logger.Info().Str("dir", dir).Msg("serving frontend assets")
	fileServer := http.FileServer(http.Dir(dir))
	router.NoRoute(func(c *gin.Context) {
		if strings.HasPrefix(c.Request.URL.Path, "/api") {
			c.JSON(http.StatusNotFound, gin.H{"error": "API endpoint not found"})
			return
		}
		// Unknown paths fall back to index.html for client-side routing
		clean := path.Clean("/" + c.Request.URL.Path)
		if _, err := os.Stat(filepath.Join(dir, filepath.FromSlash(clean))); err != nil {
			c.File(filepath.Join(dir, "index.html"))
			return
		}
		fileServer.ServeHTTP(c.Writer, c.Request)
	})
}
