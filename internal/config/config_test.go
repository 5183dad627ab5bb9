package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("CATALOG_SOURCE", "")
	t.Setenv("SERVER_PORT", "")
	t.Setenv("DATABASE_URL", "")
	t.Setenv("POSTGRESQL_URI", "")
	t.Setenv("PG_DSN", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, SourceFile, cfg.Catalog.Source)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, []string{"*"}, cfg.Server.AllowedOrigins)
	assert.Equal(t, 12, cfg.Search.DefaultPageSize)
	assert.Contains(t, cfg.GetPostgreSQLDSN(), "dbname=rentals")
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("CATALOG_SOURCE", SourcePostgres)
	t.Setenv("SERVER_PORT", "not-a-number")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://rent.example.com, https://admin.example.com ,")
	t.Setenv("DATABASE_URL", "postgres://u:p@db:5432/rentals")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, SourcePostgres, cfg.Catalog.Source)
	assert.Equal(t, 8080, cfg.Server.Port, "invalid integers fall back to the default")
	assert.Equal(t, []string{"https://rent.example.com", "https://admin.example.com"}, cfg.Server.AllowedOrigins)
	assert.Equal(t, "postgres://u:p@db:5432/rentals", cfg.GetPostgreSQLDSN())
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			Catalog: CatalogConfig{Source: SourceFile, Path: "data/listings.yaml"},
			Search:  SearchConfig{DefaultPageSize: 10, MaxPageSize: 50},
		}
	}

	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr bool
	}{
		{name: "valid", mutate: func(c *Config) {}},
		{name: "postgres without path", mutate: func(c *Config) { c.Catalog = CatalogConfig{Source: SourcePostgres} }},
		{name: "unknown source", mutate: func(c *Config) { c.Catalog.Source = "mongo" }, wantErr: true},
		{name: "file without path", mutate: func(c *Config) { c.Catalog.Path = "" }, wantErr: true},
		{name: "zero page size", mutate: func(c *Config) { c.Search.DefaultPageSize = 0 }, wantErr: true},
		{name: "default above max", mutate: func(c *Config) { c.Search.DefaultPageSize = 80 }, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
