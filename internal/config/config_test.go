package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testConfig = `
application:
  env: development
  host: 127.0.0.1
  port: 9000
db:
  host: db
  port: 5432
  name: ecomdb
  username: ecom
  password: secret
  max_connections: 20
cache:
  host: cache
  port: 6380
cors:
  allowed_origins:
    - http://shop.local
`

func writeConfig(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	err := os.WriteFile(filepath.Join(dir, "catalog-test.yaml"), []byte(testConfig), 0o600)
	require.NoError(t, err)
	return dir
}

func TestInitConfig(t *testing.T) {
	tests := []struct {
		name     string
		env      map[string]string
		expected func(t *testing.T, cfg Config)
	}{
		{
			name: "given config file should read every section",
			expected: func(t *testing.T, cfg Config) {
				assert.Equal(t, "127.0.0.1", cfg.Application.Host)
				assert.Equal(t, 9000, cfg.Application.Port)
				assert.Equal(t, int32(20), cfg.Database.MaxConnections)
				assert.Equal(t, int32(1), cfg.Database.MinConnections)
				assert.Equal(t, "postgres://ecom:secret@db:5432/ecomdb?sslmode=disable", cfg.Database.ConnString())
				assert.Equal(t, uint16(6380), cfg.Cache.Port)
				assert.Equal(t, []string{"http://shop.local"}, cfg.Cors.AllowedOrigins)
			},
		},
		{
			name: "given DATABASE_URL REDIS_URL and ALLOWED_ORIGINS should override file",
			env: map[string]string{
				"DATABASE_URL":    "postgresql://ecom:ecom_pass123@db:5432/ecomdb",
				"REDIS_URL":       "redis://redis:6379",
				"ALLOWED_ORIGINS": "http://localhost:3000, http://shop.local",
			},
			expected: func(t *testing.T, cfg Config) {
				assert.Equal(t, "postgresql://ecom:ecom_pass123@db:5432/ecomdb", cfg.Database.ConnString())
				assert.Equal(t, "redis://redis:6379", cfg.Cache.URL)
				assert.Equal(t, []string{"http://localhost:3000", "http://shop.local"}, cfg.Cors.AllowedOrigins)
			},
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			for k, v := range test.env {
				t.Setenv(k, v)
			}
			dir := writeConfig(t)

			cfg, err := InitConfig(context.Background(), "catalog-test", dir)

			require.NoError(t, err)
			test.expected(t, cfg)
		})
	}
}

func TestInitConfigWithoutFile(t *testing.T) {
	cfg, err := InitConfig(context.Background(), "missing", t.TempDir())

	require.NoError(t, err)
	assert.Equal(t, 8000, cfg.Application.Port)
	assert.Equal(t, int32(10), cfg.Database.MaxConnections)
	assert.Equal(t, "file://migrations", cfg.Database.MigrationPath)
}
