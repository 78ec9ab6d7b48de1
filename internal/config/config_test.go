package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func lookupFrom(m map[string]string) func(string) (string, bool) {
	return func(k string) (string, bool) {
		v, ok := m[k]
		return v, ok
	}
}

func TestConfig_EnvOverridesAndDefaults(t *testing.T) {
	cfg := &Config{Port: "8080"}
	cfg.applyEnv(lookupFrom(map[string]string{
		"DB_HOST":              "db",
		"DB_NAME":              "workforce",
		"JWT_SECRET":           "s3cret",
		"CORS_ALLOWED_ORIGINS": "http://a.test, http://b.test,,",
	}))

	assert.NoError(t, cfg.validateAndNormalize())
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "5432", cfg.Database.Port)
	assert.Equal(t, "disable", cfg.Database.SSLMode)
	assert.Equal(t, DefaultTokenTTL, cfg.TokenTTL)
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.CORSOrigins)
	assert.False(t, cfg.IsProduction())
}

func TestConfig_Validation(t *testing.T) {
	t.Run("missing secret", func(t *testing.T) {
		cfg := &Config{Database: DatabaseConfig{Host: "db", Name: "x"}}
		assert.ErrorContains(t, cfg.validateAndNormalize(), "JWT_SECRET")
	})

	t.Run("bad ttl", func(t *testing.T) {
		cfg := &Config{JWTSecret: "s", TokenTTLRaw: "soon", Database: DatabaseConfig{Host: "db", Name: "x"}}
		assert.ErrorContains(t, cfg.validateAndNormalize(), "TOKEN_TTL")
	})

	t.Run("custom ttl", func(t *testing.T) {
		cfg := &Config{JWTSecret: "s", TokenTTLRaw: "1h", Database: DatabaseConfig{Host: "db", Name: "x"}}
		assert.NoError(t, cfg.validateAndNormalize())
		assert.Equal(t, time.Hour, cfg.TokenTTL)
	})
}

func TestLoad_YAMLFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "local.yaml")
	content := []byte("port: \"9090\"\njwt_secret: from-file\ndatabase:\n  host: yaml-db\n  name: wf\n")
	assert.NoError(t, os.WriteFile(path, content, 0o600))

	for _, k := range []string{"PORT", "DB_HOST", "DB_PORT", "DB_USER", "DB_PASSWORD", "DB_NAME", "DB_SSLMODE"} {
		t.Setenv(k, "")
	}
	t.Setenv("CONFIG_FILE", path)
	t.Setenv("JWT_SECRET", "from-env")

	cfg, err := Load()
	assert.NoError(t, err)
	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, "yaml-db", cfg.Database.Host)
	assert.Equal(t, "from-env", cfg.JWTSecret)
	assert.Equal(t, "pgx5://:@yaml-db:5432/wf?sslmode=disable", cfg.Database.URL())
}
