package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/studylog")
	t.Setenv("JWT_SECRET", "secret")

	cfg := Load()
	assert.Equal(t, "postgres://localhost/studylog", cfg.DatabaseURL)
	assert.Equal(t, "studylog", cfg.JWTIssuer)
	assert.Equal(t, int64(86400), cfg.TokenTTLSeconds)
	assert.Equal(t, 10, cfg.BcryptCost)
	assert.Equal(t, 7, cfg.LogRetentionDays)
	assert.Nil(t, cfg.CorsOrigins)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/studylog")
	t.Setenv("JWT_SECRET", "secret")
	t.Setenv("TOKEN_TTL_SECONDS", "3600")
	t.Setenv("BCRYPT_COST", "12")
	t.Setenv("CORS_ORIGINS", "https://app.example.com, https://staging.example.com ,")

	cfg := Load()
	assert.Equal(t, int64(3600), cfg.TokenTTLSeconds)
	assert.Equal(t, 12, cfg.BcryptCost)
	assert.Equal(t, []string{"https://app.example.com", "https://staging.example.com"}, cfg.CorsOrigins)
}

func TestLoad_BadIntFallsBack(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/studylog")
	t.Setenv("JWT_SECRET", "secret")
	t.Setenv("BCRYPT_COST", "not-a-number")

	assert.Equal(t, 10, Load().BcryptCost)
}

func TestLoad_MissingRequired(t *testing.T) {
	t.Setenv("DATABASE_URL", "")
	t.Setenv("JWT_SECRET", "secret")

	assert.Panics(t, func() { Load() })
}
