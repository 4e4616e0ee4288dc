package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	t.Setenv("JWT_SECRET", "secret-for-tests")

	t.Run("defaults", func(t *testing.T) {
		cfg, err := Load()
		require.NoError(t, err)

		assert.Equal(t, "3000", cfg.Port)
		assert.Equal(t, "development", cfg.Environment)
		assert.Equal(t, 7, cfg.TokenExpirationDays)
		assert.Equal(t, int64(5<<20), cfg.MaxUploadSize)
		assert.False(t, cfg.UseCloudStorage)
		assert.False(t, cfg.IsProduction())
	})

	t.Run("overrides", func(t *testing.T) {
		t.Setenv("PORT", "9000")
		t.Setenv("ENVIRONMENT", "production")
		t.Setenv("TOKEN_EXPIRATION_DAYS", "1")
		t.Setenv("MAX_UPLOAD_SIZE_MB", "2")

		cfg, err := Load()
		require.NoError(t, err)

		assert.Equal(t, "9000", cfg.Port)
		assert.Equal(t, int64(2<<20), cfg.MaxUploadSize)
		assert.Equal(t, 1, cfg.TokenExpirationDays)
		assert.True(t, cfg.IsProduction())
	})

	t.Run("missing jwt secret", func(t *testing.T) {
		t.Setenv("JWT_SECRET", "")

		_, err := Load()
		assert.Error(t, err)
	})

	t.Run("cloud storage requires endpoint", func(t *testing.T) {
		t.Setenv("USE_CLOUD_STORAGE", "true")

		_, err := Load()
		assert.Error(t, err)
	})
}
