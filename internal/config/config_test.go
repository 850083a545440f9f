package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	cfg := Load()

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "foodrescue", cfg.MongoDB)
	assert.Equal(t, "foodrescue-bucket", cfg.MinioBucket)
	assert.False(t, cfg.MinioUseSSL)
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("MONGO_DB", "foodrescue_test")
	t.Setenv("MINIO_USE_SSL", "true")
	t.Setenv("PUBLIC_BASE_URL", "https://storage.googleapis.com")

	cfg := Load()

	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, "foodrescue_test", cfg.MongoDB)
	assert.True(t, cfg.MinioUseSSL)
	assert.Equal(t, "https://storage.googleapis.com", cfg.PublicBaseURL)
}
