package config

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func clearEnv(t *testing.T, keys ...string) {
	for _, key := range keys {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t, "APP_PORT", "STORE_DRIVER", "DB_FILE", "CREATE_IF_MISSING", "UPLOAD_DIR",
		"UPLOAD_URL_PREFIX", "NATS_URL", "HASH_PASSWORDS", "JWT_EXPIRATION_HOURS")

	cfg := Load()

	assert.Equal(t, "3000", cfg.AppPort)
	assert.Equal(t, "file", cfg.StoreDriver)
	assert.Equal(t, "db.json", cfg.DBFile)
	assert.True(t, cfg.CreateIfMissing)
	assert.Equal(t, "uploads", cfg.UploadDir)
	assert.Equal(t, "/uploads", cfg.UploadURLPrefix)
	assert.Equal(t, "", cfg.NatsURL)
	assert.False(t, cfg.HashPasswords)
	assert.Equal(t, 24, cfg.JWTExpirationHours)
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("APP_PORT", "8081")
	t.Setenv("STORE_DRIVER", "sqlite")
	t.Setenv("CREATE_IF_MISSING", "false")
	t.Setenv("HASH_PASSWORDS", "true")
	t.Setenv("DB_MAX_OPEN_CONNS", "7")

	cfg := Load()

	assert.Equal(t, "8081", cfg.AppPort)
	assert.Equal(t, "sqlite", cfg.StoreDriver)
	assert.False(t, cfg.CreateIfMissing)
	assert.True(t, cfg.HashPasswords)
	assert.Equal(t, 7, cfg.DBMaxOpenConns)
}

func TestLoadInvalidValuesFallBack(t *testing.T) {
	t.Setenv("JWT_EXPIRATION_HOURS", "soon")
	t.Setenv("HASH_PASSWORDS", "maybe")

	cfg := Load()

	assert.Equal(t, 24, cfg.JWTExpirationHours)
	assert.False(t, cfg.HashPasswords)
}
