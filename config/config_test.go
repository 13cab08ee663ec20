package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestLoadConfig_Defaults(t *testing.T) {
	for _, k := range []string{"MONGO_URI", "MONGO_GLOBAL_DB", "TENANT_DB_PREFIX", "LEGACY_TENANT_DB_PREFIX",
		"API_BASE_URL", "PORT", "JWT_SECRET", "BCRYPT_COST", "OP_TIMEOUT", "LOG_LEVEL"} {
		t.Setenv(k, "")
	}
	t.Chdir(t.TempDir())

	cfg, err := LoadConfig("")
	require.NoError(t, err)

	assert.Equal(t, "mongodb://localhost:27017", cfg.MongoURI)
	assert.Equal(t, "hrms_global", cfg.GlobalDB)
	assert.Equal(t, "tenant_", cfg.TenantPrefix)
	assert.Equal(t, "hrms_tenant_", cfg.LegacyTenantPrefix)
	assert.Equal(t, "8000", cfg.Port)
	assert.Equal(t, bcrypt.DefaultCost, cfg.BcryptCost)
	assert.Equal(t, 30*time.Second, cfg.Timeout)
	assert.Empty(t, cfg.JWTSecret)
}

func TestLoadConfig_EnvFile(t *testing.T) {
	t.Setenv("MONGO_URI", "")
	t.Setenv("OP_TIMEOUT", "")
	os.Unsetenv("MONGO_URI")
	os.Unsetenv("OP_TIMEOUT")

	path := filepath.Join(t.TempDir(), "ops.env")
	require.NoError(t, os.WriteFile(path, []byte("MONGO_URI=mongodb://db.internal:27017\nOP_TIMEOUT=5s\n"), 0o600))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "mongodb://db.internal:27017", cfg.MongoURI)
	assert.Equal(t, 5*time.Second, cfg.Timeout)
}

func TestLoadConfig_MissingEnvFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "nope.env"))
	assert.Error(t, err)
}

func TestLoadConfig_InvalidValues(t *testing.T) {
	t.Run("bcrypt cost not a number", func(t *testing.T) {
		t.Setenv("BCRYPT_COST", "high")
		_, err := LoadConfig("")
		assert.ErrorContains(t, err, "BCRYPT_COST")
	})

	t.Run("bcrypt cost out of range", func(t *testing.T) {
		t.Setenv("BCRYPT_COST", "99")
		_, err := LoadConfig("")
		assert.ErrorContains(t, err, "out of range")
	})

	t.Run("bad timeout", func(t *testing.T) {
		t.Setenv("BCRYPT_COST", "")
		t.Setenv("OP_TIMEOUT", "soon")
		_, err := LoadConfig("")
		assert.ErrorContains(t, err, "OP_TIMEOUT")
	})
}
