package config

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGet_Defaults(t *testing.T) {
	for _, key := range []string{"PORT", "DB_DRIVER", "DB_PATH", "JWT_ISSUER", "COOKIE_NAME", "CSRF_ENABLED", "ADMIN_USERNAME", "ADMIN_PASSWORD"} {
		t.Setenv(key, "")
	}

	env, err := Get()
	require.NoError(t, err)

	assert.Equal(t, 8080, env.PORT)
	assert.Equal(t, "sqlite", env.DB_DRIVER)
	assert.Equal(t, "database.db", env.DB_PATH)
	assert.Equal(t, "uni-portal", env.JWT_ISSUER)
	assert.Equal(t, "portal_auth", env.COOKIE_NAME)
	assert.True(t, env.CSRF_ENABLED)
	assert.False(t, env.AdminLoginEnabled())
}

func TestGet_Overrides(t *testing.T) {
	t.Setenv("GO_ENV", "production")
	t.Setenv("PORT", "9000")
	t.Setenv("DB_DRIVER", "POSTGRES")
	t.Setenv("CSRF_ENABLED", "false")
	t.Setenv("COOKIE_SECURE", "true")
	t.Setenv("ADMIN_USERNAME", "root")
	t.Setenv("ADMIN_PASSWORD", "s3cret")

	env, err := Get()
	require.NoError(t, err)

	assert.True(t, env.IsProduction())
	assert.Equal(t, 9000, env.PORT)
	assert.Equal(t, "postgres", env.DB_DRIVER)
	assert.False(t, env.CSRF_ENABLED)
	assert.True(t, env.COOKIE_SECURE)
	assert.True(t, env.AdminLoginEnabled())
}

func TestLoadENV_MissingFileIsFine(t *testing.T) {
	t.Setenv("GO_ENV", "")
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(t.TempDir()))
	t.Cleanup(func() { _ = os.Chdir(wd) })
	assert.NoError(t, LoadENV())
}
