package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDuration(t *testing.T) {
	cases := map[string]time.Duration{
		"7d":  7 * 24 * time.Hour,
		"0d":  0,
		"90m": 90 * time.Minute,
		"1h":  time.Hour,
	}
	for in, want := range cases {
		got, err := ParseDuration(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}
	for _, bad := range []string{"d", "-2d", "7 days", ""} {
		_, err := ParseDuration(bad)
		assert.Error(t, err, bad)
	}
}

func TestFromEnvDefaults(t *testing.T) {
	for _, k := range []string{"HTTP_ADDR", "PORT", "JWT_SECRET", "JWT_EXPIRES_IN", "FRONTEND_URL",
		"REDIS_ADDR", "REDIS_DB", "CACHE_TTL", "REQUEST_TIMEOUT", "DB_DRIVER", "SEED_ON_START", "UPLOAD_DIR"} {
		t.Setenv(k, "")
	}
	c, err := FromEnv()
	require.NoError(t, err)
	assert.Equal(t, ":5000", c.HTTPAddr)
	assert.Equal(t, "sqlite", c.DBDriver)
	assert.Equal(t, "secret", c.JWTSecret)
	assert.Equal(t, 7*24*time.Hour, c.JWTExpiresIn)
	assert.Equal(t, []string{"http://localhost:5173"}, c.CORSOrigins)
	assert.Equal(t, 10*time.Minute, c.CacheTTL)
	assert.Equal(t, 30*time.Second, c.RequestTimeout)
	assert.Empty(t, c.RedisAddr)
	assert.False(t, c.SeedOnStart)
}

func TestFromEnvOverrides(t *testing.T) {
	t.Setenv("HTTP_ADDR", "")
	t.Setenv("PORT", "8088")
	t.Setenv("FRONTEND_URL", "https://a.example, https://b.example")
	t.Setenv("JWT_EXPIRES_IN", "12h")
	t.Setenv("SEED_ON_START", "true")
	t.Setenv("REDIS_DB", "3")

	c, err := FromEnv()
	require.NoError(t, err)
	assert.Equal(t, ":8088", c.HTTPAddr)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, c.CORSOrigins)
	assert.Equal(t, 12*time.Hour, c.JWTExpiresIn)
	assert.True(t, c.SeedOnStart)
	assert.Equal(t, 3, c.RedisDB)

	t.Setenv("CACHE_TTL", "soon")
	_, err = FromEnv()
	assert.Error(t, err)
}

func TestLoadDotEnv(t *testing.T) {
	require.NoError(t, LoadDotEnv(filepath.Join(t.TempDir(), "missing.env")))

	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("EDUVATE_TEST_KEY=from-file\n"), 0o600))
	t.Setenv("EDUVATE_TEST_KEY", "")
	os.Unsetenv("EDUVATE_TEST_KEY")
	require.NoError(t, LoadDotEnv(path))
	assert.Equal(t, "from-file", os.Getenv("EDUVATE_TEST_KEY"))
}
