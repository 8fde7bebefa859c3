package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mapLookup(m map[string]string) lookupFunc {
	return func(key string) (string, bool) {
		v, ok := m[key]
		return v, ok
	}
}

func TestParseEnv(t *testing.T) {
	dotenv := filepath.Join(t.TempDir(), "test.env")
	require.NoError(t, os.WriteFile(dotenv, []byte(
		"EXPENSES_GOOGLE_CLIENT_ID=from-file\nEXPENSES_API_BASE_URL=http://file\nEXPENSES_S3_BUCKET=pdfs\n"), 0o600))

	cfg := &Config{}
	cfg.LoadDefaults()

	err := parseEnv(cfg, []string{"-env", dotenv}, mapLookup(map[string]string{
		EnvAPIBaseURL:     "http://process",
		EnvRequestTimeout: "3s",
		EnvLogLevel:       "",
	}))
	require.NoError(t, err)

	assert.Equal(t, "http://process", cfg.APIBaseURL, "process environment wins over dotenv")
	assert.Equal(t, "from-file", cfg.IdentityClientID)
	assert.Equal(t, "pdfs", cfg.S3.Bucket)
	assert.Equal(t, 3*time.Second, cfg.RequestTimeout)
	assert.Equal(t, "info", cfg.LogLevel, "empty values are ignored")
}

func TestParseEnv_MissingExplicitFile(t *testing.T) {
	err := parseEnv(&Config{}, []string{"-env", filepath.Join(t.TempDir(), "nope.env")}, mapLookup(nil))
	require.Error(t, err)
}

func TestParseEnv_BadDuration(t *testing.T) {
	err := parseEnv(&Config{}, nil, mapLookup(map[string]string{EnvRequestTimeout: "soon"}))
	require.Error(t, err)
}
