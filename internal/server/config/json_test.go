package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTempJSON(t *testing.T, dir, name string, data map[string]any) string {
	t.Helper()
	if dir == "" {
		dir = t.TempDir()
	}
	if name == "" {
		name = "cfg.json"
	}
	path := filepath.Join(dir, name)
	b, err := json.Marshal(data)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, b, 0o600))
	return path
}

func Test_parseJson_SourcesAndPrecedence(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })
	t.Setenv("AUTHGATE_CONFIG", "")

	dir := t.TempDir()
	pathFlag := writeTempJSON(t, dir, "flag.json", map[string]any{
		"endpoint_addr_http":  "www.example:8000",
		"endpoint_addr_grpc":  "www.example:9000",
		"public_path_prefix":  "/login/v2/",
		"authority_base_url":  "http://authority/rest/",
		"authority_timeout":   "5s",
		"authority_secret":    "my_secret_key",
		"database_dsn":        "users.db",
		"redis_addr":          "redis:6379",
		"max_failed_logins":   3,
		"failed_login_window": "1m",
		"log_backend":         "zap",
	})

	t.Run("loads from json", func(t *testing.T) {
		os.Args = []string{"testbin", "-config", pathFlag}

		cfg := &Config{}
		parseJson(cfg)

		assert.Equal(t, "www.example:8000", cfg.EndpointAddrHTTP)
		assert.Equal(t, "www.example:9000", cfg.EndpointAddrGRPC)
		assert.Equal(t, "/login/v2/", cfg.PublicPathPrefix)
		assert.Equal(t, "http://authority/rest/", cfg.AuthorityBaseURL)
		assert.Equal(t, 5*time.Second, cfg.AuthorityTimeout)
		assert.Equal(t, "my_secret_key", cfg.AuthoritySecret)
		assert.Equal(t, "users.db", cfg.DatabaseDSN)
		assert.Equal(t, "redis:6379", cfg.RedisAddr)
		assert.Equal(t, 3, cfg.MaxFailedLogins)
		assert.Equal(t, time.Minute, cfg.FailedLoginWindow)
		assert.Equal(t, "zap", cfg.LogBackend)
	})

	t.Run("env variable names the file", func(t *testing.T) {
		os.Args = []string{"testbin"}
		t.Setenv("AUTHGATE_CONFIG", pathFlag)

		cfg := &Config{}
		parseJson(cfg)

		assert.Equal(t, "www.example:8000", cfg.EndpointAddrHTTP)
	})

	t.Run("partial file keeps the rest", func(t *testing.T) {
		partial := writeTempJSON(t, dir, "partial.json", map[string]any{
			"redis_addr": "cache:6379",
		})
		os.Args = []string{"testbin", "-c", partial}

		cfg := &Config{}
		cfg.LoadDefaults()
		parseJson(cfg)

		assert.Equal(t, "cache:6379", cfg.RedisAddr)
		assert.Equal(t, ":8080", cfg.EndpointAddrHTTP)
		assert.Equal(t, 10*time.Second, cfg.AuthorityTimeout)
	})

	t.Run("no CONFIG and no flags → no changes", func(t *testing.T) {
		os.Args = []string{"testbin"}

		cfg := &Config{
			EndpointAddrHTTP: "defaults:1234",
			DatabaseDSN:      "users.db",
			AuthorityTimeout: 2 * time.Second,
		}
		parseJson(cfg)

		assert.Equal(t, "defaults:1234", cfg.EndpointAddrHTTP)
		assert.Equal(t, "users.db", cfg.DatabaseDSN)
		assert.Equal(t, 2*time.Second, cfg.AuthorityTimeout)
	})

	t.Run("invalid JSON → panics", func(t *testing.T) {
		bad := filepath.Join(dir, "bad.json")
		require.NoError(t, os.WriteFile(bad, []byte(`{ this is not valid json`), 0o600))

		os.Args = []string{"testbin", "-config", bad}

		cfg := &Config{}
		require.Panics(t, func() { parseJson(cfg) })
	})

	t.Run("missing file → panics", func(t *testing.T) {
		os.Args = []string{"testbin", "-config", filepath.Join(dir, "absent.json")}

		cfg := &Config{}
		require.Panics(t, func() { parseJson(cfg) })
	})
}
