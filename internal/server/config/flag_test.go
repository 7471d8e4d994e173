package config

import (
	"os"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFlags(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })

	tests := []struct {
		expected    *Config
		name        string
		args        []string
		expectPanic bool
	}{
		{
			name: "all flags",
			args: []string{"cmd",
				"-a", "127.0.0.1:9090", "-g", "127.0.0.1:9091", "-p", "/auth/",
				"-k", "http://authority/rest/", "-t", "3", "-s", "secret",
				"-d", "db", "-r", "localhost:6379", "-m", "5", "-w", "2", "-l", "zap",
			},
			expected: &Config{
				EndpointAddrHTTP:  "127.0.0.1:9090",
				EndpointAddrGRPC:  "127.0.0.1:9091",
				PublicPathPrefix:  "/auth/",
				AuthorityBaseURL:  "http://authority/rest/",
				AuthorityTimeout:  3 * time.Second,
				AuthoritySecret:   "secret",
				DatabaseDSN:       "db",
				RedisAddr:         "localhost:6379",
				MaxFailedLogins:   5,
				FailedLoginWindow: 2 * time.Minute,
				LogBackend:        "zap",
			},
		},
		{
			name: "config flag is ignored",
			args: []string{"cmd", "-config", "cfg.json", "-a", ":1"},
			expected: func() *Config {
				c := &Config{}
				c.LoadDefaults()
				c.EndpointAddrHTTP = ":1"
				return c
			}(),
		},
		{
			name:        "non numeric timeout",
			args:        []string{"cmd", "-t", "soon"},
			expectPanic: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			os.Args = tt.args

			config := &Config{}
			config.LoadDefaults()

			if tt.expectPanic {
				require.Panics(t, func() { parseFlags(config) })
				return
			}

			require.NotPanics(t, func() { parseFlags(config) })
			assert.Empty(t, cmp.Diff(tt.expected, config))
		})
	}
}
