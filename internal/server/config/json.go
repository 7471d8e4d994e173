package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/authgate/internal/flagx"
	"github.com/dmitrijs2005/authgate/internal/timex"
)

// JsonConfig is the on-disk shape of the configuration file. Pointer fields
// distinguish "absent" from zero so a partial file only overrides what it
// names.
type JsonConfig struct {
	EndpointAddrHTTP  *string         `json:"endpoint_addr_http"`
	EndpointAddrGRPC  *string         `json:"endpoint_addr_grpc"`
	PublicPathPrefix  *string         `json:"public_path_prefix"`
	AuthorityBaseURL  *string         `json:"authority_base_url"`
	AuthorityTimeout  *timex.Duration `json:"authority_timeout"`
	AuthoritySecret   *string         `json:"authority_secret"`
	DatabaseDSN       *string         `json:"database_dsn"`
	RedisAddr         *string         `json:"redis_addr"`
	MaxFailedLogins   *int            `json:"max_failed_logins"`
	FailedLoginWindow *timex.Duration `json:"failed_login_window"`
	LogBackend        *string         `json:"log_backend"`
}

// parseJson overlays values from the JSON file named by -c/-config (or the
// AUTHGATE_CONFIG environment variable). Nothing happens when no file is
// named. An unreadable file or invalid JSON panics: the process must not
// start on a half-applied configuration.
func parseJson(config *Config) {
	jsonConfigFile := flagx.JsonConfigFlags()
	if jsonConfigFile == "" {
		return
	}

	file, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}

	c := &JsonConfig{}
	if err := json.Unmarshal(file, c); err != nil {
		panic(err)
	}

	c.apply(config)
}

func (c *JsonConfig) apply(config *Config) {
	setString(&config.EndpointAddrHTTP, c.EndpointAddrHTTP)
	setString(&config.EndpointAddrGRPC, c.EndpointAddrGRPC)
	setString(&config.PublicPathPrefix, c.PublicPathPrefix)
	setString(&config.AuthorityBaseURL, c.AuthorityBaseURL)
	setString(&config.AuthoritySecret, c.AuthoritySecret)
	setString(&config.DatabaseDSN, c.DatabaseDSN)
	setString(&config.RedisAddr, c.RedisAddr)
	setString(&config.LogBackend, c.LogBackend)

	if c.AuthorityTimeout != nil {
		config.AuthorityTimeout = c.AuthorityTimeout.Duration
	}
	if c.FailedLoginWindow != nil {
		config.FailedLoginWindow = c.FailedLoginWindow.Duration
	}
	if c.MaxFailedLogins != nil {
		config.MaxFailedLogins = *c.MaxFailedLogins
	}
}

func setString(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}
