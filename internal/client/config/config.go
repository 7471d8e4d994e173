package config

import "time"

// Config holds runtime settings for authctl.
//
// Fields:
//   - ServerURL: public base URL of the login API, e.g.
//     "http://localhost:8080/login/rest/".
//   - RequestTimeout: per-request timeout of the HTTP client.
//   - SessionDir: directory, relative to the working directory, where the
//     current session is kept between invocations.
type Config struct {
	ServerURL      string
	RequestTimeout time.Duration
	SessionDir     string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.ServerURL = "http://localhost:8080/login/rest/"
	c.RequestTimeout = 10 * time.Second
	c.SessionDir = ".authctl"
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// JSON (if present) and command-line flags (if present). Later sources take
// precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
