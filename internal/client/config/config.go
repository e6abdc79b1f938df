package config

import "time"

// ConfigFileEnv names the environment variable consulted for the JSON config
// path when neither -c nor -config is given.
const ConfigFileEnv = "SITEAUTH_CLI_CONFIG"

// Config holds runtime settings for the siteauth CLI.
//
// Fields:
//   - ServerURL: base URL of the siteauth HTTP API.
//   - RequestTimeout: upper bound for a single API call.
type Config struct {
	ServerURL      string
	RequestTimeout time.Duration
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.ServerURL = "http://127.0.0.1:5000"
	c.RequestTimeout = 10 * time.Second
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
