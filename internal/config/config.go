// Package config holds runtime settings for the passvault CLI and loads
// them from defaults, an optional JSON file, and command-line flags, in
// that order; later sources take precedence.
package config

import "time"

// Config holds runtime settings.
//
// Fields:
//   - VaultDir: directory for the local vault files; empty means the
//     default ~/.passvault, resolved at startup.
//   - RemoteEndpointURL: the remote vault's GraphQL endpoint.
//   - AuthTokenURL: the OAuth-style token endpoint used for login and
//     token refresh.
//   - HTTPTimeout: per-request safety-net timeout for all remote calls.
type Config struct {
	VaultDir          string
	RemoteEndpointURL string
	AuthTokenURL      string
	HTTPTimeout       time.Duration
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.VaultDir = ""
	c.RemoteEndpointURL = "https://vault.passvault.dev/api/graphql"
	c.AuthTokenURL = "https://vault.passvault.dev/oauth/token"
	c.HTTPTimeout = 30 * time.Second
}

// LoadConfig constructs a Config, applies defaults, then overlays values
// from JSON (if a config file was given) and command-line flags.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
