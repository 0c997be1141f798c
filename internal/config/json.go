package config

import (
	"encoding/json"
	"os"
	"time"

	"github.com/dmitrijs2005/passvault/internal/flagx"
	"github.com/dmitrijs2005/passvault/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling. It relies on
// timex.Duration so JSON can specify the timeout either as a string like
// "30s" or as integer nanoseconds. After parsing, values are copied into
// the runtime Config.
type JsonConfig struct {
	VaultDir          string         `json:"vault_dir"`
	RemoteEndpointURL string         `json:"remote_endpoint_url"`
	AuthTokenURL      string         `json:"auth_token_url"`
	HTTPTimeout       timex.Duration `json:"http_timeout"`
}

// parseJson overlays cfg with values from the JSON file named by the -c or
// -config flags. No flag means no JSON is loaded. Read or unmarshal errors
// panic; the caller may recover if desired. Empty fields in the file leave
// the corresponding defaults in place.
func parseJson(cfg *Config) {
	jsonConfigFile := flagx.JsonConfigFlags()
	if jsonConfigFile == "" {
		return
	}

	var jc JsonConfig

	data, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	if jc.VaultDir != "" {
		cfg.VaultDir = jc.VaultDir
	}
	if jc.RemoteEndpointURL != "" {
		cfg.RemoteEndpointURL = jc.RemoteEndpointURL
	}
	if jc.AuthTokenURL != "" {
		cfg.AuthTokenURL = jc.AuthTokenURL
	}
	if jc.HTTPTimeout.Duration != 0 {
		cfg.HTTPTimeout = time.Duration(jc.HTTPTimeout.Duration)
	}
}
