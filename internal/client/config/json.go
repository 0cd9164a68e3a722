package config

import (
	"encoding/json"
	"os"

	"github.com/vkarpenko/credo/internal/flagx"
	"github.com/vkarpenko/credo/internal/timex"
)

// JsonConfig is the DTO for the optional JSON configuration file.
type JsonConfig struct {
	ServerBaseURL  string         `json:"server_base_url"`
	RequestTimeout timex.Duration `json:"request_timeout"`
	StateDir       string         `json:"state_dir"`
}

// parseJson overlays values from the JSON file named by -c/-config, when
// one is given. Missing fields keep their current values.
func parseJson(config *Config) {
	jsonConfigFile := flagx.JsonConfigFlags()
	if jsonConfigFile == "" {
		return
	}

	data, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}

	c := &JsonConfig{}
	if err := json.Unmarshal(data, c); err != nil {
		panic(err)
	}

	if c.ServerBaseURL != "" {
		config.ServerBaseURL = c.ServerBaseURL
	}
	if c.RequestTimeout.Duration != 0 {
		config.RequestTimeout = c.RequestTimeout.Duration
	}
	if c.StateDir != "" {
		config.StateDir = c.StateDir
	}
}
