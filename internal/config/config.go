// Package config provides configuration management for the OpenNOW Rewrite
// login helper. It handles loading and parsing YAML configuration files, and
// provides structured access to application settings including the candidate
// callback ports, the identity-provider record, and logging behavior.
//
// The loaded value is treated as immutable: the login core receives it at
// construction time instead of reading file-scope globals, so tests can supply
// alternate ports and provider records without touching shared state.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// defaultCallbackPorts is the fixed candidate list probed in priority order
// when the configuration does not override it.
var defaultCallbackPorts = []int{2259, 6460, 7119, 8870, 9096}

const defaultLogDir = "logs"

// Config represents the application's configuration, loaded from a YAML file.
type Config struct {
	// Debug enables debug-level logging.
	Debug bool `yaml:"debug"`

	// LoggingToFile switches log output from stdout to rotating files.
	LoggingToFile bool `yaml:"logging-to-file"`

	// LogDir is the directory rotating log files are written to.
	LogDir string `yaml:"log-dir"`

	// CallbackPorts overrides the candidate loopback ports probed for the
	// OAuth redirect. An empty list means the built-in candidates.
	CallbackPorts []int `yaml:"callback-ports"`

	// Provider overrides fields of the default identity-provider record.
	Provider ProviderConfig `yaml:"provider"`
}

// ProviderConfig mirrors the identity-provider record carried in the
// authorization request. Empty fields fall back to the primary partner values.
type ProviderConfig struct {
	// IDPID is the opaque identity-provider id.
	IDPID string `yaml:"idp-id"`

	// Code is the short provider code.
	Code string `yaml:"code"`

	// DisplayName is the human-readable provider name.
	DisplayName string `yaml:"display-name"`

	// Provider is the provider label used by the service catalog.
	Provider string `yaml:"provider"`

	// StreamingServiceURL is the base URL of the provider's streaming service.
	StreamingServiceURL string `yaml:"streaming-service-url"`

	// Priority orders providers when more than one is offered.
	Priority int `yaml:"priority"`
}

// DefaultConfig returns a configuration carrying the built-in defaults.
func DefaultConfig() *Config {
	return &Config{
		LogDir:        defaultLogDir,
		CallbackPorts: append([]int(nil), defaultCallbackPorts...),
	}
}

// LoadConfig reads the YAML file at path and unmarshals it over the defaults.
// An empty path returns the defaults unchanged, so the binary works without a
// configuration file.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: failed to read %s: %w", path, err)
	}
	if err = yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("config: failed to parse %s: %w", path, err)
	}

	if len(cfg.CallbackPorts) == 0 {
		cfg.CallbackPorts = append([]int(nil), defaultCallbackPorts...)
	}
	if cfg.LogDir == "" {
		cfg.LogDir = defaultLogDir
	}
	return cfg, nil
}

// CallbackPortList returns a copy of the candidate port list so callers
// cannot mutate the loaded configuration.
func (c *Config) CallbackPortList() []int {
	return append([]int(nil), c.CallbackPorts...)
}
