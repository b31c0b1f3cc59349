package main

import (
	"os"

	"gopkg.in/yaml.v3"
)

// ProjectConfig holds the contents of .sysmlls/config.yaml.
type ProjectConfig struct {
	Stdlib         *bool    `yaml:"stdlib"`
	Include        []string `yaml:"include"`
	Exclude        []string `yaml:"exclude"`
	WatchDebounce  int      `yaml:"watch_debounce_ms"`
	MaxCachedFiles int      `yaml:"max_cached_files"`
}

// loadProjectConfig reads .sysmlls/config.yaml from the current
// directory. Returns nil (no error) if the file does not exist.
func loadProjectConfig() (*ProjectConfig, error) {
	data, err := os.ReadFile(".sysmlls/config.yaml")
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var cfg ProjectConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// stdlibActive applies the fallback chain: config file's stdlib field,
// defaulting to true if the config is absent or leaves it unset.
func (c *ProjectConfig) stdlibActive() bool {
	if c == nil || c.Stdlib == nil {
		return true
	}
	return *c.Stdlib
}
