// Package config loads coralrun's yaml configuration.
package config

import (
	"os"

	"gopkg.in/yaml.v3"

	"github.com/coral-lang/runtime/rterrors"
)

// Config controls how coralrun assembles the runtime for a guest program.
type Config struct {
	// Store selects the key/value backend: "noop" (default) or "memory".
	Store string `yaml:"store"`
	// Trace enables the interactive handle lifecycle view.
	Trace bool `yaml:"trace"`
	// Log sets the zap log level: "debug", "info", "warn", "error".
	Log string `yaml:"log"`
	// Entry overrides the guest entry function (default "main").
	Entry string `yaml:"entry"`
}

// Default returns the configuration used when no file is given.
func Default() Config {
	return Config{
		Store: "noop",
		Log:   "warn",
		Entry: "main",
	}
}

// Load reads and validates a yaml config file, applying defaults for
// omitted fields.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, rterrors.Wrap(rterrors.PhaseConfig, rterrors.KindInvalidInput, err, "read config file")
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, rterrors.Wrap(rterrors.PhaseConfig, rterrors.KindInvalidData, err, "parse config file")
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Validate checks enum-valued fields.
func (c Config) Validate() error {
	switch c.Store {
	case "noop", "memory":
	default:
		return rterrors.InvalidInput(rterrors.PhaseConfig, "store must be \"noop\" or \"memory\", got \""+c.Store+"\"")
	}
	switch c.Log {
	case "debug", "info", "warn", "error":
	default:
		return rterrors.InvalidInput(rterrors.PhaseConfig, "unknown log level \""+c.Log+"\"")
	}
	if c.Entry == "" {
		return rterrors.InvalidInput(rterrors.PhaseConfig, "entry must not be empty")
	}
	return nil
}
