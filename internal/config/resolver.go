package config

import (
	"os"

	"github.com/modpack/cli/internal/output"
)

// ConfigSource indicates where a configuration value came from.
type ConfigSource string

const (
	// SourceFlag indicates value came from command-line flag.
	SourceFlag ConfigSource = "flag"
	// SourceEnv indicates value came from environment variable.
	SourceEnv ConfigSource = "env"
	// SourceConfig indicates value came from config file.
	SourceConfig ConfigSource = "config"
	// SourceDefault indicates value is the built-in default.
	SourceDefault ConfigSource = "default"
)

// ResolvedValue is one configuration value with provenance.
type ResolvedValue struct {
	// Key is the configuration key.
	Key string
	// Value is the winning value.
	Value string
	// Source indicates where the value came from.
	Source ConfigSource
	// Shadowed contains values overridden by higher precedence.
	Shadowed map[ConfigSource]string
}

// ResolveValueOptions contains options for one value resolution.
type ResolveValueOptions struct {
	// Key is the configuration key (for logging).
	Key string
	// FlagValue is the flag value (empty if not set).
	FlagValue string
	// EnvVar is the environment variable name consulted.
	EnvVar string
	// ConfigValue is the value from the config file (empty if not set).
	ConfigValue string
	// Default is the built-in fallback.
	Default string
}

// ResolveValue resolves a configuration value using precedence:
// (1) flag, (2) environment, (3) config file, (4) default.
func ResolveValue(opts ResolveValueOptions) ResolvedValue {
	result := ResolvedValue{
		Key:      opts.Key,
		Shadowed: make(map[ConfigSource]string),
	}

	envValue := ""
	if opts.EnvVar != "" {
		envValue = os.Getenv(opts.EnvVar)
	}

	record := func(source ConfigSource, value string) {
		if value != "" && result.Value != "" {
			result.Shadowed[source] = value
			return
		}
		if value != "" {
			result.Value = value
			result.Source = source
		}
	}

	record(SourceFlag, opts.FlagValue)
	record(SourceEnv, envValue)
	record(SourceConfig, opts.ConfigValue)
	record(SourceDefault, opts.Default)

	return result
}

// LogResolvedValues logs configuration resolution at DEBUG level.
func LogResolvedValues(values []ResolvedValue) {
	for _, v := range values {
		output.Debug("config value resolved",
			"key", v.Key,
			"value", v.Value,
			"source", v.Source,
		)
		for source, shadowed := range v.Shadowed {
			output.Debug("  shadowed by higher precedence",
				"key", v.Key,
				"shadowed_source", source,
				"shadowed_value", shadowed,
			)
		}
	}
}
