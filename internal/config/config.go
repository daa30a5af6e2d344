// Package config provides configuration loading and management.
package config

// BuildersConfig contains the external collaborator commands.
type BuildersConfig struct {
	// Package is the package-build collaborator argv.
	// Default: python -m build --wheel
	Package []string `mapstructure:"package"`

	// Docs is the documentation-build collaborator argv.
	// Default: sphinx-build -b html docs dist/docs
	Docs []string `mapstructure:"docs"`
}

// LogConfig contains logging-related settings.
type LogConfig struct {
	// Timestamps controls whether timestamps are shown in log output.
	// Default: true. Override with --timestamps flag.
	Timestamps *bool `mapstructure:"timestamps"`
}

// Config represents the modpack CLI configuration.
// Loaded from ~/.modpack/config.yaml; environment variables take precedence.
type Config struct {
	// Catalog is the module catalog file path.
	// Env: MODPACK_CATALOG, Default: ./modpack.yaml
	Catalog string `mapstructure:"catalog"`

	// Dir is the project working directory holding the module sources.
	// Env: MODPACK_DIR, Default: "."
	Dir string `mapstructure:"dir"`

	// Dist is the artifact output directory relative to Dir.
	// Default: "dist"
	Dist string `mapstructure:"dist"`

	// Builders contains the collaborator commands.
	Builders BuildersConfig `mapstructure:"builders"`

	// Log contains logging-related settings.
	Log LogConfig `mapstructure:"log"`
}

// WithDefaults returns a copy of the config with defaults applied.
func (c *Config) WithDefaults() *Config {
	out := *c
	if out.Dir == "" {
		out.Dir = "."
	}
	if out.Dist == "" {
		out.Dist = "dist"
	}
	return &out
}
