// Package cmd provides CLI command implementations.
package cmd

import (
	"github.com/spf13/cobra"

	"github.com/modpack/cli/internal/config"
	"github.com/modpack/cli/internal/output"
)

var (
	// Global flags
	catalogFlag    string
	configFlag     string
	dirFlag        string
	verboseFlag    bool
	timestampsFlag bool

	// Loaded configuration (populated during PersistentPreRunE)
	loadedConfig *config.Config
)

// NewRootCmd creates the root command for the modpack CLI.
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "modpack",
		Short:         "Selective package assembler",
		Long:          `modpack assembles a distributable package from a selected subset of a shared module library, pulling in transitive requirements automatically.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return initializeGlobals(cmd)
		},
	}

	// Add global flags
	rootCmd.PersistentFlags().StringVar(&catalogFlag, "catalog", "", "Path to module catalog file (env: MODPACK_CATALOG)")
	rootCmd.PersistentFlags().StringVar(&configFlag, "config", "", "Path to config file (env: MODPACK_CONFIG)")
	rootCmd.PersistentFlags().StringVarP(&dirFlag, "dir", "d", "", "Project working directory (env: MODPACK_DIR)")
	rootCmd.PersistentFlags().BoolVarP(&verboseFlag, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().BoolVar(&timestampsFlag, "timestamps", true, "Show timestamps in log output")

	// Add subcommands
	rootCmd.AddCommand(NewBuildCmd())
	rootCmd.AddCommand(NewResolveCmd())
	rootCmd.AddCommand(NewListCmd())
	rootCmd.AddCommand(NewVetCmd())
	rootCmd.AddCommand(NewDiffCmd())
	rootCmd.AddCommand(NewVersionCmd())

	return rootCmd
}

// initializeGlobals sets up logging and loads configuration.
func initializeGlobals(cmd *cobra.Command) error {
	cfg, err := config.NewLoader().LoadWithDefaults(configFlag)
	if err != nil {
		output.Debug("config load error", "error", err)
		// Don't fail here; commands that need no config should still work.
		cfg = (&config.Config{}).WithDefaults()
	}
	loadedConfig = cfg

	// Build LogConfig with precedence: flag > config > default(true)
	logCfg := output.LogConfig{
		Verbose: verboseFlag,
	}
	if cmd.Flags().Changed("timestamps") {
		logCfg.Timestamps = output.BoolPtr(timestampsFlag)
	} else if cfg.Log.Timestamps != nil {
		logCfg.Timestamps = cfg.Log.Timestamps
	}
	output.SetupLogging(logCfg)

	if verboseFlag {
		config.LogResolvedValues([]config.ResolvedValue{
			resolveCatalogPath(),
			resolveWorkDir(),
		})
	}

	return nil
}

// resolveCatalogPath resolves the catalog path: flag > env > config > default.
func resolveCatalogPath() config.ResolvedValue {
	configValue := ""
	if loadedConfig != nil {
		configValue = loadedConfig.Catalog
	}
	return config.ResolveValue(config.ResolveValueOptions{
		Key:         "catalog",
		FlagValue:   catalogFlag,
		EnvVar:      "MODPACK_CATALOG",
		ConfigValue: configValue,
		Default:     "modpack.yaml",
	})
}

// resolveWorkDir resolves the project working directory.
func resolveWorkDir() config.ResolvedValue {
	configValue := ""
	if loadedConfig != nil {
		configValue = loadedConfig.Dir
	}
	return config.ResolveValue(config.ResolveValueOptions{
		Key:         "dir",
		FlagValue:   dirFlag,
		EnvVar:      "MODPACK_DIR",
		ConfigValue: configValue,
		Default:     ".",
	})
}

// GetConfig returns the loaded configuration.
func GetConfig() *config.Config {
	if loadedConfig == nil {
		return (&config.Config{}).WithDefaults()
	}
	return loadedConfig
}

// GetCatalogPath returns the resolved catalog file path.
func GetCatalogPath() string {
	return resolveCatalogPath().Value
}

// GetWorkDir returns the resolved project working directory.
func GetWorkDir() string {
	return resolveWorkDir().Value
}
