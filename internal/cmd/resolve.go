package cmd

import (
	"github.com/spf13/cobra"

	merrors "github.com/modpack/cli/internal/errors"
	"github.com/modpack/cli/internal/output"
	"github.com/modpack/cli/internal/registry"
	"github.com/modpack/cli/internal/resolver"
)

// NewResolveCmd creates the resolve command.
func NewResolveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "resolve [module]...",
		Short: "Print the module closure for a selection",
		Long: `Compute the set of modules a build would stage (the requested modules,
their transitive requirements, and the catalog's always-included modules)
without touching the filesystem.

With no arguments, prints the minimal closure (always-included modules only).`,
		Args: cobra.ArbitraryArgs,
		RunE: func(c *cobra.Command, args []string) error {
			return runResolve(args)
		},
	}
}

func runResolve(modules []string) error {
	reg, err := registry.Load(GetCatalogPath())
	if err != nil {
		return merrors.NewExitError(err, merrors.ExitCodeFromError(err))
	}

	resolved, err := resolver.Resolve(reg, modules)
	if err != nil {
		return merrors.NewExitError(err, merrors.ExitCodeFromError(err))
	}

	for _, name := range resolved.Names() {
		output.Println(name)
	}
	return nil
}
