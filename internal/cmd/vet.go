package cmd

import (
	"github.com/spf13/cobra"

	merrors "github.com/modpack/cli/internal/errors"
	"github.com/modpack/cli/internal/output"
	"github.com/modpack/cli/internal/registry"
	"github.com/modpack/cli/internal/resolver"
)

// NewVetCmd creates the vet command.
func NewVetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "vet",
		Short: "Validate the module catalog",
		Long: `Validate the module catalog: every requires reference must name a
declared module and the requires-graph must be acyclic.`,
		Args: cobra.NoArgs,
		RunE: func(c *cobra.Command, args []string) error {
			return runVet()
		},
	}
}

func runVet() error {
	// Load already rejects dangling requires references and self-requires.
	reg, err := registry.Load(GetCatalogPath())
	if err != nil {
		return merrors.NewExitError(err, merrors.ExitCodeFromError(err))
	}

	// Resolving the full catalog exercises every requires chain, so any
	// transitive cycle surfaces here.
	if _, err := resolver.Resolve(reg, reg.Names()); err != nil {
		return merrors.NewExitError(err, merrors.ExitCodeFromError(err))
	}

	output.Successf("catalog valid: %d module(s), %d always-included",
		len(reg.Names()), len(reg.AlwaysIncluded()))
	return nil
}
