package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	merrors "github.com/modpack/cli/internal/errors"
	"github.com/modpack/cli/internal/output"
	"github.com/modpack/cli/internal/registry"
	"github.com/modpack/cli/internal/resolver"
	"github.com/modpack/cli/internal/stager"
)

// NewDiffCmd creates the diff command.
func NewDiffCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "diff [module]...",
		Short: "Compare the staged layout against a selection",
		Long: `Compare the previously staged layout's manifest against the manifest the
given selection would produce.

Incremental builds (--no-clean) never prune modules dropped from the
selection, so the staged layout can drift from what the next build would
declare. diff surfaces that drift: stale modules still staged, and modules
the selection would add.`,
		Args: cobra.ArbitraryArgs,
		RunE: func(c *cobra.Command, args []string) error {
			return runDiff(args)
		},
	}
}

func runDiff(modules []string) error {
	reg, err := registry.Load(GetCatalogPath())
	if err != nil {
		return merrors.NewExitError(err, merrors.ExitCodeFromError(err))
	}

	resolved, err := resolver.Resolve(reg, modules)
	if err != nil {
		return merrors.NewExitError(err, merrors.ExitCodeFromError(err))
	}

	pkg := reg.Package()
	layoutRoot := filepath.Join(GetWorkDir(), pkg.Name)
	staged, err := stager.ReadManifest(layoutRoot)
	if err != nil {
		return merrors.NewExitError(
			fmt.Errorf("no staged layout to compare (run 'modpack build' first): %w", err),
			merrors.ExitGeneralError)
	}

	desired := &stager.Manifest{
		Name:    pkg.Name,
		Version: pkg.Version,
		Modules: resolved.Names(),
	}

	drift, err := stager.ComputeDrift(staged, desired)
	if err != nil {
		return merrors.NewExitError(err, merrors.ExitGeneralError)
	}

	if drift.IsEmpty() {
		output.Successf("staged layout matches the selection (%d modules)", len(desired.Modules))
		return nil
	}

	r := output.NewDiffRenderer()
	if len(drift.Stale) > 0 {
		output.Println(r.RenderRemovedHeader())
		for _, name := range drift.Stale {
			output.Println(r.RenderRemoved(name))
		}
	}
	if len(drift.Missing) > 0 {
		output.Println(r.RenderAddedHeader())
		for _, name := range drift.Missing {
			output.Println(r.RenderAdded(name))
		}
	}
	if drift.ManifestDiff != "" {
		output.Println("")
		output.Print(output.IndentDiff(drift.ManifestDiff, "  "))
	}

	return nil
}
