package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	merrors "github.com/modpack/cli/internal/errors"
	"github.com/modpack/cli/internal/output"
	"github.com/modpack/cli/internal/pipeline"
	"github.com/modpack/cli/internal/registry"
	"github.com/modpack/cli/internal/stager"
	"github.com/modpack/cli/internal/toolchain"
)

// NewBuildCmd creates the build command.
func NewBuildCmd() *cobra.Command {
	var (
		docsFlag    bool
		noCleanFlag bool
	)

	c := &cobra.Command{
		Use:   "build <module>...",
		Short: "Assemble and build a package from selected modules",
		Long: `Assemble a distributable package containing the selected modules plus
their transitive requirements and the catalog's always-included modules,
then invoke the package-build collaborator on the staged layout.

Examples:
  # Build a package with the camera, network and logger modules
  modpack build camera network logger

  # Build and generate API documentation
  modpack build network logger --docs

  # Incremental build: keep the prior staged layout and artifacts.
  # Modules dropped from the selection stay staged (see 'modpack diff').
  modpack build network --no-clean`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			return runBuild(c.Context(), args, docsFlag, !noCleanFlag)
		},
	}

	c.Flags().BoolVar(&docsFlag, "docs", false, "Build API documentation after packaging")
	c.Flags().BoolVar(&noCleanFlag, "no-clean", false, "Keep prior staged layout and artifacts")

	return c
}

// runBuild executes the build command.
func runBuild(ctx context.Context, modules []string, docs, clean bool) error {
	if ctx == nil {
		ctx = context.Background()
	}

	reg, err := registry.Load(GetCatalogPath())
	if err != nil {
		return merrors.NewExitError(err, merrors.ExitCodeFromError(err))
	}

	cfg := GetConfig()
	workDir := GetWorkDir()

	p := pipeline.New(reg, pipeline.Options{
		WorkDir: workDir,
		DistDir: cfg.Dist,
		PackageBuilder: &toolchain.ExecPackageBuilder{
			Command: cfg.Builders.Package,
			WorkDir: workDir,
		},
		DocsBuilder: &toolchain.ExecDocsBuilder{
			Command: cfg.Builders.Docs,
			WorkDir: workDir,
		},
	})

	buildLog := output.BuildLogger(reg.Package().Name)
	buildLog.Info("building package", "modules", len(modules), "docs", docs, "clean", clean)

	var outcome *pipeline.Outcome
	buildErr := output.RunWithSpinner(ctx, func() error {
		var err error
		outcome, err = p.Build(ctx, pipeline.Request{
			Modules: modules,
			Docs:    docs,
			Clean:   clean,
		})
		return err
	}, output.WithTitle("Building package..."))

	if outcome != nil {
		reportOutcome(outcome)
		if verboseFlag && len(outcome.Resolved) > 0 {
			printStagedTree(workDir, reg.Package().Name)
		}
	}

	if buildErr != nil {
		code := merrors.ExitCodeFromError(buildErr)
		if outcome != nil && outcome.PartialSuccess() {
			// The package artifact is valid; only docs failed.
			output.Error(buildErr.Error())
			return &merrors.ExitError{Err: buildErr, Code: merrors.ExitDocsPartial, Printed: true}
		}
		return merrors.NewExitError(buildErr, code)
	}

	return nil
}

// printStagedTree renders the staged layout as a file tree.
func printStagedTree(workDir, packageName string) {
	root := filepath.Join(workDir, packageName)

	files := map[string]string{}
	err := filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			return nil
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		desc := ""
		if rel == stager.ManifestFile {
			desc = "package manifest"
		}
		files[rel] = desc
		return nil
	})
	if err != nil {
		output.Debug("skipping layout tree", "error", err)
		return
	}

	output.Println(output.RenderFileTree(packageName, files))
}

// reportOutcome prints the build result to stdout.
func reportOutcome(o *pipeline.Outcome) {
	if len(o.Resolved) > 0 {
		output.Println(fmt.Sprintf("Resolved %d module(s):", len(o.Resolved)))
		for _, name := range o.Resolved {
			output.Println(output.FormatModuleLine(name, output.StatusStaged))
		}
	}

	if o.PackageBuilt {
		output.Successf("package built: %s", o.ArtifactPath)
	}
	if o.DocsBuilt {
		output.Successf("documentation built: %s", o.DocsIndexPath)
	}

	for _, d := range o.Diagnostics {
		output.Warn(d)
	}
}
