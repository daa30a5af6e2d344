// Package pipeline orchestrates the end-to-end package build.
package pipeline

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	merrors "github.com/modpack/cli/internal/errors"
	"github.com/modpack/cli/internal/output"
	"github.com/modpack/cli/internal/registry"
	"github.com/modpack/cli/internal/resolver"
	"github.com/modpack/cli/internal/stager"
	"github.com/modpack/cli/internal/toolchain"
)

// Options configures a Pipeline.
type Options struct {
	// WorkDir is the project root holding the catalog's source root; the
	// staged layout and build artifacts are created under it.
	WorkDir string

	// DistDir is the artifact output directory relative to WorkDir,
	// removed by clean builds. Defaults to "dist".
	DistDir string

	// PackageBuilder runs the package-build collaborator.
	PackageBuilder toolchain.PackageBuilder

	// DocsBuilder runs the documentation-build collaborator.
	DocsBuilder toolchain.DocsBuilder
}

// Pipeline drives the linear build sequence. A single build owns the
// destination directory exclusively for its duration; concurrent builds
// targeting the same directory must be serialized by the caller.
type Pipeline struct {
	reg     *registry.Registry
	workDir string
	distDir string
	pkg     toolchain.PackageBuilder
	docs    toolchain.DocsBuilder
}

// New creates a Pipeline over the given catalog.
func New(reg *registry.Registry, opts Options) *Pipeline {
	distDir := opts.DistDir
	if distDir == "" {
		distDir = "dist"
	}
	return &Pipeline{
		reg:     reg,
		workDir: opts.WorkDir,
		distDir: distDir,
		pkg:     opts.PackageBuilder,
		docs:    opts.DocsBuilder,
	}
}

// Build executes the pipeline for one request.
//
// Step sequence:
//  1. VALIDATE: resolve the module closure; fails before any filesystem
//     work on unknown names or requires-cycles.
//  2. CLEAN (when requested): remove the prior staged layout and artifacts.
//  3. STAGE: materialize the closure; failures leave the interrupted layout
//     in place for inspection.
//  4. PACKAGE: invoke the package-build collaborator.
//  5. DOCS (when requested): invoke the documentation-build collaborator.
//     A docs failure degrades to partial success; the package artifact
//     remains valid, so the outcome reports it alongside the error.
//
// The returned Outcome is non-nil whenever staging began, so callers can
// report partial results; err carries the first fatal (or partial) failure.
func (p *Pipeline) Build(ctx context.Context, req Request) (*Outcome, error) {
	resolved, err := resolver.Resolve(p.reg, req.Modules)
	if err != nil {
		return nil, err
	}

	outcome := &Outcome{Resolved: resolved.Names()}
	output.Debug("selection resolved",
		"requested", len(req.Modules),
		"resolved", len(outcome.Resolved),
	)

	if req.Clean {
		if err := p.clean(); err != nil {
			return outcome, err
		}
	}

	layout, err := stager.Stage(p.reg, resolved, stager.Options{
		WorkDir: p.workDir,
		Clean:   req.Clean,
	})
	if err != nil {
		return outcome, err
	}
	output.Debug("layout staged", "root", layout.Root, "modules", len(layout.Modules))

	artifact, err := p.pkg.Build(ctx, layout.Root)
	if err != nil {
		return outcome, err
	}
	outcome.PackageBuilt = true
	outcome.ArtifactPath = artifact

	if req.Docs {
		index, err := p.docs.Build(ctx, layout.Root)
		if err != nil {
			outcome.DocsFailed = true
			outcome.Diagnostics = append(outcome.Diagnostics,
				fmt.Sprintf("documentation build failed; package artifact %s is still valid", artifact))
			return outcome, err
		}
		outcome.DocsBuilt = true
		outcome.DocsIndexPath = index
	}

	return outcome, nil
}

// clean removes the prior staged layout and artifact directory. Idempotent
// when nothing exists yet.
func (p *Pipeline) clean() error {
	staging := filepath.Join(p.workDir, p.reg.Package().Name)
	dist := filepath.Join(p.workDir, p.distDir)

	for _, dir := range []string{staging, dist} {
		output.Debug("cleaning", "dir", dir)
		if err := os.RemoveAll(dir); err != nil {
			return merrors.NewStagingError("removing build artifacts", dir, err)
		}
	}
	return nil
}
