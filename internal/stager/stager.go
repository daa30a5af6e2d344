// Package stager materializes a resolved module set into a directory shaped
// like the final distributable package.
package stager

import (
	"fmt"
	"os"
	"path/filepath"

	merrors "github.com/modpack/cli/internal/errors"
	"github.com/modpack/cli/internal/output"
	"github.com/modpack/cli/internal/registry"
	"github.com/modpack/cli/internal/resolver"
)

// Options controls one staging run.
type Options struct {
	// WorkDir is the project root; the staging destination and the module
	// source root both live under it.
	WorkDir string

	// Clean removes the destination entirely before staging. When false,
	// existing contents are preserved and resolved modules are overlaid;
	// modules staged previously but no longer resolved are NOT removed.
	// `modpack diff` surfaces that drift.
	Clean bool
}

// Layout is the staged on-disk working tree.
type Layout struct {
	// Root is the staging destination (WorkDir/<package name>).
	Root string

	// Modules is the staged module set in lexicographic order.
	Modules []string

	// ManifestPath is the package metadata file at the root.
	ManifestPath string
}

// Stage copies every resolved module's source paths into the staging
// destination and writes the package manifest. Modules are processed in
// lexicographic order so repeated clean runs produce byte-identical layouts.
//
// Stage only mutates the destination; source module directories are never
// touched. On failure the interrupted layout is left in place for inspection.
func Stage(reg *registry.Registry, resolved resolver.ResolvedSet, opts Options) (*Layout, error) {
	pkg := reg.Package()
	dest := filepath.Join(opts.WorkDir, pkg.Name)
	sourceRoot := filepath.Join(opts.WorkDir, reg.SourceRoot())

	if opts.Clean {
		if err := os.RemoveAll(dest); err != nil {
			return nil, merrors.NewStagingError("removing previous layout", dest, err)
		}
	}

	if err := os.MkdirAll(dest, 0o755); err != nil {
		return nil, merrors.NewStagingError("creating staging root", dest, err)
	}

	modules := resolved.Names()
	for _, name := range modules {
		mod, err := reg.Lookup(name)
		if err != nil {
			return nil, err
		}

		// Declared paths keep their position relative to the source root,
		// so nested paths stay namespaced and equal basenames from
		// different modules cannot overwrite each other.
		for _, rel := range mod.SourcePaths() {
			src := filepath.Join(sourceRoot, rel)
			dst := filepath.Join(dest, rel)

			if _, err := os.Stat(src); err != nil {
				return nil, merrors.NewStagingError(
					fmt.Sprintf("module %q source path missing", name), src, err)
			}

			if err := copyPath(src, dst); err != nil {
				return nil, merrors.NewStagingError(
					fmt.Sprintf("copying module %q", name), src, err)
			}
			output.Debug("staged module path", "module", name, "src", src, "dst", dst)
		}
	}

	manifestPath, err := WriteManifest(dest, &Manifest{
		Name:    pkg.Name,
		Version: pkg.Version,
		Modules: modules,
	})
	if err != nil {
		return nil, merrors.NewStagingError("writing package manifest", dest, err)
	}

	return &Layout{
		Root:         dest,
		Modules:      modules,
		ManifestPath: manifestPath,
	}, nil
}
