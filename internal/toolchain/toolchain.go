// Package toolchain invokes the external build collaborators.
//
// The package builder and the documentation builder are black-box tools: the
// orchestrator only observes success/failure and an output path. Both are
// abstracted behind narrow interfaces so tests can swap them for fakes
// without touching the pipeline's state machine.
package toolchain

import "context"

// PackageBuilder produces an installable archive from a staged layout root.
type PackageBuilder interface {
	// Build runs the collaborator and returns the produced artifact path.
	Build(ctx context.Context, layoutRoot string) (string, error)
}

// DocsBuilder produces a browsable HTML tree from a staged layout root.
type DocsBuilder interface {
	// Build runs the collaborator and returns the docs index path.
	Build(ctx context.Context, layoutRoot string) (string, error)
}
