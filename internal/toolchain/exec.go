package toolchain

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"sort"
	"strings"

	merrors "github.com/modpack/cli/internal/errors"
	"github.com/modpack/cli/internal/output"
)

// Default collaborator commands, mirroring the upstream toolchain.
var (
	DefaultPackageCommand = []string{"python", "-m", "build", "--wheel"}
	DefaultDocsCommand    = []string{"sphinx-build", "-b", "html", "docs", "dist/docs"}
)

// DefaultArtifactGlob locates the built archive under the working directory.
const DefaultArtifactGlob = "dist/*.whl"

// DefaultDocsIndex is the docs entry point relative to the working directory.
const DefaultDocsIndex = "dist/docs/index.html"

// ExecPackageBuilder runs the package-build collaborator as a subprocess.
type ExecPackageBuilder struct {
	// Command is the collaborator argv. Defaults to DefaultPackageCommand.
	Command []string

	// WorkDir is the directory the command runs in.
	WorkDir string

	// ArtifactGlob locates the produced archive after a successful run.
	ArtifactGlob string
}

// Build implements PackageBuilder.
func (b *ExecPackageBuilder) Build(ctx context.Context, layoutRoot string) (string, error) {
	command := b.Command
	if len(command) == 0 {
		command = DefaultPackageCommand
	}

	out, err := runCollaborator(ctx, b.WorkDir, command)
	if err != nil {
		return "", collaboratorError("package build failed", command, out, merrors.ErrPackageBuild, err)
	}

	glob := b.ArtifactGlob
	if glob == "" {
		glob = DefaultArtifactGlob
	}
	artifact, err := newestMatch(filepath.Join(b.WorkDir, glob))
	if err != nil {
		return "", collaboratorError("package build failed", command, out,
			merrors.ErrPackageBuild, fmt.Errorf("collaborator succeeded but produced no artifact matching %s: %w", glob, err))
	}

	return artifact, nil
}

// ExecDocsBuilder runs the documentation-build collaborator as a subprocess.
type ExecDocsBuilder struct {
	// Command is the collaborator argv. Defaults to DefaultDocsCommand.
	Command []string

	// WorkDir is the directory the command runs in.
	WorkDir string

	// IndexPath is the docs entry point relative to WorkDir.
	IndexPath string
}

// Build implements DocsBuilder.
func (b *ExecDocsBuilder) Build(ctx context.Context, layoutRoot string) (string, error) {
	command := b.Command
	if len(command) == 0 {
		command = DefaultDocsCommand
	}

	out, err := runCollaborator(ctx, b.WorkDir, command)
	if err != nil {
		return "", collaboratorError("documentation build failed", command, out, merrors.ErrDocsBuild, err)
	}

	index := b.IndexPath
	if index == "" {
		index = DefaultDocsIndex
	}
	return filepath.Join(b.WorkDir, index), nil
}

// runCollaborator executes the command, blocking until completion, and
// returns its combined output.
func runCollaborator(ctx context.Context, workDir string, command []string) (string, error) {
	output.Debug("invoking collaborator", "command", strings.Join(command, " "), "dir", workDir)

	cmd := exec.CommandContext(ctx, command[0], command[1:]...)
	cmd.Dir = workDir
	out, err := cmd.CombinedOutput()
	return string(out), err
}

// collaboratorError surfaces a collaborator failure with its diagnostic
// output verbatim, never reinterpreted.
func collaboratorError(kind string, command []string, out string, sentinel, cause error) error {
	return &merrors.DetailError{
		Type:    kind,
		Message: strings.TrimSpace(out),
		Context: map[string]string{"command": strings.Join(command, " ")},
		Cause:   fmt.Errorf("%w: %w", sentinel, cause),
	}
}

// newestMatch returns the lexicographically last path matching the glob.
// Wheel filenames embed the version, so the last match is the newest build.
func newestMatch(pattern string) (string, error) {
	matches, err := filepath.Glob(pattern)
	if err != nil {
		return "", err
	}
	if len(matches) == 0 {
		return "", os.ErrNotExist
	}
	sort.Strings(matches)
	return matches[len(matches)-1], nil
}
