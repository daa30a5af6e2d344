package toolchain

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	merrors "github.com/modpack/cli/internal/errors"
	"github.com/modpack/cli/internal/testutil"
)

func TestExecPackageBuilder_Success(t *testing.T) {
	dir, cleanup := testutil.TempDir(t)
	defer cleanup()

	b := &ExecPackageBuilder{
		Command: []string{"sh", "-c", "mkdir -p dist && touch dist/avionics_common-0.1.0-py3-none-any.whl"},
		WorkDir: dir,
	}

	artifact, err := b.Build(context.Background(), dir)
	require.NoError(t, err)
	assert.Contains(t, artifact, "avionics_common-0.1.0-py3-none-any.whl")
}

func TestExecPackageBuilder_PicksNewestArtifact(t *testing.T) {
	dir, cleanup := testutil.TempDir(t)
	defer cleanup()

	testutil.WriteFile(t, dir, "dist/pkg-0.1.0-py3-none-any.whl", "")
	testutil.WriteFile(t, dir, "dist/pkg-0.2.0-py3-none-any.whl", "")

	b := &ExecPackageBuilder{Command: []string{"true"}, WorkDir: dir}

	artifact, err := b.Build(context.Background(), dir)
	require.NoError(t, err)
	assert.Contains(t, artifact, "pkg-0.2.0-py3-none-any.whl")
}

func TestExecPackageBuilder_CommandFailure(t *testing.T) {
	dir, cleanup := testutil.TempDir(t)
	defer cleanup()

	b := &ExecPackageBuilder{
		Command: []string{"sh", "-c", "echo 'build exploded' >&2; exit 1"},
		WorkDir: dir,
	}

	_, err := b.Build(context.Background(), dir)
	require.Error(t, err)
	assert.True(t, errors.Is(err, merrors.ErrPackageBuild))

	// Collaborator output is surfaced verbatim.
	var detail *merrors.DetailError
	require.True(t, errors.As(err, &detail))
	assert.Contains(t, detail.Message, "build exploded")
	assert.Contains(t, detail.Context["command"], "sh -c")
}

func TestExecPackageBuilder_NoArtifact(t *testing.T) {
	dir, cleanup := testutil.TempDir(t)
	defer cleanup()

	b := &ExecPackageBuilder{Command: []string{"true"}, WorkDir: dir}

	_, err := b.Build(context.Background(), dir)
	require.Error(t, err)
	assert.True(t, errors.Is(err, merrors.ErrPackageBuild))
	assert.Contains(t, err.Error(), "no artifact")
}

func TestExecDocsBuilder_Success(t *testing.T) {
	dir, cleanup := testutil.TempDir(t)
	defer cleanup()

	b := &ExecDocsBuilder{
		Command:   []string{"sh", "-c", "mkdir -p dist/docs && touch dist/docs/index.html"},
		WorkDir:   dir,
		IndexPath: "dist/docs/index.html",
	}

	index, err := b.Build(context.Background(), dir)
	require.NoError(t, err)
	assert.Contains(t, index, "index.html")
}

func TestExecDocsBuilder_Failure(t *testing.T) {
	dir, cleanup := testutil.TempDir(t)
	defer cleanup()

	b := &ExecDocsBuilder{
		Command: []string{"sh", "-c", "echo 'docs exploded'; exit 2"},
		WorkDir: dir,
	}

	_, err := b.Build(context.Background(), dir)
	require.Error(t, err)
	assert.True(t, errors.Is(err, merrors.ErrDocsBuild))

	var detail *merrors.DetailError
	require.True(t, errors.As(err, &detail))
	assert.Contains(t, detail.Message, "docs exploded")
}

func TestExecBuilder_ContextCancellation(t *testing.T) {
	dir, cleanup := testutil.TempDir(t)
	defer cleanup()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	b := &ExecPackageBuilder{Command: []string{"sleep", "10"}, WorkDir: dir}

	_, err := b.Build(ctx, dir)
	require.Error(t, err)
	assert.True(t, errors.Is(err, merrors.ErrPackageBuild))
}
