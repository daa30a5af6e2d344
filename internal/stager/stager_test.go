package stager

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	merrors "github.com/modpack/cli/internal/errors"
	"github.com/modpack/cli/internal/registry"
	"github.com/modpack/cli/internal/resolver"
	"github.com/modpack/cli/internal/testutil"
)

func testWorkspace(t *testing.T) (string, *registry.Registry, func()) {
	t.Helper()
	dir, cleanup := testutil.TempDir(t)

	testutil.WriteModuleSource(t, dir, "network", map[string]string{
		"tcp.py": "tcp",
		"udp.py": "udp",
	})
	testutil.WriteModuleSource(t, dir, "logger", map[string]string{
		"logger.py": "log",
	})
	testutil.WriteModuleSource(t, dir, "camera", map[string]string{
		"camera.py": "cam",
	})
	testutil.WriteFile(t, dir, "modules/location.py", "loc")

	reg, err := registry.New(registry.Catalog{
		Package:    registry.PackageMeta{Name: "avionics_common", Version: "0.1.0"},
		SourceRoot: "modules",
		Modules: []registry.Module{
			{Name: "network"},
			{Name: "logger"},
			{Name: "camera"},
			{Name: "datatypes", Always: true, Paths: []string{"location.py"}},
		},
	})
	require.NoError(t, err)

	return dir, reg, cleanup
}

func resolve(t *testing.T, reg *registry.Registry, names ...string) resolver.ResolvedSet {
	t.Helper()
	resolved, err := resolver.Resolve(reg, names)
	require.NoError(t, err)
	return resolved
}

func TestStage_Basic(t *testing.T) {
	dir, reg, cleanup := testWorkspace(t)
	defer cleanup()

	layout, err := Stage(reg, resolve(t, reg, "network", "logger"), Options{WorkDir: dir, Clean: true})
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(dir, "avionics_common"), layout.Root)
	assert.Equal(t, []string{"datatypes", "logger", "network"}, layout.Modules)

	files := testutil.ListFiles(t, layout.Root)
	assert.Equal(t, []string{
		"location.py",
		"logger/logger.py",
		"network/tcp.py",
		"network/udp.py",
		ManifestFile,
	}, files)

	m, err := ReadManifest(layout.Root)
	require.NoError(t, err)
	assert.Equal(t, "avionics_common", m.Name)
	assert.Equal(t, "0.1.0", m.Version)
	assert.Equal(t, []string{"datatypes", "logger", "network"}, m.Modules)
}

func TestStage_CleanBuildsIdentical(t *testing.T) {
	dir, reg, cleanup := testWorkspace(t)
	defer cleanup()

	resolved := resolve(t, reg, "network", "logger")

	first, err := Stage(reg, resolved, Options{WorkDir: dir, Clean: true})
	require.NoError(t, err)
	firstFiles := testutil.ListFiles(t, first.Root)
	firstManifest, err := os.ReadFile(first.ManifestPath)
	require.NoError(t, err)

	second, err := Stage(reg, resolved, Options{WorkDir: dir, Clean: true})
	require.NoError(t, err)
	secondFiles := testutil.ListFiles(t, second.Root)
	secondManifest, err := os.ReadFile(second.ManifestPath)
	require.NoError(t, err)

	assert.Equal(t, firstFiles, secondFiles)
	assert.Equal(t, firstManifest, secondManifest)
}

func TestStage_IncrementalKeepsStaleModules(t *testing.T) {
	dir, reg, cleanup := testWorkspace(t)
	defer cleanup()

	_, err := Stage(reg, resolve(t, reg, "network", "camera"), Options{WorkDir: dir, Clean: true})
	require.NoError(t, err)

	// Drop camera from the selection; incremental staging must not prune it.
	layout, err := Stage(reg, resolve(t, reg, "network"), Options{WorkDir: dir, Clean: false})
	require.NoError(t, err)

	_, err = os.Stat(filepath.Join(layout.Root, "camera", "camera.py"))
	assert.NoError(t, err, "stale module payload should remain staged")

	// The manifest must still reflect exactly the new resolved set.
	m, err := ReadManifest(layout.Root)
	require.NoError(t, err)
	assert.Equal(t, []string{"datatypes", "network"}, m.Modules)
}

func TestStage_CleanRemovesStaleModules(t *testing.T) {
	dir, reg, cleanup := testWorkspace(t)
	defer cleanup()

	_, err := Stage(reg, resolve(t, reg, "network", "camera"), Options{WorkDir: dir, Clean: true})
	require.NoError(t, err)

	layout, err := Stage(reg, resolve(t, reg, "network"), Options{WorkDir: dir, Clean: true})
	require.NoError(t, err)

	_, err = os.Stat(filepath.Join(layout.Root, "camera"))
	assert.True(t, os.IsNotExist(err), "clean build must drop unselected modules")
}

func TestStage_MissingSource(t *testing.T) {
	dir, reg, cleanup := testWorkspace(t)
	defer cleanup()

	require.NoError(t, os.RemoveAll(filepath.Join(dir, "modules", "logger")))

	_, err := Stage(reg, resolve(t, reg, "logger"), Options{WorkDir: dir, Clean: true})
	require.Error(t, err)
	assert.True(t, errors.Is(err, merrors.ErrStaging))
	assert.Contains(t, err.Error(), "logger")
}

func TestStage_NeverTouchesSources(t *testing.T) {
	dir, reg, cleanup := testWorkspace(t)
	defer cleanup()

	before := testutil.ListFiles(t, filepath.Join(dir, "modules"))

	_, err := Stage(reg, resolve(t, reg, "network", "logger", "camera"), Options{WorkDir: dir, Clean: true})
	require.NoError(t, err)

	after := testutil.ListFiles(t, filepath.Join(dir, "modules"))
	assert.Equal(t, before, after)
}

func TestStage_PreservesDeclaredPaths(t *testing.T) {
	dir, cleanup := testutil.TempDir(t)
	defer cleanup()

	testutil.WriteFile(t, dir, "modules/net/tcp.py", "tcp")
	testutil.WriteFile(t, dir, "modules/sim/tcp.py", "sim")

	reg, err := registry.New(registry.Catalog{
		Package:    registry.PackageMeta{Name: "pkg", Version: "0.1.0"},
		SourceRoot: "modules",
		Modules: []registry.Module{
			{Name: "network", Paths: []string{"net/tcp.py"}},
			{Name: "hitl", Paths: []string{"sim/tcp.py"}},
		},
	})
	require.NoError(t, err)

	layout, err := Stage(reg, resolve(t, reg, "network", "hitl"), Options{WorkDir: dir, Clean: true})
	require.NoError(t, err)

	// Same basename from two modules must land in distinct locations.
	files := testutil.ListFiles(t, layout.Root)
	assert.Equal(t, []string{"net/tcp.py", ManifestFile, "sim/tcp.py"}, files)

	tcp, err := os.ReadFile(filepath.Join(layout.Root, "net", "tcp.py"))
	require.NoError(t, err)
	assert.Equal(t, "tcp", string(tcp))
}

func TestManifest_Roundtrip(t *testing.T) {
	dir, cleanup := testutil.TempDir(t)
	defer cleanup()

	in := &Manifest{Name: "avionics_common", Version: "0.3.0", Modules: []string{"logger", "network"}}
	_, err := WriteManifest(dir, in)
	require.NoError(t, err)

	out, err := ReadManifest(dir)
	require.NoError(t, err)
	assert.Equal(t, in, out)
}
