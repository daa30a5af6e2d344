package resolver

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	merrors "github.com/modpack/cli/internal/errors"
	"github.com/modpack/cli/internal/registry"
)

func testRegistry(t *testing.T) *registry.Registry {
	t.Helper()
	reg, err := registry.New(registry.Catalog{
		Package: registry.PackageMeta{Name: "avionics_common", Version: "0.1.0"},
		Modules: []registry.Module{
			{Name: "network"},
			{Name: "logger"},
			{Name: "mavlink"},
			{Name: "hitl", Requires: []string{"mavlink"}},
			{Name: "data_encoding"},
			{Name: "image_encoding", Requires: []string{"data_encoding"}},
			{Name: "datatypes", Always: true},
		},
	})
	require.NoError(t, err)
	return reg
}

func TestResolve_EmptyRequest(t *testing.T) {
	reg := testRegistry(t)

	resolved, err := Resolve(reg, nil)
	require.NoError(t, err)

	// Only the always-included set, nothing else.
	assert.Equal(t, []string{"datatypes"}, resolved.Names())
}

func TestResolve_SupersetAndClosed(t *testing.T) {
	reg := testRegistry(t)

	resolved, err := Resolve(reg, []string{"hitl", "image_encoding"})
	require.NoError(t, err)

	// Superset of the request.
	assert.True(t, resolved.Contains("hitl"))
	assert.True(t, resolved.Contains("image_encoding"))

	// Closed under requires.
	assert.True(t, resolved.Contains("mavlink"))
	assert.True(t, resolved.Contains("data_encoding"))

	// Always-included present.
	assert.True(t, resolved.Contains("datatypes"))

	// Nothing nobody asked for.
	assert.False(t, resolved.Contains("network"))
	assert.False(t, resolved.Contains("logger"))
}

func TestResolve_Idempotent(t *testing.T) {
	reg := testRegistry(t)

	first, err := Resolve(reg, []string{"hitl", "logger"})
	require.NoError(t, err)

	second, err := Resolve(reg, first.Names())
	require.NoError(t, err)

	assert.Equal(t, first.Names(), second.Names())
}

func TestResolve_NetworkAndLogger(t *testing.T) {
	reg := testRegistry(t)

	resolved, err := Resolve(reg, []string{"network", "logger"})
	require.NoError(t, err)

	assert.Equal(t, []string{"datatypes", "logger", "network"}, resolved.Names())
}

func TestResolve_UnknownModule(t *testing.T) {
	reg := testRegistry(t)

	_, err := Resolve(reg, []string{"network", "ghost"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, merrors.ErrUnknownModule))
	assert.Contains(t, err.Error(), "ghost")
}

func TestResolve_Cycle(t *testing.T) {
	reg, err := registry.New(registry.Catalog{
		Modules: []registry.Module{
			{Name: "a", Requires: []string{"b"}},
			{Name: "b", Requires: []string{"a"}},
		},
	})
	require.NoError(t, err)

	_, err = Resolve(reg, []string{"a"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, merrors.ErrCycle))
	assert.Contains(t, err.Error(), "a -> b -> a")
}

func TestResolve_LongCycle(t *testing.T) {
	reg, err := registry.New(registry.Catalog{
		Modules: []registry.Module{
			{Name: "a", Requires: []string{"b"}},
			{Name: "b", Requires: []string{"c"}},
			{Name: "c", Requires: []string{"a"}},
			{Name: "standalone"},
		},
	})
	require.NoError(t, err)

	_, err = Resolve(reg, []string{"c"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, merrors.ErrCycle))

	// Modules outside the cycle still resolve.
	resolved, err := Resolve(reg, []string{"standalone"})
	require.NoError(t, err)
	assert.Equal(t, []string{"standalone"}, resolved.Names())
}

func TestResolve_SharedRequirementOnce(t *testing.T) {
	reg, err := registry.New(registry.Catalog{
		Modules: []registry.Module{
			{Name: "shared"},
			{Name: "left", Requires: []string{"shared"}},
			{Name: "right", Requires: []string{"shared"}},
		},
	})
	require.NoError(t, err)

	resolved, err := Resolve(reg, []string{"left", "right"})
	require.NoError(t, err)
	assert.Equal(t, []string{"left", "right", "shared"}, resolved.Names())
}
