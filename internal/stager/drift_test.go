package stager

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComputeDrift_NoDrift(t *testing.T) {
	m := &Manifest{Name: "avionics_common", Version: "0.1.0", Modules: []string{"logger", "network"}}

	drift, err := ComputeDrift(m, m)
	require.NoError(t, err)

	assert.True(t, drift.IsEmpty())
	assert.Empty(t, drift.Stale)
	assert.Empty(t, drift.Missing)
	assert.Empty(t, drift.ManifestDiff)
}

func TestComputeDrift_StaleAndMissing(t *testing.T) {
	staged := &Manifest{Name: "avionics_common", Version: "0.1.0", Modules: []string{"camera", "logger"}}
	desired := &Manifest{Name: "avionics_common", Version: "0.1.0", Modules: []string{"logger", "network"}}

	drift, err := ComputeDrift(staged, desired)
	require.NoError(t, err)

	assert.False(t, drift.IsEmpty())
	assert.Equal(t, []string{"camera"}, drift.Stale)
	assert.Equal(t, []string{"network"}, drift.Missing)
	assert.NotEmpty(t, drift.ManifestDiff)
}

func TestComputeDrift_VersionChangeOnly(t *testing.T) {
	staged := &Manifest{Name: "avionics_common", Version: "0.1.0", Modules: []string{"logger"}}
	desired := &Manifest{Name: "avionics_common", Version: "0.2.0", Modules: []string{"logger"}}

	drift, err := ComputeDrift(staged, desired)
	require.NoError(t, err)

	// Module sets match but the manifests still differ.
	assert.True(t, drift.IsEmpty())
	assert.NotEmpty(t, drift.ManifestDiff)
}
