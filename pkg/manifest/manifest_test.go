package manifest

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMissing(t *testing.T) {
	m, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Empty(t, m.Snapshots)
	assert.Empty(t, m.CurrentVersion)
}

func TestAddSnapshot(t *testing.T) {
	m := &Manifest{}
	require.NoError(t, m.AddSnapshot(Snapshot{Name: "orders", Version: "v1.0.0", Dir: "out/v1.0.0"}))
	require.NoError(t, m.AddSnapshot(Snapshot{Name: "orders", Version: "v1.1.0", Dir: "out/v1.1.0"}))
	assert.Equal(t, "v1.1.0", m.CurrentVersion)
	assert.Equal(t, "v1.0.0", m.PreviousVersion)

	// regenerating the current version keeps the previous pointer
	require.NoError(t, m.AddSnapshot(Snapshot{Name: "orders", Version: "v1.1.0", Dir: "out/again"}))
	assert.Equal(t, "v1.0.0", m.PreviousVersion)
	assert.Len(t, m.Snapshots, 2)
	assert.Equal(t, "out/again", m.SnapshotDir("v1.1.0"))
	assert.Empty(t, m.SnapshotDir("v9.0.0"))

	assert.Error(t, m.AddSnapshot(Snapshot{Name: "orders", Version: "1.2"}))
	assert.Error(t, m.AddSnapshot(Snapshot{Name: "orders", Version: "v0.9.0"}))
}

func TestSaveLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "manifest.yaml")
	m := &Manifest{}
	require.NoError(t, m.AddSnapshot(Snapshot{Name: "orders", Version: "v1.0.0", Dir: "out/v1.0.0"}))
	require.NoError(t, m.Save(path))

	got, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, m, got)

	require.NoError(t, os.WriteFile(path, []byte("snapshots:\n  - {name: x, version: latest}\n"), 0o644))
	_, err = Load(path)
	assert.ErrorContains(t, err, "invalid version")
}
