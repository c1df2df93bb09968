package snapshot

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cmmoran/buildergen/pkg/options"
)

func TestSnapshotLifecycle(t *testing.T) {
	out := t.TempDir()
	manifestPath := filepath.Join(out, "manifest.yaml")
	opts := options.NewOptions()
	opts.InDir = filepath.Join("..", "..", "..", "testdata", "model")
	opts.OutDir = out

	dir, err := Generate(context.Background(), opts, manifestPath, "orders", "v1.0.0")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(out, "v1.0.0"), dir)
	assert.FileExists(t, filepath.Join(dir, "com.acme.orders.OrderBuilder.yaml"))
	assert.Equal(t, out, opts.OutDir, "options must not be modified")

	_, err = DiffCurrentWithPrevious(manifestPath)
	assert.Error(t, err, "a single snapshot has nothing to diff against")

	opts.Builder.Supplier = false
	_, err = Generate(context.Background(), opts, manifestPath, "orders", "v1.1.0")
	require.NoError(t, err)

	m, err := List(manifestPath)
	require.NoError(t, err)
	require.Len(t, m.Snapshots, 2)
	assert.Equal(t, "v1.1.0", m.CurrentVersion)
	assert.Equal(t, "v1.0.0", m.PreviousVersion)

	diff, err := DiffCurrentWithPrevious(manifestPath)
	require.NoError(t, err)
	assert.Contains(t, diff, "changed com.acme.orders.OrderBuilder.yaml")
	assert.Contains(t, diff, "supplier")
	assert.NotContains(t, diff, "module.yaml")

	_, err = Generate(context.Background(), opts, manifestPath, "orders", "v0.1.0")
	assert.Error(t, err)
	assert.NoDirExists(t, filepath.Join(out, "v0.1.0"))
}

func TestDiff(t *testing.T) {
	got := Diff(
		map[string]string{"a.yaml": "x", "b.yaml": "same", "gone.yaml": "1"},
		map[string]string{"a.yaml": "y", "b.yaml": "same", "new.yaml": "2"},
	)
	assert.Contains(t, got, "changed a.yaml")
	assert.Contains(t, got, "removed gone.yaml")
	assert.Contains(t, got, "added new.yaml")
	assert.NotContains(t, got, "b.yaml")
}

func TestDiffMissingDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "manifest.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`current_version: v1.1.0
previous_version: v1.0.0
snapshots:
  - {name: a, version: v1.0.0, dir: /does/not/exist}
  - {name: a, version: v1.1.0, dir: /does/not/exist/either}
`), 0o644))
	_, err := DiffCurrentWithPrevious(path)
	assert.ErrorContains(t, err, "read current snapshot")
}
