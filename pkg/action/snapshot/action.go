package snapshot

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/google/go-cmp/cmp"

	"github.com/cmmoran/buildergen/pkg/action/generate"
	"github.com/cmmoran/buildergen/pkg/manifest"
	"github.com/cmmoran/buildergen/pkg/options"
)

// Generate writes the builder definitions into <OutDir>/<version> and records
// the snapshot in the manifest. The manifest is not updated when generation
// fails.
func Generate(ctx context.Context, opts *options.Options, manifestPath, snapshotName, snapshotVersion string) (string, error) {
	m, err := manifest.Load(manifestPath)
	if err != nil {
		return "", err
	}

	o := *opts
	o.OutDir = filepath.Join(opts.OutDir, snapshotVersion)
	s := manifest.Snapshot{Name: snapshotName, Version: snapshotVersion, Dir: filepath.Clean(o.OutDir)}
	// validate before writing anything
	check := *m
	check.Snapshots = append([]manifest.Snapshot(nil), m.Snapshots...)
	if err = check.AddSnapshot(s); err != nil {
		return "", err
	}

	if _, err = generate.Generate(ctx, &o); err != nil {
		return "", err
	}
	if err = m.AddSnapshot(s); err != nil {
		return "", err
	}
	if err := m.Save(manifestPath); err != nil {
		return "", err
	}

	return s.Dir, nil
}

// List returns all snapshots recorded in the manifest.
func List(manifestPath string) (*manifest.Manifest, error) {
	return manifest.Load(manifestPath)
}

// DiffCurrentWithPrevious loads the manifest, locates the current and previous
// snapshot directories, and returns a textual diff per definition file.
// Files present in only one snapshot are reported as added or removed.
func DiffCurrentWithPrevious(manifestPath string) (string, error) {
	m, err := manifest.Load(manifestPath)
	if err != nil {
		return "", err
	}

	if m.CurrentVersion == "" || m.PreviousVersion == "" {
		return "", fmt.Errorf("no current/previous snapshots recorded")
	}

	currentDir := m.SnapshotDir(m.CurrentVersion)
	previousDir := m.SnapshotDir(m.PreviousVersion)

	if currentDir == "" || previousDir == "" {
		return "", fmt.Errorf("snapshot directories not found in manifest")
	}

	current, err := readDir(currentDir)
	if err != nil {
		return "", fmt.Errorf("read current snapshot: %w", err)
	}

	previous, err := readDir(previousDir)
	if err != nil {
		return "", fmt.Errorf("read previous snapshot: %w", err)
	}

	return Diff(previous, current), nil
}

// Diff compares two snapshots keyed by file name.
func Diff(previous, current map[string]string) string {
	names := make([]string, 0, len(previous)+len(current))
	for n := range previous {
		names = append(names, n)
	}
	for n := range current {
		if _, ok := previous[n]; !ok {
			names = append(names, n)
		}
	}
	sort.Strings(names)

	var b strings.Builder
	for _, n := range names {
		prev, hadPrev := previous[n]
		cur, hasCur := current[n]
		switch {
		case !hasCur:
			fmt.Fprintf(&b, "removed %s\n", n)
		case !hadPrev:
			fmt.Fprintf(&b, "added %s\n", n)
		default:
			if d := cmp.Diff(prev, cur); d != "" {
				fmt.Fprintf(&b, "changed %s\n%s\n", n, d)
			}
		}
	}
	return b.String()
}

func readDir(dir string) (map[string]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	out := make(map[string]string, len(entries))
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		data, err := os.ReadFile(filepath.Join(dir, e.Name()))
		if err != nil {
			return nil, err
		}
		out[e.Name()] = string(data)
	}
	return out, nil
}
