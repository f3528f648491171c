package scout

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/lerenn/scout/pkg/config"
	"github.com/lerenn/scout/pkg/drift"
	"github.com/lerenn/scout/pkg/manifest"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestDrift_FirebaseFamilyAcrossCodebases(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "backend", "package.json"),
		`{"dependencies": {"firebase-admin": "12.0.0"}}`)
	writeFile(t, filepath.Join(root, "frontend", "package.json"),
		`{"dependencies": {"firebase": "10.1.0"}}`)

	s := New(&config.Config{
		Tracked: []drift.TrackedPackage{{Name: "firebase", Prefix: true}},
	}, "")

	reports, err := s.Drift(context.Background(), root)
	require.NoError(t, err)
	require.Len(t, reports, 1)
	require.Equal(t, drift.VerdictMismatched, reports[0].Verdict)
	require.Len(t, reports[0].Entries, 2)

	versions := map[string]string{}
	for _, e := range reports[0].Entries {
		require.Equal(t, drift.ReasonFound, e.Reason)
		versions[e.Codebase] = e.Version
	}
	require.Equal(t, "12.0.0", versions["backend"])
	require.Equal(t, "10.1.0", versions["frontend"])
}

func TestDrift_ConfiguredCodebasesWithRelativePaths(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "api", "go.mod"),
		"module example.com/api\n\nrequire go.uber.org/zap v1.27.0\n")
	writeFile(t, filepath.Join(root, "worker", "go.mod"),
		"module example.com/worker\n\nrequire go.uber.org/zap v1.26.0\n")

	s := New(&config.Config{
		Codebases: []config.Codebase{
			{Name: "api", Path: "api"},
			{Name: "worker", Path: "worker"},
		},
		Tracked: []drift.TrackedPackage{{Name: "go.uber.org/zap"}},
	}, "")

	reports, err := s.Drift(context.Background(), root)
	require.NoError(t, err)
	require.Equal(t, drift.VerdictMismatched, reports[0].Verdict)
}

func TestDrift_UnreadableRoot(t *testing.T) {
	s := New(&config.Config{}, "")
	_, err := s.Drift(context.Background(), filepath.Join(t.TempDir(), "nope"))
	require.Error(t, err)
}

func TestDrift_DefaultTrackedWhenUnconfigured(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "backend", "package.json"),
		`{"dependencies": {"typescript": "5.1.0"}}`)
	writeFile(t, filepath.Join(root, "frontend", "package.json"),
		`{"dependencies": {"typescript": "5.1.0"}}`)

	s := New(&config.Config{}, "")
	reports, err := s.Drift(context.Background(), root)
	require.NoError(t, err)
	require.Len(t, reports, len(config.DefaultTracked()))

	byPackage := map[string]drift.Report{}
	for _, r := range reports {
		byPackage[r.Package] = r
	}
	require.Equal(t, drift.VerdictMatched, byPackage["typescript"].Verdict)
	require.Equal(t, drift.VerdictInsufficientData, byPackage["firebase"].Verdict)
}

func TestHealth_PresenceOnly(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "backend", "go.mod"), "module example.com/backend\n")
	// Broken JSON must not matter: health never parses.
	writeFile(t, filepath.Join(root, "frontend", "package.json"), "{broken")

	s := New(&config.Config{}, "")
	checks, err := s.Health(context.Background(), root)
	require.NoError(t, err)

	present := map[string]map[manifest.Format]bool{}
	for _, c := range checks {
		if present[c.Codebase] == nil {
			present[c.Codebase] = map[manifest.Format]bool{}
		}
		present[c.Codebase][c.Format] = c.Present
	}
	require.True(t, present["backend"][manifest.FormatGoMod])
	require.True(t, present["frontend"][manifest.FormatPackageJSON])
	require.False(t, present["frontend"][manifest.FormatGoMod])
}
