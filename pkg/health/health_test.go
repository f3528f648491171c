package health

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/lerenn/scout/pkg/manifest"
)

func TestCheck_PresenceMatrix(t *testing.T) {
	located := map[string][]manifest.Manifest{
		"backend": {
			{Path: "go.mod", Format: manifest.FormatGoMod},
			{Path: "tools/package.json", Format: manifest.FormatPackageJSON},
		},
		"frontend": {
			{Path: "package.json", Format: manifest.FormatPackageJSON},
		},
	}

	checks := NewChecker().Check(located)
	// One cell per (codebase, recognized format), codebases in sorted order.
	require.Len(t, checks, 2*len(manifest.Formats()))
	require.Equal(t, "backend", checks[0].Codebase)

	present := map[string]map[manifest.Format]bool{}
	for _, c := range checks {
		if present[c.Codebase] == nil {
			present[c.Codebase] = map[manifest.Format]bool{}
		}
		present[c.Codebase][c.Format] = c.Present
	}
	require.True(t, present["backend"][manifest.FormatGoMod])
	require.True(t, present["backend"][manifest.FormatPackageJSON])
	require.False(t, present["backend"][manifest.FormatCargoToml])
	require.True(t, present["frontend"][manifest.FormatPackageJSON])
	require.False(t, present["frontend"][manifest.FormatGoMod])
}

func TestCheck_NoManifestsNoFalsePositives(t *testing.T) {
	checks := NewChecker().Check(map[string][]manifest.Manifest{"empty": nil})
	require.Len(t, checks, len(manifest.Formats()))
	for _, c := range checks {
		require.False(t, c.Present)
	}
}

func TestFormatChecks(t *testing.T) {
	out := FormatChecks([]Check{
		{Codebase: "backend", Format: manifest.FormatGoMod, Present: true},
		{Codebase: "backend", Format: manifest.FormatCargoToml, Present: false},
	})
	require.Contains(t, out, "backend:")
	require.Contains(t, out, "✓ go.mod")
	require.Contains(t, out, "1 recognized format(s) absent")
}
