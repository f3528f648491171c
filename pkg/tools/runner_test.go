package tools

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRunner_UnavailableTool(t *testing.T) {
	r := NewRunner()
	require.False(t, r.Available("scout-no-such-binary"))

	_, err := r.Run(context.Background(), "scout-no-such-binary")
	require.ErrorIs(t, err, ErrUnavailable)
}

// unavailableRunner simulates a machine with no collaborator tools installed.
type unavailableRunner struct{}

func (unavailableRunner) Available(string) bool { return false }
func (unavailableRunner) Run(context.Context, string, ...string) ([]byte, error) {
	return nil, ErrUnavailable
}

func TestTree_FallsBackWithoutExternalTools(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "src", "deep", "deeper"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(root, "src", "main.go"), nil, 0o644))

	out, fellBack, err := Tree(context.Background(), unavailableRunner{}, root, 2)
	require.NoError(t, err)
	require.True(t, fellBack)
	require.Contains(t, out, "src/")
	require.Contains(t, out, "main.go")
	require.Contains(t, out, "deep/")
	// Depth bound holds.
	require.NotContains(t, out, "deeper")
}

func TestAnalyze_UnavailableTool(t *testing.T) {
	_, err := Analyze(context.Background(), unavailableRunner{}, t.TempDir())
	require.ErrorIs(t, err, ErrUnavailable)
}

// fixedRunner returns canned output for one tool.
type fixedRunner struct {
	out string
}

func (fixedRunner) Available(string) bool { return true }
func (r fixedRunner) Run(context.Context, string, ...string) ([]byte, error) {
	return []byte(r.out), nil
}

func TestAnalyze_ParsesTokeiOutput(t *testing.T) {
	out := `{"Go": {"code": 1200, "comments": 150, "blanks": 90},
		"Rust": {"code": 3400, "comments": 200, "blanks": 120},
		"Total": {"code": 4600, "comments": 350, "blanks": 210}}`

	counts, err := Analyze(context.Background(), fixedRunner{out: out}, ".")
	require.NoError(t, err)
	require.Len(t, counts, 2)
	require.Equal(t, "Rust", counts[0].Language) // sorted by code desc
	require.Equal(t, 3400, counts[0].Code)
	require.Equal(t, "Go", counts[1].Language)

	rendered := FormatCounts(counts)
	require.True(t, strings.Contains(rendered, "Rust"))
	require.True(t, strings.Contains(rendered, "1200"))
}

func TestAnalyze_BadOutput(t *testing.T) {
	_, err := Analyze(context.Background(), fixedRunner{out: "nonsense"}, ".")
	require.Error(t, err)
}
