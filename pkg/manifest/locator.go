//go:generate go run go.uber.org/mock/mockgen@v0.5.2 -destination=mock_locator.gen.go -package=manifest -source=locator.go Locator
package manifest

import (
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// excludePatterns skips conventional dependency and build-output directories
// so nested third-party copies do not surface as project manifests.
var excludePatterns = []string{
	"**/node_modules",
	"**/vendor",
	"**/target",
	"**/build",
	"**/dist",
	"**/.git",
	"**/.dart_tool",
	"**/__pycache__",
	"**/.venv",
}

// Locator finds recognized manifests under a codebase root.
type Locator interface {
	// Locate returns every recognized manifest under root, ordered by path
	// depth then lexical path. A missing or unreadable root yields an empty
	// result, not an error: absence is data for the caller.
	Locate(root string) []Manifest
}

type locator struct{}

// NewLocator creates the filesystem-backed Locator.
func NewLocator() Locator {
	return &locator{}
}

var _ Locator = (*locator)(nil)

func (l *locator) Locate(root string) []Manifest {
	info, err := os.Stat(root)
	if err != nil || !info.IsDir() {
		return nil
	}

	var found []Manifest
	_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			// Unreadable subtree: skip it, keep walking the rest.
			if d != nil && d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		rel, relErr := filepath.Rel(root, path)
		if relErr != nil {
			return nil
		}
		if d.IsDir() {
			if rel != "." && excluded(rel) {
				return filepath.SkipDir
			}
			return nil
		}
		if format, ok := FormatForFilename(d.Name()); ok {
			found = append(found, Manifest{Path: filepath.ToSlash(rel), Format: format})
		}
		return nil
	})

	sort.Slice(found, func(i, j int) bool {
		di, dj := pathDepth(found[i].Path), pathDepth(found[j].Path)
		if di != dj {
			return di < dj
		}
		return found[i].Path < found[j].Path
	})
	return found
}

// Primary returns the shallowest, lexically-first manifest of the given
// format, relying on Locate's ordering. Returns false when the format is
// absent from the located set.
func Primary(located []Manifest, format Format) (Manifest, bool) {
	for _, m := range located {
		if m.Format == format {
			return m, true
		}
	}
	return Manifest{}, false
}

func pathDepth(rel string) int {
	return strings.Count(rel, "/")
}

func excluded(rel string) bool {
	rel = filepath.ToSlash(rel)
	for _, pattern := range excludePatterns {
		// ** matches zero segments, so the pattern also covers a top-level
		// directory of that name.
		if ok, _ := doublestar.Match(pattern, rel); ok {
			return true
		}
	}
	return false
}
