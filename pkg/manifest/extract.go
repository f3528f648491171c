package manifest

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// ErrParse reports that a manifest exists but its content could not be parsed
// for its declared format. Callers degrade the single pair, never the run.
var ErrParse = errors.New("manifest parse error")

// Query selects a tracked package inside a manifest. With Prefix set, any
// entry whose name starts with Name matches and the lexically-first matching
// name is selected; ties between equal names are impossible, but which
// sub-package of a family "wins" is an accepted limitation of prefix mode.
type Query struct {
	Name   string
	Prefix bool
}

// Extractor extracts a declared version for one tracked package from raw
// manifest content.
type Extractor interface {
	// Extract returns the declared version string and whether the package was
	// found. A non-nil error wraps ErrParse and implies found == false.
	Extract(content []byte, q Query) (string, bool, error)
}

// ExtractorFor returns the extraction rule for a format. Every recognized
// format has a rule; adding a format means adding one rule here.
func ExtractorFor(format Format) Extractor {
	switch format {
	case FormatPackageJSON:
		return &jsonExtractor{sections: []string{"dependencies", "devDependencies"}}
	case FormatComposerJSON:
		return &jsonExtractor{sections: []string{"require", "require-dev"}}
	case FormatCargoToml:
		return &tomlExtractor{sections: []string{"dependencies", "dev-dependencies", "build-dependencies"}}
	case FormatPipfile:
		return &tomlExtractor{sections: []string{"packages", "dev-packages"}}
	case FormatPubspecYaml:
		return &yamlExtractor{sections: []string{"dependencies", "dev_dependencies"}}
	case FormatPnpmLock:
		return &pnpmLockExtractor{}
	case FormatRequirements:
		return &requirementsExtractor{}
	case FormatYarnLock:
		return &yarnLockExtractor{}
	case FormatGoMod:
		return &goModExtractor{}
	}
	return nil
}

// entryLister is the shared shape of most rules: parse the manifest into a
// flat name→version map, then let select pick the queried entry.
type entryLister interface {
	entries(content []byte) (map[string]string, error)
}

func extractFrom(l entryLister, content []byte, q Query) (string, bool, error) {
	entries, err := l.entries(content)
	if err != nil {
		return "", false, fmt.Errorf("%w: %v", ErrParse, err)
	}
	return selectEntry(entries, q)
}

// selectEntry resolves a query against a flat dependency map. Exact match is
// case-sensitive; prefix mode picks the lexically-first matching name.
func selectEntry(entries map[string]string, q Query) (string, bool, error) {
	if !q.Prefix {
		v, ok := entries[q.Name]
		return v, ok, nil
	}
	var names []string
	for name := range entries {
		if strings.HasPrefix(name, q.Name) {
			names = append(names, name)
		}
	}
	if len(names) == 0 {
		return "", false, nil
	}
	sort.Strings(names)
	return entries[names[0]], true, nil
}
