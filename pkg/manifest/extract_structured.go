package manifest

import (
	"encoding/json"
	"fmt"

	"github.com/pelletier/go-toml/v2"
	"golang.org/x/mod/modfile"
	"gopkg.in/yaml.v3"
)

// jsonExtractor covers package.json and composer.json: top-level dependency
// sections mapping package name to a version string.
type jsonExtractor struct {
	sections []string
}

func (e *jsonExtractor) Extract(content []byte, q Query) (string, bool, error) {
	return extractFrom(e, content, q)
}

func (e *jsonExtractor) entries(content []byte) (map[string]string, error) {
	var doc map[string]json.RawMessage
	if err := json.Unmarshal(content, &doc); err != nil {
		return nil, err
	}
	entries := make(map[string]string)
	for _, section := range e.sections {
		raw, ok := doc[section]
		if !ok {
			continue
		}
		var deps map[string]string
		if err := json.Unmarshal(raw, &deps); err != nil {
			return nil, fmt.Errorf("section %q: %w", section, err)
		}
		mergeEntries(entries, deps)
	}
	return entries, nil
}

// tomlExtractor covers Cargo.toml and Pipfile. Values are either plain
// version strings or inline tables carrying a "version" key.
type tomlExtractor struct {
	sections []string
}

func (e *tomlExtractor) Extract(content []byte, q Query) (string, bool, error) {
	return extractFrom(e, content, q)
}

func (e *tomlExtractor) entries(content []byte) (map[string]string, error) {
	var doc map[string]any
	if err := toml.Unmarshal(content, &doc); err != nil {
		return nil, err
	}
	entries := make(map[string]string)
	for _, section := range e.sections {
		deps, ok := doc[section].(map[string]any)
		if !ok {
			continue
		}
		mergeEntries(entries, flattenVersions(deps))
	}
	return entries, nil
}

// yamlExtractor covers pubspec.yaml. Values are plain version constraints or
// maps (git/path/sdk dependencies), which carry no comparable version and are
// skipped unless they declare one.
type yamlExtractor struct {
	sections []string
}

func (e *yamlExtractor) Extract(content []byte, q Query) (string, bool, error) {
	return extractFrom(e, content, q)
}

func (e *yamlExtractor) entries(content []byte) (map[string]string, error) {
	var doc map[string]any
	if err := yaml.Unmarshal(content, &doc); err != nil {
		return nil, err
	}
	entries := make(map[string]string)
	for _, section := range e.sections {
		deps, ok := doc[section].(map[string]any)
		if !ok {
			continue
		}
		mergeEntries(entries, flattenVersions(deps))
	}
	return entries, nil
}

// pnpmLockExtractor reads pnpm-lock.yaml. Modern lockfiles nest dependencies
// under importers, older ones keep them at the top level; both carry either a
// plain version or a {specifier, version} pair.
type pnpmLockExtractor struct{}

func (e *pnpmLockExtractor) Extract(content []byte, q Query) (string, bool, error) {
	return extractFrom(e, content, q)
}

func (e *pnpmLockExtractor) entries(content []byte) (map[string]string, error) {
	var doc map[string]any
	if err := yaml.Unmarshal(content, &doc); err != nil {
		return nil, err
	}
	entries := make(map[string]string)
	collect := func(node any) {
		deps, ok := node.(map[string]any)
		if !ok {
			return
		}
		mergeEntries(entries, flattenVersions(deps))
	}
	collect(doc["dependencies"])
	collect(doc["devDependencies"])
	if importers, ok := doc["importers"].(map[string]any); ok {
		if root, ok := importers["."].(map[string]any); ok {
			collect(root["dependencies"])
			collect(root["devDependencies"])
		}
	}
	return entries, nil
}

// goModExtractor reads require directives through x/mod's parser.
type goModExtractor struct{}

func (e *goModExtractor) Extract(content []byte, q Query) (string, bool, error) {
	mf, err := modfile.Parse("go.mod", content, nil)
	if err != nil {
		return "", false, fmt.Errorf("%w: %v", ErrParse, err)
	}
	entries := make(map[string]string, len(mf.Require))
	for _, req := range mf.Require {
		entries[req.Mod.Path] = req.Mod.Version
	}
	v, ok, _ := selectEntry(entries, q)
	return v, ok, nil
}

// flattenVersions normalizes a decoded dependency section: plain strings pass
// through, tables contribute their "version"/"specifier" key when present.
func flattenVersions(deps map[string]any) map[string]string {
	out := make(map[string]string, len(deps))
	for name, value := range deps {
		switch v := value.(type) {
		case string:
			out[name] = v
		case map[string]any:
			if s, ok := v["version"].(string); ok {
				out[name] = s
			} else if s, ok := v["specifier"].(string); ok {
				out[name] = s
			}
		}
	}
	return out
}

// mergeEntries keeps the first-seen version for a name so earlier sections
// (runtime dependencies) win over later ones (dev dependencies).
func mergeEntries(dst map[string]string, src map[string]string) {
	for name, version := range src {
		if _, seen := dst[name]; !seen {
			dst[name] = version
		}
	}
}
