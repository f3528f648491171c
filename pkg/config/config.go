// Package config loads the scout configuration file and discovers codebases
// when no configuration is present.
package config

import (
	"os"
	"path/filepath"
	"sort"

	"github.com/spf13/viper"

	"github.com/lerenn/scout/pkg/drift"
	"github.com/lerenn/scout/pkg/manifest"
)

// Codebase is one independently versioned project root under analysis.
// Either Path (local) or URL (GitHub repository) is set, never both.
type Codebase struct {
	Name string `mapstructure:"name"`
	Path string `mapstructure:"path"`
	URL  string `mapstructure:"url"`
	Ref  string `mapstructure:"ref"`
}

// Remote reports whether the codebase lives in a remote repository.
func (c Codebase) Remote() bool {
	return c.URL != ""
}

// Config is the full scout configuration.
type Config struct {
	Codebases []Codebase             `mapstructure:"codebases"`
	Tracked   []drift.TrackedPackage `mapstructure:"tracked"`
}

// Load reads the configuration from the given YAML file.
func Load(configPath string) (*Config, error) {
	viper.SetConfigFile(configPath)
	viper.SetConfigType("yaml")

	var config Config

	if err := viper.ReadInConfig(); err != nil {
		return nil, err
	}

	if err := viper.Unmarshal(&config); err != nil {
		return nil, err
	}

	return &config, nil
}

// Discover enumerates codebases under root when no config file is given: the
// root itself (when it directly holds a recognized manifest) plus every
// immediate subdirectory holding one. Returns an error only when the root
// itself is unreadable.
func Discover(root string, locator manifest.Locator) ([]Codebase, error) {
	dirEntries, err := os.ReadDir(root)
	if err != nil {
		return nil, err
	}

	var codebases []Codebase
	if hasRootManifest(root) {
		codebases = append(codebases, Codebase{Name: filepath.Base(absOrSelf(root)), Path: root})
	}
	for _, entry := range dirEntries {
		if !entry.IsDir() {
			continue
		}
		sub := filepath.Join(root, entry.Name())
		if len(locator.Locate(sub)) > 0 {
			codebases = append(codebases, Codebase{Name: entry.Name(), Path: sub})
		}
	}
	sort.Slice(codebases, func(i, j int) bool { return codebases[i].Name < codebases[j].Name })
	return codebases, nil
}

// DefaultTracked is the tracked-package list used when the configuration
// declares none: the firebase SDK family plus the shared toolchain packages
// the drift check was built for.
func DefaultTracked() []drift.TrackedPackage {
	return []drift.TrackedPackage{
		{Name: "firebase", Prefix: true},
		{Name: "typescript"},
		{Name: "react-native"},
	}
}

// hasRootManifest checks the root directory itself, without recursing, so a
// bare parent of codebase subdirectories is not counted as a codebase.
func hasRootManifest(root string) bool {
	entries, err := os.ReadDir(root)
	if err != nil {
		return false
	}
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if _, ok := manifest.FormatForFilename(entry.Name()); ok {
			return true
		}
	}
	return false
}

func absOrSelf(path string) string {
	if abs, err := filepath.Abs(path); err == nil {
		return abs
	}
	return path
}
