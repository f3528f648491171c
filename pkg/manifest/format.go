// Package manifest locates dependency-declaration files under codebase roots
// and extracts declared versions from them, one extraction rule per format.
package manifest

// Format identifies a recognized dependency-manifest format.
type Format string

const (
	FormatPackageJSON  Format = "package.json"
	FormatRequirements Format = "requirements.txt"
	FormatCargoToml    Format = "Cargo.toml"
	FormatPipfile      Format = "Pipfile"
	FormatComposerJSON Format = "composer.json"
	FormatPubspecYaml  Format = "pubspec.yaml"
	FormatPnpmLock     Format = "pnpm-lock.yaml"
	FormatYarnLock     Format = "yarn.lock"
	FormatGoMod        Format = "go.mod"
)

// Formats lists every recognized format in the order extraction consults them.
// Declaration manifests come before lockfiles so a declared range wins over a
// resolved pin when both are present.
func Formats() []Format {
	return []Format{
		FormatPackageJSON,
		FormatRequirements,
		FormatCargoToml,
		FormatPipfile,
		FormatComposerJSON,
		FormatPubspecYaml,
		FormatGoMod,
		FormatPnpmLock,
		FormatYarnLock,
	}
}

// FormatForFilename maps a base filename to its Format.
// Returns false for files that are not recognized manifests.
func FormatForFilename(name string) (Format, bool) {
	switch name {
	case "package.json":
		return FormatPackageJSON, true
	case "requirements.txt":
		return FormatRequirements, true
	case "Cargo.toml":
		return FormatCargoToml, true
	case "Pipfile":
		return FormatPipfile, true
	case "composer.json":
		return FormatComposerJSON, true
	case "pubspec.yaml":
		return FormatPubspecYaml, true
	case "pnpm-lock.yaml":
		return FormatPnpmLock, true
	case "yarn.lock":
		return FormatYarnLock, true
	case "go.mod":
		return FormatGoMod, true
	}
	return "", false
}

// Manifest is a single dependency-declaration file found under a codebase root.
type Manifest struct {
	// Path is relative to the codebase root it was located under.
	Path   string
	Format Format
}
