//go:generate go run go.uber.org/mock/mockgen@v0.5.2 -destination=mock_reconciler.gen.go -package=drift -source=reconciler.go Reconciler
package drift

import (
	"sort"
	"strings"

	"github.com/Masterminds/semver/v3"

	"github.com/lerenn/scout/pkg/manifest"
)

// ManifestSet holds the primary manifest content per format for one codebase.
type ManifestSet map[manifest.Format][]byte

// Reconciler computes the drift report for tracked packages across codebases.
type Reconciler interface {
	// Reconcile produces one Report per tracked package, in tracked order,
	// with entries sorted by codebase name. Running it twice over the same
	// sources yields identical output.
	Reconcile(sources map[string]ManifestSet, tracked []TrackedPackage) []Report
}

type reconciler struct{}

// NewReconciler creates the default Reconciler.
func NewReconciler() Reconciler {
	return &reconciler{}
}

var _ Reconciler = (*reconciler)(nil)

func (r *reconciler) Reconcile(sources map[string]ManifestSet, tracked []TrackedPackage) []Report {
	codebases := make([]string, 0, len(sources))
	for name := range sources {
		codebases = append(codebases, name)
	}
	sort.Strings(codebases)

	reports := make([]Report, 0, len(tracked))
	for _, pkg := range tracked {
		entries := make([]Entry, 0, len(codebases))
		for _, codebase := range codebases {
			entries = append(entries, extractEntry(codebase, sources[codebase], pkg))
		}
		report := Report{
			Package: pkg.Name,
			Verdict: verdict(entries),
			Entries: entries,
		}
		if report.Verdict == VerdictMismatched {
			report.Newest = newestVersion(entries)
		}
		reports = append(reports, report)
	}
	return reports
}

// extractEntry consults the codebase's manifests in format order and returns
// the first found declaration. A parse failure in any consulted manifest is
// remembered so absence can be distinguished from unreadability.
func extractEntry(codebase string, set ManifestSet, pkg TrackedPackage) Entry {
	query := manifest.Query{Name: pkg.Name, Prefix: pkg.Prefix}
	parseFailed := false
	for _, format := range manifest.Formats() {
		content, ok := set[format]
		if !ok {
			continue
		}
		version, found, err := manifest.ExtractorFor(format).Extract(content, query)
		if err != nil {
			parseFailed = true
			continue
		}
		if found {
			return Entry{Codebase: codebase, Version: version, Reason: ReasonFound}
		}
	}
	if parseFailed {
		return Entry{Codebase: codebase, Reason: ReasonParseError}
	}
	return Entry{Codebase: codebase, Reason: ReasonAbsent}
}

// verdict applies exact string comparison over found versions: two or more
// distinct values is drift, a single value shared by at least two codebases
// is a match, anything less is not enough data to judge.
func verdict(entries []Entry) Verdict {
	distinct := make(map[string]struct{})
	found := 0
	for _, e := range entries {
		if e.Reason == ReasonFound {
			found++
			distinct[e.Version] = struct{}{}
		}
	}
	switch {
	case len(distinct) >= 2:
		return VerdictMismatched
	case len(distinct) == 1 && found >= 2:
		return VerdictMatched
	default:
		return VerdictInsufficientData
	}
}

// newestVersion ranks found versions semantically and returns the highest.
// Range operators are trimmed before parsing; if any version still fails to
// parse the hint is withheld rather than guessed.
func newestVersion(entries []Entry) string {
	var newestRaw string
	var newest *semver.Version
	for _, e := range entries {
		if e.Reason != ReasonFound {
			continue
		}
		v, err := semver.NewVersion(strings.TrimLeft(e.Version, "^~><= v"))
		if err != nil {
			return ""
		}
		if newest == nil || v.GreaterThan(newest) {
			newest = v
			newestRaw = e.Version
		}
	}
	return newestRaw
}
