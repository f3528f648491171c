// Package drift compares declared versions of tracked packages across
// codebases and reports textual divergence.
package drift

import "encoding/json"

// Verdict classifies one tracked package across all codebases.
type Verdict string

const (
	VerdictMatched          Verdict = "MATCHED"
	VerdictMismatched       Verdict = "MISMATCHED"
	VerdictInsufficientData Verdict = "INSUFFICIENT_DATA"
)

// Reason explains how a version entry was (or was not) obtained.
type Reason string

const (
	ReasonFound      Reason = "FOUND"
	ReasonAbsent     Reason = "ABSENT"
	ReasonParseError Reason = "PARSE_ERROR"
)

// TrackedPackage is a dependency name monitored for cross-codebase drift.
// With Prefix set it matches a whole family (any name starting with Name).
type TrackedPackage struct {
	Name   string `mapstructure:"name"`
	Prefix bool   `mapstructure:"prefix"`
}

// Entry is the extraction result for one (codebase, tracked package) pair.
// Every pair produces exactly one Entry per run; absence is a reason code,
// never a missing element.
type Entry struct {
	Codebase string
	Version  string
	Reason   Reason
}

// MarshalJSON emits a null version for entries that carry no found version,
// matching the structured output contract.
func (e Entry) MarshalJSON() ([]byte, error) {
	var version *string
	if e.Reason == ReasonFound {
		version = &e.Version
	}
	return json.Marshal(struct {
		Codebase string  `json:"codebase"`
		Version  *string `json:"version"`
		Reason   Reason  `json:"reason"`
	}{e.Codebase, version, e.Reason})
}

// Report aggregates the entries and verdict for one tracked package.
// Newest is an informative hint only set on MISMATCHED reports whose found
// versions all parse as semantic versions; it never influences the verdict.
type Report struct {
	Package string  `json:"package"`
	Verdict Verdict `json:"verdict"`
	Entries []Entry `json:"entries"`
	Newest  string  `json:"newest,omitempty"`
}
