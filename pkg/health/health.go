// Package health reports which recognized manifest formats are present per
// codebase. It is presence-only: no manifest is ever parsed here.
package health

import (
	"fmt"
	"sort"
	"strings"

	"github.com/lerenn/scout/pkg/manifest"
)

// Check is one cell of the presence matrix.
type Check struct {
	Codebase string          `json:"codebase"`
	Format   manifest.Format `json:"manifest"`
	Present  bool            `json:"present"`
}

// Checker builds the presence matrix from located manifests.
type Checker interface {
	Check(located map[string][]manifest.Manifest) []Check
}

type checker struct{}

// NewChecker creates the default Checker.
func NewChecker() Checker {
	return &checker{}
}

var _ Checker = (*checker)(nil)

func (c *checker) Check(located map[string][]manifest.Manifest) []Check {
	codebases := make([]string, 0, len(located))
	for name := range located {
		codebases = append(codebases, name)
	}
	sort.Strings(codebases)

	var checks []Check
	for _, codebase := range codebases {
		present := make(map[manifest.Format]bool)
		for _, m := range located[codebase] {
			present[m.Format] = true
		}
		for _, format := range manifest.Formats() {
			checks = append(checks, Check{
				Codebase: codebase,
				Format:   format,
				Present:  present[format],
			})
		}
	}
	return checks
}

// FormatChecks renders the presence matrix for terminal display, one codebase
// block at a time, listing only present formats plus a count of absent ones.
func FormatChecks(checks []Check) string {
	var sb strings.Builder
	byCodebase := make(map[string][]Check)
	var order []string
	for _, c := range checks {
		if _, ok := byCodebase[c.Codebase]; !ok {
			order = append(order, c.Codebase)
		}
		byCodebase[c.Codebase] = append(byCodebase[c.Codebase], c)
	}
	for _, codebase := range order {
		sb.WriteString(codebase + ":\n")
		absent := 0
		for _, c := range byCodebase[codebase] {
			if c.Present {
				sb.WriteString(fmt.Sprintf("  ✓ %s\n", c.Format))
			} else {
				absent++
			}
		}
		sb.WriteString(fmt.Sprintf("  (%d recognized format(s) absent)\n", absent))
	}
	return sb.String()
}
