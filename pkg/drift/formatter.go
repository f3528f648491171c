package drift

import (
	"fmt"
	"strings"
)

const reportRule = "─────────────────────────────────────────────────────"

// FormatReports renders a drift report for terminal display. MATCHED entries
// are summarized, everything else is shown in full.
func FormatReports(reports []Report) string {
	var sb strings.Builder
	sb.Grow(512 + len(reports)*256)

	sb.WriteString(reportRule + "\n")
	sb.WriteString("VERSION DRIFT REPORT\n")
	sb.WriteString(reportRule + "\n\n")

	counts := make(map[Verdict]int)
	for _, r := range reports {
		counts[r.Verdict]++
	}

	for _, r := range reports {
		if r.Verdict == VerdictMatched {
			continue
		}
		sb.WriteString(formatReport(r))
		sb.WriteString("\n")
	}

	if n := counts[VerdictMatched]; n > 0 {
		sb.WriteString(fmt.Sprintf("[MATCHED] %d package(s) aligned across codebases\n\n", n))
	}

	sb.WriteString(reportRule + "\n")
	if counts[VerdictMismatched] == 0 {
		sb.WriteString("SUMMARY: no version drift detected\n")
	} else {
		sb.WriteString(fmt.Sprintf("SUMMARY: %d package(s) drifting, %d matched, %d with insufficient data\n",
			counts[VerdictMismatched], counts[VerdictMatched], counts[VerdictInsufficientData]))
	}
	return sb.String()
}

func formatReport(r Report) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("[%s] %s\n", r.Verdict, r.Package))
	for _, e := range r.Entries {
		switch e.Reason {
		case ReasonFound:
			sb.WriteString(fmt.Sprintf("  %-12s %s\n", e.Codebase, e.Version))
		default:
			sb.WriteString(fmt.Sprintf("  %-12s (%s)\n", e.Codebase, strings.ToLower(string(e.Reason))))
		}
	}
	if r.Newest != "" {
		sb.WriteString(fmt.Sprintf("  newest declared: %s\n", r.Newest))
	}
	return sb.String()
}
