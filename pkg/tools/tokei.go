package tools

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
)

// LanguageCount is one language's line statistics as reported by tokei.
type LanguageCount struct {
	Language string `json:"language"`
	Code     int    `json:"code"`
	Comments int    `json:"comments"`
	Blanks   int    `json:"blanks"`
}

// Analyze runs tokei over root and returns per-language line counts, sorted
// by code lines descending. There is no fallback: without tokei the section
// is skipped and the caller reports ErrUnavailable.
func Analyze(ctx context.Context, r Runner, root string) ([]LanguageCount, error) {
	out, err := r.Run(ctx, "tokei", "--output", "json", root)
	if err != nil {
		return nil, err
	}
	var raw map[string]struct {
		Code     int `json:"code"`
		Comments int `json:"comments"`
		Blanks   int `json:"blanks"`
	}
	if err := json.Unmarshal(out, &raw); err != nil {
		return nil, fmt.Errorf("unexpected tokei output: %w", err)
	}
	counts := make([]LanguageCount, 0, len(raw))
	for lang, c := range raw {
		if lang == "Total" {
			continue
		}
		counts = append(counts, LanguageCount{
			Language: lang,
			Code:     c.Code,
			Comments: c.Comments,
			Blanks:   c.Blanks,
		})
	}
	sort.Slice(counts, func(i, j int) bool {
		if counts[i].Code != counts[j].Code {
			return counts[i].Code > counts[j].Code
		}
		return counts[i].Language < counts[j].Language
	})
	return counts, nil
}

// FormatCounts renders the analyze output for terminal display.
func FormatCounts(counts []LanguageCount) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%-16s %10s %10s %10s\n", "LANGUAGE", "CODE", "COMMENTS", "BLANKS"))
	for _, c := range counts {
		sb.WriteString(fmt.Sprintf("%-16s %10d %10d %10d\n", c.Language, c.Code, c.Comments, c.Blanks))
	}
	return sb.String()
}
