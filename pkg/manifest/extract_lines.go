package manifest

import (
	"bufio"
	"bytes"
	"strings"
)

// requirementsExtractor reads requirements.txt: one requirement per line,
// "name<op>version" with pip's comparison operators. No structured parser
// exists for the format, so this is a line scan by design.
type requirementsExtractor struct{}

var requirementOps = []string{"==", ">=", "<=", "~=", "!=", "===", ">", "<"}

func (e *requirementsExtractor) Extract(content []byte, q Query) (string, bool, error) {
	return extractFrom(e, content, q)
}

func (e *requirementsExtractor) entries(content []byte) (map[string]string, error) {
	entries := make(map[string]string)
	scanner := bufio.NewScanner(bytes.NewReader(content))
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") || strings.HasPrefix(line, "-") {
			continue
		}
		// Strip inline comments and environment markers.
		if i := strings.IndexAny(line, "#;"); i >= 0 {
			line = strings.TrimSpace(line[:i])
		}
		name, version := splitRequirement(line)
		if name == "" {
			continue
		}
		// Drop extras like name[extra1,extra2].
		if i := strings.Index(name, "["); i >= 0 {
			name = name[:i]
		}
		if _, seen := entries[name]; !seen {
			entries[name] = version
		}
	}
	return entries, scanner.Err()
}

func splitRequirement(line string) (name, version string) {
	opIdx := -1
	opLen := 0
	for _, op := range requirementOps {
		if i := strings.Index(line, op); i >= 0 && (opIdx == -1 || i < opIdx) {
			opIdx, opLen = i, len(op)
		}
	}
	if opIdx == -1 {
		return strings.TrimSpace(line), ""
	}
	return strings.TrimSpace(line[:opIdx]), strings.TrimSpace(line[opIdx+opLen:])
}

// yarnLockExtractor reads yarn.lock v1: unindented "name@range:" headers
// followed by an indented `version "x.y.z"` line. Yarn ships no schema for
// this format; the scan mirrors how yarn itself tokenizes it.
type yarnLockExtractor struct{}

func (e *yarnLockExtractor) Extract(content []byte, q Query) (string, bool, error) {
	return extractFrom(e, content, q)
}

func (e *yarnLockExtractor) entries(content []byte) (map[string]string, error) {
	entries := make(map[string]string)
	var pending []string
	scanner := bufio.NewScanner(bytes.NewReader(content))
	for scanner.Scan() {
		line := scanner.Text()
		switch {
		case line == "" || strings.HasPrefix(line, "#"):
			pending = nil
		case !strings.HasPrefix(line, " ") && strings.HasSuffix(strings.TrimSpace(line), ":"):
			pending = headerNames(strings.TrimSuffix(strings.TrimSpace(line), ":"))
		case len(pending) > 0:
			trimmed := strings.TrimSpace(line)
			if v, ok := strings.CutPrefix(trimmed, "version "); ok {
				v = strings.Trim(v, `"`)
				for _, name := range pending {
					if _, seen := entries[name]; !seen {
						entries[name] = v
					}
				}
				pending = nil
			}
		}
	}
	return entries, scanner.Err()
}

// headerNames splits a yarn.lock entry header into package names. Headers may
// list several "name@range" selectors separated by commas, and scoped names
// keep their leading @.
func headerNames(header string) []string {
	var names []string
	for _, part := range strings.Split(header, ",") {
		part = strings.Trim(strings.TrimSpace(part), `"`)
		if part == "" {
			continue
		}
		at := strings.LastIndex(part, "@")
		if at <= 0 {
			continue
		}
		names = append(names, part[:at])
	}
	return names
}
