package tools

import (
	"context"
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"
)

// treeTools are tried in order; eza renders nicer trees when present.
var treeTools = []struct {
	name string
	args func(root string, depth int) []string
}{
	{"eza", func(root string, depth int) []string {
		return []string{"--tree", "--level", fmt.Sprint(depth), root}
	}},
	{"tree", func(root string, depth int) []string {
		return []string{"-L", fmt.Sprint(depth), root}
	}},
}

// Tree renders a directory tree for root via the first available renderer.
// When neither is installed it falls back to a plain stdlib walk so the
// command still produces output; the caller decides whether to warn.
func Tree(ctx context.Context, r Runner, root string, depth int) (string, bool, error) {
	for _, tool := range treeTools {
		out, err := r.Run(ctx, tool.name, tool.args(root, depth)...)
		if err == nil {
			return string(out), false, nil
		}
		if err == ErrUnavailable {
			continue
		}
		return "", false, err
	}
	out, err := fallbackTree(root, depth)
	return out, true, err
}

// fallbackTree is the renderer used when no external tree tool is installed:
// indented relative paths, directories first, bounded by depth.
func fallbackTree(root string, depth int) (string, error) {
	type node struct {
		rel   string
		isDir bool
	}
	var nodes []node
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		rel, relErr := filepath.Rel(root, path)
		if relErr != nil || rel == "." {
			return nil
		}
		if strings.Count(rel, string(filepath.Separator)) >= depth {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		nodes = append(nodes, node{rel: filepath.ToSlash(rel), isDir: d.IsDir()})
		return nil
	})
	if err != nil {
		return "", err
	}
	sort.Slice(nodes, func(i, j int) bool { return nodes[i].rel < nodes[j].rel })

	var sb strings.Builder
	sb.WriteString(root + "\n")
	for _, n := range nodes {
		indent := strings.Repeat("  ", strings.Count(n.rel, "/"))
		name := n.rel[strings.LastIndex(n.rel, "/")+1:]
		if n.isDir {
			name += "/"
		}
		sb.WriteString(indent + name + "\n")
	}
	return sb.String(), nil
}
