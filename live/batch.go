package live

import (
	"log"
	"sort"
	"strings"
)

// SplitPaths splits a comma-separated batch of paths, trimming whitespace
// and dropping empty entries. "t0/d0, t1/d0" → two paths.
func SplitPaths(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

// ResolveAll resolves each path independently. One bad path never aborts
// the batch: its failure is logged and collected, and the corresponding
// target is simply absent from the result. Callers distinguish "empty
// because nothing resolved" from "empty because nothing was requested" via
// the returned failures.
func ResolveAll(client Client, paths []string) ([]*ResolvedPath, []error) {
	resolved := make([]*ResolvedPath, 0, len(paths))
	var failures []error
	for _, path := range paths {
		r, err := Resolve(client, path)
		if err != nil {
			log.Printf("⚠️  Skipping path %q: %v", path, err)
			failures = append(failures, err)
			continue
		}
		resolved = append(resolved, r)
	}
	return resolved, failures
}

// SortIndicesDescending orders positional indices for destructive batch
// operations. Deleting siblings in ascending order would invalidate every
// later index; descending order keeps each delete's index untouched by the
// ones before it. Correctness-critical, not an optimization.
func SortIndicesDescending(indices []int) {
	sort.Sort(sort.Reverse(sort.IntSlice(indices)))
}
