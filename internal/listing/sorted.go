package listing

import "sort"

// SortedByVarName returns entries sorted by varName ascending, the shape
// `varIndexInfo()` exposes (spec.md §4.11), independent of the listing
// order VarIndexMap assigns indices in.
func SortedByVarName(entries []VarIndexEntry) []VarIndexEntry {
	out := make([]VarIndexEntry, len(entries))
	copy(out, entries)
	sort.Slice(out, func(i, j int) bool { return out[i].VarName < out[j].VarName })
	return out
}
