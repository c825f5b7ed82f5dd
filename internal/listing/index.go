package listing

import "github.com/sdforge/sdc/internal/vars"

// VarIndexEntry is one row of spec.md §4.10's variable index map /
// §4.11's varIndexInfo() projection.
type VarIndexEntry struct {
	VarName        string `json:"varName"`
	VarIndex       int    `json:"varIndex"`
	SubscriptCount int    `json:"subscriptCount"`
}

// VarIndexMap assigns 1-based indices to each unique varName in listing
// order, among variables eligible for output (neither data nor lookup),
// per spec.md §4.10.
func VarIndexMap(order []*vars.Variable) []VarIndexEntry {
	var out []VarIndexEntry
	seen := make(map[string]bool)
	next := 1
	for _, v := range order {
		if v.VarType == vars.Data || v.VarType == vars.Lookup {
			continue
		}
		if seen[v.VarName] {
			continue
		}
		seen[v.VarName] = true
		out = append(out, VarIndexEntry{
			VarName:        v.VarName,
			VarIndex:       next,
			SubscriptCount: len(v.Subscripts),
		})
		next++
	}
	return out
}

// indexByVarName looks up the 1-based varIndex for a varName, or 0 if
// the variable was excluded from output indexing (a data or lookup
// variable never gets one, spec.md §4.10).
func indexByVarName(entries []VarIndexEntry, varName string) int {
	for _, e := range entries {
		if e.VarName == varName {
			return e.VarIndex
		}
	}
	return 0
}
