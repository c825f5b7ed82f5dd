package pipeline

import (
	"sort"

	"github.com/sdforge/sdc/internal/canon"
	"github.com/sdforge/sdc/internal/vars"
)

// VarNames returns every distinct varName known to the context's
// variable table, sorted ascending (spec.md §6's varNames()).
func (c *PipelineContext) VarNames() []string {
	return c.VarTable.AllVarNames()
}

// VarsWithName returns every variant sharing varName, in insertion
// order (spec.md §6's varsWithName(n)).
func (c *PipelineContext) VarsWithName(name string) []*vars.Variable {
	return c.VarTable.VarsWithName(canon.Name(name))
}

// VarWithRefID returns the variable with the given refId, or nil
// (spec.md §6's varWithRefId(r)).
func (c *PipelineContext) VarWithRefID(refID string) *vars.Variable {
	return c.VarTable.VarWithRefID(refID)
}

// JSONList marshals the evaluation-order listing built by ListingStage
// (spec.md §6's jsonList()). Returns nil, nil if ListingStage never ran
// (Document unset) rather than panicking.
func (c *PipelineContext) JSONList() ([]byte, error) {
	if c.Document == nil {
		return nil, nil
	}
	return c.Document.Marshal()
}

// VarIndexInfo returns the variable index map, sorted by varName
// ascending rather than listing order (spec.md §6's varIndexInfo(),
// §4.11).
func (c *PipelineContext) VarIndexInfo() []VarIndexEntryView {
	sorted := make([]VarIndexEntryView, len(c.VarIndex))
	for i, e := range c.VarIndex {
		sorted[i] = VarIndexEntryView{VarName: e.VarName, VarIndex: e.VarIndex, SubscriptCount: e.SubscriptCount}
	}
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].VarName < sorted[j].VarName })
	return sorted
}

// VarIndexEntryView mirrors listing.VarIndexEntry, re-exported here so
// callers of the query API don't need to import internal/listing
// directly for this one projection.
type VarIndexEntryView struct {
	VarName        string
	VarIndex       int
	SubscriptCount int
}

// VensimName renders a canonical id back to its display form (spec.md
// §6's vensimName(cName)).
func VensimName(cName string) string {
	return canon.Decanonicalize(cName)
}

// CName canonicalizes a source-level name (spec.md §6's
// cName(sourceName)).
func CName(sourceName string) string {
	return canon.Name(sourceName)
}
