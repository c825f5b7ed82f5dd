package vars

import "sort"

// Table is the resettable variable registry of spec.md §4.3. Resettable
// per spec.md §5 so one process can run the analyzer repeatedly.
type Table struct {
	byName  map[string][]*Variable
	byRefID map[string]*Variable
	all     []*Variable // insertion order, preserved for determinism

	// ExpansionFlags records, per varName with N>=2 variants, which
	// subscript positions vary across variants (spec.md §4.5 step 1).
	ExpansionFlags map[string][]bool
}

// NewTable returns an empty Table.
func NewTable() *Table {
	return &Table{
		byName:         make(map[string][]*Variable),
		byRefID:        make(map[string]*Variable),
		ExpansionFlags: make(map[string][]bool),
	}
}

// Add appends v to the table, indexing it by VarName. RefID indexing
// happens separately via IndexRefID once refresolve has assigned it
// (Add may be called before RefID is known).
func (t *Table) Add(v *Variable) {
	t.byName[v.VarName] = append(t.byName[v.VarName], v)
	t.all = append(t.all, v)
}

// IndexRefID registers v under its (already-assigned) RefID for
// VarWithRefID lookups. Called once refresolve.AssignRefIDs has run.
func (t *Table) IndexRefID(v *Variable) {
	t.byRefID[v.RefID] = v
}

// ReindexRefIDs rebuilds the RefID index from the current contents of
// All(), used after dead-code elimination filters the table (spec.md §4.7).
func (t *Table) ReindexRefIDs() {
	t.byRefID = make(map[string]*Variable)
	for _, v := range t.all {
		t.byRefID[v.RefID] = v
	}
}

// VarsWithName returns every variant sharing varName, in insertion order.
func (t *Table) VarsWithName(name string) []*Variable {
	return t.byName[name]
}

// VarWithName returns the first variant for varName, or nil.
func (t *Table) VarWithName(name string) *Variable {
	vs := t.byName[name]
	if len(vs) == 0 {
		return nil
	}
	return vs[0]
}

// VarWithRefID returns the variable with the given RefID, or nil.
func (t *Table) VarWithRefID(refID string) *Variable {
	return t.byRefID[refID]
}

// RefIdsWithName returns the RefID of every variant sharing varName.
func (t *Table) RefIdsWithName(name string) []string {
	vs := t.byName[name]
	out := make([]string, len(vs))
	for i, v := range vs {
		out[i] = v.RefID
	}
	return out
}

// AllVarNames returns every distinct varName, sorted ascending (spec.md §5).
func (t *Table) AllVarNames() []string {
	out := make([]string, 0, len(t.byName))
	for name := range t.byName {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// All returns every variable in insertion order.
func (t *Table) All() []*Variable {
	return t.all
}

// Filter replaces the table's contents with only the variables for
// which keep returns true, preserving relative order (spec.md §4.7 dead
// code elimination: "the by-name map is rebuilt").
func (t *Table) Filter(keep func(*Variable) bool) {
	kept := make([]*Variable, 0, len(t.all))
	byName := make(map[string][]*Variable)
	for _, v := range t.all {
		if keep(v) {
			kept = append(kept, v)
			byName[v.VarName] = append(byName[v.VarName], v)
		}
	}
	t.all = kept
	t.byName = byName
	t.ReindexRefIDs()
}

// Reset clears the variable list, by-name map, and expansion-flags set,
// without disturbing any separately-owned dimension table (spec.md §5).
func (t *Table) Reset() {
	t.byName = make(map[string][]*Variable)
	t.byRefID = make(map[string]*Variable)
	t.all = nil
	t.ExpansionFlags = make(map[string][]bool)
}
