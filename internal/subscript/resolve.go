package subscript

import (
	"fmt"
	"sort"

	"github.com/sdforge/sdc/internal/diagnostics"
	"github.com/sdforge/sdc/internal/token"
)

// Resolve runs the five-step fixpoint algorithm of spec.md §4.2 over
// every dimension registered so far. It is idempotent and safe to call
// once after all AddDimension/AddAlias calls are done.
func (t *Table) Resolve() []*diagnostics.DiagnosticError {
	var errs []*diagnostics.DiagnosticError

	if err := t.expandDimensionValues(); err != nil {
		errs = append(errs, err)
		return errs
	}
	t.fillAliases()
	t.assignFamilies()
	t.registerIndices()
	errs = append(errs, t.invertMappings()...)

	t.resolved = true
	return errs
}

// expandDimensionValues repeatedly replaces any dimension token inside
// another dimension's Value with that dimension's current Value,
// flattening, until every Value consists solely of index tokens
// (spec.md §4.2 step 1). The dependency graph among named dimensions is
// required to be a DAG; a cycle is fatal (spec.md §4.2, §7 kind 1).
func (t *Table) expandDimensionValues() *diagnostics.DiagnosticError {
	// Seed Value from ModelValue for every non-alias dimension; aliases
	// are filled in fillAliases once their family is expanded.
	for _, name := range t.dimOrder {
		d := t.dims[name]
		if d.isAlias {
			continue
		}
		d.Value = append([]string(nil), d.ModelValue...)
	}

	// A single replace-and-flatten pass per dimension, repeated to a
	// fixpoint. The dependency graph among named dimensions is a DAG in
	// any valid model (spec.md §4.2 step 1), so this terminates; a
	// non-terminating expansion after maxPasses is reported as a cycle.
	n := len(t.dimOrder)
	maxPasses := n + 2
	for pass := 0; pass < maxPasses; pass++ {
		changed := false
		for _, name := range t.dimOrder {
			d := t.dims[name]
			if d.isAlias {
				continue
			}
			expanded, didExpand := t.expandOnePass(d.Value)
			if didExpand {
				d.Value = expanded
				changed = true
			}
		}
		if !changed {
			return nil
		}
	}
	for _, name := range t.dimOrder {
		d := t.dims[name]
		if d.isAlias {
			continue
		}
		if tok := firstDimToken(t, d.Value); tok != "" {
			return diagnostics.NewStructuralError(
				diagnostics.ErrStructuralCycle, token.Token{}, "subscript.Resolve",
				d.Name, d.Name, fmt.Sprintf("cycle in dimension expansion involving %s", tok))
		}
	}
	return nil
}

// expandOnePass replaces every dimension token in value with that
// dimension's current Value, one level deep.
func (t *Table) expandOnePass(value []string) ([]string, bool) {
	var out []string
	didExpand := false
	for _, tok := range value {
		if d, ok := t.dims[tok]; ok && !d.isAlias {
			out = append(out, d.Value...)
			didExpand = true
			continue
		}
		out = append(out, tok)
	}
	return out, didExpand
}

func firstDimToken(t *Table, value []string) string {
	for _, v := range value {
		if d, ok := t.dims[v]; ok && !d.isAlias {
			return d.Name
		}
	}
	return ""
}

// fillAliases copies Value/Size/ModelValue from each alias's family
// (spec.md §4.2 step 2, §3).
func (t *Table) fillAliases() {
	for _, name := range t.dimOrder {
		d := t.dims[name]
		if !d.isAlias {
			continue
		}
		if fam, ok := t.dims[d.Family]; ok {
			d.Value = append([]string(nil), fam.Value...)
			d.ModelValue = append([]string(nil), fam.ModelValue...)
		}
	}
}

// assignFamilies resolves each dimension's owning family (spec.md §4.2
// step 3): an external override wins; otherwise the dimension
// containing this dimension's first index with the largest size is
// chosen, ties broken by earliest name in descending lexicographic
// order (sort by size ascending, name descending; take the last).
func (t *Table) assignFamilies() {
	for _, name := range t.dimOrder {
		d := t.dims[name]
		if d.isAlias {
			continue // explicit family already set at AddAlias time
		}
		if fam, ok := t.dimensionFamilies[d.Name]; ok {
			d.Family = fam
			t.debugf("dimension family resolved", "dimension", d.Name, "family", fam, "rule", "override")
			continue
		}
		if len(d.Value) == 0 {
			d.Family = d.Name
			t.debugf("dimension family resolved", "dimension", d.Name, "family", d.Name, "rule", "self (empty value)")
			continue
		}
		first := d.Value[0]
		var candidates []*Dimension
		for _, other := range t.dims {
			if other.isAlias {
				continue
			}
			if containsIndexName(other.Value, first) {
				candidates = append(candidates, other)
			}
		}
		if len(candidates) == 0 {
			d.Family = d.Name
			t.debugf("dimension family resolved", "dimension", d.Name, "family", d.Name, "rule", "self (no candidates)")
			continue
		}
		sort.Slice(candidates, func(i, j int) bool {
			if len(candidates[i].Value) != len(candidates[j].Value) {
				return len(candidates[i].Value) < len(candidates[j].Value)
			}
			return candidates[i].Name > candidates[j].Name
		})
		d.Family = candidates[len(candidates)-1].Name
		t.debugf("dimension family resolved", "dimension", d.Name, "family", d.Family, "rule", "largest containing dimension, ties by name descending")
	}
}

func containsIndexName(value []string, name string) bool {
	for _, v := range value {
		if v == name {
			return true
		}
	}
	return false
}

// registerIndices registers every index of every dimension that is its
// own family (spec.md §4.2 step 4).
func (t *Table) registerIndices() {
	for _, name := range t.dimOrder {
		d := t.dims[name]
		if d.Family != d.Name {
			continue
		}
		for i, idxName := range d.Value {
			t.AddIndex(idxName, i, d.Name)
		}
	}
}

// invertMappings implements spec.md §4.2 step 5. Out-of-range target
// positions are reported but do not abort the pipeline (recorded as
// non-fatal structural diagnostics, left sparse in the inverted
// mapping) — spec.md §7 kind 2 / §9 open question (b): on duplicate
// target positions this implementation keeps the last write
// (DESIGN.md's recorded policy choice), also logged.
func (t *Table) invertMappings() []*diagnostics.DiagnosticError {
	var errs []*diagnostics.DiagnosticError
	for _, name := range t.dimOrder {
		fromDim := t.dims[name]
		if fromDim.isAlias || len(fromDim.rawMappings) == 0 {
			continue
		}
		for toDimName, mappingValue := range fromDim.rawMappings {
			toDim, ok := t.dims[toDimName]
			if !ok {
				errs = append(errs, diagnostics.NewStructuralError(
					diagnostics.ErrStructuralUnknownFam, token.Token{}, "subscript.invertMappings",
					toDimName, toDimName, fmt.Sprintf("mapping target dimension %s not found", toDimName)))
				continue
			}
			inverted := make([]string, len(toDim.Value))
			if len(mappingValue) == 0 {
				copy(inverted, fromDim.Value)
				fromDim.Mappings[toDimName] = inverted
				continue
			}
			for i, fromIndName := range fromDim.Value {
				if i >= len(mappingValue) {
					break
				}
				toToken := mappingValue[i]
				positions := t.mappingTargetPositions(toDim, toToken)
				for _, pos := range positions {
					if pos < 0 || pos >= len(inverted) {
						errs = append(errs, diagnostics.NewStructuralError(
							diagnostics.ErrStructuralBadMapping, token.Token{}, "subscript.invertMappings",
							fromDim.Name, fromDim.Name,
							fmt.Sprintf("mapping of %s to %s: target position out of range for token %s", fromDim.Name, toDimName, toToken)))
						continue
					}
					if inverted[pos] != "" && inverted[pos] != fromIndName {
						errs = append(errs, diagnostics.NewStructuralError(
							diagnostics.ErrStructuralBadMapping, token.Token{}, "subscript.invertMappings",
							fromDim.Name, fromDim.Name,
							fmt.Sprintf("mapping of %s to %s: duplicate target position %d, keeping last write %q over %q",
								fromDim.Name, toDimName, pos, fromIndName, inverted[pos])))
						t.debugf("mapping inversion overwrite", "from", fromDim.Name, "to", toDimName, "position", pos, "kept", fromIndName, "dropped", inverted[pos])
					}
					inverted[pos] = fromIndName // last write wins, DESIGN.md open question (b)
				}
			}
			fromDim.Mappings[toDimName] = inverted
		}
	}
	// Mapping-inversion diagnostics are recorded but never abort the pipeline.
	for _, e := range errs {
		e.Fatal = false
	}
	return errs
}

// mappingTargetPositions resolves a single raw-mapping token (an index
// name or a dimension name) to the target positions it denotes within
// toDim.Value. An index name toDim.Value does not contain yields
// position -1, which invertMappings reports as out of range.
func (t *Table) mappingTargetPositions(toDim *Dimension, tok string) []int {
	if innerDim, ok := t.dims[tok]; ok {
		positions := make([]int, 0, len(innerDim.Value))
		for _, toIndName := range innerDim.Value {
			positions = append(positions, indexOf(toDim.Value, toIndName))
		}
		return positions
	}
	return []int{indexOf(toDim.Value, tok)}
}

func indexOf(haystack []string, needle string) int {
	for i, v := range haystack {
		if v == needle {
			return i
		}
	}
	return -1
}
