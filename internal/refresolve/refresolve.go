// Package refresolve implements the Reference Resolver of spec.md §4.5:
// non-apply-to-all detection, refId assignment, and subscript-aware
// textual reference resolution, used both by the Equation Reader
// (internal/reader) and the Spec Checker (internal/speccheck).
package refresolve

import (
	"github.com/sdforge/sdc/internal/canon"
	"github.com/sdforge/sdc/internal/subscript"
	"github.com/sdforge/sdc/internal/vars"
)

// DetectNonApplyToAll implements spec.md §4.5 step 1: for each varName
// with N>=2 variants, position i's expansion flag is true if any two
// variants differ there.
func DetectNonApplyToAll(vt *vars.Table) {
	for _, name := range vt.AllVarNames() {
		variants := vt.VarsWithName(name)
		if len(variants) < 2 {
			continue
		}
		arity := len(variants[0].Subscripts)
		flags := make([]bool, arity)
		for _, v := range variants[1:] {
			for i := 0; i < arity && i < len(v.Subscripts); i++ {
				if v.Subscripts[i] != variants[0].Subscripts[i] {
					flags[i] = true
				}
			}
		}
		vt.ExpansionFlags[name] = flags
	}
}

// IsApplyToAll reports whether varName is defined by a single equation
// (spec.md GLOSSARY: "a subscripted variable defined by a single
// equation ranging over one or more dimensions").
func IsApplyToAll(vt *vars.Table, varName string) bool {
	return len(vt.VarsWithName(varName)) <= 1
}

// AssignRefIDs implements spec.md §4.5 step 2 over every variable in vt,
// then indexes each by its RefID for VarWithRefID lookups.
func AssignRefIDs(vt *vars.Table) {
	for _, v := range vt.All() {
		if len(v.Subscripts) == 0 || IsApplyToAll(vt, v.VarName) {
			v.RefID = v.VarName
		} else {
			v.RefID = v.VarName + "[" + canon.Join(v.Subscripts) + "]"
		}
		vt.IndexRefID(v)
	}
}

// Resolve implements spec.md §4.5 step 3: locate the variable a textual
// reference (name + subscripts, both already canonicalized and
// normal-ordered) denotes.
func Resolve(vt *vars.Table, st *subscript.Table, name string, subs []string) (string, bool) {
	direct := name
	if len(subs) > 0 {
		direct = name + "[" + canon.Join(subs) + "]"
	}
	if v := vt.VarWithRefID(direct); v != nil {
		return v.RefID, true
	}

	variants := vt.VarsWithName(name)
	for _, variant := range variants {
		if covers(st, variant.Subscripts, subs) {
			return variant.RefID, true
		}
	}
	if len(variants) == 1 {
		return variants[0].RefID, true
	}
	return "", false
}

// covers implements spec.md §4.5 step 3's position-wise coverage rule:
// (index = index) requires equality; (dimension = dimension) requires
// equality; (dimension ⊇ index) requires the dimension's Value to
// include the index; (index vs. dimension in the reference) is rejected.
func covers(st *subscript.Table, variantSubs, refSubs []string) bool {
	if len(variantSubs) != len(refSubs) {
		return false
	}
	for i, vs := range variantSubs {
		rs := refSubs[i]
		vIsIndex := st.IsIndex(vs)
		rIsIndex := st.IsIndex(rs)
		switch {
		case vIsIndex && rIsIndex:
			if vs != rs {
				return false
			}
		case !vIsIndex && !rIsIndex:
			if vs != rs {
				return false
			}
		case !vIsIndex && rIsIndex:
			dim := st.Dimension(vs)
			if dim == nil || !containsValue(dim.Value, rs) {
				return false
			}
		default: // vIsIndex && !rIsIndex
			return false
		}
	}
	return true
}

func containsValue(haystack []string, needle string) bool {
	for _, v := range haystack {
		if v == needle {
			return true
		}
	}
	return false
}
