// Package reader implements the Variable Reader and Equation Reader of
// spec.md §4.4 and §4.6: turning a parsetree.Model into vars.Table
// entries, then classifying each one's RHS.
//
// Grounded on internal/pipeline's multi-pass style (teacher runs
// AnalyzeNaming -> AnalyzeHeaders -> AnalyzeInstances -> AnalyzeBodies as
// separate passes over one shared context): ReadVariables and
// EquationReader.ReadAll are two such passes, split exactly where spec.md's own
// data-flow diagram places the Reference Resolver between them — the
// first pass creates Variable stubs from the LHS alone, refresolve then
// assigns RefIDs, and the second pass walks each RHS using the now
// RefID-addressable table.
package reader

import (
	"github.com/sdforge/sdc/internal/canon"
	"github.com/sdforge/sdc/internal/config"
	"github.com/sdforge/sdc/internal/diagnostics"
	"github.com/sdforge/sdc/internal/parsetree"
	"github.com/sdforge/sdc/internal/subscript"
	"github.com/sdforge/sdc/internal/vars"
)

// ReadVariables implements spec.md §4.4: walk every equation in model,
// canonicalize its LHS, apply specialSeparationDims splitting, and
// append one Variable stub per resulting LHS. specialSeparationDims maps
// a canonical varName to the canonical dimension name the spec document
// forces per-index separation on (spec.md §6).
//
// Lookup tables and constant lists are structural RHS shapes detectable
// without reference resolution, so this pass preassigns their varType
// and points; every other equation's varType is left vars.TypeUnset for
// the Equation Reader to classify once references can be resolved.
func ReadVariables(model *parsetree.Model, st *subscript.Table, specialSeparationDims map[string]string) (*vars.Table, []*diagnostics.DiagnosticError) {
	vt := vars.NewTable()
	var diags []*diagnostics.DiagnosticError

	for _, eq := range model.AllEquations() {
		for _, v := range ReadOne(eq, st, specialSeparationDims) {
			vt.Add(v)
		}
	}

	if vt.VarWithName(config.TimeVarName) == nil {
		vt.Add(&vars.Variable{
			VarName:  config.TimeVarName,
			VarType:  vars.Aux,
			ModelLHS: "Time",
		})
	}

	return vt, diags
}

// ReadOne reads a single equation into one or more Variable stubs,
// applying the same specialSeparationDims splitting ReadVariables does.
// Exported so internal/speccheck can route a synthesized equation
// (spec.md §4.7) through the identical path as ordinary parse-tree
// equations (spec.md §9 open question (c)).
func ReadOne(eq *parsetree.EquationDef, st *subscript.Table, specialSeparationDims map[string]string) []*vars.Variable {
	name := canon.Name(eq.LHSName)
	subs := canonicalizeSubs(eq.LHSSubscripts, st)

	variants := separate(name, subs, st, specialSeparationDims)
	out := make([]*vars.Variable, 0, len(variants))
	for _, variant := range variants {
		v := &vars.Variable{
			VarName:        name,
			ModelLHS:       eq.ModelLHS,
			ModelFormula:   eq.ModelFormula,
			Subscripts:     variant.subs,
			SeparationDims: variant.sepDims,
			FormulaExpr:    eq.Formula,
		}

		switch {
		case eq.IsLookupTable:
			v.VarType = vars.Lookup
			v.Points = convertPoints(eq.LookupPoints)
		case eq.IsConstList:
			v.VarType = vars.Const
			v.Points = constListAsPoints(eq.ConstListValues)
		}

		out = append(out, v)
	}
	return out
}

type variant struct {
	subs    []string
	sepDims []string
}

// separate implements the specialSeparationDims split: when varName's
// forced separation dimension appears among subs, one variant is
// produced per index of that dimension, substituted at the matching
// position; otherwise subs is used as-is for a single variant.
func separate(varName string, subs []string, st *subscript.Table, specialSeparationDims map[string]string) []variant {
	dimName, forced := specialSeparationDims[varName]
	if !forced {
		return []variant{{subs: subs}}
	}
	pos := -1
	for i, s := range subs {
		if s == dimName {
			pos = i
			break
		}
	}
	dim := st.Dimension(dimName)
	if pos < 0 || dim == nil {
		return []variant{{subs: subs}}
	}

	out := make([]variant, 0, len(dim.Value))
	for _, idx := range dim.Value {
		cp := make([]string, len(subs))
		copy(cp, subs)
		cp[pos] = idx
		out = append(out, variant{subs: cp, sepDims: []string{dimName}})
	}
	return out
}

func canonicalizeSubs(raw []string, st *subscript.Table) []string {
	subs := make([]string, len(raw))
	for i, s := range raw {
		subs[i] = canon.Name(s)
	}
	return canon.NormalSubscripts(subs, st.FamilyOf)
}

func convertPoints(pts []parsetree.Point) []vars.Point {
	out := make([]vars.Point, len(pts))
	for i, p := range pts {
		out[i] = vars.Point{X: p.X, Y: p.Y}
	}
	return out
}

// constListAsPoints renders a constant list as a points slice indexed by
// position (x = 0, 1, 2, ...), the same shape separated array variants
// use elsewhere for per-index data, so downstream consumers need only
// one field to read a constant's value back out.
func constListAsPoints(values []float64) []vars.Point {
	out := make([]vars.Point, len(values))
	for i, val := range values {
		out[i] = vars.Point{X: float64(i), Y: val}
	}
	return out
}
