// Package vars implements the Variable Table of spec.md §4.3 and the
// Variable record of spec.md §3.
//
// Grounded on internal/symbols/symbol_table_core.go's shape: an
// ordered, name-keyed registry (there, Symbol keyed by identifier; here,
// Variable keyed by canonical varName with multi-valued variants for
// non-apply-to-all arrays) plus an append-only slice preserving
// insertion order for deterministic iteration (spec.md §5).
package vars

import "github.com/sdforge/sdc/internal/parsetree"

// VarType is spec.md §3's varType enumeration.
type VarType int

const (
	TypeUnset VarType = iota
	Const
	Lookup
	Data
	Aux
	Level
)

func (vt VarType) String() string {
	switch vt {
	case Const:
		return "const"
	case Lookup:
		return "lookup"
	case Data:
		return "data"
	case Aux:
		return "aux"
	case Level:
		return "level"
	default:
		return "unset"
	}
}

// Point is one (x, y) pair of a lookup/data table (spec.md §3).
type Point struct {
	X, Y float64
}

// Variable is spec.md §3's Variable record.
type Variable struct {
	VarName      string // canonical LHS base name
	ModelLHS     string // source form, retained for diagnostics
	ModelFormula string // source form, retained for synthesized lookup emission

	Subscripts     []string // canonical subscript tokens, normal order
	SeparationDims []string // dimensions this variable was split on

	VarType      VarType
	HasInitValue bool
	Points       []Point

	References     []string // refIds, RHS dependencies at normal evaluation
	InitReferences []string // refIds, dependencies within initial expressions

	ReferencedLookupVarNames []string
	ReferencedFunctionNames  []string

	RefID string

	// FormulaExpr is the RHS expression tree retained for the Equation
	// Reader's reference-walk (internal/reader). It is not one of the
	// fields the evaluation-order listing projects (spec.md §4.10).
	FormulaExpr *parsetree.Expr
}

// IsApplyToAll reports whether this variable has no subscripts at all
// (a scalar) — the trivial case of "apply-to-all" where RefID always
// equals VarName regardless of what the table's expansion-flags say.
func (v *Variable) IsApplyToAll() bool {
	return len(v.Subscripts) == 0
}
