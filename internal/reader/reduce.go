package reader

import (
	"github.com/sdforge/sdc/internal/canon"
	"github.com/sdforge/sdc/internal/config"
	"github.com/sdforge/sdc/internal/parsetree"
	"github.com/sdforge/sdc/internal/vars"
)

// ReduceConstants implements the optional algebraic-simplification pass
// of spec.md §4.6, gated by config.ReductionMode. It looks for aux
// variables whose RHS folds to a plain number and promotes them to
// varType const, memoizing the fold in the exprText -> numericValue
// sidecar (Cache()) so the same source text never gets re-evaluated.
//
// ReductionOff leaves every variable's classification untouched, even
// when its RHS is a foldable literal expression like "2*3.14".
// ReductionAggressive additionally folds through references to other
// already-const variables; ReductionDefault folds only pure literal
// arithmetic.
func (r *EquationReader) ReduceConstants(mode config.ReductionMode) {
	if mode == config.ReductionOff {
		return
	}
	aggressive := mode == config.ReductionAggressive
	for _, v := range r.vt.All() {
		if v.VarType != vars.Aux || v.FormulaExpr == nil {
			continue
		}
		if val, ok := r.cache[v.ModelFormula]; ok {
			v.VarType = vars.Const
			v.Points = []vars.Point{{X: 0, Y: val}}
			continue
		}
		if val, ok := r.fold(v.FormulaExpr, aggressive, make(map[string]bool)); ok {
			v.VarType = vars.Const
			v.Points = []vars.Point{{X: 0, Y: val}}
			r.cache[v.ModelFormula] = val
		}
	}
}

// fold recursively evaluates a pure-numeric expression tree. aggressive
// additionally resolves identifiers that name a const variable by
// recursing into that variable's own formula; visiting guards against
// reference cycles (which the toposort cycle check would otherwise have
// to catch).
func (r *EquationReader) fold(e *parsetree.Expr, aggressive bool, visiting map[string]bool) (float64, bool) {
	if e == nil {
		return 0, false
	}
	switch e.Kind {
	case parsetree.ExprNumber:
		return e.Number, true

	case parsetree.ExprUnary:
		if len(e.Args) != 1 {
			return 0, false
		}
		val, ok := r.fold(e.Args[0], aggressive, visiting)
		if !ok {
			return 0, false
		}
		if e.Op == "-" {
			return -val, true
		}
		return val, true

	case parsetree.ExprBinary:
		if len(e.Args) != 2 {
			return 0, false
		}
		lhs, ok := r.fold(e.Args[0], aggressive, visiting)
		if !ok {
			return 0, false
		}
		rhs, ok := r.fold(e.Args[1], aggressive, visiting)
		if !ok {
			return 0, false
		}
		switch e.Op {
		case "+":
			return lhs + rhs, true
		case "-":
			return lhs - rhs, true
		case "*":
			return lhs * rhs, true
		case "/":
			if rhs == 0 {
				return 0, false
			}
			return lhs / rhs, true
		default:
			return 0, false
		}

	case parsetree.ExprIdent:
		if !aggressive || len(e.Subscripts) > 0 {
			return 0, false
		}
		target := r.vt.VarWithName(canon.Name(e.Name))
		if target == nil || target.VarType != vars.Const || visiting[target.VarName] {
			return 0, false
		}
		if len(target.Points) == 1 {
			return target.Points[0].Y, true
		}
		if target.FormulaExpr == nil {
			return 0, false
		}
		visiting[target.VarName] = true
		defer delete(visiting, target.VarName)
		return r.fold(target.FormulaExpr, aggressive, visiting)

	default:
		return 0, false
	}
}
