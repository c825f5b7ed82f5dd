package speccheck

import (
	"github.com/sdforge/sdc/internal/canon"
	"github.com/sdforge/sdc/internal/diagnostics"
	"github.com/sdforge/sdc/internal/parsetree"
	"github.com/sdforge/sdc/internal/token"
	"github.com/sdforge/sdc/internal/vars"
)

// ResolveDuplicateDeclarations implements spec.md §4.8: a variable
// declared both const and data (same canonical varName) is promoted to
// data, synthesizing points = [(-1e308, k), (1e308, k)] from the
// constant's value k. If k doesn't parse as a number, the conflict is
// recorded as a fatal TypeConflict and the variable is left unchanged.
func (c *Checker) ResolveDuplicateDeclarations() {
	for _, name := range c.vt.AllVarNames() {
		variants := c.vt.VarsWithName(name)
		if len(variants) < 2 {
			continue
		}

		var constVar, dataVar *vars.Variable
		for _, v := range variants {
			if v.VarType == vars.Const && constVar == nil {
				constVar = v
			}
			if v.VarType == vars.Data && dataVar == nil {
				dataVar = v
			}
		}
		if constVar == nil || dataVar == nil {
			continue
		}

		k, ok := constantValue(constVar)
		if !ok {
			c.col.Add(diagnostics.NewTypeConflictError(
				token.Token{}, stageSpecCheck, name, canon.Decanonicalize(name),
				"declared both const and data, but the constant value does not parse as a number", true,
			))
			continue
		}

		dataVar.Points = []vars.Point{{X: -1e308, Y: k}, {X: 1e308, Y: k}}
		c.vt.Filter(func(v *vars.Variable) bool { return v != constVar })
	}
}

func constantValue(v *vars.Variable) (float64, bool) {
	if len(v.Points) == 1 {
		return v.Points[0].Y, true
	}
	if v.FormulaExpr != nil && v.FormulaExpr.Kind == parsetree.ExprNumber {
		return v.FormulaExpr.Number, true
	}
	return 0, false
}
