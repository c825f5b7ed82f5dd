package speccheck

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/sdforge/sdc/internal/canon"
	"github.com/sdforge/sdc/internal/diagnostics"
	"github.com/sdforge/sdc/internal/extdata"
	"github.com/sdforge/sdc/internal/parsetree"
	"github.com/sdforge/sdc/internal/reader"
	"github.com/sdforge/sdc/internal/refresolve"
	"github.com/sdforge/sdc/internal/subscript"
	"github.com/sdforge/sdc/internal/token"
	"github.com/sdforge/sdc/internal/vars"
)

const stageSpecCheck = "speccheck"

// Checker implements spec.md §4.7: validating declared inputs/outputs
// against the variable table, synthesizing lookup equations from
// external data when a declared name has no backing equation, and (via
// EliminateDeadCode) removing unreachable variables.
type Checker struct {
	vt  *vars.Table
	st  *subscript.Table
	col *diagnostics.Collector
	ext extdata.ExtData

	separationDims map[string]string
}

// NewChecker builds a Checker over vt/st, recording diagnostics into
// col. separationDims is the already-canonicalized specialSeparationDims
// map (Document.CanonicalSeparationDims), reused for any synthesized
// equation exactly as the Variable Reader used it for ordinary ones.
func NewChecker(vt *vars.Table, st *subscript.Table, col *diagnostics.Collector, ext extdata.ExtData, separationDims map[string]string) *Checker {
	return &Checker{vt: vt, st: st, col: col, ext: ext, separationDims: separationDims}
}

// Check validates every declared input/output name and synthesizes a
// WITH LOOKUP equation for any that is missing a backing variable but
// present in extData (spec.md §4.7). Newly synthesized variables are
// routed through internal/reader.ReadOne/EquationReader.ReadOne — the
// same path ordinary equations take (spec.md §9 open question (c)) —
// and the table's RefID index is refreshed afterward. A declared name
// with neither a variable nor external data is a fatal SpecMismatch.
func (c *Checker) Check(doc *Document, er *reader.EquationReader) {
	var synthesized []*vars.Variable

	synthesized = append(synthesized, c.checkNames(doc.CanonicalInputNames(), "inputVars")...)
	synthesized = append(synthesized, c.checkNames(doc.CanonicalOutputNames(), "outputVars")...)

	if len(synthesized) == 0 {
		return
	}
	refresolve.DetectNonApplyToAll(c.vt)
	refresolve.AssignRefIDs(c.vt)
	for _, v := range synthesized {
		er.ReadOne(v)
	}
}

func (c *Checker) checkNames(names []string, field string) []*vars.Variable {
	var synthesized []*vars.Variable
	for _, name := range names {
		base := stripIndexSuffix(name)
		if c.vt.VarWithName(base) != nil {
			continue
		}
		ts, ok := c.ext[base]
		if !ok {
			c.col.Add(diagnostics.NewSpecMismatchError(token.Token{}, field, base, canon.Decanonicalize(base)))
			continue
		}
		eq := synthesizeLookupEquation(base, ts)
		for _, v := range reader.ReadOne(eq, c.st, c.separationDims) {
			c.vt.Add(v)
			synthesized = append(synthesized, v)
		}
	}
	return synthesized
}

// synthesizeLookupEquation builds "<Display> = WITH LOOKUP(Time, (...))"
// directly as a parse tree (spec.md §4.7): this module has no lexer/
// parser of its own (an external collaborator per spec.md §1's
// non-goals), so the synthesized text is retained purely for
// modelFormula/diagnostics while the expression tree is constructed
// in place.
func synthesizeLookupEquation(base string, ts extdata.TimeSeries) *parsetree.EquationDef {
	display := canon.Decanonicalize(base)
	points := make([]parsetree.Point, len(ts))
	for i, p := range ts {
		points[i] = parsetree.Point{X: p.X, Y: p.Y}
	}
	formula := fmt.Sprintf("WITH LOOKUP(Time, (%s))", renderPoints(points))

	return &parsetree.EquationDef{
		LHSName:      display,
		ModelLHS:     display,
		ModelFormula: formula,
		Formula: &parsetree.Expr{
			Kind: parsetree.ExprCall,
			Name: "WITH LOOKUP",
			Args: []*parsetree.Expr{
				{Kind: parsetree.ExprIdent, Name: "Time"},
				{Kind: parsetree.ExprLookupLiteral, Points: points},
			},
		},
	}
}

func renderPoints(points []parsetree.Point) string {
	parts := make([]string, len(points))
	for i, p := range points {
		parts[i] = fmt.Sprintf("(%s,%s)", formatFloat(p.X), formatFloat(p.Y))
	}
	return strings.Join(parts, ",")
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'g', -1, 64)
}
