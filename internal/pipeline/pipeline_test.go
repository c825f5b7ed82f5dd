package pipeline_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/sdforge/sdc/internal/config"
	"github.com/sdforge/sdc/internal/parsetree"
	"github.com/sdforge/sdc/internal/pipeline"
	"github.com/sdforge/sdc/internal/speccheck"
)

func number(n float64) *parsetree.Expr {
	return &parsetree.Expr{Kind: parsetree.ExprNumber, Number: n}
}

func ident(name string) *parsetree.Expr {
	return &parsetree.Expr{Kind: parsetree.ExprIdent, Name: name}
}

func binary(op string, l, r *parsetree.Expr) *parsetree.Expr {
	return &parsetree.Expr{Kind: parsetree.ExprBinary, Op: op, Args: []*parsetree.Expr{l, r}}
}

func integ(flow, init *parsetree.Expr) *parsetree.Expr {
	return &parsetree.Expr{Kind: parsetree.ExprCall, Name: "INTEG", Args: []*parsetree.Expr{flow, init}}
}

// TestScalarChainEndToEnd runs spec.md §8's scalar-chain scenario
// (a = 5, b = a + 2) through the full Standard() pipeline.
func TestScalarChainEndToEnd(t *testing.T) {
	model := &parsetree.Model{
		Shape: parsetree.Modern,
		Equations: []*parsetree.EquationDef{
			{LHSName: "a", ModelLHS: "a", ModelFormula: "5", Formula: number(5)},
			{LHSName: "b", ModelLHS: "b", ModelFormula: "a+2", Formula: binary("+", ident("a"), number(2))},
		},
	}
	doc := &speccheck.Document{InputVarNames: []string{"a"}, OutputVarNames: []string{"b"}}

	ctx := pipeline.NewContext(model, doc, nil, "", config.DefaultOptions())
	ctx = pipeline.Standard().Run(ctx)

	require.Nil(t, ctx.Fatal)
	require.NotNil(t, ctx.Document)

	var names []string
	for _, v := range ctx.Listing {
		names = append(names, v.VarName)
	}
	require.Contains(t, names, "_a")
	require.Contains(t, names, "_b")

	var idxB int
	for _, e := range ctx.VarIndex {
		if e.VarName == "_b" {
			idxB = e.VarIndex
		}
	}
	require.NotZero(t, idxB)
}

// TestLevelWithInitEndToEnd runs spec.md §8's level-with-init scenario
// (s = INTEG(flow, s0)) through the full pipeline and checks s is a
// level with an init value, referencing flow and, for its init, s0. The
// spec declares no inputs, so dead-code elimination does not run.
func TestLevelWithInitEndToEnd(t *testing.T) {
	model := &parsetree.Model{
		Shape: parsetree.Modern,
		Equations: []*parsetree.EquationDef{
			{LHSName: "s", ModelLHS: "s", ModelFormula: "INTEG(flow,s0)", Formula: integ(ident("flow"), ident("s0"))},
			{LHSName: "flow", ModelLHS: "flow", ModelFormula: "1", Formula: number(1)},
			{LHSName: "s0", ModelLHS: "s0", ModelFormula: "100", Formula: number(100)},
		},
	}
	doc := &speccheck.Document{OutputVarNames: []string{"s"}}

	ctx := pipeline.NewContext(model, doc, nil, "", config.DefaultOptions())
	ctx = pipeline.Standard().Run(ctx)

	require.Nil(t, ctx.Fatal)
	s := ctx.VarTable.VarWithName("_s")
	require.NotNil(t, s)
	require.True(t, s.HasInitValue)
	require.Contains(t, s.InitReferences, "_s0")
	require.Contains(t, s.References, "_flow")
}

// TestUnknownOutputIsFatal runs spec.md §8's missing-declaration scenario:
// an output naming neither a variable nor extData must abort the
// pipeline with a SpecMismatch.
func TestUnknownOutputIsFatal(t *testing.T) {
	model := &parsetree.Model{Shape: parsetree.Modern}
	doc := &speccheck.Document{OutputVarNames: []string{"Nonexistent"}}

	ctx := pipeline.NewContext(model, doc, nil, "", config.DefaultOptions())
	ctx = pipeline.Standard().Run(ctx)

	require.NotNil(t, ctx.Fatal)
}
