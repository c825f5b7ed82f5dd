package reader_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/sdforge/sdc/internal/diagnostics"
	"github.com/sdforge/sdc/internal/parsetree"
	"github.com/sdforge/sdc/internal/reader"
	"github.com/sdforge/sdc/internal/refresolve"
	"github.com/sdforge/sdc/internal/subscript"
	"github.com/sdforge/sdc/internal/vars"
)

func regionTable(t *testing.T) *subscript.Table {
	t.Helper()
	st := subscript.NewTable()
	st.AddDimension("_region", []string{"_r1", "_r2"}, nil)
	require.Empty(t, st.Resolve())
	return st
}

func ident(name string, subs ...string) *parsetree.Expr {
	return &parsetree.Expr{Kind: parsetree.ExprIdent, Name: name, Subscripts: subs}
}

func number(n float64) *parsetree.Expr {
	return &parsetree.Expr{Kind: parsetree.ExprNumber, Number: n}
}

func binary(op string, l, r *parsetree.Expr) *parsetree.Expr {
	return &parsetree.Expr{Kind: parsetree.ExprBinary, Op: op, Args: []*parsetree.Expr{l, r}}
}

func call(name string, args ...*parsetree.Expr) *parsetree.Expr {
	return &parsetree.Expr{Kind: parsetree.ExprCall, Name: name, Args: args}
}

// runPipeline chains Variable Reader -> refresolve -> Equation Reader,
// the same order internal/analyzer drives the real pipeline in.
func runPipeline(model *parsetree.Model, st *subscript.Table, special map[string]string) (*vars.Table, *diagnostics.Collector) {
	vt, _ := reader.ReadVariables(model, st, special)
	refresolve.DetectNonApplyToAll(vt)
	refresolve.AssignRefIDs(vt)
	col := diagnostics.NewCollector()
	NewEquationReaderAndRun(vt, st, col)
	return vt, col
}

func NewEquationReaderAndRun(vt *vars.Table, st *subscript.Table, col *diagnostics.Collector) {
	er := reader.NewEquationReader(vt, st, col)
	er.ReadAll()
}

func TestScalarConst(t *testing.T) {
	st := regionTable(t)
	model := &parsetree.Model{
		Shape: parsetree.Modern,
		Equations: []*parsetree.EquationDef{
			{LHSName: "Birth Rate", ModelFormula: "0.05", Formula: number(0.05)},
		},
	}

	vt, col := runPipeline(model, st, nil)
	require.False(t, col.HasFatal())

	v := vt.VarWithName("_birth_rate")
	require.NotNil(t, v)
	require.Equal(t, vars.Const, v.VarType)
	require.Equal(t, "_birth_rate", v.RefID)
}

func TestScalarAuxReference(t *testing.T) {
	st := regionTable(t)
	model := &parsetree.Model{
		Shape: parsetree.Modern,
		Equations: []*parsetree.EquationDef{
			{LHSName: "Births", ModelFormula: "Population*Birth Rate", Formula: binary("*", ident("Population"), ident("Birth Rate"))},
			{LHSName: "Population", ModelFormula: "1000", Formula: number(1000)},
			{LHSName: "Birth Rate", ModelFormula: "0.05", Formula: number(0.05)},
		},
	}

	vt, col := runPipeline(model, st, nil)
	require.False(t, col.HasFatal())

	births := vt.VarWithName("_births")
	require.Equal(t, vars.Aux, births.VarType)
	require.ElementsMatch(t, []string{"_population", "_birth_rate"}, births.References)
}

func TestApplyToAllArray(t *testing.T) {
	st := regionTable(t)
	model := &parsetree.Model{
		Shape: parsetree.Modern,
		Equations: []*parsetree.EquationDef{
			{LHSName: "x", LHSSubscripts: []string{"region"}, ModelFormula: "10", Formula: number(10)},
		},
	}

	vt, col := runPipeline(model, st, nil)
	require.False(t, col.HasFatal())

	variants := vt.VarsWithName("_x")
	require.Len(t, variants, 1)
	require.Equal(t, "_x", variants[0].RefID)
}

func TestNonApplyToAllArray(t *testing.T) {
	st := regionTable(t)
	model := &parsetree.Model{
		Shape: parsetree.Modern,
		Equations: []*parsetree.EquationDef{
			{LHSName: "v", LHSSubscripts: []string{"r1"}, ModelFormula: "1", Formula: number(1)},
			{LHSName: "v", LHSSubscripts: []string{"r2"}, ModelFormula: "2", Formula: number(2)},
		},
	}

	vt, col := runPipeline(model, st, nil)
	require.False(t, col.HasFatal())

	variants := vt.VarsWithName("_v")
	require.Len(t, variants, 2)
	require.Equal(t, "_v[_r1]", variants[0].RefID)
	require.Equal(t, "_v[_r2]", variants[1].RefID)
}

func TestLevelWithInit(t *testing.T) {
	st := regionTable(t)
	model := &parsetree.Model{
		Shape: parsetree.Modern,
		Equations: []*parsetree.EquationDef{
			{LHSName: "s", ModelFormula: "INTEG(flow,s0)", Formula: call("INTEG", ident("flow"), ident("s0"))},
			{LHSName: "flow", ModelFormula: "1", Formula: number(1)},
			{LHSName: "s0", ModelFormula: "100", Formula: number(100)},
		},
	}

	vt, col := runPipeline(model, st, nil)
	require.False(t, col.HasFatal())

	s := vt.VarWithName("_s")
	require.Equal(t, vars.Level, s.VarType)
	require.True(t, s.HasInitValue)
	require.Equal(t, []string{"_flow"}, s.References)
	require.Equal(t, []string{"_s0"}, s.InitReferences)
}

// TestUnknownReferenceInEquationIsFatal checks spec.md §7 kind 2's rule
// that an unresolved reference is fatal during a final pass; the
// Equation Reader's classification walk is the final pass over each
// RHS, unlike the mapping-inversion intermediate pass in
// internal/subscript, which logs and skips instead.
func TestUnknownReferenceInEquationIsFatal(t *testing.T) {
	st := regionTable(t)
	model := &parsetree.Model{
		Shape: parsetree.Modern,
		Equations: []*parsetree.EquationDef{
			{LHSName: "y", ModelFormula: "Missing Var*2", Formula: binary("*", ident("Missing Var"), number(2))},
		},
	}

	vt, col := runPipeline(model, st, nil)
	require.True(t, col.HasFatal())

	y := vt.VarWithName("_y")
	require.Empty(t, y.References)
}

func TestSpecialSeparationDims(t *testing.T) {
	st := regionTable(t)
	model := &parsetree.Model{
		Shape: parsetree.Modern,
		Equations: []*parsetree.EquationDef{
			{LHSName: "cap", LHSSubscripts: []string{"region"}, ModelFormula: "50", Formula: number(50)},
		},
	}

	vt, col := runPipeline(model, st, map[string]string{"_cap": "_region"})
	require.False(t, col.HasFatal())

	variants := vt.VarsWithName("_cap")
	require.Len(t, variants, 2)
	require.Equal(t, []string{"_r1"}, variants[0].Subscripts)
	require.Equal(t, []string{"_r2"}, variants[1].Subscripts)
}
