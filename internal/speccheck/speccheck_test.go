package speccheck_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/sdforge/sdc/internal/diagnostics"
	"github.com/sdforge/sdc/internal/extdata"
	"github.com/sdforge/sdc/internal/parsetree"
	"github.com/sdforge/sdc/internal/reader"
	"github.com/sdforge/sdc/internal/refresolve"
	"github.com/sdforge/sdc/internal/speccheck"
	"github.com/sdforge/sdc/internal/subscript"
	"github.com/sdforge/sdc/internal/vars"
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

func buildTable(t *testing.T, model *parsetree.Model) (*vars.Table, *subscript.Table) {
	t.Helper()
	st := subscript.NewTable()
	require.Empty(t, st.Resolve())
	vt, _ := reader.ReadVariables(model, st, nil)
	refresolve.DetectNonApplyToAll(vt)
	refresolve.AssignRefIDs(vt)
	col := diagnostics.NewCollector()
	reader.NewEquationReader(vt, st, col).ReadAll()
	require.False(t, col.HasFatal())
	return vt, st
}

func TestSynthesizeFromExtData(t *testing.T) {
	model := &parsetree.Model{Shape: parsetree.Modern}
	vt, st := buildTable(t, model)

	col := diagnostics.NewCollector()
	ext := extdata.ExtData{"_gdp": {{X: 0, Y: 100}, {X: 1, Y: 110}}}
	er := reader.NewEquationReader(vt, st, col)
	checker := speccheck.NewChecker(vt, st, col, ext, nil)

	doc := &speccheck.Document{OutputVarNames: []string{"GDP"}}
	checker.Check(doc, er)

	require.False(t, col.HasFatal())
	gdp := vt.VarWithName("_gdp")
	require.NotNil(t, gdp)
	require.Equal(t, vars.Aux, gdp.VarType)
	require.Contains(t, gdp.References, "_time")
}

func TestMissingDeclarationWithNoDataIsFatal(t *testing.T) {
	model := &parsetree.Model{Shape: parsetree.Modern}
	vt, st := buildTable(t, model)

	col := diagnostics.NewCollector()
	er := reader.NewEquationReader(vt, st, col)
	checker := speccheck.NewChecker(vt, st, col, nil, nil)

	doc := &speccheck.Document{OutputVarNames: []string{"Nonexistent"}}
	checker.Check(doc, er)

	require.True(t, col.HasFatal())
}

func TestDeadCodeElimination(t *testing.T) {
	model := &parsetree.Model{
		Shape: parsetree.Modern,
		Equations: []*parsetree.EquationDef{
			{LHSName: "a", ModelFormula: "1", Formula: number(1)},
			{LHSName: "b", ModelFormula: "a+2", Formula: binary("+", ident("a"), number(2))},
			{LHSName: "c", ModelFormula: "5", Formula: number(5)},
		},
	}
	vt, st := buildTable(t, model)

	col := diagnostics.NewCollector()
	checker := speccheck.NewChecker(vt, st, col, nil, nil)
	doc := &speccheck.Document{InputVarNames: []string{"a"}, OutputVarNames: []string{"b"}}
	checker.EliminateDeadCode(doc)

	require.NotNil(t, vt.VarWithName("_a"))
	require.NotNil(t, vt.VarWithName("_b"))
	require.Nil(t, vt.VarWithName("_c"))
}

func TestDuplicateConstAndDataPromotion(t *testing.T) {
	model := &parsetree.Model{
		Shape: parsetree.Modern,
		Equations: []*parsetree.EquationDef{
			{LHSName: "x", ModelFormula: "5", Formula: number(5)},
			{LHSName: "x", ModelFormula: "GET DIRECT DATA(...)", Formula: &parsetree.Expr{
				Kind: parsetree.ExprCall, Name: "GET DIRECT DATA",
			}},
		},
	}
	vt, st := buildTable(t, model)
	_ = st

	col := diagnostics.NewCollector()
	checker := speccheck.NewChecker(vt, st, col, nil, nil)
	checker.ResolveDuplicateDeclarations()

	require.False(t, col.HasFatal())
	variants := vt.VarsWithName("_x")
	require.Len(t, variants, 1)
	require.Equal(t, vars.Data, variants[0].VarType)
	require.Equal(t, []vars.Point{{X: -1e308, Y: 5}, {X: 1e308, Y: 5}}, variants[0].Points)
}
