package analyzer_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/sdforge/sdc/internal/analyzer"
	"github.com/sdforge/sdc/internal/config"
	"github.com/sdforge/sdc/internal/parsetree"
	"github.com/sdforge/sdc/internal/speccheck"
)

func number(n float64) *parsetree.Expr {
	return &parsetree.Expr{Kind: parsetree.ExprNumber, Number: n}
}

// TestResetPreservesDimensionsClearsVariables runs one model, resets,
// then runs a second unrelated model, checking that the first model's
// dimension survives the reset (spec.md §5) while its variables do not
// leak into the second run's listing.
func TestResetPreservesDimensionsClearsVariables(t *testing.T) {
	a := analyzer.New(config.DefaultOptions())

	model1 := &parsetree.Model{
		Shape: parsetree.Modern,
		Dimensions: []*parsetree.DimensionDef{
			{Name: "Region", ModelValue: []string{"East", "West"}},
		},
		Equations: []*parsetree.EquationDef{
			{LHSName: "a", ModelLHS: "a", ModelFormula: "1", Formula: number(1)},
		},
	}
	ctx1 := a.Analyze(model1, &speccheck.Document{OutputVarNames: []string{"a"}}, nil, "")
	require.Nil(t, ctx1.Fatal)
	require.True(t, a.SubscriptTable.IsDimension("_region"))
	require.NotNil(t, a.VarTable.VarWithName("_a"))

	initialInstanceID := a.InstanceID
	a.Reset()
	require.NotEqual(t, initialInstanceID, a.InstanceID)

	require.True(t, a.SubscriptTable.IsDimension("_region"))
	require.Nil(t, a.VarTable.VarWithName("_a"))

	model2 := &parsetree.Model{
		Shape: parsetree.Modern,
		Equations: []*parsetree.EquationDef{
			{LHSName: "b", ModelLHS: "b", ModelFormula: "2", Formula: number(2)},
		},
	}
	ctx2 := a.Analyze(model2, &speccheck.Document{OutputVarNames: []string{"b"}}, nil, "")
	require.Nil(t, ctx2.Fatal)
	require.Nil(t, ctx2.VarTable.VarWithName("_a"))
	require.NotNil(t, ctx2.VarTable.VarWithName("_b"))
}
