package toposort_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/sdforge/sdc/internal/toposort"
	"github.com/sdforge/sdc/internal/vars"
)

func newVar(refID string, varType vars.VarType, hasInit bool, refs, initRefs []string) *vars.Variable {
	return &vars.Variable{
		VarName: refID, RefID: refID, VarType: varType,
		HasInitValue: hasInit, References: refs, InitReferences: initRefs,
	}
}

func TestAuxOrderScalarChain(t *testing.T) {
	vt := vars.NewTable()
	vt.Add(newVar("_a", vars.Const, false, nil, nil))
	vt.Add(newVar("_b", vars.Aux, false, []string{"_a"}, []string{"_a"}))
	vt.Add(newVar("_c", vars.Aux, false, []string{"_b"}, []string{"_b"}))
	for _, v := range vt.All() {
		vt.IndexRefID(v)
	}

	order, err := toposort.AuxLevelOrder(vt, vars.Aux)
	require.Nil(t, err)
	require.Equal(t, []string{"_b", "_c"}, order)
}

func TestLevelToLevelNoCycle(t *testing.T) {
	vt := vars.NewTable()
	vt.Add(newVar("_a", vars.Level, true, []string{"_b"}, nil))
	vt.Add(newVar("_b", vars.Level, true, []string{"_a"}, nil))
	for _, v := range vt.All() {
		vt.IndexRefID(v)
	}

	order, err := toposort.AuxLevelOrder(vt, vars.Level)
	require.Nil(t, err)
	require.Len(t, order, 2)
	require.ElementsMatch(t, []string{"_a", "_b"}, order)
}

func TestInitOrderFiltersConst(t *testing.T) {
	vt := vars.NewTable()
	vt.Add(newVar("_s", vars.Level, true, []string{"_flow"}, []string{"_s0"}))
	vt.Add(newVar("_flow", vars.Aux, false, nil, nil))
	vt.Add(newVar("_s0", vars.Const, false, nil, nil))
	for _, v := range vt.All() {
		vt.IndexRefID(v)
	}

	order, err := toposort.InitOrder(vt)
	require.Nil(t, err)
	require.Contains(t, order, "_s")
	require.NotContains(t, order, "_s0")
}

func TestAuxLevelCycleIsFatal(t *testing.T) {
	vt := vars.NewTable()
	vt.Add(newVar("_a", vars.Aux, false, []string{"_b"}, nil))
	vt.Add(newVar("_b", vars.Aux, false, []string{"_a"}, nil))
	for _, v := range vt.All() {
		vt.IndexRefID(v)
	}

	_, err := toposort.AuxLevelOrder(vt, vars.Aux)
	require.NotNil(t, err)
	require.True(t, err.Fatal)
}
