package listing_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/sdforge/sdc/internal/listing"
	"github.com/sdforge/sdc/internal/subscript"
	"github.com/sdforge/sdc/internal/vars"
)

func newVar(refID string, varType vars.VarType, hasInit bool, refs, initRefs []string) *vars.Variable {
	return &vars.Variable{
		VarName: refID, RefID: refID, VarType: varType, ModelLHS: refID, ModelFormula: refID,
		HasInitValue: hasInit, References: refs, InitReferences: initRefs,
	}
}

func TestEvaluationOrderSegments(t *testing.T) {
	vt := vars.NewTable()
	vt.Add(newVar("_k", vars.Const, false, nil, nil))
	vt.Add(newVar("_lk", vars.Lookup, false, nil, nil))
	vt.Add(newVar("_d", vars.Data, false, nil, nil))
	vt.Add(newVar("_time", vars.Aux, false, nil, nil))
	vt.Add(newVar("_s", vars.Level, true, []string{"_flow"}, []string{"_k"}))
	vt.Add(newVar("_flow", vars.Aux, false, []string{"_k"}, nil))
	for _, v := range vt.All() {
		vt.IndexRefID(v)
	}

	order, err := listing.EvaluationOrder(vt)
	require.Nil(t, err)

	var gotOrder []string
	for _, v := range order {
		gotOrder = append(gotOrder, v.RefID)
	}

	// const, lookup, data, _time lead; _s (level, hasInitValue) and
	// _flow (aux) follow in some dependency-respecting arrangement.
	require.Equal(t, "_k", gotOrder[0])
	require.Equal(t, "_lk", gotOrder[1])
	require.Equal(t, "_d", gotOrder[2])
	require.Equal(t, "_time", gotOrder[3])
	require.ElementsMatch(t, []string{"_s", "_flow"}, gotOrder[4:])
}

func TestVarIndexMapSkipsDataAndLookup(t *testing.T) {
	vt := vars.NewTable()
	vt.Add(newVar("_k", vars.Const, false, nil, nil))
	vt.Add(newVar("_lk", vars.Lookup, false, nil, nil))
	vt.Add(newVar("_d", vars.Data, false, nil, nil))
	vt.Add(newVar("_a", vars.Aux, false, []string{"_k"}, nil))
	for _, v := range vt.All() {
		vt.IndexRefID(v)
	}

	order, err := listing.EvaluationOrder(vt)
	require.Nil(t, err)

	entries := listing.VarIndexMap(order)
	names := make(map[string]listing.VarIndexEntry)
	for _, e := range entries {
		names[e.VarName] = e
	}

	require.NotContains(t, names, "_lk")
	require.NotContains(t, names, "_d")
	require.Contains(t, names, "_k")
	require.Contains(t, names, "_a")
	require.Equal(t, 1, names["_k"].VarIndex)
	require.Equal(t, 2, names["_a"].VarIndex)
}

func TestBuildDocumentRoundTrips(t *testing.T) {
	vt := vars.NewTable()
	vt.Add(newVar("_k", vars.Const, false, nil, nil))
	for _, v := range vt.All() {
		vt.IndexRefID(v)
	}
	st := subscript.NewTable()
	require.Empty(t, st.Resolve())

	order, err := listing.EvaluationOrder(vt)
	require.Nil(t, err)
	entries := listing.VarIndexMap(order)

	doc := listing.BuildDocument(st, order, entries)
	data, marshalErr := doc.Marshal()
	require.NoError(t, marshalErr)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(data, &decoded))
	require.Contains(t, decoded, "dimensions")
	require.Contains(t, decoded, "variables")
}

func TestSortedByVarNameIndependentOfListingOrder(t *testing.T) {
	entries := []listing.VarIndexEntry{
		{VarName: "_b", VarIndex: 1},
		{VarName: "_a", VarIndex: 2},
	}
	sorted := listing.SortedByVarName(entries)
	require.Equal(t, []string{"_a", "_b"}, []string{sorted[0].VarName, sorted[1].VarName})
	// Input slice must not be mutated.
	require.Equal(t, "_b", entries[0].VarName)
}
