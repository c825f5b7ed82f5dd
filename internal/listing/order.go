// Package listing implements the Listing & Indexing stage of spec.md
// §4.10: evaluation-order construction, the variable-index map, and the
// stable JSON listing serialization downstream consumers read.
package listing

import (
	"strings"

	"github.com/sdforge/sdc/internal/config"
	"github.com/sdforge/sdc/internal/diagnostics"
	"github.com/sdforge/sdc/internal/toposort"
	"github.com/sdforge/sdc/internal/vars"
)

// EvaluationOrder implements spec.md §4.10's evaluation-order listing:
// constVars ++ lookupVars ++ dataVars ++ [_time?] ++ initVars ++ auxVars,
// with internally generated helper variables (refIds prefixed
// config.InternalLevelPrefix or config.InternalAuxPrefix) omitted.
func EvaluationOrder(vt *vars.Table) ([]*vars.Variable, *diagnostics.DiagnosticError) {
	var constVars, lookupVars, dataVars []*vars.Variable
	var timeVar *vars.Variable
	for _, v := range vt.All() {
		if isInternalHelper(v.RefID) {
			continue
		}
		switch v.VarType {
		case vars.Const:
			constVars = append(constVars, v)
		case vars.Lookup:
			lookupVars = append(lookupVars, v)
		case vars.Data:
			dataVars = append(dataVars, v)
		case vars.Aux:
			if v.VarName == config.TimeVarName {
				timeVar = v
			}
		}
	}

	initOrder, err := toposort.InitOrder(vt)
	if err != nil {
		return nil, err
	}
	auxOrder, err := toposort.AuxLevelOrder(vt, vars.Aux)
	if err != nil {
		return nil, err
	}

	initVars := resolveOrder(vt, initOrder, "")
	auxVars := resolveOrder(vt, auxOrder, config.TimeVarName)

	out := make([]*vars.Variable, 0, len(constVars)+len(lookupVars)+len(dataVars)+1+len(initVars)+len(auxVars))
	out = append(out, constVars...)
	out = append(out, lookupVars...)
	out = append(out, dataVars...)
	if timeVar != nil {
		out = append(out, timeVar)
	}
	out = append(out, initVars...)
	out = append(out, auxVars...)

	return out, nil
}

// resolveOrder resolves a topological refId order into Variables,
// dropping internal helper entries and, when excludeVarName is
// non-empty, any variable under that varName (used to keep _time out of
// the auxVars segment since it is placed separately, spec.md §4.10).
func resolveOrder(vt *vars.Table, refIDs []string, excludeVarName string) []*vars.Variable {
	out := make([]*vars.Variable, 0, len(refIDs))
	for _, refID := range refIDs {
		if isInternalHelper(refID) {
			continue
		}
		v := vt.VarWithRefID(refID)
		if v == nil || (excludeVarName != "" && v.VarName == excludeVarName) {
			continue
		}
		out = append(out, v)
	}
	return out
}

func isInternalHelper(refID string) bool {
	return strings.HasPrefix(refID, config.InternalLevelPrefix) || strings.HasPrefix(refID, config.InternalAuxPrefix)
}
