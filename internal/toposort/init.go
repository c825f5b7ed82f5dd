package toposort

import (
	"sort"

	"github.com/sdforge/sdc/internal/diagnostics"
	"github.com/sdforge/sdc/internal/token"
	"github.com/sdforge/sdc/internal/vars"
)

const stageInit = "toposort.init"

// InitOrder implements spec.md §4.9's init phase: starting from every
// variable with hasInitValue, walk initReferences (or references for a
// variable without its own init value) transitively through any
// non-const referenced variable, recording an edge at each step. The
// resulting graph is topologically sorted and reversed, const/lookup/
// data variables are filtered out of that reversed order, and any
// hasInitValue variable with no recorded dependency is prepended,
// sorted by refId ascending.
func InitOrder(vt *vars.Table) ([]string, *diagnostics.DiagnosticError) {
	visited := make(map[string]bool)
	var queue []string
	for _, v := range vt.All() {
		if v.HasInitValue && !visited[v.RefID] {
			visited[v.RefID] = true
			queue = append(queue, v.RefID)
		}
	}
	seeds := append([]string(nil), queue...)

	var edges []Edge
	for len(queue) > 0 {
		refID := queue[0]
		queue = queue[1:]
		v := vt.VarWithRefID(refID)
		if v == nil {
			continue
		}
		refs := v.References
		if v.HasInitValue {
			refs = v.InitReferences
		}
		for _, r := range refs {
			edges = append(edges, Edge{From: v.RefID, To: r})
			target := vt.VarWithRefID(r)
			if target != nil && target.VarType != vars.Const && !visited[target.RefID] {
				visited[target.RefID] = true
				queue = append(queue, target.RefID)
			}
		}
	}

	inGraph := edgeNodeSet(edges)
	var isolated []string
	for _, refID := range seeds {
		if !inGraph[refID] {
			isolated = append(isolated, refID)
		}
	}
	sort.Strings(isolated)

	order, cycleNode, ok := kahn(edges)
	if !ok {
		return nil, diagnostics.NewCycleError(diagnostics.ErrCycleInit, token.Token{}, stageInit, cycleNode)
	}

	var filtered []string
	for _, refID := range reverseOf(order) {
		v := vt.VarWithRefID(refID)
		if v == nil {
			continue
		}
		if v.VarType == vars.Const || v.VarType == vars.Lookup || v.VarType == vars.Data {
			continue
		}
		filtered = append(filtered, refID)
	}

	return append(isolated, filtered...), nil
}
