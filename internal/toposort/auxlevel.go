package toposort

import (
	"sort"

	"github.com/sdforge/sdc/internal/diagnostics"
	"github.com/sdforge/sdc/internal/token"
	"github.com/sdforge/sdc/internal/vars"
)

const stageAuxLevel = "toposort.auxlevel"

// AuxLevelOrder implements spec.md §4.9's aux/level phase construction
// for one varType (vars.Aux or vars.Level): seed with every variable of
// that type, add an edge (v.refId, ref.refId) for each reference whose
// target is the same type — except that when both endpoints are level,
// the edge is reversed to (ref.refId, v.refId), encoding that a level
// reads its peers' previous-step values rather than their current ones.
// Nodes that never appear in an edge are prepended, sorted by refId
// ascending, ahead of the (reversed) topological order of the rest.
func AuxLevelOrder(vt *vars.Table, varType vars.VarType) ([]string, *diagnostics.DiagnosticError) {
	var seedRefIDs []string
	byRefID := make(map[string]*vars.Variable)
	for _, v := range vt.All() {
		if v.VarType != varType {
			continue
		}
		seedRefIDs = append(seedRefIDs, v.RefID)
		byRefID[v.RefID] = v
	}

	// natural holds the un-reversed (v depends on ref) relation for every
	// same-type reference, used below to detect level-to-level
	// reciprocity before deciding what to actually emit. naturalOrder keeps
	// the same edges in first-seen order so the emitted edge list is stable.
	natural := make(map[Edge]bool)
	var naturalOrder []Edge
	for _, refID := range seedRefIDs {
		v := byRefID[refID]
		for _, refed := range v.References {
			target := vt.VarWithRefID(refed)
			if target == nil || target.VarType != varType {
				continue
			}
			e := Edge{From: v.RefID, To: target.RefID}
			if !natural[e] {
				natural[e] = true
				naturalOrder = append(naturalOrder, e)
			}
		}
	}

	var edges []Edge
	for _, e := range naturalOrder {
		if varType != vars.Level {
			edges = append(edges, e)
			continue
		}
		// Level-to-level edge reversal (spec.md §4.9). A mutual pair (both
		// levels reference each other) reads only the other's previous-step
		// value in both directions, so neither ordering constrains the
		// other: such pairs cancel out instead of producing a 2-cycle.
		if natural[Edge{From: e.To, To: e.From}] {
			continue
		}
		edges = append(edges, Edge{From: e.To, To: e.From})
	}

	inGraph := edgeNodeSet(edges)
	var isolated []string
	for _, refID := range seedRefIDs {
		if !inGraph[refID] {
			isolated = append(isolated, refID)
		}
	}
	sort.Strings(isolated)

	order, cycleNode, ok := kahn(edges)
	if !ok {
		return nil, diagnostics.NewCycleError(diagnostics.ErrCycleAuxLevel, token.Token{}, stageAuxLevel, cycleNode)
	}

	return append(isolated, reverseOf(order)...), nil
}
