package speccheck

import (
	"github.com/sdforge/sdc/internal/config"
	"github.com/sdforge/sdc/internal/vars"
)

// EliminateDeadCode implements spec.md §4.7's dead-code elimination:
// enabled only when both inputVars and outputVars are non-empty. It
// computes the set of varNames reachable from the fixed pins plus every
// declared input/output, walking references/initReferences transitively
// (tracked by base varName, not refId, so every variant of a referenced
// non-apply-to-all array survives together) and pulling in any declared
// referencedLookupVarNames along the way. Unreachable variables are
// dropped.
func (c *Checker) EliminateDeadCode(doc *Document) {
	if !doc.DeadCodeEnabled() {
		return
	}

	visited := make(map[string]bool)
	var queue []string
	seed := func(name string) {
		if name == "" || visited[name] {
			return
		}
		visited[name] = true
		queue = append(queue, name)
	}

	for _, pin := range config.FixedPins {
		seed(pin)
	}
	for _, n := range doc.CanonicalInputNames() {
		seed(stripIndexSuffix(n))
	}
	for _, n := range doc.CanonicalOutputNames() {
		seed(stripIndexSuffix(n))
	}

	for len(queue) > 0 {
		name := queue[0]
		queue = queue[1:]
		for _, v := range c.vt.VarsWithName(name) {
			for _, refID := range v.References {
				if target := c.vt.VarWithRefID(refID); target != nil {
					seed(target.VarName)
				}
			}
			for _, refID := range v.InitReferences {
				if target := c.vt.VarWithRefID(refID); target != nil {
					seed(target.VarName)
				}
			}
			for _, lookupName := range v.ReferencedLookupVarNames {
				seed(lookupName)
			}
		}
	}

	c.vt.Filter(func(v *vars.Variable) bool { return visited[v.VarName] })
}
