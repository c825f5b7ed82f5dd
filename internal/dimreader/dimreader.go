// Package dimreader feeds a parsetree.Model's dimension declarations
// into a subscript.Table (spec.md §4.2's addDimension/addAlias/addIndex
// operations), the half of the Subscript/Dimension Table component that
// sits upstream of Table.Resolve.
//
// Grounded on the same one-pass-then-delegate shape
// internal/reader.ReadVariables uses: this package only builds the
// pre-resolution registrations; internal/subscript.Table.Resolve still
// does all five fixpoint steps.
package dimreader

import (
	"github.com/sdforge/sdc/internal/canon"
	"github.com/sdforge/sdc/internal/parsetree"
	"github.com/sdforge/sdc/internal/subscript"
)

// Load registers every dimension definition in model against st,
// canonicalizing names and subscript tokens. Table.Resolve must be
// called afterward to run the fixpoint algorithm (spec.md §4.2).
//
// GET DIRECT SUBSCRIPT forms (spec.md §6: "a filesystem path passed to
// dimension resolution so GET DIRECT SUBSCRIPT can read sibling files")
// are expected to already be expanded into ordinary ModelValue index
// tokens by the upstream lexer/parser — parsetree.DimensionDef carries
// no tag distinguishing such a declaration, so there is nothing left for
// this package to special-case; st.ModelDir() remains available to a
// parser-side implementation of that intrinsic.
func Load(st *subscript.Table, model *parsetree.Model) {
	for _, d := range model.AllDimensions() {
		name := canon.Name(d.Name)
		if d.IsAlias {
			st.AddAlias(name, canon.Name(d.AliasFamily))
			continue
		}

		values := canonicalizeAll(d.ModelValue)
		mappings := make(map[string][]string, len(d.Mappings))
		for toDim, tokens := range d.Mappings {
			mappings[canon.Name(toDim)] = canonicalizeAll(tokens)
		}
		st.AddDimension(name, values, mappings)
	}
}

func canonicalizeAll(tokens []string) []string {
	out := make([]string, len(tokens))
	for i, tok := range tokens {
		out[i] = canon.Name(tok)
	}
	return out
}
