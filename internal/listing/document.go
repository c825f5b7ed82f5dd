package listing

import (
	"encoding/json"

	"github.com/sdforge/sdc/internal/subscript"
	"github.com/sdforge/sdc/internal/vars"
)

// Document is spec.md §4.10's JSON listing: `{ dimensions: sorted-by-name,
// variables: listing-order }`.
type Document struct {
	Dimensions []DimensionEntry `json:"dimensions"`
	Variables  []VariableEntry  `json:"variables"`
}

// DimensionEntry projects a subscript.Dimension the way downstream
// consumers need it: name, resolved family, and the expanded index list.
type DimensionEntry struct {
	Name   string   `json:"name"`
	Family string   `json:"family"`
	Value  []string `json:"value"`
	Size   int      `json:"size"`
}

// VariableEntry projects exactly the fixed subset spec.md §4.10 names,
// omitting empty optional fields (the `?`-suffixed ones in the spec
// text) via `omitempty`.
type VariableEntry struct {
	RefID          string   `json:"refId"`
	VarName        string   `json:"varName"`
	Subscripts     []string `json:"subscripts,omitempty"`
	Families       []string `json:"families,omitempty"`
	References     []string `json:"references,omitempty"`
	InitReferences []string `json:"initReferences,omitempty"`
	HasInitValue   bool     `json:"hasInitValue"`
	VarType        string   `json:"varType"`
	SeparationDims []string `json:"separationDims,omitempty"`
	ModelLHS       string   `json:"modelLHS"`
	ModelFormula   string   `json:"modelFormula"`
	VarIndex       int      `json:"varIndex,omitempty"`
}

// BuildDocument assembles the JSON listing from a resolved evaluation
// order and dimension table (spec.md §4.10). order must already be the
// output of EvaluationOrder; indexEntries the output of VarIndexMap over
// that same order.
func BuildDocument(st *subscript.Table, order []*vars.Variable, indexEntries []VarIndexEntry) *Document {
	doc := &Document{
		Variables: make([]VariableEntry, 0, len(order)),
	}

	for _, d := range st.AllDimensions() {
		doc.Dimensions = append(doc.Dimensions, DimensionEntry{
			Name:   d.Name,
			Family: d.Family,
			Value:  d.Value,
			Size:   d.Size(),
		})
	}

	for _, v := range order {
		doc.Variables = append(doc.Variables, VariableEntry{
			RefID:          v.RefID,
			VarName:        v.VarName,
			Subscripts:     v.Subscripts,
			Families:       families(st, v.Subscripts),
			References:     v.References,
			InitReferences: v.InitReferences,
			HasInitValue:   v.HasInitValue,
			VarType:        v.VarType.String(),
			SeparationDims: v.SeparationDims,
			ModelLHS:       v.ModelLHS,
			ModelFormula:   v.ModelFormula,
			VarIndex:       indexByVarName(indexEntries, v.VarName),
		})
	}

	return doc
}

// families resolves each subscript token to its owning family name
// (spec.md §3: a dimension's family is itself unless overridden, an
// index's family is its family dimension's name).
func families(st *subscript.Table, subs []string) []string {
	if len(subs) == 0 {
		return nil
	}
	out := make([]string, len(subs))
	for i, s := range subs {
		if sub, ok := st.Sub(s); ok {
			out[i] = sub.SubFamily()
		} else {
			out[i] = s
		}
	}
	return out
}

// Marshal serializes doc deterministically (spec.md §5: field order is
// fixed by the struct tags above and encoding/json preserves it).
func (d *Document) Marshal() ([]byte, error) {
	return json.Marshal(d)
}
