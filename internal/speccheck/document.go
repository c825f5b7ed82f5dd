// Package speccheck implements the Spec Checker & Dead-Code Eliminator
// of spec.md §4.7 and the Duplicate-Declaration Resolution of §4.8.
package speccheck

import (
	"encoding/json"
	"strings"

	"github.com/sdforge/sdc/internal/canon"
)

// Document is the spec document schema of spec.md §6: the external,
// JSON-encoded description of a model's inputs, outputs, and analysis
// options. Name forms ending in "Names" are source names and must be
// canonicalized before use; the "Vars" forms are already canonical.
type Document struct {
	InputVars     []string `json:"inputVars,omitempty"`
	InputVarNames []string `json:"inputVarNames,omitempty"`

	OutputVars     []string `json:"outputVars,omitempty"`
	OutputVarNames []string `json:"outputVarNames,omitempty"`

	// SpecialSeparationDims maps a source variable name to a source
	// dimension name, forcing per-index separation (spec.md §4.4, §4.7).
	SpecialSeparationDims map[string]string `json:"specialSeparationDims,omitempty"`

	// DimensionFamilies maps a canonical dimension name to a canonical
	// family name, consumed by internal/subscript's resolution step 3
	// before the Variable Reader ever runs.
	DimensionFamilies map[string]string `json:"dimensionFamilies,omitempty"`

	// Bindings is an implementation-defined pass-through for the code
	// generator; this module only carries it, per spec.md §6.
	Bindings json.RawMessage `json:"bindings,omitempty"`
}

// Decode parses a spec document from its JSON wire form (spec.md §6).
func Decode(data []byte) (*Document, error) {
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	return &doc, nil
}

// CanonicalInputNames merges InputVars (already canonical) with
// InputVarNames (source names, canonicalized here).
func (d *Document) CanonicalInputNames() []string {
	return mergeCanonical(d.InputVars, d.InputVarNames)
}

// CanonicalOutputNames merges OutputVars with canonicalized OutputVarNames.
func (d *Document) CanonicalOutputNames() []string {
	return mergeCanonical(d.OutputVars, d.OutputVarNames)
}

func mergeCanonical(alreadyCanonical, sourceNames []string) []string {
	out := make([]string, 0, len(alreadyCanonical)+len(sourceNames))
	out = append(out, alreadyCanonical...)
	for _, n := range sourceNames {
		out = append(out, canon.Name(n))
	}
	return out
}

// CanonicalSeparationDims canonicalizes both the key and value of
// SpecialSeparationDims, matching the canonical varName ->
// canonical dimension name shape internal/reader.ReadOne expects.
func (d *Document) CanonicalSeparationDims() map[string]string {
	out := make(map[string]string, len(d.SpecialSeparationDims))
	for k, v := range d.SpecialSeparationDims {
		out[canon.Name(k)] = canon.Name(v)
	}
	return out
}

// DeadCodeEnabled reports whether dead-code elimination runs: only when
// both inputVars and outputVars are non-empty (spec.md §4.7).
func (d *Document) DeadCodeEnabled() bool {
	return len(d.CanonicalInputNames()) > 0 && len(d.CanonicalOutputNames()) > 0
}

// stripIndexSuffix drops a trailing "[...]" from an output name
// (spec.md §4.7's "stripping [index] if present").
func stripIndexSuffix(name string) string {
	if i := strings.IndexByte(name, '['); i >= 0 {
		return name[:i]
	}
	return name
}
