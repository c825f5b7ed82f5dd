package subscript

import (
	"log/slog"
	"sort"
)

// Table is the resettable dimension/index registry of spec.md §4.2.
// A single Table belongs to one Analyzer context (spec.md §5, §9) and is
// reset by re-running resolution rather than by clearing in place, since
// dimensions and indices are never deleted once created (spec.md §3
// lifecycles).
type Table struct {
	dims    map[string]*Dimension
	indices map[string]*Index
	// dimOrder preserves insertion order for deterministic iteration
	// (spec.md §5 — "no use of unordered iteration in serialization paths").
	dimOrder []string

	// dimensionFamilies is the external override map (spec.md §4.2 step 3,
	// §6 spec document's dimensionFamilies field), canonical dim -> canonical family.
	dimensionFamilies map[string]string

	// modelDir is the filesystem path passed to resolution so
	// GET DIRECT SUBSCRIPT can read sibling files (spec.md §6).
	modelDir string

	resolved bool

	// logger receives Debug-level tracing of family resolution and
	// mapping inversion (SPEC_FULL.md §C.2, §C.3); nil is treated as a
	// no-op sink so a Table built directly (as in most tests) never
	// needs one.
	logger *slog.Logger
}

// NewTable returns an empty Table.
func NewTable() *Table {
	return &Table{
		dims:    make(map[string]*Dimension),
		indices: make(map[string]*Index),
	}
}

// SetLogger installs the logger family-resolution and mapping-inversion
// tracing is written to. Debug-level records only fire when the
// handler's level admits them, so this call is cheap even when the
// caller's AnalyzerOptions.Verbose is false.
func (t *Table) SetLogger(l *slog.Logger) {
	t.logger = l
}

func (t *Table) debugf(msg string, args ...any) {
	if t.logger != nil {
		t.logger.Debug(msg, args...)
	}
}

// SetDimensionFamilies installs the external dimensionFamilies override
// from the spec document (spec.md §4.2 step 3, §6).
func (t *Table) SetDimensionFamilies(m map[string]string) {
	t.dimensionFamilies = m
}

// SetModelDir records the model directory for GET DIRECT SUBSCRIPT reads.
func (t *Table) SetModelDir(dir string) { t.modelDir = dir }

// ModelDir returns the configured model directory.
func (t *Table) ModelDir() string { return t.modelDir }

// AddDimension registers a (possibly not-yet-expanded) dimension.
// mappings, if non-nil, is the as-declared raw mapping (toDimName ->
// tokens parallel to modelValue) consumed by Resolve's inversion step.
func (t *Table) AddDimension(name string, modelValue []string, mappings map[string][]string) *Dimension {
	if existing, ok := t.dims[name]; ok {
		return existing
	}
	d := &Dimension{
		Name:        name,
		Family:      name,
		ModelValue:  modelValue,
		rawMappings: mappings,
		Mappings:    make(map[string][]string),
	}
	t.dims[name] = d
	t.dimOrder = append(t.dimOrder, name)
	return d
}

// AddAlias registers an alias dimension (spec.md §3): empty ModelValue,
// explicit family, Value/Size/ModelValue filled from the family by
// Resolve.
func (t *Table) AddAlias(name, familyName string) *Dimension {
	if existing, ok := t.dims[name]; ok {
		return existing
	}
	d := &Dimension{
		Name:     name,
		Family:   familyName,
		isAlias:  true,
		Mappings: make(map[string][]string),
	}
	t.dims[name] = d
	t.dimOrder = append(t.dimOrder, name)
	return d
}

// AddIndex registers an index at a fixed position within family. Used
// both directly (pre-resolved models) and internally by Resolve's
// "register indices" step.
func (t *Table) AddIndex(name string, position int, family string) *Index {
	if existing, ok := t.indices[name]; ok {
		return existing
	}
	idx := &Index{Name: name, Value: position, Family: family}
	t.indices[name] = idx
	return idx
}

// Sub looks up name as either a Dimension or an Index.
func (t *Table) Sub(name string) (SubscriptLike, bool) {
	if d, ok := t.dims[name]; ok {
		return d, true
	}
	if i, ok := t.indices[name]; ok {
		return i, true
	}
	return nil, false
}

// IsDimension reports whether name is a registered dimension.
func (t *Table) IsDimension(name string) bool {
	_, ok := t.dims[name]
	return ok
}

// IsIndex reports whether name is a registered index.
func (t *Table) IsIndex(name string) bool {
	_, ok := t.indices[name]
	return ok
}

// Dimension returns the named dimension, or nil.
func (t *Table) Dimension(name string) *Dimension { return t.dims[name] }

// Index returns the named index, or nil.
func (t *Table) Index(name string) *Index { return t.indices[name] }

// AllDimensions returns every dimension sorted by canonical name
// ascending (spec.md §5 determinism requirement).
func (t *Table) AllDimensions() []*Dimension {
	out := make([]*Dimension, 0, len(t.dims))
	for _, d := range t.dims {
		out = append(out, d)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// AllAliases returns every alias dimension, sorted by canonical name.
func (t *Table) AllAliases() []*Dimension {
	out := make([]*Dimension, 0)
	for _, d := range t.dims {
		if d.isAlias {
			out = append(out, d)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// FamilyOf returns d's family name, used by canon.NormalSubscripts to
// sort subscript lists into normal order (spec.md §3). Indices resolve
// to their family; dimensions resolve to themselves for ordering
// purposes unless already assigned a different family by Resolve.
func (t *Table) FamilyOf(name string) string {
	if idx, ok := t.indices[name]; ok {
		return idx.Family
	}
	if d, ok := t.dims[name]; ok {
		return d.Family
	}
	return name
}

// Reset clears every registered dimension and index. Per spec.md §5 the
// dimension table's reset path is "re-running resolution", so this is
// only invoked when a fresh Table is wanted (a brand new Analyzer
// context), not as part of Analyzer.Reset's per-compilation clearing.
func (t *Table) Reset() {
	t.dims = make(map[string]*Dimension)
	t.indices = make(map[string]*Index)
	t.dimOrder = nil
	t.resolved = false
}

// Resolved reports whether Resolve has completed successfully.
func (t *Table) Resolved() bool { return t.resolved }

