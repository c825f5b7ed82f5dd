// Package subscript implements the Subscript/Dimension Table of
// spec.md §4.2: registration of dimensions, indices, aliases and
// inter-dimension mappings, family resolution, and subscript-list
// normalization.
//
// The source material's "Dimension | Index" duck-typed polymorphism
// becomes, per spec.md §9's design note, a shared interface
// (SubscriptLike) implemented by two concrete struct types rather than
// an inheritance hierarchy — the idiomatic Go rendering of a tagged
// variant, the same shape internal/symbols/symbol_table_core.go uses
// for its own Symbol{Kind SymbolKind, ...} (there a single struct with a
// kind tag; here two small structs behind one interface, since a
// Dimension and an Index carry almost disjoint field sets).
package subscript

// SubscriptLike is implemented by both Dimension and Index (spec.md §9).
type SubscriptLike interface {
	SubName() string
	SubFamily() string
}

// Dimension is spec.md §3's Dimension record.
type Dimension struct {
	Name       string              // canonical
	Family     string              // canonical, provisionally self
	ModelValue []string            // source-level subscript tokens as parsed
	Value      []string            // canonical index names after expansion
	Mappings   map[string][]string // toDimName -> ordered list of from-index names per target index, post-inversion

	// rawMappings holds the as-declared mapping (toDimName -> tokens
	// parallel to ModelValue) until Resolve inverts it into Mappings.
	rawMappings map[string][]string

	isAlias bool
}

// Size is len(Value) (spec.md §3).
func (d *Dimension) Size() int { return len(d.Value) }

// IsAlias reports whether this dimension was declared with addAlias,
// i.e. had an empty ModelValue and inherits Value/Size/ModelValue from
// its family (spec.md §3).
func (d *Dimension) IsAlias() bool { return d.isAlias }

func (d *Dimension) SubName() string   { return d.Name }
func (d *Dimension) SubFamily() string { return d.Family }

// Index is spec.md §3's Index record.
type Index struct {
	Name   string // canonical
	Value  int    // 0-based position in its family dimension
	Family string // canonical; the owning family dimension
}

func (i *Index) SubName() string   { return i.Name }
func (i *Index) SubFamily() string { return i.Family }
