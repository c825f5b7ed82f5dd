// Package parsetree describes the external collaborator interface of
// spec.md §6: "Parsed model input. A tagged tree with either a legacy
// shape ... or a modern shape ... The core must dispatch on this tag."
//
// The lexer/parser that produces a Model is an external collaborator
// (spec.md §1 non-goals: parsing source text); this package only defines
// the shape the core consumes. Per spec.md §9's design note, the
// source's visitor-pattern dispatch becomes plain pattern matching
// (a switch over Node.Kind) rather than an inheritance hierarchy.
package parsetree

import "github.com/sdforge/sdc/internal/token"

// Shape tags which of the two external-parser shapes a Model uses.
type Shape int

const (
	// Legacy is a single parse-tree root (Roots) accepting visitation
	// that mixes dimension ranges and equations in source order.
	Legacy Shape = iota
	// Modern separates dimension definitions and equation definitions
	// into two lists up front.
	Modern
)

// NodeKind tags a legacy-shape Node for the reader's type switch.
type NodeKind int

const (
	NodeDimension NodeKind = iota
	NodeEquation
)

// Node is a legacy-shape parse-tree element: either a DimensionDef or an
// EquationDef, pattern-matched by Kind rather than type-asserted through
// an inheritance hierarchy.
type Node struct {
	Kind NodeKind
	Dim  *DimensionDef // set iff Kind == NodeDimension
	Eq   *EquationDef  // set iff Kind == NodeEquation
}

// Model is the tagged parse tree spec.md §6 describes.
type Model struct {
	Shape Shape

	// Roots is populated for Shape == Legacy: the single parse-tree root's
	// children, in source order, each either a dimension range or an
	// equation.
	Roots []Node

	// Dimensions and Equations are populated for Shape == Modern.
	Dimensions []*DimensionDef
	Equations  []*EquationDef
}

// AllDimensions returns every dimension definition regardless of Shape.
func (m *Model) AllDimensions() []*DimensionDef {
	if m.Shape == Modern {
		return m.Dimensions
	}
	var out []*DimensionDef
	for _, n := range m.Roots {
		if n.Kind == NodeDimension {
			out = append(out, n.Dim)
		}
	}
	return out
}

// AllEquations returns every equation definition regardless of Shape.
func (m *Model) AllEquations() []*EquationDef {
	if m.Shape == Modern {
		return m.Equations
	}
	var out []*EquationDef
	for _, n := range m.Roots {
		if n.Kind == NodeEquation {
			out = append(out, n.Eq)
		}
	}
	return out
}

// DimensionDef is a source-level dimension/subscript-range declaration
// (spec.md §3's Dimension, before canonicalization/expansion).
type DimensionDef struct {
	Name string // source name
	Tok  token.Token

	// IsAlias marks an alias dimension (spec.md §3): ModelValue is empty
	// and AliasFamily names the family it inherits from.
	IsAlias     bool
	AliasFamily string // source name, set iff IsAlias

	// ModelValue is the ordered list of source-level subscript tokens as
	// parsed; entries may themselves be other dimension names.
	ModelValue []string

	// Mappings is the as-declared mapping: target dimension source name
	// -> ordered list of tokens parallel to ModelValue (spec.md §4.2 step 5).
	Mappings map[string][]string
}

// EquationDef is a source-level equation (spec.md §4.4, §4.6).
type EquationDef struct {
	LHSName       string // source name
	LHSSubscripts []string // source-level subscript tokens, as written
	Tok           token.Token

	ModelLHS     string // full source text of the LHS, retained verbatim
	ModelFormula string // full source text of the RHS, retained verbatim

	// Formula is the RHS expression tree. Nil for pure data/lookup
	// declarations carried entirely in LookupPoints/ConstListValues.
	Formula *Expr

	IsLookupTable bool
	LookupPoints  []Point

	IsConstList     bool
	ConstListValues []float64
}

// Point mirrors vars.Point at the parse-tree level to avoid an import
// cycle; reader converts between the two.
type Point struct{ X, Y float64 }

// ExprKind tags an Expr node for pattern matching (spec.md §9).
type ExprKind int

const (
	ExprNumber ExprKind = iota
	ExprIdent
	ExprCall
	ExprBinary
	ExprUnary
	ExprLookupLiteral
)

// Expr is the RHS expression tree. A single struct with a Kind tag,
// following the same "tagged variant over a flat struct" shape as
// funvibe/funxy's internal/symbols/symbol_table_core.go Symbol{Kind SymbolKind, ...},
// rather than a Go interface per node kind — appropriate
// here because every Expr kind is small and reader code pattern-matches
// on Kind in one place rather than dispatching virtually.
type Expr struct {
	Kind ExprKind
	Tok  token.Token

	Number float64 // ExprNumber

	Name       string   // ExprIdent/ExprCall: source-level name
	Subscripts []string // ExprIdent: subscript tokens at the reference site

	Op   string // ExprBinary/ExprUnary: operator text, diagnostics only
	Args []*Expr

	Points []Point // ExprLookupLiteral
}
