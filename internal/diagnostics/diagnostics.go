// Package diagnostics implements the error-kind taxonomy of spec.md §7.
//
// Every user-visible analysis failure is a *DiagnosticError carrying the
// canonical name involved, a source token for line/column, and the
// pipeline stage that raised it, matching
// diagnostics.DiagnosticError contract observed at its call sites
// (cmd/lsp/diagnostics.go, internal/analyzer/analyzer.go).
package diagnostics

import (
	"fmt"

	"github.com/sdforge/sdc/internal/token"
)

// Code identifies one diagnostic message shape. Grouped by §7 error kind.
type Code string

const (
	// StructuralError — cycle in dimension expansion, duplicate dimension,
	// unknown family, unresolved mapping position.
	ErrStructuralCycle       Code = "S001"
	ErrStructuralDuplicate   Code = "S002"
	ErrStructuralUnknownFam  Code = "S003"
	ErrStructuralBadMapping  Code = "S004"
	// UnknownReference — a refId resolves to no variable.
	ErrUnknownReference Code = "R001"
	// SpecMismatch — spec names an input/output with no backing variable
	// and no external data.
	ErrSpecMismatch Code = "M001"
	// TypeConflict — incompatible variable type declarations.
	ErrTypeConflict Code = "T001"
	// ParseError — propagated from the synthesized-equation path.
	ErrParse Code = "P001"
	// Cycle — toposort found a dependency cycle.
	ErrCycleInit      Code = "C001"
	ErrCycleAuxLevel  Code = "C002"
)

// Kind is the §7 error-kind classification, used to decide whether a
// diagnostic aborts the pipeline (fatal) or is merely recorded.
type Kind int

const (
	KindStructural Kind = iota
	KindUnknownReference
	KindSpecMismatch
	KindTypeConflict
	KindParse
	KindCycle
)

func (k Kind) String() string {
	switch k {
	case KindStructural:
		return "StructuralError"
	case KindUnknownReference:
		return "UnknownReference"
	case KindSpecMismatch:
		return "SpecMismatch"
	case KindTypeConflict:
		return "TypeConflict"
	case KindParse:
		return "ParseError"
	case KindCycle:
		return "Cycle"
	default:
		return "Unknown"
	}
}

// Fatal reports whether, per §7, diagnostics of this kind abort the
// pipeline unconditionally. UnknownReference and TypeConflict are
// context-dependent (callers decide via NewUnknownReferenceError's
// fatal argument / reconciliation outcome) so they are not listed here.
func (k Kind) Fatal() bool {
	switch k {
	case KindStructural, KindSpecMismatch, KindParse, KindCycle:
		return true
	default:
		return false
	}
}

// DiagnosticError is the single error type surfaced to callers of the
// analyzer. It always carries enough context to name the offending
// variable or spec entry per §6's "Exit codes / error signaling".
type DiagnosticError struct {
	Code    Code
	Kind    Kind
	Token   token.Token
	Name    string // canonical name involved
	Display string // decanonicalized / source-level name, may be empty
	Stage   string // pipeline stage that raised it
	Message string
	Fatal   bool
}

func (e *DiagnosticError) Error() string {
	name := e.Name
	if e.Display != "" && e.Display != e.Name {
		name = fmt.Sprintf("%s (%s)", e.Name, e.Display)
	}
	if name == "" {
		return fmt.Sprintf("[%s] %s: %s", e.Code, e.Stage, e.Message)
	}
	return fmt.Sprintf("[%s] %s: %s: %s (at %s)", e.Code, e.Stage, name, e.Message, e.Token)
}

// DedupKey matches funvibe/funxy's errorSet map key shape: "line:col:code".
func (e *DiagnosticError) DedupKey() string {
	return fmt.Sprintf("%d:%d:%s", e.Token.Line, e.Token.Column, e.Code)
}

func newErr(code Code, kind Kind, tok token.Token, stage, name, display, msg string) *DiagnosticError {
	return &DiagnosticError{
		Code:    code,
		Kind:    kind,
		Token:   tok,
		Name:    name,
		Display: display,
		Stage:   stage,
		Message: msg,
		Fatal:   kind.Fatal(),
	}
}

// NewStructuralError builds a §7 kind-1 diagnostic (cycle, duplicate
// dimension, unknown family, bad mapping). Fatal unless the caller clears
// Fatal, as mapping inversion does for the diagnostics it raises.
func NewStructuralError(code Code, tok token.Token, stage, name, display, msg string) *DiagnosticError {
	return newErr(code, KindStructural, tok, stage, name, display, msg)
}

// NewUnknownReferenceError builds a §7 kind-2 diagnostic. Fatal only when
// raised during final passes; intermediate-pass callers set fatal=false
// (logged and skipped, e.g. during mapping inversion).
func NewUnknownReferenceError(tok token.Token, stage, refID, display, msg string, fatal bool) *DiagnosticError {
	e := newErr(ErrUnknownReference, KindUnknownReference, tok, stage, refID, display, msg)
	e.Fatal = fatal
	return e
}

// NewSpecMismatchError builds a §7 kind-3 diagnostic naming which spec
// field (input/output) referenced a missing variable. Always fatal.
func NewSpecMismatchError(tok token.Token, field, name, display string) *DiagnosticError {
	msg := fmt.Sprintf("spec %s names %q but no variable or external data defines it", field, display)
	return newErr(ErrSpecMismatch, KindSpecMismatch, tok, "speccheck", name, display, msg)
}

// NewTypeConflictError builds a §7 kind-4 diagnostic for an
// irreconcilable duplicate-type declaration (§4.8). fatal=false signals
// the reconciliation attempt; callers escalate to fatal=true only when
// reconciliation itself fails (e.g. constant value fails to parse).
func NewTypeConflictError(tok token.Token, stage, name, display, msg string, fatal bool) *DiagnosticError {
	e := newErr(ErrTypeConflict, KindTypeConflict, tok, stage, name, display, msg)
	e.Fatal = fatal
	return e
}

// NewParseError wraps a synthesized-equation parse failure (§4.7). Always
// fatal.
func NewParseError(tok token.Token, name, display, msg string) *DiagnosticError {
	return newErr(ErrParse, KindParse, tok, "speccheck", name, display, msg)
}

// NewCycleError builds a §7 kind-6 diagnostic naming one node in the
// cycle the toposorter found. Always fatal.
func NewCycleError(code Code, tok token.Token, stage, node string) *DiagnosticError {
	msg := fmt.Sprintf("dependency cycle detected involving %s", node)
	return newErr(code, KindCycle, tok, stage, node, node, msg)
}
