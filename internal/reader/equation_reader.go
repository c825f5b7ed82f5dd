package reader

import (
	"github.com/sdforge/sdc/internal/canon"
	"github.com/sdforge/sdc/internal/config"
	"github.com/sdforge/sdc/internal/diagnostics"
	"github.com/sdforge/sdc/internal/parsetree"
	"github.com/sdforge/sdc/internal/refresolve"
	"github.com/sdforge/sdc/internal/subscript"
	"github.com/sdforge/sdc/internal/vars"
)

const stageEquationReader = "equation_reader"

// EquationReader implements spec.md §4.6 over a Variable Table whose
// RefIDs have already been assigned (internal/refresolve.AssignRefIDs
// must run first). It owns the constant-expression memoization sidecar
// (exprText -> numericValue) the optional reduction pass consults.
type EquationReader struct {
	vt    *vars.Table
	st    *subscript.Table
	col   *diagnostics.Collector
	cache map[string]float64
}

// NewEquationReader builds a reader over vt/st, recording diagnostics
// into col. This is the final pass over each RHS (spec.md §4.6), so an
// unresolved reference here is fatal (spec.md §7 kind 2) rather than the
// logged-and-skipped treatment intermediate passes like mapping
// inversion use.
func NewEquationReader(vt *vars.Table, st *subscript.Table, col *diagnostics.Collector) *EquationReader {
	return &EquationReader{vt: vt, st: st, col: col, cache: make(map[string]float64)}
}

// Cache exposes the exprText -> numericValue memoization sidecar built
// up by ReduceConstants.
func (r *EquationReader) Cache() map[string]float64 { return r.cache }

// ReadAll classifies every variable's RHS (spec.md §4.6): varType,
// hasInitValue, references, initReferences, referencedLookupVarNames,
// referencedFunctionNames. Variables whose varType was already
// preassigned by the Variable Reader (lookup tables, constant lists)
// still have their references walked, since a lookup RHS can itself
// reference other idents (rare, but the walk is harmless when it finds
// none).
func (r *EquationReader) ReadAll() {
	for _, v := range r.vt.All() {
		r.readOne(v)
	}
}

// ReadOne classifies a single variable, the same logic ReadAll applies
// to every row. Used by internal/speccheck to classify a synthesized
// equation's variable once its RefID has been assigned.
func (r *EquationReader) ReadOne(v *vars.Variable) {
	r.readOne(v)
}

func (r *EquationReader) readOne(v *vars.Variable) {
	e := v.FormulaExpr
	if e == nil {
		// Pure lookup-table/const-list declarations with no RHS expression
		// tree; varType/points were set by the Variable Reader already.
		if v.VarType == vars.TypeUnset {
			v.VarType = vars.Const
		}
		v.InitReferences = v.References
		return
	}

	funcs, funcSeen := []string{}, map[string]bool{}
	lookups, lookupSeen := []string{}, map[string]bool{}
	refs, refSeen := []string{}, map[string]bool{}
	initRefs, initSeen := []string{}, map[string]bool{}

	w := &walker{vt: r.vt, st: r.st, col: r.col, funcs: &funcs, funcSeen: funcSeen, lookups: &lookups, lookupSeen: lookupSeen}

	switch e.Kind {
	case parsetree.ExprNumber:
		v.VarType = vars.Const

	case parsetree.ExprLookupLiteral:
		v.VarType = vars.Lookup
		v.Points = convertPoints(e.Points)

	case parsetree.ExprCall:
		fname := canon.Name(e.Name)
		w.recordCall(fname)
		switch {
		case config.IntegrationFunctionNames[fname]:
			v.VarType = vars.Level
			v.HasInitValue = true
			r.walkLevelArgs(w, e.Args, &refs, refSeen, &initRefs, initSeen)
		case fname == config.DirectDataFunctionName:
			v.VarType = vars.Data
			for _, a := range e.Args {
				w.walk(a, &refs, refSeen)
			}
		default:
			v.VarType = vars.Aux
			for _, a := range e.Args {
				w.walk(a, &refs, refSeen)
			}
		}

	default: // ExprIdent, ExprBinary, ExprUnary
		v.VarType = vars.Aux
		w.walk(e, &refs, refSeen)
	}

	v.References = refs
	if v.HasInitValue {
		v.InitReferences = initRefs
	} else {
		v.InitReferences = refs
	}
	v.ReferencedFunctionNames = funcs
	v.ReferencedLookupVarNames = lookups
}

// walkLevelArgs implements the generalized integration-intrinsic
// convention this reader uses: the first argument is the normal (flow)
// reference source, and — when more than one argument is present — the
// last argument is the initial-value expression (INTEG(flow, init),
// SMOOTH*(input, ..., init), DELAY*(input, ..., init) all place the
// initial value last). Middle arguments (delay time, averaging time,
// order) are ordinary references.
func (r *EquationReader) walkLevelArgs(w *walker, args []*parsetree.Expr, refs *[]string, refSeen map[string]bool, initRefs *[]string, initSeen map[string]bool) {
	if len(args) == 0 {
		return
	}
	w.walk(args[0], refs, refSeen)
	last := len(args) - 1
	for i := 1; i < last; i++ {
		w.walk(args[i], refs, refSeen)
	}
	if last > 0 {
		w.walk(args[last], initRefs, initSeen)
	}
}

type walker struct {
	vt  *vars.Table
	st  *subscript.Table
	col *diagnostics.Collector

	funcs    *[]string
	funcSeen map[string]bool
	lookups  *[]string
	lookupSeen map[string]bool
}

func (w *walker) recordCall(fname string) {
	appendUnique(w.funcs, w.funcSeen, fname)
	if w.vt.VarWithName(fname) != nil {
		appendUnique(w.lookups, w.lookupSeen, fname)
	}
}

func (w *walker) walk(e *parsetree.Expr, refs *[]string, refSeen map[string]bool) {
	if e == nil {
		return
	}
	switch e.Kind {
	case parsetree.ExprNumber, parsetree.ExprLookupLiteral:
		// no identifiers

	case parsetree.ExprIdent:
		name := canon.Name(e.Name)
		subs := canonicalizeSubs(e.Subscripts, w.st)
		if refID, ok := refresolve.Resolve(w.vt, w.st, name, subs); ok {
			appendUnique(refs, refSeen, refID)
		} else {
			w.col.Add(diagnostics.NewUnknownReferenceError(
				e.Tok, stageEquationReader, name, canon.Decanonicalize(name),
				"reference does not resolve to any variable", true,
			))
		}

	case parsetree.ExprCall:
		fname := canon.Name(e.Name)
		w.recordCall(fname)
		for _, a := range e.Args {
			w.walk(a, refs, refSeen)
		}

	case parsetree.ExprBinary, parsetree.ExprUnary:
		for _, a := range e.Args {
			w.walk(a, refs, refSeen)
		}
	}
}

func appendUnique(slice *[]string, seen map[string]bool, v string) {
	if seen[v] {
		return
	}
	seen[v] = true
	*slice = append(*slice, v)
}
