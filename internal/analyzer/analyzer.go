// Package analyzer provides the top-level entry point of the model
// analyzer: a single long-lived Analyzer that runs the full pipeline of
// spec.md §2 over one model at a time and can be Reset to run again
// (spec.md §5).
//
// Grounded on funvibe/funxy's internal/analyzer.Analyzer: a struct holding
// long-lived state (there, a *symbols.SymbolTable plus loader/TypeMap)
// with a constructor and small setter methods, rather than a package of
// free functions. Here the long-lived state is the subscript.Table
// (dimensions persist across a Reset, spec.md §5) plus configuration,
// and each Analyze call builds a fresh pipeline.PipelineContext around
// it instead of a fresh walker.
package analyzer

import (
	"log/slog"

	"github.com/google/uuid"

	"github.com/sdforge/sdc/internal/config"
	"github.com/sdforge/sdc/internal/diagnostics"
	"github.com/sdforge/sdc/internal/extdata"
	"github.com/sdforge/sdc/internal/parsetree"
	"github.com/sdforge/sdc/internal/pipeline"
	"github.com/sdforge/sdc/internal/speccheck"
	"github.com/sdforge/sdc/internal/subscript"
	"github.com/sdforge/sdc/internal/vars"
)

// Analyzer is the long-lived driver of the model analyzer. One Analyzer
// is built per process (or per daemon connection, spec.md §9's design
// note) and may run Analyze repeatedly, Reset between runs to clear
// variable-level state while keeping the dimension table the way
// spec.md §5 requires.
type Analyzer struct {
	// Logger receives every pipeline stage's Debug record
	// (SPEC_FULL.md §A.1). Defaults to slog.Default().
	Logger *slog.Logger

	// InstanceID identifies this Analyzer instance in log records,
	// re-stamped on every Reset (SPEC_FULL.md §A.1).
	InstanceID uuid.UUID

	// Options controls the optional tool behaviors of SPEC_FULL.md §A.3
	// (constant-reduction mode, verbosity, cache directory).
	Options config.AnalyzerOptions

	// SubscriptTable persists across Reset (spec.md §5: "dimensions and
	// indices are never deleted once created").
	SubscriptTable *subscript.Table

	// VarTable is rebuilt by every Analyze call and cleared by Reset.
	VarTable *vars.Table
}

// New returns an Analyzer configured with opts, ready for Analyze.
func New(opts config.AnalyzerOptions) *Analyzer {
	return &Analyzer{
		Logger:         slog.Default(),
		InstanceID:     uuid.New(),
		Options:        opts,
		SubscriptTable: subscript.NewTable(),
		VarTable:       vars.NewTable(),
	}
}

// Analyze runs the standard pipeline (spec.md §2's nine components)
// over model, reusing this Analyzer's SubscriptTable so dimensions
// declared by an earlier call in the same process remain visible, per
// spec.md §5.
func (a *Analyzer) Analyze(model *parsetree.Model, doc *speccheck.Document, ext extdata.ExtData, modelDir string) *pipeline.PipelineContext {
	logger := a.Logger
	if logger != nil {
		logger = logger.With("instanceID", a.InstanceID.String())
	}
	ctx := &pipeline.PipelineContext{
		Model:          model,
		SpecDoc:        doc,
		ExtData:        ext,
		ModelDir:       modelDir,
		Options:        a.Options,
		SubscriptTable: a.SubscriptTable,
		VarTable:       a.VarTable,
		Logger:         logger,
	}
	ctx.Diagnostics = diagnostics.NewCollector()
	ctx = pipeline.Standard().Run(ctx)
	a.VarTable = ctx.VarTable
	return ctx
}

// Reset clears the variable table (and its non-apply-to-all expansion
// flags) and re-stamps InstanceID, without disturbing SubscriptTable
// (spec.md §5: dimensions outlive a reset; variables do not).
func (a *Analyzer) Reset() {
	a.VarTable.Reset()
	a.InstanceID = uuid.New()
}
