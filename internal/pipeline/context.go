package pipeline

import (
	"log/slog"

	"github.com/sdforge/sdc/internal/config"
	"github.com/sdforge/sdc/internal/diagnostics"
	"github.com/sdforge/sdc/internal/extdata"
	"github.com/sdforge/sdc/internal/listing"
	"github.com/sdforge/sdc/internal/parsetree"
	"github.com/sdforge/sdc/internal/reader"
	"github.com/sdforge/sdc/internal/speccheck"
	"github.com/sdforge/sdc/internal/subscript"
	"github.com/sdforge/sdc/internal/vars"
)

// PipelineContext threads the model analyzer's inputs and accumulated
// state through each Processor (spec.md §2's data-flow diagram). Authored
// fresh since no PipelineContext of this shape was in the retrieved
// file slice, but its shape follows directly from Processor.Process's
// single-argument, single-return signature: one struct carrying every
// piece of state a later stage needs from an earlier one.
type PipelineContext struct {
	Model    *parsetree.Model
	SpecDoc  *speccheck.Document
	ExtData  extdata.ExtData
	ModelDir string
	Options  config.AnalyzerOptions

	SubscriptTable *subscript.Table
	VarTable       *vars.Table
	EquationReader *reader.EquationReader

	Listing  []*vars.Variable
	VarIndex []listing.VarIndexEntry
	Document *listing.Document

	// Diagnostics collects every diagnostic raised by any processor,
	// fatal or not, deduplicated the same way internal/speccheck's
	// Checker does (spec.md §5 determinism).
	Diagnostics *diagnostics.Collector

	// Fatal holds the first fatal diagnostic encountered. A processor
	// that sees Fatal already set returns ctx unchanged: spec.md §7's
	// kinds 1, 3, 5, 6 "abort the pipeline" requirement.
	Fatal *diagnostics.DiagnosticError

	// Logger receives one Debug record per stage entry (SPEC_FULL.md
	// §A.1); never nil, defaults to slog.Default() in NewContext.
	Logger *slog.Logger
}

// NewContext builds a PipelineContext ready for Pipeline.Run, with fresh
// subscript/variable tables. internal/analyzer.Analyzer builds its own
// PipelineContext directly when it needs to reuse tables across a Reset
// (spec.md §5).
func NewContext(model *parsetree.Model, doc *speccheck.Document, ext extdata.ExtData, modelDir string, opts config.AnalyzerOptions) *PipelineContext {
	return &PipelineContext{
		Model:          model,
		SpecDoc:        doc,
		ExtData:        ext,
		ModelDir:       modelDir,
		Options:        opts,
		SubscriptTable: subscript.NewTable(),
		VarTable:       vars.NewTable(),
		Diagnostics:    diagnostics.NewCollector(),
		Logger:         slog.Default(),
	}
}

// logStage emits the SPEC_FULL.md §A.1 stage-entry Debug record.
func (c *PipelineContext) logStage(name string) {
	if c.Logger != nil {
		c.Logger.Debug("pipeline stage", "stage", name)
	}
}

// AddDiagnostic records d, and marks ctx fatally aborted the first time
// a fatal diagnostic is seen (spec.md §7 propagation rules).
func (c *PipelineContext) AddDiagnostic(d *diagnostics.DiagnosticError) {
	if d == nil {
		return
	}
	c.Diagnostics.Add(d)
	if d.Fatal && c.Fatal == nil {
		c.Fatal = d
	}
}

// AddDiagnostics records every non-nil diagnostic in ds.
func (c *PipelineContext) AddDiagnostics(ds []*diagnostics.DiagnosticError) {
	for _, d := range ds {
		c.AddDiagnostic(d)
	}
}

// refreshFatal re-scans Diagnostics for the first fatal entry not yet
// reflected in Fatal, for stages (internal/speccheck.Checker) that write
// straight into the shared Collector instead of returning diagnostics.
func (c *PipelineContext) refreshFatal() {
	if c.Fatal != nil {
		return
	}
	for _, d := range c.Diagnostics.All() {
		if d.Fatal {
			c.Fatal = d
			return
		}
	}
}
