package pipeline

import (
	"github.com/sdforge/sdc/internal/dimreader"
	"github.com/sdforge/sdc/internal/listing"
	"github.com/sdforge/sdc/internal/reader"
	"github.com/sdforge/sdc/internal/refresolve"
	"github.com/sdforge/sdc/internal/speccheck"
)

// DimensionStage registers and resolves the parse tree's dimension
// declarations (spec.md §4.2), the first stage of §2's data-flow
// diagram.
var DimensionStage = ProcessorFunc(func(ctx *PipelineContext) *PipelineContext {
	return skipIfFatal(ctx, func(ctx *PipelineContext) {
		ctx.logStage("dimension")
		ctx.SubscriptTable.SetLogger(ctx.Logger)
		ctx.SubscriptTable.SetModelDir(ctx.ModelDir)
		if ctx.SpecDoc != nil {
			ctx.SubscriptTable.SetDimensionFamilies(ctx.SpecDoc.DimensionFamilies)
		}
		dimreader.Load(ctx.SubscriptTable, ctx.Model)
		ctx.AddDiagnostics(ctx.SubscriptTable.Resolve())
	})
})

// VariableReaderStage runs the Name Canonicalizer and Variable Reader
// (spec.md §4.4) over the parse tree, producing Variable stubs.
var VariableReaderStage = ProcessorFunc(func(ctx *PipelineContext) *PipelineContext {
	return skipIfFatal(ctx, func(ctx *PipelineContext) {
		ctx.logStage("variable_reader")
		var separation map[string]string
		if ctx.SpecDoc != nil {
			separation = ctx.SpecDoc.CanonicalSeparationDims()
		}
		vt, diags := reader.ReadVariables(ctx.Model, ctx.SubscriptTable, separation)
		ctx.VarTable = vt
		ctx.AddDiagnostics(diags)
	})
})

// ReferenceResolverStage implements spec.md §4.5 steps 1-2:
// non-apply-to-all detection and refId assignment, run over the full
// variable table before any RHS is walked.
var ReferenceResolverStage = ProcessorFunc(func(ctx *PipelineContext) *PipelineContext {
	return skipIfFatal(ctx, func(ctx *PipelineContext) {
		ctx.logStage("reference_resolver")
		refresolve.DetectNonApplyToAll(ctx.VarTable)
		refresolve.AssignRefIDs(ctx.VarTable)
	})
})

// EquationReaderStage implements spec.md §4.6: classifying every
// variable's role from its RHS and accumulating its reference sets, then
// running the optional constant-reduction pass.
var EquationReaderStage = ProcessorFunc(func(ctx *PipelineContext) *PipelineContext {
	return skipIfFatal(ctx, func(ctx *PipelineContext) {
		ctx.logStage("equation_reader")
		er := reader.NewEquationReader(ctx.VarTable, ctx.SubscriptTable, ctx.Diagnostics)
		er.ReadAll()
		ctx.refreshFatal()
		if ctx.Fatal != nil {
			return
		}
		er.ReduceConstants(ctx.Options.Reduction)
		ctx.EquationReader = er
	})
})

// SpecCheckerStage implements spec.md §4.7-4.8: validating declared
// inputs/outputs, synthesizing missing lookups from external data,
// eliminating dead code, and reconciling duplicate const/data
// declarations.
var SpecCheckerStage = ProcessorFunc(func(ctx *PipelineContext) *PipelineContext {
	return skipIfFatal(ctx, func(ctx *PipelineContext) {
		ctx.logStage("spec_checker")
		if ctx.SpecDoc == nil {
			return
		}
		// Checker records diagnostics straight into ctx.Diagnostics (the
		// same Collector), so ctx.Fatal is refreshed from it after each
		// step rather than from a return value.
		checker := speccheck.NewChecker(ctx.VarTable, ctx.SubscriptTable, ctx.Diagnostics, ctx.ExtData, ctx.SpecDoc.CanonicalSeparationDims())
		checker.Check(ctx.SpecDoc, ctx.EquationReader)
		ctx.refreshFatal()
		if ctx.Fatal != nil {
			return
		}
		checker.ResolveDuplicateDeclarations()
		ctx.refreshFatal()
		if ctx.Fatal != nil {
			return
		}
		checker.EliminateDeadCode(ctx.SpecDoc)
	})
})

// ListingStage implements spec.md §4.10: the evaluation-order listing,
// the variable index map, and the final JSON document.
var ListingStage = ProcessorFunc(func(ctx *PipelineContext) *PipelineContext {
	return skipIfFatal(ctx, func(ctx *PipelineContext) {
		ctx.logStage("listing")
		order, err := listing.EvaluationOrder(ctx.VarTable)
		if err != nil {
			ctx.AddDiagnostic(err)
			return
		}
		ctx.Listing = order
		ctx.VarIndex = listing.VarIndexMap(order)
		ctx.Document = listing.BuildDocument(ctx.SubscriptTable, order, ctx.VarIndex)
	})
})

// Standard returns the full nine-component pipeline in spec.md §2's
// data-flow order.
func Standard() *Pipeline {
	return New(
		DimensionStage,
		VariableReaderStage,
		ReferenceResolverStage,
		EquationReaderStage,
		SpecCheckerStage,
		ListingStage,
	)
}
