// Package config carries the fixed constants of the model analyzer, the
// way funvibe/funxy's internal/config/constants.go carries its builtin
// names: plain exported const blocks, no framework.
package config

// TimeVarName is the canonical name of the always-present special scalar
// placeholder (spec.md §3, §4.4).
const TimeVarName = "_time"

// FixedPins are always retained by dead-code elimination (spec.md §4.7)
// regardless of reachability from inputs/outputs.
var FixedPins = []string{"_initial_time", "_final_time", "_saveper", "_time_step"}

// Internal-helper refId prefixes omitted from the evaluation-order
// listing (spec.md §4.10).
const (
	InternalLevelPrefix = "__level"
	InternalAuxPrefix   = "__aux"
)

// IntegrationFunctionNames are the RHS intrinsics that classify a
// variable as varType "level" (spec.md §4.6). Keyed by canonical form
// (canon.Name always prefixes one leading underscore, so every key here
// does too) since the Equation Reader compares against canon.Name(call
// name) directly.
var IntegrationFunctionNames = map[string]bool{
	"_integ":          true,
	"_active_initial": true,
	"_delay_fixed":    true,
	"_delay1":         true,
	"_delay1i":        true,
	"_delay3":         true,
	"_delay3i":        true,
	"_delay_n":        true,
	"_smooth":         true,
	"_smoothi":        true,
	"_smooth3":        true,
	"_smooth3i":       true,
	"_smooth_n":       true,
	"_trend":          true,
}

// DirectDataFunctionName is the RHS intrinsic that classifies a variable
// as varType "data" when it reads from directData (spec.md §4.6, §6).
const DirectDataFunctionName = "_get_direct_data"

// DirectSubscriptFunctionName is the intrinsic used during dimension
// resolution to pull subscript lists from sibling files in the model
// directory (spec.md §4.2).
const DirectSubscriptFunctionName = "_get_direct_subscript"

// WithLookupFunctionName is the intrinsic used both by ordinary lookup
// equations and by synthesized spec-data equations (spec.md §4.7).
const WithLookupFunctionName = "_with_lookup"

// ReductionMode gates the optional algebraic simplification pass of
// spec.md §4.6.
type ReductionMode string

const (
	ReductionDefault    ReductionMode = "default"
	ReductionAggressive ReductionMode = "aggressive"
	ReductionOff        ReductionMode = "off"
)

// AnalyzerOptions is the small, optional tool-options document described
// in SPEC_FULL.md §A.3. The spec document itself (inputs/outputs/spec
// checker config) stays JSON per spec.md §6; this is a local,
// implementation-only settings file loaded with yaml.v3.
type AnalyzerOptions struct {
	Reduction ReductionMode `yaml:"reduction"`
	Verbose   bool          `yaml:"verbose"`
	CacheDir  string        `yaml:"cacheDir"`
}

// DefaultOptions mirrors what the analyzer does when no options file is
// supplied.
func DefaultOptions() AnalyzerOptions {
	return AnalyzerOptions{Reduction: ReductionDefault}
}
