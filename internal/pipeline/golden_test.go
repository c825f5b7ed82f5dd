package pipeline_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/tools/txtar"

	"github.com/sdforge/sdc/internal/config"
	"github.com/sdforge/sdc/internal/parsetree"
	"github.com/sdforge/sdc/internal/pipeline"
	"github.com/sdforge/sdc/internal/speccheck"
)

// scalarChainArchive bundles a model and a spec document as sibling
// JSON fixtures in one txtar file, the way cmd/go's own script tests
// bundle multiple named files in a single golden-data archive, rather
// than as two separate testdata files that have to be kept in sync by
// hand.
var scalarChainArchive = []byte(`
-- model.json --
{
  "Shape": 1,
  "Equations": [
    {"LHSName": "a", "ModelLHS": "a", "ModelFormula": "5", "Formula": {"Kind": 0, "Number": 5}},
    {"LHSName": "b", "ModelLHS": "b", "ModelFormula": "a+2", "Formula": {"Kind": 3, "Op": "+", "Args": [
      {"Kind": 1, "Name": "a"},
      {"Kind": 0, "Number": 2}
    ]}}
  ]
}
-- spec.json --
{
  "inputVarNames": ["a"],
  "outputVarNames": ["b"]
}
`)

func archiveFile(t *testing.T, arc *txtar.Archive, name string) []byte {
	t.Helper()
	for _, f := range arc.Files {
		if f.Name == name {
			return f.Data
		}
	}
	t.Fatalf("txtar archive missing file %q", name)
	return nil
}

// TestGoldenArchiveScalarChain runs the same scalar-chain scenario as
// TestScalarChainEndToEnd, but sourced from a txtar-bundled JSON fixture
// instead of Go struct literals, exercising the wire shapes
// parsetree.Model and speccheck.Document actually decode in production.
func TestGoldenArchiveScalarChain(t *testing.T) {
	arc := txtar.Parse(scalarChainArchive)

	var model parsetree.Model
	require.NoError(t, json.Unmarshal(archiveFile(t, arc, "model.json"), &model))

	doc, err := speccheck.Decode(archiveFile(t, arc, "spec.json"))
	require.NoError(t, err)

	ctx := pipeline.NewContext(&model, doc, nil, "", config.DefaultOptions())
	ctx = pipeline.Standard().Run(ctx)

	require.Nil(t, ctx.Fatal)
	require.NotNil(t, ctx.VarTable.VarWithName("_a"))
	b := ctx.VarTable.VarWithName("_b")
	require.NotNil(t, b)
	require.Contains(t, b.References, "_a")
}
