package protobind_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/sdforge/sdc/internal/protobind"
)

const sampleProto = `syntax = "proto3";
package sample;

message Flow {
	double value = 1;
	double time = 2;
}

service FlowService {
	rpc Get(Flow) returns (Flow);
}
`

func writeSampleProto(t *testing.T) (dir, file string) {
	t.Helper()
	dir = t.TempDir()
	path := filepath.Join(dir, "sample.proto")
	require.NoError(t, os.WriteFile(path, []byte(sampleProto), 0o644))
	return dir, "sample.proto"
}

func TestLoadIndexesMessagesAndServices(t *testing.T) {
	dir, file := writeSampleProto(t)
	sch, err := protobind.Load(file, []string{dir})
	require.NoError(t, err)

	require.Contains(t, sch.Messages, "sample.Flow")
	require.Contains(t, sch.Services, "sample.FlowService")
	require.ElementsMatch(t, []string{"value", "time"}, protobind.FieldNames(sch, "sample.Flow"))
}

func TestCheckReportsUnresolvedBindings(t *testing.T) {
	dir, file := writeSampleProto(t)
	sch, err := protobind.Load(file, []string{dir})
	require.NoError(t, err)

	bindings := []protobind.Binding{
		{VarName: "_flow", ProtoFile: file, MessageName: "sample.Flow"},
		{VarName: "_missing", ProtoFile: file, MessageName: "sample.Nonexistent"},
	}
	errs := protobind.Check(sch, bindings)
	require.Len(t, errs, 1)
	require.ErrorContains(t, errs[0], "sample.Nonexistent")
}
