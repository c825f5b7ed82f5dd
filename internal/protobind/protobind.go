// Package protobind schema-checks the implementation-defined `bindings`
// field of the spec document (spec.md §6: "implementation-defined
// pass-through for the code generator") against a `.proto` file,
// without invoking `protoc` as a separate build step.
//
// Grounded on `internal/evaluator/builtins_grpc.go`
// (`builtinGrpcLoadProto`): a `protoparse.Parser{ImportPaths: [...]}`
// parsed once with `ParseFiles`, the resulting `*desc.FileDescriptor`s
// indexed by name into a registry for later lookups — reused here for a
// one-shot validation instead of a long-lived registry, since this
// package has no daemon-wide proto cache to maintain.
package protobind

import (
	"fmt"

	"github.com/jhump/protoreflect/desc"
	"github.com/jhump/protoreflect/desc/protoparse"
)

// Binding is one decoded entry of the spec document's `bindings` field:
// a canonical variable name paired with the fully-qualified protobuf
// message type a code generator should bind it to.
type Binding struct {
	VarName     string `json:"varName"`
	ProtoFile   string `json:"protoFile"`
	MessageName string `json:"messageName"`
}

// Schema is a parsed `.proto` file's declared messages, keyed by
// fully-qualified name, and the services it declares.
type Schema struct {
	Messages map[string]*desc.MessageDescriptor
	Services []string
}

// Load parses protoFile (searched under importPaths, "." if empty) and
// indexes its declared messages and services.
func Load(protoFile string, importPaths []string) (*Schema, error) {
	if len(importPaths) == 0 {
		importPaths = []string{"."}
	}
	parser := protoparse.Parser{ImportPaths: importPaths}
	fds, err := parser.ParseFiles(protoFile)
	if err != nil {
		return nil, fmt.Errorf("protobind: parse %s: %w", protoFile, err)
	}

	sch := &Schema{Messages: make(map[string]*desc.MessageDescriptor)}
	for _, fd := range fds {
		for _, md := range fd.GetMessageTypes() {
			sch.Messages[md.GetFullyQualifiedName()] = md
		}
		for _, sd := range fd.GetServices() {
			sch.Services = append(sch.Services, sd.GetFullyQualifiedName())
		}
	}
	return sch, nil
}

// Check validates every binding's messageName resolves to a message
// this schema declares, returning one error per unresolved binding
// (not failing fast) so a caller can report every problem at once.
func Check(sch *Schema, bindings []Binding) []error {
	var errs []error
	for _, b := range bindings {
		if _, ok := sch.Messages[b.MessageName]; !ok {
			errs = append(errs, fmt.Errorf("protobind: %s: message %q not declared in %s", b.VarName, b.MessageName, b.ProtoFile))
		}
	}
	return errs
}

// FieldNames returns the field names declared on a message, in
// declaration order, or nil if the message is absent from the schema.
func FieldNames(sch *Schema, messageName string) []string {
	md, ok := sch.Messages[messageName]
	if !ok {
		return nil
	}
	fields := md.GetFields()
	out := make([]string, len(fields))
	for i, f := range fields {
		out[i] = f.GetName()
	}
	return out
}
