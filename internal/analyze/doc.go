// Package analyze provides package loading and type graph extraction.
//
// It uses golang.org/x/tools/go/packages with AST and go/types
// to build a canonical in-memory model of structs and their fields.
//
// Key types:
//   - TypeID: package import path + type name
//   - TypeInfo: describes kind (struct/basic/alias/pointer/slice/map/external)
//     and whether the type encodes itself into a tag value
//   - FieldInfo: describes field name, type, tags, and embedding
//
// A struct whose doc comment carries the line
//
//	//tagmapper:generate
//
// is recorded as marked for generation.
package analyze
