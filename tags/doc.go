// Package tags maps between untyped cloud resource tags and typed Go structs.
//
// A tag is a key/value string pair. A TagList is an ordered collection of
// tags as returned by a cloud provider. This package converts a TagList
// into a struct whose fields carry domain types, and back.
//
// # Field encoding
//
// Every field type is encoded through a Codec:
//
//   - String and Bool: built-in encodings for string and bool kinds
//   - Manual: the type implements ValueMarshaler and ValueUnmarshaler
//   - JSON and CBOR: the value is serialized into the tag value
//   - Enum and Timestamp: helpers for common manual encodings
//
// # Struct aggregation
//
// Structs are described in one of three ways, all with the same semantics:
// struct tags used by Unmarshal, Marshal and SchemaOf; a Schema built from
// Required and Optional field descriptors; or code generated by
// tagmapper-gen, which calls DecodeRequired, DecodeOptional, EncodeRequired
// and EncodeOptional directly.
//
//	type InstanceTags struct {
//		Name    string     `tag:"Name"`
//		Managed bool       `tag:"managed"`
//		Expires *time.Time `tag:"expires,json"`
//	}
//
//	it, err := tags.Unmarshal[InstanceTags](list)
//
// Decoding attempts every field and reports all failures at once in an
// AggregateError. Missing required tags, undecodable values and
// duplicated keys are distinct errors. Pointer fields are optional: a
// missing tag leaves them nil, but a present and invalid tag is still an
// error.
package tags
