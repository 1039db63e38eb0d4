// Package gen writes the tag aggregation code of planned structs.
//
// Generation uses text/template + go/format. For a struct T the output
// file declares:
//   - TFromTags, decoding every field and aggregating failures
//   - T.IntoTags, encoding fields in declaration order
//   - (*T).UnmarshalTags, assigning only on success
//
// Field codecs come from package tags, so generated code shares its
// semantics with the schema builder and the struct tag reflection.
package gen
