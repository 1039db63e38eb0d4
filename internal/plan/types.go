package plan

import (
	"go/types"

	"tagmapper/internal/analyze"
	"tagmapper/internal/common"
	"tagmapper/internal/diagnostic"
	"tagmapper/tags"
)

// Plan is the final output of the resolution pipeline.
// It contains everything needed for code generation.
type Plan struct {
	// PkgPath is the import path of the package being generated into.
	PkgPath string
	// PkgName is the package clause name.
	PkgName string
	// Dir is the package source directory.
	Dir string
	// TypesPkg is the type-checked package, used to qualify type names.
	TypesPkg *types.Package
	// Types lists the planned structs in selection order.
	Types []TypePlan
	// Diagnostics contains all warnings and errors from resolution.
	Diagnostics diagnostic.Diagnostics
}

// Selection records why a struct was planned.
type Selection int

const (
	SelectedByFlag Selection = iota + 1
	SelectedByConfig
	SelectedByMarker
)

// String returns a human-readable selection origin.
func (s Selection) String() string {
	switch s {
	case SelectedByFlag:
		return "flag"
	case SelectedByConfig:
		return "config"
	case SelectedByMarker:
		return "marker"
	default:
		return common.UnknownStr
	}
}

// Origin records where a field's key or strategy came from.
type Origin int

const (
	OriginDefault Origin = iota
	OriginStructTag
	OriginConfig
	OriginInferred
)

// String returns a human-readable origin.
func (o Origin) String() string {
	switch o {
	case OriginDefault:
		return "default"
	case OriginStructTag:
		return "struct tag"
	case OriginConfig:
		return "config"
	case OriginInferred:
		return "inferred"
	default:
		return common.UnknownStr
	}
}

// TypePlan is one struct to generate.
type TypePlan struct {
	Name      string
	Type      *analyze.TypeInfo
	Selection Selection
	// Fields are the encoded fields in declaration order.
	Fields []FieldPlan
	// Ignored lists exported fields that are not encoded.
	Ignored []string
}

// Keys returns the tag keys in field order.
func (tp *TypePlan) Keys() []string {
	keys := make([]string, len(tp.Fields))
	for i, f := range tp.Fields {
		keys[i] = f.Key
	}

	return keys
}

// Field returns the plan of the named field, or nil.
func (tp *TypePlan) Field(name string) *FieldPlan {
	for i := range tp.Fields {
		if tp.Fields[i].Name == name {
			return &tp.Fields[i]
		}
	}

	return nil
}

// FieldPlan describes how one field maps to a tag.
type FieldPlan struct {
	// Name is the Go field name.
	Name string
	// Key is the tag key.
	Key       string
	KeyOrigin Origin
	// Strategy encodes Elem.
	Strategy       tags.Strategy
	StrategyOrigin Origin
	// Optional fields are pointers; Elem is the pointed-to type.
	Optional bool
	Elem     *analyze.TypeInfo
}
