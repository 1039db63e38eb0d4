package analyze

import (
	"go/types"
	"reflect"
	"strings"

	"tagmapper/internal/common"
)

// GenerateMarker is the doc comment directive selecting a struct for generation.
const GenerateMarker = "//tagmapper:generate"

// StructTagName is the struct tag holding the tag key and strategy.
const StructTagName = "tag"

// TypeID uniquely identifies a type by its package path and name.
type TypeID struct {
	PkgPath string // e.g., "tagmapper/examples/instance"
	Name    string // e.g., "Instance"
}

// String returns a human-readable representation of the TypeID.
func (t TypeID) String() string {
	if t.PkgPath == "" {
		return t.Name
	}

	return t.PkgPath + "." + t.Name
}

// TypeKind represents the kind of a type.
type TypeKind int

const (
	TypeKindUnknown  TypeKind = iota
	TypeKindBasic             // int, string, bool, etc.
	TypeKindStruct            // struct type
	TypeKindPointer           // pointer to another type
	TypeKindSlice             // slice of another type
	TypeKindArray             // array of another type
	TypeKindMap               // map type
	TypeKindAlias             // named type wrapping a non-struct type
	TypeKindExternal          // named type from a package outside the loaded set
)

// String returns a human-readable representation of the TypeKind.
func (k TypeKind) String() string {
	switch k {
	case TypeKindBasic:
		return "basic"
	case TypeKindStruct:
		return "struct"
	case TypeKindPointer:
		return "pointer"
	case TypeKindSlice:
		return "slice"
	case TypeKindArray:
		return "array"
	case TypeKindMap:
		return "map"
	case TypeKindAlias:
		return "alias"
	case TypeKindExternal:
		return "external"
	default:
		return common.UnknownStr
	}
}

// TypeInfo describes a Go type in the type graph.
type TypeInfo struct {
	ID         TypeID      // Unique identifier (empty for unnamed types like *T or []T)
	Kind       TypeKind    // Kind of type
	Underlying *TypeInfo   // For named non-struct types, the underlying type
	ElemType   *TypeInfo   // For pointers, slices, arrays and maps, the element type
	KeyType    *TypeInfo   // For maps, the key type
	Fields     []FieldInfo // For structs, the list of exported fields
	GoType     types.Type  // The original go/types.Type
	Manual     bool        // T has MarshalTagValue and *T has UnmarshalTagValue
	Marked     bool        // The declaration carries GenerateMarker
}

// IsStringKind reports whether the underlying type is a string.
func (t *TypeInfo) IsStringKind() bool {
	return t.basicInfo()&types.IsString != 0
}

// IsBoolKind reports whether the underlying type is a bool.
func (t *TypeInfo) IsBoolKind() bool {
	return t.basicInfo()&types.IsBoolean != 0
}

func (t *TypeInfo) basicInfo() types.BasicInfo {
	if t == nil || t.GoType == nil {
		return 0
	}

	if b, ok := t.GoType.Underlying().(*types.Basic); ok {
		return b.Info()
	}

	return 0
}

// FieldInfo describes a struct field.
type FieldInfo struct {
	Name     string            // Go field name
	Exported bool              // Whether the field is exported
	Type     *TypeInfo         // Field type
	Tag      reflect.StructTag // Raw struct tag
	Embedded bool              // Whether the field is embedded (anonymous)
	Index    int               // Field index in the struct
}

// TagKey returns the key from the `tag` struct tag, or the field name
// when the tag is absent or names no key.
func (f *FieldInfo) TagKey() string {
	key, _, _ := strings.Cut(f.Tag.Get(StructTagName), ",")
	if key == "" {
		return f.Name
	}

	return key
}

// HasTagKey reports whether the `tag` struct tag names a key.
func (f *FieldInfo) HasTagKey() bool {
	key, _, _ := strings.Cut(f.Tag.Get(StructTagName), ",")

	return key != ""
}

// TagOptions returns the options following the key in the `tag` struct tag.
func (f *FieldInfo) TagOptions() []string {
	_, opts, ok := strings.Cut(f.Tag.Get(StructTagName), ",")
	if !ok || opts == "" {
		return nil
	}

	return strings.Split(opts, ",")
}

// Skipped reports whether the field is excluded with `tag:"-"`.
func (f *FieldInfo) Skipped() bool {
	return f.Tag.Get(StructTagName) == "-"
}

// TypeGraph holds all analyzed types from loaded packages.
type TypeGraph struct {
	// Types maps TypeID to TypeInfo for all named types.
	Types map[TypeID]*TypeInfo
	// Packages maps package paths to their package info.
	Packages map[string]*PackageInfo
}

// NewTypeGraph creates a new empty TypeGraph.
func NewTypeGraph() *TypeGraph {
	return &TypeGraph{
		Types:    make(map[TypeID]*TypeInfo),
		Packages: make(map[string]*PackageInfo),
	}
}

// GetType returns the TypeInfo for a given TypeID, or nil if not found.
func (g *TypeGraph) GetType(id TypeID) *TypeInfo {
	return g.Types[id]
}

// PackageInfo holds information about a loaded package.
type PackageInfo struct {
	Path   string   // Import path
	Name   string   // Package name
	Dir    string   // Directory of the package sources
	Types  []TypeID // Named types defined in this package, sorted by name
	Marked []TypeID // Types carrying GenerateMarker, in source order
	// TypesPkg is the type-checked package, used to qualify type names.
	TypesPkg *types.Package
}

// StructNames returns the names of all struct types in the package.
func (g *TypeGraph) StructNames(pkgPath string) []string {
	pkg := g.Packages[pkgPath]
	if pkg == nil {
		return nil
	}

	var names []string

	for _, id := range pkg.Types {
		if t := g.Types[id]; t != nil && t.Kind == TypeKindStruct {
			names = append(names, id.Name)
		}
	}

	return names
}
