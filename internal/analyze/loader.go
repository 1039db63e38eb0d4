package analyze

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"go/ast"
	"go/parser"
	"go/token"
	"go/types"
	"path/filepath"
	"reflect"
	"strings"

	"golang.org/x/tools/go/packages"

	"tagmapper/internal/common"
)

// LoadMode specifies what information to load from packages.
const LoadMode = packages.NeedName |
	packages.NeedFiles |
	packages.NeedSyntax |
	packages.NeedTypes |
	packages.NeedTypesInfo |
	packages.NeedImports

// Analyzer loads Go packages and builds a type graph.
type Analyzer struct {
	// Dir is the directory patterns are resolved against. Empty means the
	// current directory.
	Dir string

	graph     *TypeGraph
	typeCache map[types.Type]*TypeInfo // Cache to handle recursive types
}

// NewAnalyzer creates a new Analyzer.
func NewAnalyzer() *Analyzer {
	return &Analyzer{
		graph:     NewTypeGraph(),
		typeCache: make(map[types.Type]*TypeInfo),
	}
}

// parseSkippingGenerated parses only the package clause of files written by
// the generator. Their declarations refer to the fields of the previous run
// and must not fail type checking after a struct changed.
func parseSkippingGenerated(fset *token.FileSet, filename string, src []byte) (*ast.File, error) {
	mode := parser.AllErrors | parser.ParseComments | parser.SkipObjectResolution
	if bytes.HasPrefix(src, []byte(common.GeneratedHeader)) {
		mode = parser.PackageClauseOnly
	}

	return parser.ParseFile(fset, filename, src, mode)
}

// LoadPackages loads the specified packages and builds the type graph.
// Patterns are standard Go package patterns (e.g., "./examples/instance").
func (a *Analyzer) LoadPackages(ctx context.Context, patterns ...string) (*TypeGraph, error) {
	cfg := &packages.Config{
		Context:   ctx,
		Mode:      LoadMode,
		Dir:       a.Dir,
		ParseFile: parseSkippingGenerated,
	}

	pkgs, err := packages.Load(cfg, patterns...)
	if err != nil {
		return nil, fmt.Errorf("failed to load packages: %w", err)
	}

	var errs []error

	for _, pkg := range pkgs {
		for _, e := range pkg.Errors {
			errs = append(errs, e)
		}
	}

	if len(errs) > 0 {
		return nil, fmt.Errorf("package errors: %w", errors.Join(errs...))
	}

	// Register every package first so isExternalPackage is accurate.
	for _, pkg := range pkgs {
		a.graph.Packages[pkg.PkgPath] = &PackageInfo{
			Path:     pkg.PkgPath,
			Name:     pkg.Name,
			Dir:      packageDir(pkg),
			TypesPkg: pkg.Types,
		}
	}

	for _, pkg := range pkgs {
		a.processPackage(pkg)
	}

	return a.graph, nil
}

func packageDir(pkg *packages.Package) string {
	if len(pkg.GoFiles) == 0 {
		return ""
	}

	return filepath.Dir(pkg.GoFiles[0])
}

// processPackage extracts types from a loaded package.
func (a *Analyzer) processPackage(pkg *packages.Package) {
	pkgInfo := a.graph.Packages[pkg.PkgPath]
	marked := markedTypes(pkg.Syntax)

	scope := pkg.Types.Scope()
	for _, name := range scope.Names() {
		typeName, ok := scope.Lookup(name).(*types.TypeName)
		if !ok || typeName.IsAlias() {
			continue
		}

		id := TypeID{PkgPath: pkg.PkgPath, Name: name}

		info := a.analyzeType(typeName.Type())
		info.ID = id
		info.Marked = marked[name]

		a.graph.Types[id] = info
		pkgInfo.Types = append(pkgInfo.Types, id)
	}

	for _, name := range markedOrder(pkg.Syntax) {
		pkgInfo.Marked = append(pkgInfo.Marked, TypeID{PkgPath: pkg.PkgPath, Name: name})
	}
}

// markedTypes returns the set of type names declared with GenerateMarker.
func markedTypes(files []*ast.File) map[string]bool {
	marked := make(map[string]bool)
	for _, name := range markedOrder(files) {
		marked[name] = true
	}

	return marked
}

// markedOrder returns the marked type names in source order.
func markedOrder(files []*ast.File) []string {
	var names []string

	for _, file := range files {
		for _, decl := range file.Decls {
			gen, ok := decl.(*ast.GenDecl)
			if !ok || gen.Tok != token.TYPE {
				continue
			}

			for _, spec := range gen.Specs {
				ts := spec.(*ast.TypeSpec)

				doc := ts.Doc
				if doc == nil && len(gen.Specs) == 1 {
					doc = gen.Doc
				}

				if hasMarker(doc) {
					names = append(names, ts.Name.Name)
				}
			}
		}
	}

	return names
}

func hasMarker(doc *ast.CommentGroup) bool {
	if doc == nil {
		return false
	}

	for _, c := range doc.List {
		if strings.TrimSpace(c.Text) == GenerateMarker {
			return true
		}
	}

	return false
}

// analyzeType recursively analyzes a go/types.Type and returns a TypeInfo.
func (a *Analyzer) analyzeType(t types.Type) *TypeInfo {
	t = types.Unalias(t)

	// Check cache to handle recursive types
	if cached, ok := a.typeCache[t]; ok {
		return cached
	}

	info := &TypeInfo{
		GoType: t,
	}

	// Pre-cache to handle recursive types (we'll fill in details)
	a.typeCache[t] = info

	switch tt := t.(type) {
	case *types.Named:
		a.analyzeNamedType(tt, info)

	case *types.Basic:
		info.Kind = TypeKindBasic
		info.ID = TypeID{Name: tt.Name()}

	case *types.Pointer:
		info.Kind = TypeKindPointer
		info.ElemType = a.analyzeType(tt.Elem())

	case *types.Slice:
		info.Kind = TypeKindSlice
		info.ElemType = a.analyzeType(tt.Elem())

	case *types.Array:
		info.Kind = TypeKindArray
		info.ElemType = a.analyzeType(tt.Elem())

	case *types.Map:
		info.Kind = TypeKindMap
		info.KeyType = a.analyzeType(tt.Key())
		info.ElemType = a.analyzeType(tt.Elem())

	case *types.Struct:
		info.Kind = TypeKindStruct
		a.analyzeStructFields(tt, info)

	default:
		// Interfaces, channels, functions, etc. cannot be stored in a tag.
		info.Kind = TypeKindUnknown
	}

	return info
}

// analyzeNamedType analyzes a named type.
func (a *Analyzer) analyzeNamedType(named *types.Named, info *TypeInfo) {
	obj := named.Obj()

	info.ID = TypeID{Name: obj.Name()}
	if obj.Pkg() != nil {
		info.ID.PkgPath = obj.Pkg().Path()
	}

	info.Manual = implementsManual(named)

	switch ut := named.Underlying().(type) {
	case *types.Struct:
		if a.isExternalPackage(info.ID.PkgPath) {
			// Fields of foreign structs are never mapped individually.
			info.Kind = TypeKindExternal
			return
		}

		info.Kind = TypeKindStruct
		a.analyzeStructFields(ut, info)

	default:
		if a.isExternalPackage(info.ID.PkgPath) {
			info.Kind = TypeKindExternal
		} else {
			info.Kind = TypeKindAlias
		}

		info.Underlying = a.analyzeType(ut)
	}
}

// isExternalPackage returns true if the package is not in our analyzed set.
func (a *Analyzer) isExternalPackage(pkgPath string) bool {
	_, ok := a.graph.Packages[pkgPath]
	return !ok
}

// analyzeStructFields extracts fields from a struct type.
func (a *Analyzer) analyzeStructFields(st *types.Struct, info *TypeInfo) {
	for i := range st.NumFields() {
		field := st.Field(i)

		info.Fields = append(info.Fields, FieldInfo{
			Name:     field.Name(),
			Exported: field.Exported(),
			Type:     a.analyzeType(field.Type()),
			Tag:      reflect.StructTag(st.Tag(i)),
			Embedded: field.Embedded(),
			Index:    i,
		})
	}
}

// implementsManual reports whether T has MarshalTagValue() RawTagValue in
// its value method set and *T has UnmarshalTagValue(RawTagValue) error.
func implementsManual(named *types.Named) bool {
	if _, isIface := named.Underlying().(*types.Interface); isIface {
		return false
	}

	marshal := lookupMethod(types.NewMethodSet(named), "MarshalTagValue")
	unmarshal := lookupMethod(types.NewMethodSet(types.NewPointer(named)), "UnmarshalTagValue")

	if marshal == nil || unmarshal == nil {
		return false
	}

	return marshal.Params().Len() == 0 &&
		marshal.Results().Len() == 1 &&
		isRawTagValue(marshal.Results().At(0).Type()) &&
		unmarshal.Params().Len() == 1 &&
		isRawTagValue(unmarshal.Params().At(0).Type()) &&
		unmarshal.Results().Len() == 1 &&
		isError(unmarshal.Results().At(0).Type())
}

func lookupMethod(ms *types.MethodSet, name string) *types.Signature {
	for i := range ms.Len() {
		sel := ms.At(i)
		if sel.Obj().Name() != name {
			continue
		}

		sig, _ := sel.Type().(*types.Signature)

		return sig
	}

	return nil
}

func isRawTagValue(t types.Type) bool {
	named, ok := types.Unalias(t).(*types.Named)

	return ok && named.Obj().Name() == "RawTagValue"
}

func isError(t types.Type) bool {
	return types.Identical(t, types.Universe.Lookup("error").Type())
}
