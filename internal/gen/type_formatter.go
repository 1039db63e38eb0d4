package gen

import (
	"fmt"
	"go/types"
	"sort"

	"tagmapper/internal/common"
)

// TagsImportPath is the import path of the runtime package generated code
// calls into.
const TagsImportPath = "tagmapper/tags"

// importSpec represents an import statement.
type importSpec struct {
	Alias string
	Path  string
}

// importSet collects the imports of one generated file and hands out
// package qualifiers that do not collide with each other or with the
// identifiers of the target package.
type importSet struct {
	self   string
	byPath map[string]string
	taken  map[string]bool
}

func newImportSet(self *types.Package) *importSet {
	s := &importSet{
		byPath: make(map[string]string),
		taken:  make(map[string]bool),
	}

	if self != nil {
		s.self = self.Path()
		for _, name := range self.Scope().Names() {
			s.taken[name] = true
		}
	}

	return s
}

// add registers an import and returns the name to qualify it with.
func (s *importSet) add(pkgPath, name string) string {
	if alias, ok := s.byPath[pkgPath]; ok {
		return alias
	}

	alias := name
	for i := 2; s.taken[alias]; i++ {
		alias = fmt.Sprintf("%s%d", name, i)
	}

	s.taken[alias] = true
	s.byPath[pkgPath] = alias

	return alias
}

// qualifier is a types.Qualifier recording every package it is asked about.
func (s *importSet) qualifier(pkg *types.Package) string {
	if pkg == nil || pkg.Path() == s.self {
		return ""
	}

	return s.add(pkg.Path(), pkg.Name())
}

// typeString formats t relative to the target package.
func (s *importSet) typeString(t types.Type) string {
	return types.TypeString(t, s.qualifier)
}

// specs returns the imports sorted by path. An alias is spelled out only
// when it differs from the last path element.
func (s *importSet) specs() []importSpec {
	out := make([]importSpec, 0, len(s.byPath))

	for p, alias := range s.byPath {
		spec := importSpec{Path: p}
		if alias != common.PkgAlias(p) {
			spec.Alias = alias
		}

		out = append(out, spec)
	}

	sort.Slice(out, func(i, j int) bool {
		return out[i].Path < out[j].Path
	})

	return out
}
