package plan

import (
	"fmt"
	"go/types"
	"log/slog"

	"tagmapper/internal/analyze"
	"tagmapper/internal/common"
	"tagmapper/internal/diagnostic"
	"tagmapper/internal/mapping"
	"tagmapper/internal/match"
	"tagmapper/tags"
)

// maxSuggestions bounds the "did you mean" list of a diagnostic.
const maxSuggestions = 3

// Resolver performs the resolution pipeline for one package.
type Resolver struct {
	graph  *analyze.TypeGraph
	config *mapping.File
	logger *slog.Logger
}

// NewResolver creates a new Resolver. config may be nil.
func NewResolver(graph *analyze.TypeGraph, config *mapping.File, logger *slog.Logger) *Resolver {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	return &Resolver{graph: graph, config: config, logger: logger}
}

type selected struct {
	name string
	by   Selection
}

// Resolve plans the structs of pkgPath. When typeNames is non-empty
// exactly those structs are planned; otherwise every configured struct
// and every struct carrying the generate marker is. Problems are reported
// in Plan.Diagnostics; the plan is only usable when it has no errors.
func (r *Resolver) Resolve(pkgPath string, typeNames []string) *Plan {
	p := &Plan{PkgPath: pkgPath}

	pkg := r.graph.Packages[pkgPath]
	if pkg == nil {
		p.Diagnostics.AddError(diagnostic.CodeTypeNotFound, fmt.Sprintf("package %s is not loaded", pkgPath), "", "")
		return p
	}

	p.PkgName = pkg.Name
	p.Dir = pkg.Dir
	p.TypesPkg = pkg.TypesPkg

	p.Diagnostics.Merge(mapping.Validate(r.config, r.graph, pkgPath))

	selection := r.selectTypes(pkg, typeNames)
	if len(selection) == 0 {
		p.Diagnostics.AddError(diagnostic.CodeNoTypes,
			"no types selected: pass --type, list them in the config or mark them with "+analyze.GenerateMarker, "", "")

		return p
	}

	for _, sel := range selection {
		info := r.graph.GetType(analyze.TypeID{PkgPath: pkgPath, Name: sel.name})

		// Bad config references were already reported by mapping.Validate.
		switch {
		case info == nil:
			if sel.by != SelectedByConfig {
				p.Diagnostics.AddError(diagnostic.CodeTypeNotFound,
					fmt.Sprintf("type %q not found in %s", sel.name, pkgPath), sel.name, "",
					match.Suggest(sel.name, r.graph.StructNames(pkgPath), maxSuggestions)...)
			}

			continue
		case info.Kind != analyze.TypeKindStruct:
			if sel.by != SelectedByConfig {
				p.Diagnostics.AddError(diagnostic.CodeNotStruct,
					fmt.Sprintf("type %q is not a struct (kind: %s)", sel.name, info.Kind), sel.name, "")
			}

			continue
		}

		tp := r.resolveType(p, sel, info)
		r.logger.Debug("planned type",
			slog.String("type", tp.Name),
			slog.String("selected_by", tp.Selection.String()),
			slog.Int("fields", len(tp.Fields)),
			slog.Int("ignored", len(tp.Ignored)))

		p.Types = append(p.Types, tp)
	}

	return p
}

func (r *Resolver) selectTypes(pkg *analyze.PackageInfo, typeNames []string) []selected {
	var out []selected

	if len(typeNames) > 0 {
		for _, name := range common.Dedupe(typeNames) {
			out = append(out, selected{name: name, by: SelectedByFlag})
		}

		return out
	}

	seen := make(map[string]bool)
	add := func(name string, by Selection) {
		if seen[name] {
			return
		}

		seen[name] = true
		out = append(out, selected{name: name, by: by})
	}

	for _, name := range r.config.Names() {
		add(name, SelectedByConfig)
	}

	for _, id := range pkg.Marked {
		add(id.Name, SelectedByMarker)
	}

	return out
}

func (r *Resolver) resolveType(p *Plan, sel selected, info *analyze.TypeInfo) TypePlan {
	tp := TypePlan{Name: sel.name, Type: info, Selection: sel.by}
	tm := r.config.Type(sel.name)
	owners := make(map[string]string, len(info.Fields))

	for i := range info.Fields {
		fi := &info.Fields[i]

		fp, ok := r.resolveField(p, tm, sel.name, fi)
		if !ok {
			continue
		}

		if fp == nil {
			tp.Ignored = append(tp.Ignored, fi.Name)
			continue
		}

		if other, dup := owners[fp.Key]; dup {
			p.Diagnostics.AddError(diagnostic.CodeDuplicateKey,
				fmt.Sprintf("tag key %q already used by field %s", fp.Key, other), sel.name, fi.Name)

			continue
		}

		owners[fp.Key] = fi.Name
		tp.Fields = append(tp.Fields, *fp)
	}

	return tp
}

// resolveField returns the plan of one field. A nil plan with ok set means
// the field is deliberately ignored; ok is false when the field is
// unexported or could not be planned.
func (r *Resolver) resolveField(
	p *Plan,
	tm *mapping.TypeMapping,
	typeName string,
	fi *analyze.FieldInfo,
) (*FieldPlan, bool) {
	if !fi.Exported {
		p.Diagnostics.AddInfo(diagnostic.CodeFieldSkipped, "unexported field is not encoded", typeName, fi.Name)
		return nil, false
	}

	if fi.Skipped() || (tm != nil && tm.Ignores(fi.Name)) {
		return nil, true
	}

	fp := &FieldPlan{Name: fi.Name, Key: fi.TagKey(), KeyOrigin: OriginDefault}
	if fi.HasTagKey() {
		fp.KeyOrigin = OriginStructTag
	}

	if key, ok := configValue(tm, fi.Name, func(tm *mapping.TypeMapping) map[string]string { return tm.Keys }); ok {
		if key == "" {
			return nil, false
		}

		fp.Key, fp.KeyOrigin = key, OriginConfig
	}

	fp.Elem = fi.Type
	if fp.Elem.Kind == analyze.TypeKindPointer {
		fp.Elem, fp.Optional = fp.Elem.ElemType, true

		if fp.Elem.Kind == analyze.TypeKindPointer {
			p.Diagnostics.AddError(diagnostic.CodePointerPointer,
				"pointer to pointer fields are not supported", typeName, fi.Name)

			return nil, false
		}
	}

	strategy, origin, ok := r.pickStrategy(p, tm, typeName, fi, fp.Elem)
	if !ok {
		return nil, false
	}

	fp.Strategy, fp.StrategyOrigin = strategy, origin

	return fp, true
}

func (r *Resolver) pickStrategy(
	p *Plan,
	tm *mapping.TypeMapping,
	typeName string,
	fi *analyze.FieldInfo,
	elem *analyze.TypeInfo,
) (tags.Strategy, Origin, bool) {
	var (
		strategy = tags.StrategyUnknown
		origin   = OriginInferred
	)

	switch opts := fi.TagOptions(); len(opts) {
	case 0:
	case 1:
		s, err := tags.ParseStrategy(opts[0])
		if err != nil {
			p.Diagnostics.AddError(diagnostic.CodeUnknownStrategy, err.Error(), typeName, fi.Name,
				match.Suggest(opts[0], strategyNames(), maxSuggestions)...)

			return strategy, origin, false
		}

		strategy, origin = s, OriginStructTag
	default:
		p.Diagnostics.AddError(diagnostic.CodeBadStructTag,
			fmt.Sprintf("struct tag %q has more than one option", fi.Tag.Get(analyze.StructTagName)), typeName, fi.Name)

		return strategy, origin, false
	}

	if name, ok := configValue(tm, fi.Name, func(tm *mapping.TypeMapping) map[string]string { return tm.Strategies }); ok {
		s, err := tags.ParseStrategy(name)
		if err != nil {
			// Reported by mapping.Validate.
			return strategy, origin, false
		}

		strategy, origin = s, OriginConfig
	}

	if strategy == tags.StrategyUnknown {
		strategy = inferStrategy(elem)
		if strategy == tags.StrategyUnknown {
			p.Diagnostics.AddError(diagnostic.CodeNoStrategy,
				fmt.Sprintf("field type %s has no encoding strategy: declare json or cbor", r.typeString(p, elem)),
				typeName, fi.Name)

			return strategy, origin, false
		}

		return strategy, OriginInferred, true
	}

	if err := checkStrategy(strategy, elem); err != nil {
		p.Diagnostics.AddError(diagnostic.CodeStrategyKind,
			fmt.Sprintf("%s strategy cannot encode %s: %v", strategy, r.typeString(p, elem), err), typeName, fi.Name)

		return strategy, origin, false
	}

	return strategy, origin, true
}

func configValue(
	tm *mapping.TypeMapping,
	field string,
	section func(*mapping.TypeMapping) map[string]string,
) (string, bool) {
	if tm == nil {
		return "", false
	}

	v, ok := section(tm)[field]

	return v, ok
}

func (r *Resolver) typeString(p *Plan, t *analyze.TypeInfo) string {
	if t == nil || t.GoType == nil {
		return "<nil>"
	}

	return types.TypeString(t.GoType, types.RelativeTo(p.TypesPkg))
}

func strategyNames() []string {
	return []string{
		tags.StrategyString.String(),
		tags.StrategyBool.String(),
		tags.StrategyManual.String(),
		tags.StrategyJSON.String(),
		tags.StrategyCBOR.String(),
	}
}
