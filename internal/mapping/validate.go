package mapping

import (
	"fmt"
	"maps"
	"slices"

	"tagmapper/internal/analyze"
	"tagmapper/internal/diagnostic"
	"tagmapper/internal/match"
	"tagmapper/tags"
)

// maxSuggestions bounds the "did you mean" list of a diagnostic.
const maxSuggestions = 3

var strategyNames = []string{
	tags.StrategyString.String(),
	tags.StrategyBool.String(),
	tags.StrategyManual.String(),
	tags.StrategyJSON.String(),
	tags.StrategyCBOR.String(),
}

// Validate checks a configuration against the structs of pkgPath in the
// given type graph. It only checks references and names; whether a
// strategy fits a field type is decided by the planner.
func Validate(f *File, graph *analyze.TypeGraph, pkgPath string) *diagnostic.Diagnostics {
	res := &diagnostic.Diagnostics{}
	if f == nil {
		return res
	}

	if f.Version != CurrentVersion {
		res.AddError(diagnostic.CodeBadVersion,
			fmt.Sprintf("unsupported config version %q, want %q", f.Version, CurrentVersion), "", "")
	}

	structs := graph.StructNames(pkgPath)
	seen := make(map[string]struct{}, len(f.Types))

	for i := range f.Types {
		tm := &f.Types[i]

		if _, dup := seen[tm.Name]; dup {
			res.AddError(diagnostic.CodeDuplicateType, fmt.Sprintf("type %q configured twice", tm.Name), tm.Name, "")
			continue
		}

		seen[tm.Name] = struct{}{}

		info := graph.GetType(analyze.TypeID{PkgPath: pkgPath, Name: tm.Name})
		switch {
		case info == nil:
			res.AddError(diagnostic.CodeTypeNotFound,
				fmt.Sprintf("type %q not found in %s", tm.Name, pkgPath), tm.Name, "",
				match.Suggest(tm.Name, structs, maxSuggestions)...)

			continue
		case info.Kind != analyze.TypeKindStruct:
			res.AddError(diagnostic.CodeNotStruct,
				fmt.Sprintf("type %q is not a struct (kind: %s)", tm.Name, info.Kind), tm.Name, "")

			continue
		}

		validateTypeMapping(res, tm, info)
	}

	return res
}

func validateTypeMapping(res *diagnostic.Diagnostics, tm *TypeMapping, info *analyze.TypeInfo) {
	fields := make([]string, 0, len(info.Fields))
	exported := make(map[string]bool, len(info.Fields))

	for _, fi := range info.Fields {
		fields = append(fields, fi.Name)
		exported[fi.Name] = fi.Exported
	}

	checkField := func(section, name string) bool {
		isExported, ok := exported[name]
		switch {
		case !ok:
			res.AddError(diagnostic.CodeUnknownField,
				fmt.Sprintf("%s: struct has no field %q", section, name), tm.Name, name,
				match.Suggest(name, fields, maxSuggestions)...)

			return false
		case !isExported:
			res.AddError(diagnostic.CodeUnknownField,
				fmt.Sprintf("%s: field %q is not exported", section, name), tm.Name, name)

			return false
		}

		return true
	}

	for _, name := range sortedKeys(tm.Keys) {
		if !checkField("keys", name) {
			continue
		}

		if tm.Keys[name] == "" {
			res.AddError(diagnostic.CodeEmptyKey, "tag key is empty", tm.Name, name)
		}

		if tm.Ignores(name) {
			res.AddWarning(diagnostic.CodeUnusedConfig, "key of an ignored field has no effect", tm.Name, name)
		}
	}

	for _, name := range sortedKeys(tm.Strategies) {
		if !checkField("strategies", name) {
			continue
		}

		strategy := tm.Strategies[name]
		if _, err := tags.ParseStrategy(strategy); err != nil {
			res.AddError(diagnostic.CodeUnknownStrategy, err.Error(), tm.Name, name,
				match.Suggest(strategy, strategyNames, maxSuggestions)...)
		}

		if tm.Ignores(name) {
			res.AddWarning(diagnostic.CodeUnusedConfig, "strategy of an ignored field has no effect", tm.Name, name)
		}
	}

	for _, name := range tm.Ignore {
		checkField("ignore", name)
	}
}

func sortedKeys(m map[string]string) []string {
	return slices.Sorted(maps.Keys(m))
}
