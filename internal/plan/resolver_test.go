package plan

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tagmapper/internal/analyze"
	"tagmapper/internal/diagnostic"
	"tagmapper/internal/mapping"
	"tagmapper/tags"
)

const fleetPkg = "tagmapper/internal/plan/testdata/fleet"

func loadFleet(t *testing.T) *analyze.TypeGraph {
	t.Helper()

	a := analyze.NewAnalyzer()
	a.Dir = "testdata/fleet"

	graph, err := a.LoadPackages(t.Context(), ".")
	require.NoError(t, err)
	require.Contains(t, graph.Packages, fleetPkg)

	return graph
}

func codesByField(diags []diagnostic.Diagnostic) map[string]string {
	out := make(map[string]string, len(diags))
	for _, d := range diags {
		out[d.Field] = d.Code
	}

	return out
}

func TestResolve_Host(t *testing.T) {
	graph := loadFleet(t)

	p := NewResolver(graph, nil, nil).Resolve(fleetPkg, []string{"Host"})
	require.False(t, p.Diagnostics.HasErrors(), p.Diagnostics.Error())

	assert.Equal(t, "fleet", p.PkgName)
	require.Len(t, p.Types, 1)

	tp := p.Types[0]
	assert.Equal(t, "Host", tp.Name)
	assert.Equal(t, SelectedByFlag, tp.Selection)
	assert.Equal(t, []string{"Name", "role", "Zone", "maintenance", "weight", "meta", "Owner"}, tp.Keys())
	assert.Equal(t, []string{"Scratch"}, tp.Ignored)

	tests := []struct {
		field          string
		keyOrigin      Origin
		strategy       tags.Strategy
		strategyOrigin Origin
		optional       bool
	}{
		{"Name", OriginStructTag, tags.StrategyString, OriginInferred, false},
		{"Role", OriginStructTag, tags.StrategyManual, OriginInferred, false},
		{"Zone", OriginDefault, tags.StrategyString, OriginInferred, false},
		{"Maintenance", OriginStructTag, tags.StrategyBool, OriginInferred, false},
		{"Weight", OriginStructTag, tags.StrategyJSON, OriginStructTag, true},
		{"Meta", OriginStructTag, tags.StrategyCBOR, OriginStructTag, false},
		{"Owner", OriginDefault, tags.StrategyString, OriginStructTag, true},
	}

	for _, tt := range tests {
		t.Run(tt.field, func(t *testing.T) {
			fp := tp.Field(tt.field)
			require.NotNil(t, fp)

			assert.Equal(t, tt.keyOrigin, fp.KeyOrigin)
			assert.Equal(t, tt.strategy, fp.Strategy)
			assert.Equal(t, tt.strategyOrigin, fp.StrategyOrigin)
			assert.Equal(t, tt.optional, fp.Optional)
			assert.NotEqual(t, analyze.TypeKindPointer, fp.Elem.Kind)
		})
	}

	require.Len(t, p.Diagnostics.Infos, 1)
	assert.Equal(t, diagnostic.CodeFieldSkipped, p.Diagnostics.Infos[0].Code)
	assert.Equal(t, "secret", p.Diagnostics.Infos[0].Field)
}

func TestResolve_Broken(t *testing.T) {
	graph := loadFleet(t)

	p := NewResolver(graph, nil, nil).Resolve(fleetPkg, []string{"Broken"})
	require.True(t, p.Diagnostics.HasErrors())

	assert.Equal(t, map[string]string{
		"Count":  diagnostic.CodeNoStrategy,
		"Name":   diagnostic.CodeStrategyKind,
		"Double": diagnostic.CodePointerPointer,
		"Extra":  diagnostic.CodeBadStructTag,
		"Alias":  diagnostic.CodeDuplicateKey,
		"Format": diagnostic.CodeUnknownStrategy,
		"Hook":   diagnostic.CodeStrategyKind,
	}, codesByField(p.Diagnostics.Errors))

	for _, d := range p.Diagnostics.Errors {
		assert.Equal(t, "Broken", d.TypeName)
	}

	require.Len(t, p.Types, 1)
	assert.Equal(t, []string{"label"}, p.Types[0].Keys())
}

func TestResolve_Selection(t *testing.T) {
	graph := loadFleet(t)

	cfg := &mapping.File{
		Version: mapping.CurrentVersion,
		Types:   []mapping.TypeMapping{{Name: "Router"}, {Name: "Host"}},
	}

	p := NewResolver(graph, cfg, nil).Resolve(fleetPkg, nil)

	var got []string
	for _, tp := range p.Types {
		got = append(got, tp.Name+":"+tp.Selection.String())
	}

	assert.Equal(t, []string{"Router:config", "Host:config", "Broken:marker"}, got)
}

func TestResolve_ConfigOverrides(t *testing.T) {
	graph := loadFleet(t)

	cfg, err := mapping.Parse([]byte(`
version: "1"
types:
  - name: Router
    keys:
      Hostname: router-host
      Primary: primary
    strategies:
      Ports: cbor
    ignore: Debug
`))
	require.NoError(t, err)

	p := NewResolver(graph, cfg, nil).Resolve(fleetPkg, []string{"Router"})
	require.False(t, p.Diagnostics.HasErrors(), p.Diagnostics.Error())
	require.Len(t, p.Types, 1)

	tp := p.Types[0]
	assert.Equal(t, []string{"router-host", "ports", "primary"}, tp.Keys())
	assert.Equal(t, []string{"Debug"}, tp.Ignored)

	hostname := tp.Field("Hostname")
	assert.Equal(t, OriginConfig, hostname.KeyOrigin)

	ports := tp.Field("Ports")
	assert.Equal(t, tags.StrategyCBOR, ports.Strategy)
	assert.Equal(t, OriginConfig, ports.StrategyOrigin)
	assert.Equal(t, OriginStructTag, ports.KeyOrigin)
}

func TestResolve_ConfigErrorsReportedOnce(t *testing.T) {
	graph := loadFleet(t)

	cfg, err := mapping.Parse([]byte(`
version: "1"
types:
  - name: Hosts
  - name: Router
    strategies:
      Ports: yml
`))
	require.NoError(t, err)

	p := NewResolver(graph, cfg, nil).Resolve(fleetPkg, []string{"Router"})

	var codes []string
	for _, d := range p.Diagnostics.Errors {
		codes = append(codes, d.Code)
	}

	assert.ElementsMatch(t, []string{diagnostic.CodeTypeNotFound, diagnostic.CodeUnknownStrategy}, codes)
	assert.Equal(t, []string{"Host"}, p.Diagnostics.Errors[0].Suggestions)

	require.Len(t, p.Types, 1)
	assert.Nil(t, p.Types[0].Field("Ports"))
}

func TestResolve_UnknownTypes(t *testing.T) {
	graph := loadFleet(t)

	p := NewResolver(graph, nil, nil).Resolve(fleetPkg, []string{"Hostt", "Role", "Host", "Host"})

	require.Len(t, p.Diagnostics.Errors, 2)
	assert.Equal(t, diagnostic.CodeTypeNotFound, p.Diagnostics.Errors[0].Code)
	assert.Equal(t, []string{"Host"}, p.Diagnostics.Errors[0].Suggestions)
	assert.Equal(t, diagnostic.CodeNotStruct, p.Diagnostics.Errors[1].Code)

	require.Len(t, p.Types, 1)
	assert.Equal(t, "Host", p.Types[0].Name)
}

func TestResolve_NothingSelected(t *testing.T) {
	t.Parallel()

	graph := analyze.NewTypeGraph()
	graph.Packages["example.com/empty"] = &analyze.PackageInfo{Path: "example.com/empty", Name: "empty"}

	p := NewResolver(graph, nil, nil).Resolve("example.com/empty", nil)
	require.Len(t, p.Diagnostics.Errors, 1)
	assert.Equal(t, diagnostic.CodeNoTypes, p.Diagnostics.Errors[0].Code)
	assert.Empty(t, p.Types)

	p = NewResolver(graph, nil, nil).Resolve("example.com/missing", nil)
	require.Len(t, p.Diagnostics.Errors, 1)
	assert.Equal(t, diagnostic.CodeTypeNotFound, p.Diagnostics.Errors[0].Code)
}

func TestResolve_Instance(t *testing.T) {
	graph, err := analyze.NewAnalyzer().LoadPackages(t.Context(), "tagmapper/examples/instance")
	require.NoError(t, err)

	cfg, err := mapping.LoadFile("../../examples/instance/tags.yaml")
	require.NoError(t, err)

	p := NewResolver(graph, cfg, nil).Resolve("tagmapper/examples/instance", nil)
	require.False(t, p.Diagnostics.HasErrors(), p.Diagnostics.Error())
	require.Len(t, p.Types, 2)

	volume, instance := p.Types[0], p.Types[1]
	assert.Equal(t, "Volume", volume.Name)
	assert.Equal(t, []string{"volume-id", "encrypted", "labels", "snapshot"}, volume.Keys())
	assert.Equal(t, []string{"Cache"}, volume.Ignored)

	assert.Equal(t, "Instance", instance.Name)
	assert.Equal(t, SelectedByMarker, instance.Selection)
	assert.Equal(t, []string{"Name", "env", "spot", "limits", "owner", "public"}, instance.Keys())
}
