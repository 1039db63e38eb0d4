package mapping

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tagmapper/internal/analyze"
	"tagmapper/internal/diagnostic"
)

const instancePkg = "tagmapper/examples/instance"

func loadGraph(t *testing.T) *analyze.TypeGraph {
	t.Helper()

	graph, err := analyze.NewAnalyzer().LoadPackages(t.Context(), instancePkg)
	require.NoError(t, err)

	return graph
}

func TestValidate_Valid(t *testing.T) {
	graph := loadGraph(t)

	f, err := LoadFile("../../examples/instance/tags.yaml")
	require.NoError(t, err)

	res := Validate(f, graph, instancePkg)
	assert.False(t, res.HasErrors(), res.Error())
	assert.Empty(t, res.Warnings)

	assert.False(t, Validate(nil, graph, instancePkg).HasErrors())
}

func TestValidate_Errors(t *testing.T) {
	graph := loadGraph(t)

	f, err := Parse([]byte(`
version: "2"
types:
  - name: Volume
    keys:
      Idd: volume-id
      Encrypted: ""
      Cache: cache
    strategies:
      Labels: cbr
      Snapshot: string
    ignore: [Cache]
  - name: Volum
  - name: Environment
  - name: Volume
`))
	require.NoError(t, err)

	res := Validate(f, graph, instancePkg)
	require.True(t, res.HasErrors())

	codes := make([]string, 0, len(res.Errors))
	for _, e := range res.Errors {
		codes = append(codes, e.Code)
	}

	assert.Equal(t, []string{
		diagnostic.CodeBadVersion,
		diagnostic.CodeEmptyKey,
		diagnostic.CodeUnknownField,
		diagnostic.CodeUnknownStrategy,
		diagnostic.CodeTypeNotFound,
		diagnostic.CodeNotStruct,
		diagnostic.CodeDuplicateType,
	}, codes)

	assert.Equal(t, "Idd", res.Errors[2].Field)
	assert.Equal(t, []string{"ID"}, res.Errors[2].Suggestions)
	assert.Equal(t, []string{"cbor"}, res.Errors[3].Suggestions)
	assert.Equal(t, []string{"Volume"}, res.Errors[4].Suggestions)

	require.Len(t, res.Warnings, 1)
	assert.Equal(t, diagnostic.CodeUnusedConfig, res.Warnings[0].Code)
	assert.Equal(t, "Cache", res.Warnings[0].Field)
}
