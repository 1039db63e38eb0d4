package diagnostic

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDiagnostics_AddAndError(t *testing.T) {
	var d Diagnostics

	assert.NoError(t, d.Error())
	assert.False(t, d.HasErrors())

	d.AddInfo(CodeFieldSkipped, "field is unexported", "Instance", "cache")
	d.AddWarning(CodeUnusedConfig, "type is configured but not generated", "Volume", "")
	d.AddError(CodeUnknownField, `unknown field "Onwer"`, "Instance", "Onwer", "Owner")

	require.True(t, d.HasErrors())
	assert.Len(t, d.Errors, 1)
	assert.Len(t, d.Warnings, 1)
	assert.Len(t, d.Infos, 1)

	assert.EqualError(t, d.Error(),
		`[Instance] Onwer: [unknown_field] unknown field "Onwer" (did you mean Owner?)`)

	all := d.All()
	require.Len(t, all, 3)
	assert.Equal(t, DiagnosticError, all[0].Severity)
	assert.Equal(t, DiagnosticInfo, all[2].Severity)
}

func TestDiagnostics_Merge(t *testing.T) {
	var a, b Diagnostics

	a.AddError(CodeNoTypes, "no types selected", "", "")
	b.AddError(CodeDuplicateKey, `tag key "Name" used twice`, "Instance", "Alias")
	b.AddWarning(CodeUnusedConfig, "unused", "", "")

	a.Merge(&b)
	a.Merge(nil)

	assert.Len(t, a.Errors, 2)
	assert.Len(t, a.Warnings, 1)
	assert.Equal(t, "[no_types] no types selected", a.Errors[0].String())
}

func TestDiagnostics_Log(t *testing.T) {
	var buf bytes.Buffer

	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelWarn}))

	var d Diagnostics
	d.AddInfo(CodeFieldSkipped, "skipped", "Instance", "cache")
	d.AddError(CodeNoStrategy, "field type int has no encoding strategy", "Instance", "Count")
	d.Log(context.Background(), logger)

	out := buf.String()
	assert.Contains(t, out, "level=ERROR")
	assert.Contains(t, out, "code=no_strategy")
	assert.Contains(t, out, "field=Count")
	assert.NotContains(t, out, "skipped")
}

func TestDiagnosticSeverity_String(t *testing.T) {
	assert.Equal(t, "info", DiagnosticInfo.String())
	assert.Equal(t, "warning", DiagnosticWarning.String())
	assert.Equal(t, "error", DiagnosticError.String())
	assert.Equal(t, "unknown", DiagnosticSeverity(9).String())
}
