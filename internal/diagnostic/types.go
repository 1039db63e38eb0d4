package diagnostic

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"tagmapper/internal/common"
)

// Diagnostic codes.
const (
	CodeNoTypes         = "no_types"
	CodeTypeNotFound    = "type_not_found"
	CodeNotStruct       = "not_struct"
	CodeUnknownField    = "unknown_field"
	CodeUnknownStrategy = "unknown_strategy"
	CodeNoStrategy      = "no_strategy"
	CodeStrategyKind    = "strategy_kind_mismatch"
	CodeEmptyKey        = "empty_key"
	CodeDuplicateKey    = "duplicate_key"
	CodePointerPointer  = "pointer_to_pointer"
	CodeBadStructTag    = "bad_struct_tag"
	CodeFieldSkipped    = "field_skipped"
	CodeUnusedConfig    = "unused_config"
	CodeBadVersion      = "unsupported_version"
	CodeDuplicateType   = "duplicate_type"
)

// Diagnostics holds all diagnostic information from planning.
type Diagnostics struct {
	Errors   []Diagnostic
	Warnings []Diagnostic
	Infos    []Diagnostic
}

// Diagnostic represents a single diagnostic message.
type Diagnostic struct {
	// Severity of the diagnostic.
	Severity DiagnosticSeverity
	// Code is a unique identifier for this type of diagnostic.
	Code string
	// Message is the human-readable description.
	Message string
	// TypeName identifies the struct this relates to (if any).
	TypeName string
	// Field identifies the struct field this relates to (if any).
	Field string
	// Suggestions are potential fixes or alternatives.
	Suggestions []string
}

// DiagnosticSeverity represents the severity level of a diagnostic.
type DiagnosticSeverity int

const (
	DiagnosticInfo DiagnosticSeverity = iota
	DiagnosticWarning
	DiagnosticError
)

// String returns a human-readable severity name.
func (s DiagnosticSeverity) String() string {
	switch s {
	case DiagnosticInfo:
		return "info"
	case DiagnosticWarning:
		return "warning"
	case DiagnosticError:
		return "error"
	default:
		return common.UnknownStr
	}
}

func (s DiagnosticSeverity) level() slog.Level {
	switch s {
	case DiagnosticError:
		return slog.LevelError
	case DiagnosticWarning:
		return slog.LevelWarn
	default:
		return slog.LevelInfo
	}
}

// Add appends a diagnostic to the list matching its severity.
func (d *Diagnostics) Add(diag Diagnostic) {
	switch diag.Severity {
	case DiagnosticError:
		d.Errors = append(d.Errors, diag)
	case DiagnosticWarning:
		d.Warnings = append(d.Warnings, diag)
	default:
		d.Infos = append(d.Infos, diag)
	}
}

// AddError adds an error diagnostic.
func (d *Diagnostics) AddError(code, message, typeName, field string, suggestions ...string) {
	d.Add(Diagnostic{
		Severity:    DiagnosticError,
		Code:        code,
		Message:     message,
		TypeName:    typeName,
		Field:       field,
		Suggestions: suggestions,
	})
}

// AddWarning adds a warning diagnostic.
func (d *Diagnostics) AddWarning(code, message, typeName, field string, suggestions ...string) {
	d.Add(Diagnostic{
		Severity:    DiagnosticWarning,
		Code:        code,
		Message:     message,
		TypeName:    typeName,
		Field:       field,
		Suggestions: suggestions,
	})
}

// AddInfo adds an info diagnostic.
func (d *Diagnostics) AddInfo(code, message, typeName, field string) {
	d.Add(Diagnostic{
		Severity: DiagnosticInfo,
		Code:     code,
		Message:  message,
		TypeName: typeName,
		Field:    field,
	})
}

// HasErrors returns true if there are any error diagnostics.
func (d *Diagnostics) HasErrors() bool {
	return len(d.Errors) > 0
}

// Merge merges another Diagnostics instance into this one.
func (d *Diagnostics) Merge(other *Diagnostics) {
	if other == nil {
		return
	}

	d.Errors = append(d.Errors, other.Errors...)
	d.Warnings = append(d.Warnings, other.Warnings...)
	d.Infos = append(d.Infos, other.Infos...)
}

// All returns every diagnostic, errors first.
func (d *Diagnostics) All() []Diagnostic {
	all := make([]Diagnostic, 0, len(d.Errors)+len(d.Warnings)+len(d.Infos))
	all = append(all, d.Errors...)
	all = append(all, d.Warnings...)

	return append(all, d.Infos...)
}

// Log writes every diagnostic to logger at the level of its severity.
func (d *Diagnostics) Log(ctx context.Context, logger *slog.Logger) {
	for _, diag := range d.All() {
		attrs := []any{slog.String("code", diag.Code)}
		if diag.TypeName != "" {
			attrs = append(attrs, slog.String("type", diag.TypeName))
		}

		if diag.Field != "" {
			attrs = append(attrs, slog.String("field", diag.Field))
		}

		if len(diag.Suggestions) > 0 {
			attrs = append(attrs, slog.Any("suggestions", diag.Suggestions))
		}

		logger.Log(ctx, diag.Severity.level(), diag.Message, attrs...)
	}
}

// Error returns a combined error from all error diagnostics, or nil if valid.
func (d *Diagnostics) Error() error {
	if !d.HasErrors() {
		return nil
	}

	parts := make([]string, 0, len(d.Errors))
	for _, e := range d.Errors {
		parts = append(parts, e.String())
	}

	return errors.New(strings.Join(parts, "; "))
}

// String returns a formatted diagnostic string.
func (d Diagnostic) String() string {
	var prefix []string
	if d.TypeName != "" {
		prefix = append(prefix, "["+d.TypeName+"]")
	}

	if d.Field != "" {
		prefix = append(prefix, d.Field)
	}

	msg := d.Message
	if d.Code != "" {
		msg = fmt.Sprintf("[%s] %s", d.Code, msg)
	}

	if len(d.Suggestions) > 0 {
		msg += " (did you mean " + strings.Join(d.Suggestions, ", ") + "?)"
	}

	if len(prefix) > 0 {
		return strings.Join(prefix, " ") + ": " + msg
	}

	return msg
}
