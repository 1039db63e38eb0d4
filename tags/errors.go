package tags

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for use with errors.Is. Every typed error below matches
// exactly one of them.
var (
	ErrMissingTag          = errors.New("tag not found")
	ErrDecodeFailed        = errors.New("tag value could not be decoded")
	ErrDuplicateKey        = errors.New("duplicate tag key")
	ErrInvalidBool         = errors.New("invalid bool literal")
	ErrInvalidValue        = errors.New("invalid tag value")
	ErrExternalConversion  = errors.New("external tag conversion failed")
	ErrInvalidSchema       = errors.New("invalid tag schema")
	errUnsupportedStrategy = errors.New("no encoding strategy")
)

// MissingTagError reports a required field whose tag is absent.
type MissingTagError struct {
	Field string
	Key   TagKey
}

func (e *MissingTagError) Error() string {
	return fmt.Sprintf("tag %q for field %s not found", e.Key, e.Field)
}

// Is matches ErrMissingTag.
func (e *MissingTagError) Is(target error) bool {
	return target == ErrMissingTag
}

// DecodeError reports a tag that was found but could not be converted into
// the field's type. Err holds the strategy-specific cause.
type DecodeError struct {
	Field string // empty when decoding a standalone Tag
	Key   TagKey
	Value RawTagValue
	Err   error
}

func (e *DecodeError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("failed parsing tag %q: %v", e.Key, e.Err)
	}

	return fmt.Sprintf("failed parsing tag %q for field %s: %v", e.Key, e.Field, e.Err)
}

// Is matches ErrDecodeFailed.
func (e *DecodeError) Is(target error) bool {
	return target == ErrDecodeFailed
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// DuplicateKeyError reports a key that occurs more than once in a TagList.
type DuplicateKeyError struct {
	Key   TagKey
	Count int
}

func (e *DuplicateKeyError) Error() string {
	return fmt.Sprintf("tag key %q occurs %d times", e.Key, e.Count)
}

// Is matches ErrDuplicateKey.
func (e *DuplicateKeyError) Is(target error) bool {
	return target == ErrDuplicateKey
}

// InvalidBoolError reports a value that is neither "true" nor "false".
type InvalidBoolError struct {
	Value RawTagValue
}

func (e *InvalidBoolError) Error() string {
	return fmt.Sprintf("invalid tag bool value %q", e.Value)
}

// Is matches ErrInvalidBool.
func (e *InvalidBoolError) Is(target error) bool {
	return target == ErrInvalidBool
}

// InvalidValueError is the generic decode failure of the manual and
// serialization strategies.
type InvalidValueError struct {
	Value RawTagValue
	Err   error
}

func (e *InvalidValueError) Error() string {
	return fmt.Sprintf("invalid tag value %q: %v", e.Value, e.Err)
}

// Is matches ErrInvalidValue.
func (e *InvalidValueError) Is(target error) bool {
	return target == ErrInvalidValue
}

func (e *InvalidValueError) Unwrap() error {
	return e.Err
}

// ConversionReason explains why an external tag could not be converted.
type ConversionReason int

const (
	ReasonKeyMissing ConversionReason = iota + 1
	ReasonValueMissing
)

// String returns a human-readable reason.
func (r ConversionReason) String() string {
	switch r {
	case ReasonKeyMissing:
		return "key is nil"
	case ReasonValueMissing:
		return "value is nil"
	default:
		return "unknown"
	}
}

// ExternalConversionError reports an SDK tag that cannot be represented as a RawTag.
type ExternalConversionError struct {
	Source string // e.g. "s3"
	Index  int    // position in the SDK slice
	Key    TagKey // empty when the key itself is missing
	Reason ConversionReason
}

func (e *ExternalConversionError) Error() string {
	if e.Key == "" {
		return fmt.Sprintf("%s tag #%d: %s", e.Source, e.Index, e.Reason)
	}

	return fmt.Sprintf("%s tag %q: %s", e.Source, e.Key, e.Reason)
}

// Is matches ErrExternalConversion.
func (e *ExternalConversionError) Is(target error) bool {
	return target == ErrExternalConversion
}

// AggregateError collects every field failure of a single decode.
type AggregateError struct {
	Type   string
	Errors []error
}

func (e *AggregateError) Error() string {
	var sb strings.Builder

	sb.WriteString("tags: decoding ")
	sb.WriteString(e.Type)

	if len(e.Errors) == 1 {
		sb.WriteString(": ")
		sb.WriteString(e.Errors[0].Error())

		return sb.String()
	}

	fmt.Fprintf(&sb, ": %d errors: ", len(e.Errors))

	for i, err := range e.Errors {
		if i > 0 {
			sb.WriteString("; ")
		}

		sb.WriteString(err.Error())
	}

	return sb.String()
}

func (e *AggregateError) Unwrap() []error {
	return e.Errors
}

// Fields returns the names of all failed fields, in declaration order.
func (e *AggregateError) Fields() []string {
	fields := make([]string, 0, len(e.Errors))

	for _, err := range e.Errors {
		var (
			missing *MissingTagError
			decode  *DecodeError
		)

		switch {
		case errors.As(err, &missing):
			fields = append(fields, missing.Field)
		case errors.As(err, &decode):
			fields = append(fields, decode.Field)
		}
	}

	return fields
}

// SchemaError reports an invalid struct description, such as two fields
// sharing a key or a field type without an encoding strategy.
type SchemaError struct {
	Type  string
	Field string
	Err   error
}

func (e *SchemaError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("tags: schema %s: %v", e.Type, e.Err)
	}

	return fmt.Sprintf("tags: schema %s, field %s: %v", e.Type, e.Field, e.Err)
}

// Is matches ErrInvalidSchema.
func (e *SchemaError) Is(target error) bool {
	return target == ErrInvalidSchema
}

func (e *SchemaError) Unwrap() error {
	return e.Err
}
