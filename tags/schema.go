package tags

import (
	"errors"
	"fmt"
	"reflect"
)

// Field describes how one field of S maps to a tag. Fields are created
// with Required and Optional, or derived from struct tags by SchemaOf.
type Field[S any] interface {
	// Name is the Go field name used in error reports.
	Name() string
	// Key is the tag key.
	Key() string
	// Optional reports whether a missing tag is allowed.
	Optional() bool

	decode(d *Decoder, dst *S)
	encode(e *Encoder, src *S)
}

// FieldOption configures a field created by Required or Optional.
type FieldOption func(*fieldConfig)

type fieldConfig struct {
	key string
}

// WithKey renames the tag key of a field. By default the key is the field name.
func WithKey(key string) FieldOption {
	return func(c *fieldConfig) {
		c.key = key
	}
}

func applyFieldOptions(name string, opts []FieldOption) fieldConfig {
	cfg := fieldConfig{key: name}
	for _, opt := range opts {
		opt(&cfg)
	}

	return cfg
}

type requiredField[S, T any] struct {
	name   string
	key    string
	access func(*S) *T
	codec  Codec[T]
}

// Required declares a field whose tag must be present. access returns a
// pointer to the field inside S:
//
//	tags.Required("Name", func(s *Instance) *string { return &s.Name }, tags.String[string]())
func Required[S, T any](name string, access func(*S) *T, codec Codec[T], opts ...FieldOption) Field[S] {
	cfg := applyFieldOptions(name, opts)

	return requiredField[S, T]{name: name, key: cfg.key, access: access, codec: codec}
}

func (f requiredField[S, T]) Name() string   { return f.name }
func (f requiredField[S, T]) Key() string    { return f.key }
func (f requiredField[S, T]) Optional() bool { return false }

func (f requiredField[S, T]) decode(d *Decoder, dst *S) {
	DecodeRequired(d, f.name, f.key, f.codec, f.access(dst))
}

func (f requiredField[S, T]) encode(e *Encoder, src *S) {
	EncodeRequired(e, f.key, f.codec, *f.access(src))
}

type optionalField[S, T any] struct {
	name   string
	key    string
	access func(*S) **T
	codec  Codec[T]
}

// Optional declares a pointer field whose tag may be absent. A nil field
// is not encoded.
func Optional[S, T any](name string, access func(*S) **T, codec Codec[T], opts ...FieldOption) Field[S] {
	cfg := applyFieldOptions(name, opts)

	return optionalField[S, T]{name: name, key: cfg.key, access: access, codec: codec}
}

func (f optionalField[S, T]) Name() string   { return f.name }
func (f optionalField[S, T]) Key() string    { return f.key }
func (f optionalField[S, T]) Optional() bool { return true }

func (f optionalField[S, T]) decode(d *Decoder, dst *S) {
	DecodeOptional(d, f.name, f.key, f.codec, f.access(dst))
}

func (f optionalField[S, T]) encode(e *Encoder, src *S) {
	EncodeOptional(e, f.key, f.codec, *f.access(src))
}

// Schema converts between a TagList and S according to an ordered list
// of fields. A Schema is immutable and safe for concurrent use.
type Schema[S any] struct {
	typeName string
	fields   []Field[S]
}

// NewSchema validates the fields and returns a schema for S. An empty
// typeName defaults to the name of S. Keys must be non-empty and unique.
func NewSchema[S any](typeName string, fields ...Field[S]) (*Schema[S], error) {
	if typeName == "" {
		typeName = reflect.TypeFor[S]().Name()
	}

	keys := make(map[string]string, len(fields))
	names := make(map[string]struct{}, len(fields))

	for _, f := range fields {
		if f.Key() == "" {
			return nil, &SchemaError{Type: typeName, Field: f.Name(), Err: errors.New("empty tag key")}
		}

		if _, dup := names[f.Name()]; dup {
			return nil, &SchemaError{Type: typeName, Field: f.Name(), Err: errors.New("field declared twice")}
		}

		if other, dup := keys[f.Key()]; dup {
			return nil, &SchemaError{
				Type:  typeName,
				Field: f.Name(),
				Err:   fmt.Errorf("tag key %q already used by field %s", f.Key(), other),
			}
		}

		keys[f.Key()] = f.Name()
		names[f.Name()] = struct{}{}
	}

	return &Schema[S]{typeName: typeName, fields: fields}, nil
}

// MustSchema is like NewSchema but panics on an invalid declaration.
func MustSchema[S any](typeName string, fields ...Field[S]) *Schema[S] {
	s, err := NewSchema(typeName, fields...)
	if err != nil {
		panic(err)
	}

	return s
}

// TypeName returns the name used in error reports.
func (s *Schema[S]) TypeName() string {
	return s.typeName
}

// Keys returns the tag keys in declaration order.
func (s *Schema[S]) Keys() []string {
	keys := make([]string, len(s.fields))
	for i, f := range s.fields {
		keys[i] = f.Key()
	}

	return keys
}

// Fields returns the field descriptors in declaration order.
func (s *Schema[S]) Fields() []Field[S] {
	return append([]Field[S](nil), s.fields...)
}

// FromTags decodes list into a new S. Every field is attempted; on any
// failure the zero S and an *AggregateError listing all failures are
// returned. Tags that no field declares are ignored.
func (s *Schema[S]) FromTags(list TagList) (S, error) {
	var out S

	d := NewDecoder(s.typeName, list)
	for _, f := range s.fields {
		f.decode(d, &out)
	}

	if err := d.Err(); err != nil {
		var zero S
		return zero, err
	}

	return out, nil
}

// IntoTags encodes v in field declaration order. Nil optional fields
// produce no tag.
func (s *Schema[S]) IntoTags(v S) TagList {
	e := NewEncoder(len(s.fields))
	for _, f := range s.fields {
		f.encode(e, &v)
	}

	return e.TagList()
}
