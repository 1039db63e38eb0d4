package tags

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"
)

// StructTagName is the struct tag read by SchemaOf.
const StructTagName = "tag"

var (
	marshalerType   = reflect.TypeFor[ValueMarshaler]()
	unmarshalerType = reflect.TypeFor[ValueUnmarshaler]()
)

var schemaCache sync.Map // map[reflect.Type]schemaResult

type schemaResult struct {
	schema any
	err    error
}

// SchemaOf derives a Schema from the exported fields of S and their
// struct tags. The result is cached per type.
//
// The tag has the form `tag:"key,strategy"`. An empty key defaults to the
// field name and "-" skips the field, while "-," names the key "-".
// Pointer fields are optional. The strategy is inferred when omitted:
// string and bool kinds use the built-in codecs and types implementing
// ValueMarshaler and ValueUnmarshaler use the manual strategy. Any other
// type must name "json" or "cbor" explicitly.
func SchemaOf[S any]() (*Schema[S], error) {
	t := reflect.TypeFor[S]()
	if cached, ok := schemaCache.Load(t); ok {
		r := cached.(schemaResult)
		if r.err != nil {
			return nil, r.err
		}

		return r.schema.(*Schema[S]), nil
	}

	schema, err := buildSchema[S](t)
	schemaCache.Store(t, schemaResult{schema: schema, err: err})

	return schema, err
}

// Unmarshal decodes list into a new S using SchemaOf.
func Unmarshal[S any](list TagList) (S, error) {
	schema, err := SchemaOf[S]()
	if err != nil {
		var zero S
		return zero, err
	}

	return schema.FromTags(list)
}

// Marshal encodes v using SchemaOf. It panics if S has an invalid
// declaration, as encoding is total for every valid one.
func Marshal[S any](v S) TagList {
	schema, err := SchemaOf[S]()
	if err != nil {
		panic(err)
	}

	return schema.IntoTags(v)
}

func buildSchema[S any](t reflect.Type) (*Schema[S], error) {
	if t.Kind() != reflect.Struct {
		return nil, &SchemaError{Type: t.String(), Err: fmt.Errorf("%s is not a struct", t.Kind())}
	}

	fields := make([]Field[S], 0, t.NumField())

	for i := range t.NumField() {
		sf := t.Field(i)
		if !sf.IsExported() {
			continue
		}

		tag := sf.Tag.Get(StructTagName)
		if tag == "-" {
			continue
		}

		field, err := newReflectField[S](t.Name(), sf, tag)
		if err != nil {
			return nil, err
		}

		fields = append(fields, field)
	}

	return NewSchema(t.Name(), fields...)
}

// parseStructTag splits `key,strategy`.
func parseStructTag(tag string) (key string, strategy Strategy, err error) {
	key, opts, _ := strings.Cut(tag, ",")
	if opts == "" {
		return key, StrategyUnknown, nil
	}

	if strings.Contains(opts, ",") {
		return "", StrategyUnknown, fmt.Errorf("too many options in %q", tag)
	}

	strategy, err = ParseStrategy(opts)

	return key, strategy, err
}

type reflectField[S any] struct {
	name     string
	key      string
	index    []int
	optional bool
	codec    valueCodec
}

func newReflectField[S any](typeName string, sf reflect.StructField, tag string) (Field[S], error) {
	fail := func(err error) (Field[S], error) {
		return nil, &SchemaError{Type: typeName, Field: sf.Name, Err: err}
	}

	key, strategy, err := parseStructTag(tag)
	if err != nil {
		return fail(err)
	}

	if key == "" {
		key = sf.Name
	}

	elem, optional := sf.Type, false
	if elem.Kind() == reflect.Pointer {
		elem, optional = elem.Elem(), true

		if elem.Kind() == reflect.Pointer {
			return fail(errors.New("pointer to pointer fields are not supported"))
		}
	}

	codec, err := codecFor(elem, strategy)
	if err != nil {
		return fail(err)
	}

	return reflectField[S]{
		name:     sf.Name,
		key:      key,
		index:    sf.Index,
		optional: optional,
		codec:    codec,
	}, nil
}

func (f reflectField[S]) Name() string   { return f.name }
func (f reflectField[S]) Key() string    { return f.key }
func (f reflectField[S]) Optional() bool { return f.optional }

func (f reflectField[S]) decode(d *Decoder, dst *S) {
	fv := reflect.ValueOf(dst).Elem().FieldByIndex(f.index)

	if f.optional {
		fv.SetZero()
	}

	raw, ok := d.take(f.name, f.key, !f.optional)
	if !ok {
		return
	}

	v, err := f.codec.decode(raw)
	if err != nil {
		d.failDecode(f.name, f.key, raw, err)
		return
	}

	if f.optional {
		fv.Set(v)
		return
	}

	fv.Set(v.Elem())
}

func (f reflectField[S]) encode(e *Encoder, src *S) {
	fv := reflect.ValueOf(src).Elem().FieldByIndex(f.index)

	if f.optional {
		if fv.IsNil() {
			return
		}

		fv = fv.Elem()
	}

	e.Put(f.key, f.codec.encode(fv))
}

// valueCodec is the reflection counterpart of Codec. decode returns a
// pointer to a freshly decoded value of the field's element type.
type valueCodec struct {
	decode func(RawTagValue) (reflect.Value, error)
	encode func(reflect.Value) RawTagValue
}

func isManual(t reflect.Type) bool {
	return t.Implements(marshalerType) && reflect.PointerTo(t).Implements(unmarshalerType)
}

func inferStrategy(t reflect.Type) Strategy {
	switch {
	case isManual(t):
		return StrategyManual
	case t.Kind() == reflect.String:
		return StrategyString
	case t.Kind() == reflect.Bool:
		return StrategyBool
	default:
		return StrategyUnknown
	}
}

func codecFor(t reflect.Type, strategy Strategy) (valueCodec, error) {
	if strategy == StrategyUnknown {
		strategy = inferStrategy(t)
	}

	switch strategy {
	case StrategyString:
		if t.Kind() != reflect.String {
			return valueCodec{}, fmt.Errorf("string strategy needs a string kind, got %s", t)
		}

		return valueCodec{
			decode: func(raw RawTagValue) (reflect.Value, error) {
				p := reflect.New(t)
				p.Elem().SetString(string(raw))

				return p, nil
			},
			encode: func(v reflect.Value) RawTagValue {
				return RawTagValue(v.String())
			},
		}, nil

	case StrategyBool:
		if t.Kind() != reflect.Bool {
			return valueCodec{}, fmt.Errorf("bool strategy needs a bool kind, got %s", t)
		}

		return valueCodec{
			decode: func(raw RawTagValue) (reflect.Value, error) {
				b, err := Bool[bool]().Decode(raw)
				if err != nil {
					return reflect.Value{}, err
				}

				p := reflect.New(t)
				p.Elem().SetBool(b)

				return p, nil
			},
			encode: func(v reflect.Value) RawTagValue {
				return Bool[bool]().Encode(v.Bool())
			},
		}, nil

	case StrategyManual:
		if !isManual(t) {
			return valueCodec{}, fmt.Errorf("manual strategy needs %s to implement ValueMarshaler and *%s ValueUnmarshaler", t, t)
		}

		return valueCodec{
			decode: func(raw RawTagValue) (reflect.Value, error) {
				p := reflect.New(t)
				if err := p.Interface().(ValueUnmarshaler).UnmarshalTagValue(raw); err != nil {
					return reflect.Value{}, invalidValue(raw, err)
				}

				return p, nil
			},
			encode: func(v reflect.Value) RawTagValue {
				return v.Interface().(ValueMarshaler).MarshalTagValue()
			},
		}, nil

	case StrategyJSON:
		return serializationCodec(t, decodeJSON, encodeJSON), nil

	case StrategyCBOR:
		return serializationCodec(t, decodeCBOR, encodeCBOR), nil

	default:
		return valueCodec{}, fmt.Errorf("%w for %s: declare json or cbor", errUnsupportedStrategy, t)
	}
}

func serializationCodec(
	t reflect.Type,
	decode func(RawTagValue, any) error,
	encode func(any) RawTagValue,
) valueCodec {
	return valueCodec{
		decode: func(raw RawTagValue) (reflect.Value, error) {
			p := reflect.New(t)
			if err := decode(raw, p.Interface()); err != nil {
				return reflect.Value{}, err
			}

			return p, nil
		},
		encode: func(v reflect.Value) RawTagValue {
			return encode(v.Interface())
		},
	}
}
