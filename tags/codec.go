package tags

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"
)

// Codec is the encoding contract every field type satisfies to take part
// in tag conversion. Decode may fail; Encode must not. An Encode that
// cannot produce a value is a programming error and panics.
type Codec[T any] interface {
	Decode(value RawTagValue) (T, error)
	Encode(value T) RawTagValue
}

// ValueMarshaler is implemented by types that encode themselves into a tag value.
type ValueMarshaler interface {
	MarshalTagValue() RawTagValue
}

// ValueUnmarshaler is implemented by pointers to types that decode
// themselves from a tag value.
type ValueUnmarshaler interface {
	UnmarshalTagValue(value RawTagValue) error
}

type stringCodec[T ~string] struct{}

// String returns the pass-through codec for string kinds. Decoding never fails.
func String[T ~string]() Codec[T] {
	return stringCodec[T]{}
}

func (stringCodec[T]) Decode(value RawTagValue) (T, error) {
	return T(value), nil
}

func (stringCodec[T]) Encode(value T) RawTagValue {
	return RawTagValue(value)
}

type boolCodec[T ~bool] struct{}

// Bool returns the codec for bool kinds. Only the exact literals "true"
// and "false" are accepted.
func Bool[T ~bool]() Codec[T] {
	return boolCodec[T]{}
}

func (boolCodec[T]) Decode(value RawTagValue) (T, error) {
	switch value {
	case "true":
		return T(true), nil
	case "false":
		return T(false), nil
	default:
		return T(false), &InvalidBoolError{Value: value}
	}
}

func (boolCodec[T]) Encode(value T) RawTagValue {
	if bool(value) {
		return "true"
	}

	return "false"
}

type manualCodec[T ValueMarshaler, PT interface {
	*T
	ValueUnmarshaler
}] struct{}

// Manual returns the codec for a type that implements ValueMarshaler on
// its value and ValueUnmarshaler on its pointer:
//
//	codec := tags.Manual[Role]()
func Manual[T ValueMarshaler, PT interface {
	*T
	ValueUnmarshaler
}]() Codec[T] {
	return manualCodec[T, PT]{}
}

func (manualCodec[T, PT]) Decode(value RawTagValue) (T, error) {
	var out T

	if err := PT(&out).UnmarshalTagValue(value); err != nil {
		var zero T
		return zero, invalidValue(value, err)
	}

	return out, nil
}

func (manualCodec[T, PT]) Encode(value T) RawTagValue {
	return value.MarshalTagValue()
}

type funcCodec[T any] struct {
	decode func(RawTagValue) (T, error)
	encode func(T) RawTagValue
}

// ManualFunc builds a manual codec from a pair of conversion functions.
// It is useful for types that cannot carry methods, such as types from
// other packages.
func ManualFunc[T any](decode func(RawTagValue) (T, error), encode func(T) RawTagValue) Codec[T] {
	return funcCodec[T]{decode: decode, encode: encode}
}

func (c funcCodec[T]) Decode(value RawTagValue) (T, error) {
	out, err := c.decode(value)
	if err != nil {
		var zero T
		return zero, invalidValue(value, err)
	}

	return out, nil
}

func (c funcCodec[T]) Encode(value T) RawTagValue {
	return c.encode(value)
}

type enumCodec[T comparable] struct {
	names  map[T]string
	values map[RawTagValue]T
	valid  string
}

// Enum returns a codec for a closed set of values, each encoded as the
// given name. Names must be unique. Encoding a value missing from names
// panics.
func Enum[T comparable](names map[T]string) Codec[T] {
	c := enumCodec[T]{
		names:  make(map[T]string, len(names)),
		values: make(map[RawTagValue]T, len(names)),
	}

	sorted := make([]string, 0, len(names))

	for v, name := range names {
		if _, dup := c.values[RawTagValue(name)]; dup {
			panic(fmt.Sprintf("tags: enum name %q used twice", name))
		}

		c.names[v] = name
		c.values[RawTagValue(name)] = v
		sorted = append(sorted, name)
	}

	sort.Strings(sorted)
	c.valid = strings.Join(sorted, ", ")

	return c
}

func (c enumCodec[T]) Decode(value RawTagValue) (T, error) {
	v, ok := c.values[value]
	if !ok {
		var zero T
		return zero, &InvalidValueError{
			Value: value,
			Err:   fmt.Errorf("expected one of [%s]", c.valid),
		}
	}

	return v, nil
}

func (c enumCodec[T]) Encode(value T) RawTagValue {
	name, ok := c.names[value]
	if !ok {
		panic(fmt.Sprintf("tags: enum value %v has no name", value))
	}

	return RawTagValue(name)
}

// TimestampLayout is the tag value layout used by Timestamp. Values are
// always in UTC and carry no zone suffix.
const TimestampLayout = "2006-01-02T15:04:05"

type timestampCodec struct{}

// Timestamp returns a codec for time.Time using TimestampLayout in UTC.
// Sub-second precision is dropped on encode.
func Timestamp() Codec[time.Time] {
	return timestampCodec{}
}

func (timestampCodec) Decode(value RawTagValue) (time.Time, error) {
	t, err := time.ParseInLocation(TimestampLayout, string(value), time.UTC)
	if err != nil {
		return time.Time{}, &InvalidValueError{
			Value: value,
			Err:   fmt.Errorf("failed parsing timestamp: %w", err),
		}
	}

	return t, nil
}

func (timestampCodec) Encode(value time.Time) RawTagValue {
	return RawTagValue(value.UTC().Format(TimestampLayout))
}

// invalidValue wraps err unless it already is an *InvalidValueError.
func invalidValue(value RawTagValue, err error) error {
	var ive *InvalidValueError
	if errors.As(err, &ive) {
		return err
	}

	return &InvalidValueError{Value: value, Err: err}
}
