package tags

import (
	"encoding/base64"
	"encoding/json"
	"fmt"

	"github.com/fxamacker/cbor/v2"
)

type jsonCodec[T any] struct{}

// JSON returns a codec that stores T as compact JSON in the tag value.
func JSON[T any]() Codec[T] {
	return jsonCodec[T]{}
}

func (jsonCodec[T]) Decode(value RawTagValue) (T, error) {
	var out T

	if err := decodeJSON(value, &out); err != nil {
		var zero T
		return zero, err
	}

	return out, nil
}

func (jsonCodec[T]) Encode(value T) RawTagValue {
	return encodeJSON(value)
}

func decodeJSON(value RawTagValue, ptr any) error {
	if err := json.Unmarshal([]byte(value), ptr); err != nil {
		return &InvalidValueError{Value: value, Err: err}
	}

	return nil
}

func encodeJSON(v any) RawTagValue {
	data, err := json.Marshal(v)
	if err != nil {
		panic(fmt.Sprintf("tags: JSON encoding of %T failed: %v", v, err))
	}

	return RawTagValue(data)
}

// cborEncMode uses Core Deterministic Encoding so equal values always
// produce equal tag values.
var cborEncMode = func() cbor.EncMode {
	mode, err := cbor.CoreDetEncOptions().EncMode()
	if err != nil {
		panic("tags: CBOR encoder initialization failed: " + err.Error())
	}

	return mode
}()

var cborDecMode = func() cbor.DecMode {
	mode, err := cbor.DecOptions{}.DecMode()
	if err != nil {
		panic("tags: CBOR decoder initialization failed: " + err.Error())
	}

	return mode
}()

type cborCodec[T any] struct{}

// CBOR returns a codec that stores T as deterministic CBOR, encoded as
// unpadded base64url so the tag value stays a plain string. It is more
// compact than JSON for structured values.
func CBOR[T any]() Codec[T] {
	return cborCodec[T]{}
}

func (cborCodec[T]) Decode(value RawTagValue) (T, error) {
	var out T

	if err := decodeCBOR(value, &out); err != nil {
		var zero T
		return zero, err
	}

	return out, nil
}

func (cborCodec[T]) Encode(value T) RawTagValue {
	return encodeCBOR(value)
}

func decodeCBOR(value RawTagValue, ptr any) error {
	data, err := base64.RawURLEncoding.DecodeString(string(value))
	if err != nil {
		return &InvalidValueError{Value: value, Err: fmt.Errorf("invalid base64: %w", err)}
	}

	if err := cborDecMode.Unmarshal(data, ptr); err != nil {
		return &InvalidValueError{Value: value, Err: err}
	}

	return nil
}

func encodeCBOR(v any) RawTagValue {
	data, err := cborEncMode.Marshal(v)
	if err != nil {
		panic(fmt.Sprintf("tags: CBOR encoding of %T failed: %v", v, err))
	}

	return RawTagValue(base64.RawURLEncoding.EncodeToString(data))
}
