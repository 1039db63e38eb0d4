package tags

// Decoder accumulates the field results of one struct decode. It is the
// building block of Schema, Unmarshal and generated FromTags functions:
// every field is decoded independently and all failures are collected.
type Decoder struct {
	typeName string
	list     TagList
	errs     []error
}

// NewDecoder starts decoding typeName from list.
func NewDecoder(typeName string, list TagList) *Decoder {
	return &Decoder{typeName: typeName, list: list}
}

// take returns the raw value of a field. Duplicated keys are recorded as
// a *DecodeError; a missing key is recorded only when required is set,
// since optional fields treat it as absence.
func (d *Decoder) take(field, key string, required bool) (RawTagValue, bool) {
	tag, ok, err := d.list.Lookup(key)

	switch {
	case err != nil:
		d.failDecode(field, key, tag.Value, err)
		return "", false
	case !ok:
		if required {
			d.errs = append(d.errs, &MissingTagError{Field: field, Key: TagKey(key)})
		}

		return "", false
	}

	return tag.Value, true
}

func (d *Decoder) failDecode(field, key string, raw RawTagValue, err error) {
	d.errs = append(d.errs, &DecodeError{Field: field, Key: TagKey(key), Value: raw, Err: err})
}

// Err returns an *AggregateError holding every recorded failure, or nil.
func (d *Decoder) Err() error {
	if len(d.errs) == 0 {
		return nil
	}

	return &AggregateError{Type: d.typeName, Errors: d.errs}
}

// DecodeRequired decodes the tag key into dst. A missing tag records a
// *MissingTagError, an undecodable one a *DecodeError. dst is only written
// on success.
func DecodeRequired[T any](d *Decoder, field, key string, codec Codec[T], dst *T) {
	raw, ok := d.take(field, key, true)
	if !ok {
		return
	}

	v, err := codec.Decode(raw)
	if err != nil {
		d.failDecode(field, key, raw, err)
		return
	}

	*dst = v
}

// DecodeOptional decodes the tag key into *dst. A missing tag sets *dst to
// nil; a present but undecodable tag is still recorded as a *DecodeError.
func DecodeOptional[T any](d *Decoder, field, key string, codec Codec[T], dst **T) {
	*dst = nil

	raw, ok := d.take(field, key, false)
	if !ok {
		return
	}

	v, err := codec.Decode(raw)
	if err != nil {
		d.failDecode(field, key, raw, err)
		return
	}

	*dst = &v
}

// Encoder collects the tags of one struct encode in field order.
type Encoder struct {
	tags []RawTag
}

// NewEncoder returns an Encoder with room for size tags.
func NewEncoder(size int) *Encoder {
	return &Encoder{tags: make([]RawTag, 0, size)}
}

// Put appends an already encoded tag.
func (e *Encoder) Put(key string, value RawTagValue) {
	e.tags = append(e.tags, RawTag{Key: TagKey(key), Value: value})
}

// TagList returns the encoded tags.
func (e *Encoder) TagList() TagList {
	return FromSlice(e.tags)
}

// EncodeRequired encodes v under key.
func EncodeRequired[T any](e *Encoder, key string, codec Codec[T], v T) {
	e.Put(key, codec.Encode(v))
}

// EncodeOptional encodes *v under key, or emits nothing when v is nil.
func EncodeOptional[T any](e *Encoder, key string, codec Codec[T], v *T) {
	if v == nil {
		return
	}

	e.Put(key, codec.Encode(*v))
}
