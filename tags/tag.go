package tags

// TagKey is the key of a tag. Keys are matched exactly and case-sensitively.
type TagKey string

// String returns the key as a plain string.
func (k TagKey) String() string {
	return string(k)
}

// RawTagValue is the untyped string value of a tag.
type RawTagValue string

// String returns the value as a plain string.
func (v RawTagValue) String() string {
	return string(v)
}

// RawTag is a single untyped key/value pair.
type RawTag struct {
	Key   TagKey      `json:"key"`
	Value RawTagValue `json:"value"`
}

// NewRawTag creates a RawTag from plain strings.
func NewRawTag(key, value string) RawTag {
	return RawTag{Key: TagKey(key), Value: RawTagValue(value)}
}

// Tag is a single tag whose value has been decoded into T.
type Tag[T any] struct {
	Key   TagKey
	Value T
}

// NewTag creates a typed tag from a value that is already decoded.
func NewTag[T any](key string, value T) Tag[T] {
	return Tag[T]{Key: TagKey(key), Value: value}
}

// ParseTag decodes raw through codec. The returned error is a *DecodeError
// carrying the tag key.
func ParseTag[T any](raw RawTag, codec Codec[T]) (Tag[T], error) {
	value, err := codec.Decode(raw.Value)
	if err != nil {
		return Tag[T]{}, &DecodeError{
			Key:   raw.Key,
			Value: raw.Value,
			Err:   err,
		}
	}

	return Tag[T]{Key: raw.Key, Value: value}, nil
}

// Raw encodes the tag back into its untyped form.
func (t Tag[T]) Raw(codec Codec[T]) RawTag {
	return RawTag{Key: t.Key, Value: codec.Encode(t.Value)}
}
