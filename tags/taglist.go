package tags

import (
	"slices"
	"sort"
)

// TagList is an ordered list of untyped tags.
//
// A TagList may contain the same key more than once; it is built as-is
// from whatever the cloud provider returned. Get returns the first match,
// Lookup reports duplicates as an error.
type TagList struct {
	tags []RawTag
}

// NewTagList builds a list from the given tags, in order.
func NewTagList(tags ...RawTag) TagList {
	return FromSlice(tags)
}

// FromSlice builds a list from a slice without validation. The slice is copied.
func FromSlice(tags []RawTag) TagList {
	if len(tags) == 0 {
		return TagList{}
	}

	return TagList{tags: slices.Clone(tags)}
}

// FromMap builds a list from a map. Keys are sorted so the order is deterministic.
func FromMap(m map[string]string) TagList {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}

	sort.Strings(keys)

	list := TagList{tags: make([]RawTag, 0, len(keys))}
	for _, k := range keys {
		list.tags = append(list.tags, NewRawTag(k, m[k]))
	}

	return list
}

// Push appends a tag.
func (l *TagList) Push(tag RawTag) {
	l.tags = append(l.tags, tag)
}

// Extend appends all given tags.
func (l *TagList) Extend(tags ...RawTag) {
	l.tags = append(l.tags, tags...)
}

// Join appends all tags of other.
func (l *TagList) Join(other TagList) {
	l.tags = append(l.tags, other.tags...)
}

// Len returns the number of tags, duplicates included.
func (l TagList) Len() int {
	return len(l.tags)
}

// Slice returns a copy of the tags in order, or nil for an empty list.
func (l TagList) Slice() []RawTag {
	if len(l.tags) == 0 {
		return nil
	}

	return slices.Clone(l.tags)
}

// All iterates over the tags in order.
func (l TagList) All(yield func(int, RawTag) bool) {
	for i, t := range l.tags {
		if !yield(i, t) {
			return
		}
	}
}

// Get returns the first tag with the given key.
func (l TagList) Get(key string) (RawTag, bool) {
	for _, t := range l.tags {
		if string(t.Key) == key {
			return t, true
		}
	}

	return RawTag{}, false
}

// Lookup returns the tag with the given key. If the key occurs more than
// once, the first tag is returned together with a *DuplicateKeyError.
func (l TagList) Lookup(key string) (RawTag, bool, error) {
	var (
		found RawTag
		count int
	)

	for _, t := range l.tags {
		if string(t.Key) != key {
			continue
		}

		if count == 0 {
			found = t
		}

		count++
	}

	switch count {
	case 0:
		return RawTag{}, false, nil
	case 1:
		return found, true, nil
	default:
		return found, true, &DuplicateKeyError{Key: TagKey(key), Count: count}
	}
}

// Count returns how often key occurs.
func (l TagList) Count(key string) int {
	n := 0

	for _, t := range l.tags {
		if string(t.Key) == key {
			n++
		}
	}

	return n
}

// Keys returns the distinct keys in first-occurrence order.
func (l TagList) Keys() []TagKey {
	seen := make(map[TagKey]struct{}, len(l.tags))
	keys := make([]TagKey, 0, len(l.tags))

	for _, t := range l.tags {
		if _, ok := seen[t.Key]; ok {
			continue
		}

		seen[t.Key] = struct{}{}
		keys = append(keys, t.Key)
	}

	return keys
}

// Duplicates returns the keys that occur more than once, in first-occurrence order.
func (l TagList) Duplicates() []TagKey {
	counts := make(map[TagKey]int, len(l.tags))
	for _, t := range l.tags {
		counts[t.Key]++
	}

	var dups []TagKey

	for _, k := range l.Keys() {
		if counts[k] > 1 {
			dups = append(dups, k)
		}
	}

	return dups
}

// Map converts the list into a map. It fails on the first duplicated key
// instead of silently keeping one of the values.
func (l TagList) Map() (map[string]string, error) {
	m := make(map[string]string, len(l.tags))

	for _, t := range l.tags {
		if _, ok := m[string(t.Key)]; ok {
			return nil, &DuplicateKeyError{Key: t.Key, Count: l.Count(string(t.Key))}
		}

		m[string(t.Key)] = string(t.Value)
	}

	return m, nil
}

// Equal reports whether both lists hold the same tags in the same order.
func (l TagList) Equal(other TagList) bool {
	return slices.Equal(l.tags, other.tags)
}
