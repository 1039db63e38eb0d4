package tags

import (
	"errors"
	"testing"

	"github.com/davecgh/go-spew/spew"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type server struct {
	Name     string            `tag:"Name"`
	Primary  bool              `tag:"primary"`
	Host     hostname          `tag:"host"`
	Port     port              `tag:"port"`
	Limits   limits            `tag:"limits,json"`
	Labels   map[string]string `tag:"labels,cbor"`
	Owner    *string           `tag:"owner"`
	Draining *bool             `tag:"draining"`
	Backup   *port             `tag:"backup"`
	Comment  string            `tag:"-"`
	Zone     string

	revision int
}

func TestSchemaOf_Keys(t *testing.T) {
	t.Parallel()

	schema, err := SchemaOf[server]()
	require.NoError(t, err)

	assert.Equal(t, "server", schema.TypeName())
	assert.Equal(t, []string{
		"Name", "primary", "host", "port", "limits", "labels", "owner", "draining", "backup", "Zone",
	}, schema.Keys())

	again, err := SchemaOf[server]()
	require.NoError(t, err)
	assert.Same(t, schema, again)
}

func TestMarshal(t *testing.T) {
	t.Parallel()

	v := server{
		Name:     "db-1",
		Primary:  true,
		Host:     "db-1.internal",
		Port:     5432,
		Limits:   limits{CPU: 8, Memory: "32Gi"},
		Labels:   map[string]string{"tier": "data"},
		Draining: new(bool),
		Comment:  "not stored",
		Zone:     "eu-west-1a",
		revision: 7,
	}

	list := Marshal(v)

	assert.Equal(t, []TagKey{
		"Name", "primary", "host", "port", "limits", "labels", "draining", "Zone",
	}, list.Keys())

	get := func(key string) RawTagValue {
		tag, ok := list.Get(key)
		require.True(t, ok, key)

		return tag.Value
	}

	assert.Equal(t, RawTagValue("true"), get("primary"))
	assert.Equal(t, RawTagValue("5432"), get("port"))
	assert.Equal(t, RawTagValue(`{"cpu":8,"memory":"32Gi"}`), get("limits"))
	assert.Equal(t, CBOR[map[string]string]().Encode(v.Labels), get("labels"))
	assert.Equal(t, RawTagValue("false"), get("draining"))

	got, err := Unmarshal[server](list)
	require.NoError(t, err)

	v.Comment, v.revision = "", 0
	assert.Equal(t, v, got, spew.Sdump(got))
}

func TestUnmarshal_Errors(t *testing.T) {
	t.Parallel()

	list := NewTagList(
		NewRawTag("Name", "db-1"),
		NewRawTag("primary", "yes"),
		NewRawTag("port", "0"),
		NewRawTag("limits", "{"),
		NewRawTag("labels", "###"),
		NewRawTag("draining", "notabool"),
		NewRawTag("backup", "x"),
	)

	got, err := Unmarshal[server](list)
	assert.Equal(t, server{}, got)

	var agg *AggregateError
	require.ErrorAs(t, err, &agg)
	assert.Equal(t, []string{
		"Primary", "Host", "Port", "Limits", "Labels", "Draining", "Backup", "Zone",
	}, agg.Fields(), spew.Sdump(agg.Errors))

	assert.ErrorIs(t, agg.Errors[0], ErrInvalidBool)
	assert.ErrorIs(t, agg.Errors[1], ErrMissingTag)
	assert.ErrorIs(t, agg.Errors[2], ErrInvalidValue)
	assert.ErrorIs(t, agg.Errors[6], ErrInvalidValue)
}

func TestUnmarshal_OptionalAbsent(t *testing.T) {
	t.Parallel()

	type volume struct {
		ID        string  `tag:"id"`
		Encrypted *bool   `tag:"encrypted"`
		Snapshot  *string `tag:"snapshot"`
	}

	got, err := Unmarshal[volume](NewTagList(NewRawTag("id", "vol-1")))
	require.NoError(t, err)
	assert.Equal(t, volume{ID: "vol-1"}, got)
	assert.True(t, Marshal(got).Equal(NewTagList(NewRawTag("id", "vol-1"))))
}

func TestSchemaOf_DashKey(t *testing.T) {
	t.Parallel()

	type dashed struct {
		Dash string `tag:"-,string"`
		Skip string `tag:"-"`
	}

	schema, err := SchemaOf[dashed]()
	require.NoError(t, err)
	assert.Equal(t, []string{"-"}, schema.Keys())

	got, err := Unmarshal[dashed](NewTagList(NewRawTag("-", "x"), NewRawTag("Skip", "y")))
	require.NoError(t, err)
	assert.Equal(t, dashed{Dash: "x"}, got)
}

func TestSchemaOf_Invalid(t *testing.T) {
	t.Parallel()

	type noStrategy struct {
		Count int `tag:"count"`
	}

	type pointerToPointer struct {
		Name **string
	}

	type unknownOption struct {
		Name string `tag:"name,yaml"`
	}

	type mismatchedOption struct {
		Name string `tag:"name,bool"`
	}

	type notManual struct {
		Count int `tag:"count,manual"`
	}

	type duplicateKey struct {
		A string `tag:"key"`
		B string `tag:"key"`
	}

	tests := []struct {
		name string
		fn   func() error
		want string
	}{
		{
			name: "no strategy",
			fn:   func() error { _, err := SchemaOf[noStrategy](); return err },
			want: "tags: schema noStrategy, field Count: no encoding strategy for int: declare json or cbor",
		},
		{
			name: "pointer to pointer",
			fn:   func() error { _, err := SchemaOf[pointerToPointer](); return err },
			want: "tags: schema pointerToPointer, field Name: pointer to pointer fields are not supported",
		},
		{
			name: "unknown option",
			fn:   func() error { _, err := SchemaOf[unknownOption](); return err },
			want: `tags: schema unknownOption, field Name: unknown strategy "yaml"`,
		},
		{
			name: "mismatched option",
			fn:   func() error { _, err := SchemaOf[mismatchedOption](); return err },
			want: "tags: schema mismatchedOption, field Name: bool strategy needs a bool kind, got string",
		},
		{
			name: "not manual",
			fn:   func() error { _, err := SchemaOf[notManual](); return err },
			want: "tags: schema notManual, field Count: " +
				"manual strategy needs int to implement ValueMarshaler and *int ValueUnmarshaler",
		},
		{
			name: "duplicate key",
			fn:   func() error { _, err := SchemaOf[duplicateKey](); return err },
			want: `tags: schema duplicateKey, field B: tag key "key" already used by field A`,
		},
		{
			name: "not a struct",
			fn:   func() error { _, err := SchemaOf[string](); return err },
			want: "tags: schema string: string is not a struct",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := tt.fn()
			require.Error(t, err)
			assert.EqualError(t, err, tt.want)
			assert.True(t, errors.Is(err, ErrInvalidSchema))
		})
	}

	_, err := SchemaOf[noStrategy]()
	assert.ErrorIs(t, err, errUnsupportedStrategy)

	_, err = Unmarshal[noStrategy](NewTagList())
	assert.ErrorIs(t, err, ErrInvalidSchema)
	assert.Panics(t, func() { Marshal(noStrategy{}) })
}
