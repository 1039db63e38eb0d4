// Package fleet holds structs exercising the planner, valid and invalid.
package fleet

import (
	"errors"

	"tagmapper/tags"
)

type Role string

func (r Role) MarshalTagValue() tags.RawTagValue { return tags.RawTagValue(r) }

func (r *Role) UnmarshalTagValue(value tags.RawTagValue) error {
	if value == "" {
		return errors.New("empty role")
	}

	*r = Role(value)

	return nil
}

type Zone string

//tagmapper:generate
type Host struct {
	Name        string            `tag:"Name"`
	Role        Role              `tag:"role"`
	Zone        Zone
	Maintenance bool              `tag:"maintenance"`
	Weight      *int              `tag:"weight,json"`
	Meta        map[string]string `tag:"meta,cbor"`
	Owner       *string           `tag:",string"`
	Scratch     string            `tag:"-"`

	secret string
}

//tagmapper:generate
type Broken struct {
	Count  int
	Name   string   `tag:"name,bool"`
	Double **string `tag:"double"`
	Extra  string   `tag:"extra,json,cbor"`
	Label  string   `tag:"label"`
	Alias  string   `tag:"label"`
	Format string   `tag:"format,yaml"`
	Hook   func()   `tag:"hook,json"`
}

type Router struct {
	Hostname string `tag:"hostname"`
	Ports    []int  `tag:"ports,json"`
	Primary  bool
	Debug    bool
}
