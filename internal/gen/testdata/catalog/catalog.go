// Package catalog has structs whose generated code needs imports.
package catalog

import (
	"net/netip"
	"time"
)

// tags shadows the runtime package name inside this package.
var tags = map[string]string{}

type Stage string

//tagmapper:generate
type Release struct {
	Version string         `tag:"version"`
	Stage   Stage          `tag:"stage"`
	Date    time.Time      `tag:"date,json"`
	Window  *time.Duration `tag:"window,cbor"`
	Addr    netip.Addr     `tag:"addr,json"`
	Draft   *bool          `tag:"draft"`
}

//tagmapper:generate
type Empty struct{}
