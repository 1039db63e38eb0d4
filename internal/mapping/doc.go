// Package mapping provides the YAML configuration of the generator:
// parsing, defaults and validation against the analyzed package.
//
// The configuration pins tag keys and strategies for structs whose source
// cannot or should not carry `tag` struct tags, for example types shared
// with other serializers.
//
// # Schema Overview
//
//	version: "1"
//	types:
//	  - name: Volume
//	    # Field to tag key; defaults to the struct tag key or field name
//	    keys:
//	      ID: volume-id
//	    # Field to strategy: string, bool, manual, json or cbor
//	    strategies:
//	      Labels: cbor
//	    # Fields that are never encoded; a single name is also accepted
//	    ignore:
//	      - Cache
//
// # Priority Order
//
// For every field the configuration wins over the `tag` struct tag, which
// wins over inference from the field type.
package mapping
