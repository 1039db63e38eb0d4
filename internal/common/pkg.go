package common

import (
	"path"
	"strings"
)

// UnknownStr is the String form of unrecognized enum values.
const UnknownStr = "unknown"

// ToolName identifies the generator in the header of its files.
const ToolName = "tagmapper-gen"

// GeneratedHeader is the first line of every generated file. The loader
// ignores the declarations of files starting with it.
const GeneratedHeader = "// Code generated by " + ToolName + ". DO NOT EDIT."

// PkgAlias returns the package alias (last element of path) for a given package path.
// Returns empty string if pkgPath is empty.
func PkgAlias(pkgPath string) string {
	if pkgPath == "" {
		return ""
	}

	return path.Base(pkgPath)
}

// GeneratedFilename returns the file name of the tag code generated for typeName.
func GeneratedFilename(typeName string) string {
	return strings.ToLower(typeName) + "_tags_gen.go"
}
