// Package format renders attribute trees as text documents.
//
// Notably, the package provides the [Exporter] interface for doing this in a format-agnostic
// way, the built in XML, JSON and YAML exporters, and a registry describing each format
// to the rest of the program.
package format

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"go.followtheprocess.codes/imgattr/internal/value"
)

// RootKey is the key of the single top-level entry in an attribute tree and the name of
// the XML root element.
const RootKey = "image"

// indent is the number of spaces per nesting level in XML and YAML output.
const indent = 4

// ErrNoImage is returned when an attribute tree has no "image" mapping at its root.
var ErrNoImage = errors.New(`attribute tree has no "image" mapping`)

// Exporter is the interface defining a mechanism for rendering an attribute tree
// into an external format.
type Exporter interface {
	// Export renders tree, written to w.
	//
	// tree is the root mapping produced by the collector, holding a single "image" entry.
	Export(w io.Writer, tree *value.Mapping) error
}

// imageOf returns the mapping stored under [RootKey] in tree.
func imageOf(tree *value.Mapping) (*value.Mapping, error) {
	v, ok := tree.Get(RootKey)
	if !ok {
		return nil, ErrNoImage
	}

	image, ok := v.(*value.Mapping)
	if !ok || image == nil {
		return nil, fmt.Errorf("%w: %q is %T", ErrNoImage, RootKey, v)
	}

	return image, nil
}

// padding returns the whitespace for the given nesting depth.
func padding(depth int) string {
	if depth <= 0 {
		return ""
	}

	return strings.Repeat(" ", depth*indent)
}
