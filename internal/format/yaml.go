package format

import (
	"bytes"
	"fmt"
	"io"
	"strconv"

	"go.followtheprocess.codes/imgattr/internal/value"
)

// listItem is the prefix of every sequence item line.
const listItem = "- "

// YAMLExporter is an [Exporter] that renders attribute trees as a block style YAML document.
//
// The entries of the image mapping are written at the top level. Strings are always single
// quoted, numbers, booleans and null never are. A container inside a sequence is introduced
// by a fixed "- item:" line.
type YAMLExporter struct{}

// Export implements [Exporter] for [YAMLExporter].
func (y YAMLExporter) Export(w io.Writer, tree *value.Mapping) error {
	image, err := imageOf(tree)
	if err != nil {
		return err
	}

	buf := &bytes.Buffer{}

	for key, child := range image.All() {
		if err := y.entry(buf, key, child, 0); err != nil {
			return fmt.Errorf("%s: %w", key, err)
		}
	}

	_, err = w.Write(buf.Bytes())

	return err
}

// entry writes key and its value v at depth.
func (y YAMLExporter) entry(buf *bytes.Buffer, key string, v any, depth int) error {
	v, kind, err := value.Normalize(v)
	if err != nil {
		return err
	}

	if !kind.IsContainer() {
		buf.WriteString(padding(depth) + key + ": " + yamlScalar(v, kind) + "\n")
		return nil
	}

	if value.Len(v) == 0 {
		buf.WriteString(padding(depth) + key + ": " + emptyContainer(kind) + "\n")
		return nil
	}

	buf.WriteString(padding(depth) + key + ":\n")

	return y.children(buf, v, depth+1)
}

// item writes v as a sequence item at depth.
func (y YAMLExporter) item(buf *bytes.Buffer, v any, depth int) error {
	v, kind, err := value.Normalize(v)
	if err != nil {
		return err
	}

	if !kind.IsContainer() {
		buf.WriteString(padding(depth) + listItem + yamlScalar(v, kind) + "\n")
		return nil
	}

	if value.Len(v) == 0 {
		buf.WriteString(padding(depth) + listItem + itemTag + ": " + emptyContainer(kind) + "\n")
		return nil
	}

	buf.WriteString(padding(depth) + listItem + itemTag + ":\n")

	return y.children(buf, v, depth+1)
}

// children writes the children of the normalised, non-empty container v at depth.
func (y YAMLExporter) children(buf *bytes.Buffer, v any, depth int) error {
	switch v := v.(type) {
	case *value.Mapping:
		for key, child := range v.All() {
			if err := y.entry(buf, key, child, depth); err != nil {
				return fmt.Errorf("%s: %w", key, err)
			}
		}
	case value.Sequence:
		for i, child := range v {
			if err := y.item(buf, child, depth); err != nil {
				return fmt.Errorf("[%d]: %w", i, err)
			}
		}
	}

	return nil
}

// emptyContainer returns the flow style text of an empty mapping or sequence.
func emptyContainer(kind value.Kind) string {
	if kind == value.KindMapping {
		return "{}"
	}

	return "[]"
}

// yamlScalar returns the YAML text of a normalised scalar.
//
// Strings are wrapped in single quotes as they are, embedded quotes are not doubled.
func yamlScalar(v any, kind value.Kind) string {
	switch kind {
	case value.KindNull:
		return "null"
	case value.KindBool:
		return strconv.FormatBool(v.(bool))
	case value.KindInt:
		return value.FormatInt(v)
	case value.KindFloat:
		return value.FormatFloat(v.(float64))
	default:
		return "'" + v.(string) + "'"
	}
}
