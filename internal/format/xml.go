package format

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"go.followtheprocess.codes/imgattr/internal/value"
)

// itemTag is the element name used for every container inside a sequence.
const itemTag = "item"

// voidTags are the HTML elements written without a closing tag.
//
//nolint:gochecknoglobals // Lookup table, read only
var voidTags = map[string]bool{
	"area":     true,
	"base":     true,
	"basefont": true,
	"br":       true,
	"col":      true,
	"embed":    true,
	"frame":    true,
	"hr":       true,
	"img":      true,
	"input":    true,
	"isindex":  true,
	"link":     true,
	"meta":     true,
	"param":    true,
	"source":   true,
	"track":    true,
	"wbr":      true,
}

// textEscaper escapes element text. Quotes are left alone, as in HTML character data.
//
//nolint:gochecknoglobals // Having the replacer as a global means it's built only once
var textEscaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;")

// XMLExporter is an [Exporter] that renders attribute trees as pretty printed XML
// with HTML style tag emission.
//
// The root element is <image>. Every nested element sits on its own line indented by
// four spaces per level and closing tags of containers line up with their opening tag.
type XMLExporter struct{}

// Export implements [Exporter] for [XMLExporter].
func (x XMLExporter) Export(w io.Writer, tree *value.Mapping) error {
	image, err := imageOf(tree)
	if err != nil {
		return err
	}

	buf := &bytes.Buffer{}

	buf.WriteString("<" + RootKey + ">")

	if image.Len() == 0 {
		buf.WriteString("\n")
	} else {
		buf.WriteString("\n" + padding(1))
	}

	if err := x.children(buf, image, 1); err != nil {
		return err
	}

	buf.WriteString("</" + RootKey + ">")

	_, err = w.Write(buf.Bytes())

	return err
}

// children writes every child of the normalised container v at depth.
func (x XMLExporter) children(buf *bytes.Buffer, v any, depth int) error {
	switch v := v.(type) {
	case *value.Mapping:
		i, last := 0, v.Len()-1
		for key, child := range v.All() {
			if err := x.element(buf, key, child, depth, i == last); err != nil {
				return fmt.Errorf("%s: %w", key, err)
			}

			i++
		}
	case value.Sequence:
		for i, child := range v {
			if err := x.element(buf, itemTag, child, depth, i == len(v)-1); err != nil {
				return fmt.Errorf("%s[%d]: %w", itemTag, i, err)
			}
		}
	}

	return nil
}

// element writes a single element named tag holding v at depth, followed by the
// whitespace that positions whatever comes next.
func (x XMLExporter) element(buf *bytes.Buffer, tag string, v any, depth int, last bool) error {
	v, kind, err := value.Normalize(v)
	if err != nil {
		return err
	}

	buf.WriteString("<" + tag + ">")

	if kind.IsContainer() {
		if value.Len(v) == 0 {
			buf.WriteString("\n" + padding(depth))
		} else {
			buf.WriteString("\n" + padding(depth+1))
		}

		if err := x.children(buf, v, depth+1); err != nil {
			return err
		}
	} else {
		text := xmlText(v, kind)

		switch strings.ToLower(tag) {
		case "script", "style":
			buf.WriteString(text)
		default:
			buf.WriteString(textEscaper.Replace(text))
		}
	}

	if !voidTags[strings.ToLower(tag)] {
		buf.WriteString("</" + tag + ">")
	}

	if last {
		buf.WriteString("\n" + padding(depth-1))
	} else {
		buf.WriteString("\n" + padding(depth))
	}

	return nil
}

// xmlText returns the element text of a normalised scalar.
func xmlText(v any, kind value.Kind) string {
	switch kind {
	case value.KindBool:
		if v.(bool) {
			return "True"
		}

		return "False"
	case value.KindInt:
		return value.FormatInt(v)
	case value.KindFloat:
		return value.FormatFloat(v.(float64))
	case value.KindString:
		return v.(string)
	default:
		return ""
	}
}
