package format

import (
	"encoding/json"
	"io"

	"go.followtheprocess.codes/imgattr/internal/value"
)

// JSONExporter is an [Exporter] that renders attribute trees as indented JSON documents.
type JSONExporter struct{}

// Export implements [Exporter] for [JSONExporter] and renders the whole tree, including
// the top-level "image" key, as a single JSON object.
func (j JSONExporter) Export(w io.Writer, tree *value.Mapping) error {
	if _, err := imageOf(tree); err != nil {
		return err
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "    ")
	encoder.SetEscapeHTML(false)

	return encoder.Encode(tree)
}
