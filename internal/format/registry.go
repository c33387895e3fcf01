package format

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
)

// ErrUnknownFormat is returned when a name or file extension matches no registered format.
var ErrUnknownFormat = errors.New("unknown format")

// Format describes a single registered export format.
type Format struct {
	Exporter      Exporter // Renders the attribute tree
	Name          string   // Human readable name e.g. "XML"
	Description   string   // One line description shown in help and prompts
	Extensions    []string // File extensions without the dot, the first is canonical
	HandlesRemote bool     // Whether the destination may be a remote (URI) path
}

// Key returns the lowercase name of the format, as used on the command line.
func (f Format) Key() string {
	return strings.ToLower(f.Name)
}

// Extension returns the canonical file extension of the format, including the dot.
func (f Format) Extension() string {
	return "." + f.Extensions[0]
}

// All returns every registered format in a stable order.
func All() []Format {
	return []Format{
		{
			Name:          "XML",
			Description:   "Exports image attributes as XML (.xml)",
			Extensions:    []string{"xml"},
			HandlesRemote: true,
			Exporter:      XMLExporter{},
		},
		{
			Name:          "JSON",
			Description:   "Exports image attributes as JSON (.json)",
			Extensions:    []string{"json"},
			HandlesRemote: true,
			Exporter:      JSONExporter{},
		},
		{
			Name:          "YAML",
			Description:   "Exports image attributes as YAML (.yaml)",
			Extensions:    []string{"yaml", "yml"},
			HandlesRemote: true,
			Exporter:      YAMLExporter{},
		},
	}
}

// Names returns the command line names of every registered format.
func Names() []string {
	formats := All()

	names := make([]string, 0, len(formats))
	for _, format := range formats {
		names = append(names, format.Key())
	}

	return names
}

// ByName returns the format registered under name, ignoring case.
func ByName(name string) (Format, error) {
	for _, format := range All() {
		if strings.EqualFold(format.Name, name) {
			return format, nil
		}
	}

	return Format{}, fmt.Errorf("%w %q, allowed values are %s", ErrUnknownFormat, name, strings.Join(Names(), ", "))
}

// ByPath returns the format whose extensions match the extension of path, ignoring case.
func ByPath(path string) (Format, error) {
	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".")
	if ext == "" {
		return Format{}, fmt.Errorf("%w: %s has no file extension", ErrUnknownFormat, path)
	}

	for _, format := range All() {
		for _, candidate := range format.Extensions {
			if candidate == ext {
				return format, nil
			}
		}
	}

	return Format{}, fmt.Errorf("%w: no format for extension .%s", ErrUnknownFormat, ext)
}
