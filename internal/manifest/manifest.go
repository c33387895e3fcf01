// Package manifest implements a document host backed by a plain description of a layered
// image, written as YAML, JSON or TOML.
//
// A manifest only has to spell out what differs from the defaults: items are visible,
// layers fully opaque and drawables cover the whole canvas unless told otherwise. Derived
// attributes such as bytes per pixel and image type are computed from the image's base
// type and precision so a manifest can never contradict itself.
package manifest

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"go.followtheprocess.codes/imgattr/internal/document"
	"go.yaml.in/yaml/v4"
)

// ErrInvalid is returned, wrapped with the offending item path, when a manifest fails validation.
var ErrInvalid = errors.New("invalid manifest")

// Defaults applied to anything a manifest leaves out.
const (
	DefaultUnit          = "inches"
	DefaultResolution    = 72.0
	DefaultLayerOpacity  = 100.0
	DefaultFilterOpacity = 1.0
)

// Syntax is the language a manifest is written in.
type Syntax string

const (
	SyntaxYAML Syntax = "yaml"
	SyntaxJSON Syntax = "json"
	SyntaxTOML Syntax = "toml"
)

// SyntaxOf returns the manifest syntax implied by the extension of path and whether
// path looks like a manifest at all.
func SyntaxOf(path string) (Syntax, bool) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return SyntaxYAML, true
	case ".json":
		return SyntaxJSON, true
	case ".toml":
		return SyntaxTOML, true
	default:
		return "", false
	}
}

// Image is the description of a whole image document.
type Image struct {
	Name       string             `json:"name"       toml:"name"       yaml:"name"`
	BaseType   document.BaseType  `json:"base_type"  toml:"base_type"  yaml:"base_type"`
	Precision  document.Precision `json:"precision"  toml:"precision"  yaml:"precision"`
	Unit       string             `json:"unit"       toml:"unit"       yaml:"unit"`
	Resolution []float64          `json:"resolution" toml:"resolution" yaml:"resolution"`
	Colormap   [][]int            `json:"colormap"   toml:"colormap"   yaml:"colormap"`
	Layers     []Layer            `json:"layers"     toml:"layers"     yaml:"layers"`
	Channels   []Channel          `json:"channels"   toml:"channels"   yaml:"channels"`
	Paths      []Path             `json:"paths"      toml:"paths"      yaml:"paths"`
	Selected   Selection          `json:"selected"   toml:"selected"   yaml:"selected"`
	Width      int                `json:"width"      toml:"width"      yaml:"width"`
	Height     int                `json:"height"     toml:"height"     yaml:"height"`
}

// Selection names the currently selected items of an image.
//
// An empty name stands for a selected item that no longer exists and is reported as null.
type Selection struct {
	Layers    Names `json:"layers"    toml:"layers"    yaml:"layers"`
	Channels  Names `json:"channels"  toml:"channels"  yaml:"channels"`
	Drawables Names `json:"drawables" toml:"drawables" yaml:"drawables"`
	Paths     Names `json:"paths"     toml:"paths"     yaml:"paths"`
}

// Names is a list of item names, null entries decode to the empty name.
type Names []string

// UnmarshalYAML implements [yaml.Unmarshaler] for [Names], keeping null entries
// in place as empty names.
func (n *Names) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.ScalarNode && node.ShortTag() == "!!null" {
		*n = nil
		return nil
	}

	if node.Kind != yaml.SequenceNode {
		return fmt.Errorf("line %d: want a list of item names", node.Line)
	}

	names := make(Names, 0, len(node.Content))
	for _, item := range node.Content {
		if item.Kind == yaml.ScalarNode && item.ShortTag() == "!!null" {
			names = append(names, "")
			continue
		}

		var name string
		if err := item.Decode(&name); err != nil {
			return err
		}

		names = append(names, name)
	}

	*n = names

	return nil
}

// Item holds the attributes shared by every kind of item.
type Item struct {
	Visible        *bool             `json:"visible"         toml:"visible"         yaml:"visible"`
	Name           string            `json:"name"            toml:"name"            yaml:"name"`
	ColorTag       document.ColorTag `json:"color_tag"       toml:"color_tag"       yaml:"color_tag"`
	Expanded       bool              `json:"expanded"        toml:"expanded"        yaml:"expanded"`
	LockContent    bool              `json:"lock_content"    toml:"lock_content"    yaml:"lock_content"`
	LockPosition   bool              `json:"lock_position"   toml:"lock_position"   yaml:"lock_position"`
	LockVisibility bool              `json:"lock_visibility" toml:"lock_visibility" yaml:"lock_visibility"`
}

// Drawable holds the attributes shared by layers, channels and masks.
type Drawable struct {
	Width    *int     `json:"width"     toml:"width"     yaml:"width"`
	Height   *int     `json:"height"    toml:"height"    yaml:"height"`
	Offsets  []int    `json:"offsets"   toml:"offsets"   yaml:"offsets"`
	Filters  []Filter `json:"filters"   toml:"filters"   yaml:"filters"`
	HasAlpha bool     `json:"has_alpha" toml:"has_alpha" yaml:"has_alpha"`
}

// Layer describes a layer, a text layer or a layer group.
//
// A layer with children is a group whatever its type says.
type Layer struct {
	Item     `yaml:",inline"`
	Drawable `yaml:",inline"`

	Opacity        *float64               `json:"opacity"         toml:"opacity"         yaml:"opacity"`
	Mask           *Channel               `json:"mask"            toml:"mask"            yaml:"mask"`
	Type           document.ItemKind      `json:"type"            toml:"type"            yaml:"type"`
	BlendSpace     document.ColorSpace    `json:"blend_space"     toml:"blend_space"     yaml:"blend_space"`
	CompositeMode  document.CompositeMode `json:"composite_mode"  toml:"composite_mode"  yaml:"composite_mode"`
	CompositeSpace document.ColorSpace    `json:"composite_space" toml:"composite_space" yaml:"composite_space"`
	Mode           document.LayerMode     `json:"mode"            toml:"mode"            yaml:"mode"`
	Children       []Layer                `json:"children"        toml:"children"        yaml:"children"`
	ApplyMask      bool                   `json:"apply_mask"      toml:"apply_mask"      yaml:"apply_mask"`
	EditMask       bool                   `json:"edit_mask"       toml:"edit_mask"       yaml:"edit_mask"`
	FloatingSel    bool                   `json:"is_floating_sel" toml:"is_floating_sel" yaml:"is_floating_sel"`
	LockAlpha      bool                   `json:"lock_alpha"      toml:"lock_alpha"      yaml:"lock_alpha"`
	ShowMask       bool                   `json:"show_mask"       toml:"show_mask"       yaml:"show_mask"`
}

// Channel describes a custom channel or a layer mask.
type Channel struct {
	Item     `yaml:",inline"`
	Drawable `yaml:",inline"`

	Opacity    *float64  `json:"opacity"     toml:"opacity"     yaml:"opacity"`
	Color      []float64 `json:"color"       toml:"color"       yaml:"color"`
	ShowMasked bool      `json:"show_masked" toml:"show_masked" yaml:"show_masked"`
}

// Path describes a vector path.
type Path struct {
	Item `yaml:",inline"`

	Strokes []Stroke `json:"strokes" toml:"strokes" yaml:"strokes"`
}

// Stroke is a single stroke of a path. A zero ID is replaced by the stroke's
// position in its path, counting from 1.
type Stroke struct {
	Type   document.StrokeType `json:"type"   toml:"type"   yaml:"type"`
	Points []float64           `json:"points" toml:"points" yaml:"points"`
	ID     int                 `json:"id"     toml:"id"     yaml:"id"`
	Closed bool                `json:"closed" toml:"closed" yaml:"closed"`
}

// Filter describes a non-destructive filter applied to a drawable.
type Filter struct {
	Opacity    *float64           `json:"opacity"    toml:"opacity"    yaml:"opacity"`
	Visible    *bool              `json:"visible"    toml:"visible"    yaml:"visible"`
	Name       string             `json:"name"       toml:"name"       yaml:"name"`
	Operation  string             `json:"operation"  toml:"operation"  yaml:"operation"`
	BlendMode  document.LayerMode `json:"blend_mode" toml:"blend_mode" yaml:"blend_mode"`
	Parameters []Parameter        `json:"parameters" toml:"parameters" yaml:"parameters"`
}

// Parameter is a single filter configuration property.
//
// Value is a scalar, or a list of 3 or 4 numbers which is read as an RGB(A) colour.
// Enumerated options set Enum to the option name instead of setting Value.
type Parameter struct {
	Value any    `json:"value" toml:"value" yaml:"value"`
	Name  string `json:"name"  toml:"name"  yaml:"name"`
	Enum  string `json:"enum"  toml:"enum"  yaml:"enum"`
}

// Load reads and validates the manifest at path, the syntax is chosen by its extension.
func Load(path string) (*Image, error) {
	syntax, ok := SyntaxOf(path)
	if !ok {
		return nil, fmt.Errorf("could not load %s: unsupported manifest extension %q", path, filepath.Ext(path))
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("could not open manifest: %w", err)
	}
	defer f.Close()

	img, err := Decode(f, syntax)
	if err != nil {
		return nil, fmt.Errorf("could not load %s: %w", path, err)
	}

	if img.Name == "" {
		img.Name = filepath.Base(path)
	}

	if err := img.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return img, nil
}

// Decode reads a manifest written in syntax from r. Unknown keys are an error.
//
// The result is not validated, see [Image.Validate].
func Decode(r io.Reader, syntax Syntax) (*Image, error) {
	img := &Image{}

	switch syntax {
	case SyntaxYAML:
		decoder := yaml.NewDecoder(r)
		decoder.KnownFields(true)

		if err := decoder.Decode(img); err != nil && !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("could not decode YAML manifest: %w", err)
		}
	case SyntaxJSON:
		decoder := json.NewDecoder(r)
		decoder.DisallowUnknownFields()
		decoder.UseNumber()

		if err := decoder.Decode(img); err != nil {
			return nil, fmt.Errorf("could not decode JSON manifest: %w", err)
		}
	case SyntaxTOML:
		meta, err := toml.NewDecoder(r).Decode(img)
		if err != nil {
			return nil, fmt.Errorf("could not decode TOML manifest: %w", err)
		}

		if undecoded := meta.Undecoded(); len(undecoded) != 0 {
			return nil, fmt.Errorf("could not decode TOML manifest: unknown key %q", undecoded[0].String())
		}
	default:
		return nil, fmt.Errorf("unknown manifest syntax %q", syntax)
	}

	return img, nil
}
