package manifest

import (
	"fmt"
	"slices"

	"go.followtheprocess.codes/imgattr/internal/document"
	"go.followtheprocess.codes/imgattr/internal/value"
)

const (
	maxLayerOpacity = 100.0
	maxColor        = 255
	rgb             = 3
	rgba            = 4
)

//nolint:gochecknoglobals // Lookup tables, read only
var (
	baseTypes = []document.BaseType{document.RGB, document.Gray, document.Indexed}
	colorTags = []document.ColorTag{
		document.TagNone,
		document.TagBlue,
		document.TagGreen,
		document.TagYellow,
		document.TagOrange,
		document.TagBrown,
		document.TagRed,
		document.TagViolet,
		document.TagGray,
	}
	layerTypes = []document.ItemKind{document.KindLayer, document.KindGroupLayer, document.KindTextLayer}
)

// invalid returns an [ErrInvalid] for the item at path.
func invalid(path, format string, args ...any) error {
	return fmt.Errorf("%w: %s: %s", ErrInvalid, path, fmt.Sprintf(format, args...))
}

// Validate reports the first problem with img, naming the path of the offending item
// e.g. "layers[0].children[2].opacity". Omitted values are never an error.
func (img *Image) Validate() error {
	if img.Width <= 0 {
		return invalid("width", "must be positive, got %d", img.Width)
	}

	if img.Height <= 0 {
		return invalid("height", "must be positive, got %d", img.Height)
	}

	if img.BaseType != "" && !slices.Contains(baseTypes, img.BaseType) {
		return invalid("base_type", "unknown base type %q", img.BaseType)
	}

	if img.Precision != "" {
		if _, err := img.Precision.ComponentSize(); err != nil {
			return invalid("precision", "%v", err)
		}
	}

	if err := checkPair(img.Resolution, "resolution"); err != nil {
		return err
	}

	for _, res := range img.Resolution {
		if res <= 0 || !value.IsFinite(res) {
			return invalid("resolution", "must be positive, got %v", res)
		}
	}

	if err := img.validateColormap(); err != nil {
		return err
	}

	for i, layer := range img.Layers {
		if err := layer.validate(fmt.Sprintf("layers[%d]", i)); err != nil {
			return err
		}
	}

	for i, channel := range img.Channels {
		if err := channel.validate(fmt.Sprintf("channels[%d]", i)); err != nil {
			return err
		}
	}

	for i, path := range img.Paths {
		if err := path.validate(fmt.Sprintf("paths[%d]", i)); err != nil {
			return err
		}
	}

	return nil
}

func (img *Image) validateColormap() error {
	if len(img.Colormap) == 0 {
		return nil
	}

	if img.BaseType != "" && img.BaseType != document.Indexed {
		return invalid("colormap", "only an INDEXED image has a colormap, this one is %s", img.BaseType)
	}

	for i, entry := range img.Colormap {
		if len(entry) != rgb {
			return invalid(fmt.Sprintf("colormap[%d]", i), "want [r, g, b], got %d components", len(entry))
		}

		for _, component := range entry {
			if component < 0 || component > maxColor {
				return invalid(fmt.Sprintf("colormap[%d]", i), "component %d out of range [0, 255]", component)
			}
		}
	}

	return nil
}

func (i Item) validate(path string) error {
	if i.Name == "" {
		return invalid(path, "missing name")
	}

	if i.ColorTag != "" && !slices.Contains(colorTags, i.ColorTag) {
		return invalid(path+".color_tag", "unknown color tag %q", i.ColorTag)
	}

	return nil
}

func (d Drawable) validate(path string) error {
	if d.Width != nil && *d.Width <= 0 {
		return invalid(path+".width", "must be positive, got %d", *d.Width)
	}

	if d.Height != nil && *d.Height <= 0 {
		return invalid(path+".height", "must be positive, got %d", *d.Height)
	}

	if err := checkPair(d.Offsets, path+".offsets"); err != nil {
		return err
	}

	for i, filter := range d.Filters {
		if err := filter.validate(fmt.Sprintf("%s.filters[%d]", path, i)); err != nil {
			return err
		}
	}

	return nil
}

func (l Layer) validate(path string) error {
	if err := l.Item.validate(path); err != nil {
		return err
	}

	if err := l.Drawable.validate(path); err != nil {
		return err
	}

	if l.Type != "" && !slices.Contains(layerTypes, l.Type) {
		return invalid(path+".type", "unknown layer type %q", l.Type)
	}

	if err := checkRange(l.Opacity, maxLayerOpacity, path+".opacity"); err != nil {
		return err
	}

	if l.Mask != nil {
		if err := l.Mask.validate(path + ".mask"); err != nil {
			return err
		}
	}

	for i, child := range l.Children {
		if err := child.validate(fmt.Sprintf("%s.children[%d]", path, i)); err != nil {
			return err
		}
	}

	return nil
}

func (c Channel) validate(path string) error {
	if err := c.Item.validate(path); err != nil {
		return err
	}

	if err := c.Drawable.validate(path); err != nil {
		return err
	}

	if err := checkRange(c.Opacity, maxLayerOpacity, path+".opacity"); err != nil {
		return err
	}

	if len(c.Color) != 0 {
		if len(c.Color) != rgb && len(c.Color) != rgba {
			return invalid(path+".color", "want [r, g, b] or [r, g, b, a], got %d components", len(c.Color))
		}

		for _, component := range c.Color {
			if component < 0 || component > 1 || !value.IsFinite(component) {
				return invalid(path+".color", "component %v out of range [0, 1]", component)
			}
		}
	}

	return nil
}

func (p Path) validate(path string) error {
	if err := p.Item.validate(path); err != nil {
		return err
	}

	for i, stroke := range p.Strokes {
		if len(stroke.Points)%2 != 0 {
			return invalid(
				fmt.Sprintf("%s.strokes[%d].points", path, i),
				"want x, y pairs, got %d coordinates",
				len(stroke.Points),
			)
		}
	}

	return nil
}

func (f Filter) validate(path string) error {
	if f.Operation == "" {
		return invalid(path, "missing operation")
	}

	if err := checkRange(f.Opacity, 1, path+".opacity"); err != nil {
		return err
	}

	for i, parameter := range f.Parameters {
		if parameter.Name == "" {
			return invalid(fmt.Sprintf("%s.parameters[%d]", path, i), "missing name")
		}

		if parameter.Enum != "" && parameter.Value != nil {
			return invalid(
				fmt.Sprintf("%s.parameters[%d]", path, i),
				"%s sets both value and enum",
				parameter.Name,
			)
		}
	}

	return nil
}

// checkPair reports an error if values is neither omitted nor a pair.
func checkPair[T any](values []T, path string) error {
	if len(values) != 0 && len(values) != 2 {
		return invalid(path, "want [x, y], got %d values", len(values))
	}

	return nil
}

// checkRange reports an error if v is set and outside [0, upper].
func checkRange(v *float64, upper float64, path string) error {
	if v == nil {
		return nil
	}

	if *v < 0 || *v > upper || !value.IsFinite(*v) {
		return invalid(path, "%v out of range [0, %v]", *v, upper)
	}

	return nil
}
