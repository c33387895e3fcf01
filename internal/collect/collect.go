// Package collect walks a host image document and gathers its attributes into an ordered
// attribute tree, ready to be handed to any of the exporters in package format.
//
// The tree has a single top-level key "image" holding the image attributes, the selections
// and the layer, channel and path trees. Failing to read the document itself is an error but
// a host failing on a single item attribute only nulls that attribute, the failure is logged
// as a warning and collection carries on.
package collect

import (
	"fmt"
	"log/slog"

	"go.followtheprocess.codes/imgattr/internal/document"
	"go.followtheprocess.codes/imgattr/internal/format"
	"go.followtheprocess.codes/imgattr/internal/value"
	"go.followtheprocess.codes/log"
)

// Image collects the attributes of img into a fresh tree of the form {"image": {...}}.
//
// Warnings about attributes the host could not provide are written to logger.
func Image(img document.Image, logger *log.Logger) (*value.Mapping, error) {
	c := collector{logger: logger.Prefixed("collect")}

	attrs, err := c.image(img)
	if err != nil {
		return nil, err
	}

	return value.NewMapping(value.Entry{Key: format.RootKey, Value: attrs}), nil
}

// collector holds the state shared by a single collection.
type collector struct {
	logger *log.Logger
}

// pending is an item whose attributes are still to be collected into attrs.
type pending struct {
	item  document.Item
	attrs *value.Mapping
}

func (c collector) image(img document.Image) (*value.Mapping, error) {
	attrs := value.NewMapping()

	name, err := img.Name()
	if err != nil {
		return nil, fmt.Errorf("could not read image name: %w", err)
	}

	c.logger = c.logger.With(slog.String("image", name))

	width, err := img.Width()
	if err != nil {
		return nil, fmt.Errorf("could not read image width: %w", err)
	}

	height, err := img.Height()
	if err != nil {
		return nil, fmt.Errorf("could not read image height: %w", err)
	}

	baseType, err := img.BaseType()
	if err != nil {
		return nil, fmt.Errorf("could not read image base type: %w", err)
	}

	precision, err := img.Precision()
	if err != nil {
		return nil, fmt.Errorf("could not read image precision: %w", err)
	}

	xres, yres, err := img.Resolution()
	if err != nil {
		return nil, fmt.Errorf("could not read image resolution: %w", err)
	}

	unit, err := img.Unit()
	if err != nil {
		return nil, fmt.Errorf("could not read image unit: %w", err)
	}

	palette, err := img.Palette()
	if err != nil {
		return nil, fmt.Errorf("could not read image palette: %w", err)
	}

	attrs.Set("name", name)
	attrs.Set("width", width)
	attrs.Set("height", height)
	attrs.Set("base_type", string(baseType))
	attrs.Set("precision", string(precision))
	attrs.Set("resolution", value.Sequence{xres, yres})
	attrs.Set("unit", unit)

	if palette != nil {
		colormap := make(value.Sequence, 0, len(palette))
		for _, entry := range palette {
			colormap = append(colormap, value.Sequence{int(entry.R), int(entry.G), int(entry.B)})
		}

		attrs.Set("colormap", colormap)
	}

	if err := c.selections(img, attrs); err != nil {
		return nil, err
	}

	layers, err := img.Layers()
	if err != nil {
		return nil, fmt.Errorf("could not read image layers: %w", err)
	}

	channels, err := img.Channels()
	if err != nil {
		return nil, fmt.Errorf("could not read image channels: %w", err)
	}

	paths, err := img.Paths()
	if err != nil {
		return nil, fmt.Errorf("could not read image paths: %w", err)
	}

	attrs.Set("layers", c.tree(items(layers)))
	attrs.Set("channels", c.tree(items(channels)))
	attrs.Set("paths", c.tree(items(paths)))

	return attrs, nil
}

// selections sets the names of every selected item kind on attrs.
func (c collector) selections(img document.Image, attrs *value.Mapping) error {
	channels, err := img.SelectedChannels()
	if err != nil {
		return fmt.Errorf("could not read selected channels: %w", err)
	}

	drawables, err := img.SelectedDrawables()
	if err != nil {
		return fmt.Errorf("could not read selected drawables: %w", err)
	}

	layers, err := img.SelectedLayers()
	if err != nil {
		return fmt.Errorf("could not read selected layers: %w", err)
	}

	paths, err := img.SelectedPaths()
	if err != nil {
		return fmt.Errorf("could not read selected paths: %w", err)
	}

	attrs.Set("selected_channels", c.names(items(channels)))
	attrs.Set("selected_drawables", c.names(items(drawables)))
	attrs.Set("selected_layers", c.names(items(layers)))
	attrs.Set("selected_paths", c.names(items(paths)))

	return nil
}

// names returns the name of every item, null for a missing item or one whose name
// could not be read.
func (c collector) names(list []document.Item) value.Sequence {
	names := make(value.Sequence, 0, len(list))
	for _, item := range list {
		if item == nil {
			names = append(names, nil)
			continue
		}

		name, err := item.Name()
		if err != nil {
			c.warn("name", err)
			names = append(names, nil)

			continue
		}

		names = append(names, name)
	}

	return names
}

// tree collects the attributes of every item in roots and their descendants.
//
// Items are visited breadth first from a work queue, each one filling the mapping its
// parent reserved for it, so siblings keep their source order and group members end up
// exactly one level below their group.
func (c collector) tree(roots []document.Item) value.Sequence {
	out := make(value.Sequence, 0, len(roots))
	queue := make([]pending, 0, len(roots))

	for _, item := range roots {
		attrs := value.NewMapping()
		out = append(out, attrs)
		queue = append(queue, pending{item: item, attrs: attrs})
	}

	for len(queue) > 0 {
		next := queue[0]
		queue = queue[1:]

		if next.item == nil {
			continue
		}

		c.item(next.item, next.attrs)

		group, err := next.item.IsGroup()
		if err != nil || !group {
			// The failure, if any, was already logged against is_group
			continue
		}

		children, err := next.item.Children()
		if err != nil {
			c.warnItem(next.item, "children", err)
			next.attrs.Set("children", nil)

			continue
		}

		seq := make(value.Sequence, 0, len(children))
		for _, child := range children {
			attrs := value.NewMapping()
			seq = append(seq, attrs)
			queue = append(queue, pending{item: child, attrs: attrs})
		}

		next.attrs.Set("children", seq)
	}

	return out
}

// item fills attrs with the attributes of a single item, according to everything it is.
func (c collector) item(item document.Item, attrs *value.Mapping) {
	set := func(key string, v any, err error) {
		if err != nil {
			c.warnItem(item, key, err)
			attrs.Set(key, nil)

			return
		}

		attrs.Set(key, v)
	}

	colorTag, err := item.ColorTag()
	set("color_tag", string(colorTag), err)

	expanded, err := item.Expanded()
	set("expanded", expanded, err)

	group, err := item.IsGroup()
	set("is_group", group, err)

	lockContent, err := item.LockContent()
	set("lock_content", lockContent, err)

	lockPosition, err := item.LockPosition()
	set("lock_position", lockPosition, err)

	lockVisibility, err := item.LockVisibility()
	set("lock_visibility", lockVisibility, err)

	name, err := item.Name()
	set("name", name, err)

	visible, err := item.Visible()
	set("visible", visible, err)

	attrs.Set("type", string(item.Kind()))

	if drawable, ok := item.(document.Drawable); ok {
		c.drawable(drawable, set)
	}

	if layer, ok := item.(document.Layer); ok {
		c.layer(layer, attrs, set)
	}

	if channel, ok := item.(document.Channel); ok {
		color, err := channel.Color()
		set("color_rgba", floats(color.RGBA()), err)

		opacity, err := channel.Opacity()
		set("opacity", opacity, err)

		showMasked, err := channel.ShowMasked()
		set("show_masked", showMasked, err)
	}

	if path, ok := item.(document.Path); ok {
		strokes, err := path.Strokes()
		set("strokes", strokeList(strokes), err)
	}
}

func (c collector) drawable(drawable document.Drawable, set func(key string, v any, err error)) {
	bpp, err := drawable.BPP()
	set("bpp", bpp, err)

	width, err := drawable.Width()
	set("width", width, err)

	height, err := drawable.Height()
	set("height", height, err)

	x, y, err := drawable.Offsets()
	set("offsets", value.Sequence{x, y}, err)

	alpha, err := drawable.HasAlpha()
	set("has_alpha", alpha, err)

	imageType, err := drawable.ImageType()
	set("image_type", string(imageType), err)

	filters, err := drawable.Filters()
	if err != nil {
		set("filters", nil, err)
		return
	}

	seq := make(value.Sequence, 0, len(filters))
	for _, filter := range filters {
		seq = append(seq, c.filter(drawable, filter))
	}

	set("filters", seq, nil)
}

func (c collector) layer(layer document.Layer, attrs *value.Mapping, set func(key string, v any, err error)) {
	applyMask, err := layer.ApplyMask()
	set("apply_mask", applyMask, err)

	blendSpace, err := layer.BlendSpace()
	set("blend_space", string(blendSpace), err)

	compositeMode, err := layer.CompositeMode()
	set("composite_mode", string(compositeMode), err)

	compositeSpace, err := layer.CompositeSpace()
	set("composite_space", string(compositeSpace), err)

	editMask, err := layer.EditMask()
	set("edit_mask", editMask, err)

	floating, err := layer.IsFloatingSel()
	set("is_floating_sel", floating, err)

	lockAlpha, err := layer.LockAlpha()
	set("lock_alpha", lockAlpha, err)

	mode, err := layer.Mode()
	set("mode", string(mode), err)

	opacity, err := layer.Opacity()
	set("opacity", opacity, err)

	showMask, err := layer.ShowMask()
	set("show_mask", showMask, err)

	mask, err := layer.Mask()
	switch {
	case err != nil:
		set("mask", nil, err)
	case mask != nil:
		// A mask is never a group, it is collected on its own rather than queued
		maskAttrs := value.NewMapping()
		c.item(mask, maskAttrs)
		attrs.Set("mask", maskAttrs)
	}
}

// filter collects a single filter applied to drawable.
func (c collector) filter(drawable document.Drawable, filter document.Filter) *value.Mapping {
	attrs := value.NewMapping()

	set := func(key string, v any, err error) {
		if err != nil {
			c.warnItem(drawable, "filters."+key, err)
			attrs.Set(key, nil)

			return
		}

		attrs.Set(key, v)
	}

	mode, err := filter.BlendMode()
	set("blend_mode", string(mode), err)

	name, err := filter.Name()
	set("name", name, err)

	opacity, err := filter.Opacity()
	set("opacity", opacity, err)

	operation, err := filter.OperationName()
	set("operation_name", operation, err)

	visible, err := filter.Visible()
	set("visible", visible, err)

	config, err := filter.Config()
	if err != nil {
		set("parameters", nil, err)
		return attrs
	}

	parameters := value.NewMapping()
	for _, property := range config {
		parameters.Set(property.Name, Property(property.Value))
	}

	set("parameters", parameters, nil)

	return attrs
}

// Property converts a filter configuration property value to a tree value.
//
// Colours become [r, g, b, a] sequences, enumerations their name and scalars are kept
// as they are. Anything else is recorded in its string form.
func Property(v any) any {
	switch v := v.(type) {
	case document.Color:
		return floats(v.RGBA())
	case document.Enum:
		return string(v)
	case nil, string, bool,
		int, int8, int16, int32, int64,
		uint, uint8, uint16, uint32, uint64,
		float32, float64:
		return v
	case fmt.Stringer:
		return v.String()
	default:
		return fmt.Sprint(v)
	}
}

// strokeList converts the strokes of a path to a sequence of stroke mappings.
func strokeList(strokes []document.Stroke) value.Sequence {
	seq := make(value.Sequence, 0, len(strokes))
	for _, stroke := range strokes {
		seq = append(seq, value.NewMapping(
			value.Entry{Key: "id", Value: stroke.ID},
			value.Entry{Key: "points_type", Value: string(stroke.Type)},
			value.Entry{Key: "points", Value: floats(stroke.Points)},
			value.Entry{Key: "points_closed", Value: stroke.Closed},
		))
	}

	return seq
}

// floats converts a float slice to a sequence.
func floats(values []float64) value.Sequence {
	seq := make(value.Sequence, 0, len(values))
	for _, v := range values {
		seq = append(seq, v)
	}

	return seq
}

// items widens a slice of any item kind to a slice of [document.Item], keeping nil entries nil.
func items[T document.Item](list []T) []document.Item {
	out := make([]document.Item, 0, len(list))
	for _, item := range list {
		var generic document.Item
		if any(item) != nil {
			generic = item
		}

		out = append(out, generic)
	}

	return out
}

func (c collector) warn(attribute string, err error) {
	c.logger.Warn("Could not read attribute", slog.String("attribute", attribute), slog.String("error", err.Error()))
}

func (c collector) warnItem(item document.Item, attribute string, err error) {
	name, nameErr := item.Name()
	if nameErr != nil {
		name = "<unknown>"
	}

	c.logger.Warn(
		"Could not read item attribute",
		slog.String("item", name),
		slog.String("type", string(item.Kind())),
		slog.String("attribute", attribute),
		slog.String("error", err.Error()),
	)
}
