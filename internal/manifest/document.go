package manifest

import (
	"encoding/json"
	"fmt"
	"strconv"

	"go.followtheprocess.codes/imgattr/internal/document"
)

// Document returns img as a [document.Image], with every default applied and every
// derived attribute filled in.
//
// The selections are resolved by name here, so naming an item that does not exist is
// an error. img should already have passed [Image.Validate].
func (img *Image) Document() (document.Image, error) {
	doc := &imageDoc{
		name:       img.Name,
		width:      img.Width,
		height:     img.Height,
		baseType:   img.BaseType,
		precision:  img.Precision,
		unit:       img.Unit,
		resolution: [2]float64{DefaultResolution, DefaultResolution},
	}

	if doc.baseType == "" {
		doc.baseType = document.RGB
		if len(img.Colormap) != 0 {
			doc.baseType = document.Indexed
		}
	}

	if doc.precision == "" {
		doc.precision = document.U8NonLinear
	}

	if doc.unit == "" {
		doc.unit = DefaultUnit
	}

	if len(img.Resolution) == 2 { //nolint:mnd // x and y
		doc.resolution = [2]float64{img.Resolution[0], img.Resolution[1]}
	}

	if doc.baseType == document.Indexed {
		doc.palette = make([]document.PaletteEntry, 0, len(img.Colormap))
		for _, entry := range img.Colormap {
			doc.palette = append(doc.palette, document.PaletteEntry{R: uint8(entry[0]), G: uint8(entry[1]), B: uint8(entry[2])})
		}
	}

	componentSize, err := doc.precision.ComponentSize()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalid, err)
	}

	b := builder{image: doc, componentSize: componentSize}

	for _, layer := range img.Layers {
		doc.layers = append(doc.layers, b.layer(layer))
	}

	for _, channel := range img.Channels {
		doc.channels = append(doc.channels, b.channel(channel, document.KindChannel))
	}

	for _, path := range img.Paths {
		doc.paths = append(doc.paths, b.path(path))
	}

	if err := b.selections(img.Selected); err != nil {
		return nil, err
	}

	return doc, nil
}

// builder turns manifest items into document items, recording every drawable by name
// as it goes so selections can be resolved afterwards.
type builder struct {
	image         *imageDoc
	layers        []*layerDoc
	channels      []*channelDoc // Custom channels and layer masks
	paths         []*pathDoc
	componentSize int
}

func (b *builder) item(src Item, kind document.ItemKind) itemDoc {
	visible := true
	if src.Visible != nil {
		visible = *src.Visible
	}

	tag := src.ColorTag
	if tag == "" {
		tag = document.TagNone
	}

	return itemDoc{
		kind:           kind,
		name:           src.Name,
		colorTag:       tag,
		expanded:       src.Expanded,
		lockContent:    src.LockContent,
		lockPosition:   src.LockPosition,
		lockVisibility: src.LockVisibility,
		visible:        visible,
	}
}

func (b *builder) drawable(item itemDoc, src Drawable, imageType document.ImageType) drawableDoc {
	d := drawableDoc{
		itemDoc:   item,
		width:     b.image.width,
		height:    b.image.height,
		hasAlpha:  src.HasAlpha,
		imageType: imageType,
		bpp:       b.componentSize * imageType.Components(),
	}

	if src.Width != nil {
		d.width = *src.Width
	}

	if src.Height != nil {
		d.height = *src.Height
	}

	if len(src.Offsets) == 2 { //nolint:mnd // x and y
		d.x, d.y = src.Offsets[0], src.Offsets[1]
	}

	d.filters = make([]document.Filter, 0, len(src.Filters))
	for _, filter := range src.Filters {
		d.filters = append(d.filters, b.filter(filter))
	}

	return d
}

func (b *builder) layer(src Layer) *layerDoc {
	kind := src.Type
	if kind == "" {
		kind = document.KindLayer
	}

	if len(src.Children) != 0 {
		kind = document.KindGroupLayer
	}

	imageType := document.ImageTypeOf(b.image.baseType, src.HasAlpha)

	l := &layerDoc{
		drawableDoc:    b.drawable(b.item(src.Item, kind), src.Drawable, imageType),
		applyMask:      src.ApplyMask,
		blendSpace:     orDefault(src.BlendSpace, document.SpaceAuto),
		compositeMode:  orDefault(src.CompositeMode, document.CompositeAuto),
		compositeSpace: orDefault(src.CompositeSpace, document.SpaceAuto),
		editMask:       src.EditMask,
		floatingSel:    src.FloatingSel,
		lockAlpha:      src.LockAlpha,
		mode:           orDefault(src.Mode, document.ModeNormal),
		opacity:        DefaultLayerOpacity,
		showMask:       src.ShowMask,
	}

	if src.Opacity != nil {
		l.opacity = *src.Opacity
	}

	b.layers = append(b.layers, l)

	if src.Mask != nil {
		l.mask = b.channel(*src.Mask, document.KindLayerMask)
	}

	for _, child := range src.Children {
		l.children = append(l.children, b.layer(child))
	}

	return l
}

func (b *builder) channel(src Channel, kind document.ItemKind) *channelDoc {
	c := &channelDoc{
		drawableDoc: b.drawable(b.item(src.Item, kind), src.Drawable, document.GrayImage),
		color:       document.Color{A: 1},
		opacity:     DefaultLayerOpacity,
		showMasked:  src.ShowMasked,
	}

	// A channel holds a single component whatever it claims
	c.hasAlpha = false
	c.bpp = b.componentSize

	if len(src.Color) >= rgb {
		c.color.R, c.color.G, c.color.B = src.Color[0], src.Color[1], src.Color[2]
	}

	if len(src.Color) == rgba {
		c.color.A = src.Color[3]
	}

	if src.Opacity != nil {
		c.opacity = *src.Opacity
	}

	b.channels = append(b.channels, c)

	return c
}

func (b *builder) path(src Path) *pathDoc {
	p := &pathDoc{itemDoc: b.item(src.Item, document.KindPath)}

	for i, stroke := range src.Strokes {
		id := stroke.ID
		if id == 0 {
			id = i + 1
		}

		p.strokes = append(p.strokes, document.Stroke{
			ID:     id,
			Type:   orDefault(stroke.Type, document.StrokeBezier),
			Points: stroke.Points,
			Closed: stroke.Closed,
		})
	}

	b.paths = append(b.paths, p)

	return p
}

func (b *builder) filter(src Filter) *filterDoc {
	f := &filterDoc{
		name:      src.Name,
		operation: src.Operation,
		blendMode: orDefault(src.BlendMode, document.ModeReplace),
		opacity:   DefaultFilterOpacity,
		visible:   true,
	}

	if f.name == "" {
		f.name = src.Operation
	}

	if src.Opacity != nil {
		f.opacity = *src.Opacity
	}

	if src.Visible != nil {
		f.visible = *src.Visible
	}

	for _, parameter := range src.Parameters {
		f.config = append(f.config, document.Property{Name: parameter.Name, Value: parameterValue(parameter)})
	}

	return f
}

// selections resolves the names in selection against everything built so far.
func (b *builder) selections(selection Selection) error {
	var err error

	b.image.selectedLayers, err = resolve[*layerDoc, document.Layer](selection.Layers, "selected.layers", b.layers)
	if err != nil {
		return err
	}

	b.image.selectedChannels, err = resolve[*channelDoc, document.Channel](
		selection.Channels,
		"selected.channels",
		b.channels,
	)
	if err != nil {
		return err
	}

	drawables := make([]named, 0, len(b.layers)+len(b.channels))
	for _, layer := range b.layers {
		drawables = append(drawables, layer)
	}

	for _, channel := range b.channels {
		drawables = append(drawables, channel)
	}

	b.image.selectedDrawables, err = resolve[named, document.Drawable](
		selection.Drawables,
		"selected.drawables",
		drawables,
	)
	if err != nil {
		return err
	}

	b.image.selectedPaths, err = resolve[*pathDoc, document.Path](selection.Paths, "selected.paths", b.paths)
	if err != nil {
		return err
	}

	return nil
}

// named is anything with a name known up front.
type named interface {
	document.Item
	label() string
}

// resolve looks up every name in candidates, the first item with a matching name wins.
// An empty name resolves to a nil item.
func resolve[T named, I document.Item](names []string, path string, candidates []T) ([]I, error) {
	resolved := make([]I, 0, len(names))

outer:
	for i, name := range names {
		if name == "" {
			var missing I
			resolved = append(resolved, missing)

			continue
		}

		for _, candidate := range candidates {
			if candidate.label() == name {
				item, ok := any(candidate).(I)
				if !ok {
					break
				}

				resolved = append(resolved, item)

				continue outer
			}
		}

		return nil, fmt.Errorf("%w: %s[%d]: no item named %q", ErrInvalid, path, i, name)
	}

	return resolved, nil
}

// parameterValue converts a decoded parameter to a [document.Property] value.
func parameterValue(p Parameter) any {
	if p.Enum != "" {
		return document.Enum(p.Enum)
	}

	switch v := p.Value.(type) {
	case json.Number:
		return number(v)
	case int64:
		return int(v)
	case []any:
		if color, ok := colorOf(v); ok {
			return color
		}

		return fmt.Sprint(v)
	default:
		return v
	}
}

// number converts a JSON number to an int (uint64 past the int range) if it is one,
// a float otherwise.
func number(n json.Number) any {
	if i, err := strconv.Atoi(n.String()); err == nil {
		return i
	}

	if u, err := strconv.ParseUint(n.String(), 10, 64); err == nil {
		return u
	}

	if f, err := n.Float64(); err == nil {
		return f
	}

	return n.String()
}

// colorOf reads a list of 3 or 4 numbers as a colour.
func colorOf(list []any) (document.Color, bool) {
	if len(list) != rgb && len(list) != rgba {
		return document.Color{}, false
	}

	components := []float64{0, 0, 0, 1}

	for i, v := range list {
		switch v := v.(type) {
		case float64:
			components[i] = v
		case int:
			components[i] = float64(v)
		case int64:
			components[i] = float64(v)
		case json.Number:
			f, err := v.Float64()
			if err != nil {
				return document.Color{}, false
			}

			components[i] = f
		default:
			return document.Color{}, false
		}
	}

	return document.Color{R: components[0], G: components[1], B: components[2], A: components[3]}, true
}

// orDefault returns v, or fallback if v is empty.
func orDefault[T ~string](v, fallback T) T {
	if v == "" {
		return fallback
	}

	return v
}
