package manifest

import "go.followtheprocess.codes/imgattr/internal/document"

// The document types below never fail, every error return is nil.

type imageDoc struct {
	name              string
	baseType          document.BaseType
	precision         document.Precision
	unit              string
	palette           []document.PaletteEntry
	layers            []document.Layer
	channels          []document.Channel
	paths             []document.Path
	selectedLayers    []document.Layer
	selectedChannels  []document.Channel
	selectedDrawables []document.Drawable
	selectedPaths     []document.Path
	resolution        [2]float64
	width             int
	height            int
}

func (i *imageDoc) Name() (string, error) { return i.name, nil }
func (i *imageDoc) Width() (int, error) { return i.width, nil }
func (i *imageDoc) Height() (int, error) { return i.height, nil }
func (i *imageDoc) BaseType() (document.BaseType, error) { return i.baseType, nil }
func (i *imageDoc) Precision() (document.Precision, error) { return i.precision, nil }
func (i *imageDoc) Unit() (string, error) { return i.unit, nil }
func (i *imageDoc) Palette() ([]document.PaletteEntry, error) { return i.palette, nil }
func (i *imageDoc) Layers() ([]document.Layer, error) { return i.layers, nil }
func (i *imageDoc) Channels() ([]document.Channel, error) { return i.channels, nil }
func (i *imageDoc) Paths() ([]document.Path, error) { return i.paths, nil }

func (i *imageDoc) Resolution() (x, y float64, err error) {
	return i.resolution[0], i.resolution[1], nil
}

func (i *imageDoc) SelectedLayers() ([]document.Layer, error) {
	return i.selectedLayers, nil
}

func (i *imageDoc) SelectedChannels() ([]document.Channel, error) {
	return i.selectedChannels, nil
}

func (i *imageDoc) SelectedDrawables() ([]document.Drawable, error) {
	return i.selectedDrawables, nil
}

func (i *imageDoc) SelectedPaths() ([]document.Path, error) {
	return i.selectedPaths, nil
}

type itemDoc struct {
	kind           document.ItemKind
	name           string
	colorTag       document.ColorTag
	children       []document.Item
	expanded       bool
	lockContent    bool
	lockPosition   bool
	lockVisibility bool
	visible        bool
}

func (i *itemDoc) label() string { return i.name }
func (i *itemDoc) Kind() document.ItemKind { return i.kind }
func (i *itemDoc) Name() (string, error) { return i.name, nil }
func (i *itemDoc) ColorTag() (document.ColorTag, error) { return i.colorTag, nil }
func (i *itemDoc) Expanded() (bool, error) { return i.expanded, nil }
func (i *itemDoc) IsGroup() (bool, error) { return i.kind == document.KindGroupLayer, nil }
func (i *itemDoc) Children() ([]document.Item, error) { return i.children, nil }
func (i *itemDoc) LockContent() (bool, error) { return i.lockContent, nil }
func (i *itemDoc) LockPosition() (bool, error) { return i.lockPosition, nil }
func (i *itemDoc) LockVisibility() (bool, error) { return i.lockVisibility, nil }
func (i *itemDoc) Visible() (bool, error) { return i.visible, nil }

type drawableDoc struct {
	itemDoc

	imageType document.ImageType
	filters   []document.Filter
	width     int
	height    int
	x         int
	y         int
	bpp       int
	hasAlpha  bool
}

func (d *drawableDoc) BPP() (int, error) { return d.bpp, nil }
func (d *drawableDoc) Width() (int, error) { return d.width, nil }
func (d *drawableDoc) Height() (int, error) { return d.height, nil }
func (d *drawableDoc) Offsets() (x, y int, err error) { return d.x, d.y, nil }
func (d *drawableDoc) HasAlpha() (bool, error) { return d.hasAlpha, nil }
func (d *drawableDoc) ImageType() (document.ImageType, error) { return d.imageType, nil }
func (d *drawableDoc) Filters() ([]document.Filter, error) { return d.filters, nil }

type layerDoc struct {
	drawableDoc

	mask           document.Channel
	blendSpace     document.ColorSpace
	compositeMode  document.CompositeMode
	compositeSpace document.ColorSpace
	mode           document.LayerMode
	opacity        float64
	applyMask      bool
	editMask       bool
	floatingSel    bool
	lockAlpha      bool
	showMask       bool
}

func (l *layerDoc) ApplyMask() (bool, error) { return l.applyMask, nil }
func (l *layerDoc) BlendSpace() (document.ColorSpace, error) { return l.blendSpace, nil }
func (l *layerDoc) CompositeMode() (document.CompositeMode, error) { return l.compositeMode, nil }
func (l *layerDoc) CompositeSpace() (document.ColorSpace, error) { return l.compositeSpace, nil }
func (l *layerDoc) EditMask() (bool, error) { return l.editMask, nil }
func (l *layerDoc) IsFloatingSel() (bool, error) { return l.floatingSel, nil }
func (l *layerDoc) LockAlpha() (bool, error) { return l.lockAlpha, nil }
func (l *layerDoc) Mode() (document.LayerMode, error) { return l.mode, nil }
func (l *layerDoc) Opacity() (float64, error) { return l.opacity, nil }
func (l *layerDoc) ShowMask() (bool, error) { return l.showMask, nil }
func (l *layerDoc) Mask() (document.Channel, error) { return l.mask, nil }

type channelDoc struct {
	drawableDoc

	color      document.Color
	opacity    float64
	showMasked bool
}

func (c *channelDoc) Color() (document.Color, error) { return c.color, nil }
func (c *channelDoc) Opacity() (float64, error) { return c.opacity, nil }
func (c *channelDoc) ShowMasked() (bool, error) { return c.showMasked, nil }

type pathDoc struct {
	itemDoc

	strokes []document.Stroke
}

func (p *pathDoc) Strokes() ([]document.Stroke, error) { return p.strokes, nil }

type filterDoc struct {
	name      string
	operation string
	blendMode document.LayerMode
	config    []document.Property
	opacity   float64
	visible   bool
}

func (f *filterDoc) Name() (string, error) { return f.name, nil }
func (f *filterDoc) OperationName() (string, error) { return f.operation, nil }
func (f *filterDoc) BlendMode() (document.LayerMode, error) { return f.blendMode, nil }
func (f *filterDoc) Opacity() (float64, error) { return f.opacity, nil }
func (f *filterDoc) Visible() (bool, error) { return f.visible, nil }
func (f *filterDoc) Config() ([]document.Property, error) { return f.config, nil }
