package collect_test

import (
	"errors"

	"go.followtheprocess.codes/imgattr/internal/document"
)

var errBroken = errors.New("broken")

// broken is a set of accessor names that fail.
type broken map[string]bool

func (b broken) check(name string) error {
	if b[name] {
		return errBroken
	}

	return nil
}

type fakeItem struct {
	fail     broken
	name     string
	kind     document.ItemKind
	children []document.Item
	visible  bool
}

func (f *fakeItem) Kind() document.ItemKind { return f.kind }

func (f *fakeItem) Name() (string, error) { return f.name, f.fail.check("name") }

func (f *fakeItem) ColorTag() (document.ColorTag, error) {
	return document.TagNone, f.fail.check("color_tag")
}

func (f *fakeItem) Expanded() (bool, error) { return false, f.fail.check("expanded") }

func (f *fakeItem) IsGroup() (bool, error) {
	return f.kind == document.KindGroupLayer, f.fail.check("is_group")
}

func (f *fakeItem) Children() ([]document.Item, error) {
	return f.children, f.fail.check("children")
}

func (f *fakeItem) LockContent() (bool, error) { return false, f.fail.check("lock_content") }
func (f *fakeItem) LockPosition() (bool, error) { return false, f.fail.check("lock_position") }
func (f *fakeItem) LockVisibility() (bool, error) { return false, f.fail.check("lock_visibility") }
func (f *fakeItem) Visible() (bool, error) { return f.visible, f.fail.check("visible") }

type fakeDrawable struct {
	fakeItem

	filters []document.Filter
}

func (f *fakeDrawable) BPP() (int, error) { return 4, f.fail.check("bpp") }
func (f *fakeDrawable) Width() (int, error) { return 10, f.fail.check("width") }
func (f *fakeDrawable) Height() (int, error) { return 20, f.fail.check("height") }

func (f *fakeDrawable) Offsets() (x, y int, err error) {
	return 1, 2, f.fail.check("offsets")
}

func (f *fakeDrawable) HasAlpha() (bool, error) { return true, f.fail.check("has_alpha") }

func (f *fakeDrawable) ImageType() (document.ImageType, error) {
	return document.RGBAImage, f.fail.check("image_type")
}

func (f *fakeDrawable) Filters() ([]document.Filter, error) {
	return f.filters, f.fail.check("filters")
}

type fakeLayer struct {
	mask document.Channel

	fakeDrawable
}

func (f *fakeLayer) ApplyMask() (bool, error) { return true, f.fail.check("apply_mask") }

func (f *fakeLayer) BlendSpace() (document.ColorSpace, error) {
	return document.SpaceAuto, f.fail.check("blend_space")
}

func (f *fakeLayer) CompositeMode() (document.CompositeMode, error) {
	return document.CompositeAuto, f.fail.check("composite_mode")
}

func (f *fakeLayer) CompositeSpace() (document.ColorSpace, error) {
	return document.SpaceAuto, f.fail.check("composite_space")
}

func (f *fakeLayer) EditMask() (bool, error) { return false, f.fail.check("edit_mask") }
func (f *fakeLayer) IsFloatingSel() (bool, error) { return false, f.fail.check("is_floating_sel") }
func (f *fakeLayer) LockAlpha() (bool, error) { return false, f.fail.check("lock_alpha") }

func (f *fakeLayer) Mode() (document.LayerMode, error) {
	return document.ModeNormal, f.fail.check("mode")
}

func (f *fakeLayer) Opacity() (float64, error) { return 100.0, f.fail.check("opacity") }
func (f *fakeLayer) ShowMask() (bool, error) { return false, f.fail.check("show_mask") }

func (f *fakeLayer) Mask() (document.Channel, error) {
	return f.mask, f.fail.check("mask")
}

type fakeChannel struct {
	fakeDrawable
}

func (f *fakeChannel) Color() (document.Color, error) {
	return document.Color{R: 1, G: 0, B: 0, A: 1}, f.fail.check("color_rgba")
}

func (f *fakeChannel) Opacity() (float64, error) { return 50.0, f.fail.check("opacity") }
func (f *fakeChannel) ShowMasked() (bool, error) { return false, f.fail.check("show_masked") }

type fakePath struct {
	strokes []document.Stroke

	fakeItem
}

func (f *fakePath) Strokes() ([]document.Stroke, error) {
	return f.strokes, f.fail.check("strokes")
}

type fakeFilter struct {
	fail   broken
	config []document.Property
}

func (f *fakeFilter) Name() (string, error) { return "Gaussian Blur", f.fail.check("name") }

func (f *fakeFilter) OperationName() (string, error) {
	return "gegl:gaussian-blur", f.fail.check("operation_name")
}

func (f *fakeFilter) BlendMode() (document.LayerMode, error) {
	return document.ModeReplace, f.fail.check("blend_mode")
}

func (f *fakeFilter) Opacity() (float64, error) { return 1.0, f.fail.check("opacity") }
func (f *fakeFilter) Visible() (bool, error) { return true, f.fail.check("visible") }

func (f *fakeFilter) Config() ([]document.Property, error) {
	return f.config, f.fail.check("parameters")
}

type fakeImage struct {
	fail             broken
	palette          []document.PaletteEntry
	layers           []document.Layer
	channels         []document.Channel
	paths            []document.Path
	selectedLayers   []document.Layer
	selectedChannels []document.Channel
	selectedPaths    []document.Path
}

func (f *fakeImage) Name() (string, error) { return "poster.xcf", f.fail.check("name") }
func (f *fakeImage) Width() (int, error) { return 640, f.fail.check("width") }
func (f *fakeImage) Height() (int, error) { return 480, f.fail.check("height") }

func (f *fakeImage) BaseType() (document.BaseType, error) {
	if f.palette != nil {
		return document.Indexed, f.fail.check("base_type")
	}

	return document.RGB, f.fail.check("base_type")
}

func (f *fakeImage) Precision() (document.Precision, error) {
	return document.U8NonLinear, f.fail.check("precision")
}

func (f *fakeImage) Resolution() (x, y float64, err error) {
	return 300, 300, f.fail.check("resolution")
}

func (f *fakeImage) Unit() (string, error) { return "inches", f.fail.check("unit") }

func (f *fakeImage) Palette() ([]document.PaletteEntry, error) {
	return f.palette, f.fail.check("palette")
}

func (f *fakeImage) SelectedLayers() ([]document.Layer, error) {
	return f.selectedLayers, f.fail.check("selected_layers")
}

func (f *fakeImage) SelectedChannels() ([]document.Channel, error) {
	return f.selectedChannels, f.fail.check("selected_channels")
}

func (f *fakeImage) SelectedDrawables() ([]document.Drawable, error) {
	drawables := make([]document.Drawable, 0, len(f.selectedLayers)+len(f.selectedChannels))
	for _, layer := range f.selectedLayers {
		drawables = append(drawables, layer)
	}

	for _, channel := range f.selectedChannels {
		drawables = append(drawables, channel)
	}

	return drawables, f.fail.check("selected_drawables")
}

func (f *fakeImage) SelectedPaths() ([]document.Path, error) {
	return f.selectedPaths, f.fail.check("selected_paths")
}

func (f *fakeImage) Layers() ([]document.Layer, error) {
	return f.layers, f.fail.check("layers")
}

func (f *fakeImage) Channels() ([]document.Channel, error) {
	return f.channels, f.fail.check("channels")
}

func (f *fakeImage) Paths() ([]document.Path, error) {
	return f.paths, f.fail.check("paths")
}

func newLayer(name string, fail broken) *fakeLayer {
	return &fakeLayer{
		fakeDrawable: fakeDrawable{
			fakeItem: fakeItem{name: name, kind: document.KindLayer, visible: true, fail: fail},
		},
	}
}

func newGroup(name string, children ...document.Item) *fakeLayer {
	layer := newLayer(name, nil)
	layer.kind = document.KindGroupLayer
	layer.children = children

	return layer
}

func newChannel(name string, kind document.ItemKind) *fakeChannel {
	return &fakeChannel{
		fakeDrawable: fakeDrawable{
			fakeItem: fakeItem{name: name, kind: kind, visible: true},
		},
	}
}
