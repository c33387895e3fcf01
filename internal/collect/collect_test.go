package collect_test

import (
	"bytes"
	"io"
	"math"
	"slices"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"go.followtheprocess.codes/imgattr/internal/collect"
	"go.followtheprocess.codes/imgattr/internal/document"
	"go.followtheprocess.codes/imgattr/internal/format"
	"go.followtheprocess.codes/imgattr/internal/value"
	"go.followtheprocess.codes/log"
	"go.followtheprocess.codes/test"
)

// treeOptions lets cmp descend into mappings by comparing their ordered entries.
var treeOptions = cmp.Options{
	cmp.Transformer("Entries", func(m *value.Mapping) []value.Entry { return m.Entries() }),
}

// itemKeys are the keys every item has, in order.
var itemKeys = []string{
	"color_tag",
	"expanded",
	"is_group",
	"lock_content",
	"lock_position",
	"lock_visibility",
	"name",
	"visible",
	"type",
}

// drawableKeys follow itemKeys on every drawable.
var drawableKeys = []string{"bpp", "width", "height", "offsets", "has_alpha", "image_type", "filters"}

// layerKeys follow drawableKeys on every layer.
var layerKeys = []string{
	"apply_mask",
	"blend_space",
	"composite_mode",
	"composite_space",
	"edit_mask",
	"is_floating_sel",
	"lock_alpha",
	"mode",
	"opacity",
	"show_mask",
}

func keys(groups ...[]string) []string {
	var all []string
	for _, group := range groups {
		all = append(all, group...)
	}

	return all
}

// collectImage runs [collect.Image] with a discarding logger and returns the image mapping.
func collectImage(t *testing.T, img document.Image) *value.Mapping {
	t.Helper()

	tree, err := collect.Image(img, log.New(io.Discard))
	test.Ok(t, err)

	return imageMapping(t, tree)
}

func imageMapping(t *testing.T, tree *value.Mapping) *value.Mapping {
	t.Helper()

	test.Equal(t, tree.Len(), 1)

	raw, ok := tree.Get("image")
	test.True(t, ok, test.Context("tree has no image key"))

	image, ok := raw.(*value.Mapping)
	test.True(t, ok, test.Context("image is %T, not a mapping", raw))

	return image
}

// index returns the i'th element of the sequence stored under key in m.
func index(t *testing.T, m *value.Mapping, key string, i int) any {
	t.Helper()

	raw, ok := m.Get(key)
	test.True(t, ok, test.Context("missing key %q", key))

	seq, ok := raw.(value.Sequence)
	test.True(t, ok, test.Context("%q is %T, not a sequence", key, raw))
	test.True(t, i < len(seq), test.Context("%q has %d elements, wanted index %d", key, len(seq), i))

	return seq[i]
}

func mapping(t *testing.T, v any) *value.Mapping {
	t.Helper()

	m, ok := v.(*value.Mapping)
	test.True(t, ok, test.Context("got %T, wanted a mapping", v))

	return m
}

func get(t *testing.T, m *value.Mapping, key string) any {
	t.Helper()

	v, ok := m.Get(key)
	test.True(t, ok, test.Context("missing key %q in %v", key, m.Keys()))

	return v
}

func TestImageKeys(t *testing.T) {
	image := collectImage(t, &fakeImage{})

	want := []string{
		"name",
		"width",
		"height",
		"base_type",
		"precision",
		"resolution",
		"unit",
		"selected_channels",
		"selected_drawables",
		"selected_layers",
		"selected_paths",
		"layers",
		"channels",
		"paths",
	}

	test.EqualFunc(t, image.Keys(), want, slices.Equal)
	test.Equal(t, get(t, image, "name"), any("poster.xcf"))
	test.Equal(t, get(t, image, "base_type"), any("RGB"))
	test.Equal(t, get(t, image, "precision"), any("U8_NON_LINEAR"))
	same(t, get(t, image, "resolution"), any(value.Sequence{300.0, 300.0}))
}

func TestColormap(t *testing.T) {
	image := collectImage(t, &fakeImage{
		palette: []document.PaletteEntry{{R: 255, G: 0, B: 0}, {R: 0, G: 128, B: 255}},
	})

	test.Equal(t, get(t, image, "base_type"), any("INDEXED"))

	want := value.Sequence{
		value.Sequence{255, 0, 0},
		value.Sequence{0, 128, 255},
	}

	same(t, get(t, image, "colormap"), any(want))

	// colormap sits between unit and the selections
	keys := image.Keys()
	test.Equal(t, keys[6], "unit")
	test.Equal(t, keys[7], "colormap")
}

func TestSelections(t *testing.T) {
	title := newLayer("Title", nil)
	mask := newChannel("Alpha", document.KindChannel)

	image := collectImage(t, &fakeImage{
		layers:           []document.Layer{title},
		channels:         []document.Channel{mask},
		selectedLayers:   []document.Layer{title, nil},
		selectedChannels: []document.Channel{mask},
	})

	same(t, get(t, image, "selected_layers"), any(value.Sequence{"Title", nil}))
	same(t, get(t, image, "selected_channels"), any(value.Sequence{"Alpha"}))
	same(t, get(t, image, "selected_drawables"), any(value.Sequence{"Title", nil, "Alpha"}))
	same(t, get(t, image, "selected_paths"), any(value.Sequence{}))
}

func TestLayer(t *testing.T) {
	image := collectImage(t, &fakeImage{layers: []document.Layer{newLayer("Title", nil)}})

	layer := mapping(t, index(t, image, "layers", 0))

	test.EqualFunc(t, layer.Keys(), keys(itemKeys, drawableKeys, layerKeys), slices.Equal)
	test.Equal(t, get(t, layer, "name"), any("Title"))
	test.Equal(t, get(t, layer, "type"), any("Layer"))
	test.Equal(t, get(t, layer, "is_group"), any(false))
	test.Equal(t, get(t, layer, "color_tag"), any("NONE"))
	test.Equal(t, get(t, layer, "image_type"), any("RGBA_IMAGE"))
	test.Equal(t, get(t, layer, "mode"), any("NORMAL"))
	test.Equal(t, get(t, layer, "opacity"), any(100.0))
	same(t, get(t, layer, "offsets"), any(value.Sequence{1, 2}))
	same(t, get(t, layer, "filters"), any(value.Sequence{}))
}

func TestMask(t *testing.T) {
	layer := newLayer("Title", nil)
	layer.mask = newChannel("Title mask", document.KindLayerMask)

	image := collectImage(t, &fakeImage{layers: []document.Layer{layer}})

	got := mapping(t, index(t, image, "layers", 0))
	test.EqualFunc(t, got.Keys(), keys(itemKeys, drawableKeys, layerKeys, []string{"mask"}), slices.Equal)

	mask := mapping(t, get(t, got, "mask"))
	test.EqualFunc(
		t,
		mask.Keys(),
		keys(itemKeys, drawableKeys, []string{"color_rgba", "opacity", "show_masked"}),
		slices.Equal,
	)
	test.Equal(t, get(t, mask, "type"), any("LayerMask"))
	test.Equal(t, get(t, mask, "opacity"), any(50.0))
	same(t, get(t, mask, "color_rgba"), any(value.Sequence{1.0, 0.0, 0.0, 1.0}))
}

func TestGroups(t *testing.T) {
	inner := newLayer("Inner", nil)
	nested := newGroup("Nested", inner)
	first := newLayer("First", nil)
	group := newGroup("Group", first, nested)
	top := newLayer("Top", nil)

	image := collectImage(t, &fakeImage{layers: []document.Layer{top, group}})

	topAttrs := mapping(t, index(t, image, "layers", 0))
	_, hasChildren := topAttrs.Get("children")
	test.False(t, hasChildren, test.Context("plain layer should have no children key"))

	groupAttrs := mapping(t, index(t, image, "layers", 1))
	test.Equal(t, get(t, groupAttrs, "is_group"), any(true))
	test.Equal(t, get(t, groupAttrs, "type"), any("GroupLayer"))

	groupKeys := groupAttrs.Keys()
	test.Equal(t, groupKeys[len(groupKeys)-1], "children", test.Context("children should be the last key"))

	test.Equal(t, get(t, mapping(t, index(t, groupAttrs, "children", 0)), "name"), any("First"))

	nestedAttrs := mapping(t, index(t, groupAttrs, "children", 1))
	test.Equal(t, get(t, nestedAttrs, "name"), any("Nested"))
	test.Equal(t, get(t, mapping(t, index(t, nestedAttrs, "children", 0)), "name"), any("Inner"))
}

func TestPath(t *testing.T) {
	path := &fakePath{
		fakeItem: fakeItem{name: "Outline", kind: document.KindPath, visible: true},
		strokes: []document.Stroke{
			{ID: 1, Type: document.StrokeBezier, Points: []float64{0, 0, 10.5, 10.5}, Closed: true},
		},
	}

	image := collectImage(t, &fakeImage{paths: []document.Path{path}})

	got := mapping(t, index(t, image, "paths", 0))
	test.EqualFunc(t, got.Keys(), keys(itemKeys, []string{"strokes"}), slices.Equal)

	stroke := mapping(t, index(t, got, "strokes", 0))
	test.EqualFunc(t, stroke.Keys(), []string{"id", "points_type", "points", "points_closed"}, slices.Equal)
	test.Equal(t, get(t, stroke, "id"), any(1))
	test.Equal(t, get(t, stroke, "points_type"), any("BEZIER"))
	same(t, get(t, stroke, "points"), any(value.Sequence{0.0, 0.0, 10.5, 10.5}))
	test.Equal(t, get(t, stroke, "points_closed"), any(true))
}

func TestFilters(t *testing.T) {
	layer := newLayer("Blurred", nil)
	layer.filters = []document.Filter{
		&fakeFilter{
			config: []document.Property{
				{Name: "std-dev-x", Value: 1.5},
				{Name: "abyss-policy", Value: document.Enum("CLAMP")},
				{Name: "color", Value: document.Color{R: 0.5, G: 0.25, B: 0, A: 1}},
				{Name: "clip-extent", Value: true},
			},
		},
	}

	image := collectImage(t, &fakeImage{layers: []document.Layer{layer}})

	filter := mapping(t, index(t, mapping(t, index(t, image, "layers", 0)), "filters", 0))
	test.EqualFunc(
		t,
		filter.Keys(),
		[]string{"blend_mode", "name", "opacity", "operation_name", "visible", "parameters"},
		slices.Equal,
	)
	test.Equal(t, get(t, filter, "blend_mode"), any("REPLACE"))
	test.Equal(t, get(t, filter, "operation_name"), any("gegl:gaussian-blur"))

	parameters := mapping(t, get(t, filter, "parameters"))
	test.EqualFunc(t, parameters.Keys(), []string{"std-dev-x", "abyss-policy", "color", "clip-extent"}, slices.Equal)
	test.Equal(t, get(t, parameters, "abyss-policy"), any("CLAMP"))
	same(t, get(t, parameters, "color"), any(value.Sequence{0.5, 0.25, 0.0, 1.0}))
}

func TestUnsignedParameters(t *testing.T) {
	layer := newLayer("Noise", nil)
	layer.filters = []document.Filter{
		&fakeFilter{
			config: []document.Property{
				{Name: "seed", Value: uint(42)},
				{Name: "huge", Value: uint64(math.MaxUint64)},
				{Name: "address", Value: uintptr(7)},
			},
		},
	}

	tree, err := collect.Image(&fakeImage{layers: []document.Layer{layer}}, log.New(io.Discard))
	test.Ok(t, err)

	for _, f := range format.All() {
		t.Run(f.Name, func(t *testing.T) {
			buf := &bytes.Buffer{}
			test.Ok(t, f.Exporter.Export(buf, tree))
			test.True(t, strings.Contains(buf.String(), "18446744073709551615"), test.Context("output:\n%s", buf.String()))
			test.True(t, strings.Contains(buf.String(), "42"), test.Context("output:\n%s", buf.String()))
		})
	}
}

type stringer struct{}

func (stringer) String() string { return "stringer" }

func TestProperty(t *testing.T) {
	tests := []struct {
		value any
		want  any
		name  string
	}{
		{name: "string", value: "hello", want: "hello"},
		{name: "int", value: 3, want: 3},
		{name: "uint", value: uint(3), want: uint(3)},
		{name: "float", value: 2.5, want: 2.5},
		{name: "bool", value: true, want: true},
		{name: "nil", value: nil, want: nil},
		{name: "enum", value: document.Enum("CLAMP"), want: "CLAMP"},
		{name: "color", value: document.Color{R: 1, A: 1}, want: value.Sequence{1.0, 0.0, 0.0, 1.0}},
		{name: "stringer", value: stringer{}, want: "stringer"},
		{name: "other", value: struct{ X int }{X: 1}, want: "{1}"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			same(t, collect.Property(tt.value), tt.want)
		})
	}
}

func TestItemFailuresDegrade(t *testing.T) {
	layer := newLayer("Flaky", broken{"opacity": true, "filters": true, "mask": true})
	group := newGroup("Group", newLayer("Child", nil))
	group.fail = broken{"children": true}

	buf := &bytes.Buffer{}

	tree, err := collect.Image(&fakeImage{layers: []document.Layer{layer, group}}, log.New(buf))
	test.Ok(t, err)

	image := imageMapping(t, tree)

	flaky := mapping(t, index(t, image, "layers", 0))
	test.Equal(t, get(t, flaky, "opacity"), nil)
	test.Equal(t, get(t, flaky, "filters"), nil)
	test.Equal(t, get(t, flaky, "mask"), nil)

	// Everything else still collected
	test.Equal(t, get(t, flaky, "name"), any("Flaky"))
	test.Equal(t, get(t, flaky, "mode"), any("NORMAL"))

	groupAttrs := mapping(t, index(t, image, "layers", 1))
	test.Equal(t, get(t, groupAttrs, "children"), nil)

	logs := buf.String()
	test.True(t, bytes.Contains(buf.Bytes(), []byte("Could not read item attribute")), test.Context("logs: %s", logs))
	test.True(t, bytes.Contains(buf.Bytes(), []byte("Flaky")), test.Context("logs: %s", logs))
}

func TestImageFailuresAbort(t *testing.T) {
	accessors := []string{
		"name",
		"width",
		"height",
		"base_type",
		"precision",
		"resolution",
		"unit",
		"palette",
		"selected_channels",
		"selected_drawables",
		"selected_layers",
		"selected_paths",
		"layers",
		"channels",
		"paths",
	}

	for _, accessor := range accessors {
		t.Run(accessor, func(t *testing.T) {
			tree, err := collect.Image(&fakeImage{fail: broken{accessor: true}}, log.New(io.Discard))
			test.Err(t, err)
			test.True(t, tree == nil, test.Context("tree should be nil on error"))
		})
	}
}

func TestFreshTree(t *testing.T) {
	img := &fakeImage{layers: []document.Layer{newLayer("Title", nil)}}

	first, err := collect.Image(img, log.New(io.Discard))
	test.Ok(t, err)

	second, err := collect.Image(img, log.New(io.Discard))
	test.Ok(t, err)

	test.True(t, first != second, test.Context("each call should build a new tree"))
	same(t, second, first)
}

// same fails the test if got and want differ, comparing mappings by their ordered entries.
func same(t *testing.T, got, want any) {
	t.Helper()

	if diff := cmp.Diff(want, got, treeOptions); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
}
