// Package document defines the read-only contract between imgattr and a host image
// document.
//
// A host (an image editor, a document description file, a decoded raster image) exposes
// its document through the interfaces here, one per entity kind. Item level accessors
// return an error alongside their value so a host can fail on a single attribute without
// taking down a whole export.
package document

// Image is a whole layered image document.
type Image interface {
	// Name is the image's display name, usually its file name.
	Name() (string, error)

	// Width is the canvas width in pixels.
	Width() (int, error)

	// Height is the canvas height in pixels.
	Height() (int, error)

	// BaseType is the image's colour model.
	BaseType() (BaseType, error)

	// Precision is the pixel encoding precision e.g. U8_NON_LINEAR.
	Precision() (Precision, error)

	// Resolution returns the horizontal and vertical resolution in pixels per unit.
	Resolution() (x, y float64, err error)

	// Unit is the name of the image's display unit e.g. "inches".
	Unit() (string, error)

	// Palette returns the colormap of an indexed image, nil if the image has none.
	Palette() ([]PaletteEntry, error)

	// SelectedLayers returns the currently selected layers.
	SelectedLayers() ([]Layer, error)

	// SelectedChannels returns the currently selected channels.
	SelectedChannels() ([]Channel, error)

	// SelectedDrawables returns the currently selected drawables (layers or channels).
	SelectedDrawables() ([]Drawable, error)

	// SelectedPaths returns the currently selected paths.
	SelectedPaths() ([]Path, error)

	// Layers returns the top level layers, top of the stack first.
	Layers() ([]Layer, error)

	// Channels returns the image's custom channels.
	Channels() ([]Channel, error)

	// Paths returns the top level paths.
	Paths() ([]Path, error)
}

// Item is anything that lives in one of an image's item trees: layers, channels,
// layer masks and paths.
type Item interface {
	// Kind reports the concrete kind of the item.
	Kind() ItemKind

	// Name is the item's name.
	Name() (string, error)

	// ColorTag is the colour label attached to the item.
	ColorTag() (ColorTag, error)

	// Expanded reports whether the item is expanded in the host's item tree view.
	Expanded() (bool, error)

	// IsGroup reports whether the item contains child items.
	IsGroup() (bool, error)

	// Children returns the members of a group, in stacking order.
	Children() ([]Item, error)

	// LockContent reports whether the item's pixels or strokes are locked.
	LockContent() (bool, error)

	// LockPosition reports whether the item's position is locked.
	LockPosition() (bool, error)

	// LockVisibility reports whether the item's visibility is locked.
	LockVisibility() (bool, error)

	// Visible reports whether the item is visible.
	Visible() (bool, error)
}

// Drawable is an [Item] that holds pixels.
type Drawable interface {
	Item

	// BPP is the number of bytes per pixel.
	BPP() (int, error)

	// Width is the drawable's width in pixels.
	Width() (int, error)

	// Height is the drawable's height in pixels.
	Height() (int, error)

	// Offsets returns the drawable's position relative to the canvas origin.
	Offsets() (x, y int, err error)

	// HasAlpha reports whether the drawable has an alpha channel.
	HasAlpha() (bool, error)

	// ImageType is the drawable's pixel type e.g. RGBA_IMAGE.
	ImageType() (ImageType, error)

	// Filters returns the non-destructive filters applied to the drawable, in order.
	Filters() ([]Filter, error)
}

// Layer is a [Drawable] in the image's layer stack.
type Layer interface {
	Drawable

	ApplyMask() (bool, error)
	BlendSpace() (ColorSpace, error)
	CompositeMode() (CompositeMode, error)
	CompositeSpace() (ColorSpace, error)
	EditMask() (bool, error)
	IsFloatingSel() (bool, error)
	LockAlpha() (bool, error)
	Mode() (LayerMode, error)

	// Opacity is the layer opacity in the range [0, 100].
	Opacity() (float64, error)

	ShowMask() (bool, error)

	// Mask returns the layer's mask, nil if the layer has none.
	Mask() (Channel, error)
}

// Channel is a [Drawable] holding a single component, a custom channel or a layer mask.
type Channel interface {
	Drawable

	// Color is the colour used to display the channel.
	Color() (Color, error)

	// Opacity is the display opacity in the range [0, 100].
	Opacity() (float64, error)

	// ShowMasked reports whether the masked area is shown inverted.
	ShowMasked() (bool, error)
}

// Path is a vector path [Item].
type Path interface {
	Item

	// Strokes returns the path's strokes in order.
	Strokes() ([]Stroke, error)
}

// Filter is a non-destructive filter applied to a [Drawable].
type Filter interface {
	// Name is the filter's display name.
	Name() (string, error)

	// OperationName is the name of the underlying operation e.g. "gegl:gaussian-blur".
	OperationName() (string, error)

	// BlendMode is the mode used to merge the filter output.
	BlendMode() (LayerMode, error)

	// Opacity is the filter opacity in the range [0, 1].
	Opacity() (float64, error)

	// Visible reports whether the filter is active.
	Visible() (bool, error)

	// Config returns the operation's configuration properties, in declaration order.
	Config() ([]Property, error)
}

// Stroke is a single stroke of a [Path].
type Stroke struct {
	Type   StrokeType // How to interpret Points
	Points []float64  // Control point coordinates, flattened x, y pairs
	ID     int        // Stroke identifier, unique within its path
	Closed bool       // Whether the stroke is closed
}

// Property is a single named configuration property of a [Filter].
//
// Value is one of string, an integer, a float, bool, nil, [Color], [Enum] or any other
// type, which is recorded in its string form.
type Property struct {
	Value any    // Property value
	Name  string // Property name e.g. "std-dev-x"
}
