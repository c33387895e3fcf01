package document

import "fmt"

// ItemKind is the concrete kind of an [Item].
type ItemKind string

const (
	KindLayer      ItemKind = "Layer"
	KindGroupLayer ItemKind = "GroupLayer"
	KindTextLayer  ItemKind = "TextLayer"
	KindChannel    ItemKind = "Channel"
	KindLayerMask  ItemKind = "LayerMask"
	KindPath       ItemKind = "Path"
)

// BaseType is an image's colour model.
type BaseType string

const (
	RGB     BaseType = "RGB"
	Gray    BaseType = "GRAY"
	Indexed BaseType = "INDEXED"
)

// Precision is the pixel encoding precision of an image.
type Precision string

const (
	U8Linear         Precision = "U8_LINEAR"
	U8NonLinear      Precision = "U8_NON_LINEAR"
	U8Perceptual     Precision = "U8_PERCEPTUAL"
	U16Linear        Precision = "U16_LINEAR"
	U16NonLinear     Precision = "U16_NON_LINEAR"
	U16Perceptual    Precision = "U16_PERCEPTUAL"
	U32Linear        Precision = "U32_LINEAR"
	U32NonLinear     Precision = "U32_NON_LINEAR"
	U32Perceptual    Precision = "U32_PERCEPTUAL"
	HalfLinear       Precision = "HALF_LINEAR"
	HalfNonLinear    Precision = "HALF_NON_LINEAR"
	HalfPerceptual   Precision = "HALF_PERCEPTUAL"
	FloatLinear      Precision = "FLOAT_LINEAR"
	FloatNonLinear   Precision = "FLOAT_NON_LINEAR"
	FloatPerceptual  Precision = "FLOAT_PERCEPTUAL"
	DoubleLinear     Precision = "DOUBLE_LINEAR"
	DoubleNonLinear  Precision = "DOUBLE_NON_LINEAR"
	DoublePerceptual Precision = "DOUBLE_PERCEPTUAL"
)

// ComponentSize returns the number of bytes used to store a single pixel component
// at precision p, or an error for an unknown precision.
func (p Precision) ComponentSize() (int, error) {
	switch p {
	case U8Linear, U8NonLinear, U8Perceptual:
		return 1, nil
	case U16Linear, U16NonLinear, U16Perceptual, HalfLinear, HalfNonLinear, HalfPerceptual:
		return 2, nil //nolint:mnd // Bytes per component
	case U32Linear, U32NonLinear, U32Perceptual, FloatLinear, FloatNonLinear, FloatPerceptual:
		return 4, nil //nolint:mnd // Bytes per component
	case DoubleLinear, DoubleNonLinear, DoublePerceptual:
		return 8, nil //nolint:mnd // Bytes per component
	default:
		return 0, fmt.Errorf("unknown precision %q", string(p))
	}
}

// ImageType is the pixel type of a [Drawable].
type ImageType string

const (
	RGBImage      ImageType = "RGB_IMAGE"
	RGBAImage     ImageType = "RGBA_IMAGE"
	GrayImage     ImageType = "GRAY_IMAGE"
	GrayAImage    ImageType = "GRAYA_IMAGE"
	IndexedImage  ImageType = "INDEXED_IMAGE"
	IndexedAImage ImageType = "INDEXEDA_IMAGE"
)

// ImageTypeOf returns the drawable pixel type for base with or without alpha.
func ImageTypeOf(base BaseType, alpha bool) ImageType {
	switch base {
	case Gray:
		if alpha {
			return GrayAImage
		}

		return GrayImage
	case Indexed:
		if alpha {
			return IndexedAImage
		}

		return IndexedImage
	default:
		if alpha {
			return RGBAImage
		}

		return RGBImage
	}
}

// Components returns the number of components per pixel of an image type.
func (t ImageType) Components() int {
	switch t {
	case RGBAImage:
		return 4 //nolint:mnd // R, G, B, A
	case RGBImage:
		return 3 //nolint:mnd // R, G, B
	case GrayAImage, IndexedAImage:
		return 2 //nolint:mnd // Value and alpha
	default:
		return 1
	}
}

// ColorTag is the colour label of an [Item].
type ColorTag string

const (
	TagNone   ColorTag = "NONE"
	TagBlue   ColorTag = "BLUE"
	TagGreen  ColorTag = "GREEN"
	TagYellow ColorTag = "YELLOW"
	TagOrange ColorTag = "ORANGE"
	TagBrown  ColorTag = "BROWN"
	TagRed    ColorTag = "RED"
	TagViolet ColorTag = "VIOLET"
	TagGray   ColorTag = "GRAY"
)

// LayerMode is a layer or filter blend mode e.g. NORMAL, MULTIPLY.
type LayerMode string

const (
	ModeNormal   LayerMode = "NORMAL"
	ModeReplace  LayerMode = "REPLACE"
	ModeMultiply LayerMode = "MULTIPLY"
	ModeScreen   LayerMode = "SCREEN"
	ModeOverlay  LayerMode = "OVERLAY"
	ModePassThru LayerMode = "PASS_THROUGH"
)

// ColorSpace is the space a layer is blended or composited in.
type ColorSpace string

const (
	SpaceAuto          ColorSpace = "AUTO"
	SpaceRGBLinear     ColorSpace = "RGB_LINEAR"
	SpaceRGBNonLinear  ColorSpace = "RGB_NON_LINEAR"
	SpaceRGBPerceptual ColorSpace = "RGB_PERCEPTUAL"
)

// CompositeMode is how a layer is composited onto its backdrop.
type CompositeMode string

const (
	CompositeAuto           CompositeMode = "AUTO"
	CompositeUnion          CompositeMode = "UNION"
	CompositeClipToBackdrop CompositeMode = "CLIP_TO_BACKDROP"
	CompositeClipToLayer    CompositeMode = "CLIP_TO_LAYER"
	CompositeIntersection   CompositeMode = "INTERSECTION"
)

// StrokeType is how the points of a [Stroke] are interpreted.
type StrokeType string

// StrokeBezier is a stroke made of cubic bezier anchors and control points.
const StrokeBezier StrokeType = "BEZIER"

// Color is an RGBA colour with float components in [0, 1].
type Color struct {
	R, G, B, A float64
}

// RGBA returns the colour components as a slice in R, G, B, A order.
func (c Color) RGBA() []float64 {
	return []float64{c.R, c.G, c.B, c.A}
}

// PaletteEntry is a single 8 bit colormap entry.
type PaletteEntry struct {
	R, G, B uint8
}

// Enum is a [Property] value holding the name of an enumerated option e.g. "CLAMP".
type Enum string
