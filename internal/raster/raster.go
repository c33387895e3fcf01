// Package raster implements a document host for flat raster image files.
//
// A raster file is read into a manifest describing a single layer image, or one layer per
// frame for an animated GIF, so it goes through exactly the same document adapters as a
// hand written manifest.
package raster

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/gif"
	_ "image/jpeg" // Register JPEG decoder
	_ "image/png"  // Register PNG decoder
	"io"
	"os"
	"path/filepath"
	"slices"

	"go.followtheprocess.codes/imgattr/internal/document"
	"go.followtheprocess.codes/imgattr/internal/manifest"
	_ "golang.org/x/image/bmp"  // Register BMP decoder
	_ "golang.org/x/image/tiff" // Register TIFF decoder
	_ "golang.org/x/image/webp" // Register WebP decoder
)

// BackgroundLayer is the name of the single layer of a still image.
const BackgroundLayer = "Background"

// opaque is implemented by every image type in the standard library.
type opaque interface {
	Opaque() bool
}

// Load decodes the raster image at path into a manifest image.
func Load(path string) (*manifest.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("could not open image: %w", err)
	}
	defer f.Close()

	img, err := Decode(f, filepath.Base(path))
	if err != nil {
		return nil, fmt.Errorf("could not load %s: %w", path, err)
	}

	return img, nil
}

// Decode reads a raster image from r and describes it as a manifest image called name.
func Decode(r io.Reader, name string) (*manifest.Image, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("could not read image: %w", err)
	}

	_, kind, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("could not decode image: %w", err)
	}

	if kind == "gif" {
		animation, err := gif.DecodeAll(bytes.NewReader(data))
		if err != nil {
			return nil, fmt.Errorf("could not decode gif: %w", err)
		}

		return fromGIF(animation, name), nil
	}

	decoded, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("could not decode %s: %w", kind, err)
	}

	return fromImage(decoded, name), nil
}

// fromImage describes a still image as a single layer document.
func fromImage(img image.Image, name string) *manifest.Image {
	bounds := img.Bounds()
	out := describe(img.ColorModel(), name, bounds.Dx(), bounds.Dy())

	alpha := hasAlpha(img)

	out.Layers = []manifest.Layer{
		{
			Item: manifest.Item{Name: BackgroundLayer},
			Drawable: manifest.Drawable{
				Offsets:  []int{bounds.Min.X, bounds.Min.Y},
				HasAlpha: alpha,
			},
		},
	}
	out.Selected = manifest.Selection{
		Layers:    []string{BackgroundLayer},
		Drawables: []string{BackgroundLayer},
	}

	return out
}

// fromGIF describes an animation as one layer per frame, the last frame on top.
func fromGIF(animation *gif.GIF, name string) *manifest.Image {
	width, height := animation.Config.Width, animation.Config.Height

	// A GIF without a global colour table takes its colours from the first frame
	model := animation.Config.ColorModel
	if palette, ok := model.(color.Palette); (!ok || len(palette) == 0) && len(animation.Image) != 0 {
		model = animation.Image[0].Palette
	}

	out := describe(model, name, width, height)

	layers := make([]manifest.Layer, 0, len(animation.Image))
	for i, frame := range animation.Image {
		bounds := frame.Bounds()
		frameWidth, frameHeight := bounds.Dx(), bounds.Dy()

		delay := 0
		if i < len(animation.Delay) {
			delay = animation.Delay[i] * 10 //nolint:mnd // GIF delays are in 100ths of a second
		}

		layers = append(layers, manifest.Layer{
			Item: manifest.Item{Name: fmt.Sprintf("Frame %d (%dms)", i+1, delay)},
			Drawable: manifest.Drawable{
				Width:    &frameWidth,
				Height:   &frameHeight,
				Offsets:  []int{bounds.Min.X, bounds.Min.Y},
				HasAlpha: hasAlpha(frame),
			},
		})
	}

	slices.Reverse(layers)
	out.Layers = layers

	if len(layers) != 0 {
		top := layers[0].Name
		out.Selected = manifest.Selection{Layers: []string{top}, Drawables: []string{top}}
	}

	return out
}

// describe returns the image level attributes implied by a colour model.
func describe(model color.Model, name string, width, height int) *manifest.Image {
	out := &manifest.Image{
		Name:       name,
		Width:      width,
		Height:     height,
		BaseType:   document.RGB,
		Precision:  document.U8NonLinear,
		Unit:       manifest.DefaultUnit,
		Resolution: []float64{manifest.DefaultResolution, manifest.DefaultResolution},
	}

	if palette, ok := model.(color.Palette); ok {
		out.BaseType = document.Indexed
		out.Colormap = make([][]int, 0, len(palette))

		for _, entry := range palette {
			r, g, b, _ := entry.RGBA()
			out.Colormap = append(out.Colormap, []int{int(r >> 8), int(g >> 8), int(b >> 8)})
		}

		return out
	}

	switch model {
	case color.GrayModel, color.AlphaModel:
		out.BaseType = document.Gray
	case color.Gray16Model, color.Alpha16Model:
		out.BaseType = document.Gray
		out.Precision = document.U16NonLinear
	case color.RGBA64Model, color.NRGBA64Model:
		out.Precision = document.U16NonLinear
	}

	return out
}

// hasAlpha reports whether img has any pixel that is not fully opaque.
func hasAlpha(img image.Image) bool {
	if o, ok := img.(opaque); ok {
		return !o.Opaque()
	}

	return true
}
