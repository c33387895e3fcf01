package imgattr

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"go.followtheprocess.codes/imgattr/internal/document"
	"go.followtheprocess.codes/imgattr/internal/format"
	"go.followtheprocess.codes/imgattr/internal/manifest"
	"go.followtheprocess.codes/imgattr/internal/value"
	"go.followtheprocess.codes/log"
	"go.followtheprocess.codes/test"
)

// unnamedSelection is a document whose selected layers cannot report their name.
type unnamedSelection struct {
	document.Image
}

func (u unnamedSelection) SelectedLayers() ([]document.Layer, error) {
	layers, err := u.Image.SelectedLayers()
	if err != nil {
		return nil, err
	}

	unnamed := make([]document.Layer, 0, len(layers))
	for _, layer := range layers {
		unnamed = append(unnamed, unnamedLayer{Layer: layer})
	}

	return unnamed, nil
}

type unnamedLayer struct {
	document.Layer
}

func (unnamedLayer) Name() (string, error) {
	return "", errors.New("layer has gone away")
}

// unnamedDoc returns a two layer document with the first layer selected, wrapped so the
// selected layer's name cannot be read.
func unnamedDoc(t *testing.T) document.Image {
	t.Helper()

	src := "name: a.xcf\nwidth: 4\nheight: 4\nselected:\n  layers: [A]\nlayers:\n  - name: A\n  - name: B\n"

	img, err := manifest.Decode(strings.NewReader(src), manifest.SyntaxYAML)
	test.Ok(t, err)
	test.Ok(t, img.Validate())

	doc, err := img.Document()
	test.Ok(t, err)

	return unnamedSelection{Image: doc}
}

func TestCollectTreesWarnOnce(t *testing.T) {
	targets := []target{
		{format: mustFormat(t, "xml")},
		{format: mustFormat(t, "json")},
		{format: mustFormat(t, "yaml")},
	}

	stderr := &bytes.Buffer{}
	logger := log.New(stderr)

	trees, err := collectTrees(t.Context(), unnamedDoc(t), targets, logger)
	test.Ok(t, err)
	test.Equal(t, len(trees), len(targets))

	warnings := strings.Count(stderr.String(), "Could not read attribute")
	test.Equal(t, warnings, 1, test.Context("stderr:\n%s", stderr.String()))

	// Every tree still carries the unreadable name as null
	for _, tree := range trees {
		image, ok := tree.Get(format.RootKey)
		test.True(t, ok)

		selected, ok := image.(*value.Mapping).Get("selected_layers")
		test.True(t, ok)
		test.Equal(t, len(selected.(value.Sequence)), 1)
		test.True(t, selected.(value.Sequence)[0] == nil, test.Context("got %v", selected))
	}
}

func TestCollectTreesCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(t.Context())
	cancel()

	targets := []target{{format: mustFormat(t, "xml")}}

	_, err := collectTrees(ctx, unnamedDoc(t), targets, log.New(&bytes.Buffer{}))
	test.True(t, errors.Is(err, context.Canceled), test.Context("got %v", err))
}
