package preview_test

import (
	"bytes"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/panelwire/codec"
	"github.com/katalvlaran/panelwire/decoration"
	"github.com/katalvlaran/panelwire/grid"
	"github.com/katalvlaran/panelwire/preview"
	"github.com/katalvlaran/panelwire/wire"
)

const id wire.ObjectID = 0x00064

func panel(t *testing.T) *wire.Panel {
	t.Helper()
	g, err := grid.New(5, 5)
	require.NoError(t, err)
	require.NoError(t, g.SetSymbol(1, 1, decoration.New(decoration.Stone, decoration.White)))
	require.NoError(t, g.SetSymbol(3, 3, decoration.NewCustom(decoration.Mushroom, 0, decoration.Red)))
	require.NoError(t, g.PlaceDot(2, 2, decoration.None))
	require.NoError(t, g.AddStart(0, 4))
	require.NoError(t, g.AddExit(4, 0))
	p, _, err := codec.Encode(codec.PanelContext{ID: id}, g)
	require.NoError(t, err)
	return p
}

// TestRender_Size verifies the image has the requested edge length.
func TestRender_Size(t *testing.T) {
	p := panel(t)
	img, err := preview.Render(id, p)
	require.NoError(t, err)
	assert.Equal(t, preview.DefaultSize, img.Bounds().Dx())

	img, err = preview.Render(id, p, preview.WithSize(128), preview.WithLineWidth(0.05))
	require.NoError(t, err)
	assert.Equal(t, 128, img.Bounds().Dx())
	assert.Equal(t, 128, img.Bounds().Dy())
}

// TestRender_DrawsLattice checks a pixel on the bottom-left segment is not background.
func TestRender_DrawsLattice(t *testing.T) {
	img, err := preview.Render(id, panel(t), preview.WithSize(100))
	require.NoError(t, err)
	bg := img.At(2, 2)
	// the bottom edge runs from (.1,.1) to (.5,.1) in wire space
	assert.NotEqual(t, bg, img.At(30, 90))
}

func TestRender_Errors(t *testing.T) {
	_, err := preview.Render(id, nil)
	assert.ErrorIs(t, err, preview.ErrNilPanel)
	_, err = preview.Render(id, &wire.Panel{})
	assert.ErrorIs(t, err, preview.ErrEmptyPanel)
	_, err = preview.Render(id, &wire.Panel{Flags: make([]wire.PointFlag, 2), Positions: []float32{0}})
	assert.ErrorIs(t, err, wire.ErrShortArray)
}

// TestThumbnail_PNG scales a preview down and encodes it.
func TestThumbnail_PNG(t *testing.T) {
	img, err := preview.Render(id, panel(t), preview.WithSize(256))
	require.NoError(t, err)
	th := preview.Thumbnail(img, 64)
	assert.Equal(t, 64, th.Bounds().Dx())

	var buf bytes.Buffer
	require.NoError(t, preview.EncodePNG(&buf, th))
	back, err := png.Decode(&buf)
	require.NoError(t, err)
	assert.Equal(t, 64, back.Bounds().Dy())
}
