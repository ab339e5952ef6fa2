package colors

import (
	"context"
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pixels(cs ...[4]byte) []byte {
	out := make([]byte, 0, len(cs)*4)
	for _, c := range cs {
		out = append(out, c[:]...)
	}
	return out
}

func repeat(c [4]byte, n int) [][4]byte {
	out := make([][4]byte, n)
	for i := range out {
		out[i] = c
	}
	return out
}

func TestExtractSolidRed(t *testing.T) {
	swatches, err := Extract(context.Background(), pixels(repeat([4]byte{255, 0, 0, 255}, 100)...))
	require.NoError(t, err)
	require.Len(t, swatches, 1)
	assert.Equal(t, "#FF0000", swatches[0].Color.Hex())
	assert.Equal(t, 100, swatches[0].Count)
}

func TestExtractQuantizes(t *testing.T) {
	assert.Equal(t, uint8(0), quantize(15))
	assert.Equal(t, uint8(32), quantize(16))
	assert.Equal(t, uint8(224), quantize(239))
	assert.Equal(t, uint8(255), quantize(240))
	assert.Equal(t, uint8(255), quantize(255))

	swatches, err := Extract(context.Background(), pixels(
		[4]byte{10, 20, 40, 0},
		[4]byte{5, 30, 33, 255},
	))
	require.NoError(t, err)
	require.Len(t, swatches, 1)
	assert.Equal(t, RGB(0, 32, 32), swatches[0].Color)
	assert.Equal(t, 2, swatches[0].Count)
}

func TestExtractOrdering(t *testing.T) {
	var px [][4]byte
	px = append(px, [4]byte{0, 0, 0, 255})
	px = append(px, repeat([4]byte{64, 64, 64, 255}, 3)...)
	px = append(px, [4]byte{128, 0, 0, 255})
	px = append(px, repeat([4]byte{0, 0, 128, 255}, 3)...)

	swatches, err := Extract(context.Background(), pixels(px...))
	require.NoError(t, err)
	got := make([]string, len(swatches))
	for i, s := range swatches {
		got[i] = s.Color.Hex()
	}
	assert.Equal(t, []string{"#404040", "#000080", "#000000", "#800000"}, got)
}

func TestExtractTopTen(t *testing.T) {
	var px [][4]byte
	for i := 0; i < 12; i++ {
		c := [4]byte{byte(i / 4 * 64), byte(i % 4 * 64), 0, 255}
		px = append(px, repeat(c, i+1)...)
	}
	swatches, err := Extract(context.Background(), pixels(px...))
	require.NoError(t, err)
	require.Len(t, swatches, MaxSwatches)
	for i := 1; i < len(swatches); i++ {
		assert.GreaterOrEqual(t, swatches[i-1].Count, swatches[i].Count)
	}
}

func TestExtractDegenerate(t *testing.T) {
	_, err := Extract(context.Background(), nil)
	assert.ErrorIs(t, err, ErrEmptyInput)

	_, err = Extract(context.Background(), []byte{1, 2, 3})
	assert.ErrorIs(t, err, ErrEmptyInput)

	swatches, err := Extract(context.Background(), []byte{255, 255, 255, 255, 9, 9})
	require.NoError(t, err)
	require.Len(t, swatches, 1)
	assert.Equal(t, 1, swatches[0].Count)
}

func TestExtractCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := Extract(ctx, pixels(repeat([4]byte{1, 1, 1, 1}, 4)...))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestExtractImage(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 4, 4))
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			img.Set(x, y, color.RGBA{0, 0, 255, 255})
		}
	}
	img.Set(0, 0, color.RGBA{255, 255, 255, 255})

	swatches, err := ExtractImage(context.Background(), img)
	require.NoError(t, err)
	require.Len(t, swatches, 2)
	assert.Equal(t, Swatch{RGB(0, 0, 255), 15}, swatches[0])
	assert.Equal(t, Swatch{White, 1}, swatches[1])

	sub := img.SubImage(image.Rect(1, 1, 3, 3))
	assert.Len(t, RGBAPixels(sub), 16)
}
