package colors

import (
	"context"
	"image"
	"image/draw"
	"math"
	"slices"
)

const (
	// MaxSwatches is the most swatches Extract returns.
	MaxSwatches = 10
	// quantStep is the bucket width per channel.
	quantStep = 32
	// pixels between context checks
	checkEvery = 1 << 16
)

// Swatch is one extracted palette color and the number of pixels that fell
// into its bucket.
type Swatch struct {
	Color Color `json:"color"`
	Count int   `json:"count"`
}

func quantize(v uint8) uint8 {
	q := math.Round(float64(v)/quantStep) * quantStep
	if q > 255 {
		return 255
	}
	return uint8(q)
}

// Extract buckets a flat RGBA buffer and returns up to MaxSwatches of the
// most frequent buckets. Equal counts keep first-seen order. Alpha is
// ignored, as is a trailing partial pixel. A buffer without a whole pixel
// returns ErrEmptyInput. Extraction stops with ctx.Err() when ctx is done.
func Extract(ctx context.Context, pix []byte) ([]Swatch, error) {
	n := len(pix) / 4
	if n == 0 {
		return nil, ErrEmptyInput
	}

	index := make(map[Color]int)
	var buckets []Swatch
	for i := 0; i < n; i++ {
		if i%checkEvery == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}
		p := pix[i*4 : i*4+3]
		key := RGB(quantize(p[0]), quantize(p[1]), quantize(p[2]))
		if j, ok := index[key]; ok {
			buckets[j].Count++
			continue
		}
		index[key] = len(buckets)
		buckets = append(buckets, Swatch{Color: key, Count: 1})
	}

	slices.SortStableFunc(buckets, func(a, b Swatch) int {
		return b.Count - a.Count
	})
	if len(buckets) > MaxSwatches {
		buckets = buckets[:MaxSwatches]
	}
	return buckets, nil
}

// ExtractImage runs Extract over a decoded image.
func ExtractImage(ctx context.Context, img image.Image) ([]Swatch, error) {
	return Extract(ctx, RGBAPixels(img))
}

// RGBAPixels flattens img into non-premultiplied RGBA bytes, row by row.
func RGBAPixels(img image.Image) []byte {
	b := img.Bounds()
	if n, ok := img.(*image.NRGBA); ok && n.Stride == 4*b.Dx() {
		return n.Pix[:4*b.Dx()*b.Dy()]
	}
	dst := image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(dst, dst.Bounds(), img, b.Min, draw.Src)
	return dst.Pix
}
