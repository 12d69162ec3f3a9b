package image

import (
	"fmt"
	"math"
)

// tap is one source index contributing to a destination index, with its share of the box.
type tap struct {
	index  int
	weight float64
}

// areaTaps maps each destination index to the source indices its box covers.
// Partially covered source pixels contribute in proportion to the overlap.
func areaTaps(src, dst int) [][]tap {
	scale := float64(src) / float64(dst)
	taps := make([][]tap, dst)
	for d := range dst {
		start := float64(d) * scale
		end := start + scale
		for s := int(math.Floor(start)); s < src && float64(s) < end; s++ {
			lo := math.Max(start, float64(s))
			hi := math.Min(end, float64(s+1))
			if hi <= lo {
				continue
			}
			taps[d] = append(taps[d], tap{index: s, weight: (hi - lo) / scale})
		}
	}
	return taps
}

// ResampleArea resizes src to width x height using area averaging: every output
// pixel is the mean of the source pixels it covers. The source is not modified.
func ResampleArea(src *RGBImage, width, height int) (*RGBImage, error) {
	if src == nil || src.Width < 1 || src.Height < 1 {
		return nil, fmt.Errorf("source image is empty")
	}
	if width < 1 || height < 1 {
		return nil, fmt.Errorf("invalid resample size %dx%d", width, height)
	}

	xTaps := areaTaps(src.Width, width)
	yTaps := areaTaps(src.Height, height)

	// Horizontal pass: src.Height rows of width float pixels.
	rows := make([]float64, src.Height*width*3)
	for y := range src.Height {
		for x, taps := range xTaps {
			var r, g, b float64
			for _, t := range taps {
				i := (y*src.Width + t.index) * 3
				r += float64(src.Pix[i]) * t.weight
				g += float64(src.Pix[i+1]) * t.weight
				b += float64(src.Pix[i+2]) * t.weight
			}
			o := (y*width + x) * 3
			rows[o], rows[o+1], rows[o+2] = r, g, b
		}
	}

	// Vertical pass.
	out := NewRGBImage(width, height)
	for y, taps := range yTaps {
		for x := range width {
			var r, g, b float64
			for _, t := range taps {
				i := (t.index*width + x) * 3
				r += rows[i] * t.weight
				g += rows[i+1] * t.weight
				b += rows[i+2] * t.weight
			}
			out.Set(x, y, Pixel{saturate(r), saturate(g), saturate(b)})
		}
	}
	return out, nil
}

// saturate rounds half up and clamps to the 8-bit range.
func saturate(v float64) uint8 {
	v = math.Floor(v + 0.5)
	if v <= 0 {
		return 0
	}
	if v >= 255 {
		return 255
	}
	return uint8(v)
}
