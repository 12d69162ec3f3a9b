package image

import (
	"fmt"
	"image"

	"golang.org/x/image/draw"
)

// Pixel is a single colour sample in R, G, B order.
type Pixel [3]uint8

// RGBImage is a three channel pixel grid with no alpha.
// Pixels are stored row-major, three bytes per pixel.
type RGBImage struct {
	Width  int
	Height int
	Pix    []uint8
}

// NewRGBImage allocates a black image of the given size.
func NewRGBImage(width, height int) *RGBImage {
	return &RGBImage{
		Width:  width,
		Height: height,
		Pix:    make([]uint8, width*height*3),
	}
}

// Len returns the number of pixels in the image.
func (m *RGBImage) Len() int {
	return m.Width * m.Height
}

// At returns the pixel at (x, y).
func (m *RGBImage) At(x, y int) Pixel {
	i := (y*m.Width + x) * 3
	return Pixel{m.Pix[i], m.Pix[i+1], m.Pix[i+2]}
}

// Set writes the pixel at (x, y).
func (m *RGBImage) Set(x, y int, p Pixel) {
	i := (y*m.Width + x) * 3
	m.Pix[i], m.Pix[i+1], m.Pix[i+2] = p[0], p[1], p[2]
}

// Pixels returns every pixel in row-major order.
func (m *RGBImage) Pixels() []Pixel {
	out := make([]Pixel, 0, m.Len())
	for i := 0; i+2 < len(m.Pix); i += 3 {
		out = append(out, Pixel{m.Pix[i], m.Pix[i+1], m.Pix[i+2]})
	}
	return out
}

// FromImage converts a decoded image into straight (non-premultiplied) RGB,
// discarding any alpha channel.
func FromImage(img image.Image) (*RGBImage, error) {
	if img == nil {
		return nil, fmt.Errorf("image cannot be nil")
	}
	bounds := img.Bounds()
	if bounds.Empty() {
		return nil, fmt.Errorf("image has no pixels (%dx%d)", bounds.Dx(), bounds.Dy())
	}

	nrgba, ok := img.(*image.NRGBA)
	if !ok || nrgba.Bounds().Min != (image.Point{}) {
		nrgba = image.NewNRGBA(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
		draw.Draw(nrgba, nrgba.Bounds(), img, bounds.Min, draw.Src)
	}

	out := NewRGBImage(bounds.Dx(), bounds.Dy())
	for y := 0; y < out.Height; y++ {
		for x := 0; x < out.Width; x++ {
			src := nrgba.PixOffset(x, y)
			dst := (y*out.Width + x) * 3
			copy(out.Pix[dst:dst+3], nrgba.Pix[src:src+3])
		}
	}
	return out, nil
}
