// Sample dataset generator: writes a small labelled image tree for trying
// out coralcolours build.
//
//	go run testdata/generate_test_image.go
package main

import (
	"fmt"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"math/rand"
	"os"
	"path/filepath"
)

const root = "testdata/Coral_Dataset"

func main() {
	labels := map[string][]color.NRGBA{
		// Healthy coral: warm pinks and oranges over blue water.
		"CORAL": {
			{R: 255, G: 127, B: 80, A: 255},
			{R: 233, G: 99, B: 121, A: 255},
			{R: 24, G: 92, B: 160, A: 255},
		},
		// Bleached coral: near-white skeletons over the same water.
		"CORAL_BL": {
			{R: 245, G: 243, B: 236, A: 255},
			{R: 214, G: 210, B: 200, A: 255},
			{R: 24, G: 92, B: 160, A: 255},
		},
	}

	rng := rand.New(rand.NewSource(1))
	for label, palette := range labels {
		dir := filepath.Join(root, label)
		if err := os.MkdirAll(dir, 0o755); err != nil {
			fail(err)
		}
		for i := range 4 {
			img := reefImage(palette, 320, 240, rng)
			if i%2 == 0 {
				save(filepath.Join(dir, fmt.Sprintf("%s_%02d.png", label, i)), img, false)
			} else {
				save(filepath.Join(dir, fmt.Sprintf("%s_%02d.jpg", label, i)), img, true)
			}
		}
	}

	// One undecodable file, which build reports as skipped.
	if err := os.WriteFile(filepath.Join(root, "CORAL", "CORAL_99.jpg"), []byte("not a jpeg"), 0o644); err != nil {
		fail(err)
	}

	fmt.Println("Sample dataset written to", root)
}

// reefImage paints horizontal bands of the palette colours with a little noise.
func reefImage(palette []color.NRGBA, width, height int, rng *rand.Rand) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, width, height))
	band := height / len(palette)
	for y := range height {
		c := palette[min(y/band, len(palette)-1)]
		for x := range width {
			jitter := func(v uint8) uint8 {
				n := int(v) + rng.Intn(11) - 5
				return uint8(max(0, min(255, n)))
			}
			img.SetNRGBA(x, y, color.NRGBA{R: jitter(c.R), G: jitter(c.G), B: jitter(c.B), A: 255})
		}
	}
	return img
}

func save(path string, img image.Image, asJPEG bool) {
	file, err := os.Create(path)
	if err != nil {
		fail(err)
	}
	defer file.Close()

	if asJPEG {
		err = jpeg.Encode(file, img, &jpeg.Options{Quality: 90})
	} else {
		err = png.Encode(file, img)
	}
	if err != nil {
		fail(err)
	}
}

func fail(err error) {
	fmt.Fprintln(os.Stderr, err)
	os.Exit(1)
}
