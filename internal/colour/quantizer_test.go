package colour

import (
	"errors"
	"math"
	"math/rand"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/jmylchreest/coralcolours/internal/image"
)

func solidImage(w, h int, p image.Pixel) *image.RGBImage {
	img := image.NewRGBImage(w, h)
	for y := range h {
		for x := range w {
			img.Set(x, y, p)
		}
	}
	return img
}

func quadrantImage() *image.RGBImage {
	img := image.NewRGBImage(200, 200)
	colours := [4]image.Pixel{{255, 0, 0}, {0, 255, 0}, {0, 0, 255}, {255, 255, 255}}
	for y := range 200 {
		for x := range 200 {
			img.Set(x, y, colours[(y/100)*2+x/100])
		}
	}
	return img
}

func noiseImage(w, h int, seed int64) *image.RGBImage {
	rng := rand.New(rand.NewSource(seed))
	img := image.NewRGBImage(w, h)
	rng.Read(img.Pix)
	return img
}

func newTestQuantizer(t *testing.T, k int) *Quantizer {
	t.Helper()
	cfg := DefaultQuantizerConfig()
	cfg.Clusters = k
	q, err := NewQuantizer(cfg)
	if err != nil {
		t.Fatalf("NewQuantizer() error = %v", err)
	}
	return q
}

func TestDefaultQuantizerConfig(t *testing.T) {
	cfg := DefaultQuantizerConfig()
	if cfg.Clusters != 5 || cfg.Width != 100 || cfg.Height != 100 || cfg.Restarts != 10 {
		t.Errorf("DefaultQuantizerConfig() = %+v", cfg)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate() error = %v", err)
	}
}

func TestQuantizerConfigValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*QuantizerConfig)
		field  string
	}{
		{name: "zero clusters", modify: func(c *QuantizerConfig) { c.Clusters = 0 }, field: "clusters"},
		{name: "clusters exceed grid", modify: func(c *QuantizerConfig) { c.Clusters = 10001 }, field: "clusters"},
		{name: "zero width", modify: func(c *QuantizerConfig) { c.Width = 0 }, field: "width"},
		{name: "negative height", modify: func(c *QuantizerConfig) { c.Height = -5 }, field: "height"},
		{name: "zero restarts", modify: func(c *QuantizerConfig) { c.Restarts = 0 }, field: "restarts"},
		{name: "zero iterations", modify: func(c *QuantizerConfig) { c.MaxIterations = 0 }, field: "max-iterations"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultQuantizerConfig()
			tt.modify(&cfg)

			_, err := NewQuantizer(cfg)
			var ice *InvalidConfigError
			if !errors.As(err, &ice) {
				t.Fatalf("NewQuantizer() error = %v, want *InvalidConfigError", err)
			}
			if ice.Field != tt.field {
				t.Errorf("InvalidConfigError.Field = %s, want %s", ice.Field, tt.field)
			}
		})
	}
}

func TestQuantizeSolidRed(t *testing.T) {
	q := newTestQuantizer(t, 5)
	palette, err := q.Quantize(solidImage(100, 100, image.Pixel{255, 0, 0}), 42)
	if err != nil {
		t.Fatalf("Quantize() error = %v", err)
	}

	entries, err := palette.Entries()
	if err != nil {
		t.Fatalf("Entries() error = %v", err)
	}
	want := []RankedColour{
		{Hex: "#ff0000", Frequency: 1},
		{Hex: "#ff0000", Frequency: 0},
		{Hex: "#ff0000", Frequency: 0},
		{Hex: "#ff0000", Frequency: 0},
		{Hex: "#ff0000", Frequency: 0},
	}
	if diff := cmp.Diff(want, entries); diff != "" {
		t.Errorf("Quantize() entries mismatch (-want +got):\n%s", diff)
	}

	// The populated cluster is index 0; empty ones follow in index order.
	for rank, c := range palette.Clusters {
		if c.Index != rank {
			t.Errorf("rank %d has cluster index %d, want %d", rank, c.Index, rank)
		}
	}
	if palette.Total != 10000 {
		t.Errorf("Total = %d, want 10000", palette.Total)
	}
}

func TestQuantizeQuadrants(t *testing.T) {
	q := newTestQuantizer(t, 4)
	palette, err := q.Quantize(quadrantImage(), 1)
	if err != nil {
		t.Fatalf("Quantize() error = %v", err)
	}

	entries, err := palette.Entries()
	if err != nil {
		t.Fatalf("Entries() error = %v", err)
	}
	got := map[string]float64{}
	for _, e := range entries {
		got[e.Hex] = e.Frequency
	}
	want := map[string]float64{"#ff0000": 0.25, "#00ff00": 0.25, "#0000ff": 0.25, "#ffffff": 0.25}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Quantize() colours mismatch (-want +got):\n%s", diff)
	}

	// Equal counts: ranking falls back to ascending cluster index.
	for i := 1; i < len(palette.Clusters); i++ {
		if palette.Clusters[i-1].Index > palette.Clusters[i].Index {
			t.Errorf("tied clusters out of index order: %d before %d", palette.Clusters[i-1].Index, palette.Clusters[i].Index)
		}
	}
}

func TestQuantizeProperties(t *testing.T) {
	for _, k := range []int{1, 3, 5, 8} {
		q := newTestQuantizer(t, k)
		palette, err := q.Quantize(noiseImage(64, 48, int64(k)), 99)
		if err != nil {
			t.Fatalf("k=%d: Quantize() error = %v", k, err)
		}

		if palette.Len() != k {
			t.Errorf("k=%d: Len() = %d", k, palette.Len())
		}

		sum := 0.0
		for i, c := range palette.Clusters {
			sum += c.Frequency
			if i == 0 {
				continue
			}
			prev := palette.Clusters[i-1]
			if prev.Frequency < c.Frequency {
				t.Errorf("k=%d: rank %d frequency %v above rank %d frequency %v", k, i, c.Frequency, i-1, prev.Frequency)
			}
			if prev.Count == c.Count && prev.Index > c.Index {
				t.Errorf("k=%d: equal counts not ordered by index at rank %d", k, i)
			}
		}
		if math.Abs(sum-1) > 0.0005*float64(k) {
			t.Errorf("k=%d: frequencies sum to %v", k, sum)
		}

		if _, err := palette.Entries(); err != nil {
			t.Errorf("k=%d: Entries() error = %v", k, err)
		}
	}
}

func TestQuantizeDeterministic(t *testing.T) {
	q := newTestQuantizer(t, 5)
	img := noiseImage(120, 90, 3)

	first, err := q.Quantize(img, 1234)
	if err != nil {
		t.Fatalf("Quantize() error = %v", err)
	}
	second, err := q.Quantize(img, 1234)
	if err != nil {
		t.Fatalf("Quantize() error = %v", err)
	}

	if diff := cmp.Diff(first, second); diff != "" {
		t.Errorf("Quantize() not deterministic for a fixed seed (-first +second):\n%s", diff)
	}
}

func TestQuantizeNil(t *testing.T) {
	q := newTestQuantizer(t, 5)
	if _, err := q.Quantize(nil, 0); err == nil {
		t.Error("Quantize(nil) expected error")
	}
	if _, err := q.QuantizePixels(nil, 0); err == nil {
		t.Error("QuantizePixels(nil) expected error")
	}
}

func TestQuantizePixelsTooFewPoints(t *testing.T) {
	q := newTestQuantizer(t, 5)
	_, err := q.QuantizePixels([]image.Pixel{{1, 2, 3}, {4, 5, 6}}, 0)
	var ice *InvalidConfigError
	if !errors.As(err, &ice) {
		t.Errorf("QuantizePixels() error = %v, want *InvalidConfigError", err)
	}
}

func TestRankTieBreak(t *testing.T) {
	result := &clustering{
		centroids:   make([]point3D, 4),
		assignments: []int{0, 0, 1, 1, 1, 2, 2, 3, 3, 3},
	}
	palette := rank(result, 10, 0)

	var order []int
	for _, c := range palette.Clusters {
		order = append(order, c.Index)
	}
	if diff := cmp.Diff([]int{1, 3, 0, 2}, order); diff != "" {
		t.Errorf("rank() order mismatch (-want +got):\n%s", diff)
	}
	if got := palette.Clusters[0].Frequency; got != 0.3 {
		t.Errorf("top frequency = %v, want 0.3", got)
	}
}

func TestRoundFrequency(t *testing.T) {
	tests := []struct {
		count, total int
		want         float64
	}{
		{count: 1, total: 3, want: 0.3333},
		{count: 2, total: 3, want: 0.6667},
		{count: 10000, total: 10000, want: 1},
		{count: 0, total: 10000, want: 0},
		{count: 1, total: 0, want: 0},
	}
	for _, tt := range tests {
		if got := roundFrequency(tt.count, tt.total); got != tt.want {
			t.Errorf("roundFrequency(%d, %d) = %v, want %v", tt.count, tt.total, got, tt.want)
		}
	}
}
