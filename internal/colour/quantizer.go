package colour

import (
	"cmp"
	"fmt"
	"math"
	"math/rand"
	"slices"

	"github.com/jmylchreest/coralcolours/internal/image"
)

// QuantizerConfig holds configuration for dominant colour extraction.
type QuantizerConfig struct {
	Clusters      int // number of colours (k)
	Width         int // resample grid width
	Height        int // resample grid height
	Restarts      int // k-means initialisations, best kept
	MaxIterations int // Lloyd iterations per initialisation
}

// DefaultQuantizerConfig returns the default quantizer configuration.
func DefaultQuantizerConfig() QuantizerConfig {
	return QuantizerConfig{
		Clusters:      5,
		Width:         100,
		Height:        100,
		Restarts:      10,
		MaxIterations: 300,
	}
}

// Validate validates the quantizer configuration.
func (c QuantizerConfig) Validate() error {
	if c.Width < 1 {
		return &InvalidConfigError{Field: "width", Value: c.Width, Reason: "must be at least 1"}
	}
	if c.Height < 1 {
		return &InvalidConfigError{Field: "height", Value: c.Height, Reason: "must be at least 1"}
	}
	if c.Clusters < 1 {
		return &InvalidConfigError{Field: "clusters", Value: c.Clusters, Reason: "must be at least 1"}
	}
	if points := c.Width * c.Height; c.Clusters > points {
		return &InvalidConfigError{
			Field:  "clusters",
			Value:  c.Clusters,
			Reason: fmt.Sprintf("exceeds the %dx%d resample grid (%d points)", c.Width, c.Height, points),
		}
	}
	if c.Restarts < 1 {
		return &InvalidConfigError{Field: "restarts", Value: c.Restarts, Reason: "must be at least 1"}
	}
	if c.MaxIterations < 1 {
		return &InvalidConfigError{Field: "max-iterations", Value: c.MaxIterations, Reason: "must be at least 1"}
	}
	return nil
}

// Quantizer reduces an image to its k dominant colours.
// It holds no per-image state and is safe for concurrent use.
type Quantizer struct {
	config QuantizerConfig
}

// NewQuantizer creates a Quantizer after validating cfg.
func NewQuantizer(cfg QuantizerConfig) (*Quantizer, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Quantizer{config: cfg}, nil
}

// Config returns the quantizer configuration.
func (q *Quantizer) Config() QuantizerConfig {
	return q.config
}

// Quantize resamples img to the configured grid, clusters the pixels and
// returns the clusters ranked by descending frequency.
func (q *Quantizer) Quantize(img *image.RGBImage, seed int64) (*Palette, error) {
	if img == nil {
		return nil, fmt.Errorf("image cannot be nil")
	}

	sampled, err := image.ResampleArea(img, q.config.Width, q.config.Height)
	if err != nil {
		return nil, fmt.Errorf("failed to resample image: %w", err)
	}

	return q.QuantizePixels(sampled.Pixels(), seed)
}

// QuantizePixels clusters an already-sampled set of pixels.
func (q *Quantizer) QuantizePixels(pixels []image.Pixel, seed int64) (*Palette, error) {
	if len(pixels) == 0 {
		return nil, fmt.Errorf("no pixels to cluster")
	}

	points := make([]point3D, len(pixels))
	for i, p := range pixels {
		points[i] = point3D{R: float64(p[0]), G: float64(p[1]), B: float64(p[2])}
	}

	km := KMeans{
		K:             q.config.Clusters,
		Restarts:      q.config.Restarts,
		MaxIterations: q.config.MaxIterations,
	}
	// #nosec G404 -- clustering needs a reproducible stream, not a secure one
	result, err := km.Fit(points, rand.New(rand.NewSource(seed)))
	if err != nil {
		return nil, err
	}

	return rank(result, len(points), seed), nil
}

// rank orders clusters by descending count. The sort is stable over cluster
// index order, so equal counts keep ascending index.
func rank(result *clustering, total int, seed int64) *Palette {
	counts := result.counts()
	clusters := make([]Cluster, len(result.centroids))
	for i, c := range result.centroids {
		clusters[i] = Cluster{
			Index:     i,
			Centroid:  Centroid{c.R, c.G, c.B},
			Count:     counts[i],
			Frequency: roundFrequency(counts[i], total),
		}
	}

	slices.SortStableFunc(clusters, func(a, b Cluster) int {
		return cmp.Compare(b.Count, a.Count)
	})

	return &Palette{
		Clusters: clusters,
		Total:    total,
		Inertia:  result.inertia,
		Seed:     seed,
	}
}

// roundFrequency returns count/total rounded to 4 decimal places.
func roundFrequency(count, total int) float64 {
	if total == 0 {
		return 0
	}
	return math.Round(float64(count)/float64(total)*1e4) / 1e4
}
