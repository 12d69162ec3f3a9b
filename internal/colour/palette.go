// Package colour provides dominant colour extraction and encoding.
package colour

import (
	"encoding/json"
	"fmt"
	"strings"
)

// RGB represents a color in RGB format.
type RGB struct {
	R uint8 `json:"r"`
	G uint8 `json:"g"`
	B uint8 `json:"b"`
}

// String returns the RGB color as a string in the format "rgb(r, g, b)".
func (rgb RGB) String() string {
	return fmt.Sprintf("rgb(%d, %d, %d)", rgb.R, rgb.G, rgb.B)
}

// Hex returns the RGB color as a hex string (e.g., "#1a2b3c").
func (rgb RGB) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", rgb.R, rgb.G, rgb.B)
}

// Centroid is the mean colour of one cluster, channels in R, G, B order.
type Centroid [3]float64

// Cluster is one k-means cluster after ranking.
type Cluster struct {
	Index     int      // cluster index before ranking, in [0, k)
	Centroid  Centroid // mean colour of the assigned points
	Count     int      // number of sampled points assigned to the cluster
	Frequency float64  // Count / total, rounded to 4 decimal places
}

// RankedColour is the encoded form of a cluster: its hex colour and frequency.
type RankedColour struct {
	Hex       string  `json:"hex"`
	Frequency float64 `json:"frequency"`
}

// Palette is the ranked output of the quantizer for one image.
// Clusters are ordered by descending count, ties by ascending cluster index.
type Palette struct {
	Clusters []Cluster
	Total    int     // number of sampled points
	Inertia  float64 // sum of squared distances of the kept clustering
	Seed     int64
}

// Len returns the number of clusters in the palette.
func (p *Palette) Len() int {
	return len(p.Clusters)
}

// Entries encodes every cluster in rank order.
func (p *Palette) Entries() ([]RankedColour, error) {
	out := make([]RankedColour, len(p.Clusters))
	for i, c := range p.Clusters {
		hex, err := EncodeHex(c.Centroid)
		if err != nil {
			return nil, fmt.Errorf("cluster %d: %w", c.Index, err)
		}
		out[i] = RankedColour{Hex: hex, Frequency: c.Frequency}
	}
	return out, nil
}

// PaletteJSON represents the palette in JSON format.
type PaletteJSON struct {
	Count   int            `json:"count"`
	Seed    int64          `json:"seed"`
	Colours []RankedColour `json:"colours"`
}

// ToJSON converts the palette to JSON format.
func (p *Palette) ToJSON() ([]byte, error) {
	entries, err := p.Entries()
	if err != nil {
		return nil, err
	}
	return json.MarshalIndent(PaletteJSON{
		Count:   len(entries),
		Seed:    p.Seed,
		Colours: entries,
	}, "", "  ")
}

// String returns a human-readable string representation of the palette.
func (p *Palette) String() string {
	if len(p.Clusters) == 0 {
		return "Empty palette"
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Palette with %d colours:\n", len(p.Clusters))
	for i, c := range p.Clusters {
		hex, err := EncodeHex(c.Centroid)
		if err != nil {
			hex = "invalid"
		}
		fmt.Fprintf(&sb, "  %2d: %s %.4f\n", i+1, hex, c.Frequency)
	}
	return sb.String()
}
