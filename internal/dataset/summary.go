package dataset

import (
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// LabelSummary describes the dominant colours of one label across a dataset.
type LabelSummary struct {
	Label          string
	Images         int
	MeanDominant   float64 // mean frequency of each image's top colour
	StdDevDominant float64 // sample standard deviation; 0 for a single image
	MinDominant    float64
	MaxDominant    float64
	TopColour      string // most common top colour, earliest seen on ties
	TopColourCount int
}

// Summarise groups rows by label, in order of first appearance.
func Summarise(rows []Row) []LabelSummary {
	var order []string
	dominant := map[string][]float64{}
	hexCounts := map[string]map[string]int{}
	hexOrder := map[string][]string{}

	for _, row := range rows {
		top, ok := row.Dominant()
		if !ok {
			continue
		}
		if _, seen := dominant[row.Label]; !seen {
			order = append(order, row.Label)
			hexCounts[row.Label] = map[string]int{}
		}
		dominant[row.Label] = append(dominant[row.Label], top.Frequency)
		if hexCounts[row.Label][top.Hex] == 0 {
			hexOrder[row.Label] = append(hexOrder[row.Label], top.Hex)
		}
		hexCounts[row.Label][top.Hex]++
	}

	summaries := make([]LabelSummary, 0, len(order))
	for _, label := range order {
		freqs := dominant[label]
		s := LabelSummary{
			Label:       label,
			Images:      len(freqs),
			MinDominant: floats.Min(freqs),
			MaxDominant: floats.Max(freqs),
		}
		if len(freqs) > 1 {
			s.MeanDominant, s.StdDevDominant = stat.MeanStdDev(freqs, nil)
		} else {
			s.MeanDominant = freqs[0]
		}

		for _, hex := range hexOrder[label] {
			if n := hexCounts[label][hex]; n > s.TopColourCount {
				s.TopColour, s.TopColourCount = hex, n
			}
		}
		summaries = append(summaries, s)
	}
	return summaries
}
