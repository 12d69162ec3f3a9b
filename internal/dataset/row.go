// Package dataset turns folders of labelled images into a CSV of dominant colours.
package dataset

import (
	"fmt"
	"strconv"

	"github.com/jmylchreest/coralcolours/internal/colour"
)

// Header returns the CSV header for k colour/frequency pairs.
func Header(k int) []string {
	header := make([]string, 0, 1+2*k)
	header = append(header, "label")
	for i := 1; i <= k; i++ {
		header = append(header, fmt.Sprintf("color%d", i), fmt.Sprintf("frequency%d", i))
	}
	return header
}

// FormatFrequency formats a frequency with exactly four fractional digits.
func FormatFrequency(f float64) string {
	return strconv.FormatFloat(f, 'f', 4, 64)
}

// Row is one processed image: its label and ranked colours.
type Row struct {
	Label   string
	Colours []colour.RankedColour
	Source  string // image path, not serialised
}

// Record flattens the row into CSV fields.
func (r Row) Record() []string {
	record := make([]string, 0, 1+2*len(r.Colours))
	record = append(record, r.Label)
	for _, c := range r.Colours {
		record = append(record, c.Hex, FormatFrequency(c.Frequency))
	}
	return record
}

// Dominant returns the most frequent colour of the row.
func (r Row) Dominant() (colour.RankedColour, bool) {
	if len(r.Colours) == 0 {
		return colour.RankedColour{}, false
	}
	return r.Colours[0], true
}

// ParseRecord rebuilds a row from CSV fields holding k colour/frequency pairs.
func ParseRecord(record []string, k int) (Row, error) {
	if want := 1 + 2*k; len(record) != want {
		return Row{}, fmt.Errorf("record has %d fields, want %d", len(record), want)
	}

	row := Row{Label: record[0], Colours: make([]colour.RankedColour, k)}
	for i := range k {
		hex := record[1+2*i]
		if _, err := colour.ParseHex(hex); err != nil {
			return Row{}, fmt.Errorf("color%d: %w", i+1, err)
		}
		freq, err := strconv.ParseFloat(record[2+2*i], 64)
		if err != nil {
			return Row{}, fmt.Errorf("frequency%d: %w", i+1, err)
		}
		if freq < 0 || freq > 1 {
			return Row{}, fmt.Errorf("frequency%d: %v outside [0,1]", i+1, freq)
		}
		row.Colours[i] = colour.RankedColour{Hex: hex, Frequency: freq}
	}
	return row, nil
}

// PairsFromHeader returns k for a header produced by Header, validating every column name.
func PairsFromHeader(header []string) (int, error) {
	if len(header) < 1 || header[0] != "label" || (len(header)-1)%2 != 0 {
		return 0, fmt.Errorf("unexpected header %v", header)
	}
	k := (len(header) - 1) / 2
	want := Header(k)
	for i := range want {
		if header[i] != want[i] {
			return 0, fmt.Errorf("unexpected header column %d: %q, want %q", i, header[i], want[i])
		}
	}
	return k, nil
}
