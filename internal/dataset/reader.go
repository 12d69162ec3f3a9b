package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
)

// Reader parses a dataset written by Writer.
type Reader struct {
	csv  *csv.Reader
	k    int
	line int
}

// NewReader reads and validates the header from r.
func NewReader(r io.Reader) (*Reader, error) {
	cr := csv.NewReader(r)

	header, err := cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("dataset is empty")
		}
		return nil, fmt.Errorf("failed to read header: %w", err)
	}

	k, err := PairsFromHeader(header)
	if err != nil {
		return nil, err
	}
	cr.FieldsPerRecord = len(header)

	return &Reader{csv: cr, k: k, line: 1}, nil
}

// Pairs returns the number of colour/frequency pairs per row.
func (r *Reader) Pairs() int {
	return r.k
}

// Read returns the next row, or io.EOF when the dataset is exhausted.
func (r *Reader) Read() (Row, error) {
	record, err := r.csv.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return Row{}, io.EOF
		}
		return Row{}, fmt.Errorf("failed to read row: %w", err)
	}
	r.line++

	row, err := ParseRecord(record, r.k)
	if err != nil {
		return Row{}, fmt.Errorf("line %d: %w", r.line, err)
	}
	return row, nil
}

// ReadAll returns every remaining row.
func (r *Reader) ReadAll() ([]Row, error) {
	var rows []Row
	for {
		row, err := r.Read()
		if errors.Is(err, io.EOF) {
			return rows, nil
		}
		if err != nil {
			return nil, err
		}
		rows = append(rows, row)
	}
}

// ReadFile reads every row from the dataset at path.
func ReadFile(path string) ([]Row, int, error) {
	f, err := os.Open(path) // #nosec G304 - user-specified dataset path
	if err != nil {
		return nil, 0, fmt.Errorf("failed to open dataset: %w", err)
	}
	defer f.Close()

	r, err := NewReader(f)
	if err != nil {
		return nil, 0, err
	}
	rows, err := r.ReadAll()
	if err != nil {
		return nil, 0, err
	}
	return rows, r.Pairs(), nil
}
