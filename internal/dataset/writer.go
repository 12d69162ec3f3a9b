package dataset

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
)

// Writer appends rows to a CSV stream. Each WriteRow call is serialised and
// flushed before returning, so a row is either fully written or not at all
// from the point of view of a reader of the underlying file.
type Writer struct {
	mu     sync.Mutex
	csv    *csv.Writer
	closer io.Closer
	k      int
	rows   int
}

// NewWriter wraps w for rows with k colour/frequency pairs.
func NewWriter(w io.Writer, k int) *Writer {
	return &Writer{csv: csv.NewWriter(w), k: k}
}

// CreateFile creates (or truncates) path, including parent directories, and writes the header.
func CreateFile(path string, k int) (*Writer, error) {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	f, err := os.Create(path) // #nosec G304 - user-specified output path
	if err != nil {
		return nil, fmt.Errorf("failed to create output file: %w", err)
	}

	w := NewWriter(f, k)
	w.closer = f
	if err := w.WriteHeader(); err != nil {
		f.Close()
		return nil, err
	}
	return w, nil
}

// WriteHeader writes the header row.
func (w *Writer) WriteHeader() error {
	return w.write(Header(w.k))
}

// WriteRow writes a single data row.
func (w *Writer) WriteRow(row Row) error {
	if len(row.Colours) != w.k {
		return fmt.Errorf("row for %s has %d colours, want %d", row.Label, len(row.Colours), w.k)
	}
	if err := w.write(row.Record()); err != nil {
		return err
	}
	w.mu.Lock()
	w.rows++
	w.mu.Unlock()
	return nil
}

// Rows returns the number of data rows written.
func (w *Writer) Rows() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.rows
}

func (w *Writer) write(record []string) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if err := w.csv.Write(record); err != nil {
		return fmt.Errorf("failed to write row: %w", err)
	}
	w.csv.Flush()
	if err := w.csv.Error(); err != nil {
		return fmt.Errorf("failed to flush row: %w", err)
	}
	return nil
}

// Close flushes and closes the underlying file, if the writer owns one.
func (w *Writer) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.csv.Flush()
	err := w.csv.Error()
	if w.closer != nil {
		if cerr := w.closer.Close(); err == nil {
			err = cerr
		}
		w.closer = nil
	}
	return err
}
