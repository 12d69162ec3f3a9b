package dataset

import (
	"errors"

	"github.com/jmylchreest/coralcolours/internal/image"
)

// Skip records an image that was not turned into a row, and why.
type Skip struct {
	Path   string
	Reason error
}

// ImageResult is the outcome for one file: exactly one of Row and Skip is set.
type ImageResult struct {
	Path string
	Row  *Row
	Skip *Skip
}

// Skipped reports whether the image was skipped.
func (r ImageResult) Skipped() bool {
	return r.Skip != nil
}

// LabelReport summarises one label folder.
type LabelReport struct {
	Label     string
	Processed int
	Skipped   int
	Skips     []Skip
}

// Report summarises a whole run.
type Report struct {
	Output string
	Labels []LabelReport
}

// Processed returns the number of rows written across all labels.
func (r *Report) Processed() int {
	n := 0
	for _, l := range r.Labels {
		n += l.Processed
	}
	return n
}

// Skipped returns the number of skipped images across all labels.
func (r *Report) Skipped() int {
	n := 0
	for _, l := range r.Labels {
		n += l.Skipped
	}
	return n
}

// isSkippable reports whether err only affects the current image.
func isSkippable(err error) bool {
	var nf *image.NotFoundError
	var de *image.DecodeError
	return errors.As(err, &nf) || errors.As(err, &de)
}
