package image

import "fmt"

// NotFoundError is returned when an input path does not exist.
type NotFoundError struct {
	Path string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("image file not found: %s", e.Path)
}

// DecodeError is returned when a file exists but cannot be decoded as a raster image.
type DecodeError struct {
	Path   string
	Format string // detected format, empty when unknown
	Err    error
}

func (e *DecodeError) Error() string {
	if e.Format != "" {
		return fmt.Sprintf("failed to decode image %s (format: %s): %v", e.Path, e.Format, e.Err)
	}
	return fmt.Sprintf("failed to decode image %s: %v", e.Path, e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}
