// Package image provides utilities for loading and processing images.
package image

import (
	"errors"
	"fmt"
	"image"
	_ "image/gif"  // Register GIF format
	_ "image/jpeg" // Register JPEG format
	_ "image/png"  // Register PNG format
	"io/fs"
	"os"

	_ "golang.org/x/image/bmp"  // Register BMP format
	_ "golang.org/x/image/tiff" // Register TIFF format
	_ "golang.org/x/image/webp" // Register WebP format
)

// Loader handles loading images into an RGB pixel grid.
type Loader interface {
	// Load loads an image from the given path.
	Load(path string) (*RGBImage, error)
}

// FileLoader loads images from the local filesystem.
type FileLoader struct{}

// NewFileLoader creates a new FileLoader instance.
func NewFileLoader() *FileLoader {
	return &FileLoader{}
}

// Load loads an image from a file path and normalises it to R, G, B channel order.
// A missing file returns *NotFoundError; anything that cannot be decoded returns *DecodeError.
func (l *FileLoader) Load(path string) (*RGBImage, error) {
	if path == "" {
		return nil, &NotFoundError{Path: path}
	}

	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, &NotFoundError{Path: path}
		}
		return nil, fmt.Errorf("failed to stat image file: %w", err)
	}

	if info.IsDir() {
		return nil, &DecodeError{Path: path, Err: errors.New("path is a directory, not a file")}
	}

	file, err := os.Open(path) // #nosec G304 - caller supplied dataset path, intended to be read
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, &NotFoundError{Path: path}
		}
		return nil, fmt.Errorf("failed to open image file: %w", err)
	}
	defer file.Close()

	img, format, err := image.Decode(file)
	if err != nil {
		return nil, &DecodeError{Path: path, Format: format, Err: err}
	}

	rgb, err := FromImage(img)
	if err != nil {
		return nil, &DecodeError{Path: path, Format: format, Err: err}
	}
	return rgb, nil
}

// GetImageDimensions returns the width and height of an image without fully loading it.
func GetImageDimensions(path string) (width, height int, err error) {
	file, err := os.Open(path) // #nosec G304 - caller supplied dataset path, intended to be read
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return 0, 0, &NotFoundError{Path: path}
		}
		return 0, 0, fmt.Errorf("failed to open image: %w", err)
	}
	defer file.Close()

	config, format, err := image.DecodeConfig(file)
	if err != nil {
		return 0, 0, &DecodeError{Path: path, Format: format, Err: err}
	}

	return config.Width, config.Height, nil
}
