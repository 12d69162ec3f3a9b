// Package seed provides deterministic seed generation for k-means clustering.
// Every mode is reproducible: the same inputs always yield the same seed.
package seed

import (
	"crypto/sha256"
	"encoding/binary"
	"fmt"
	"path/filepath"
	"slices"

	"github.com/jmylchreest/coralcolours/internal/image"
)

// Mode determines how the seed for k-means clustering is generated.
type Mode string

const (
	// ModeManual uses the configured seed value for every image (default).
	ModeManual Mode = "manual"
	// ModeContent generates seed from image content hash (deterministic by content).
	ModeContent Mode = "content"
	// ModeFilepath generates seed from absolute file path hash (deterministic by path).
	ModeFilepath Mode = "filepath"
)

// DefaultValue is the seed used in manual mode when none is configured.
const DefaultValue int64 = 42

// Config holds configuration for seed generation.
type Config struct {
	Mode  Mode  // Seed mode
	Value int64 // Seed value (used when Mode is ModeManual)
}

// DefaultConfig returns the manual mode with DefaultValue.
func DefaultConfig() Config {
	return Config{Mode: ModeManual, Value: DefaultValue}
}

// Calculate determines the seed value based on the seed mode.
// img is required for ModeContent, imagePath for ModeFilepath.
func Calculate(img *image.RGBImage, imagePath string, config Config) (int64, error) {
	switch config.Mode {
	case ModeManual, "":
		return config.Value, nil
	case ModeContent:
		if img == nil {
			return 0, fmt.Errorf("image is required for content-based seed mode")
		}
		return CalculateContentSeed(img), nil
	case ModeFilepath:
		if imagePath == "" {
			return 0, fmt.Errorf("image path is required for filepath-based seed mode")
		}
		return CalculateFilepathSeed(imagePath), nil
	default:
		return 0, fmt.Errorf("unknown seed mode: %s", config.Mode)
	}
}

// CalculateContentSeed generates a deterministic seed from image content.
// The same pixels give the same seed regardless of filename or location.
func CalculateContentSeed(img *image.RGBImage) int64 {
	hasher := sha256.New()

	dimBytes := make([]byte, 8)
	binary.LittleEndian.PutUint32(dimBytes[0:4], uint32(img.Width))  // #nosec G115 -- image dimensions are safe to convert
	binary.LittleEndian.PutUint32(dimBytes[4:8], uint32(img.Height)) // #nosec G115 -- image dimensions are safe to convert
	hasher.Write(dimBytes)

	// Sample rows in a grid pattern; enough to identify the image without hashing every byte.
	step := max(img.Height/100, 1)
	for y := 0; y < img.Height; y += step {
		row := y * img.Width * 3
		hasher.Write(img.Pix[row : row+img.Width*3])
	}

	hash := hasher.Sum(nil)
	return int64(binary.LittleEndian.Uint64(hash[:8])) // #nosec G115 -- hash conversion is safe
}

// CalculateFilepathSeed generates a deterministic seed from the absolute file path.
func CalculateFilepathSeed(imagePath string) int64 {
	absPath, err := filepath.Abs(imagePath)
	if err != nil {
		absPath = imagePath
	}

	hash := sha256.Sum256([]byte(absPath))
	return int64(binary.LittleEndian.Uint64(hash[:8])) // #nosec G115 -- hash conversion is safe
}

// ValidModes returns a list of valid seed modes.
func ValidModes() []Mode {
	return []Mode{ModeManual, ModeContent, ModeFilepath}
}

// ParseMode converts a string to a Mode.
// Returns an error if the string is not a valid mode.
func ParseMode(s string) (Mode, error) {
	mode := Mode(s)
	if slices.Contains(ValidModes(), mode) {
		return mode, nil
	}
	return "", fmt.Errorf("invalid seed mode: %s (valid: manual, content, filepath)", s)
}
