// Package security provides path checks for user supplied dataset locations.
package security

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
)

// ValidateLabel checks that label names one directory directly inside baseDir.
func ValidateLabel(label, baseDir string) error {
	if label == "" {
		return errors.New("empty label")
	}
	if label == "." || label == ".." || strings.ContainsAny(label, `/\`) {
		return fmt.Errorf("label %q must be a plain directory name", label)
	}
	return ValidateWithin(filepath.Join(baseDir, label), baseDir)
}

// ValidateWithin returns an error when path, once cleaned and made absolute,
// lies outside baseDir.
func ValidateWithin(path, baseDir string) error {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("failed to resolve path: %w", err)
	}
	absBase, err := filepath.Abs(baseDir)
	if err != nil {
		return fmt.Errorf("failed to resolve base directory: %w", err)
	}

	if absPath != absBase && !strings.HasPrefix(absPath, absBase+string(filepath.Separator)) {
		return fmt.Errorf("path %s would escape %s (attempted path traversal)", path, baseDir)
	}
	return nil
}
