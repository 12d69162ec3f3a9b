package image

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// SupportedImageExtensions returns the file extensions picked up by a folder scan by default.
func SupportedImageExtensions() []string {
	return []string{".jpg", ".jpeg", ".png"}
}

// NormaliseExtensions lowercases extensions and ensures each has a leading dot.
// Empty entries and duplicates are dropped.
func NormaliseExtensions(exts []string) []string {
	out := make([]string, 0, len(exts))
	for _, ext := range exts {
		ext = strings.ToLower(strings.TrimSpace(ext))
		if ext == "" {
			continue
		}
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		if !slices.Contains(out, ext) {
			out = append(out, ext)
		}
	}
	return out
}

// IsImageFile checks if a file name carries one of the given extensions (case-insensitive).
// A nil list means SupportedImageExtensions.
func IsImageFile(name string, exts []string) bool {
	if exts == nil {
		exts = SupportedImageExtensions()
	}
	ext := strings.ToLower(filepath.Ext(name))
	return ext != "" && slices.Contains(NormaliseExtensions(exts), ext)
}

// ScanDirectoryForImages returns the image files in dirPath, sorted by name.
// It does not recurse into subdirectories, but follows symlinks. Files with
// other extensions, or whose name matches one of the exclude globs, are
// ignored; a folder without images yields an empty list.
func ScanDirectoryForImages(dirPath string, exts []string, exclude ...string) ([]string, error) {
	for _, pattern := range exclude {
		if !doublestar.ValidatePattern(pattern) {
			return nil, fmt.Errorf("invalid exclude pattern %q", pattern)
		}
	}

	entries, err := os.ReadDir(dirPath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, &NotFoundError{Path: dirPath}
		}
		return nil, fmt.Errorf("failed to read directory: %w", err)
	}

	var imageFiles []string
	for _, entry := range entries {
		if !IsImageFile(entry.Name(), exts) || excluded(entry.Name(), exclude) {
			continue
		}
		fullPath := filepath.Join(dirPath, entry.Name())

		// For symlinks, stat the target to determine if it's a file.
		info, err := os.Stat(fullPath)
		if err != nil || info.IsDir() {
			continue
		}
		imageFiles = append(imageFiles, fullPath)
	}

	return imageFiles, nil
}

// excluded reports whether name matches any of the patterns.
// Patterns are checked by the caller, so match errors cannot occur.
func excluded(name string, patterns []string) bool {
	for _, pattern := range patterns {
		if ok, _ := doublestar.Match(pattern, name); ok {
			return true
		}
	}
	return false
}

// ListLabelDirectories returns the names of the subdirectories of base, sorted.
// Hidden directories are skipped.
func ListLabelDirectories(base string) ([]string, error) {
	entries, err := os.ReadDir(base)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, &NotFoundError{Path: base}
		}
		return nil, fmt.Errorf("failed to read base directory: %w", err)
	}

	var labels []string
	for _, entry := range entries {
		if strings.HasPrefix(entry.Name(), ".") {
			continue
		}
		info, err := os.Stat(filepath.Join(base, entry.Name()))
		if err != nil || !info.IsDir() {
			continue
		}
		labels = append(labels, entry.Name())
	}
	return labels, nil
}
