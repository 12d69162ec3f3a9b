// Package config holds the run configuration for building a colour dataset.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/hashicorp/go-multierror"

	"github.com/jmylchreest/coralcolours/internal/colour"
	"github.com/jmylchreest/coralcolours/internal/image"
	"github.com/jmylchreest/coralcolours/internal/security"
	"github.com/jmylchreest/coralcolours/internal/seed"
)

// Environment variables read by ApplyEnv.
const (
	EnvBaseDir    = "CORALCOLOURS_BASE_DIR"
	EnvOutput     = "CORALCOLOURS_OUTPUT"
	EnvLabels     = "CORALCOLOURS_LABELS"
	EnvColours    = "CORALCOLOURS_COLOURS"
	EnvExtensions = "CORALCOLOURS_EXTENSIONS"
	EnvSeed       = "CORALCOLOURS_SEED"
	EnvExclude    = "CORALCOLOURS_EXCLUDE"
	// EnvConfig names a YAML file loaded before the other variables are applied.
	EnvConfig = "CORALCOLOURS_CONFIG"
)

// Config is passed explicitly to the dataset builder; nothing is read from package state.
type Config struct {
	// BaseDir contains one subdirectory per label.
	BaseDir string
	// Output is the CSV path. Empty means OutputPath's default inside BaseDir.
	Output string
	// Labels lists the subdirectories to process, in order.
	// Empty means every subdirectory of BaseDir, sorted by name.
	Labels []string
	// Extensions accepted by the folder scan, case-insensitive.
	Extensions []string
	// Exclude lists glob patterns; matching file names are left out of the scan.
	Exclude []string
	// Quantizer controls resampling and clustering.
	Quantizer colour.QuantizerConfig
	// Seed controls how each image's clustering seed is derived.
	Seed seed.Config
	// Workers is the number of images processed concurrently.
	Workers int
	// ProgressEvery logs progress after this many images per label.
	ProgressEvery int
}

// Default returns the default configuration.
func Default() Config {
	return Config{
		BaseDir:       DefaultBaseDir(),
		Extensions:    image.SupportedImageExtensions(),
		Quantizer:     colour.DefaultQuantizerConfig(),
		Seed:          seed.DefaultConfig(),
		Workers:       1,
		ProgressEvery: 10,
	}
}

// DefaultBaseDir returns ~/Downloads/Coral_Dataset, or a relative path when
// the home directory cannot be determined.
func DefaultBaseDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "Coral_Dataset"
	}
	return filepath.Join(home, "Downloads", "Coral_Dataset")
}

// OutputPath returns the configured output path, defaulting to
// <BaseDir>/coral_colors<k>.csv.
func (c Config) OutputPath() string {
	if c.Output != "" {
		return c.Output
	}
	return filepath.Join(c.BaseDir, fmt.Sprintf("coral_colors%d.csv", c.Quantizer.Clusters))
}

// ApplyEnv overlays values from the environment. lookup is normally os.LookupEnv.
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) error {
	if v, ok := lookup(EnvBaseDir); ok && v != "" {
		c.BaseDir = v
	}
	if v, ok := lookup(EnvOutput); ok && v != "" {
		c.Output = v
	}
	if v, ok := lookup(EnvLabels); ok && v != "" {
		c.Labels = SplitList(v)
	}
	if v, ok := lookup(EnvExtensions); ok && v != "" {
		c.Extensions = image.NormaliseExtensions(SplitList(v))
	}
	if v, ok := lookup(EnvExclude); ok && v != "" {
		c.Exclude = SplitList(v)
	}
	if v, ok := lookup(EnvColours); ok && v != "" {
		k, err := strconv.Atoi(v)
		if err != nil {
			return &colour.InvalidConfigError{Field: EnvColours, Value: v, Reason: "not an integer"}
		}
		c.Quantizer.Clusters = k
	}
	if v, ok := lookup(EnvSeed); ok && v != "" {
		s, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return &colour.InvalidConfigError{Field: EnvSeed, Value: v, Reason: "not an integer"}
		}
		c.Seed.Value = s
	}
	return nil
}

// Validate checks every field and reports all problems at once.
// Bad cluster counts or resample sizes are *colour.InvalidConfigError;
// a missing base directory is *image.NotFoundError.
func (c Config) Validate() error {
	var result *multierror.Error

	if err := c.Quantizer.Validate(); err != nil {
		result = multierror.Append(result, err)
	}

	if c.BaseDir == "" {
		result = multierror.Append(result, &colour.InvalidConfigError{Field: "base-dir", Value: c.BaseDir, Reason: "must not be empty"})
	} else if info, err := os.Stat(c.BaseDir); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			result = multierror.Append(result, &image.NotFoundError{Path: c.BaseDir})
		} else {
			result = multierror.Append(result, fmt.Errorf("failed to access base directory: %w", err))
		}
	} else if !info.IsDir() {
		result = multierror.Append(result, &colour.InvalidConfigError{Field: "base-dir", Value: c.BaseDir, Reason: "not a directory"})
	}

	if len(image.NormaliseExtensions(c.Extensions)) == 0 {
		result = multierror.Append(result, &colour.InvalidConfigError{Field: "extensions", Value: c.Extensions, Reason: "at least one extension is required"})
	}

	for _, pattern := range c.Exclude {
		if !doublestar.ValidatePattern(pattern) {
			result = multierror.Append(result, &colour.InvalidConfigError{Field: "exclude", Value: pattern, Reason: "invalid glob pattern"})
		}
	}

	for _, label := range c.Labels {
		if err := security.ValidateLabel(label, c.BaseDir); err != nil {
			result = multierror.Append(result, &colour.InvalidConfigError{Field: "labels", Value: label, Reason: err.Error()})
		}
	}

	if _, err := seed.ParseMode(string(c.Seed.Mode)); err != nil {
		result = multierror.Append(result, &colour.InvalidConfigError{Field: "seed-mode", Value: c.Seed.Mode, Reason: err.Error()})
	}

	if c.Workers < 1 {
		result = multierror.Append(result, &colour.InvalidConfigError{Field: "workers", Value: c.Workers, Reason: "must be at least 1"})
	}
	if c.ProgressEvery < 1 {
		result = multierror.Append(result, &colour.InvalidConfigError{Field: "progress-every", Value: c.ProgressEvery, Reason: "must be at least 1"})
	}

	return result.ErrorOrNil()
}

// ParseResample parses a "WxH" grid size such as "100x100".
func ParseResample(s string) (width, height int, err error) {
	w, h, ok := strings.Cut(strings.ToLower(strings.TrimSpace(s)), "x")
	if !ok {
		return 0, 0, &colour.InvalidConfigError{Field: "resample", Value: s, Reason: "want WIDTHxHEIGHT"}
	}
	width, errW := strconv.Atoi(w)
	height, errH := strconv.Atoi(h)
	if errW != nil || errH != nil {
		return 0, 0, &colour.InvalidConfigError{Field: "resample", Value: s, Reason: "want WIDTHxHEIGHT"}
	}
	return width, height, nil
}

// SplitList splits a comma separated list, trimming spaces and dropping empty entries.
func SplitList(s string) []string {
	var out []string
	for part := range strings.SplitSeq(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
