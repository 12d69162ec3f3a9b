package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/jmylchreest/coralcolours/internal/colour"
	"github.com/jmylchreest/coralcolours/internal/image"
	"github.com/jmylchreest/coralcolours/internal/seed"
)

// File is the YAML form of Config. Omitted keys leave the current value alone.
//
//	base_dir: ~/Downloads/Coral_Dataset
//	labels: [CORAL, CORAL_BL]
//	colours: 5
//	resample: 100x100
//	seed_mode: manual
//	seed: 42
type File struct {
	BaseDir       string   `yaml:"base_dir"`
	Output        string   `yaml:"output"`
	Labels        []string `yaml:"labels"`
	Extensions    []string `yaml:"extensions"`
	Exclude       []string `yaml:"exclude"`
	Colours       *int     `yaml:"colours"`
	Resample      string   `yaml:"resample"`
	Restarts      *int     `yaml:"restarts"`
	MaxIterations *int     `yaml:"max_iterations"`
	SeedMode      string   `yaml:"seed_mode"`
	Seed          *int64   `yaml:"seed"`
	Workers       *int     `yaml:"workers"`
	ProgressEvery *int     `yaml:"progress_every"`
}

// LoadFile reads a YAML configuration file. Unknown keys are an error.
func LoadFile(path string) (*File, error) {
	data, err := os.ReadFile(path) // #nosec G304 - user-specified config path
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, &image.NotFoundError{Path: path}
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var f File
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("error unmarshalling the yaml config file %s: %w", path, err)
	}
	return &f, nil
}

// ApplyFile overlays the values set in f.
func (c *Config) ApplyFile(f *File) error {
	if f == nil {
		return nil
	}
	if f.BaseDir != "" {
		c.BaseDir = expandHome(f.BaseDir)
	}
	if f.Output != "" {
		c.Output = expandHome(f.Output)
	}
	if len(f.Labels) > 0 {
		c.Labels = f.Labels
	}
	if len(f.Extensions) > 0 {
		c.Extensions = image.NormaliseExtensions(f.Extensions)
	}
	if len(f.Exclude) > 0 {
		c.Exclude = f.Exclude
	}
	if f.Colours != nil {
		c.Quantizer.Clusters = *f.Colours
	}
	if f.Resample != "" {
		w, h, err := ParseResample(f.Resample)
		if err != nil {
			return err
		}
		c.Quantizer.Width, c.Quantizer.Height = w, h
	}
	if f.Restarts != nil {
		c.Quantizer.Restarts = *f.Restarts
	}
	if f.MaxIterations != nil {
		c.Quantizer.MaxIterations = *f.MaxIterations
	}
	if f.SeedMode != "" {
		mode, err := seed.ParseMode(f.SeedMode)
		if err != nil {
			return &colour.InvalidConfigError{Field: "seed_mode", Value: f.SeedMode, Reason: err.Error()}
		}
		c.Seed.Mode = mode
	}
	if f.Seed != nil {
		c.Seed.Value = *f.Seed
	}
	if f.Workers != nil {
		c.Workers = *f.Workers
	}
	if f.ProgressEvery != nil {
		c.ProgressEvery = *f.ProgressEvery
	}
	return nil
}

// expandHome replaces a leading "~/" with the user's home directory.
func expandHome(path string) string {
	if len(path) < 2 || path[:2] != "~/" {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return home + path[1:]
}
