package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/jmylchreest/coralcolours/internal/colour"
	"github.com/jmylchreest/coralcolours/internal/image"
	"github.com/jmylchreest/coralcolours/internal/seed"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "coralcolours.yaml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadAndApplyFile(t *testing.T) {
	path := writeConfig(t, `
base_dir: /data/reefs
labels: [CORAL, CORAL_BL]
extensions: [JPG, png]
exclude: ["*_thumb.*"]
colours: 8
resample: 64x48
restarts: 3
max_iterations: 50
seed_mode: content
seed: 7
workers: 4
progress_every: 25
`)

	f, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile() error = %v", err)
	}

	cfg := Default()
	if err := cfg.ApplyFile(f); err != nil {
		t.Fatalf("ApplyFile() error = %v", err)
	}

	want := Config{
		BaseDir:    "/data/reefs",
		Labels:     []string{"CORAL", "CORAL_BL"},
		Extensions: []string{".jpg", ".png"},
		Exclude:    []string{"*_thumb.*"},
		Quantizer: colour.QuantizerConfig{
			Clusters: 8, Width: 64, Height: 48, Restarts: 3, MaxIterations: 50,
		},
		Seed:          seed.Config{Mode: seed.ModeContent, Value: 7},
		Workers:       4,
		ProgressEvery: 25,
	}
	if diff := cmp.Diff(want, cfg); diff != "" {
		t.Errorf("config mismatch (-want +got):\n%s", diff)
	}
}

func TestApplyFileKeepsUnsetValues(t *testing.T) {
	f, err := LoadFile(writeConfig(t, "colours: 3\n"))
	if err != nil {
		t.Fatal(err)
	}
	cfg := Default()
	if err := cfg.ApplyFile(f); err != nil {
		t.Fatal(err)
	}

	want := Default()
	want.Quantizer.Clusters = 3
	if diff := cmp.Diff(want, cfg); diff != "" {
		t.Errorf("config mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadFileEmpty(t *testing.T) {
	f, err := LoadFile(writeConfig(t, ""))
	if err != nil {
		t.Fatalf("LoadFile() error = %v", err)
	}
	if diff := cmp.Diff(&File{}, f); diff != "" {
		t.Errorf("LoadFile() mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadFileErrors(t *testing.T) {
	_, err := LoadFile(filepath.Join(t.TempDir(), "missing.yaml"))
	var nf *image.NotFoundError
	if !errors.As(err, &nf) {
		t.Errorf("LoadFile(missing) error = %v, want *image.NotFoundError", err)
	}

	if _, err := LoadFile(writeConfig(t, "colors: 5\n")); err == nil {
		t.Error("LoadFile() expected error for unknown key")
	}
	if _, err := LoadFile(writeConfig(t, "colours: [1, 2]\n")); err == nil {
		t.Error("LoadFile() expected error for wrong type")
	}
}

func TestApplyFileInvalidValues(t *testing.T) {
	tests := []struct {
		name string
		file File
	}{
		{name: "resample", file: File{Resample: "big"}},
		{name: "seed mode", file: File{SeedMode: "random"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			err := cfg.ApplyFile(&tt.file)
			var ice *colour.InvalidConfigError
			if !errors.As(err, &ice) {
				t.Errorf("ApplyFile() error = %v, want *InvalidConfigError", err)
			}
		})
	}
}

func TestExpandHome(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home directory")
	}
	if got := expandHome("~/Downloads"); got != filepath.Join(home, "Downloads") {
		t.Errorf("expandHome() = %s", got)
	}
	if got := expandHome("/abs/~/x"); got != "/abs/~/x" {
		t.Errorf("expandHome() changed %s", got)
	}
}
