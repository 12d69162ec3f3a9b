package seed

import (
	"path/filepath"
	"testing"

	"github.com/jmylchreest/coralcolours/internal/image"
)

func TestCalculateManual(t *testing.T) {
	got, err := Calculate(nil, "", Config{Mode: ModeManual, Value: 7})
	if err != nil {
		t.Fatalf("Calculate() error = %v", err)
	}
	if got != 7 {
		t.Errorf("Calculate() = %d, want 7", got)
	}

	if got, _ := Calculate(nil, "", DefaultConfig()); got != DefaultValue {
		t.Errorf("Calculate(default) = %d, want %d", got, DefaultValue)
	}
}

func TestCalculateContent(t *testing.T) {
	a := image.NewRGBImage(10, 10)
	b := image.NewRGBImage(10, 10)
	c := image.NewRGBImage(10, 10)
	c.Set(3, 0, image.Pixel{1, 0, 0})

	sa, err := Calculate(a, "", Config{Mode: ModeContent})
	if err != nil {
		t.Fatalf("Calculate() error = %v", err)
	}
	sb, _ := Calculate(b, "", Config{Mode: ModeContent})
	sc, _ := Calculate(c, "", Config{Mode: ModeContent})

	if sa != sb {
		t.Errorf("identical content gave different seeds: %d vs %d", sa, sb)
	}
	if sa == sc {
		t.Error("different content gave the same seed")
	}

	if _, err := Calculate(nil, "x.png", Config{Mode: ModeContent}); err == nil {
		t.Error("Calculate(content, nil image) expected error")
	}
}

func TestCalculateFilepath(t *testing.T) {
	dir := t.TempDir()
	p1 := filepath.Join(dir, "a.png")
	p2 := filepath.Join(dir, "b.png")

	s1, err := Calculate(nil, p1, Config{Mode: ModeFilepath})
	if err != nil {
		t.Fatalf("Calculate() error = %v", err)
	}
	again, _ := Calculate(nil, p1, Config{Mode: ModeFilepath})
	s2, _ := Calculate(nil, p2, Config{Mode: ModeFilepath})

	if s1 != again {
		t.Error("same path gave different seeds")
	}
	if s1 == s2 {
		t.Error("different paths gave the same seed")
	}

	if _, err := Calculate(nil, "", Config{Mode: ModeFilepath}); err == nil {
		t.Error("Calculate(filepath, empty path) expected error")
	}
}

func TestCalculateUnknownMode(t *testing.T) {
	if _, err := Calculate(nil, "", Config{Mode: "random"}); err == nil {
		t.Error("Calculate(random) expected error")
	}
}

func TestParseMode(t *testing.T) {
	tests := []struct {
		in      string
		want    Mode
		wantErr bool
	}{
		{in: "manual", want: ModeManual},
		{in: "content", want: ModeContent},
		{in: "filepath", want: ModeFilepath},
		{in: "random", wantErr: true},
		{in: "", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseMode(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseMode(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseMode(%q) = %s, want %s", tt.in, got, tt.want)
			}
		})
	}
}
