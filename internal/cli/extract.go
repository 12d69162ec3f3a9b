package cli

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/coralcolours/internal/colour"
	"github.com/jmylchreest/coralcolours/internal/config"
	"github.com/jmylchreest/coralcolours/internal/dataset"
	"github.com/jmylchreest/coralcolours/internal/image"
	"github.com/jmylchreest/coralcolours/internal/seed"
)

// extractOptions are the flags of the extract command.
type extractOptions struct {
	pipelineOptions
	format  string
	output  string
	preview bool
}

func newExtractCmd(g *globalOptions) *cobra.Command {
	o := &extractOptions{}

	cmd := &cobra.Command{
		Use:   "extract <image>",
		Short: "Extract the dominant colours of a single image",
		Long: `Extract runs the same resample and clustering pipeline as build on one
image and prints its ranked colours.

Formats:
  table  rank, hex colour and frequency (default)
  csv    the dataset header and one row, labelled with the parent folder name
  json   colours, frequencies and the seed used
  text   a plain listing of rank, colour and frequency

Examples:
  # Show the five dominant colours
  coralcolours extract CORAL/reef01.jpg

  # Eight colours with terminal swatches
  coralcolours extract --preview -c 8 CORAL/reef01.jpg

  # JSON written to a file
  coralcolours extract -f json -o reef01.json CORAL/reef01.jpg`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExtract(cmd, g, o, args[0])
		},
	}

	fs := cmd.Flags()
	fs.StringVarP(&o.format, "format", "f", "table", "output format (table, csv, json, text)")
	fs.StringVarP(&o.output, "output", "o", "", "output file (default: stdout)")
	fs.BoolVar(&o.preview, "preview", false, "show colour previews in terminal")
	o.addFlags(fs)

	return cmd
}

// runExtract executes the extract command.
func runExtract(cmd *cobra.Command, g *globalOptions, o *extractOptions, imagePath string) error {
	if err := validateFormat(o.format); err != nil {
		return err
	}

	cfg := config.Default()
	if err := o.apply(cmd.Flags(), &cfg); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	quantizer, err := colour.NewQuantizer(cfg.Quantizer)
	if err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	logger := g.logger(cmd.ErrOrStderr())
	if logger.IsDebug() {
		if w, h, err := image.GetImageDimensions(imagePath); err == nil {
			logger.Debug("loading image", "path", imagePath, "width", w, "height", h)
		}
	}

	img, err := image.NewFileLoader().Load(imagePath)
	if err != nil {
		return fmt.Errorf("failed to load image: %w", err)
	}
	logger.Debug("image loaded", "width", img.Width, "height", img.Height)

	s, err := seed.Calculate(img, imagePath, cfg.Seed)
	if err != nil {
		return fmt.Errorf("failed to calculate seed: %w", err)
	}

	palette, err := quantizer.Quantize(img, s)
	if err != nil {
		return fmt.Errorf("failed to extract colours: %w", err)
	}
	logger.Debug("extracted colours", "colours", palette.Len(), "seed", s, "inertia", palette.Inertia)

	output, err := formatPalette(palette, o.format, o.preview, labelFor(imagePath))
	if err != nil {
		return err
	}

	if o.output == "" {
		_, err = cmd.OutOrStdout().Write(output)
		return err
	}
	if err := os.WriteFile(o.output, output, 0o644); err != nil { // #nosec G306 -- palette output is not sensitive
		return fmt.Errorf("failed to write output file: %w", err)
	}
	logger.Info("palette written", "path", o.output)
	return nil
}

// labelFor names a single image's row after the folder it sits in.
func labelFor(imagePath string) string {
	abs, err := filepath.Abs(imagePath)
	if err != nil {
		abs = imagePath
	}
	return filepath.Base(filepath.Dir(abs))
}

// outputFormats lists the formats accepted by --format.
var outputFormats = []string{"table", "csv", "json", "text"}

// validateFormat rejects an unknown --format before any image work starts.
func validateFormat(format string) error {
	if !slices.Contains(outputFormats, format) {
		return fmt.Errorf("unsupported format: %s (supported: %s)", format, strings.Join(outputFormats, ", "))
	}
	return nil
}

// formatPalette formats the palette according to the specified format.
func formatPalette(palette *colour.Palette, format string, preview bool, label string) ([]byte, error) {
	switch format {
	case "table":
		entries, err := palette.Entries()
		if err != nil {
			return nil, err
		}
		headers := []string{"#", "COLOUR", "FREQUENCY"}
		if preview {
			headers = append(headers, "PREVIEW")
		}
		t := NewTable(headers...)
		t.SetAlignRight(0, 2)
		for i, e := range entries {
			row := []string{strconv.Itoa(i + 1), e.Hex, dataset.FormatFrequency(e.Frequency)}
			if preview {
				rgb, err := colour.ParseHex(e.Hex)
				if err != nil {
					return nil, err
				}
				row = append(row, colour.ColourPreview(rgb, 8))
			}
			t.AddRow(row...)
		}
		return []byte(t.Render()), nil

	case "csv":
		entries, err := palette.Entries()
		if err != nil {
			return nil, err
		}
		var buf bytes.Buffer
		w := dataset.NewWriter(&buf, len(entries))
		if err := w.WriteHeader(); err != nil {
			return nil, err
		}
		if err := w.WriteRow(dataset.Row{Label: label, Colours: entries}); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil

	case "json":
		data, err := palette.ToJSON()
		if err != nil {
			return nil, fmt.Errorf("failed to convert to JSON: %w", err)
		}
		return append(data, '\n'), nil

	case "text":
		return []byte(palette.String()), nil

	default:
		return nil, validateFormat(format)
	}
}
