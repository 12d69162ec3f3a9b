package cli

import (
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/jmylchreest/coralcolours/internal/config"
	"github.com/jmylchreest/coralcolours/internal/dataset"
	"github.com/jmylchreest/coralcolours/internal/image"
)

// buildOptions are the flags of the build command.
type buildOptions struct {
	pipelineOptions
	configFile string
	baseDir    string
	output     string
	labels     []string
	extensions []string
	exclude    []string
	workers    int
}

func newBuildCmd(g *globalOptions) *cobra.Command {
	o := &buildOptions{}

	cmd := &cobra.Command{
		Use:   "build",
		Short: "Build the colour dataset from labelled image folders",
		Long: `Build walks every label folder under the base directory, extracts the
dominant colours of each image and writes one CSV row per image:

  label,color1,frequency1,...,colorK,frequencyK

Colours are ordered by descending frequency. Images that are missing or
cannot be decoded are logged and skipped. Rows are written as they are
produced, so an interrupted build leaves a valid partial file.

Settings are resolved in order: defaults, a YAML file (--config or
` + config.EnvConfig + `), the environment, then flags. Environment variables:
  ` + config.EnvBaseDir + `, ` + config.EnvOutput + `, ` + config.EnvLabels + `,
  ` + config.EnvColours + `, ` + config.EnvExtensions + `, ` + config.EnvExclude + `,
  ` + config.EnvSeed + `

Examples:
  # Build coral_colors5.csv inside ~/Downloads/Coral_Dataset
  coralcolours build

  # Only the CORAL and CORAL_BL folders, 8 colours, 4 workers
  coralcolours build -b ./dataset -l CORAL,CORAL_BL -c 8 -w 4

  # Derive each image's seed from its pixels instead of a fixed value
  coralcolours build --seed-mode content -o colours.csv

  # Settings from a file, leaving thumbnails out
  coralcolours build --config reefs.yaml --exclude '*_thumb.*'`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runBuild(cmd, g, o)
		},
	}

	d := config.Default()
	fs := cmd.Flags()
	fs.StringVar(&o.configFile, "config", "", "YAML configuration file")
	fs.StringVarP(&o.baseDir, "base-dir", "b", d.BaseDir, "directory containing one subdirectory per label")
	fs.StringVarP(&o.output, "output", "o", "", "output CSV path (default <base-dir>/coral_colors<k>.csv)")
	fs.StringSliceVarP(&o.labels, "labels", "l", nil, "label folders to process, in order (default every subdirectory)")
	fs.StringSliceVar(&o.extensions, "extensions", d.Extensions, "image file extensions to include")
	fs.StringSliceVar(&o.exclude, "exclude", nil, "glob patterns for image file names to leave out")
	fs.IntVarP(&o.workers, "workers", "w", d.Workers, "images processed concurrently")
	o.addFlags(fs)

	return cmd
}

// resolve builds the run configuration from defaults, then the config file,
// then the environment, then flags.
func (o *buildOptions) resolve(fs *pflag.FlagSet) (config.Config, error) {
	cfg := config.Default()

	path := o.configFile
	if !fs.Changed("config") {
		path = os.Getenv(config.EnvConfig)
	}
	if path != "" {
		f, err := config.LoadFile(path)
		if err != nil {
			return cfg, err
		}
		if err := cfg.ApplyFile(f); err != nil {
			return cfg, err
		}
	}

	if err := cfg.ApplyEnv(os.LookupEnv); err != nil {
		return cfg, err
	}

	if fs.Changed("base-dir") {
		cfg.BaseDir = o.baseDir
	}
	if fs.Changed("output") {
		cfg.Output = o.output
	}
	if fs.Changed("labels") {
		cfg.Labels = o.labels
	}
	if fs.Changed("extensions") {
		cfg.Extensions = image.NormaliseExtensions(o.extensions)
	}
	if fs.Changed("exclude") {
		cfg.Exclude = o.exclude
	}
	if fs.Changed("workers") {
		cfg.Workers = o.workers
	}
	return cfg, o.apply(fs, &cfg)
}

// runBuild executes the build command.
func runBuild(cmd *cobra.Command, g *globalOptions, o *buildOptions) error {
	cfg, err := o.resolve(cmd.Flags())
	if err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	logger := g.logger(cmd.ErrOrStderr())
	logger.Debug("configuration", "base_dir", cfg.BaseDir, "output", cfg.OutputPath(),
		"labels", cfg.Labels, "colours", cfg.Quantizer.Clusters, "seed_mode", cfg.Seed.Mode,
		"seed", cfg.Seed.Value, "workers", cfg.Workers)

	builder, err := dataset.NewBuilder(cfg, nil, logger)
	if err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	report, err := builder.Run(ctx)
	if report != nil && !g.quiet {
		if werr := writeReport(cmd.OutOrStdout(), report); werr != nil && err == nil {
			err = werr
		}
	}
	if err != nil {
		return fmt.Errorf("build failed: %w", err)
	}
	return nil
}

// writeReport prints one line per label followed by the skipped files.
func writeReport(w io.Writer, report *dataset.Report) error {
	labels := NewTable("LABEL", "PROCESSED", "SKIPPED")
	labels.SetAlignRight(1, 2)
	for _, l := range report.Labels {
		labels.AddRow(l.Label, strconv.Itoa(l.Processed), strconv.Itoa(l.Skipped))
	}
	labels.AddRow("TOTAL", strconv.Itoa(report.Processed()), strconv.Itoa(report.Skipped()))
	if err := labels.Write(w); err != nil {
		return err
	}

	if report.Skipped() > 0 {
		skips := NewTable("SKIPPED FILE", "REASON")
		skips.SetColumnMaxWidth(1, 60)
		for _, l := range report.Labels {
			for _, s := range l.Skips {
				skips.AddRow(filepath.Join(l.Label, filepath.Base(s.Path)), s.Reason.Error())
			}
		}
		if _, err := fmt.Fprintln(w); err != nil {
			return err
		}
		if err := skips.Write(w); err != nil {
			return err
		}
	}

	_, err := fmt.Fprintf(w, "\nDataset: %s\n", report.Output)
	return err
}
