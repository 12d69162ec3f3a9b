package dataset

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/hashicorp/go-hclog"
	"golang.org/x/sync/errgroup"

	"github.com/jmylchreest/coralcolours/internal/colour"
	"github.com/jmylchreest/coralcolours/internal/config"
	"github.com/jmylchreest/coralcolours/internal/image"
	"github.com/jmylchreest/coralcolours/internal/seed"
)

// Builder walks the label folders of a base directory and writes one row per image.
type Builder struct {
	config    config.Config
	loader    image.Loader
	quantizer *colour.Quantizer
	logger    hclog.Logger
}

// NewBuilder validates cfg and prepares the pipeline. A nil loader means
// image.FileLoader; a nil logger discards output.
func NewBuilder(cfg config.Config, loader image.Loader, logger hclog.Logger) (*Builder, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	q, err := colour.NewQuantizer(cfg.Quantizer)
	if err != nil {
		return nil, err
	}
	if loader == nil {
		loader = image.NewFileLoader()
	}
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	return &Builder{
		config:    cfg,
		loader:    loader,
		quantizer: q,
		logger:    logger,
	}, nil
}

// ProcessImage runs load, quantize and encode for one file. Missing or
// undecodable files come back as a skip; any other error is fatal for the run.
func (b *Builder) ProcessImage(label, path string) (ImageResult, error) {
	img, err := b.loader.Load(path)
	if err != nil {
		if isSkippable(err) {
			return ImageResult{Path: path, Skip: &Skip{Path: path, Reason: err}}, nil
		}
		return ImageResult{}, err
	}

	s, err := seed.Calculate(img, path, b.config.Seed)
	if err != nil {
		return ImageResult{}, fmt.Errorf("failed to calculate seed: %w", err)
	}

	palette, err := b.quantizer.Quantize(img, s)
	if err != nil {
		return ImageResult{}, fmt.Errorf("failed to quantize image: %w", err)
	}

	entries, err := palette.Entries()
	if err != nil {
		return ImageResult{}, fmt.Errorf("failed to encode palette: %w", err)
	}

	return ImageResult{
		Path: path,
		Row:  &Row{Label: label, Colours: entries, Source: path},
	}, nil
}

// Run processes every label and writes the dataset. On cancellation or a
// fatal error the rows already written stay intact and the partial report is returned.
func (b *Builder) Run(ctx context.Context) (*Report, error) {
	labels, err := b.labels()
	if err != nil {
		return nil, err
	}

	output := b.config.OutputPath()
	w, err := CreateFile(output, b.config.Quantizer.Clusters)
	if err != nil {
		return nil, err
	}
	defer w.Close()

	report := &Report{Output: output}
	for _, label := range labels {
		lr, err := b.processLabel(ctx, w, label)
		report.Labels = append(report.Labels, lr)
		if err != nil {
			return report, err
		}
	}

	if err := w.Close(); err != nil {
		return report, fmt.Errorf("failed to close output file: %w", err)
	}

	b.logger.Info("data saved", "output", output, "rows", w.Rows(), "skipped", report.Skipped())
	return report, nil
}

// labels returns the configured labels, or every subdirectory of the base directory.
func (b *Builder) labels() ([]string, error) {
	if len(b.config.Labels) > 0 {
		return b.config.Labels, nil
	}

	labels, err := image.ListLabelDirectories(b.config.BaseDir)
	if err != nil {
		return nil, err
	}
	if len(labels) == 0 {
		return nil, &colour.InvalidConfigError{
			Field:  "base-dir",
			Value:  b.config.BaseDir,
			Reason: "contains no label subdirectories",
		}
	}
	b.logger.Debug("discovered labels", "labels", labels)
	return labels, nil
}

// processLabel quantizes every image in one label folder. Images are processed
// on up to Workers goroutines, but rows are written in folder order.
func (b *Builder) processLabel(ctx context.Context, w *Writer, label string) (LabelReport, error) {
	report := LabelReport{Label: label}
	folder := filepath.Join(b.config.BaseDir, label)

	paths, err := image.ScanDirectoryForImages(folder, b.config.Extensions, b.config.Exclude...)
	if err != nil {
		return report, fmt.Errorf("label %s: %w", label, err)
	}
	if len(paths) == 0 {
		b.logger.Warn("no images found", "label", label, "folder", folder)
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(b.config.Workers)

	slots := make([]chan ImageResult, len(paths))
	for i := range slots {
		slots[i] = make(chan ImageResult, 1)
	}

	launched := make(chan struct{})
	go func() {
		defer close(launched)
		for i, path := range paths {
			if gctx.Err() != nil {
				return
			}
			g.Go(func() error {
				if err := gctx.Err(); err != nil {
					return err
				}
				res, err := b.ProcessImage(label, path)
				if err != nil {
					return fmt.Errorf("%s: %w", path, err)
				}
				slots[i] <- res
				return nil
			})
		}
	}()

	stop := func() error {
		cancel()
		<-launched
		return g.Wait()
	}

	for i := range paths {
		res, ok := receive(gctx, slots[i])
		if !ok {
			err := stop()
			if err == nil {
				err = ctx.Err()
			}
			return report, fmt.Errorf("label %s aborted: %w", label, err)
		}

		if res.Skipped() {
			report.Skipped++
			report.Skips = append(report.Skips, *res.Skip)
			b.logger.Warn("skipping image", "label", label, "file", filepath.Base(res.Path), "reason", res.Skip.Reason)
			continue
		}

		b.logger.Debug("writing row", "row", res.Row.Record())
		if err := w.WriteRow(*res.Row); err != nil {
			_ = stop()
			return report, err
		}

		report.Processed++
		if report.Processed%b.config.ProgressEvery == 0 {
			b.logger.Info("processed images", "label", label, "processed", report.Processed)
		}
	}

	<-launched
	if err := g.Wait(); err != nil {
		return report, fmt.Errorf("label %s: %w", label, err)
	}

	b.logger.Info("finished processing folder", "label", label, "processed", report.Processed, "skipped", report.Skipped)
	return report, nil
}

// receive waits for the next result in order. A result that was ready before
// ctx was cancelled is still returned.
func receive(ctx context.Context, slot <-chan ImageResult) (ImageResult, bool) {
	select {
	case res := <-slot:
		return res, true
	case <-ctx.Done():
		select {
		case res := <-slot:
			return res, true
		default:
			return ImageResult{}, false
		}
	}
}
