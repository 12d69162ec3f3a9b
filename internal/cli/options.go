package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/pflag"

	"github.com/jmylchreest/coralcolours/internal/config"
	"github.com/jmylchreest/coralcolours/internal/seed"
)

// pipelineOptions are the quantizer and seed flags shared by build and extract.
type pipelineOptions struct {
	colours       int
	resample      string
	seedMode      string
	seed          int64
	restarts      int
	maxIterations int
}

func (o *pipelineOptions) addFlags(fs *pflag.FlagSet) {
	d := config.Default()

	modes := make([]string, 0, len(seed.ValidModes()))
	for _, m := range seed.ValidModes() {
		modes = append(modes, string(m))
	}

	fs.IntVarP(&o.colours, "colours", "c", d.Quantizer.Clusters, "number of colours kept per image")
	fs.StringVar(&o.resample, "resample", fmt.Sprintf("%dx%d", d.Quantizer.Width, d.Quantizer.Height), "grid each image is resampled to before clustering (WIDTHxHEIGHT)")
	fs.StringVar(&o.seedMode, "seed-mode", string(d.Seed.Mode), "seed mode ("+strings.Join(modes, ", ")+")")
	fs.Int64Var(&o.seed, "seed", d.Seed.Value, "seed value for manual seed mode")
	fs.IntVar(&o.restarts, "restarts", d.Quantizer.Restarts, "k-means restarts per image; the lowest inertia wins")
	fs.IntVar(&o.maxIterations, "max-iterations", d.Quantizer.MaxIterations, "maximum k-means iterations per restart")
}

// apply overlays the flags the user set onto cfg, so unset flags keep
// values that came from the environment.
func (o *pipelineOptions) apply(fs *pflag.FlagSet, cfg *config.Config) error {
	if fs.Changed("colours") {
		cfg.Quantizer.Clusters = o.colours
	}
	if fs.Changed("resample") {
		w, h, err := config.ParseResample(o.resample)
		if err != nil {
			return err
		}
		cfg.Quantizer.Width, cfg.Quantizer.Height = w, h
	}
	if fs.Changed("seed-mode") {
		mode, err := seed.ParseMode(o.seedMode)
		if err != nil {
			return err
		}
		cfg.Seed.Mode = mode
	}
	if fs.Changed("seed") {
		cfg.Seed.Value = o.seed
	}
	if fs.Changed("restarts") {
		cfg.Quantizer.Restarts = o.restarts
	}
	if fs.Changed("max-iterations") {
		cfg.Quantizer.MaxIterations = o.maxIterations
	}
	return nil
}
