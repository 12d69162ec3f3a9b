package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/coralcolours/internal/dataset"
)

func newSummaryCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "summary <dataset.csv>",
		Short: "Summarise the dominant colours of a dataset per label",
		Long: `Summary reads a dataset written by build and prints, for each label, the
number of images, statistics of the top colour's frequency and the colour
that is most often the top one.`,
		Args: cobra.ExactArgs(1),
		RunE: runSummary,
	}
}

// runSummary executes the summary command.
func runSummary(cmd *cobra.Command, args []string) error {
	rows, k, err := dataset.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("failed to read dataset: %w", err)
	}

	t := NewTable("LABEL", "IMAGES", "MEAN", "STDDEV", "MIN", "MAX", "TOP COLOUR", "COUNT")
	t.SetAlignRight(1, 2, 3, 4, 5, 7)
	for _, s := range dataset.Summarise(rows) {
		t.AddRow(
			s.Label,
			strconv.Itoa(s.Images),
			dataset.FormatFrequency(s.MeanDominant),
			dataset.FormatFrequency(s.StdDevDominant),
			dataset.FormatFrequency(s.MinDominant),
			dataset.FormatFrequency(s.MaxDominant),
			s.TopColour,
			strconv.Itoa(s.TopColourCount),
		)
	}

	out := cmd.OutOrStdout()
	if _, err := fmt.Fprintf(out, "%d rows, %d colours per row\n\n", len(rows), k); err != nil {
		return err
	}
	return t.Write(out)
}
