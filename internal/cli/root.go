// Package cli provides the command-line interface for coralcolours.
package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/hashicorp/go-hclog"
	"github.com/spf13/cobra"

	"github.com/jmylchreest/coralcolours/internal/logging"
	"github.com/jmylchreest/coralcolours/internal/version"
)

// globalOptions holds the persistent flags shared by every command.
type globalOptions struct {
	verbose bool
	quiet   bool
}

// logger builds the run logger writing to w.
func (g *globalOptions) logger(w io.Writer) hclog.Logger {
	return logging.New(logging.Options{Verbose: g.verbose, Quiet: g.quiet, Output: w})
}

// NewRootCmd creates the coralcolours command tree.
func NewRootCmd() *cobra.Command {
	g := &globalOptions{}

	rootCmd := &cobra.Command{
		Use:   "coralcolours",
		Short: "Build dominant colour datasets from labelled coral images",
		Long: `coralcolours extracts the dominant colours of every image in a labelled
image collection and writes them to a CSV dataset.

The base directory holds one subdirectory per label (for example CORAL and
CORAL_BL). Each image is resampled, clustered with seeded k-means and reduced
to its k most frequent colours, so the same inputs always give the same file.`,
		Version:      version.Short(),
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().BoolVarP(&g.verbose, "verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().BoolVarP(&g.quiet, "quiet", "q", false, "suppress non-error output")
	rootCmd.SetVersionTemplate(version.String() + "\n")

	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newBuildCmd(g))
	rootCmd.AddCommand(newExtractCmd(g))
	rootCmd.AddCommand(newSummaryCmd())
	return rootCmd
}

// Execute runs the root command and exits non-zero on failure.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Long:  `Print detailed version information including build date, commit hash, and Go version.`,
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintln(cmd.OutOrStdout(), version.String())
		},
	}
}
