package cmd

import (
	"github.com/pangenome/pafstats/internal/stats"
	"github.com/spf13/cobra"
)

// statsCmd is for mapping counts and coverage of a whole PAF file, or for
// comparing two files (eg before and after filtering).
var statsCmd = &cobra.Command{
	Use:                        "stats <paf-file> [<paf-file2>]",
	Short:                      "Summarize mappings in a PAF file, or compare two files",
	Run:                        stats.StatsCmd,
	Args:                       cobra.RangeArgs(1, 2),
	SuggestionsMinimumDistance: 2,
	Example:                    "  pafstats stats all-vs-all.paf filtered.paf",
	Long: `Count mappings, aligned bases and genome-pair coverage in a PAF file.

With a single file the summary is written to stdout. With two files the
second is treated as a re-run of the first (eg after filtering) and the
change in each statistic is reported.`,
	Aliases: []string{"stat"},
}

// set flags
func init() {
	statsCmd.Flags().BoolP("detailed", "d", false, "show per-genome-pair coverage and identity")

	rootCmd.AddCommand(statsCmd)
}
