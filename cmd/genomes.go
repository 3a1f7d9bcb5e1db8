package cmd

import (
	"github.com/pangenome/pafstats/internal/stats"
	"github.com/spf13/cobra"
)

// genomesCmd is for genome-level coverage: total aligned bases between each
// ordered genome pair against the query genome's total size.
var genomesCmd = &cobra.Command{
	Use:                        "genomes <paf-file> ...",
	Short:                      "Report total coverage between genome pairs",
	Run:                        stats.GenomesCmd,
	Args:                       cobra.MinimumNArgs(1),
	SuggestionsMinimumDistance: 2,
	Example:                    "  pafstats genomes all-vs-all.paf",
	Long: `Calculate total coverage between genome pairs in one or more PAF files.

Aligned bases are summed per directed genome pair and divided by the query
genome's size (the sum of its sequence lengths). Self mappings at the genome
level are excluded. The top pairs are listed by coverage along with summary
counts of pairs above 90, 95 and 99 percent.`,
	Aliases: []string{"genome"},
}

func init() {
	rootCmd.AddCommand(genomesCmd)
}
