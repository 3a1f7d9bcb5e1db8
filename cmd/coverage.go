package cmd

import (
	"github.com/pangenome/pafstats/internal/stats"
	"github.com/spf13/cobra"
)

// coverageCmd is for the chromosome-pair homology report: how completely
// each chromosome is covered by alignments to its counterpart in every
// other genome.
var coverageCmd = &cobra.Command{
	Use:                        "coverage <paf-file> ...",
	Short:                      "Report chromosome-pair coverage and missing homologs",
	Run:                        stats.CoverageCmd,
	Args:                       cobra.MinimumNArgs(1),
	SuggestionsMinimumDistance: 2,
	Example:                    "  pafstats coverage yeast-all-vs-all.paf",
	Long: `Analyze chromosome pair coverage in one or more PAF files.

For sequences named in PanSN style (genome#haplotype#chromosome), alignments
between two genomes are grouped by chromosome pair and their per-alignment
coverage fractions summed. Homologous pairs (same chromosome name in two
genomes) are expected near 100% coverage; pairs outside that band and
chromosomes with no homologous alignment at all are listed.

Coverage is a sum over alignments, not a merged interval union, so
overlapping alignments can push a pair above 100%.`,
	Aliases: []string{"cov"},
}

func init() {
	rootCmd.AddCommand(coverageCmd)
}
