package stats

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/pangenome/pafstats/internal/paf"
	"github.com/spf13/cobra"
)

// FileStats is one pass's worth of mapping counters over a single PAF file.
type FileStats struct {
	// Path of the PAF file the counters were read from
	Path string

	// TotalMappings is the number of well-formed records
	TotalMappings int

	// TotalBases is the sum of query spans over all records
	TotalBases int

	// TotalMatches is the sum of the PAF matches column
	TotalMatches int

	// SelfMappings counts records where query and target name are equal
	SelfMappings int

	// InterChromosomal counts same-genome records between different
	// chromosomes
	InterChromosomal int

	// InterGenome counts records between two different genomes
	InterGenome int

	// aligned bases and matches per directed genome pair
	genomePairBases   map[pair]int
	genomePairMatches map[pair]int

	// mapping counts per (query, target) sequence pair
	chrPairs map[pair]int

	// last recorded length per full sequence name; PAF guarantees a
	// name's length is consistent, so last-write-wins
	seqLens map[string]int
}

func newFileStats(path string) *FileStats {
	return &FileStats{
		Path:              path,
		genomePairBases:   make(map[pair]int),
		genomePairMatches: make(map[pair]int),
		chrPairs:          make(map[pair]int),
		seqLens:           make(map[string]int),
	}
}

// Collect reads the PAF file at path once and accumulates its counters.
func Collect(path string) (*FileStats, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	return collectFrom(path, f)
}

func collectFrom(path string, r io.Reader) (*FileStats, error) {
	s := newFileStats(path)
	pr := paf.NewReader(r)
	for {
		a, err := pr.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		s.add(&a)
	}
	return s, nil
}

// add folds one alignment into the counters.
func (s *FileStats) add(a *paf.Alignment) {
	s.TotalMappings++
	s.TotalBases += a.SpanLen()
	s.TotalMatches += a.Matches

	s.seqLens[a.Query] = a.QueryLen
	s.seqLens[a.Target] = a.TargetLen

	qGenome, qChr := paf.SplitName(a.Query)
	tGenome, tChr := paf.SplitName(a.Target)

	switch {
	case a.Query == a.Target:
		s.SelfMappings++
	case qGenome != tGenome:
		s.InterGenome++
		p := pair{qGenome, tGenome}
		s.genomePairBases[p] += a.SpanLen()
		s.genomePairMatches[p] += a.Matches
	case qChr != tChr:
		s.InterChromosomal++
	}

	s.chrPairs[pair{a.Query, a.Target}]++
}

// genomeSizes sums the recorded length of every sequence into its genome.
func (s *FileStats) genomeSizes() map[string]int {
	sizes := make(map[string]int)
	for name, size := range s.seqLens {
		genome, _ := paf.SplitName(name)
		sizes[genome] += size
	}
	return sizes
}

// GenomeCoverage is the coverage of one genome by another's alignments.
// It is directional: coverage(A->B) divides by A's size, coverage(B->A)
// by B's.
type GenomeCoverage struct {
	QueryGenome  string
	TargetGenome string

	// Bases aligned between the pair, and the query genome's total size
	Bases      int
	GenomeSize int

	// Percent is 100 * Bases / GenomeSize
	Percent float64

	// Identity is the matches-per-aligned-base percentage for the pair
	Identity float64
}

// Coverages derives the per-genome-pair coverage values, highest first.
func (s *FileStats) Coverages() []GenomeCoverage {
	sizes := s.genomeSizes()

	var covs []GenomeCoverage
	for p, bases := range s.genomePairBases {
		size := sizes[p[0]]
		if size == 0 {
			continue
		}
		c := GenomeCoverage{
			QueryGenome:  p[0],
			TargetGenome: p[1],
			Bases:        bases,
			GenomeSize:   size,
			Percent:      100 * float64(bases) / float64(size),
		}
		if bases > 0 {
			c.Identity = 100 * float64(s.genomePairMatches[p]) / float64(bases)
		}
		covs = append(covs, c)
	}

	sort.Slice(covs, func(i, j int) bool {
		if covs[i].Percent != covs[j].Percent {
			return covs[i].Percent > covs[j].Percent
		}
		if covs[i].QueryGenome != covs[j].QueryGenome {
			return covs[i].QueryGenome < covs[j].QueryGenome
		}
		return covs[i].TargetGenome < covs[j].TargetGenome
	})
	return covs
}

// Summary holds the numbers derived from the raw counters.
type Summary struct {
	ChrPairs    int
	GenomePairs int
	AvgCoverage float64
	Above95     int
	AvgIdentity float64
}

// Summarize rolls the derived coverage values into headline numbers.
func (s *FileStats) Summarize() Summary {
	covs := s.Coverages()

	sum := Summary{
		ChrPairs:    len(s.chrPairs),
		GenomePairs: len(covs),
	}
	for _, c := range covs {
		sum.AvgCoverage += c.Percent
		if c.Percent > 95 {
			sum.Above95++
		}
	}
	if len(covs) > 0 {
		sum.AvgCoverage /= float64(len(covs))
	}
	if s.TotalBases > 0 {
		sum.AvgIdentity = 100 * float64(s.TotalMatches) / float64(s.TotalBases)
	}
	return sum
}

// Report writes the single-file summary to w. With detailed set, every
// genome pair is listed with its coverage and identity.
func (s *FileStats) Report(w io.Writer, detailed bool) {
	sum := s.Summarize()

	fmt.Fprintf(w, "\nStatistics for %s:\n", s.Path)
	fmt.Fprintln(w, strings.Repeat("=", 40))
	fmt.Fprintf(w, "Total mappings:        %s\n", comma(s.TotalMappings))
	fmt.Fprintf(w, "Total bases:           %s\n", comma(s.TotalBases))
	fmt.Fprintf(w, "Average identity:      %.1f%%\n", sum.AvgIdentity)
	fmt.Fprintf(w, "Self mappings:         %s\n", comma(s.SelfMappings))
	fmt.Fprintf(w, "Inter-chromosomal:     %s\n", comma(s.InterChromosomal))
	fmt.Fprintf(w, "Inter-genome:          %s\n", comma(s.InterGenome))
	fmt.Fprintf(w, "Chromosome pairs:      %s\n", comma(sum.ChrPairs))
	fmt.Fprintf(w, "Genome pairs:          %s\n", comma(sum.GenomePairs))
	fmt.Fprintf(w, "Average coverage:      %.1f%%\n", sum.AvgCoverage)
	fmt.Fprintf(w, "Pairs >95%% coverage:   %d/%d\n", sum.Above95, sum.GenomePairs)

	if !detailed {
		return
	}
	covs := s.Coverages()
	if len(covs) == 0 {
		return
	}
	fmt.Fprintf(w, "\nPer-genome-pair statistics:\n")
	fmt.Fprintln(w, strings.Repeat("-", 60))
	for _, c := range covs {
		fmt.Fprintf(w, "%-20s -> %-20s %6.1f%% cov, %6.1f%% id, %10s bp\n",
			c.QueryGenome, c.TargetGenome, c.Percent, c.Identity, comma(c.Bases))
	}
}

// Compare writes a before/after comparison of two files to w: the second
// file is assumed to be a re-run of the first, eg after filtering.
func Compare(w io.Writer, before, after *FileStats) {
	sumB, sumA := before.Summarize(), after.Summarize()

	fmt.Fprintf(w, "\nComparison: %s vs %s\n", before.Path, after.Path)
	fmt.Fprintln(w, strings.Repeat("=", 60))

	compareCounts(w, "Mappings", before.Path, after.Path, before.TotalMappings, after.TotalMappings)
	compareCounts(w, "Total bases", before.Path, after.Path, before.TotalBases, after.TotalBases)

	fmt.Fprintf(w, "\nAverage identity:\n")
	fmt.Fprintf(w, "  %-30s: %.1f%%\n", before.Path, sumB.AvgIdentity)
	fmt.Fprintf(w, "  %-30s: %.1f%%\n", after.Path, sumA.AvgIdentity)
	fmt.Fprintf(w, "  %-30s: %+.1f%%\n", "Change", sumA.AvgIdentity-sumB.AvgIdentity)

	compareCounts(w, "Inter-chromosomal mappings", before.Path, after.Path, before.InterChromosomal, after.InterChromosomal)
	compareCounts(w, "Chromosome pairs", before.Path, after.Path, sumB.ChrPairs, sumA.ChrPairs)

	fmt.Fprintf(w, "\nAverage genome pair coverage:\n")
	fmt.Fprintf(w, "  %-30s: %.1f%%\n", before.Path, sumB.AvgCoverage)
	fmt.Fprintf(w, "  %-30s: %.1f%%\n", after.Path, sumA.AvgCoverage)
	fmt.Fprintf(w, "  %-30s: %+.1f%%\n", "Change", sumA.AvgCoverage-sumB.AvgCoverage)

	fmt.Fprintf(w, "\nGenome pairs with >95%% coverage:\n")
	fmt.Fprintf(w, "  %-30s: %d/%d\n", before.Path, sumB.Above95, sumB.GenomePairs)
	fmt.Fprintf(w, "  %-30s: %d/%d\n", after.Path, sumA.Above95, sumA.GenomePairs)
}

func compareCounts(w io.Writer, label, name1, name2 string, v1, v2 int) {
	fmt.Fprintf(w, "\n%s:\n", label)
	fmt.Fprintf(w, "  %-30s: %s\n", name1, comma(v1))
	fmt.Fprintf(w, "  %-30s: %s\n", name2, comma(v2))

	diff := v2 - v1
	pct := 0.0
	if v1 > 0 {
		pct = 100 * float64(diff) / float64(v1)
	}
	fmt.Fprintf(w, "  %-30s: %s (%+.1f%%)\n", "Change", signedComma(diff), pct)
}

// StatsCmd summarizes one PAF file or, with a second argument, compares two.
func StatsCmd(cmd *cobra.Command, args []string) {
	detailed, _ := cmd.Flags().GetBool("detailed")

	first, err := Collect(args[0])
	if err != nil {
		stderr.Fatalln(err)
	}

	if len(args) == 1 {
		first.Report(os.Stdout, detailed)
		return
	}

	second, err := Collect(args[1])
	if err != nil {
		stderr.Fatalln(err)
	}
	Compare(os.Stdout, first, second)
}
