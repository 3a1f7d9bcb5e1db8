package stats

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/pangenome/pafstats/config"
	"github.com/pangenome/pafstats/internal/paf"
	"github.com/spf13/cobra"
)

// GenomeTable accumulates directed aligned-base totals between genomes in
// one PAF file. Records mapping a genome onto itself are excluded.
type GenomeTable struct {
	Path string

	// aligned query bases per directed (query genome, target genome) pair
	pairBases map[pair]int

	// last recorded length per full sequence name, for sequences seen in
	// at least one cross-genome record
	seqLens map[string]int
}

// CollectGenomes reads the PAF file at path once and sums aligned bases
// between every directed genome pair.
func CollectGenomes(path string) (*GenomeTable, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	return collectGenomesFrom(path, f)
}

func collectGenomesFrom(path string, r io.Reader) (*GenomeTable, error) {
	t := &GenomeTable{
		Path:      path,
		pairBases: make(map[pair]int),
		seqLens:   make(map[string]int),
	}

	pr := paf.NewReader(r)
	for {
		a, err := pr.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}

		qGenome, _ := paf.SplitName(a.Query)
		tGenome, _ := paf.SplitName(a.Target)
		if qGenome == tGenome {
			continue
		}

		t.seqLens[a.Query] = a.QueryLen
		t.seqLens[a.Target] = a.TargetLen
		t.pairBases[pair{qGenome, tGenome}] += a.SpanLen()
	}
	return t, nil
}

// GenomeSizes sums the recorded sequence lengths into their genomes.
func (t *GenomeTable) GenomeSizes() map[string]int {
	sizes := make(map[string]int)
	for name, size := range t.seqLens {
		genome, _ := paf.SplitName(name)
		sizes[genome] += size
	}
	return sizes
}

// GenomePairCoverage is the directed coverage of one genome by its
// alignments to another.
type GenomePairCoverage struct {
	QueryGenome  string
	TargetGenome string
	Bases        int
	GenomeSize   int
	Percent      float64
}

// Coverages derives the coverage of every directed genome pair, highest
// first. Direction matters: A->B divides by A's size, B->A by B's.
func (t *GenomeTable) Coverages() []GenomePairCoverage {
	sizes := t.GenomeSizes()

	var covs []GenomePairCoverage
	for p, bases := range t.pairBases {
		size := sizes[p[0]]
		if size == 0 {
			continue
		}
		covs = append(covs, GenomePairCoverage{
			QueryGenome:  p[0],
			TargetGenome: p[1],
			Bases:        bases,
			GenomeSize:   size,
			Percent:      100 * float64(bases) / float64(size),
		})
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

// Report writes the genome-pair coverage summary to w.
func (t *GenomeTable) Report(w io.Writer, conf config.Config) {
	covs := t.Coverages()

	fmt.Fprintf(w, "\nAnalyzing %s\n", t.Path)
	fmt.Fprintln(w, strings.Repeat("=", 80))
	fmt.Fprintf(w, "Found %d genome pairs\n", len(t.pairBases))
	fmt.Fprintf(w, "Genome sizes: %d genomes\n", len(t.GenomeSizes()))

	fmt.Fprintf(w, "\nTop genome pair coverages:\n")
	top := covs
	if len(top) > conf.Report.TopPairs {
		top = top[:conf.Report.TopPairs]
	}
	for _, c := range top {
		fmt.Fprintf(w, "  %s -> %s: %.1f%% (%s / %s bases)\n",
			c.QueryGenome, c.TargetGenome, c.Percent, comma(c.Bases), comma(c.GenomeSize))
	}

	if len(covs) == 0 {
		return
	}
	var sum float64
	above90, above95, above99 := 0, 0, 0
	for _, c := range covs {
		sum += c.Percent
		if c.Percent > 90 {
			above90++
		}
		if c.Percent > 95 {
			above95++
		}
		if c.Percent > 99 {
			above99++
		}
	}
	n := len(covs)
	fmt.Fprintf(w, "\nCoverage summary:\n")
	fmt.Fprintf(w, "  Average coverage: %.1f%%\n", sum/float64(n))
	fmt.Fprintf(w, "  Pairs with >90%% coverage: %d/%d (%.1f%%)\n", above90, n, 100*float64(above90)/float64(n))
	fmt.Fprintf(w, "  Pairs with >95%% coverage: %d/%d (%.1f%%)\n", above95, n, 100*float64(above95)/float64(n))
	fmt.Fprintf(w, "  Pairs with >99%% coverage: %d/%d (%.1f%%)\n", above99, n, 100*float64(above99)/float64(n))
}

// GenomesCmd runs the genome-pair coverage report over each argument.
// A malformed numeric field in any file aborts the whole run.
func GenomesCmd(cmd *cobra.Command, args []string) {
	conf := config.NewConfig()

	for _, path := range args {
		table, err := CollectGenomes(path)
		if err != nil {
			stderr.Fatalln(err)
		}
		table.Report(os.Stdout, conf)
	}
}
