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

// ChromPair accumulates the coverage fractions of every alignment between
// one query sequence and one target sequence.
type ChromPair struct {
	// Query and Target are the full sequence names
	Query  string
	Target string

	// Alignments is the number of records folded in
	Alignments int

	// summed per-alignment coverage fractions, not an interval union
	querySum  float64
	targetSum float64
}

// Coverage is the mean of the summed query and target coverage fractions.
// Overlapping alignments are counted twice, so it can exceed 1.
func (p *ChromPair) Coverage() float64 {
	return (p.querySum + p.targetSum) / 2
}

// CoverageTable holds every cross-genome chromosome pair seen in one file.
type CoverageTable struct {
	Path string

	// (query, target) full-name pairs with at least one alignment
	pairs map[pair]*ChromPair

	// genome pair -> set of (query chr, target chr) labels seen
	genomePairs map[pair]map[pair]bool
}

// CollectCoverage reads the PAF file at path once and groups its
// cross-genome alignments by chromosome pair.
func CollectCoverage(path string) (*CoverageTable, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	return collectCoverageFrom(path, f)
}

func collectCoverageFrom(path string, r io.Reader) (*CoverageTable, error) {
	t := &CoverageTable{
		Path:        path,
		pairs:       make(map[pair]*ChromPair),
		genomePairs: make(map[pair]map[pair]bool),
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

		qGenome, qChr := paf.SplitName(a.Query)
		tGenome, tChr := paf.SplitName(a.Target)

		// self mappings at the genome level say nothing about homology
		if qGenome == tGenome {
			continue
		}

		key := pair{a.Query, a.Target}
		cp := t.pairs[key]
		if cp == nil {
			cp = &ChromPair{Query: a.Query, Target: a.Target}
			t.pairs[key] = cp
		}
		cp.Alignments++
		cp.querySum += a.QueryCov()
		cp.targetSum += a.TargetCov()

		gp := pair{qGenome, tGenome}
		if t.genomePairs[gp] == nil {
			t.genomePairs[gp] = make(map[pair]bool)
		}
		t.genomePairs[gp][pair{qChr, tChr}] = true
	}
	return t, nil
}

// coverageBins is the fixed order the distribution is reported in.
var coverageBins = []string{"<10%", "10-50%", "50-80%", "80-95%", "95-105% (1:1)", ">105%"}

// binFor buckets a summed coverage value. Bounds are inclusive below,
// except the 1:1 band which also owns its upper bound.
func binFor(cov float64) string {
	switch {
	case cov < 0.1:
		return coverageBins[0]
	case cov < 0.5:
		return coverageBins[1]
	case cov < 0.8:
		return coverageBins[2]
	case cov < 0.95:
		return coverageBins[3]
	case cov <= 1.05:
		return coverageBins[4]
	default:
		return coverageBins[5]
	}
}

// Homologs returns the pairs whose chromosome label matches across two
// genomes (eg chrI to chrI), sorted by query then target name.
func (t *CoverageTable) Homologs() []*ChromPair {
	var out []*ChromPair
	for _, cp := range t.pairs {
		_, qChr := paf.SplitName(cp.Query)
		_, tChr := paf.SplitName(cp.Target)
		if qChr == tChr {
			out = append(out, cp)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Query != out[j].Query {
			return out[i].Query < out[j].Query
		}
		return out[i].Target < out[j].Target
	})
	return out
}

// Problematic returns the homologs whose coverage falls outside [low, high],
// worst coverage first.
func (t *CoverageTable) Problematic(low, high float64) []*ChromPair {
	var out []*ChromPair
	for _, cp := range t.Homologs() {
		if cov := cp.Coverage(); cov < low || cov > high {
			out = append(out, cp)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Coverage() < out[j].Coverage()
	})
	return out
}

// queries returns the distinct query sequence names, sorted.
func (t *CoverageTable) queries() []string {
	seen := make(map[string]bool)
	for p := range t.pairs {
		seen[p[0]] = true
	}
	return sortedKeys(seen)
}

// targets returns the distinct target sequence names, sorted.
func (t *CoverageTable) targets() []string {
	seen := make(map[string]bool)
	for p := range t.pairs {
		seen[p[1]] = true
	}
	return sortedKeys(seen)
}

func sortedKeys(m map[string]bool) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// MissingHomologs lists the query sequences with no alignment to a
// same-named chromosome in any other genome. Quadratic over the distinct
// sequence names, which number in the tens for whole-genome comparisons.
func (t *CoverageTable) MissingHomologs() []string {
	targets := t.targets()

	var missing []string
	for _, q := range t.queries() {
		qGenome, qChr := paf.SplitName(q)

		found := false
		for _, tg := range targets {
			tGenome, tChr := paf.SplitName(tg)
			if tGenome == qGenome || tChr != qChr {
				continue
			}
			if _, ok := t.pairs[pair{q, tg}]; ok {
				found = true
				break
			}
		}
		if !found {
			missing = append(missing, q)
		}
	}
	return missing
}

// Report writes the chromosome-pair coverage analysis to w.
func (t *CoverageTable) Report(w io.Writer, conf config.Config) {
	fmt.Fprintf(w, "\nAnalyzing %s\n", t.Path)
	fmt.Fprintln(w, strings.Repeat("=", 80))

	fmt.Fprintf(w, "\nTotal chromosome pairs with alignments: %d\n", len(t.pairs))
	fmt.Fprintf(w, "Total genome pairs: %d\n", len(t.genomePairs))

	counts := make(map[string]int)
	for _, cp := range t.pairs {
		counts[binFor(cp.Coverage())]++
	}
	denom := len(t.pairs)
	if denom == 0 {
		denom = 1
	}
	fmt.Fprintf(w, "\nChromosome pair coverage distribution:\n")
	for _, bin := range coverageBins {
		count := counts[bin]
		fmt.Fprintf(w, "  %-15s: %4d pairs (%5.1f%%)\n", bin, count, 100*float64(count)/float64(denom))
	}

	low, high := conf.Coverage.OneToOneLow, conf.Coverage.OneToOneHigh
	homologs := t.Homologs()
	good := 0
	for _, cp := range homologs {
		if cov := cp.Coverage(); cov >= low && cov <= high {
			good++
		}
	}
	denom = len(homologs)
	if denom == 0 {
		denom = 1
	}
	fmt.Fprintf(w, "\nHomologous chromosome pairs (same chr name): %d\n", len(homologs))
	fmt.Fprintf(w, "  With ~100%% coverage (%.2f-%.2f): %d (%.1f%%)\n",
		low, high, good, 100*float64(good)/float64(denom))

	if problematic := t.Problematic(low, high); len(problematic) > 0 {
		if len(problematic) > conf.Report.ProblemList {
			problematic = problematic[:conf.Report.ProblemList]
		}
		fmt.Fprintf(w, "\n  Problematic homologous pairs (coverage != ~1.0):\n")
		for _, cp := range problematic {
			qGenome, qChr := paf.SplitName(cp.Query)
			tGenome, tChr := paf.SplitName(cp.Target)
			fmt.Fprintf(w, "    %s %s -> %s %s: %.1f%% coverage\n",
				qGenome, qChr, tGenome, tChr, 100*cp.Coverage())
		}
	}

	fmt.Fprintf(w, "\nUnique query sequences: %d\n", len(t.queries()))
	fmt.Fprintf(w, "Unique target sequences: %d\n", len(t.targets()))

	if missing := t.MissingHomologs(); len(missing) > 0 {
		fmt.Fprintf(w, "\nChromosomes missing homologous alignments: %d\n", len(missing))
		if len(missing) > conf.Report.ProblemList {
			missing = missing[:conf.Report.ProblemList]
		}
		for _, name := range missing {
			genome, chr := paf.SplitName(name)
			fmt.Fprintf(w, "  %s %s\n", genome, chr)
		}
	}
}

// CoverageCmd runs the chromosome-pair coverage report over each argument.
// A malformed numeric field in any file aborts the whole run.
func CoverageCmd(cmd *cobra.Command, args []string) {
	conf := config.NewConfig()

	for _, path := range args {
		table, err := CollectCoverage(path)
		if err != nil {
			stderr.Fatalln(err)
		}
		table.Report(os.Stdout, conf)
	}
}
