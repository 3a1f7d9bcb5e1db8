// Package paf reads minimal PAF (Pairwise mApping Format) records: one
// tab-separated line per aligned region between a query and a target
// sequence, with at least 12 columns.
package paf

import (
	"fmt"
	"io"
	"strconv"

	"github.com/jgbaldwinbrown/fasttsv"
)

// minFields is the column count of a minimal PAF record. Shorter lines are
// malformed and skipped.
const minFields = 12

// Alignment is one PAF record. Only the positional columns used by the
// reports are retained; trailing SAM-style tags are ignored.
type Alignment struct {
	// Query sequence name, length and aligned span [Start,End)
	Query      string
	QueryLen   int
	QueryStart int
	QueryEnd   int

	// Reverse is true for a minus-strand alignment
	Reverse bool

	// Target sequence name, length and aligned span [Start,End)
	Target      string
	TargetLen   int
	TargetStart int
	TargetEnd   int

	// Matches is the number of matching bases (column 10)
	Matches int

	// BlockLen is the alignment block length (column 11)
	BlockLen int
}

// SpanLen returns the number of query bases this alignment spans.
func (a *Alignment) SpanLen() int {
	return a.QueryEnd - a.QueryStart
}

// QueryCov returns the fraction of the query covered by this single
// alignment. Alignments are not deduplicated, so summing these over a
// chromosome pair can exceed 1 when they overlap.
func (a *Alignment) QueryCov() float64 {
	if a.QueryLen == 0 {
		return 0
	}
	return float64(a.QueryEnd-a.QueryStart) / float64(a.QueryLen)
}

// TargetCov returns the fraction of the target covered by this single
// alignment.
func (a *Alignment) TargetCov() float64 {
	if a.TargetLen == 0 {
		return 0
	}
	return float64(a.TargetEnd-a.TargetStart) / float64(a.TargetLen)
}

// parseLine converts one line of tab-separated fields into an Alignment.
// Lines with fewer than minFields columns are skipped (ok is false). A
// non-numeric length or coordinate is an input-format error.
func parseLine(fields []string) (a Alignment, ok bool, err error) {
	if len(fields) < minFields {
		return a, false, nil
	}

	a.Query = fields[0]
	a.Reverse = fields[4] == "-"
	a.Target = fields[5]

	ints := []struct {
		dst *int
		col int
	}{
		{&a.QueryLen, 1},
		{&a.QueryStart, 2},
		{&a.QueryEnd, 3},
		{&a.TargetLen, 6},
		{&a.TargetStart, 7},
		{&a.TargetEnd, 8},
		{&a.Matches, 9},
		{&a.BlockLen, 10},
	}
	for _, f := range ints {
		v, convErr := strconv.Atoi(fields[f.col])
		if convErr != nil {
			return Alignment{}, false, fmt.Errorf("column %d %q: %w", f.col+1, fields[f.col], convErr)
		}
		*f.dst = v
	}
	return a, true, nil
}

// Reader streams alignments out of PAF text. The whole input is never held
// in memory at once.
type Reader struct {
	s    *fasttsv.Scanner
	line int
}

// NewReader returns a Reader over r.
func NewReader(r io.Reader) *Reader {
	return &Reader{s: fasttsv.NewScanner(r)}
}

// Next returns the next well-formed alignment, skipping malformed (short)
// lines. It returns io.EOF when the input is exhausted and a wrapped
// strconv error when a numeric column fails to parse; the latter should
// abort the whole run.
func (r *Reader) Next() (Alignment, error) {
	for r.s.Scan() {
		r.line++
		a, ok, err := parseLine(r.s.Line())
		if err != nil {
			return Alignment{}, fmt.Errorf("paf line %d: %w", r.line, err)
		}
		if !ok {
			continue
		}
		return a, nil
	}
	return Alignment{}, io.EOF
}
