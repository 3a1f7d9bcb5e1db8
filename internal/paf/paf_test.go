package paf

import (
	"io"
	"strings"
	"testing"
)

func TestParseLine(t *testing.T) {
	tests := []struct {
		name   string
		fields []string
		want   Alignment
		wantOk bool
	}{
		{
			"full record",
			strings.Split("SGDref#1#chrI\t230218\t100\t5100\t+\tDBVPG6765#1#chrI\t229918\t200\t5200\t4900\t5000\t60", "\t"),
			Alignment{
				Query:       "SGDref#1#chrI",
				QueryLen:    230218,
				QueryStart:  100,
				QueryEnd:    5100,
				Target:      "DBVPG6765#1#chrI",
				TargetLen:   229918,
				TargetStart: 200,
				TargetEnd:   5200,
				Matches:     4900,
				BlockLen:    5000,
			},
			true,
		},
		{
			"reverse strand",
			strings.Split("q\t100\t0\t50\t-\tt\t100\t0\t50\t45\t50\t60", "\t"),
			Alignment{
				Query:     "q",
				QueryLen:  100,
				QueryEnd:  50,
				Reverse:   true,
				Target:    "t",
				TargetLen: 100,
				TargetEnd: 50,
				Matches:   45,
				BlockLen:  50,
			},
			true,
		},
		{
			"short line skipped",
			strings.Split("q\t100\t0\t50\t+\tt\t100\t0\t50", "\t"),
			Alignment{},
			false,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok, err := parseLine(tt.fields)
			if err != nil {
				t.Fatalf("parseLine() error = %v", err)
			}
			if ok != tt.wantOk {
				t.Fatalf("parseLine() ok = %v, want %v", ok, tt.wantOk)
			}
			if got != tt.want {
				t.Errorf("parseLine() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestParseLine_BadNumber(t *testing.T) {
	fields := strings.Split("q\tNaN\t0\t50\t+\tt\t100\t0\t50\t45\t50\t60", "\t")
	if _, _, err := parseLine(fields); err == nil {
		t.Error("parseLine() expected an error for a non-numeric length")
	}
}

func TestAlignment_Coverage(t *testing.T) {
	a := Alignment{
		QueryLen: 1000, QueryStart: 100, QueryEnd: 600,
		TargetLen: 2000, TargetStart: 0, TargetEnd: 500,
	}
	if got := a.QueryCov(); got != 0.5 {
		t.Errorf("QueryCov() = %v, want 0.5", got)
	}
	if got := a.TargetCov(); got != 0.25 {
		t.Errorf("TargetCov() = %v, want 0.25", got)
	}
	if got := a.SpanLen(); got != 500 {
		t.Errorf("SpanLen() = %v, want 500", got)
	}
}

func TestReader(t *testing.T) {
	in := strings.Join([]string{
		"a#1#chrI\t100\t0\t100\t+\tb#1#chrI\t100\t0\t100\t95\t100\t60",
		"too\tshort\tline", // skipped
		"a#1#chrII\t200\t0\t150\t-\tb#1#chrII\t200\t0\t150\t140\t150\t60",
		"",
	}, "\n")

	r := NewReader(strings.NewReader(in))

	var got []Alignment
	for {
		a, err := r.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			t.Fatalf("Next() error = %v", err)
		}
		got = append(got, a)
	}

	if len(got) != 2 {
		t.Fatalf("Next() returned %d alignments, want 2", len(got))
	}
	if got[0].Query != "a#1#chrI" || got[1].Query != "a#1#chrII" {
		t.Errorf("Next() queries = %q, %q", got[0].Query, got[1].Query)
	}
	if !got[1].Reverse {
		t.Error("Next() second alignment should be reverse strand")
	}
}

func TestReader_BadNumberAborts(t *testing.T) {
	in := "a#1#chrI\t100\tzero\t100\t+\tb#1#chrI\t100\t0\t100\t95\t100\t60\n"

	r := NewReader(strings.NewReader(in))
	if _, err := r.Next(); err == nil || err == io.EOF {
		t.Errorf("Next() error = %v, want a parse error", err)
	}
}
