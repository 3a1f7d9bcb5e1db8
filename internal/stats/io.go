// Package stats aggregates PAF alignment records into coverage and mapping
// summaries, grouped by the genome and chromosome parts of PanSN sequence
// names.
package stats

import (
	"log"
	"os"
	"strconv"
	"strings"
)

// stderr is for logging to the user, without the log prefixes
var stderr = log.New(os.Stderr, "", 0)

// pair is an ordered pair of sequence or genome names, usable as a map key.
// Direction matters: pair{a, b} and pair{b, a} are distinct accumulators.
type pair [2]string

// comma renders n with thousands separators: 1234567 -> "1,234,567".
func comma(n int) string {
	sign := ""
	if n < 0 {
		sign, n = "-", -n
	}

	s := strconv.Itoa(n)
	if len(s) <= 3 {
		return sign + s
	}

	var b strings.Builder
	rem := len(s) % 3
	if rem > 0 {
		b.WriteString(s[:rem])
	}
	for i := rem; i < len(s); i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(s[i : i+3])
	}
	return sign + b.String()
}

// signedComma renders a difference with an explicit sign: "+1,234".
func signedComma(n int) string {
	if n < 0 {
		return "-" + comma(-n)
	}
	return "+" + comma(n)
}
