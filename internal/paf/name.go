package paf

import "strings"

// SplitName decomposes a PanSN-style sequence name
// (genome#haplotype#chromosome) into its genome and chromosome parts:
//
//	"SGDref#1#chrI" -> ("SGDref#1", "chrI")
//
// Parts past the third are ignored. A name with fewer than three parts is
// its own genome and chromosome.
func SplitName(name string) (genome, chromosome string) {
	parts := strings.Split(name, "#")
	if len(parts) >= 3 {
		return parts[0] + "#" + parts[1], parts[2]
	}
	return name, name
}
