// Package config is for app wide settings that are unmarshalled
// from Viper (see: /cmd)
package config

import (
	"log"

	"github.com/spf13/viper"
)

// ReportConfig bounds the list lengths in the textual reports.
type ReportConfig struct {
	// the number of genome pairs shown in coverage listings
	TopPairs int `mapstructure:"top-pairs"`

	// the number of problematic or missing entries listed per report
	ProblemList int `mapstructure:"problem-list"`
}

// CoverageConfig is the coverage band treated as a true 1:1 homolog match.
// Summed coverage can legitimately sit a little above 1.0 because
// overlapping alignments are not deduplicated.
type CoverageConfig struct {
	// lower bound of the ~100% coverage band
	OneToOneLow float64 `mapstructure:"one-to-one-low"`

	// upper bound of the ~100% coverage band
	OneToOneHigh float64 `mapstructure:"one-to-one-high"`
}

// Config is the root-level settings struct
type Config struct {
	// report list caps
	Report ReportConfig `mapstructure:"report"`

	// homolog coverage band
	Coverage CoverageConfig `mapstructure:"coverage"`
}

// NewConfig returns a new Config struct populated by
// Viper settings and/or command line arguments
func NewConfig() Config {
	setDefaults()

	var c Config
	if err := viper.Unmarshal(&c); err != nil {
		log.Fatalf("unable to decode settings into struct, %v", err)
	}
	return c
}

func setDefaults() {
	viper.SetDefault("report.top-pairs", 20)
	viper.SetDefault("report.problem-list", 10)
	viper.SetDefault("coverage.one-to-one-low", 0.95)
	viper.SetDefault("coverage.one-to-one-high", 1.05)
}
