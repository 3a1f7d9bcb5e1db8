// Package config is for app wide settings that are unmarshalled
// from Viper (see: /cmd)
package config

import (
	"testing"

	"github.com/spf13/viper"
)

func TestNewConfig_Defaults(t *testing.T) {
	viper.Reset()
	defer viper.Reset()

	c := NewConfig()

	if c.Report.TopPairs != 20 {
		t.Errorf("Report.TopPairs = %d, want 20", c.Report.TopPairs)
	}
	if c.Report.ProblemList != 10 {
		t.Errorf("Report.ProblemList = %d, want 10", c.Report.ProblemList)
	}
	if c.Coverage.OneToOneLow != 0.95 {
		t.Errorf("Coverage.OneToOneLow = %v, want 0.95", c.Coverage.OneToOneLow)
	}
	if c.Coverage.OneToOneHigh != 1.05 {
		t.Errorf("Coverage.OneToOneHigh = %v, want 1.05", c.Coverage.OneToOneHigh)
	}
}

func TestNewConfig_Override(t *testing.T) {
	viper.Reset()
	defer viper.Reset()

	viper.Set("report.top-pairs", 5)
	viper.Set("coverage.one-to-one-low", 0.9)

	c := NewConfig()

	if c.Report.TopPairs != 5 {
		t.Errorf("Report.TopPairs = %d, want 5", c.Report.TopPairs)
	}
	if c.Coverage.OneToOneLow != 0.9 {
		t.Errorf("Coverage.OneToOneLow = %v, want 0.9", c.Coverage.OneToOneLow)
	}
	// untouched settings keep their defaults
	if c.Report.ProblemList != 10 {
		t.Errorf("Report.ProblemList = %d, want 10", c.Report.ProblemList)
	}
}
