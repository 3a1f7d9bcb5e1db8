package cmd

import "testing"

func TestStatsCmd_Args(t *testing.T) {
	if err := statsCmd.Args(statsCmd, []string{}); err == nil {
		t.Error("zero files should be an argument-count error")
	}
	if err := statsCmd.Args(statsCmd, []string{"a.paf", "b.paf", "c.paf"}); err == nil {
		t.Error("three files should be an argument-count error")
	}
	if err := statsCmd.Args(statsCmd, []string{"a.paf"}); err != nil {
		t.Errorf("one file should be accepted: %v", err)
	}
	if err := statsCmd.Args(statsCmd, []string{"a.paf", "b.paf"}); err != nil {
		t.Errorf("two files should be accepted: %v", err)
	}
}

func TestAnalysisCmds_Args(t *testing.T) {
	if err := coverageCmd.Args(coverageCmd, []string{}); err == nil {
		t.Error("coverage: zero files should be an argument-count error")
	}
	if err := coverageCmd.Args(coverageCmd, []string{"a.paf", "b.paf"}); err != nil {
		t.Errorf("coverage: any number of files should be accepted: %v", err)
	}
	if err := genomesCmd.Args(genomesCmd, []string{}); err == nil {
		t.Error("genomes: zero files should be an argument-count error")
	}
}
