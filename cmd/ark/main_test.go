package main

import (
	"os"
	"testing"

	"github.com/rogpeppe/go-internal/testscript"
)

// TestMain lets testscript re-exec this test binary as the "ark" command for
// each script, so CLI behavior is exercised end-to-end without installing a
// built binary first.
func TestMain(m *testing.M) {
	os.Exit(testscript.RunMain(m, map[string]func() int{
		"ark": run,
	}))
}

// TestScripts runs the CLI integration scripts under testdata/script,
// mirroring the teacher's fixture-driven test style but for the CLI surface
// rather than the evaluator itself.
func TestScripts(t *testing.T) {
	testscript.Run(t, testscript.Params{
		Dir: "testdata/script",
	})
}
