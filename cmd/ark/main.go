// Command ark is the reference driver for the Ark expression language:
// run a compiled program, compile-check a program without running it, or
// pretty-print its JSON wire form (SPEC_FULL.md §2). The surface grammar
// and lowering that would produce this JSON from Ursa source text are
// out of scope here (spec.md §0).
package main

import (
	"fmt"
	"os"

	"github.com/ursalang/ark/cmd/ark/cmd"
)

func main() {
	os.Exit(run())
}

// run is split out from main so testscript can re-exec the test binary as
// the "ark" command (see main_test.go) without a separately built binary.
func run() int {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	return 0
}
