package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/tidwall/pretty"

	"github.com/ursalang/ark/internal/ark/compiler"
	"github.com/ursalang/ark/internal/ark/builtins"
	"github.com/ursalang/ark/internal/ark/serialize"
)

var canonical bool

var fmtJSONCmd = &cobra.Command{
	Use:   "fmt-json [file]",
	Short: "Pretty-print an Ark JSON program",
	Long: `Reformat an Ark program's JSON for readability. By default this is a
pure text reformat (tidwall/pretty); --canonical additionally compiles and
re-serializes the program, which normalizes equivalent forms (e.g.
whitespace-only differences, or single-element "seq" forms the compiler
collapses).`,
	Args: cobra.ExactArgs(1),
	RunE: fmtJSON,
}

func init() {
	rootCmd.AddCommand(fmtJSONCmd)
	fmtJSONCmd.Flags().BoolVar(&canonical, "canonical", false, "compile and re-serialize instead of a text-only reformat")
}

func fmtJSON(_ *cobra.Command, args []string) error {
	raw, err := os.ReadFile(args[0])
	if err != nil {
		return err
	}
	if !canonical {
		fmt.Println(string(pretty.Pretty(raw)))
		return nil
	}
	globals := builtins.Globals()
	compiled, err := compiler.Compile(raw, builtins.Names(globals), builtins.Intrinsics())
	if err != nil {
		return fmt.Errorf("compile: %w", err)
	}
	out, err := serialize.MarshalIndent(compiled.Expression)
	if err != nil {
		return fmt.Errorf("serialize: %w", err)
	}
	fmt.Println(out)
	return nil
}
