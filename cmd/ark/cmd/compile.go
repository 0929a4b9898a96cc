package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ursalang/ark/pkg/ark"
)

var compileEvalExpr string

var compileCmd = &cobra.Command{
	Use:   "compile [file]",
	Short: "Compile an Ark JSON program without running it",
	Long: `Parse and resolve an Ark program, reporting any CompilerError without
evaluating it. Useful for validating generated JSON before shipping it to
a host process.`,
	Args: cobra.MaximumNArgs(1),
	RunE: compileProgram,
}

func init() {
	rootCmd.AddCommand(compileCmd)
	compileCmd.Flags().StringVarP(&compileEvalExpr, "eval", "e", "", "compile-check an inline JSON program instead of reading a file")
}

func compileProgram(_ *cobra.Command, args []string) error {
	raw, err := readProgramInput(compileEvalExpr, args)
	if err != nil {
		return err
	}
	if _, err := ark.Compile(raw); err != nil {
		return fmt.Errorf("compile: %w", err)
	}
	fmt.Println("ok")
	return nil
}
