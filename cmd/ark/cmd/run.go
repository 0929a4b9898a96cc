package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ursalang/ark/internal/ark/serialize"
	"github.com/ursalang/ark/pkg/ark"
)

var evalExpr string

var runCmd = &cobra.Command{
	Use:   "run [file]",
	Short: "Compile and run an Ark JSON program",
	Long: `Compile and run an Ark program from a file or inline JSON.

Examples:
  ark run program.json
  ark run -e '["+",3,4]'`,
	Args: cobra.MaximumNArgs(1),
	RunE: runProgram,
}

func init() {
	rootCmd.AddCommand(runCmd)
	runCmd.Flags().StringVarP(&evalExpr, "eval", "e", "", "evaluate an inline JSON program instead of reading a file")
}

func runProgram(_ *cobra.Command, args []string) error {
	raw, err := readProgramInput(evalExpr, args)
	if err != nil {
		return err
	}
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	prog, err := ark.Compile(raw)
	if err != nil {
		return fmt.Errorf("compile: %w", err)
	}
	state := prog.NewState()
	state.SetMaxDepth(cfg.MaxCallDepth)
	result, err := state.Run(prog)
	if err != nil {
		return fmt.Errorf("run: %w", err)
	}
	if cfg.PrettyOutput {
		if out, err := serialize.MarshalIndent(result); err == nil {
			fmt.Println(out)
			return nil
		}
	}
	fmt.Println(result.String())
	return nil
}

func readProgramInput(inline string, args []string) ([]byte, error) {
	if inline != "" {
		return []byte(inline), nil
	}
	if len(args) == 1 {
		return os.ReadFile(args[0])
	}
	return nil, fmt.Errorf("either provide a file path or use -e for inline JSON")
}
