package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ursalang/ark/internal/ark/config"
)

var (
	Version   = "0.1.0-dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

var configPath string

var rootCmd = &cobra.Command{
	Use:   "ark",
	Short: "Ark expression language compiler and evaluator",
	Long: `ark runs Ark programs: a small dynamically-typed expression language
shipped as a JSON-serialized expression graph plus a tree-walking
evaluator. It is the backend a surface language (Ursa) lowers to; this
binary never reads Ursa source, only Ark's own JSON wire format.`,
	Version: Version,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.SetVersionTemplate(fmt.Sprintf(`{{with .Name}}{{printf "%%s " .}}{{end}}{{printf "version %%s" .Version}}
Commit: %s
Built:  %s
`, GitCommit, BuildDate))

	rootCmd.PersistentFlags().StringVar(&configPath, "config", ".arkrc.yaml", "path to project config file")
}

func loadConfig() (*config.Config, error) {
	return config.Load(configPath)
}
