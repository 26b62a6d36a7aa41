package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/sirkon/message"
	"github.com/spf13/cobra"
)

// version is overridable with go build -ldflags "-X main.version=...".
var version = "dev"

// errIssuesFound signals a non-zero exit without an extra error message:
// the report itself is the diagnostic.
var errIssuesFound = errors.New("issues found")

var (
	flagColor  = ColorModeAuto
	flagConfig string
)

var rootCmd = &cobra.Command{
	Use:     "pyrevu",
	Short:   "pyrevu reviews Python sources for style and safety issues",
	Version: version,

	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().Var(&flagColor, "color", "colorize reports (auto|on|off)")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "path to a .pyrevu.yaml config file")

	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(parseCmd)
	rootCmd.AddCommand(versionCmd)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "print the pyrevu version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "pyrevu %s\n", version)
	},
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		if !errors.Is(err, errIssuesFound) {
			message.Error(err)
		}
		os.Exit(1)
	}
}
