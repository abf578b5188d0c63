package main

import (
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	warlog "github.com/warboard/warboard/internal/log"
)

// Global flag values.
var (
	verbose   bool
	quiet     bool
	noColor   bool
	configDir string
)

// rootCmd is the base command for warboard.
var rootCmd = &cobra.Command{
	Use:   "warboard",
	Short: "Kingdom roster analytics from a published spreadsheet",
	Long: `Warboard reads a kingdom roster exported as CSV (usually a published
spreadsheet link), works out which columns hold kills, deads, power and
requirement completion, and reports totals, rankings and charts over any
search-filtered subset of players.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		if noColor {
			color.NoColor = true
		}
		warlog.Setup(verbose, quiet, noColor)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "suppress non-essential output")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable colored output")
	rootCmd.PersistentFlags().StringVar(&configDir, "config-dir", ".", "directory containing .warboard.yaml or .warboard.toml")

	rootCmd.AddCommand(reportCmd)
	rootCmd.AddCommand(seriesCmd)
	rootCmd.AddCommand(inspectCmd)
	rootCmd.AddCommand(browseCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(mcpCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(versionCmd)
}
