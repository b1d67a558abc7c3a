package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	cfgFile string
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "analyzer",
	Short: "API request log batch analytics",
	Long: `Analyzer turns a batch of API request log records into a report with
per-endpoint statistics, performance issues, cost estimates and caching
opportunities.

Examples:
  analyzer report --input logs/sample.json
  analyzer report --input logs/sample.json --override overrides/strict.json --output reports/sample.json`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "./configs/configs.yml", "config file path")
}
