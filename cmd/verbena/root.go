package main

import (
	"github.com/spf13/cobra"

	"github.com/jackzampolin/verbena/internal/api"
	"github.com/jackzampolin/verbena/version"
)

var (
	cfgFile      string
	homeDir      string
	outputFormat string
)

var rootCmd = &cobra.Command{
	Use:   "verbena",
	Short: "Spanish verb usage reference with se-verb classification",
	Long: `Verbena is a Spanish verb usage reference server built around the
difference a clitic makes: ir and irse, dormir and dormirse.

It serves:
  - Full conjugation tables with voseo and vosotros display options
  - A curated se-verb taxonomy (reflexive, pronominal, accidental, ...)
  - LLM-generated practice prompts from taxonomy templates
  - Per-verb study data: favourites, ratings, notes and view history`,
	Version: version.GitRelease,
}

func init() {
	rootCmd.PersistentFlags().StringVar(
		&cfgFile, "config", "", "config file (default: ./config.yaml or ~/.verbena/config.yaml)",
	)
	rootCmd.PersistentFlags().StringVar(
		&homeDir, "home", "", "verbena home directory (default: ~/.verbena)",
	)
	rootCmd.PersistentFlags().StringVarP(
		&outputFormat, "output", "o", "yaml", "output format: yaml or json",
	)

	// Set output format before any command runs
	rootCmd.PersistentPreRun = func(cmd *cobra.Command, args []string) {
		api.SetOutputFormat(outputFormat)
	}

	rootCmd.AddCommand(versionCmd)
}
