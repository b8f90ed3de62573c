package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	// Version is set at build time
	Version = "dev"

	rootCmd = &cobra.Command{
		Use:   "corpora",
		Short: "Maintain metadata and GitHub pages for corpus meta-repositories",
		Long: `corpora maintains the generated artifacts of an annotated-corpus
meta-repository: it concatenates the per-corpus metadata tables into a
single table with a Markdown overview, and renders per-score modulation
plans plus the static site files for publishing via GitHub pages.`,
		Version: Version,
	}
)

func init() {
	// Global flags
	rootCmd.PersistentFlags().StringP("level", "l", "INFO", "logging level (DEBUG, INFO, WARNING, ERROR, CRITICAL)")

	viper.BindPFlag("level", rootCmd.PersistentFlags().Lookup("level"))

	// Read in environment variables that match
	viper.SetEnvPrefix("CORPORA")
	viper.AutomaticEnv()
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
