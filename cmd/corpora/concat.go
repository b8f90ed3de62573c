package main

import (
	"fmt"
	"path/filepath"

	"github.com/franz/corpus-pages/internal/metadata"
	"github.com/franz/corpus-pages/internal/site"
	"github.com/franz/corpus-pages/internal/util"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var concatCmd = &cobra.Command{
	Use:   "concat",
	Short: "Concatenate per-corpus metadata and update the README overview",
	Long: `Gather the metadata.tsv files from the immediate child directories of
the repository root, concatenate them into a single table keyed by
corpus, and update the README's overview section.

The concatenated table is written as concatenated_metadata.tsv with
relative paths rewritten to be rooted at the repository root. Boolean
columns are stored as nullable 0/1 integers.`,
	RunE: runConcat,
}

func init() {
	rootCmd.AddCommand(concatCmd)

	concatCmd.Flags().StringP("dir", "d", ".", "root of the repository clone to gather metadata.tsv files from")
	concatCmd.Flags().StringP("out", "o", ".", "output directory for the TSV and MD files (created if absent)")
}

func runConcat(cmd *cobra.Command, args []string) error {
	util.SetLogLevelName(viper.GetString("level"))

	dir, err := cmd.Flags().GetString("dir")
	if err != nil {
		return err
	}
	out, err := cmd.Flags().GetString("out")
	if err != nil {
		return err
	}
	return executeConcat(dir, out)
}

func executeConcat(dir, out string) error {
	root, err := util.CheckDir(dir)
	if err != nil {
		return fmt.Errorf("invalid --dir: %w", err)
	}
	outDir, err := util.CheckAndCreate(out)
	if err != nil {
		return fmt.Errorf("invalid --out: %w", err)
	}

	agg, err := metadata.Concat(root)
	if err != nil {
		return err
	}
	if agg.Empty() {
		util.InfoLog("No metadata found in the child directories of %s.", root)
		return nil
	}

	tsvPath := filepath.Join(outDir, metadata.TSVFilename)
	if err := agg.WriteTSV(tsvPath); err != nil {
		return err
	}

	overview, err := agg.Markdown()
	if err != nil {
		return err
	}
	return site.UpdateReadme(filepath.Join(outDir, "README.md"), overview)
}
