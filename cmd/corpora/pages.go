package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/franz/corpus-pages/internal/annot"
	"github.com/franz/corpus-pages/internal/gantt"
	"github.com/franz/corpus-pages/internal/ghstats"
	"github.com/franz/corpus-pages/internal/scan"
	"github.com/franz/corpus-pages/internal/site"
	"github.com/franz/corpus-pages/internal/store"
	"github.com/franz/corpus-pages/internal/tab"
	"github.com/franz/corpus-pages/internal/util"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// StateDBFilename is the generation-state database kept in the output
// directory.
const StateDBFilename = ".corpora-pages.db"

var pagesCmd = &cobra.Command{
	Use:   "pages",
	Short: "Render modulation plans and the static site files",
	Long: `Render a modulation-plan timeline chart for every annotation file
found under the input directories, and write the static site around
them: index.md, gantt.md (embedding every chart), stats.md, the Jekyll
configuration and the stylesheet.

Charts whose annotation file is unchanged since the previous run are
skipped; pass --force to re-render everything.`,
	RunE: runPages,
}

func init() {
	rootCmd.AddCommand(pagesCmd)

	pagesCmd.Flags().StringSliceP("dir", "d", nil, "folder(s) scanned for annotation files (default: current directory)")
	pagesCmd.Flags().StringSliceP("file", "f", nil, "individual annotation file(s) to be rendered")
	pagesCmd.Flags().StringP("regex", "r", `\.tsv$`, "select only file names matching this regular expression")
	pagesCmd.Flags().StringP("exclude", "e", `(^(\.|_)|_reviewed)`, "disregard files and folders (with their subfolders) matching this regular expression")
	pagesCmd.Flags().BoolP("nonrecursive", "n", false, "don't scan folders recursively")
	pagesCmd.Flags().StringP("out", "o", ".", "output directory (created if absent)")
	pagesCmd.Flags().StringP("yaxis", "y", "semitones", "ordering of keys on the y-axis: semitones, fifths or numeral")
	pagesCmd.Flags().StringP("github", "g", "", "repository in the form owner/repository_name for the statistics page")
	pagesCmd.Flags().StringP("token", "t", "", "access token for the repository in question")
	pagesCmd.Flags().Bool("force", false, "re-render charts even when their source is unchanged")
}

// pagesConfig holds the parsed command line of the pages subcommand.
type pagesConfig struct {
	Dirs         []string
	Files        []string
	Regex        string
	Exclude      string
	NonRecursive bool
	Out          string
	YAxis        string
	GithubRepo   string
	Token        string
	Force        bool
}

func runPages(cmd *cobra.Command, args []string) error {
	util.SetLogLevelName(viper.GetString("level"))

	flags := cmd.Flags()
	cfg := pagesConfig{}
	cfg.Dirs, _ = flags.GetStringSlice("dir")
	cfg.Files, _ = flags.GetStringSlice("file")
	cfg.Regex, _ = flags.GetString("regex")
	cfg.Exclude, _ = flags.GetString("exclude")
	cfg.NonRecursive, _ = flags.GetBool("nonrecursive")
	cfg.Out, _ = flags.GetString("out")
	cfg.YAxis, _ = flags.GetString("yaxis")
	cfg.GithubRepo, _ = flags.GetString("github")
	cfg.Token, _ = flags.GetString("token")
	cfg.Force, _ = flags.GetBool("force")
	return executePages(cfg)
}

func executePages(cfg pagesConfig) error {
	axis, err := gantt.ParseAxis(cfg.YAxis)
	if err != nil {
		return err
	}
	includeRe, err := regexp.Compile(cfg.Regex)
	if err != nil {
		return fmt.Errorf("invalid --regex: %w", err)
	}
	excludeRe, err := regexp.Compile(cfg.Exclude)
	if err != nil {
		return fmt.Errorf("invalid --exclude: %w", err)
	}
	dirs := cfg.Dirs
	if len(dirs) == 0 && len(cfg.Files) == 0 {
		dirs = []string{"."}
	}

	outDir, err := util.CheckAndCreate(cfg.Out)
	if err != nil {
		return fmt.Errorf("invalid --out: %w", err)
	}
	ganttDir, err := util.CheckAndCreate(filepath.Join(outDir, site.GanttDirname))
	if err != nil {
		return err
	}

	inputs, err := scan.Discover(scan.Config{
		Dirs:      dirs,
		Files:     cfg.Files,
		Include:   includeRe,
		Exclude:   excludeRe,
		Recursive: !cfg.NonRecursive,
	})
	if err != nil {
		return err
	}
	if len(inputs) == 0 {
		util.WarnLog("No annotation files found")
	}

	db, err := store.Open(filepath.Join(outDir, StateDBFilename))
	if err != nil {
		return fmt.Errorf("failed to open state database: %w", err)
	}
	defer db.Close()

	if err := renderCharts(db, inputs, axis, ganttDir, cfg.Force); err != nil {
		return err
	}

	if err := site.WriteFile(outDir, site.IndexFilename, site.IndexFile); err != nil {
		return err
	}
	if err := site.WriteFile(outDir, site.JekyllCfgFilename, site.JekyllCfgFile); err != nil {
		return err
	}
	if err := site.WriteFile(outDir, site.StyleFilename, site.StyleFile); err != nil {
		return err
	}
	if err := site.WriteGanttIndex(outDir); err != nil {
		return err
	}
	return writeStats(outDir, dirs, cfg.GithubRepo, cfg.Token)
}

// renderCharts renders one modulation plan per input file, skipping
// inputs whose chart is already up to date.
func renderCharts(db *store.Store, inputs []string, axis gantt.Axis, ganttDir string, force bool) error {
	if len(inputs) == 0 {
		return nil
	}
	// Leave room for the description and counters next to the bar
	barWidth := util.TerminalWidth() - 40
	if barWidth < 10 {
		barWidth = 10
	}
	bar := progressbar.NewOptions(len(inputs),
		progressbar.OptionSetDescription("Rendering charts"),
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionSetWidth(barWidth),
		progressbar.OptionClearOnFinish(),
	)
	defer bar.Finish()

	for _, input := range inputs {
		bar.Add(1)
		fname := strings.TrimSuffix(filepath.Base(input), filepath.Ext(input))

		info, err := os.Stat(input)
		if err != nil {
			return fmt.Errorf("stat %s: %w", input, err)
		}
		if !force {
			needs, err := db.NeedsRender(fname, info.ModTime(), string(axis))
			if err != nil {
				return err
			}
			if !needs {
				util.DebugLog("Skipping %s (unchanged)", fname)
				continue
			}
		}

		if err := renderOne(db, input, fname, info, axis, ganttDir); err != nil {
			return err
		}
	}
	return nil
}

func renderOne(db *store.Store, input, fname string, info os.FileInfo, axis gantt.Axis, ganttDir string) error {
	table, err := annot.ReadFile(input)
	if err != nil {
		return err
	}
	util.DebugLog("Creating Gantt data for %s...", fname)
	data, err := gantt.BuildData(table)
	if err != nil {
		return fmt.Errorf("%s: %w", fname, err)
	}
	phrases, err := table.PhraseEnds()
	if err != nil {
		return fmt.Errorf("%s: %w", fname, err)
	}
	lastMN, err := table.LastMN()
	if err != nil {
		return fmt.Errorf("%s: %w", fname, err)
	}
	globalKey := table.GlobalKey()

	chart, err := gantt.ModulationPlan(data, gantt.Options{
		Title:       fname,
		Axis:        axis,
		GlobalKey:   globalKey,
		PhraseEnds:  phrases,
		SortAndFill: true,
	})
	if err != nil {
		return fmt.Errorf("%s: %w", fname, err)
	}

	util.DebugLog("Making and storing Gantt chart for %s...", fname)
	outPath := filepath.Join(ganttDir, fname+".html")
	file, err := os.Create(outPath)
	if err != nil {
		return fmt.Errorf("creating %s: %w", outPath, err)
	}
	if err := gantt.Render(chart, file); err != nil {
		file.Close()
		return fmt.Errorf("rendering %s: %w", outPath, err)
	}
	if err := file.Close(); err != nil {
		return fmt.Errorf("writing %s: %w", outPath, err)
	}
	util.DebugLog("Stored as %s", outPath)

	return db.UpsertChart(&store.ChartRecord{
		Score:       fname,
		SourcePath:  input,
		SourceMtime: info.ModTime(),
		Axis:        string(axis),
		GlobalKey:   globalKey,
		LastMN:      lastMN,
		OutputPath:  outPath,
	})
}

// writeStats writes the statistics page. Without a --github repository
// the page is skipped, since the vital statistics come from the API.
func writeStats(outDir string, dirs []string, githubRepo, token string) error {
	if githubRepo == "" {
		util.WarnLog("No --github repository passed, skipping %s", site.StatsFilename)
		return nil
	}
	provider, err := ghstats.NewProvider(githubRepo, token)
	if err != nil {
		return err
	}
	stats, err := provider.VitalStats(context.Background())
	if err != nil {
		return err
	}

	pieHTML := ""
	if frame := findMetadata(outDir, dirs); frame != nil {
		ratios, err := ghstats.CompletionRatios(frame)
		if err != nil {
			return err
		}
		pieHTML, err = ghstats.PieHTML(ratios)
		if err != nil {
			return err
		}
	} else {
		util.WarnLog("No concatenated metadata found, stats page has no completion ratios")
	}

	return site.WriteFile(outDir, site.StatsFilename,
		site.StatsText(pieHTML, site.StatsTable(stats)))
}

// findMetadata looks for a concatenated metadata table in the output
// directory and the input directories.
func findMetadata(outDir string, dirs []string) *tab.Frame {
	candidates := append([]string{outDir}, dirs...)
	for _, dir := range candidates {
		path := filepath.Join(dir, "concatenated_metadata.tsv")
		if _, err := os.Stat(path); err != nil {
			continue
		}
		frame, err := tab.ReadFile(path)
		if err != nil {
			util.WarnLog("Ignoring unreadable %s: %v", path, err)
			continue
		}
		return frame
	}
	return nil
}
