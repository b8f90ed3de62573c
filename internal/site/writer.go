// Package site assembles the static page files published alongside the
// generated charts: index, chart listing, statistics page, Jekyll
// configuration and stylesheet, plus the README overview section.
package site

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/franz/corpus-pages/internal/ghstats"
	"github.com/franz/corpus-pages/internal/util"
	"github.com/olekukonko/tablewriter"
)

// File names of the generated site.
const (
	IndexFilename     = "index.md"
	GanttFilename     = "gantt.md"
	StatsFilename     = "stats.md"
	JekyllCfgFilename = "_config.yml"
	StyleFilename     = "assets/css/style.scss"

	// GanttDirname is the subdirectory holding the chart files.
	GanttDirname = "gantt"
)

// IndexFile links the site's two pages.
var IndexFile = fmt.Sprintf(`
* [Modulation plans](%s)
* [Corpus state](%s)
`, GanttFilename, StatsFilename)

// JekyllCfgFile selects the pages theme.
const JekyllCfgFile = "theme: jekyll-theme-tactile "

// StyleFile widens the theme's content column so iframes have room.
const StyleFile = `---
---

@import "{{ site.theme }}";

.inner {
  max-width: 95%;
  width: 1024px;
}

.pie_container {
  display: inline-block;
  width: 30%;
}

.pie {
  width: 100%;
}
`

// WriteFile writes content to name under outDir, creating intermediate
// directories as needed (the style file lives in assets/css/).
func WriteFile(outDir, name, content string) error {
	path := filepath.Join(outDir, name)
	if _, err := util.CheckAndCreate(filepath.Dir(path)); err != nil {
		return err
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	util.DebugLog("Wrote %s", path)
	return nil
}

// WriteGanttIndex lists every file in the gantt directory, sorted by
// name, as embedded iframes in gantt.md.
func WriteGanttIndex(outDir string) error {
	ganttDir := filepath.Join(outDir, GanttDirname)
	entries, err := os.ReadDir(ganttDir)
	if err != nil {
		return fmt.Errorf("listing %s: %w", ganttDir, err)
	}
	var names []string
	for _, entry := range entries {
		if !entry.IsDir() {
			names = append(names, entry.Name())
		}
	}
	sort.Strings(names)
	lines := make([]string, len(names))
	for i, name := range names {
		lines[i] = fmt.Sprintf(`<iframe id="igraph" scrolling="no" style="border:none;" seamless="seamless" src="%s/%s" height="600" width="100%%"></iframe>`,
			GanttDirname, name)
	}
	return WriteFile(outDir, GanttFilename, strings.Join(lines, "\n"))
}

// StatsText assembles the statistics page from the pie-chart markup and
// the vital-statistics table.
func StatsText(pieHTML, tableMD string) string {
	return fmt.Sprintf(`
# Corpus Status

## Vital statistics

%s

## Completion ratios

%s
`, tableMD, pieHTML)
}

// StatsTable renders vital statistics as a headerless two-column
// Markdown table.
func StatsTable(stats []ghstats.Stat) string {
	var sb strings.Builder
	table := tablewriter.NewWriter(&sb)
	table.SetHeader([]string{"", ""})
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetBorders(tablewriter.Border{Left: true, Top: false, Right: true, Bottom: false})
	table.SetCenterSeparator("|")
	for _, stat := range stats {
		table.Append([]string{stat.Name, stat.Value})
	}
	table.Render()
	return sb.String()
}
