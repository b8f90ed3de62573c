package metadata

import (
	"fmt"
	"strings"

	"github.com/franz/corpus-pages/internal/tab"
	"github.com/franz/corpus-pages/internal/util"
	"github.com/olekukonko/tablewriter"
)

// overviewRenames maps stored column names to the display labels used in
// the Markdown overview, in display order.
var overviewRenames = []struct {
	from, to string
}{
	{"", "file_name"}, // filled in with the resolved file-name column
	{"last_mn", "measures"},
	{"label_count", "labels"},
	{"harmony_version", "standard"},
}

// Markdown renders the aggregate as a grouped Markdown overview: one
// "### <corpus>" heading and table per corpus, under a "## Overview"
// heading.
func (a *Aggregate) Markdown() (string, error) {
	fnameCol, ok := ResolveColumn(a.Frame, FileNameColumns)
	if !ok {
		return "", fmt.Errorf("%w: metadata is expected to come with a column called %q or (previously) %q",
			util.ErrMissingColumn, FileNameColumns[0], FileNameColumns[1])
	}
	columns := make([]string, len(overviewRenames))
	labels := make([]string, len(overviewRenames))
	for i, r := range overviewRenames {
		columns[i] = r.from
		labels[i] = r.to
	}
	columns[0] = fnameCol

	selected, err := a.Frame.Select(append([]string{CorpusColumn}, columns...)...)
	if err != nil {
		return "", fmt.Errorf("%w: %v", util.ErrMissingColumn, err)
	}

	var sb strings.Builder
	sb.WriteString("## Overview")
	for _, corpus := range uniqueInOrder(selected) {
		sb.WriteString("\n\n### ")
		sb.WriteString(corpus)
		sb.WriteString("\n\n")
		sb.WriteString(markdownTable(labels, corpusRows(selected, corpus)))
	}
	return sb.String(), nil
}

// uniqueInOrder lists the corpus names in first-appearance order.
func uniqueInOrder(frame *tab.Frame) []string {
	seen := make(map[string]bool)
	var out []string
	for _, row := range frame.Rows {
		if corpus := row[0]; !seen[corpus] {
			seen[corpus] = true
			out = append(out, corpus)
		}
	}
	return out
}

// corpusRows returns the display cells (everything after the corpus
// column) of the rows belonging to one corpus.
func corpusRows(frame *tab.Frame, corpus string) [][]string {
	var out [][]string
	for _, row := range frame.Rows {
		if row[0] == corpus {
			out = append(out, row[1:])
		}
	}
	return out
}

// markdownTable renders header + rows as a GitHub-style pipe table.
func markdownTable(header []string, rows [][]string) string {
	var sb strings.Builder
	table := tablewriter.NewWriter(&sb)
	table.SetHeader(header)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetBorders(tablewriter.Border{Left: true, Top: false, Right: true, Bottom: false})
	table.SetCenterSeparator("|")
	table.AppendBulk(rows)
	table.Render()
	return sb.String()
}
