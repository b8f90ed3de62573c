package site

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/franz/corpus-pages/internal/ghstats"
)

func TestWriteFileCreatesParents(t *testing.T) {
	out := t.TempDir()
	if err := WriteFile(out, StyleFilename, StyleFile); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}
	raw, err := os.ReadFile(filepath.Join(out, "assets", "css", "style.scss"))
	if err != nil {
		t.Fatalf("ReadFile failed: %v", err)
	}
	if string(raw) != StyleFile {
		t.Error("Style file content changed")
	}
}

func TestWriteGanttIndex(t *testing.T) {
	out := t.TempDir()
	ganttDir := filepath.Join(out, GanttDirname)
	if err := os.MkdirAll(ganttDir, 0o755); err != nil {
		t.Fatalf("MkdirAll failed: %v", err)
	}
	for _, name := range []string{"b.html", "a.html"} {
		if err := os.WriteFile(filepath.Join(ganttDir, name), []byte("<html/>"), 0o644); err != nil {
			t.Fatalf("WriteFile failed: %v", err)
		}
	}

	if err := WriteGanttIndex(out); err != nil {
		t.Fatalf("WriteGanttIndex failed: %v", err)
	}
	raw, err := os.ReadFile(filepath.Join(out, GanttFilename))
	if err != nil {
		t.Fatalf("ReadFile failed: %v", err)
	}
	content := string(raw)
	if !strings.Contains(content, `src="gantt/a.html"`) || !strings.Contains(content, `src="gantt/b.html"`) {
		t.Errorf("Missing iframe entries:\n%s", content)
	}
	if strings.Index(content, "a.html") > strings.Index(content, "b.html") {
		t.Error("Entries not sorted by name")
	}
	if !strings.Contains(content, `<iframe id="igraph"`) {
		t.Error("Missing iframe markup")
	}
}

func TestStatsText(t *testing.T) {
	text := StatsText("<div>pies</div>", "| a | b |")
	if !strings.Contains(text, "# Corpus Status") {
		t.Error("Missing page heading")
	}
	if strings.Index(text, "| a | b |") > strings.Index(text, "<div>pies</div>") {
		t.Error("Vital statistics must precede completion ratios")
	}
}

func TestStatsTable(t *testing.T) {
	md := StatsTable([]ghstats.Stat{
		{Name: "Stars", Value: "42"},
		{Name: "Open issues", Value: "3"},
	})
	if !strings.Contains(md, "Stars") || !strings.Contains(md, "42") {
		t.Errorf("Missing stat rows:\n%s", md)
	}
	if !strings.Contains(md, "|") {
		t.Errorf("Not a pipe table:\n%s", md)
	}
}

func TestUpdateReadmeCreates(t *testing.T) {
	path := filepath.Join(t.TempDir(), "README.md")
	if err := UpdateReadme(path, "## Overview\n\ncontent"); err != nil {
		t.Fatalf("UpdateReadme failed: %v", err)
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile failed: %v", err)
	}
	if !strings.Contains(string(raw), "## Overview") {
		t.Errorf("Overview missing: %s", raw)
	}
	// Fresh files start with two blank lines before the overview
	if !strings.HasPrefix(string(raw), "\n\n## Overview") {
		t.Errorf("Missing leading blank lines: %q", raw[:12])
	}
}

func TestUpdateReadmeReplacesSection(t *testing.T) {
	path := filepath.Join(t.TempDir(), "README.md")
	original := "# My corpus\n\nIntro text.\n\n## Overview\n\nstale table\n"
	if err := os.WriteFile(path, []byte(original), 0o644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	if err := UpdateReadme(path, "## Overview\n\nfresh table"); err != nil {
		t.Fatalf("UpdateReadme failed: %v", err)
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile failed: %v", err)
	}
	content := string(raw)
	if !strings.Contains(content, "Intro text.") {
		t.Error("Prefix content lost")
	}
	if strings.Contains(content, "stale table") {
		t.Error("Old overview section not replaced")
	}
	if !strings.Contains(content, "fresh table") {
		t.Error("New overview section missing")
	}

	// A second update must not duplicate sections
	if err := UpdateReadme(path, "## Overview\n\nnewer table"); err != nil {
		t.Fatalf("UpdateReadme failed: %v", err)
	}
	raw, _ = os.ReadFile(path)
	if strings.Count(string(raw), "## Overview") != 1 {
		t.Errorf("Duplicated overview sections:\n%s", raw)
	}
}
