package metadata

import (
	"errors"
	"strings"
	"testing"

	"github.com/franz/corpus-pages/internal/tab"
	"github.com/franz/corpus-pages/internal/util"
)

func testAggregate() *Aggregate {
	frame := tab.New(CorpusColumn, "fname", "subdirectory", "last_mn", "label_count", "harmony_version")
	frame.Rows = [][]string{
		{"beethoven", "n01", "beethoven/scores/n01", "95", "320", "2.1.1"},
		{"beethoven", "n02", "beethoven/scores/n02", "120", "411", "2.1.1"},
		{"mozart", "op18", "mozart/MS3/op18", "80", "208", "2.1.0"},
	}
	return &Aggregate{Frame: frame}
}

func TestMarkdownOverview(t *testing.T) {
	md, err := testAggregate().Markdown()
	if err != nil {
		t.Fatalf("Markdown failed: %v", err)
	}
	if !strings.HasPrefix(md, "## Overview") {
		t.Errorf("Overview should start with the section heading, got %q", md[:20])
	}
	for _, heading := range []string{"### beethoven", "### mozart"} {
		if !strings.Contains(md, heading) {
			t.Errorf("Missing corpus heading %q", heading)
		}
	}
	// Display labels, not stored column names
	for _, label := range []string{"file_name", "measures", "labels", "standard"} {
		if !strings.Contains(md, label) {
			t.Errorf("Missing display label %q", label)
		}
	}
	if strings.Contains(md, "last_mn") || strings.Contains(md, "subdirectory") {
		t.Errorf("Stored column names leaked into the overview:\n%s", md)
	}
	if !strings.Contains(md, "op18") {
		t.Errorf("Missing row content:\n%s", md)
	}
	// Corpus order follows table order
	if strings.Index(md, "### beethoven") > strings.Index(md, "### mozart") {
		t.Error("Corpus sections out of order")
	}
}

func TestMarkdownLegacyFnames(t *testing.T) {
	agg := testAggregate()
	agg.Frame.RenameCol("fname", "fnames")
	md, err := agg.Markdown()
	if err != nil {
		t.Fatalf("Markdown failed: %v", err)
	}
	if !strings.Contains(md, "file_name") {
		t.Errorf("Legacy fnames column not renamed for display:\n%s", md)
	}
}

func TestMarkdownMissingFname(t *testing.T) {
	agg := testAggregate()
	agg.Frame.RenameCol("fname", "title")
	_, err := agg.Markdown()
	if !errors.Is(err, util.ErrMissingColumn) {
		t.Fatalf("Expected ErrMissingColumn, got %v", err)
	}
	if !strings.Contains(err.Error(), "fname") {
		t.Errorf("Error should name the required column: %v", err)
	}
}
