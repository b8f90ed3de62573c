package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestExecuteConcatEndToEnd(t *testing.T) {
	root := t.TempDir()
	out := t.TempDir()
	corpusDir := filepath.Join(root, "beethoven")
	if err := os.MkdirAll(corpusDir, 0o755); err != nil {
		t.Fatalf("MkdirAll failed: %v", err)
	}
	content := "fname\tsubdirectory\tlast_mn\tlabel_count\tharmony_version\n" +
		"n01\tscores/n01\t95\t320\t2.1.1\n"
	if err := os.WriteFile(filepath.Join(corpusDir, "metadata.tsv"), []byte(content), 0o644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	if err := executeConcat(root, out); err != nil {
		t.Fatalf("executeConcat failed: %v", err)
	}

	tsv, err := os.ReadFile(filepath.Join(out, "concatenated_metadata.tsv"))
	if err != nil {
		t.Fatalf("Concatenated TSV not written: %v", err)
	}
	if !strings.Contains(string(tsv), "beethoven/scores/n01") {
		t.Errorf("Relative paths not rewritten:\n%s", tsv)
	}

	readme, err := os.ReadFile(filepath.Join(out, "README.md"))
	if err != nil {
		t.Fatalf("README not written: %v", err)
	}
	if !strings.Contains(string(readme), "### beethoven") {
		t.Errorf("Overview section missing:\n%s", readme)
	}
}

func TestExecuteConcatNoMetadataWritesNothing(t *testing.T) {
	root := t.TempDir()
	out := t.TempDir()
	if err := os.MkdirAll(filepath.Join(root, "empty"), 0o755); err != nil {
		t.Fatalf("MkdirAll failed: %v", err)
	}

	if err := executeConcat(root, out); err != nil {
		t.Fatalf("executeConcat failed: %v", err)
	}

	for _, name := range []string{"concatenated_metadata.tsv", "README.md"} {
		if _, err := os.Stat(filepath.Join(out, name)); !os.IsNotExist(err) {
			t.Errorf("%s must not be written when no metadata is found", name)
		}
	}
}
