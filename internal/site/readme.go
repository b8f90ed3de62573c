package site

import (
	"fmt"
	"os"
	"strings"

	"github.com/franz/corpus-pages/internal/util"
)

// UpdateReadme writes the overview section into the Markdown file at
// path. Existing content before the first line containing "# Overview"
// is preserved; that line and everything after it are replaced. A
// missing file is created with two blank lines before the overview.
func UpdateReadme(path, overview string) error {
	kept := []string{"\n\n"}
	verb := "Created"
	if raw, err := os.ReadFile(path); err == nil {
		kept = kept[:0]
		verb = "Updated"
		truncated := false
		lines := strings.Split(string(raw), "\n")
		if n := len(lines); n > 0 && lines[n-1] == "" {
			lines = lines[:n-1]
		}
		for _, line := range lines {
			if strings.Contains(line, "# Overview") {
				truncated = true
				break
			}
			kept = append(kept, line+"\n")
		}
		if !truncated {
			kept = append(kept, "\n\n")
		}
	} else if !os.IsNotExist(err) {
		return fmt.Errorf("reading %s: %w", path, err)
	}

	content := strings.Join(kept, "") + overview
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	util.InfoLog("%s %s", verb, path)
	return nil
}
