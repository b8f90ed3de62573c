// Package scan discovers annotation files under the configured input
// directories.
package scan

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"sort"

	"github.com/franz/corpus-pages/internal/util"
)

// Config holds scanner configuration
type Config struct {
	// Dirs are the directories to scan.
	Dirs []string
	// Files are individual files taken as-is, bypassing the filters.
	Files []string
	// Include selects file names to keep; nil keeps everything.
	Include *regexp.Regexp
	// Exclude drops matching file and directory names, including the
	// subtrees of matching directories; nil drops nothing.
	Exclude *regexp.Regexp
	// Recursive descends into subdirectories.
	Recursive bool
}

// Discover walks the configured directories and returns the matching
// file paths, deduplicated and sorted by file name (full path breaks
// ties). Explicitly listed files come back even when the filters would
// drop them.
func Discover(cfg Config) ([]string, error) {
	seen := make(map[string]bool)
	var out []string
	add := func(path string) {
		if !seen[path] {
			seen[path] = true
			out = append(out, path)
		}
	}

	for _, file := range cfg.Files {
		resolved, err := util.ResolveDir(file)
		if err != nil {
			return nil, err
		}
		if _, err := os.Stat(resolved); err != nil {
			return nil, fmt.Errorf("listed file %s: %w", file, err)
		}
		add(resolved)
	}

	for _, dir := range cfg.Dirs {
		resolved, err := util.CheckDir(dir)
		if err != nil {
			return nil, err
		}
		err = filepath.WalkDir(resolved, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			name := d.Name()
			if d.IsDir() {
				if path == resolved {
					return nil
				}
				if !cfg.Recursive || (cfg.Exclude != nil && cfg.Exclude.MatchString(name)) {
					return fs.SkipDir
				}
				return nil
			}
			if cfg.Exclude != nil && cfg.Exclude.MatchString(name) {
				return nil
			}
			if cfg.Include != nil && !cfg.Include.MatchString(name) {
				return nil
			}
			add(path)
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("scanning %s: %w", dir, err)
		}
	}

	sort.Slice(out, func(i, j int) bool {
		ni, nj := filepath.Base(out[i]), filepath.Base(out[j])
		if ni != nj {
			return ni < nj
		}
		return out[i] < out[j]
	})
	util.DebugLog("Discovered %d input file(s)", len(out))
	return out, nil
}
