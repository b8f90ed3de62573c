package util

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ResolveDir expands a leading '~' to the user's home directory and turns
// the path into an absolute one.
func ResolveDir(d string) (string, error) {
	if d == "" {
		return "", nil
	}
	if d == "~" || strings.HasPrefix(d, "~"+string(os.PathSeparator)) {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolving %s: %w", d, err)
		}
		d = filepath.Join(home, strings.TrimPrefix(d, "~"))
	}
	abs, err := filepath.Abs(d)
	if err != nil {
		return "", fmt.Errorf("resolving %s: %w", d, err)
	}
	return abs, nil
}

// CheckDir resolves d and verifies that it is an existing directory.
func CheckDir(d string) (string, error) {
	resolved, err := ResolveDir(d)
	if err != nil {
		return "", err
	}
	info, err := os.Stat(resolved)
	if err != nil || !info.IsDir() {
		return "", fmt.Errorf("%s needs to be an existing directory: %w", d, ErrNotFound)
	}
	return resolved, nil
}

// CheckAndCreate resolves d to an absolute directory path, creating it
// (including parents) if it does not exist yet.
func CheckAndCreate(d string) (string, error) {
	resolved, err := ResolveDir(d)
	if err != nil {
		return "", err
	}
	info, err := os.Stat(resolved)
	if err == nil {
		if !info.IsDir() {
			return "", fmt.Errorf("%s exists but is not a directory", resolved)
		}
		return resolved, nil
	}
	if err := os.MkdirAll(resolved, 0o755); err != nil {
		return "", fmt.Errorf("creating %s: %w", resolved, err)
	}
	InfoLog("Created directory %s", resolved)
	return resolved, nil
}
