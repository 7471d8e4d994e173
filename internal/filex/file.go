// Package filex holds filesystem helpers for the command-line tools.
package filex

import (
	"fmt"
	"os"
	"path/filepath"
)

// EnsureDir creates dirName if needed and returns its absolute path.
// Relative names are resolved against the working directory. The directory
// is private to the current user.
func EnsureDir(dirName string) (string, error) {
	dir := dirName
	if !filepath.IsAbs(dir) {
		cwd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("getwd: %w", err)
		}
		dir = filepath.Join(cwd, dirName)
	}

	if err := os.MkdirAll(dir, 0o700); err != nil {
		return "", fmt.Errorf("mkdir %s: %w", dir, err)
	}

	return dir, nil
}
