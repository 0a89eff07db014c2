// Package scan resolves the file arguments of a run — paths, folders, and
// glob patterns — to the list of workbooks to process.
package scan

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Resolve expands each argument to .xlsx files. A directory contributes the
// workbooks directly inside it (or all of them with recursive); a pattern is
// globbed; a plain path must exist. Excel lock files ("~$…") and xlbatch's
// own backups (".bak.xlsx") are always skipped.
func Resolve(args []string, recursive bool) ([]string, error) {
	seen := make(map[string]bool)
	var files []string

	add := func(path string) {
		if !isWorkbook(path) || seen[path] {
			return
		}
		seen[path] = true
		files = append(files, path)
	}

	for _, arg := range args {
		info, err := os.Stat(arg)
		switch {
		case err == nil && info.IsDir():
			if err := scanDir(arg, recursive, add); err != nil {
				return nil, err
			}
		case err == nil:
			if !isWorkbook(arg) {
				return nil, fmt.Errorf("%s is not an .xlsx file", arg)
			}
			add(arg)
		case strings.ContainsAny(arg, "*?["):
			matches, err := filepath.Glob(arg)
			if err != nil {
				return nil, fmt.Errorf("invalid glob pattern %q: %w", arg, err)
			}
			for _, m := range matches {
				add(m)
			}
		default:
			return nil, fmt.Errorf("file not found: %s — check that the path is correct", arg)
		}
	}

	if len(files) == 0 {
		return nil, fmt.Errorf("no .xlsx files matched %v", args)
	}

	sort.Strings(files)
	return files, nil
}

func scanDir(dir string, recursive bool, add func(string)) error {
	return filepath.WalkDir(dir, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return nil // skip inaccessible
		}
		if d.IsDir() {
			if !recursive && path != dir {
				return filepath.SkipDir
			}
			if strings.HasPrefix(filepath.Base(path), ".") && path != dir {
				return filepath.SkipDir
			}
			return nil
		}
		add(path)
		return nil
	})
}

func isWorkbook(path string) bool {
	base := filepath.Base(path)
	if strings.HasPrefix(base, "~$") || strings.HasPrefix(base, ".~") {
		return false
	}
	if strings.HasSuffix(strings.ToLower(base), ".bak.xlsx") {
		return false
	}
	return strings.EqualFold(filepath.Ext(base), ".xlsx")
}
