package source

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// walkDir is swapped in tests to inject traversal failures.
var walkDir = filepath.WalkDir

// Discover returns every .json file below root in lexical order so runs over
// the same tree visit files identically. An unreadable entry below root is
// logged and skipped; only a failure on root itself aborts discovery.
func Discover(ctx context.Context, logger *slog.Logger, root string) ([]string, error) {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	var files []string
	err := walkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if path == root {
				return err
			}
			logger.WarnContext(ctx, "skipping unreadable entry", "path", path, "error", err)
			if d != nil && d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}
		if d.Type().IsRegular() && strings.EqualFold(filepath.Ext(path), documentExt) {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("discover %s: %w", root, err)
	}
	sort.Strings(files)
	return files, nil
}

// Single validates one explicitly named document. It returns no files (and
// ok=false) when path is not an existing regular .json file.
func Single(path string) (files []string, ok bool) {
	info, err := os.Stat(path)
	if err != nil || !info.Mode().IsRegular() || !strings.EqualFold(filepath.Ext(path), documentExt) {
		return nil, false
	}
	return []string{path}, true
}
