package batch

import (
	"fmt"
	"io/fs"
	"path/filepath"
	"slices"
	"strings"
)

// Options control which files a run visits and whether it writes them back.
type Options struct {
	Extensions []string // matched case-insensitively, with or without the leading dot
	Exclude    []string // directory names skipped at any depth
	DryRun     bool
}

// DefaultOptions matches .html files and skips dependency and VCS directories.
func DefaultOptions() Options {
	return Options{
		Extensions: []string{".html"},
		Exclude:    []string{"node_modules", ".git"},
	}
}

// Matches reports whether filename has one of the configured extensions.
func (o Options) Matches(filename string) bool {
	ext := strings.ToLower(filepath.Ext(filename))
	if ext == "" {
		return false
	}
	for _, e := range o.Extensions {
		e = strings.ToLower(e)
		if !strings.HasPrefix(e, ".") {
			e = "." + e
		}
		if e == ext {
			return true
		}
	}
	return false
}

func (o Options) excluded(dir string) bool {
	return slices.Contains(o.Exclude, dir)
}

// Discover walks root and returns the matching regular files in lexical order.
func Discover(root string, opts Options) ([]string, error) {
	var files []string
	err := filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if p != root && opts.excluded(d.Name()) {
				return filepath.SkipDir
			}
			return nil
		}
		if d.Type().IsRegular() && opts.Matches(d.Name()) {
			files = append(files, p)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk %s: %w", root, err)
	}
	return files, nil
}
