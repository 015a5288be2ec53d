// Package collect finds the source files that become per-file check items.
package collect

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// File is one eligible source file.
type File struct {
	// Path is the canonical absolute path, used as the key when routing
	// checker output back to the file.
	Path string `json:"path"`
	// Name is Path relative to the invocation directory, for display.
	Name string `json:"name"`
}

// Options controls which files are eligible.
type Options struct {
	Extensions []string
	// Exclude holds doublestar glob patterns ("build", "**/migrations/*")
	// matched against a directory or file's base name and its slash-separated
	// path relative to the invocation directory.
	Exclude []string
}

// Canonical returns the absolute, cleaned form of path, resolving relative
// paths against dir.
func Canonical(dir, path string) string {
	if !filepath.IsAbs(path) {
		path = filepath.Join(dir, path)
	}
	return filepath.Clean(path)
}

// Files walks each of paths (files or directories, relative to dir) and
// returns the eligible files sorted by path with duplicates removed.
func Files(dir string, paths []string, opts Options) ([]File, error) {
	if len(paths) == 0 {
		paths = []string{"."}
	}
	absDir, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("resolve directory %s: %w", dir, err)
	}

	seen := make(map[string]bool)
	var files []File
	add := func(path string) {
		if seen[path] {
			return
		}
		seen[path] = true
		files = append(files, File{Path: path, Name: displayName(absDir, path)})
	}

	for _, p := range paths {
		root := Canonical(absDir, p)
		info, err := os.Stat(root)
		if err != nil {
			return nil, fmt.Errorf("collect %s: %w", p, err)
		}
		if !info.IsDir() {
			if opts.eligible(root) {
				add(root)
			}
			continue
		}

		err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if path != root && opts.excluded(absDir, path, d.Name(), d.IsDir()) {
				if d.IsDir() {
					return filepath.SkipDir
				}
				return nil
			}
			if !d.IsDir() && opts.eligible(path) {
				add(path)
			}
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("walk %s: %w", p, err)
		}
	}

	sort.Slice(files, func(i, j int) bool { return files[i].Path < files[j].Path })
	return files, nil
}

func (o Options) eligible(path string) bool {
	ext := filepath.Ext(path)
	for _, e := range o.Extensions {
		if ext == e {
			return true
		}
	}
	return false
}

func (o Options) excluded(absDir, path, base string, isDir bool) bool {
	if isDir && strings.HasPrefix(base, ".") {
		return true
	}
	rel, err := filepath.Rel(absDir, path)
	if err != nil {
		rel = path
	}
	rel = filepath.ToSlash(rel)
	for _, pattern := range o.Exclude {
		if ok, _ := doublestar.Match(pattern, base); ok {
			return true
		}
		if ok, _ := doublestar.Match(pattern, rel); ok {
			return true
		}
	}
	return false
}

func displayName(absDir, path string) string {
	rel, err := filepath.Rel(absDir, path)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return path
	}
	return rel
}
