// Package checkerconf locates the type checker's own configuration file, which
// owns file selection when collected files are not passed on the command line.
package checkerconf

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/ini.v1"
)

// Config is a discovered checker configuration.
type Config struct {
	Path string
	// Files is the checker's own list of targets, if it declares one.
	Files []string
}

type candidate struct {
	name    string
	section string
	toml    bool
}

// mypy's lookup order within a directory.
var candidates = []candidate{
	{name: "mypy.ini", section: "mypy"},
	{name: ".mypy.ini", section: "mypy"},
	{name: "pyproject.toml", toml: true},
	{name: "setup.cfg", section: "mypy"},
}

// Discover walks up from startDir and returns the first file that carries a
// mypy section. ok is false when none exists.
func Discover(startDir string) (cfg *Config, ok bool, err error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return nil, false, fmt.Errorf("resolve start directory: %w", err)
	}
	for {
		for _, c := range candidates {
			path := filepath.Join(dir, c.name)
			if _, err := os.Stat(path); err != nil {
				if errors.Is(err, os.ErrNotExist) {
					continue
				}
				return nil, false, fmt.Errorf("stat %q: %w", path, err)
			}

			var found bool
			var files []string
			if c.toml {
				files, found, err = readPyproject(path)
			} else {
				files, found, err = readINI(path, c.section)
			}
			if err != nil {
				return nil, false, err
			}
			if found {
				return &Config{Path: path, Files: files}, true, nil
			}
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return nil, false, nil
}

type pyproject struct {
	Tool struct {
		Mypy map[string]interface{} `toml:"mypy"`
	} `toml:"tool"`
}

func readPyproject(path string) ([]string, bool, error) {
	var doc pyproject
	meta, err := toml.DecodeFile(path, &doc)
	if err != nil {
		return nil, false, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if !meta.IsDefined("tool", "mypy") {
		return nil, false, nil
	}

	switch v := doc.Tool.Mypy["files"].(type) {
	case string:
		return splitList(v), true, nil
	case []interface{}:
		var files []string
		for _, f := range v {
			if s, ok := f.(string); ok && s != "" {
				files = append(files, s)
			}
		}
		return files, true, nil
	}
	return nil, true, nil
}

// readINI loads path the way Python's configparser does (option names
// case-insensitive, indented continuation lines) and returns the section's
// "files" value.
func readINI(path, section string) ([]string, bool, error) {
	f, err := ini.LoadSources(ini.LoadOptions{
		Insensitive:                true,
		AllowPythonMultilineValues: true,
		SkipUnrecognizableLines:    true,
	}, path)
	if err != nil {
		return nil, false, fmt.Errorf("%s: failed to parse INI: %w", path, err)
	}
	sec, err := f.GetSection(section)
	if err != nil {
		return nil, false, nil
	}
	if !sec.HasKey("files") {
		return nil, true, nil
	}
	return splitList(sec.Key("files").String()), true, nil
}

// splitList splits a comma- or newline-separated target list.
func splitList(s string) []string {
	var out []string
	parts := strings.FieldsFunc(s, func(r rune) bool { return r == ',' || r == '\n' })
	for _, part := range parts {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
