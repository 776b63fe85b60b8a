// Package discover expands the command-line path set into the list of files
// to check
//
// A path naming a file is always checked. A path naming a directory is
// walked recursively: entries whose name begins with "." are skipped, and a
// regular file is selected when its path contains the selection pattern
// anywhere (".txt" by default, so "notes.txt.bak" qualifies). Entries are
// visited in lexical order, so repeated runs see the same file order
//
// Failures to stat or list a path are collected and the walk continues
package discover

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/ppiankov/spchk/internal/model"
)

// Options configures path expansion
type Options struct {
	// Pattern is the substring a file path inside a directory must contain.
	// Empty selects every regular file
	Pattern string
	// SkipHidden skips directory entries whose name starts with "."
	SkipHidden bool
}

// Target is a file selected for checking
type Target struct {
	// Path is the file path as reported in miss lines
	Path string
	// Root is the command-line path the file was found under
	Root string
}

// Failure is a path that could not be expanded. Index is the number of
// targets selected before it, so a failure reported just ahead of
// Targets[Index] keeps command-line order
type Failure struct {
	model.PathFailure
	Index int
}

// Result is the outcome of expanding a path set
type Result struct {
	Targets  []Target
	Failures []Failure
}

func (r *Result) fail(path, op string, err error) {
	r.Failures = append(r.Failures, Failure{
		PathFailure: model.NewPathFailure(path, op, err),
		Index:       len(r.Targets),
	})
}

// Expand resolves paths into targets in command-line order
func Expand(paths []string, opts Options) *Result {
	result := &Result{
		Targets:  make([]Target, 0),
		Failures: make([]Failure, 0),
	}

	for _, p := range paths {
		info, err := os.Stat(p)
		if err != nil {
			result.fail(p, "stat", err)
			continue
		}

		if info.IsDir() {
			walk(p, p, opts, result)
			continue
		}
		result.Targets = append(result.Targets, Target{Path: p, Root: p})
	}

	return result
}

func walk(root, dir string, opts Options, result *Result) {
	// os.ReadDir returns entries sorted by name
	entries, err := os.ReadDir(dir)
	if err != nil {
		result.fail(dir, "readdir", err)
		if len(entries) == 0 {
			return
		}
	}

	for _, entry := range entries {
		name := entry.Name()
		if opts.SkipHidden && strings.HasPrefix(name, ".") {
			continue
		}

		full := filepath.Join(dir, name)
		mode := entry.Type()

		// Symlinks are followed to files but never descended into, which
		// keeps link cycles out of the walk
		if mode&fs.ModeSymlink != 0 {
			info, err := os.Stat(full)
			if err != nil {
				result.fail(full, "stat", err)
				continue
			}
			if info.IsDir() {
				continue
			}
			mode = info.Mode().Type()
		}

		switch {
		case mode.IsDir():
			walk(root, full, opts, result)
		case mode.IsRegular() && selected(full, opts.Pattern):
			result.Targets = append(result.Targets, Target{Path: full, Root: root})
		}
	}
}

func selected(path, pattern string) bool {
	return pattern == "" || strings.Contains(path, pattern)
}
