// Package scanner discovers candidate Python source files under a project
// root. It walks the tree iteratively, prunes virtual environments, VCS
// metadata, caches and build artifacts, and never follows symbolic links.
//
// Results stream over a channel so parsing can begin before discovery
// finishes. Output order is unspecified.
package scanner

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// ignoredDirNames are directory names that are always pruned.
var ignoredDirNames = map[string]struct{}{
	// Virtual environments
	".venv": {}, "venv": {}, "env": {}, ".env": {},
	// Version control
	".git": {}, ".hg": {}, ".svn": {},
	// IDE / editor
	".idea": {}, ".vscode": {}, ".vs": {},
	// Python caches
	"__pycache__": {}, ".mypy_cache": {}, ".ruff_cache": {}, ".pytest_cache": {},
	// Build artifacts
	"dist": {}, "build": {}, ".eggs": {},
	// Testing tools
	".tox": {}, ".nox": {},
	// Foreign package managers
	"node_modules": {}, "site-packages": {},
	// Other
	".terraform": {}, ".serverless": {},
}

// Options configures the scanner.
type Options struct {
	// IgnoreDirs adds directory names to the default prune set.
	IgnoreDirs []string

	// Logger receives diagnostics for skipped subtrees. May be nil.
	Logger func(format string, args ...any)
}

func (o Options) logf(format string, args ...any) {
	if o.Logger != nil {
		o.Logger(format, args...)
	}
}

// IsIgnoredDir reports whether a directory should be pruned: its name is in
// the fixed ignore set (or the caller-provided extras), it is a packaging
// metadata directory (*.egg-info), or it contains virtual-environment
// marker files.
func IsIgnoredDir(path string, extra []string) bool {
	name := filepath.Base(path)

	if _, ok := ignoredDirNames[name]; ok {
		return true
	}
	for _, e := range extra {
		if name == e {
			return true
		}
	}
	if strings.HasSuffix(name, ".egg-info") {
		return true
	}

	// Custom-named virtual environments carry marker files.
	if fileExists(filepath.Join(path, "pyvenv.cfg")) {
		return true
	}
	if fileExists(filepath.Join(path, "bin", "activate")) {
		return true
	}
	if fileExists(filepath.Join(path, "Scripts", "activate")) {
		return true
	}

	return false
}

func fileExists(path string) bool {
	info, err := os.Lstat(path)
	return err == nil && info.Mode().IsRegular()
}

// isCandidate reports whether a filename is a Python source or notebook file.
func isCandidate(name string) bool {
	return strings.HasSuffix(name, ".py") || strings.HasSuffix(name, ".ipynb")
}

// Walk streams candidate file paths under root. The returned channel is
// closed when traversal completes or ctx is cancelled.
//
// Symbolic links are never followed, neither for files nor directories.
// A permission error on a directory is logged and its subtree skipped;
// traversal of siblings continues.
func Walk(ctx context.Context, root string, opts Options) <-chan string {
	out := make(chan string, 64)

	go func() {
		defer close(out)

		stack := []string{root}
		for len(stack) > 0 {
			dir := stack[len(stack)-1]
			stack = stack[:len(stack)-1]

			entries, err := os.ReadDir(dir)
			if err != nil {
				if os.IsPermission(err) {
					opts.logf("permission denied accessing %s: %v", dir, err)
				}
				continue
			}

			for _, entry := range entries {
				if entry.Type()&fs.ModeSymlink != 0 {
					continue
				}

				path := filepath.Join(dir, entry.Name())
				if entry.IsDir() {
					if !IsIgnoredDir(path, opts.IgnoreDirs) {
						stack = append(stack, path)
					}
					continue
				}

				if !entry.Type().IsRegular() || !isCandidate(entry.Name()) {
					continue
				}

				select {
				case out <- path:
				case <-ctx.Done():
					return
				}
			}
		}
	}()

	return out
}

// Scan collects all candidate files under root into a slice.
// It is a convenience wrapper around Walk for callers that do not need
// streaming.
func Scan(root string, opts Options) []string {
	var files []string
	for f := range Walk(context.Background(), root, opts) {
		files = append(files, f)
	}
	return files
}
