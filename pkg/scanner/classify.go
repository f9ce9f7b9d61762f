package scanner

import (
	"path/filepath"
	"strings"
)

// devDirNames are path segments that mark a file as development-only.
var devDirNames = map[string]struct{}{
	"tests": {}, "test": {}, "docs": {}, "examples": {}, "scripts": {},
}

// IsDevFile reports whether a file belongs to the development bucket:
// it lives under a tests/docs/examples/scripts directory, or its name
// matches a test-file pattern. Paths outside root classify as production.
func IsDevFile(path, root string) bool {
	rel, err := filepath.Rel(root, path)
	if err != nil || strings.HasPrefix(rel, "..") {
		return false
	}

	for _, part := range strings.Split(filepath.ToSlash(rel), "/") {
		if _, ok := devDirNames[strings.ToLower(part)]; ok {
			return true
		}
	}

	name := strings.ToLower(filepath.Base(path))
	if strings.HasPrefix(name, "test_") || strings.HasSuffix(name, "_test.py") {
		return true
	}
	return name == "conftest.py"
}

// LocalModules derives the set of module stems defined by the project
// itself from the discovered file list: every file's base name without
// extension, plus the parent directory name of each package-init file.
// The returned set is built once per run and treated as immutable.
func LocalModules(files []string) map[string]struct{} {
	local := make(map[string]struct{}, len(files))
	for _, f := range files {
		base := filepath.Base(f)
		stem := strings.TrimSuffix(base, filepath.Ext(base))
		if stem != "" {
			local[stem] = struct{}{}
		}
		if base == "__init__.py" {
			local[filepath.Base(filepath.Dir(f))] = struct{}{}
		}
	}
	return local
}
