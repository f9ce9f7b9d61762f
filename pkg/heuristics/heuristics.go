// Package heuristics derives dependencies that never appear as imports:
// database drivers named only in framework settings files, and production
// servers implied by a web framework. Everything here is bounded,
// best-effort textual inspection; a missing or unreadable settings file
// contributes nothing and never fails the batch.
package heuristics

import (
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/pyscout/pyscout/pkg/scanner"
)

// maxSettingsSize caps how much of a settings file is inspected.
const maxSettingsSize = 1 << 20

// engineRule maps a Django database ENGINE declaration to its driver
// package. Matching is a targeted regex over the settings text, not a
// parse.
type engineRule struct {
	pattern *regexp.Regexp
	pkg     string
}

var engineRules = []engineRule{
	{regexp.MustCompile(`['"]ENGINE['"]\s*:\s*['"]django\.db\.backends\.postgresql(_psycopg2)?['"]`), "psycopg2-binary"},
	{regexp.MustCompile(`['"]ENGINE['"]\s*:\s*['"]django\.db\.backends\.mysql['"]`), "mysqlclient"},
	{regexp.MustCompile(`['"]ENGINE['"]\s*:\s*['"]django\.db\.backends\.oracle['"]`), "cx_Oracle"},
}

// asgiServers are the packages whose presence means a FastAPI project
// already has an application server.
var asgiServers = map[string]struct{}{
	"uvicorn":   {},
	"hypercorn": {},
	"daphne":    {},
	"gunicorn":  {},
}

// Options configures heuristic scanning.
type Options struct {
	// Logger receives per-file diagnostics. May be nil.
	Logger func(format string, args ...any)
}

// Run inspects the project for dependencies implied by the current
// production import set and returns additional specifiers. imports holds
// raw import names (lowercased base segments are matched).
func Run(root string, imports map[string]struct{}, opts Options) []string {
	logf := opts.Logger
	if logf == nil {
		logf = func(string, ...any) {}
	}

	has := func(name string) bool {
		_, ok := imports[name]
		return ok
	}

	var additions []string

	if has("django") {
		additions = append(additions, djangoSettingsDeps(root, logf)...)
	}

	if has("fastapi") {
		server := false
		for name := range asgiServers {
			if has(name) {
				server = true
				break
			}
		}
		if !server {
			additions = append(additions, "uvicorn[standard]")
		}
	}

	if has("flask") && !has("gunicorn") && !has("uwsgi") {
		additions = append(additions, "gunicorn")
	}

	return additions
}

// djangoSettingsDeps scans settings.py files (and settings/ packages) for
// database engine and cache backend declarations.
func djangoSettingsDeps(root string, logf func(string, ...any)) []string {
	seen := make(map[string]struct{})
	var deps []string
	add := func(pkg string) {
		if _, ok := seen[pkg]; !ok {
			seen[pkg] = struct{}{}
			deps = append(deps, pkg)
		}
	}

	for _, path := range findSettingsFiles(root) {
		info, err := os.Stat(path)
		if err != nil || info.Size() > maxSettingsSize {
			continue
		}
		data, err := os.ReadFile(path)
		if err != nil {
			logf("reading settings file %s: %v", path, err)
			continue
		}
		content := string(data)

		for _, rule := range engineRules {
			if rule.pattern.MatchString(content) {
				add(rule.pkg)
				break
			}
		}

		if strings.Contains(content, "django_redis") || strings.Contains(content, "django.core.cache.backends.redis") {
			add("django-redis")
			add("redis")
		}
	}

	return deps
}

// findSettingsFiles locates candidate Django settings modules under root,
// skipping virtual environments and package directories.
func findSettingsFiles(root string) []string {
	var files []string
	filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if d.IsDir() {
			if path != root && scanner.IsIgnoredDir(path, nil) {
				return filepath.SkipDir
			}
			return nil
		}
		if d.Name() == "settings.py" || (filepath.Base(filepath.Dir(path)) == "settings" && strings.HasSuffix(d.Name(), ".py")) {
			files = append(files, path)
		}
		return nil
	})
	return files
}
