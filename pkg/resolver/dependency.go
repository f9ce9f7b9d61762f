package resolver

import (
	"sort"
	"strings"
)

// Dependency is one resolved package requirement: a base name, the union
// of extras contributed by every resolution path, and an optional exact
// version pin.
type Dependency struct {
	Name    string
	Extras  map[string]struct{}
	Version string
}

// ParseSpecifier splits a specifier string of the form
// "base[extra1,extra2]==version" into its parts. Both the extras clause
// and the version clause are optional and may appear in either order
// relative to each other in legacy inputs (e.g. "pkg==1.0" from an alias
// table).
func ParseSpecifier(spec string) Dependency {
	dep := Dependency{Extras: make(map[string]struct{})}

	rest := spec
	if i := strings.IndexByte(rest, '['); i >= 0 {
		dep.Name = rest[:i]
		end := strings.IndexByte(rest, ']')
		if end < 0 {
			end = len(rest) - 1
		}
		for _, extra := range strings.Split(rest[i+1:end], ",") {
			extra = strings.TrimSpace(extra)
			if extra != "" {
				dep.Extras[extra] = struct{}{}
			}
		}
		rest = dep.Name + rest[end+1:]
	}

	if i := strings.Index(rest, "=="); i >= 0 {
		dep.Name = rest[:i]
		dep.Version = rest[i+2:]
	} else if dep.Name == "" {
		dep.Name = rest
	}

	return dep
}

// String reconstructs the canonical specifier: extras sorted
// alphabetically inside brackets, then the version pin. Empty clauses are
// omitted entirely.
func (d Dependency) String() string {
	var b strings.Builder
	b.WriteString(d.Name)

	if len(d.Extras) > 0 {
		extras := make([]string, 0, len(d.Extras))
		for extra := range d.Extras {
			extras = append(extras, extra)
		}
		sort.Strings(extras)
		b.WriteByte('[')
		b.WriteString(strings.Join(extras, ","))
		b.WriteByte(']')
	}

	if d.Version != "" {
		b.WriteString("==")
		b.WriteString(d.Version)
	}

	return b.String()
}

// MergeSpecifiers collapses a list of specifiers to one entry per base
// package name: extras are unioned, and when several carry a version pin
// the most recently merged pin wins. The result is sorted.
func MergeSpecifiers(specs []string) []string {
	merged := make(map[string]*Dependency)
	order := make([]string, 0, len(specs))

	for _, spec := range specs {
		dep := ParseSpecifier(spec)
		if dep.Name == "" {
			continue
		}

		existing, ok := merged[dep.Name]
		if !ok {
			merged[dep.Name] = &dep
			order = append(order, dep.Name)
			continue
		}
		for extra := range dep.Extras {
			existing.Extras[extra] = struct{}{}
		}
		if dep.Version != "" {
			existing.Version = dep.Version
		}
	}

	result := make([]string, 0, len(order))
	for _, name := range order {
		result = append(result, merged[name].String())
	}
	sort.Strings(result)
	return result
}
