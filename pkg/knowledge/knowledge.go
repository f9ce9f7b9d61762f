// Package knowledge holds the static lookup tables used during import
// resolution: the Python standard library module set, common import-name
// to distribution-name aliases, a curated set of known PyPI packages,
// generic names that are almost always local modules, and framework
// companion packages.
//
// All tables are read-only after package initialization and safe for
// concurrent use.
package knowledge

import "strings"

// NormalizeName converts an import or package name to its canonical PyPI
// lookup form: lowercase with underscores and dots replaced by hyphens.
// This follows PEP 503 name normalization closely enough for table lookups;
// runs of separators are not collapsed because import names cannot contain
// them anyway.
func NormalizeName(name string) string {
	name = strings.ToLower(name)
	name = strings.ReplaceAll(name, "_", "-")
	name = strings.ReplaceAll(name, ".", "-")
	return name
}

// BaseSegment returns the text before the first dot of a dotted import
// path, or the whole name if it contains no dot.
func BaseSegment(name string) string {
	if i := strings.IndexByte(name, '.'); i >= 0 {
		return name[:i]
	}
	return name
}

// IsStdlib reports whether an import name refers to a standard library
// module. Names beginning with an underscore are always treated as
// interpreter-internal. The check is case-insensitive and applies to the
// top-level segment of dotted paths.
func IsStdlib(name string) bool {
	if strings.HasPrefix(name, "_") {
		return true
	}
	lower := strings.ToLower(name)
	if _, ok := stdlibModules[lower]; ok {
		return true
	}
	base := BaseSegment(lower)
	_, ok := stdlibModules[base]
	return ok
}

// LookupAlias returns the canonical installable specifier for an import
// name, consulting the alias table case-sensitively first and then
// case-insensitively. The returned specifier may carry extras
// (e.g. "qrcode[pil]").
func LookupAlias(name string) (string, bool) {
	if spec, ok := aliases[name]; ok {
		return spec, true
	}
	spec, ok := aliasesLower[strings.ToLower(name)]
	return spec, ok
}

// IsKnownPackage reports whether the normalized name is in the curated
// known-package set, short-circuiting remote verification.
func IsKnownPackage(normalized string) bool {
	_, ok := knownPackages[normalized]
	return ok
}

// IsSuspicious reports whether the name exactly matches the set of generic
// names that are almost always local modules. Suspicious names are never
// verified remotely.
func IsSuspicious(name string) bool {
	_, ok := suspiciousNames[name]
	return ok
}

// CompanionsFor returns the companion specifiers implied by a resolved
// base package name (e.g. a web framework implying a production server),
// or nil if the package triggers none.
func CompanionsFor(base string) []string {
	return frameworkExtras[strings.ToLower(base)]
}
