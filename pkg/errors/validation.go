package errors

import (
	"regexp"
	"strings"
	"unicode"
)

// ValidatePackageName validates a bare package name for safety and correctness.
// It rejects names that could be used for path traversal or injection attacks.
//
// The validation rules are intentionally conservative:
//   - No empty names
//   - No control characters
//   - No path traversal sequences (.., //, backslashes)
//   - No null bytes
//   - Maximum length of 200 characters
//
// Specifier-level validation (extras, version pins) is done by ValidateSpecifier.
func ValidatePackageName(name string) error {
	if name == "" {
		return New(ErrCodeInvalidPackage, "package name cannot be empty")
	}

	if len(name) > 200 {
		return New(ErrCodeInvalidPackage, "package name too long (max 200 characters)")
	}

	for _, r := range name {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidPackage, "package name contains control characters")
		}
	}

	dangerousPatterns := []string{
		"..",   // Parent directory
		"//",   // Double slash
		"\x00", // Null byte
		"\\",   // Backslash (Windows path)
	}

	for _, pattern := range dangerousPatterns {
		if strings.Contains(name, pattern) {
			return New(ErrCodeInvalidPackage, "package name contains invalid sequence: %q", pattern)
		}
	}

	return nil
}

// pep503NameRegex matches valid Python distribution names (PEP 503/508).
var pep503NameRegex = regexp.MustCompile(`^([A-Za-z0-9]|[A-Za-z0-9][A-Za-z0-9._-]*[A-Za-z0-9])$`)

// ValidatePyPIName validates a Python distribution name per PEP 508.
func ValidatePyPIName(name string) error {
	if err := ValidatePackageName(name); err != nil {
		return err
	}

	if !pep503NameRegex.MatchString(name) {
		return New(ErrCodeInvalidPackage, "invalid PyPI package name: %q", name)
	}

	return nil
}

// specifierRegex matches a full dependency specifier: a PEP 508-ish base name,
// an optional bracketed extras clause, and an optional version comparator.
var specifierRegex = regexp.MustCompile(
	`^[A-Za-z0-9]([A-Za-z0-9._-]*[A-Za-z0-9])?` + // base name
		`(\[[A-Za-z0-9,_ -]+\])?` + // optional extras
		`([<>=!~]+[A-Za-z0-9.*]+)?$`) // optional version spec

// shellMetaRegex matches characters that must never reach a subprocess
// argument list built from a specifier.
var shellMetaRegex = regexp.MustCompile("[;&|`$(){}!\\\\'\"\n\r\t]")

// ValidateSpecifier validates a canonical dependency specifier string
// (e.g. "requests", "uvicorn[standard]", "bcrypt==4.1.2") before it is
// handed to the package installer.
//
// Any specifier containing shell metacharacters is rejected outright,
// independent of whether it would also fail the structural pattern.
func ValidateSpecifier(spec string) error {
	if spec == "" {
		return New(ErrCodeInvalidSpecifier, "specifier cannot be empty")
	}

	if len(spec) > 200 {
		return New(ErrCodeInvalidSpecifier, "specifier too long (max 200 characters)")
	}

	if shellMetaRegex.MatchString(spec) {
		return New(ErrCodeInvalidSpecifier, "specifier contains shell metacharacters: %q", spec)
	}

	if !specifierRegex.MatchString(spec) {
		return New(ErrCodeInvalidSpecifier, "malformed specifier: %q", spec)
	}

	return nil
}

// ValidateRoot validates a project root path handed to the pipeline.
// The path must be non-empty and free of null bytes; existence is checked
// separately by the pipeline (a missing root is a fatal condition there).
func ValidateRoot(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "project path cannot be empty")
	}

	if strings.ContainsRune(path, '\x00') {
		return New(ErrCodeInvalidPath, "project path contains null bytes")
	}

	return nil
}
