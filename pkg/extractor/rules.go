package extractor

import "strings"

// connRule infers a driver package from a database connection URL embedded
// in a string literal. Rules form an ordered table; the first match wins,
// so driver-qualified schemes must precede their bare counterparts.
type connRule struct {
	pattern string // substring to look for
	pkg     string // import name the match implies
}

// connStringRules is evaluated against every string literal in a file.
// This is substring matching, not URL parsing: it may over- or under-match
// and is deliberately best-effort.
var connStringRules = []connRule{
	{"mysql+aiomysql://", "aiomysql"},
	{"mysql+pymysql://", "pymysql"},
	{"postgresql+asyncpg://", "asyncpg"},
	{"postgresql+psycopg2://", "psycopg2"},
	{"postgresql+psycopg://", "psycopg"},
	{"mssql+pyodbc://", "pyodbc"},
	{"postgresql://", "psycopg2"},
	{"postgres://", "psycopg2"},
	{"mysql://", "pymysql"},
	{"redis://", "redis"},
	{"rediss://", "redis"},
	{"mongodb+srv://", "pymongo"},
	{"mongodb://", "pymongo"},
}

// matchConnString returns the driver package implied by a string literal,
// or "" if no rule matches.
func matchConnString(literal string) string {
	for _, r := range connStringRules {
		if strings.Contains(literal, r.pattern) {
			return r.pkg
		}
	}
	return ""
}
