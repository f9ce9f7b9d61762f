package extractor

import (
	"os"
	"path/filepath"
	"testing"
)

func names(set map[string]struct{}) []string {
	out := make([]string, 0, len(set))
	for n := range set {
		out = append(out, n)
	}
	return out
}

func assertSet(t *testing.T, label string, got map[string]struct{}, want ...string) {
	t.Helper()
	if len(got) != len(want) {
		t.Errorf("%s = %v, want %v", label, names(got), want)
		return
	}
	for _, n := range want {
		if _, ok := got[n]; !ok {
			t.Errorf("%s = %v, missing %q", label, names(got), n)
		}
	}
}

func TestExtractPlainImports(t *testing.T) {
	e := New(Options{})
	res := e.Extract([]byte(`
import os
import requests
import google.cloud.storage
from fastapi import APIRouter
from . import sibling
from .relative import thing
`))

	assertSet(t, "Runtime", res.Runtime, "os", "requests", "google.cloud.storage", "fastapi")
	assertSet(t, "Typing", res.Typing)
}

func TestExtractAliasedImportRecordsModule(t *testing.T) {
	e := New(Options{})
	res := e.Extract([]byte("import numpy as np\nimport pandas.io.json as pj\n"))

	assertSet(t, "Runtime", res.Runtime, "numpy", "pandas.io.json")
}

func TestExtractTypeCheckingGuard(t *testing.T) {
	e := New(Options{})
	res := e.Extract([]byte(`
from typing import TYPE_CHECKING

if TYPE_CHECKING:
    import numpy
    from pandas import DataFrame
else:
    import fallbackmod

import requests
`))

	assertSet(t, "Typing", res.Typing, "numpy", "pandas")
	assertSet(t, "Runtime", res.Runtime, "typing", "requests", "fallbackmod")
}

func TestExtractQualifiedTypeCheckingGuard(t *testing.T) {
	e := New(Options{})
	res := e.Extract([]byte(`
import typing

if typing.TYPE_CHECKING:
    import scipy
`))

	assertSet(t, "Typing", res.Typing, "scipy")
	assertSet(t, "Runtime", res.Runtime, "typing")
}

func TestExtractNestedTypeCheckingContext(t *testing.T) {
	e := New(Options{})
	res := e.Extract([]byte(`
from typing import TYPE_CHECKING

if TYPE_CHECKING:
    if True:
        import deepmod
`))

	assertSet(t, "Typing", res.Typing, "deepmod")
}

func TestExtractTryExceptFallback(t *testing.T) {
	e := New(Options{})
	res := e.Extract([]byte(`
try:
    import ujson as json
except ImportError:
    import json
`))

	assertSet(t, "Runtime", res.Runtime, "ujson", "json")
}

func TestExtractDynamicImports(t *testing.T) {
	e := New(Options{})
	res := e.Extract([]byte(`
import importlib

mod = importlib.import_module("plugins.postgres")
other = __import__('redis')
computed = importlib.import_module(name)
`))

	assertSet(t, "Dynamic", res.Dynamic, "plugins", "redis")
	assertSet(t, "Runtime", res.Runtime, "importlib")
}

func TestExtractConnectionStrings(t *testing.T) {
	tests := []struct {
		name   string
		source string
		want   string
	}{
		{"asyncpg", `URL = "postgresql+asyncpg://u:p@h/db"`, "asyncpg"},
		{"aiomysql", `URL = "mysql+aiomysql://u:p@h/db"`, "aiomysql"},
		{"bare postgres scheme", `URL = "postgresql://u:p@h/db"`, "psycopg2"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := New(Options{})
			// The prefilter requires an import keyword somewhere in the file.
			res := e.Extract([]byte("import os\n" + tt.source + "\n"))
			if _, ok := res.Runtime[tt.want]; !ok {
				t.Errorf("Runtime = %v, missing %q", names(res.Runtime), tt.want)
			}
		})
	}
}

func TestExtractNoImportsShortCircuits(t *testing.T) {
	e := New(Options{})
	res := e.Extract([]byte("x = 1\ny = x + 2\n"))
	if len(res.Runtime)+len(res.Typing)+len(res.Dynamic) != 0 {
		t.Errorf("Extract() of import-free source = %v", res)
	}
}

func TestExtractSyntaxErrorStillCollects(t *testing.T) {
	e := New(Options{})
	// tree-sitter produces a partial tree; the valid import is kept.
	res := e.Extract([]byte("import requests\ndef broken(:\n"))
	if _, ok := res.Runtime["requests"]; !ok {
		t.Errorf("Runtime = %v, want requests despite syntax error", names(res.Runtime))
	}
}

func TestExtractFileNotebook(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "analysis.ipynb")
	nb := `{
		"cells": [
			{"cell_type": "markdown", "source": ["# import nothing"]},
			{"cell_type": "code", "source": ["import pandas\n", "import torch"]},
			{"cell_type": "code", "source": "import requests"}
		]
	}`
	if err := os.WriteFile(path, []byte(nb), 0o644); err != nil {
		t.Fatal(err)
	}

	res := New(Options{}).ExtractFile(path)
	assertSet(t, "Runtime", res.Runtime, "pandas", "torch", "requests")
}

func TestExtractFileMalformedNotebook(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "broken.ipynb")
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatal(err)
	}

	res := New(Options{}).ExtractFile(path)
	if len(res.Names()) != 0 {
		t.Errorf("ExtractFile(malformed notebook) = %v, want empty", res.Names())
	}
}

func TestExtractFileOversizedSkipped(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "big.py")
	content := append([]byte("import requests\n"), make([]byte, 128)...)
	if err := os.WriteFile(path, content, 0o644); err != nil {
		t.Fatal(err)
	}

	e := New(Options{MaxFileSize: 64})
	res := e.ExtractFile(path)
	if len(res.Names()) != 0 {
		t.Errorf("ExtractFile(oversized) = %v, want empty", res.Names())
	}
}

func TestExtractFileMissing(t *testing.T) {
	res := New(Options{}).ExtractFile(filepath.Join(t.TempDir(), "absent.py"))
	if len(res.Names()) != 0 {
		t.Errorf("ExtractFile(missing) = %v, want empty", res.Names())
	}
}

func TestExtractFileMemoized(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "mod.py")
	if err := os.WriteFile(path, []byte("import requests\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	e := New(Options{})
	first := e.ExtractFile(path)
	second := e.ExtractFile(path)

	assertSet(t, "Runtime", first.Runtime, "requests")
	assertSet(t, "Runtime", second.Runtime, "requests")
	if e.cache.Len() != 1 {
		t.Errorf("cache holds %d entries, want 1", e.cache.Len())
	}
}

func TestStripStringLiteral(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{`"redis"`, "redis"},
		{`'redis'`, "redis"},
		{`r"raw"`, "raw"},
		{`f'formatted'`, "formatted"},
		{`"""triple"""`, "triple"},
		{`bare`, "bare"},
	}
	for _, tt := range tests {
		if got := stripStringLiteral(tt.in); got != tt.want {
			t.Errorf("stripStringLiteral(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
