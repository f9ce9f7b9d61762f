// Package manifest reads and writes the project's pyproject.toml,
// recording resolved production dependencies under [project] and
// development-only dependencies in the standard "dev" dependency group.
//
// An existing manifest's identity fields (name, version, description,
// readme, requires-python) are preserved; only the dependency lists are
// replaced.
package manifest

import (
	"os"
	"path/filepath"
	"sort"

	"github.com/BurntSushi/toml"

	"github.com/pyscout/pyscout/pkg/errors"
)

// FileName is the manifest file written into the project root.
const FileName = "pyproject.toml"

const (
	defaultVersion        = "0.1.0"
	defaultRequiresPython = ">=3.8"
)

// Project is the [project] table subset the tool reads and writes.
type Project struct {
	Name           string   `toml:"name"`
	Version        string   `toml:"version"`
	Description    string   `toml:"description"`
	Readme         string   `toml:"readme,omitempty"`
	RequiresPython string   `toml:"requires-python"`
	Dependencies   []string `toml:"dependencies"`
}

// Document is the full manifest shape: project metadata plus named
// dependency groups, of which this tool only manages "dev".
type Document struct {
	Project          Project             `toml:"project"`
	DependencyGroups map[string][]string `toml:"dependency-groups,omitempty"`
}

// Load reads an existing manifest from the project root. A missing file
// returns an empty document and no error; a malformed file is an error so
// callers never silently clobber hand-written content they failed to
// parse.
func Load(root string) (*Document, error) {
	path := filepath.Join(root, FileName)

	var doc Document
	if _, err := toml.DecodeFile(path, &doc); err != nil {
		if os.IsNotExist(err) {
			return &Document{}, nil
		}
		return nil, errors.Wrap(errors.ErrCodeInvalidManifest, err, "parsing "+FileName)
	}
	return &doc, nil
}

// Write updates the manifest in the project root with the given
// dependency lists, preserving any existing project identity fields and
// unrelated dependency groups. It returns the path written.
func Write(root string, prod, dev []string) (string, error) {
	doc, err := Load(root)
	if err != nil {
		return "", err
	}

	if doc.Project.Name == "" {
		doc.Project.Name = filepath.Base(root)
	}
	if doc.Project.Version == "" {
		doc.Project.Version = defaultVersion
	}
	if doc.Project.RequiresPython == "" {
		doc.Project.RequiresPython = defaultRequiresPython
	}

	doc.Project.Dependencies = sortedCopy(prod)

	if doc.DependencyGroups == nil {
		doc.DependencyGroups = make(map[string][]string)
	}
	if len(dev) > 0 {
		doc.DependencyGroups["dev"] = sortedCopy(dev)
	} else {
		delete(doc.DependencyGroups, "dev")
	}
	if len(doc.DependencyGroups) == 0 {
		doc.DependencyGroups = nil
	}

	path := filepath.Join(root, FileName)
	f, err := os.Create(path)
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeInvalidManifest, err, "writing "+FileName)
	}
	defer f.Close()

	enc := toml.NewEncoder(f)
	enc.Indent = ""
	if err := enc.Encode(doc); err != nil {
		return "", errors.Wrap(errors.ErrCodeInvalidManifest, err, "encoding "+FileName)
	}
	return path, nil
}

func sortedCopy(specs []string) []string {
	out := make([]string, len(specs))
	copy(out, specs)
	sort.Strings(out)
	return out
}
