// Package pipeline orchestrates a full inference run: file discovery,
// parallel import extraction, production/development classification,
// framework heuristics, and resolution into canonical specifiers.
//
// Discovery and parsing overlap: the scanner streams paths over a channel
// while a pool of extraction workers consumes them, so parsing starts
// before the walk finishes.
package pipeline

import (
	"context"
	"os"
	"runtime"
	"sync"

	"github.com/google/uuid"

	"github.com/pyscout/pyscout/pkg/errors"
	"github.com/pyscout/pyscout/pkg/extractor"
	"github.com/pyscout/pyscout/pkg/heuristics"
	"github.com/pyscout/pyscout/pkg/knowledge"
	"github.com/pyscout/pyscout/pkg/pypi"
	"github.com/pyscout/pyscout/pkg/resolver"
	"github.com/pyscout/pyscout/pkg/scanner"
)

// parseWorkers sizes the extraction pool. Parsing is CPU-bound, so the
// multiplier and ceiling sit far below the I/O verification pool.
func parseWorkers() int {
	n := runtime.NumCPU() * 2
	if n > 32 {
		n = 32
	}
	if n < 1 {
		n = 1
	}
	return n
}

// Options configures a Pipeline.
type Options struct {
	// IgnoreDirs adds directory names to the scanner's prune set.
	IgnoreDirs []string

	// Aliases maps import names to specifiers, overlaying the built-in
	// alias table.
	Aliases map[string]string

	// Logger receives run diagnostics. May be nil.
	Logger func(format string, args ...any)
}

// Report is the outcome of one inference run.
type Report struct {
	// ID uniquely identifies the run in logs.
	ID string

	// Root is the resolved project root.
	Root string

	// FilesScanned counts the candidate files parsed.
	FilesScanned int

	// Production and Development hold the sorted canonical specifiers
	// for each bucket. A base package present in both is reported only
	// under Production.
	Production  []string
	Development []string
}

// Pipeline wires the scanner, extractor, resolver, and registry client
// into one run loop. Safe for concurrent runs over distinct roots.
type Pipeline struct {
	client    *pypi.Client
	extractor *extractor.Extractor
	resolver  *resolver.Resolver
	opts      Options
	logger    func(format string, args ...any)
}

// New creates a Pipeline on top of a registry client.
func New(client *pypi.Client, opts Options) *Pipeline {
	logger := opts.Logger
	if logger == nil {
		logger = func(string, ...any) {}
	}
	return &Pipeline{
		client:    client,
		extractor: extractor.New(extractor.Options{Logger: logger}),
		resolver:  resolver.New(client, resolver.Options{Aliases: opts.Aliases, Logger: logger}),
		opts:      opts,
		logger:    logger,
	}
}

// Infer runs the full pipeline over a project root. A missing root is the
// only fatal input condition; everything downstream is best-effort.
func (p *Pipeline) Infer(ctx context.Context, root string) (*Report, error) {
	if err := errors.ValidateRoot(root); err != nil {
		return nil, err
	}
	info, err := os.Stat(root)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodePathNotFound, err, "project path %q does not exist", root)
	}
	if !info.IsDir() {
		return nil, errors.New(errors.ErrCodeInvalidPath, "project path %q is not a directory", root)
	}

	report := &Report{ID: uuid.NewString(), Root: root}
	p.logger("run %s: scanning %s", report.ID, root)

	prodImports, devImports, files := p.extractAll(ctx, root)
	report.FilesScanned = len(files)
	p.logger("run %s: parsed %d files, %d production and %d development imports",
		report.ID, len(files), len(prodImports), len(devImports))

	localModules := scanner.LocalModules(files)

	// Framework heuristics key off lowercased top-level import segments.
	bases := make(map[string]struct{}, len(prodImports))
	for name := range prodImports {
		bases[knowledge.NormalizeName(knowledge.BaseSegment(name))] = struct{}{}
	}
	for _, spec := range heuristics.Run(root, bases, heuristics.Options{Logger: p.logger}) {
		p.logger("run %s: heuristic added %s", report.ID, spec)
		prodImports[spec] = struct{}{}
	}

	report.Production, report.Development = p.resolver.ResolveSets(ctx, prodImports, devImports, localModules)

	// One disk write per batch regardless of how many lookups ran.
	if err := p.client.Flush(ctx); err != nil {
		p.logger("run %s: flushing registry cache: %v", report.ID, err)
	}

	return report, nil
}

// extractAll streams candidate files into a bounded pool of extraction
// workers and aggregates the classified import sets.
func (p *Pipeline) extractAll(ctx context.Context, root string) (prod, dev map[string]struct{}, files []string) {
	prod = make(map[string]struct{})
	dev = make(map[string]struct{})

	paths := scanner.Walk(ctx, root, scanner.Options{
		IgnoreDirs: p.opts.IgnoreDirs,
		Logger:     p.logger,
	})

	var mu sync.Mutex
	var wg sync.WaitGroup
	for i := 0; i < parseWorkers(); i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for path := range paths {
				res := p.extractor.ExtractFile(path)
				isDev := scanner.IsDevFile(path, root)

				mu.Lock()
				files = append(files, path)
				if isDev {
					// Everything in a test/docs/scripts file is a
					// development dependency.
					for name := range res.Names() {
						dev[name] = struct{}{}
					}
				} else {
					for name := range res.Runtime {
						prod[name] = struct{}{}
					}
					for name := range res.Dynamic {
						prod[name] = struct{}{}
					}
					// Type-checking-only imports are never needed at
					// runtime.
					for name := range res.Typing {
						dev[name] = struct{}{}
					}
				}
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	return prod, dev, files
}
