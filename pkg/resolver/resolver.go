// Package resolver turns raw import names into canonical package
// specifiers. It runs a fixed pipeline: stdlib, local, and suspicious
// filters, a fast-path alias and known-package lookup, base-segment
// deduplication, parallel registry verification, framework companion
// injection, and an extras/version merge.
//
// Resolution is best-effort: an import nobody can account for is logged
// and dropped, never surfaced as an error.
package resolver

import (
	"context"
	"runtime"
	"sort"
	"strings"
	"sync"

	"github.com/pyscout/pyscout/pkg/knowledge"
)

// ioWorkers sizes the verification pool for I/O-bound lookups: most time
// is spent waiting on the registry, so the multiplier and ceiling are far
// above the CPU count.
func ioWorkers(nCandidates int) int {
	n := runtime.NumCPU() * 12
	if n > 128 {
		n = 128
	}
	if n > nCandidates {
		n = nCandidates
	}
	if n < 1 {
		n = 1
	}
	return n
}

// Registry is the subset of the registry client consumed during
// verification.
type Registry interface {
	Exists(ctx context.Context, name string) bool
	Extras(ctx context.Context, name string) []string
	FindPackage(ctx context.Context, name string) (string, bool)
}

// Options configures a Resolver.
type Options struct {
	// Aliases maps import names to specifiers, consulted before the
	// built-in alias table. Keys are matched case-insensitively.
	Aliases map[string]string

	// Logger receives per-candidate diagnostics. May be nil.
	Logger func(format string, args ...any)
}

// Resolver resolves import names against the static knowledge tables and
// a registry client. Safe for concurrent use.
type Resolver struct {
	registry Registry
	aliases  map[string]string
	logger   func(format string, args ...any)
}

// New creates a Resolver backed by the given registry client.
func New(registry Registry, opts Options) *Resolver {
	logger := opts.Logger
	if logger == nil {
		logger = func(string, ...any) {}
	}
	aliases := make(map[string]string, len(opts.Aliases))
	for name, spec := range opts.Aliases {
		aliases[strings.ToLower(name)] = spec
	}
	return &Resolver{registry: registry, aliases: aliases, logger: logger}
}

// lookupAlias consults the user-configured aliases first, then the
// built-in table.
func (r *Resolver) lookupAlias(name string) (string, bool) {
	if spec, ok := r.aliases[strings.ToLower(name)]; ok {
		return spec, true
	}
	return knowledge.LookupAlias(name)
}

// Resolve runs the full pipeline over a set of raw import names and
// returns the sorted canonical specifiers. localModules holds the
// top-level module stems defined by the project itself.
func (r *Resolver) Resolve(ctx context.Context, imports map[string]struct{}, localModules map[string]struct{}) []string {
	names := make([]string, 0, len(imports))
	for name := range imports {
		names = append(names, name)
	}
	sort.Strings(names)

	var specs []string
	var candidates []string
	resolvedBases := make(map[string]struct{})
	seenBases := make(map[string]struct{})

	for _, name := range names {
		base := knowledge.BaseSegment(name)

		if knowledge.IsStdlib(name) {
			continue
		}
		if _, ok := localModules[base]; ok {
			continue
		}
		if knowledge.IsSuspicious(name) {
			continue
		}

		if spec, ok := r.lookupAlias(name); ok {
			specs = append(specs, spec)
			resolvedBases[knowledge.NormalizeName(name)] = struct{}{}
			continue
		}

		normalized := knowledge.NormalizeName(name)
		if knowledge.IsKnownPackage(normalized) {
			specs = append(specs, normalized)
			resolvedBases[normalized] = struct{}{}
			continue
		}
		lower := strings.ToLower(name)
		if knowledge.IsKnownPackage(lower) {
			specs = append(specs, lower)
			resolvedBases[lower] = struct{}{}
			continue
		}

		// Dotted variants of an already-resolved base add nothing new,
		// and several dotted imports sharing a base collapse to one
		// verification task.
		normBase := knowledge.NormalizeName(base)
		if _, ok := resolvedBases[normBase]; ok && strings.Contains(name, ".") {
			continue
		}
		if _, ok := seenBases[normBase]; ok {
			continue
		}
		seenBases[normBase] = struct{}{}
		candidates = append(candidates, name)
	}

	specs = append(specs, r.verifyAll(ctx, candidates)...)

	specs = append(specs, injectCompanions(specs)...)

	return MergeSpecifiers(specs)
}

// ResolveSets resolves the production and development import sets as two
// independent concurrent pipelines, then drops development entries whose
// base package already appears in production.
func (r *Resolver) ResolveSets(ctx context.Context, prod, dev, localModules map[string]struct{}) (prodSpecs, devSpecs []string) {
	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		prodSpecs = r.Resolve(ctx, prod, localModules)
	}()
	go func() {
		defer wg.Done()
		devSpecs = r.Resolve(ctx, dev, localModules)
	}()
	wg.Wait()

	prodBases := make(map[string]struct{}, len(prodSpecs))
	for _, spec := range prodSpecs {
		prodBases[knowledge.NormalizeName(ParseSpecifier(spec).Name)] = struct{}{}
	}

	kept := devSpecs[:0]
	for _, spec := range devSpecs {
		if _, ok := prodBases[knowledge.NormalizeName(ParseSpecifier(spec).Name)]; ok {
			continue
		}
		kept = append(kept, spec)
	}
	return prodSpecs, kept
}

// verifyAll checks the remaining candidates against the registry in
// parallel and returns the specifiers that verified. Order of the result
// is not significant; the final merge sorts.
func (r *Resolver) verifyAll(ctx context.Context, candidates []string) []string {
	if len(candidates) == 0 {
		return nil
	}

	jobs := make(chan string)
	results := make(chan string)

	var wg sync.WaitGroup
	for i := 0; i < ioWorkers(len(candidates)); i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for name := range jobs {
				if spec, ok := r.verify(ctx, name); ok {
					r.logger("verified %q as %q", name, spec)
					results <- spec
				} else {
					r.logger("no package found for import %q", name)
				}
			}
		}()
	}

	go func() {
		for _, name := range candidates {
			jobs <- name
		}
		close(jobs)
		wg.Wait()
		close(results)
	}()

	var specs []string
	for spec := range results {
		specs = append(specs, spec)
	}
	return specs
}

// verify resolves one candidate. Strategies run in order; the first hit
// wins.
func (r *Resolver) verify(ctx context.Context, name string) (string, bool) {
	// Fully hyphenated namespace form in the curated set
	// (google.cloud.storage -> google-cloud-storage).
	hyphenated := knowledge.NormalizeName(name)
	if knowledge.IsKnownPackage(hyphenated) {
		return hyphenated, true
	}

	// Exact literal name on the registry.
	if r.registry.Exists(ctx, name) {
		return name, true
	}

	dotted := strings.Contains(name, ".")

	// Base segment via tables or variation search; trailing segment may
	// name one of the base package's declared extras.
	if dotted {
		base := knowledge.BaseSegment(name)
		basePkg := ""

		if norm := knowledge.NormalizeName(base); knowledge.IsKnownPackage(norm) {
			basePkg = norm
		} else if alias, ok := r.lookupAlias(base); ok {
			basePkg = alias
		} else if !knowledge.IsSuspicious(strings.ToLower(base)) {
			if found, ok := r.registry.FindPackage(ctx, base); ok {
				basePkg = found
			}
		}

		if basePkg != "" {
			suffix := name[strings.LastIndexByte(name, '.')+1:]
			for _, extra := range r.registry.Extras(ctx, basePkg) {
				if extra == suffix {
					return basePkg + "[" + suffix + "]", true
				}
			}
			return basePkg, true
		}
	}

	// Hyphenated namespace existence check on the registry itself.
	if dotted {
		if r.registry.Exists(ctx, strings.ReplaceAll(name, ".", "-")) {
			return strings.ReplaceAll(name, ".", "-"), true
		}
	}

	// Conventional prefix/suffix variations as a last resort.
	if found, ok := r.registry.FindPackage(ctx, name); ok {
		return found, true
	}

	return "", false
}

// injectCompanions returns the companion specifiers triggered by any
// already-resolved base package (a web framework implying its production
// server, an ORM implying its runtime helper).
func injectCompanions(specs []string) []string {
	var additions []string
	for _, spec := range specs {
		base := ParseSpecifier(spec).Name
		additions = append(additions, knowledge.CompanionsFor(base)...)
	}
	return additions
}
