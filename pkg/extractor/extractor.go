// Package extractor parses Python source files into syntax trees and
// collects the module names they import, partitioned into runtime,
// type-checking-only, and dynamic import sets.
//
// Parsing uses tree-sitter's Python grammar. The tree walk is a pure
// recursive descent carrying an immutable context value, so a
// TYPE_CHECKING guard in one subtree can never leak into a sibling.
package extractor

import (
	"bytes"
	"os"
	"regexp"
	"strings"
	"sync"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/python"
)

// maxFileSize bounds worst-case parse cost. Files above this size are
// treated as having no imports.
const maxFileSize = 2 << 20 // 2 MiB

// identPathRegex matches a syntactically valid dotted identifier path.
var identPathRegex = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*(\.[A-Za-z_][A-Za-z0-9_]*)*$`)

// Result holds the module names extracted from one file, partitioned by
// import context. Each set maps full dotted paths (e.g.
// "google.cloud.storage") to presence; callers derive top-level segments
// as needed.
type Result struct {
	Runtime map[string]struct{} // unconditionally reachable imports
	Typing  map[string]struct{} // imports under a type-checking guard
	Dynamic map[string]struct{} // literal arguments to dynamic-import calls
}

func newResult() Result {
	return Result{
		Runtime: make(map[string]struct{}),
		Typing:  make(map[string]struct{}),
		Dynamic: make(map[string]struct{}),
	}
}

// Names returns the union of all three sets.
func (r Result) Names() map[string]struct{} {
	union := make(map[string]struct{}, len(r.Runtime)+len(r.Typing)+len(r.Dynamic))
	for n := range r.Runtime {
		union[n] = struct{}{}
	}
	for n := range r.Typing {
		union[n] = struct{}{}
	}
	for n := range r.Dynamic {
		union[n] = struct{}{}
	}
	return union
}

// Options configures an Extractor.
type Options struct {
	// MaxFileSize overrides the default size cap when positive.
	MaxFileSize int64

	// Logger receives per-file diagnostics. May be nil.
	Logger func(format string, args ...any)
}

// Extractor extracts import names from Python sources and notebooks.
// It is safe for concurrent use: each goroutine draws its own parser
// from an internal pool, and the result cache is internally locked.
type Extractor struct {
	pool    sync.Pool
	cache   *resultCache
	maxSize int64
	logger  func(format string, args ...any)
}

// New creates an Extractor with a fresh result cache.
func New(opts Options) *Extractor {
	maxSize := opts.MaxFileSize
	if maxSize <= 0 {
		maxSize = maxFileSize
	}
	return &Extractor{
		pool: sync.Pool{New: func() any {
			p := sitter.NewParser()
			p.SetLanguage(python.GetLanguage())
			return p
		}},
		cache:   newResultCache(),
		maxSize: maxSize,
		logger:  opts.Logger,
	}
}

func (e *Extractor) logf(format string, args ...any) {
	if e.logger != nil {
		e.logger(format, args...)
	}
}

// ExtractFile extracts imports from the file at path, memoizing the result
// per (path, mtime, size). Unreadable, oversized, or unparsable files yield
// an empty Result; a single bad file never aborts a batch.
func (e *Extractor) ExtractFile(path string) Result {
	info, err := os.Stat(path)
	if err != nil {
		e.logf("stat %s: %v", path, err)
		return newResult()
	}

	key := cacheKey{path: path, mtime: info.ModTime().UnixNano(), size: info.Size()}
	if res, ok := e.cache.get(key); ok {
		return res
	}

	res := e.extractPath(path, info.Size())
	e.cache.put(key, res)
	return res
}

func (e *Extractor) extractPath(path string, size int64) Result {
	if size > e.maxSize {
		e.logf("skipping %s: %d bytes exceeds size cap", path, size)
		return newResult()
	}

	content, err := os.ReadFile(path)
	if err != nil {
		e.logf("read %s: %v", path, err)
		return newResult()
	}

	if strings.HasSuffix(path, ".ipynb") {
		src, ok := notebookSource(content)
		if !ok {
			e.logf("skipping notebook %s: malformed JSON", path)
			return newResult()
		}
		content = src
	}

	return e.Extract(content)
}

// Extract parses Python source bytes and collects import names. A file
// with no import-indicating substring short-circuits without parsing.
func (e *Extractor) Extract(content []byte) Result {
	res := newResult()

	if !bytes.Contains(content, []byte("import")) {
		return res
	}

	parser := e.pool.Get().(*sitter.Parser)
	defer e.pool.Put(parser)

	tree := parser.Parse(nil, content)
	if tree == nil {
		e.logf("parse failed: tree-sitter returned no tree")
		return res
	}
	defer tree.Close()

	walk(tree.RootNode(), content, walkContext{}, &res)
	return res
}

// walkContext is the immutable per-subtree state threaded through the
// descent. Copies are cheap; children receive modified copies rather than
// observing mutated shared fields.
type walkContext struct {
	typing   bool // inside a TYPE_CHECKING-guarded body
	inExcept bool // inside an except handler body (fallback imports)
}

// active returns the set new imports should land in for this context.
func (c walkContext) active(res *Result) map[string]struct{} {
	if c.typing {
		return res.Typing
	}
	return res.Runtime
}

func walk(node *sitter.Node, content []byte, ctx walkContext, res *Result) {
	if node == nil {
		return
	}

	switch node.Type() {
	case "import_statement":
		collectImport(node, content, ctx, res)
		return
	case "import_from_statement":
		collectImportFrom(node, content, ctx, res)
		return
	case "if_statement":
		walkIf(node, content, ctx, res)
		return
	case "try_statement":
		walkTry(node, content, ctx, res)
		return
	case "call":
		if collectDynamicImport(node, content, res) {
			return
		}
	case "string":
		if pkg := matchConnString(nodeText(node, content)); pkg != "" {
			ctx.active(res)[pkg] = struct{}{}
		}
		return
	}

	for i := 0; i < int(node.ChildCount()); i++ {
		walk(node.Child(i), content, ctx, res)
	}
}

// walkIf handles TYPE_CHECKING guards. The guarded body inherits a typing
// context; the else branch is treated as unconditionally reachable and
// keeps the parent context with the flag cleared.
func walkIf(node *sitter.Node, content []byte, ctx walkContext, res *Result) {
	cond := node.ChildByFieldName("condition")
	body := node.ChildByFieldName("consequence")

	bodyCtx := ctx
	if isTypeCheckingGuard(cond, content) {
		bodyCtx.typing = true
	} else {
		// Condition expressions may still carry connection-string
		// literals or dynamic imports.
		walk(cond, content, ctx, res)
	}
	walk(body, content, bodyCtx, res)

	for i := 0; i < int(node.ChildCount()); i++ {
		child := node.Child(i)
		switch child.Type() {
		case "elif_clause":
			elifCtx := ctx
			elifCond := child.ChildByFieldName("condition")
			if isTypeCheckingGuard(elifCond, content) {
				elifCtx.typing = true
			} else {
				walk(elifCond, content, ctx, res)
			}
			walk(child.ChildByFieldName("consequence"), content, elifCtx, res)
		case "else_clause":
			elseCtx := ctx
			elseCtx.typing = false
			walk(child.ChildByFieldName("body"), content, elseCtx, res)
		}
	}
}

// walkTry collects imports from the try body as primary and from except
// handler bodies as potential fallbacks. Stdlib filtering downstream
// naturally discards fallback-to-stdlib patterns.
func walkTry(node *sitter.Node, content []byte, ctx walkContext, res *Result) {
	for i := 0; i < int(node.ChildCount()); i++ {
		child := node.Child(i)
		switch child.Type() {
		case "block":
			walk(child, content, ctx, res)
		case "except_clause", "except_group_clause":
			exceptCtx := ctx
			exceptCtx.inExcept = true
			for j := 0; j < int(child.ChildCount()); j++ {
				if sub := child.Child(j); sub.Type() == "block" {
					walk(sub, content, exceptCtx, res)
				}
			}
		case "else_clause", "finally_clause":
			walk(child, content, ctx, res)
		}
	}
}

// isTypeCheckingGuard reports whether a condition node is a recognized
// type-checking guard: the bare TYPE_CHECKING identifier or any attribute
// access ending in .TYPE_CHECKING (e.g. typing.TYPE_CHECKING).
func isTypeCheckingGuard(cond *sitter.Node, content []byte) bool {
	if cond == nil {
		return false
	}
	switch cond.Type() {
	case "identifier":
		return nodeText(cond, content) == "TYPE_CHECKING"
	case "attribute":
		return strings.HasSuffix(nodeText(cond, content), ".TYPE_CHECKING")
	case "parenthesized_expression":
		for i := 0; i < int(cond.NamedChildCount()); i++ {
			if isTypeCheckingGuard(cond.NamedChild(i), content) {
				return true
			}
		}
	}
	return false
}

// collectImport handles "import a.b.c" and "import x as y" statements.
// The full dotted path is recorded; aliases are irrelevant for dependency
// detection.
func collectImport(node *sitter.Node, content []byte, ctx walkContext, res *Result) {
	active := ctx.active(res)
	for i := 0; i < int(node.ChildCount()); i++ {
		child := node.Child(i)
		switch child.Type() {
		case "dotted_name":
			addName(active, nodeText(child, content))
		case "aliased_import":
			// The dotted_name child is the real module; the alias is noise.
			if name := child.ChildByFieldName("name"); name != nil {
				addName(active, nodeText(name, content))
			}
		}
	}
}

// collectImportFrom handles "from a.b import c" statements. Only the module
// path matters; relative imports can never resolve to external packages
// and are ignored.
func collectImportFrom(node *sitter.Node, content []byte, ctx walkContext, res *Result) {
	module := node.ChildByFieldName("module_name")
	if module == nil || module.Type() == "relative_import" {
		return
	}
	addName(ctx.active(res), nodeText(module, content))
}

// collectDynamicImport recognizes importlib.import_module("x") and
// __import__("x") calls with a literal first argument, recording the
// literal's leading path segment. Returns true if the call was a
// recognized dynamic import.
func collectDynamicImport(node *sitter.Node, content []byte, res *Result) bool {
	fn := node.ChildByFieldName("function")
	if fn == nil {
		return false
	}

	switch fn.Type() {
	case "identifier":
		if nodeText(fn, content) != "__import__" {
			return false
		}
	case "attribute":
		attr := fn.ChildByFieldName("attribute")
		if attr == nil || nodeText(attr, content) != "import_module" {
			return false
		}
	default:
		return false
	}

	args := node.ChildByFieldName("arguments")
	if args == nil {
		return false
	}
	for i := 0; i < int(args.NamedChildCount()); i++ {
		arg := args.NamedChild(i)
		if arg.Type() != "string" {
			return false // first argument is not a literal
		}
		literal := stripStringLiteral(nodeText(arg, content))
		base := literal
		if dot := strings.IndexByte(literal, '.'); dot >= 0 {
			base = literal[:dot]
		}
		addName(res.Dynamic, base)
		return true
	}
	return false
}

// addName records a name if it is a syntactically valid identifier path.
func addName(set map[string]struct{}, name string) {
	name = strings.TrimSpace(name)
	if name == "" || !identPathRegex.MatchString(name) {
		return
	}
	set[name] = struct{}{}
}

// stripStringLiteral removes prefix letters (r, b, f, u in any case and
// combination) and the surrounding quotes from a Python string literal.
func stripStringLiteral(lit string) string {
	lit = strings.TrimLeft(lit, "rRbBfFuU")
	for _, q := range []string{`"""`, `'''`, `"`, `'`} {
		if strings.HasPrefix(lit, q) && strings.HasSuffix(lit, q) && len(lit) >= 2*len(q) {
			return lit[len(q) : len(lit)-len(q)]
		}
	}
	return lit
}

func nodeText(node *sitter.Node, content []byte) string {
	if node == nil {
		return ""
	}
	start, end := node.StartByte(), node.EndByte()
	if start >= uint32(len(content)) || end > uint32(len(content)) || start > end {
		return ""
	}
	return string(content[start:end])
}
