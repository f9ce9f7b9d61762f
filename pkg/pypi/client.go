// Package pypi implements a read-only client for the PyPI JSON API with
// aggressive caching: an in-memory LRU tier, a persisted store loaded at
// session start and flushed once per resolution batch, and only then the
// network.
//
// All package names are sanitized before appearing in a request URL.
// A 404 is a definitive outcome and is cached so the miss is never
// re-queried; transient failures are treated as "not found" for the
// current run but never persisted.
package pypi

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"strings"
	"sync"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
)

const (
	defaultBaseURL = "https://pypi.org/pypi"
	defaultTimeout = 3 * time.Second
	userAgent      = "pyscout/" + clientVersion
	clientVersion  = "0.2.0"

	// maxBodySize rejects oversized registry responses. Full PyPI payloads
	// can reach several megabytes; anything above this is treated as a
	// fetch failure.
	maxBodySize = 5 << 20

	// memCacheSize bounds the in-memory metadata tier.
	memCacheSize = 8192
)

var (
	// urlUnsafeRegex matches characters that must never appear in a URL
	// path segment built from a package name.
	urlUnsafeRegex = regexp.MustCompile(`[/\\?#&=@:;{}\[\]|^~` + "`" + `\s]`)
)

// Metadata is the slim record kept per package: the full registry payload
// is large and only these fields are ever consumed.
type Metadata struct {
	Name         string   `json:"name"`
	Version      string   `json:"version"`
	RequiresDist []string `json:"requires_dist,omitempty"`
}

// Options configures a Client.
type Options struct {
	// BaseURL overrides the registry endpoint (tests point this at a
	// local server). Defaults to the public PyPI JSON API.
	BaseURL string

	// Store persists lookups between runs. May be nil for a purely
	// in-memory client.
	Store Store

	// Timeout bounds every network call. Defaults to 3 seconds.
	Timeout time.Duration

	// Logger receives per-lookup diagnostics. May be nil.
	Logger func(format string, args ...any)
}

// Client verifies package names against the registry. It is safe for
// concurrent use: the memory tier is internally synchronized and writes
// to the persist-bound map are serialized under a single lock.
type Client struct {
	baseURL string
	http    *http.Client
	store   Store
	logger  func(format string, args ...any)

	mem *lru.Cache[string, Entry]

	mu        sync.Mutex
	persisted map[string]Entry
	dirty     bool
}

// NewClient creates a Client. If opts.Store is non-nil, previously
// persisted entries are loaded and validated immediately; corrupt entries
// are dropped individually.
func NewClient(ctx context.Context, opts Options) (*Client, error) {
	baseURL := opts.BaseURL
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	mem, err := lru.New[string, Entry](memCacheSize)
	if err != nil {
		return nil, err
	}

	c := &Client{
		baseURL:   strings.TrimRight(baseURL, "/"),
		http:      &http.Client{Timeout: timeout},
		store:     opts.Store,
		logger:    opts.Logger,
		mem:       mem,
		persisted: make(map[string]Entry),
	}

	if c.store != nil {
		entries, err := c.store.Load(ctx)
		if err != nil {
			c.logf("loading registry cache: %v", err)
		}
		for name, entry := range entries {
			c.persisted[name] = entry
			c.mem.Add(name, entry)
		}
	}

	return c, nil
}

func (c *Client) logf(format string, args ...any) {
	if c.logger != nil {
		c.logger(format, args...)
	}
}

// SanitizeName validates and normalizes a package name for use in a
// registry URL. It strips extras and version clauses, rejects overlong
// names, path traversal sequences, and URL-unsafe characters, and returns
// the lowercase result. ok is false for invalid names, which must
// short-circuit to "not found" without any network call.
func SanitizeName(name string) (string, bool) {
	if name == "" || len(name) > 200 {
		return "", false
	}

	clean := name
	for _, sep := range []string{"[", "=", "<", ">", "!"} {
		if i := strings.Index(clean, sep); i >= 0 {
			clean = clean[:i]
		}
	}
	clean = strings.TrimSpace(clean)
	if clean == "" {
		return "", false
	}

	if strings.Contains(clean, "..") || strings.HasPrefix(clean, "/") || strings.HasPrefix(clean, "\\") {
		return "", false
	}
	if urlUnsafeRegex.MatchString(clean) {
		return "", false
	}

	return strings.ToLower(clean), true
}

// Metadata returns the slim metadata for a package, or nil if the package
// does not exist or cannot be fetched this run.
func (c *Client) Metadata(ctx context.Context, name string) *Metadata {
	clean, ok := SanitizeName(name)
	if !ok {
		return nil
	}

	if entry, ok := c.mem.Get(clean); ok {
		if entry.Meta != nil || !entry.Found {
			return entry.Meta
		}
		// Legacy positive entry without metadata: fall through to fetch.
	}

	return c.fetch(ctx, clean)
}

// Exists reports whether a package exists on the registry, using any
// cached outcome before the network.
func (c *Client) Exists(ctx context.Context, name string) bool {
	clean, ok := SanitizeName(name)
	if !ok {
		return false
	}

	if entry, ok := c.mem.Get(clean); ok {
		return entry.Found
	}

	return c.fetch(ctx, clean) != nil
}

// ExistsFast is a lighter existence-only probe using an HTTP HEAD request
// (no body download), intended for speculative name variations. Servers
// that reject HEAD fall back to the full fetch.
func (c *Client) ExistsFast(ctx context.Context, name string) bool {
	clean, ok := SanitizeName(name)
	if !ok {
		return false
	}

	if entry, ok := c.mem.Get(clean); ok {
		return entry.Found
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodHead, c.packageURL(clean), nil)
	if err != nil {
		return false
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.http.Do(req)
	if err != nil {
		c.logf("probe %s: %v", clean, err)
		return false
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
		return true
	case http.StatusNotFound:
		c.record(clean, Entry{Found: false})
		return false
	default:
		// HEAD unsupported or transient failure: try the full fetch once.
		return c.fetch(ctx, clean) != nil
	}
}

// Extras returns the distinct optional-extra names a package declares,
// parsed from "extra ==" markers in its requirements. A missing package
// yields nil.
func (c *Client) Extras(ctx context.Context, name string) []string {
	meta := c.Metadata(ctx, name)
	if meta == nil {
		return nil
	}
	return parseExtras(meta.RequiresDist)
}

// FindPackage attempts to locate the registry name for an import whose
// literal name does not exist, trying conventional prefix/suffix
// variations against the existence probe. Returns ok=false if nothing
// matched.
func (c *Client) FindPackage(ctx context.Context, importName string) (string, bool) {
	if c.Exists(ctx, importName) {
		return importName, true
	}

	variations := []string{
		"python-" + importName,
		importName + "-python",
		"py" + importName,
		importName + "py",
		"py-" + importName,
	}
	for _, variant := range variations {
		if c.ExistsFast(ctx, variant) {
			return variant, true
		}
	}

	return "", false
}

// Flush writes accumulated lookups to the persisted store. It is called
// once per resolution batch; calling it with no new entries is a no-op.
func (c *Client) Flush(ctx context.Context) error {
	if c.store == nil {
		return nil
	}

	c.mu.Lock()
	if !c.dirty {
		c.mu.Unlock()
		return nil
	}
	snapshot := make(map[string]Entry, len(c.persisted))
	for k, v := range c.persisted {
		snapshot[k] = v
	}
	c.dirty = false
	c.mu.Unlock()

	return c.store.Flush(ctx, snapshot)
}

// fetch performs the single metadata request for a sanitized name.
func (c *Client) fetch(ctx context.Context, clean string) *Metadata {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.packageURL(clean), nil)
	if err != nil {
		return nil
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		c.logf("fetch %s: %v", clean, err)
		return nil
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusNotFound:
		c.record(clean, Entry{Found: false})
		return nil
	default:
		c.logf("fetch %s: status %d", clean, resp.StatusCode)
		return nil
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize+1))
	if err != nil {
		c.logf("fetch %s: %v", clean, err)
		return nil
	}
	if len(body) > maxBodySize {
		c.logf("fetch %s: response exceeds %d bytes, rejected", clean, maxBodySize)
		return nil
	}

	var data apiResponse
	if err := json.Unmarshal(body, &data); err != nil {
		c.logf("fetch %s: decoding response: %v", clean, err)
		return nil
	}
	if data.Info.Name == "" {
		return nil
	}

	meta := &Metadata{
		Name:         data.Info.Name,
		Version:      data.Info.Version,
		RequiresDist: data.Info.RequiresDist,
	}
	c.record(clean, Entry{Found: true, Meta: meta})
	return meta
}

// record stores an outcome in both cache tiers and marks the persisted
// map dirty. Memory-tier writes are serialized by the LRU itself; the
// persist-bound map takes the client lock.
func (c *Client) record(clean string, entry Entry) {
	c.mem.Add(clean, entry)

	c.mu.Lock()
	c.persisted[clean] = entry
	c.dirty = true
	c.mu.Unlock()
}

func (c *Client) packageURL(clean string) string {
	return fmt.Sprintf("%s/%s/json", c.baseURL, clean)
}

// parseExtras extracts distinct extra names from requirement strings
// carrying "extra ==" conditional markers.
func parseExtras(requiresDist []string) []string {
	seen := make(map[string]struct{})
	var extras []string
	for _, req := range requiresDist {
		idx := strings.Index(req, "extra ==")
		if idx < 0 {
			continue
		}
		part := strings.TrimSpace(req[idx+len("extra =="):])
		part = strings.Trim(part, `'"`)
		if sp := strings.IndexByte(part, ' '); sp >= 0 {
			part = strings.Trim(part[:sp], `'"`)
		}
		if part == "" {
			continue
		}
		if _, ok := seen[part]; !ok {
			seen[part] = struct{}{}
			extras = append(extras, part)
		}
	}
	return extras
}

// apiResponse mirrors the subset of the PyPI JSON payload we read.
type apiResponse struct {
	Info apiInfo `json:"info"`
}

type apiInfo struct {
	Name         string   `json:"name"`
	Version      string   `json:"version"`
	RequiresDist []string `json:"requires_dist"`
}
