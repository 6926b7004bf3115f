package blurp

/*
License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2023 Norbert Pillmayer <norbert@pillmayer.com>

*/

import (
	"sync"
	"sync/atomic"

	"github.com/npillmayer/blurp/cache"
	"github.com/npillmayer/blurp/codec"
	"github.com/npillmayer/blurp/dom"
	"github.com/npillmayer/blurp/walk"
	"golang.org/x/net/html"
	"golang.org/x/sync/singleflight"
)

// Engine defaults, applied by DefaultOptions and, where documented, for
// zero-valued option fields.
const (
	defaultMaxPlaceholders = 100
	defaultCacheCapacity   = 30
	defaultPixelBudget     = 60
)

// Options configure an Engine.
type Options struct {
	// Enabled switches placeholder generation on. A zero Options value
	// yields an engine that leaves every document unchanged.
	Enabled bool
	// BasePath is prepended to image references for locating the image
	// bytes, unless a Resolver is set.
	BasePath string
	// MaxPlaceholders bounds the number of derivation tasks per document.
	// 0 selects the default of 100.
	MaxPlaceholders int
	// CacheCapacity selects the retention policy for derivation results:
	// a positive capacity keeps at most that many entries, evicting the
	// least-recently-used one on overflow; 0 keeps every entry.
	// DefaultOptions sets 30.
	CacheCapacity int
	// PixelBudget is the approximate total pixel count of a preview
	// bitmap. 0 selects the default of 60.
	PixelBudget int
	// Workers is the number of concurrent derivations per document.
	// 0 selects a platform-dependent default.
	Workers int
	// Codec decodes and downscales images. nil selects codec.Default().
	Codec codec.Codec
	// Resolver maps image references to locations the codec understands.
	// nil derives a resolver from BasePath.
	Resolver codec.Resolver
}

// DefaultOptions returns the recommended engine configuration:
// generation enabled, at most 100 placeholders per document, a bounded
// cache of 30 entries, and the built-in filesystem codec.
func DefaultOptions() Options {
	return Options{
		Enabled:         true,
		MaxPlaceholders: defaultMaxPlaceholders,
		CacheCapacity:   defaultCacheCapacity,
		PixelBudget:     defaultPixelBudget,
	}
}

// Placeholder is the derived preview artifact for one image reference:
// an encoded markup fragment ready for a src attribute, together with
// the preview bitmap's pixel dimensions, which size the vector viewport.
// Placeholders are immutable once derived and shared between nodes
// referencing the same image.
type Placeholder struct {
	URI    string
	Width  int
	Height int
}

// Stats reports the outcome of an engine run over one document.
type Stats struct {
	Initiated int // derivation tasks started, bounded by MaxPlaceholders
	Attached  int // placeholders attached to candidate nodes
	Failed    int // derivations abandoned because the codec failed
	Hits      int // derivations satisfied from the cache
}

// Engine derives blurred preview placeholders for eligible images of
// HTML documents. The engine's cache persists across documents, so batch
// runs over a corpus decode every distinct image once. An Engine may be
// used from multiple goroutines, each running separate documents.
type Engine struct {
	opts    Options
	cache   cache.Store[*Placeholder]
	flights singleflight.Group
	codec   codec.Codec
	resolve codec.Resolver
}

// NewEngine creates an Engine for the given options. Option fields left
// at their zero value receive defaults as documented per field; the zero
// Options value yields a disabled engine.
func NewEngine(opts Options) *Engine {
	if opts.MaxPlaceholders <= 0 {
		opts.MaxPlaceholders = defaultMaxPlaceholders
	}
	if opts.PixelBudget <= 0 {
		opts.PixelBudget = defaultPixelBudget
	}
	c := opts.Codec
	if c == nil {
		c = codec.Default()
	}
	r := opts.Resolver
	if r == nil {
		if opts.BasePath != "" {
			r = codec.Base(opts.BasePath)
		} else {
			r = codec.Identity()
		}
	}
	return &Engine{
		opts:    opts,
		cache:   cache.New[*Placeholder](opts.CacheCapacity),
		codec:   c,
		resolve: r,
	}
}

// pendingAttachment records a derived placeholder for a candidate node
// until the document walk has settled. Tasks never mutate the tree while
// the traversal may still visit it.
type pendingAttachment struct {
	node *html.Node
	ph   *Placeholder
}

// Run scans the body of doc for eligible image candidates and attaches a
// blurred preview placeholder to each of them, up to the configured
// maximum. Candidates inside template elements are inert content and
// never scanned. Run blocks until every initiated derivation has settled
// and reports counts about the outcome.
//
// A derivation failing on its image is logged, counted and skipped; it
// does not abort the run. Run mutates doc; the caller must not access
// the document concurrently.
func (e *Engine) Run(doc *html.Node) (Stats, error) {
	var stats Stats
	if !e.opts.Enabled {
		tracer().Debugf("placeholder generation is disabled")
		return stats, nil
	}
	body := dom.Body(doc)
	if body == nil {
		tracer().Infof("document has no body, nothing to do")
		return stats, nil
	}
	var failed, hits int64
	var mx sync.Mutex
	var attachments []pendingAttachment
	//
	selectCandidate := func(n *html.Node) bool {
		c, ok := extractCandidate(n)
		if !ok || !eligible(c) {
			return false
		}
		tracer().Debugf("placeholder candidate: %s %q", c.kind, c.ref)
		return true
	}
	derivationTask := func(n *html.Node) error {
		c, ok := extractCandidate(n)
		if !ok { // selection only passes candidates
			return nil
		}
		ph, hit, err := e.derive(c.ref)
		if err != nil {
			atomic.AddInt64(&failed, 1)
			tracer().Errorf("cannot derive placeholder for %q: %v", c.ref, err)
			return nil // a failed candidate does not fail the run
		}
		if hit {
			atomic.AddInt64(&hits, 1)
		}
		mx.Lock()
		attachments = append(attachments, pendingAttachment{node: n, ph: ph})
		mx.Unlock()
		return nil
	}
	selection, err := walk.NewWalker(body).
		Prune(dom.IsTemplate).
		Select(selectCandidate).
		Limit(e.opts.MaxPlaceholders).
		ForEach(derivationTask, e.opts.Workers).
		Promise()()
	if err != nil {
		return stats, err
	}
	for _, p := range attachments { // the walk has settled, mutating is safe now
		attach(p.node, p.ph)
	}
	stats.Initiated = len(selection)
	stats.Attached = len(attachments)
	stats.Failed = int(failed)
	stats.Hits = int(hits)
	tracer().P("attached", stats.Attached).Infof("placeholder run: %d initiated, %d failed, %d cache hits",
		stats.Initiated, stats.Failed, stats.Hits)
	return stats, nil
}

// derive produces the placeholder for an image reference. The cache is
// consulted first; concurrent derivations for the same reference are
// collapsed into a single codec invocation.
func (e *Engine) derive(ref string) (*Placeholder, bool, error) {
	if ph, ok := e.cache.Get(ref); ok {
		return ph, true, nil
	}
	v, err, _ := e.flights.Do(ref, func() (interface{}, error) {
		if ph, ok := e.cache.Get(ref); ok { // populated while we queued up
			return ph, nil
		}
		ph, err := e.deriveCold(ref)
		if err != nil {
			return nil, err // failures do not populate the cache
		}
		e.cache.Put(ref, ph)
		return ph, nil
	})
	if err != nil {
		return nil, false, err
	}
	return v.(*Placeholder), false, nil
}

// deriveCold performs the expensive derivation path: resolve the
// reference, decode the image, plan the preview size, downscale, and
// wrap the bitmap into blurred vector markup.
func (e *Engine) deriveCold(ref string) (*Placeholder, error) {
	location := e.resolve(ref)
	img, err := e.codec.Decode(location)
	if err != nil {
		return nil, err
	}
	bounds := img.Bounds()
	w, h := planDimensions(bounds.Dx(), bounds.Dy(), e.opts.PixelBudget)
	tracer().Debugf("preview for %dx%d image planned as %dx%d", bounds.Dx(), bounds.Dy(), w, h)
	bitmap, err := e.codec.Downscale(img, w, h)
	if err != nil {
		return nil, err
	}
	return &Placeholder{URI: encodeSVG(bitmap, w, h), Width: w, Height: h}, nil
}

// attach appends the placeholder child to a candidate node and marks the
// host to skip native lazy-loading, so that the preview is not deferred
// like the image it stands in for.
func attach(n *html.Node, ph *Placeholder) {
	img := dom.NewElement("img")
	dom.SetAttr(img, "placeholder", "")
	dom.SetAttr(img, "src", ph.URI)
	dom.SetAttr(img, "alt", "")
	n.AppendChild(img)
	dom.SetAttr(n, "noloading", "")
}
