package pipeline

import (
	"bytes"
	"context"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/typeset-go/typeset/pkg/cache"
	"github.com/typeset-go/typeset/pkg/doc"
	docio "github.com/typeset-go/typeset/pkg/io"
	"github.com/typeset-go/typeset/pkg/lang"
	"github.com/typeset-go/typeset/pkg/layout"
	"github.com/typeset-go/typeset/pkg/layout/compile"
	"github.com/typeset-go/typeset/pkg/observability"
)

// Runner encapsulates pipeline execution with caching.
//
// The Runner is stateless except for the cache and logger - it doesn't
// store pipeline results. Multiple goroutines can safely use the same
// Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// Execute runs the complete parse → compile → render pipeline with
// caching.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	logger := r.logger(opts)

	result := &Result{}

	// Stage 1: parse.
	parseStart := time.Now()
	observability.Pipeline().OnParseStart(ctx, len(opts.Source))
	l, err := lang.Parse(opts.Source)
	result.Stats.ParseTime = time.Since(parseStart)
	observability.Pipeline().OnParseComplete(ctx, result.Stats.ParseTime, err)
	if err != nil {
		return nil, err
	}
	result.Layout = l

	// Stage 2: compile.
	compileStart := time.Now()
	d, docHit, err := r.CompileWithCacheInfo(ctx, l, opts)
	result.Stats.CompileTime = time.Since(compileStart)
	if err != nil {
		return nil, err
	}
	result.Document = d
	result.Stats.LineCount = len(d.Lines)
	result.CacheInfo.DocumentHit = docHit

	logger.Info("compiled document",
		"lines", len(d.Lines),
		"cached", docHit,
		"duration", result.Stats.CompileTime)

	// Stage 3: render.
	renderStart := time.Now()
	out, renderHit, err := r.RenderWithCacheInfo(ctx, d, opts)
	result.Stats.RenderTime = time.Since(renderStart)
	if err != nil {
		return nil, err
	}
	result.Output = out
	result.Stats.OutputBytes = len(out)
	result.CacheInfo.RenderHit = renderHit
	result.DocumentHash = r.documentHash(d)

	logger.Info("rendered output",
		"width", opts.BufferWidth,
		"bytes", len(out),
		"cached", renderHit,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// CompileWithCacheInfo compiles a layout with caching and returns
// cache hit info.
func (r *Runner) CompileWithCacheInfo(ctx context.Context, l *layout.Layout, opts Options) (*doc.Document, bool, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, false, err
	}

	sourceHash := cache.Hash([]byte(opts.Source))
	key := r.Keyer.DocumentKey(sourceHash, opts.DocumentKeyOpts())

	// Try cache first (unless refresh requested).
	if !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, key); err == nil && hit {
			if d, err := docio.ReadJSON(bytes.NewReader(data)); err == nil {
				observability.Cache().OnCacheHit(ctx, "document")
				return d, true, nil
			}
			// Corrupt entry: fall through and recompile.
		}
		observability.Cache().OnCacheMiss(ctx, "document")
	}

	observability.Pipeline().OnCompileStart(ctx, opts.MaxDepth)
	start := time.Now()
	d, err := compile.WithDepth(l, opts.MaxDepth)
	lines := 0
	if d != nil {
		lines = len(d.Lines)
	}
	observability.Pipeline().OnCompileComplete(ctx, lines, time.Since(start), err)
	if err != nil {
		return nil, false, err
	}

	if data, err := encodeDocument(d); err == nil {
		if r.Cache.Set(ctx, key, data, cache.TTLDocument) == nil {
			observability.Cache().OnCacheSet(ctx, "document", len(data))
		}
	}
	return d, false, nil
}

// Compile is a convenience wrapper that discards the cache hit info.
func (r *Runner) Compile(ctx context.Context, l *layout.Layout, opts Options) (*doc.Document, error) {
	d, _, err := r.CompileWithCacheInfo(ctx, l, opts)
	return d, err
}

// RenderWithCacheInfo renders a document with caching and returns
// cache hit info.
func (r *Runner) RenderWithCacheInfo(ctx context.Context, d *doc.Document, opts Options) (string, bool, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return "", false, err
	}

	key := r.Keyer.RenderKey(r.documentHash(d), opts.RenderKeyOpts())

	if !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, key); err == nil && hit {
			observability.Cache().OnCacheHit(ctx, "render")
			return string(data), true, nil
		}
		observability.Cache().OnCacheMiss(ctx, "render")
	}

	observability.Pipeline().OnRenderStart(ctx, opts.IndentWidth, opts.BufferWidth)
	start := time.Now()
	out := doc.Render(d, opts.IndentWidth, opts.BufferWidth)
	observability.Pipeline().OnRenderComplete(ctx, len(out), time.Since(start))

	if r.Cache.Set(ctx, key, []byte(out), cache.TTLRender) == nil {
		observability.Cache().OnCacheSet(ctx, "render", len(out))
	}
	return out, false, nil
}

// Render is a convenience wrapper that discards the cache hit info.
func (r *Runner) Render(ctx context.Context, d *doc.Document, opts Options) (string, error) {
	out, _, err := r.RenderWithCacheInfo(ctx, d, opts)
	return out, err
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// logger prefers the per-call logger from the options over the
// runner's own.
func (r *Runner) logger(opts Options) *log.Logger {
	if opts.Logger != nil {
		return opts.Logger
	}
	return r.Logger
}

// documentHash returns the content hash of the serialised document.
func (r *Runner) documentHash(d *doc.Document) string {
	data, err := encodeDocument(d)
	if err != nil {
		return ""
	}
	return cache.Hash(data)
}

func encodeDocument(d *doc.Document) ([]byte, error) {
	var buf bytes.Buffer
	if err := docio.WriteJSON(d, &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
