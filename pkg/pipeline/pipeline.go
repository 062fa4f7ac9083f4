// Package pipeline provides the parse → compile → render pipeline.
//
// This package ties the layout mini-language, the compiler, and the
// renderer together behind one entry point that the CLI and embedding
// programs share. By centralizing this logic, every entry point gets
// identical caching, logging, and validation behavior.
//
// # Architecture
//
// The pipeline consists of three stages:
//
//  1. Parse: read mini-language source into a layout tree
//  2. Compile: lower the layout to its canonical document form
//  3. Render: fit the document to a buffer width
//
// Compile and render results are cached by content hash; parsing is
// cheap and always runs. Each stage can be run independently or as
// part of the complete pipeline.
//
// # Usage
//
// Create a Runner and execute the pipeline:
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	opts := pipeline.Options{
//	    Source:      `"foo" + grp ("bar" & "baz")`,
//	    BufferWidth: 40,
//	}
//	result, err := runner.Execute(ctx, opts)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(result.Output)
package pipeline

import (
	"time"

	"github.com/charmbracelet/log"

	"github.com/typeset-go/typeset/pkg/cache"
	"github.com/typeset-go/typeset/pkg/doc"
	"github.com/typeset-go/typeset/pkg/errors"
	"github.com/typeset-go/typeset/pkg/layout"
	"github.com/typeset-go/typeset/pkg/layout/compile"
)

// Default values shared by the CLI and embedding programs.
const (
	// DefaultBufferWidth is the target line width.
	DefaultBufferWidth = 80

	// DefaultIndentWidth is the column offset per nest level.
	DefaultIndentWidth = 2

	// DefaultMaxDepth is the compiler recursion budget.
	DefaultMaxDepth = compile.DefaultMaxDepth
)

// Options contains all configuration for the formatting pipeline.
type Options struct {
	// Source is the mini-language source text.
	Source string

	// Render parameters.
	IndentWidth int
	BufferWidth int

	// MaxDepth is the compiler recursion budget; 0 means the default.
	MaxDepth int

	// Refresh bypasses cache reads (results are still written back).
	Refresh bool

	// Logger receives stage timings; nil uses the runner's logger.
	Logger *log.Logger

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool
}

// ValidateAndSetDefaults checks required fields and applies defaults.
// This method is idempotent.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if o.Source == "" {
		return errors.New(errors.ErrCodeInvalidInput, "source is required")
	}
	if o.IndentWidth < 0 {
		return errors.New(errors.ErrCodeInvalidWidth, "indent width must be non-negative, got %d", o.IndentWidth)
	}
	if o.BufferWidth < 0 {
		return errors.New(errors.ErrCodeInvalidWidth, "buffer width must be non-negative, got %d", o.BufferWidth)
	}
	if o.MaxDepth < 0 {
		return errors.New(errors.ErrCodeInvalidDepth, "recursion budget must be positive, got %d", o.MaxDepth)
	}
	if o.BufferWidth == 0 {
		o.BufferWidth = DefaultBufferWidth
	}
	if o.IndentWidth == 0 {
		o.IndentWidth = DefaultIndentWidth
	}
	if o.MaxDepth == 0 {
		o.MaxDepth = DefaultMaxDepth
	}
	o.validated = true
	return nil
}

// DocumentKeyOpts returns the cache key options for the compile stage.
func (o *Options) DocumentKeyOpts() cache.DocumentKeyOpts {
	return cache.DocumentKeyOpts{MaxDepth: o.MaxDepth}
}

// RenderKeyOpts returns the cache key options for the render stage.
func (o *Options) RenderKeyOpts() cache.RenderKeyOpts {
	return cache.RenderKeyOpts{IndentWidth: o.IndentWidth, BufferWidth: o.BufferWidth}
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Layout is the parsed tree. Parsing always runs, so it is set
	// even when the document came from cache.
	Layout *layout.Layout

	// Document is the compiled canonical form.
	Document *doc.Document

	// DocumentHash is the content hash of the serialised document.
	DocumentHash string

	// Output is the rendered text.
	Output string

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks which stages hit the cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	LineCount   int // document lines before rendering
	OutputBytes int
	ParseTime   time.Duration
	CompileTime time.Duration
	RenderTime  time.Duration
}

// CacheInfo tracks cache hits for each pipeline stage.
type CacheInfo struct {
	DocumentHit bool // compiled document came from cache
	RenderHit   bool // rendered output came from cache
}
