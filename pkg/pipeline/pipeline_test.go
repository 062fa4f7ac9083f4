package pipeline

import (
	"context"
	"testing"

	"github.com/typeset-go/typeset/pkg/cache"
	"github.com/typeset-go/typeset/pkg/errors"
)

func newTestRunner(t *testing.T) *Runner {
	t.Helper()
	c, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache error: %v", err)
	}
	r := NewRunner(c, nil, nil)
	t.Cleanup(func() { r.Close() })
	return r
}

func TestExecute(t *testing.T) {
	r := newTestRunner(t)

	res, err := r.Execute(context.Background(), Options{
		Source:      `"foo" + "bar"`,
		BufferWidth: 80,
	})
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if res.Output != "foo bar" {
		t.Errorf("Output = %q, want %q", res.Output, "foo bar")
	}
	if res.Stats.LineCount != 1 {
		t.Errorf("LineCount = %d, want 1", res.Stats.LineCount)
	}
	if res.CacheInfo.DocumentHit || res.CacheInfo.RenderHit {
		t.Errorf("CacheInfo = %+v, want all misses on first run", res.CacheInfo)
	}
	if res.DocumentHash == "" {
		t.Error("DocumentHash is empty")
	}
}

func TestExecute_SecondRunHitsCache(t *testing.T) {
	r := newTestRunner(t)
	opts := Options{Source: `"foo" + grp ("bar" & "baz")`, BufferWidth: 7}

	first, err := r.Execute(context.Background(), opts)
	if err != nil {
		t.Fatalf("first Execute() error = %v", err)
	}

	second, err := r.Execute(context.Background(), Options{Source: opts.Source, BufferWidth: 7})
	if err != nil {
		t.Fatalf("second Execute() error = %v", err)
	}
	if !second.CacheInfo.DocumentHit {
		t.Error("DocumentHit = false on second run")
	}
	if !second.CacheInfo.RenderHit {
		t.Error("RenderHit = false on second run")
	}
	if second.Output != first.Output {
		t.Errorf("cached Output = %q, want %q", second.Output, first.Output)
	}
}

func TestExecute_DifferentWidthMissesRenderCache(t *testing.T) {
	r := newTestRunner(t)
	src := `"foo" + grp ("bar" & "baz")`

	if _, err := r.Execute(context.Background(), Options{Source: src, BufferWidth: 7}); err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	res, err := r.Execute(context.Background(), Options{Source: src, BufferWidth: 40})
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if !res.CacheInfo.DocumentHit {
		t.Error("DocumentHit = false, want document reuse across widths")
	}
	if res.CacheInfo.RenderHit {
		t.Error("RenderHit = true, want miss for a new width")
	}
}

func TestExecute_RefreshBypassesCache(t *testing.T) {
	r := newTestRunner(t)
	src := `"x" & "y"`

	if _, err := r.Execute(context.Background(), Options{Source: src}); err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	res, err := r.Execute(context.Background(), Options{Source: src, Refresh: true})
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if res.CacheInfo.DocumentHit || res.CacheInfo.RenderHit {
		t.Errorf("CacheInfo = %+v, want misses with Refresh", res.CacheInfo)
	}
}

func TestExecute_SyntaxError(t *testing.T) {
	r := newTestRunner(t)
	_, err := r.Execute(context.Background(), Options{Source: `"foo" +`})
	if !errors.Is(err, errors.ErrCodeSyntax) {
		t.Errorf("error = %v, want SYNTAX_ERROR", err)
	}
}

func TestExecute_CompileError(t *testing.T) {
	r := newTestRunner(t)
	_, err := r.Execute(context.Background(), Options{Source: `fix ("a" @ "b")`})
	if !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("error = %v, want INVALID_INPUT", err)
	}
}

func TestExecute_NullCacheStillWorks(t *testing.T) {
	r := NewRunner(nil, nil, nil)
	defer r.Close()

	res, err := r.Execute(context.Background(), Options{Source: `"a" @ "b"`})
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if res.Output != "a\nb" {
		t.Errorf("Output = %q, want %q", res.Output, "a\nb")
	}
}

func TestOptions_Validate(t *testing.T) {
	tests := []struct {
		name string
		opts Options
		code errors.Code
	}{
		{"missing source", Options{}, errors.ErrCodeInvalidInput},
		{"negative indent", Options{Source: `"a"`, IndentWidth: -1}, errors.ErrCodeInvalidWidth},
		{"negative buffer", Options{Source: `"a"`, BufferWidth: -2}, errors.ErrCodeInvalidWidth},
		{"negative depth", Options{Source: `"a"`, MaxDepth: -1}, errors.ErrCodeInvalidDepth},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.opts.ValidateAndSetDefaults()
			if !errors.Is(err, tt.code) {
				t.Errorf("error = %v, want %s", err, tt.code)
			}
		})
	}
}

func TestOptions_Defaults(t *testing.T) {
	opts := Options{Source: `"a"`}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatalf("ValidateAndSetDefaults() error = %v", err)
	}
	if opts.BufferWidth != DefaultBufferWidth {
		t.Errorf("BufferWidth = %d, want %d", opts.BufferWidth, DefaultBufferWidth)
	}
	if opts.IndentWidth != DefaultIndentWidth {
		t.Errorf("IndentWidth = %d, want %d", opts.IndentWidth, DefaultIndentWidth)
	}
	if opts.MaxDepth != DefaultMaxDepth {
		t.Errorf("MaxDepth = %d, want %d", opts.MaxDepth, DefaultMaxDepth)
	}
}

func TestRunner_ScopedKeysSeparateVersions(t *testing.T) {
	c, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache error: %v", err)
	}
	defer c.Close()

	v1 := NewRunner(c, cache.NewScopedKeyer(nil, "v1:"), nil)
	v2 := NewRunner(c, cache.NewScopedKeyer(nil, "v2:"), nil)

	src := `"shared" & "source"`
	if _, err := v1.Execute(context.Background(), Options{Source: src}); err != nil {
		t.Fatalf("v1 Execute() error = %v", err)
	}
	res, err := v2.Execute(context.Background(), Options{Source: src})
	if err != nil {
		t.Fatalf("v2 Execute() error = %v", err)
	}
	if res.CacheInfo.DocumentHit {
		t.Error("v2 hit v1's document cache despite scoped keys")
	}
}
