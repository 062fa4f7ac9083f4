package compile

import (
	"testing"

	"github.com/typeset-go/typeset/pkg/doc"
	"github.com/typeset-go/typeset/pkg/errors"
	"github.com/typeset-go/typeset/pkg/layout"
)

func newGuard() *depthGuard {
	return &depthGuard{limit: DefaultMaxDepth}
}

func mustDenull(t *testing.T, l *layout.Layout) *node {
	t.Helper()
	n, err := denull(newArena(), l, newGuard())
	if err != nil {
		t.Fatalf("denull() error = %v", err)
	}
	return n
}

func TestDenull_AbsorbsNullInComp(t *testing.T) {
	l := layout.Comp(layout.Null(), layout.MustText("x"), true, false)
	n := mustDenull(t, l)
	if n == nil || n.kind != kindText || n.text != "x" {
		t.Errorf("denull(comp(null, x)) = %+v, want text x", n)
	}

	l = layout.Comp(layout.MustText("x"), layout.Null(), true, false)
	n = mustDenull(t, l)
	if n == nil || n.kind != kindText || n.text != "x" {
		t.Errorf("denull(comp(x, null)) = %+v, want text x", n)
	}
}

func TestDenull_UnaryOfNullIsNull(t *testing.T) {
	for _, l := range []*layout.Layout{
		layout.Fix(layout.Null()),
		layout.Grp(layout.Null()),
		layout.Seq(layout.Null()),
		layout.Nest(layout.Null()),
		layout.Pack(layout.Null()),
	} {
		if n := mustDenull(t, l); n != nil {
			t.Errorf("denull(%s) = %+v, want nil", l, n)
		}
	}
}

func TestDenull_LineKeepsEmptySides(t *testing.T) {
	n := mustDenull(t, layout.Line(layout.Null(), layout.MustText("x")))
	if n == nil || n.kind != kindLine {
		t.Fatalf("denull(line(null, x)) = %+v, want line node", n)
	}
	if n.left != nil {
		t.Errorf("left = %+v, want nil", n.left)
	}
	if n.right == nil || n.right.text != "x" {
		t.Errorf("right = %+v, want text x", n.right)
	}
}

func TestDenull_CascadingAbsorption(t *testing.T) {
	// grp(comp(null, null)) collapses bottom-up to nothing.
	l := layout.Grp(layout.Comp(layout.Null(), layout.Null(), false, false))
	if n := mustDenull(t, l); n != nil {
		t.Errorf("denull = %+v, want nil", n)
	}
}

func TestPropagateFix_SetsSeams(t *testing.T) {
	l := layout.Fix(layout.Comp(
		layout.MustText("a"),
		layout.Comp(layout.MustText("b"), layout.MustText("c"), true, false),
		false, false,
	))
	n := mustDenull(t, l)
	out, err := propagateFix(newArena(), n, newGuard())
	if err != nil {
		t.Fatalf("propagateFix() error = %v", err)
	}
	if out.kind != kindComp || !out.fix {
		t.Fatalf("root = %+v, want fixed comp", out)
	}
	if inner := out.right; inner.kind != kindComp || !inner.fix {
		t.Errorf("inner = %+v, want fixed comp", inner)
	}
}

func TestPropagateFix_DropsGrpSeqInside(t *testing.T) {
	l := layout.Fix(layout.Grp(layout.Seq(layout.Comp(
		layout.MustText("a"), layout.MustText("b"), false, false,
	))))
	n := mustDenull(t, l)
	out, err := propagateFix(newArena(), n, newGuard())
	if err != nil {
		t.Fatalf("propagateFix() error = %v", err)
	}
	if out.kind != kindComp {
		t.Errorf("root kind = %d, want comp (grp/seq dropped)", out.kind)
	}
}

func TestPropagateFix_KeepsNestScope(t *testing.T) {
	l := layout.Fix(layout.Nest(layout.MustText("a")))
	n := mustDenull(t, l)
	out, err := propagateFix(newArena(), n, newGuard())
	if err != nil {
		t.Fatalf("propagateFix() error = %v", err)
	}
	if out.kind != kindNest {
		t.Errorf("root kind = %d, want nest", out.kind)
	}
}

func TestPropagateFix_RejectsLine(t *testing.T) {
	l := layout.Fix(layout.Line(layout.MustText("a"), layout.MustText("b")))
	n := mustDenull(t, l)
	if _, err := propagateFix(newArena(), n, newGuard()); !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("error = %v, want INVALID_INPUT", err)
	}
}

func TestLinearize_RightSpine(t *testing.T) {
	// ((a b) c) d, with distinct attributes per seam.
	l := layout.Comp(
		layout.Comp(
			layout.Comp(layout.MustText("a"), layout.MustText("b"), true, false),
			layout.MustText("c"), false, true,
		),
		layout.MustText("d"), false, false,
	)
	n := mustDenull(t, l)
	out, err := linearize(newArena(), n, newGuard())
	if err != nil {
		t.Fatalf("linearize() error = %v", err)
	}

	// Expect a(b(c d)) with seam attributes travelling with their seams:
	// a-b keeps (true,false), b-c keeps (false,true), c-d keeps (false,false).
	if out.left.kind != kindText || out.left.text != "a" {
		t.Fatalf("spine head = %+v, want text a", out.left)
	}
	if !out.pad || out.fix {
		t.Errorf("seam a-b = (%t,%t), want (true,false)", out.pad, out.fix)
	}
	s2 := out.right
	if s2.left.text != "b" || s2.pad || !s2.fix {
		t.Errorf("seam b-c = (%t,%t) left %q, want (false,true) b", s2.pad, s2.fix, s2.left.text)
	}
	s3 := s2.right
	if s3.left.text != "c" || s3.pad || s3.fix {
		t.Errorf("seam c-d = (%t,%t) left %q, want (false,false) c", s3.pad, s3.fix, s3.left.text)
	}
	if s3.right.text != "d" {
		t.Errorf("spine tail = %+v, want text d", s3.right)
	}
}

func TestLinearize_OpaqueScopes(t *testing.T) {
	// Chains inside a nest linearise independently of the outside.
	l := layout.Comp(
		layout.Nest(layout.Comp(
			layout.Comp(layout.MustText("a"), layout.MustText("b"), false, false),
			layout.MustText("c"), false, false,
		)),
		layout.MustText("d"), false, false,
	)
	n := mustDenull(t, l)
	out, err := linearize(newArena(), n, newGuard())
	if err != nil {
		t.Fatalf("linearize() error = %v", err)
	}
	if out.left.kind != kindNest {
		t.Fatalf("left = kind %d, want nest", out.left.kind)
	}
	inner := out.left.left
	if inner.kind != kindComp || inner.left.text != "a" || inner.right.kind != kindComp {
		t.Errorf("nest body not right-leaning: %+v", inner)
	}
}

func TestResolveScopes_Ids(t *testing.T) {
	l := layout.Comp(
		layout.Grp(layout.Comp(layout.MustText("a"), layout.MustText("b"), false, false)),
		layout.Seq(layout.Comp(layout.MustText("c"), layout.MustText("d"), false, false)),
		false, false,
	)
	n := mustDenull(t, l)
	out, err := resolveScopes(newArena(), n, newGuard())
	if err != nil {
		t.Fatalf("resolveScopes() error = %v", err)
	}

	if out.kind != kindComp || out.group != 0 || out.seq != 0 {
		t.Fatalf("root = %+v, want unscoped comp", out)
	}
	left := out.left
	if left.kind != kindComp || left.group != 1 || left.seq != 0 {
		t.Errorf("grouped comp = (grp %d, seq %d), want (1, 0)", left.group, left.seq)
	}
	right := out.right
	if right.kind != kindComp || right.group != 0 || right.seq != 1 {
		t.Errorf("sequenced comp = (grp %d, seq %d), want (0, 1)", right.group, right.seq)
	}
}

func TestResolveScopes_InnermostWins(t *testing.T) {
	l := layout.Grp(layout.Comp(
		layout.MustText("a"),
		layout.Grp(layout.Comp(layout.MustText("b"), layout.MustText("c"), false, false)),
		false, false,
	))
	n := mustDenull(t, l)
	out, err := resolveScopes(newArena(), n, newGuard())
	if err != nil {
		t.Fatalf("resolveScopes() error = %v", err)
	}
	if out.group != 1 {
		t.Errorf("outer seam group = %d, want 1", out.group)
	}
	if inner := out.right; inner.group != 2 {
		t.Errorf("inner seam group = %d, want 2", inner.group)
	}
}

func TestCanonicalize_Items(t *testing.T) {
	l := layout.Comp(
		layout.MustText("foo"),
		layout.Nest(layout.MustText("bar")),
		true, false,
	)
	d, err := Compile(l)
	if err != nil {
		t.Fatalf("Compile() error = %v", err)
	}
	if len(d.Lines) != 1 {
		t.Fatalf("lines = %d, want 1", len(d.Lines))
	}

	want := []doc.ItemKind{doc.ItemLit, doc.ItemIndent, doc.ItemGlue, doc.ItemLit, doc.ItemIndent}
	items := d.Lines[0].Items
	if len(items) != len(want) {
		t.Fatalf("items = %d (%s), want %d", len(items), d, len(want))
	}
	for i, k := range want {
		if items[i].Kind != k {
			t.Errorf("item %d kind = %d, want %d", i, items[i].Kind, k)
		}
	}
}

func TestCanonicalize_DanglingGlueDropped(t *testing.T) {
	// The left side of the seam ends in a hard break with an empty
	// trailing line, so the seam has no literal to its left.
	l := layout.Comp(
		layout.Line(layout.MustText("a"), layout.Null()),
		layout.MustText("b"),
		true, false,
	)
	d, err := Compile(l)
	if err != nil {
		t.Fatalf("Compile() error = %v", err)
	}
	if err := d.Validate(); err != nil {
		t.Fatalf("Validate() error = %v", err)
	}
	if got := doc.Render(d, 2, 80); got != "a\nb" {
		t.Errorf("render = %q, want %q", got, "a\nb")
	}
}

func TestArena_PointerStability(t *testing.T) {
	a := newArena()
	first := a.text("x")
	for i := 0; i < 10*arenaBlock; i++ {
		a.alloc()
	}
	if first.text != "x" {
		t.Errorf("first node corrupted after growth: %+v", first)
	}
}
