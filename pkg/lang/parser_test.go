package lang

import (
	"testing"

	"github.com/typeset-go/typeset/pkg/doc"
	"github.com/typeset-go/typeset/pkg/errors"
	"github.com/typeset-go/typeset/pkg/layout/compile"
)

func mustParse(t *testing.T, src string) string {
	t.Helper()
	l, err := Parse(src)
	if err != nil {
		t.Fatalf("Parse(%q) error = %v", src, err)
	}
	return l.String()
}

func TestParse_Terms(t *testing.T) {
	tests := []struct {
		src  string
		want string
	}{
		{`"foo"`, `(text "foo")`},
		{`null`, `null`},
		{`("foo")`, `(text "foo")`},
		{`"a" & "b"`, `(comp (text "a") (text "b") false false)`},
		{`"a" + "b"`, `(comp (text "a") (text "b") true false)`},
		{`"a" !& "b"`, `(comp (text "a") (text "b") false true)`},
		{`"a" !+ "b"`, `(comp (text "a") (text "b") true true)`},
		{`"a" @ "b"`, `(line (text "a") (text "b"))`},
		{`"a" @@ "b"`, `(line (text "a") (line null (text "b")))`},
		{`fix "a"`, `(fix (text "a"))`},
		{`grp "a"`, `(grp (text "a"))`},
		{`seq "a"`, `(seq (text "a"))`},
		{`nest "a"`, `(nest (text "a"))`},
		{`pack "a"`, `(pack (text "a"))`},
	}
	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			if got := mustParse(t, tt.src); got != tt.want {
				t.Errorf("Parse(%q) = %s, want %s", tt.src, got, tt.want)
			}
		})
	}
}

func TestParse_Precedence(t *testing.T) {
	tests := []struct {
		src  string
		want string
	}{
		// Composition binds tighter than line breaks.
		{
			`"a" + "b" @ "c"`,
			`(line (comp (text "a") (text "b") true false) (text "c"))`,
		},
		// Unary operators take the nearest term only.
		{
			`grp "a" + "b"`,
			`(comp (grp (text "a")) (text "b") true false)`,
		},
		// Parentheses widen the scope.
		{
			`grp ("a" + "b")`,
			`(grp (comp (text "a") (text "b") true false))`,
		},
		// Unary operators nest.
		{
			`grp nest "a"`,
			`(grp (nest (text "a")))`,
		},
		// Composition chains lean right.
		{
			`"a" & "b" & "c"`,
			`(comp (text "a") (comp (text "b") (text "c") false false) false false)`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			if got := mustParse(t, tt.src); got != tt.want {
				t.Errorf("Parse(%q) = %s, want %s", tt.src, got, tt.want)
			}
		})
	}
}

func TestParse_StringEscapes(t *testing.T) {
	got := mustParse(t, `"a\"b\\c\td"`)
	want := `(text "a\"b\\c\td")`
	if got != want {
		t.Errorf("Parse = %s, want %s", got, want)
	}
}

func TestParse_Comments(t *testing.T) {
	src := `
# a function head
"func" + "f()"  # trailing comment
@ "body"
`
	want := `(line (comp (text "func") (text "f()") true false) (text "body"))`
	if got := mustParse(t, src); got != want {
		t.Errorf("Parse = %s, want %s", got, want)
	}
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name string
		src  string
	}{
		{"empty input", ``},
		{"empty string literal", `""`},
		{"unterminated string", `"abc`},
		{"string over newline", "\"a\nb\""},
		{"unknown escape", `"a\qb"`},
		{"dangling operator", `"a" +`},
		{"leading operator", `& "a"`},
		{"bare bang", `"a" ! "b"`},
		{"unknown keyword", `wrap "a"`},
		{"unclosed paren", `("a" + "b"`},
		{"trailing garbage", `"a" "b"`},
		{"stray close paren", `"a")`},
		{"unexpected character", `"a" % "b"`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(tt.src)
			if err == nil {
				t.Fatalf("Parse(%q) error = nil, want SYNTAX_ERROR", tt.src)
			}
			if !errors.Is(err, errors.ErrCodeSyntax) {
				t.Errorf("Parse(%q) error code = %q, want SYNTAX_ERROR", tt.src, errors.GetCode(err))
			}
		})
	}
}

func TestParse_RoundTripThroughEngine(t *testing.T) {
	src := `"foo" + grp ("bar" & "baz") @ nest ("one" + "two")`
	l, err := Parse(src)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	d, err := compile.Compile(l)
	if err != nil {
		t.Fatalf("Compile() error = %v", err)
	}
	// The nest scope covers the whole second line, so it indents.
	if got := doc.Render(d, 2, 80); got != "foo barbaz\n  one two" {
		t.Errorf("render = %q, want %q", got, "foo barbaz\n  one two")
	}
}
