package cli

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/goccy/go-graphviz"
	"github.com/spf13/cobra"

	"github.com/typeset-go/typeset/pkg/lang"
	"github.com/typeset-go/typeset/pkg/layout"
)

// newVizCmd creates the viz command: render the parsed layout tree as
// a Graphviz diagram, for debugging scope structure.
func newVizCmd() *cobra.Command {
	var (
		output  string
		dotOnly bool
	)

	cmd := &cobra.Command{
		Use:   "viz [file]",
		Short: "Render the layout tree as a Graphviz diagram",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			source, err := readSource(cmd, args)
			if err != nil {
				return err
			}
			l, err := lang.Parse(source)
			if err != nil {
				return err
			}

			dot := ToDOT(l)
			if dotOnly {
				fmt.Fprint(cmd.OutOrStdout(), dot)
				return nil
			}

			svg, err := RenderSVG(cmd.Context(), dot)
			if err != nil {
				return err
			}
			if err := os.WriteFile(output, svg, 0644); err != nil {
				return fmt.Errorf("write %s: %w", output, err)
			}
			printSuccess("Wrote %s", output)
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "layout.svg", "output SVG path")
	cmd.Flags().BoolVar(&dotOnly, "dot", false, "print DOT source instead of rendering")

	return cmd
}

// ToDOT converts a layout tree to Graphviz DOT format. Scope nodes are
// drawn as ellipses, literals as boxes, and seams carry their (pad,
// fix) attributes as edge-less node labels.
func ToDOT(l *layout.Layout) string {
	var buf bytes.Buffer
	buf.WriteString("digraph layout {\n")
	buf.WriteString("  rankdir=TB;\n")
	buf.WriteString("  node [shape=ellipse, fontsize=12];\n")
	buf.WriteString("\n")

	var id int
	var walk func(n *layout.Layout) int
	walk = func(n *layout.Layout) int {
		me := id
		id++
		label, shape := nodeLabel(n)
		fmt.Fprintf(&buf, "  n%d [label=%q%s];\n", me, label, shape)
		if n == nil {
			return me
		}
		if n.Left != nil || n.Kind == layout.KindLine || n.Kind == layout.KindComp {
			child := walk(n.Left)
			fmt.Fprintf(&buf, "  n%d -> n%d;\n", me, child)
		}
		if n.Kind == layout.KindLine || n.Kind == layout.KindComp {
			child := walk(n.Right)
			fmt.Fprintf(&buf, "  n%d -> n%d;\n", me, child)
		}
		return me
	}
	walk(l)

	buf.WriteString("}\n")
	return buf.String()
}

func nodeLabel(n *layout.Layout) (label, shape string) {
	if n == nil {
		return "null", ""
	}
	switch n.Kind {
	case layout.KindNull:
		return "null", ""
	case layout.KindText:
		return fmt.Sprintf("%q", n.Text), ", shape=box"
	case layout.KindComp:
		attrs := []string{}
		if n.Attr.Pad {
			attrs = append(attrs, "pad")
		}
		if n.Attr.Fix {
			attrs = append(attrs, "fix")
		}
		if len(attrs) == 0 {
			return "comp", ""
		}
		return "comp " + strings.Join(attrs, ","), ""
	default:
		return n.Kind.String(), ""
	}
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return buf.Bytes(), nil
}
