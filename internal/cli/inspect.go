package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	docio "github.com/typeset-go/typeset/pkg/io"
	"github.com/typeset-go/typeset/pkg/lang"
	"github.com/typeset-go/typeset/pkg/layout/compile"
)

// Inspect output formats.
const (
	formatTree = "tree" // parsed layout in constructor notation
	formatDoc  = "doc"  // compiled document, debug notation
	formatJSON = "json" // compiled document, canonical JSON
)

// newInspectCmd creates the inspect command: dump the parsed layout
// tree or the compiled document for debugging.
func newInspectCmd() *cobra.Command {
	var (
		format string
		depth  int
	)

	cmd := &cobra.Command{
		Use:   "inspect [file]",
		Short: "Dump the parsed tree or compiled document",
		Long: `Inspect shows the intermediate forms of the engine: the parsed
layout tree in constructor notation, the compiled document in a
compact debug notation, or the document's canonical JSON form.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			source, err := readSource(cmd, args)
			if err != nil {
				return err
			}

			l, err := lang.Parse(source)
			if err != nil {
				return err
			}

			switch format {
			case formatTree:
				fmt.Fprintln(cmd.OutOrStdout(), l.String())
				return nil
			case formatDoc, formatJSON:
				budget := depth
				if budget == 0 {
					budget = compile.DefaultMaxDepth
				}
				d, err := compile.WithDepth(l, budget)
				if err != nil {
					return err
				}
				if format == formatDoc {
					fmt.Fprintln(cmd.OutOrStdout(), d.String())
					return nil
				}
				return docio.WriteJSON(d, cmd.OutOrStdout())
			default:
				return fmt.Errorf("unknown format %q (use tree, doc, or json)", format)
			}
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", formatDoc, "output format: tree, doc, or json")
	cmd.Flags().IntVar(&depth, "depth", 0, "compiler recursion budget")

	return cmd
}
