package io

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/typeset-go/typeset/pkg/doc"
)

// JSON wire structures. Items keep the canonical document order, so
// the serialised form is the canonical serialisation of a document.
type document struct {
	Lines []line `json:"lines"`
}

type line struct {
	Items []item `json:"items,omitempty"`
}

type item struct {
	Kind  string `json:"kind"`
	Text  string `json:"text,omitempty"`
	Pad   bool   `json:"pad,omitempty"`
	Break bool   `json:"break,omitempty"`
	Group uint32 `json:"group,omitempty"`
	Seq   uint32 `json:"seq,omitempty"`
	Delta int    `json:"delta,omitempty"`
	Scope string `json:"scope,omitempty"`
}

const (
	kindLit    = "lit"
	kindGlue   = "glue"
	kindIndent = "indent"

	scopeNest = "nest"
	scopePack = "pack"
)

// WriteJSON encodes a document as JSON and writes it to w. The output
// can be re-imported with [ReadJSON] for round-trip processing.
func WriteJSON(d *doc.Document, w io.Writer) error {
	out := document{Lines: make([]line, len(d.Lines))}

	for i, ln := range d.Lines {
		items := make([]item, len(ln.Items))
		for j, it := range ln.Items {
			switch it.Kind {
			case doc.ItemLit:
				items[j] = item{Kind: kindLit, Text: it.Text}
			case doc.ItemGlue:
				items[j] = item{
					Kind:  kindGlue,
					Pad:   it.Pad,
					Break: it.BreakAllowed,
					Group: it.Group,
					Seq:   it.Seq,
				}
			case doc.ItemIndent:
				scope := scopeNest
				if it.Indent == doc.IndentPack {
					scope = scopePack
				}
				items[j] = item{Kind: kindIndent, Delta: it.Delta, Scope: scope}
			}
		}
		out.Lines[i] = line{Items: items}
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// ExportJSON writes a document to a JSON file at path.
// This is a convenience wrapper around [WriteJSON] for file-based output.
func ExportJSON(d *doc.Document, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return WriteJSON(d, f)
}
