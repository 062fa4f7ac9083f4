package io

import (
	"encoding/json"
	"io"
	"os"

	"github.com/typeset-go/typeset/pkg/doc"
	"github.com/typeset-go/typeset/pkg/errors"
)

// ReadJSON decodes a document from JSON and validates the canonical
// invariants, so a hand-edited or truncated file cannot smuggle a
// malformed document into the renderer.
func ReadJSON(r io.Reader) (*doc.Document, error) {
	var in document
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&in); err != nil {
		return nil, errors.Wrap(errors.ErrCodeMalformedDocument, err, "decode document")
	}

	out := &doc.Document{Lines: make([]doc.Line, len(in.Lines))}
	for i, ln := range in.Lines {
		items := make([]doc.Item, len(ln.Items))
		for j, it := range ln.Items {
			switch it.Kind {
			case kindLit:
				items[j] = doc.Lit(it.Text)
			case kindGlue:
				items[j] = doc.Glue(it.Pad, it.Break, it.Group, it.Seq)
			case kindIndent:
				var scope doc.IndentKind
				switch it.Scope {
				case scopeNest:
					scope = doc.IndentNest
				case scopePack:
					scope = doc.IndentPack
				default:
					return nil, errors.New(errors.ErrCodeMalformedDocument,
						"line %d item %d: unknown indent scope %q", i, j, it.Scope)
				}
				items[j] = doc.Indent(it.Delta, scope)
			default:
				return nil, errors.New(errors.ErrCodeMalformedDocument,
					"line %d item %d: unknown item kind %q", i, j, it.Kind)
			}
		}
		out.Lines[i] = doc.Line{Items: items}
	}

	if err := out.Validate(); err != nil {
		return nil, err
	}
	return out, nil
}

// ImportJSON reads a document from a JSON file at path.
func ImportJSON(path string) (*doc.Document, error) {
	f, err := os.Open(path)
	if os.IsNotExist(err) {
		return nil, errors.New(errors.ErrCodeFileNotFound, "no document at %s", path)
	}
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ReadJSON(f)
}
