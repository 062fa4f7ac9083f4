// Package io serialises compiled documents as JSON.
//
// A document is an in-process value; when one crosses a process
// boundary (the CLI's inspect output, ahead-of-time compilation), the
// canonical item order of the document form is the format. ReadJSON
// validates the canonical invariants on the way in, so the renderer
// only ever sees well-formed documents.
package io
