package convert

import (
	"bytes"

	"github.com/fumiama/go-docx"
)

// RoundTrip re-parses and re-serializes a produced DOCX as a structural
// health check. This is deliberately the only mutation performed on the
// converter's output: deeper edits risk destroying the layout fidelity the
// conversion already achieved.
//
// On success the re-serialized bytes are returned with ok=true. If either
// side of the round trip fails, the input is returned untouched with
// ok=false; the document may still open fine in an editor, so callers
// degrade the status message rather than failing the request.
func RoundTrip(data []byte) (out []byte, ok bool) {
	doc, err := docx.Parse(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return data, false
	}
	var buf bytes.Buffer
	if _, err := doc.WriteTo(&buf); err != nil {
		return data, false
	}
	return buf.Bytes(), true
}
