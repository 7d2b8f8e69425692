package convert

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/fumiama/go-docx"
)

// DefaultMaxPreviewParagraphs caps the preview when the caller passes a
// non-positive limit.
const DefaultMaxPreviewParagraphs = 20

// Preview extracts up to maxParagraphs of paragraph text from a DOCX, in
// document order, joined with newlines. Blank paragraphs are skipped. A
// document with no paragraph text yields an empty string, not an error.
func Preview(data []byte, maxParagraphs int) (string, error) {
	if maxParagraphs <= 0 {
		maxParagraphs = DefaultMaxPreviewParagraphs
	}

	doc, err := docx.Parse(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrPreview, err)
	}

	var lines []string
	for _, item := range doc.Document.Body.Items {
		p, isPara := item.(*docx.Paragraph)
		if !isPara {
			continue
		}
		text := strings.TrimSpace(p.String())
		if text == "" {
			continue
		}
		lines = append(lines, text)
		if len(lines) >= maxParagraphs {
			break
		}
	}
	return strings.Join(lines, "\n"), nil
}
