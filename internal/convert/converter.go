package convert

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/fumiama/go-docx"
	"github.com/pdfcpu/pdfcpu/pkg/api"
	pdfmodel "github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
	"github.com/tsawler/tabula"
	tmodel "github.com/tsawler/tabula/model"
)

// Converter turns a staged PDF into DOCX bytes. It is the narrow boundary
// around the conversion intelligence, so the orchestrator can be tested with
// a mock and the underlying library swapped without touching callers.
//
// Convert returns either complete DOCX bytes or an error, never both. All
// converter-internal resources are released before it returns.
type Converter interface {
	Convert(ctx context.Context, pdfPath string) ([]byte, error)
}

// LayoutConverter is the production Converter. It validates the input with
// pdfcpu, runs full-document layout analysis, and rebuilds the detected
// headings, paragraphs, lists, and tables as a DOCX document.
type LayoutConverter struct{}

// NewLayoutConverter constructs the production converter.
func NewLayoutConverter() *LayoutConverter {
	return &LayoutConverter{}
}

var _ Converter = (*LayoutConverter)(nil)

// Convert runs the full-document conversion. No page-range restriction: the
// whole PDF is analyzed in document order.
func (c *LayoutConverter) Convert(ctx context.Context, pdfPath string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := probe(pdfPath); err != nil {
		return nil, err
	}

	doc, err := tabula.AnalyzeDocument(pdfPath)
	if err != nil {
		return nil, fmt.Errorf("%w: analyze pdf: %v", ErrConversion, err)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	out, err := buildDocx(doc)
	if err != nil {
		return nil, fmt.Errorf("%w: build docx: %v", ErrConversion, err)
	}
	return out, nil
}

// probe rejects inputs the converter cannot work with before the expensive
// analysis runs. Relaxed validation mode, matching what real-world PDFs need.
func probe(pdfPath string) error {
	conf := pdfmodel.NewDefaultConfiguration()
	conf.ValidationMode = pdfmodel.ValidationRelaxed
	if err := api.ValidateFile(pdfPath, conf); err != nil {
		if isEncryptionErr(err) {
			return fmt.Errorf("%w: %v", ErrEncrypted, err)
		}
		return fmt.Errorf("%w: invalid pdf: %v", ErrConversion, err)
	}
	return nil
}

// isEncryptionErr sniffs pdfcpu errors for protected documents. pdfcpu does
// not export a sentinel for this, so we match on the message.
func isEncryptionErr(err error) bool {
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "password") || strings.Contains(msg, "encrypt")
}

// buildDocx serializes the analyzed document model into DOCX bytes in memory.
func buildDocx(doc *tmodel.Document) ([]byte, error) {
	w := docx.New().WithDefaultTheme()

	for _, page := range doc.Pages {
		for _, el := range page.Elements {
			writeElement(w, el)
		}
	}

	var buf bytes.Buffer
	if _, err := w.WriteTo(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func writeElement(w *docx.Docx, el tmodel.Element) {
	switch e := el.(type) {
	case *tmodel.Heading:
		w.AddParagraph().AddText(e.Text).Size(headingSize(e.Level)).Bold()
	case *tmodel.Paragraph:
		w.AddParagraph().AddText(e.Text)
	case *tmodel.List:
		for i, item := range e.Items {
			w.AddParagraph().AddText(listMarker(e.Ordered, i) + item.Text)
		}
	case *tmodel.Table:
		writeTable(w, e)
	}
	// Images and figures are dropped: tabula reports their geometry but the
	// decoded pixel data is not exposed through the document model.
}

func writeTable(w *docx.Docx, t *tmodel.Table) {
	rows, cols := t.RowCount(), t.ColCount()
	if rows == 0 || cols == 0 {
		return
	}
	tbl := w.AddTable(rows, cols, 0, nil)
	for i, row := range t.Rows {
		if i >= len(tbl.TableRows) {
			break
		}
		for j, cell := range row {
			if j >= len(tbl.TableRows[i].TableCells) {
				break
			}
			tbl.TableRows[i].TableCells[j].AddParagraph().AddText(cell.Text)
		}
	}
}

// headingSize maps a heading level to a run size in half-points.
func headingSize(level int) string {
	switch level {
	case 1:
		return "36"
	case 2:
		return "32"
	case 3:
		return "28"
	default:
		return "24"
	}
}

func listMarker(ordered bool, index int) string {
	if ordered {
		return fmt.Sprintf("%d. ", index+1)
	}
	return "• "
}
