package document

import (
	"bytes"
	"context"

	pdflib "github.com/ledongthuc/pdf"
	"github.com/rotisserie/eris"

	"bidrank/internal"
)

// ReadPDF extracts per-page plain text. Table recovery from PDF layout is
// not attempted; the text-pattern tier and the OCR tier cover those pages.
func ReadPDF(path string, rast Rasterizer) (Document, error) {
	blob, err := readAll(path)
	if err != nil {
		return Document{}, err
	}
	return readPDFBytes(blob, path, rast)
}

func readPDFBytes(blob []byte, path string, rast Rasterizer) (Document, error) {
	reader, err := pdflib.NewReader(bytes.NewReader(blob), int64(len(blob)))
	if err != nil {
		return Document{}, eris.Wrapf(internal.ErrDocumentUnreadable, "parse pdf %s: %v", path, err)
	}

	doc := Document{Source: path}
	for n := 1; n <= reader.NumPage(); n++ {
		page := reader.Page(n)
		if page.V.IsNull() {
			continue
		}

		text, err := page.GetPlainText(nil)
		if err != nil {
			// A single corrupt page is not fatal; OCR may still read it.
			text = ""
		}

		p := Page{Number: n, Text: text}
		if rast != nil {
			pageNum := n
			p.Image = func(ctx context.Context) ([]byte, error) {
				return rast.RenderPage(ctx, path, pageNum)
			}
		}
		doc.Pages = append(doc.Pages, p)
	}
	if len(doc.Pages) == 0 {
		return Document{}, eris.Wrapf(internal.ErrDocumentUnreadable, "pdf %s has no readable pages", path)
	}
	return doc, nil
}
