// Package document is the boundary to document conversion: it turns bid
// files (PDF, XLSX, HTML, mail archives) into an ordered sequence of pages
// exposing plain text, row-tables and a lazily renderable image for OCR.
package document

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/rotisserie/eris"

	"bidrank/internal"
)

// Page is one page of a converted document.
type Page struct {
	// Number is 1-based within the document.
	Number int
	Text   string
	// Tables holds row-tables: each table is a list of rows, each row a
	// list of cell strings.
	Tables [][][]string
	// Image lazily renders the page for OCR. Nil when the source format
	// has no renderable page (spreadsheets, mail bodies).
	Image func(ctx context.Context) ([]byte, error)
}

// Document is an ordered page sequence from one source file.
type Document struct {
	Source string
	Pages  []Page
}

// Rasterizer renders one page of a document file to an image for OCR.
type Rasterizer interface {
	RenderPage(ctx context.Context, path string, page int) ([]byte, error)
}

// ReadFile dispatches on file extension. The rasterizer may be nil; PDF
// pages then have no renderable image and the OCR tier soft-skips them.
func ReadFile(path string, rast Rasterizer) (Document, error) {
	return ReadFileAs(path, strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), "."), rast)
}

// ReadFileAs reads with an explicit document type, for inputs whose
// extension lies.
func ReadFileAs(path, kind string, rast Rasterizer) (Document, error) {
	switch strings.ToLower(strings.TrimSpace(kind)) {
	case "pdf":
		return ReadPDF(path, rast)
	case "xlsx", "xls":
		return ReadXLSX(path)
	case "html", "htm":
		return ReadHTML(path)
	case "eml":
		return ReadEML(path, rast)
	default:
		return Document{}, eris.Wrapf(internal.ErrDocumentUnreadable, "unsupported document type: %s", path)
	}
}

func readAll(path string) ([]byte, error) {
	blob, err := os.ReadFile(path)
	if err != nil {
		return nil, eris.Wrapf(internal.ErrDocumentUnreadable, "read %s: %v", path, err)
	}
	return blob, nil
}
