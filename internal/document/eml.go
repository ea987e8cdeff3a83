package document

import (
	"bytes"
	"path/filepath"
	"strings"

	"github.com/jhillyerd/enmime"
	"github.com/rotisserie/eris"

	"bidrank/internal"
)

// ReadEML unpacks a mail archive: the message body becomes the first page
// and every PDF, workbook or HTML attachment contributes its own pages.
// Attachment pages carry no renderable image since they never touch disk.
func ReadEML(path string, rast Rasterizer) (Document, error) {
	blob, err := readAll(path)
	if err != nil {
		return Document{}, err
	}

	env, err := enmime.ReadEnvelope(bytes.NewReader(blob))
	if err != nil {
		return Document{}, eris.Wrapf(internal.ErrDocumentUnreadable, "parse mail %s: %v", path, err)
	}

	doc := Document{Source: path}
	if body := strings.TrimSpace(env.Text); body != "" {
		doc.Pages = append(doc.Pages, Page{Text: body})
	} else if env.HTML != "" {
		inner, err := readHTMLBytes([]byte(env.HTML), path)
		if err == nil {
			doc.Pages = append(doc.Pages, inner.Pages...)
		}
	}

	for _, att := range append(env.Attachments, env.Inlines...) {
		pages, err := attachmentPages(att.FileName, att.Content)
		if err != nil {
			// Skip unreadable attachments, the body may still carry the bid.
			continue
		}
		doc.Pages = append(doc.Pages, pages...)
	}

	if len(doc.Pages) == 0 {
		return Document{}, eris.Wrapf(internal.ErrDocumentUnreadable, "mail %s has no readable content", path)
	}
	for i := range doc.Pages {
		doc.Pages[i].Number = i + 1
	}
	return doc, nil
}

func attachmentPages(name string, content []byte) ([]Page, error) {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".pdf":
		inner, err := readPDFBytes(content, name, nil)
		if err != nil {
			return nil, err
		}
		return inner.Pages, nil
	case ".xlsx", ".xls":
		inner, err := readXLSXBytes(content, name)
		if err != nil {
			return nil, err
		}
		return inner.Pages, nil
	case ".html", ".htm":
		inner, err := readHTMLBytes(content, name)
		if err != nil {
			return nil, err
		}
		return inner.Pages, nil
	default:
		return nil, eris.Errorf("unsupported attachment type: %s", name)
	}
}
