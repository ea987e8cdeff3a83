package document

import (
	"bytes"

	"github.com/PuerkitoBio/goquery"
	"github.com/rotisserie/eris"

	"bidrank/internal"
	"bidrank/internal/util"
)

// ReadHTML turns an HTML tender notice into a single page: the body text
// plus one row-table per <table> element.
func ReadHTML(path string) (Document, error) {
	blob, err := readAll(path)
	if err != nil {
		return Document{}, err
	}
	return readHTMLBytes(blob, path)
}

func readHTMLBytes(blob []byte, path string) (Document, error) {
	q, err := goquery.NewDocumentFromReader(bytes.NewReader(blob))
	if err != nil {
		return Document{}, eris.Wrapf(internal.ErrDocumentUnreadable, "parse html %s: %v", path, err)
	}

	page := Page{Number: 1}
	q.Find("table").Each(func(_ int, table *goquery.Selection) {
		var rows [][]string
		table.Find("tr").Each(func(_ int, tr *goquery.Selection) {
			var cells []string
			tr.Find("th, td").Each(func(_ int, cell *goquery.Selection) {
				cells = append(cells, util.NormalizeSpaces(cell.Text()))
			})
			if len(cells) > 0 {
				rows = append(rows, cells)
			}
		})
		if len(rows) > 0 {
			page.Tables = append(page.Tables, rows)
		}
	})

	body := q.Find("body")
	if body.Length() == 0 {
		page.Text = util.NormalizeSpaces(q.Text())
	} else {
		page.Text = bodyText(body)
	}

	return Document{Source: path, Pages: []Page{page}}, nil
}

// bodyText keeps block elements on separate lines so the line-oriented
// patterns still see one labelled value per line.
func bodyText(body *goquery.Selection) string {
	var buf bytes.Buffer
	body.Find("h1, h2, h3, p, li, tr, div").Each(func(_ int, s *goquery.Selection) {
		if s.Children().Filter("p, li, tr, div, table").Length() > 0 {
			return
		}
		line := util.NormalizeSpaces(s.Text())
		if line != "" {
			buf.WriteString(line)
			buf.WriteByte('\n')
		}
	})
	if buf.Len() == 0 {
		return util.NormalizeSpaces(body.Text())
	}
	return buf.String()
}
