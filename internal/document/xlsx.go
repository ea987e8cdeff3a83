package document

import (
	"bytes"
	"strings"

	"github.com/rotisserie/eris"
	"github.com/xuri/excelize/v2"

	"bidrank/internal"
)

// ReadXLSX maps every sheet to one page whose single table holds the sheet
// rows. Sheet text is the rows joined line-wise so the text-pattern tier
// can also see labelled values spread across cells.
func ReadXLSX(path string) (Document, error) {
	blob, err := readAll(path)
	if err != nil {
		return Document{}, err
	}
	return readXLSXBytes(blob, path)
}

func readXLSXBytes(blob []byte, path string) (Document, error) {
	f, err := excelize.OpenReader(bytes.NewReader(blob))
	if err != nil {
		return Document{}, eris.Wrapf(internal.ErrDocumentUnreadable, "open workbook %s: %v", path, err)
	}
	defer f.Close()

	doc := Document{Source: path}
	for i, sheet := range f.GetSheetList() {
		rows, err := f.GetRows(sheet)
		if err != nil {
			return Document{}, eris.Wrapf(internal.ErrDocumentUnreadable, "read sheet %s of %s: %v", sheet, path, err)
		}

		var lines []string
		table := make([][]string, 0, len(rows))
		for _, row := range rows {
			cells := make([]string, len(row))
			for j, cell := range row {
				cells[j] = strings.TrimSpace(cell)
			}
			table = append(table, cells)
			lines = append(lines, strings.Join(cells, " "))
		}

		doc.Pages = append(doc.Pages, Page{
			Number: i + 1,
			Text:   strings.Join(lines, "\n"),
			Tables: [][][]string{table},
		})
	}
	if len(doc.Pages) == 0 {
		return Document{}, eris.Wrapf(internal.ErrDocumentUnreadable, "workbook %s has no sheets", path)
	}
	return doc, nil
}
